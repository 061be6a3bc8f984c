package transaction

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/cedar/internal/currency"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	Insert(ctx context.Context, txs ...*Transaction) error
	Get(ctx context.Context, id uuid.UUID) (*Transaction, error)
	List(ctx context.Context, filter ListFilter) ([]*Transaction, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
	now  func() time.Time
}

type Option func(*Service)

// WithClock replaces the time source used to stamp admitted transactions.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{repo: repo, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// MaxAmount caps a single amount in its own currency. Larger values lose
// precision once summed and converted.
const MaxAmount = 1e12

// Candidate is caller-supplied input awaiting admission. It is untrusted.
type Candidate struct {
	Amount   float64
	Currency currency.Currency
	Type     Type
	Category Category
}

// NewCandidate normalizes loosely typed input. A currency or type that does
// not parse is kept as given so Validate reports it in its usual order.
func NewCandidate(amount float64, cur, typ, category string) Candidate {
	c, err := currency.Parse(cur)
	if err != nil {
		c = currency.Currency(strings.TrimSpace(cur))
	}

	return Candidate{
		Amount:   amount,
		Currency: c,
		Type:     Type(strings.ToUpper(strings.TrimSpace(typ))),
		Category: Category(strings.TrimSpace(category)),
	}
}

// Validate checks the candidate against the admission rules.
func (c Candidate) Validate() error {
	if math.IsNaN(c.Amount) || math.IsInf(c.Amount, 0) || c.Amount <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidAmount, c.Amount)
	}

	if c.Amount > MaxAmount {
		return fmt.Errorf("%w: %v exceeds %v", ErrInvalidAmount, c.Amount, MaxAmount)
	}

	if !c.Type.Valid() {
		return fmt.Errorf("%w: got %q", ErrInvalidType, c.Type)
	}

	if !c.Currency.Valid() {
		return fmt.Errorf("%w: got %q", ErrInvalidCurrency, c.Currency)
	}

	if !ValidCategory(c.Type, c.Category) {
		return fmt.Errorf("%w: %q is not an %s category", ErrInvalidCategory, c.Category, c.Type)
	}

	return nil
}

type ListFilter struct {
	Type      *Type
	Currency  *currency.Currency
	StartDate *time.Time
	EndDate   *time.Time
}

// Match reports whether tx passes every set field of the filter.
func (f ListFilter) Match(tx *Transaction) bool {
	if f.Type != nil && tx.Type != *f.Type {
		return false
	}

	if f.Currency != nil && tx.Currency != *f.Currency {
		return false
	}

	if f.StartDate != nil && tx.Date.Before(*f.StartDate) {
		return false
	}

	if f.EndDate != nil && tx.Date.After(*f.EndDate) {
		return false
	}

	return true
}

// Admit validates a candidate and stores it with a fresh id and the current time.
// A rejected candidate never reaches the repository.
func (s *Service) Admit(ctx context.Context, c Candidate) (*Transaction, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	tx := s.build(c)
	if err := s.repo.Insert(ctx, tx); err != nil {
		return nil, fmt.Errorf("insert transaction: %w", err)
	}

	return tx, nil
}

// AdmitBatch admits all candidates or none of them.
func (s *Service) AdmitBatch(ctx context.Context, cs []Candidate) ([]*Transaction, error) {
	if len(cs) == 0 {
		return nil, nil
	}

	for i, c := range cs {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("candidate %d: %w", i+1, err)
		}
	}

	txs := make([]*Transaction, 0, len(cs))
	for _, c := range cs {
		txs = append(txs, s.build(c))
	}

	if err := s.repo.Insert(ctx, txs...); err != nil {
		return nil, fmt.Errorf("insert transactions: %w", err)
	}

	return txs, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Transaction, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) build(c Candidate) *Transaction {
	return &Transaction{
		ID:       uuid.New(),
		Amount:   c.Amount,
		Currency: c.Currency,
		Type:     c.Type,
		Category: c.Category,
		Date:     s.now(),
	}
}
