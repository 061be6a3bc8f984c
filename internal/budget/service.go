package budget

import (
	"context"
	"fmt"

	"github.com/MrJamesThe3rd/cedar/internal/transaction"
)

//go:generate mockgen -source=service.go -destination=lister_mock.go -package=budget
type Lister interface {
	List(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error)
}

type Service struct {
	txs Lister
}

func NewService(txs Lister) *Service {
	return &Service{txs: txs}
}

// Summary recomputes the summary from the current collection.
func (s *Service) Summary(ctx context.Context, filter transaction.ListFilter) (Summary, error) {
	txs, err := s.txs.List(ctx, filter)
	if err != nil {
		return Summary{}, fmt.Errorf("list transactions: %w", err)
	}

	return Summarize(txs), nil
}
