package importer

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/MrJamesThe3rd/cedar/internal/logger"
	"github.com/MrJamesThe3rd/cedar/internal/transaction"
)

// Admitter is the part of transaction.Service an import needs.
type Admitter interface {
	AdmitBatch(ctx context.Context, cs []transaction.Candidate) ([]*transaction.Transaction, error)
}

type Service struct {
	txs Admitter
	log zerolog.Logger
}

func NewService(txs Admitter, log zerolog.Logger) *Service {
	return &Service{txs: txs, log: log}
}

// Import parses r and admits every row, or none when any row is rejected.
// It logs through the logger on ctx when there is one.
func (s *Service) Import(ctx context.Context, r io.Reader, charset string) ([]*transaction.Transaction, error) {
	cs, err := Parse(r, charset)
	if err != nil {
		return nil, err
	}

	txs, err := s.txs.AdmitBatch(ctx, cs)
	if err != nil {
		return nil, fmt.Errorf("admit rows: %w", err)
	}

	log := logger.FromContext(ctx, s.log)
	log.Info().Str("component", "importer").Int("imported", len(txs)).Msg("csv imported")

	return txs, nil
}
