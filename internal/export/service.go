package export

import (
	"archive/zip"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/MrJamesThe3rd/cedar/internal/budget"
	"github.com/MrJamesThe3rd/cedar/internal/currency"
	"github.com/MrJamesThe3rd/cedar/internal/transaction"
)

// Header is the column order of exported files. It is accepted back by the importer.
var Header = []string{"date", "type", "category", "amount", "currency", "usd"}

// Lister is the read side of the transaction service.
type Lister interface {
	List(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error)
}

// Service exports transactions as CSV and as a zip with a budget report.
type Service struct {
	transactions Lister
}

func NewService(txs Lister) *Service {
	return &Service{transactions: txs}
}

// CSV writes the transactions matching filter to w.
func (s *Service) CSV(ctx context.Context, filter transaction.ListFilter, w io.Writer) (int, error) {
	txs, err := s.transactions.List(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("listing transactions: %w", err)
	}

	if err := WriteCSV(w, txs); err != nil {
		return 0, err
	}

	return len(txs), nil
}

// Archive writes a zip holding transactions.csv and report.txt for filter.
func (s *Service) Archive(ctx context.Context, filter transaction.ListFilter, w io.Writer) error {
	txs, err := s.transactions.List(ctx, filter)
	if err != nil {
		return fmt.Errorf("listing transactions: %w", err)
	}

	zw := zip.NewWriter(w)

	f, err := zw.Create("transactions.csv")
	if err != nil {
		return fmt.Errorf("creating csv entry: %w", err)
	}

	if err := WriteCSV(f, txs); err != nil {
		return err
	}

	f, err = zw.Create("report.txt")
	if err != nil {
		return fmt.Errorf("creating report entry: %w", err)
	}

	if _, err := io.WriteString(f, Report(txs)); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("closing zip: %w", err)
	}

	return nil
}

// WriteCSV writes txs under Header. Amounts use a plain decimal point so the
// file parses back without thousands separators getting in the way.
func WriteCSV(w io.Writer, txs []*transaction.Transaction) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, tx := range txs {
		err := cw.Write([]string{
			tx.Date.Format("2006-01-02"),
			string(tx.Type),
			string(tx.Category),
			strconv.FormatFloat(tx.Amount, 'f', -1, 64),
			string(tx.Currency),
			strconv.FormatFloat(tx.USD(), 'f', 2, 64),
		})
		if err != nil {
			return fmt.Errorf("writing transaction %s: %w", tx.ID, err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// Report renders a plain text statement: one line per transaction followed
// by the budget summary.
func Report(txs []*transaction.Transaction) string {
	var sb strings.Builder

	for _, tx := range txs {
		sign := "-"
		if tx.Type == transaction.TypeIncome {
			sign = "+"
		}

		line := fmt.Sprintf("* %s | %s | %s%s", tx.Date.Format("2006-01-02"), tx.Category, sign,
			currency.FormatAmount(tx.Amount, tx.Currency))
		if tx.Currency == currency.LBP {
			line += fmt.Sprintf(" (%s USD)", currency.FormatUSD(tx.USD()))
		}

		sb.WriteString(line + "\n")
	}

	sum := budget.Summarize(txs)

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Total income:     %s\n", currency.FormatUSD(sum.TotalIncome)))
	sb.WriteString(fmt.Sprintf("Total expenses:   %s\n", currency.FormatUSD(sum.TotalExpenses)))
	sb.WriteString(fmt.Sprintf("Remaining budget: %s (~ %s)\n", currency.FormatUSD(sum.RemainingBudget),
		currency.FormatLBP(currency.LBPEquivalent(sum.RemainingBudget))))

	if sum.Overspent() {
		sb.WriteString("Overspent!\n")
	}

	for i, e := range sum.TopExpenses {
		sb.WriteString(fmt.Sprintf("%d. %s %s\n", i+1, e.Category, currency.FormatUSD(e.Amount)))
	}

	return sb.String()
}
