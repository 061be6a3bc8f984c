package view

import (
	"context"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/cedar/internal/currency"
	"github.com/MrJamesThe3rd/cedar/internal/transaction"
)

const storeTimeout = 5 * time.Second

var (
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
	incomeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	expenseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatTxAmount shows the amount in its own currency; LBP rows also get
// their USD value.
func FormatTxAmount(tx *transaction.Transaction) string {
	s := currency.FormatAmount(tx.Amount, tx.Currency)
	if tx.Currency == currency.LBP {
		s += " (" + currency.FormatUSD(tx.USD()) + " USD)"
	}

	return s
}

func typeStyle(t transaction.Type) lipgloss.Style {
	if t == transaction.TypeIncome {
		return incomeStyle
	}

	return expenseStyle
}

// StoreCtx returns a context with a standard timeout for store operations.
func StoreCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), storeTimeout)
}
