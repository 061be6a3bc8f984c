package budget

import (
	"slices"

	"github.com/MrJamesThe3rd/cedar/internal/transaction"
)

// TopN is how many expense categories a summary ranks.
const TopN = 3

// CategoryAmount is an expense category with its total in USD.
type CategoryAmount struct {
	Category transaction.Category
	Amount   float64
}

// Summary is derived from a full transaction set. All amounts are in USD.
type Summary struct {
	TotalIncome     float64
	TotalExpenses   float64
	RemainingBudget float64
	TopExpenses     []CategoryAmount
}

// Overspent reports whether expenses exceed income.
func (s Summary) Overspent() bool {
	return s.RemainingBudget < 0
}

// Summarize aggregates txs into totals and the top expense categories.
// Totals do not depend on input order; ranking ties keep the order in which
// categories were first seen.
func Summarize(txs []*transaction.Transaction) Summary {
	var (
		s      Summary
		totals = make(map[transaction.Category]float64)
		order  []transaction.Category
	)

	for _, tx := range txs {
		usd := tx.USD()

		switch tx.Type {
		case transaction.TypeIncome:
			s.TotalIncome += usd
		case transaction.TypeExpense:
			s.TotalExpenses += usd

			if _, seen := totals[tx.Category]; !seen {
				order = append(order, tx.Category)
			}

			totals[tx.Category] += usd
		}
	}

	s.RemainingBudget = s.TotalIncome - s.TotalExpenses

	ranked := make([]CategoryAmount, 0, len(order))
	for _, c := range order {
		ranked = append(ranked, CategoryAmount{Category: c, Amount: totals[c]})
	}

	slices.SortStableFunc(ranked, func(a, b CategoryAmount) int {
		switch {
		case a.Amount > b.Amount:
			return -1
		case a.Amount < b.Amount:
			return 1
		}

		return 0
	})

	s.TopExpenses = ranked[:min(TopN, len(ranked))]

	return s
}
