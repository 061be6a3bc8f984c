package transaction

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/cedar/internal/currency"
	"github.com/MrJamesThe3rd/cedar/internal/transaction"
)

type Response struct {
	ID       uuid.UUID            `json:"id"`
	Amount   float64              `json:"amount"`
	Currency currency.Currency    `json:"currency"`
	Type     transaction.Type     `json:"type"`
	Category transaction.Category `json:"category"`
	Date     time.Time            `json:"date"`
	USD      float64              `json:"usd"`
	Display  string               `json:"display"`
	// DisplayUSD is set for LBP rows only.
	DisplayUSD string `json:"display_usd,omitempty"`
}

func ToResponse(tx *transaction.Transaction) Response {
	resp := Response{
		ID:       tx.ID,
		Amount:   tx.Amount,
		Currency: tx.Currency,
		Type:     tx.Type,
		Category: tx.Category,
		Date:     tx.Date,
		USD:      tx.USD(),
		Display:  currency.FormatAmount(tx.Amount, tx.Currency),
	}

	if tx.Currency == currency.LBP {
		resp.DisplayUSD = currency.FormatUSD(tx.USD()) + " USD"
	}

	return resp
}

func ToResponseList(txs []*transaction.Transaction) []Response {
	resp := make([]Response, len(txs))
	for i, tx := range txs {
		resp[i] = ToResponse(tx)
	}

	return resp
}
