package summary

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/cedar/internal/budget"
	"github.com/MrJamesThe3rd/cedar/internal/currency"
	txhttp "github.com/MrJamesThe3rd/cedar/internal/http/transaction"
	"github.com/MrJamesThe3rd/cedar/internal/http/respond"
	"github.com/MrJamesThe3rd/cedar/internal/transaction"
)

type Handler struct {
	svc *budget.Service
}

func NewHandler(svc *budget.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
}

type categoryResponse struct {
	Category transaction.Category `json:"category"`
	Amount   float64              `json:"amount"`
	Display  string               `json:"display"`
}

type displayResponse struct {
	TotalIncome     string `json:"total_income"`
	TotalExpenses   string `json:"total_expenses"`
	RemainingBudget string `json:"remaining_budget"`
	RemainingLBP    string `json:"remaining_lbp"`
}

type summaryResponse struct {
	TotalIncome     float64            `json:"total_income"`
	TotalExpenses   float64            `json:"total_expenses"`
	RemainingBudget float64            `json:"remaining_budget"`
	Overspent       bool               `json:"overspent"`
	TopExpenses     []categoryResponse `json:"top_expenses"`
	Display         displayResponse    `json:"display"`
}

// get summarizes the collection, narrowed by the same filters as the list endpoint.
func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	filter, err := txhttp.ParseFilter(r)
	if err != nil {
		respond.Message(w, r, http.StatusBadRequest, err.Error())
		return
	}

	s, err := h.svc.Summary(r.Context(), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, toResponse(s))
}

func toResponse(s budget.Summary) summaryResponse {
	top := make([]categoryResponse, 0, len(s.TopExpenses))
	for _, c := range s.TopExpenses {
		top = append(top, categoryResponse{
			Category: c.Category,
			Amount:   c.Amount,
			Display:  currency.FormatUSD(c.Amount),
		})
	}

	return summaryResponse{
		TotalIncome:     s.TotalIncome,
		TotalExpenses:   s.TotalExpenses,
		RemainingBudget: s.RemainingBudget,
		Overspent:       s.Overspent(),
		TopExpenses:     top,
		Display: displayResponse{
			TotalIncome:     currency.FormatUSD(s.TotalIncome),
			TotalExpenses:   currency.FormatUSD(s.TotalExpenses),
			RemainingBudget: currency.FormatUSD(s.RemainingBudget),
			RemainingLBP:    "~ " + currency.FormatLBP(currency.LBPEquivalent(s.RemainingBudget)),
		},
	}
}
