package transaction

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/hlog"

	"github.com/MrJamesThe3rd/cedar/internal/currency"
	"github.com/MrJamesThe3rd/cedar/internal/http/respond"
	"github.com/MrJamesThe3rd/cedar/internal/transaction"
)

type Handler struct {
	svc *transaction.Service
}

func NewHandler(svc *transaction.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Delete("/{id}", h.delete)
}

type createTransactionRequest struct {
	Amount   amount `json:"amount"`
	Currency string `json:"currency"`
	Type     string `json:"type"`
	Category string `json:"category"`
}

// amount accepts 895000 as well as "895,000". Anything else decodes to NaN
// and is rejected at admission.
type amount float64

func (a *amount) UnmarshalJSON(b []byte) error {
	*a = amount(math.NaN())

	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return nil
	}

	switch v := v.(type) {
	case float64:
		*a = amount(v)
	case string:
		if f, err := currency.ParseAmount(v); err == nil {
			*a = amount(f)
		}
	}

	return nil
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	tx, err := h.svc.Admit(r.Context(),
		transaction.NewCandidate(float64(req.Amount), req.Currency, req.Type, req.Category))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	hlog.FromRequest(r).Info().
		Str("id", tx.ID.String()).
		Str("category", string(tx.Category)).
		Msg("transaction admitted")

	respond.JSON(w, r, http.StatusCreated, ToResponse(tx))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter, err := ParseFilter(r)
	if err != nil {
		respond.Message(w, r, http.StatusBadRequest, err.Error())
		return
	}

	txs, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, ToResponseList(txs))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Message(w, r, http.StatusBadRequest, "invalid id")
		return
	}

	tx, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, ToResponse(tx))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Message(w, r, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ParseFilter reads type, currency, start_date and end_date query params.
// Dates are YYYY-MM-DD; end_date includes the whole day.
func ParseFilter(r *http.Request) (transaction.ListFilter, error) {
	var filter transaction.ListFilter

	q := r.URL.Query()

	if s := q.Get("type"); s != "" {
		t, err := transaction.ParseType(s)
		if err != nil {
			return filter, err
		}

		filter.Type = new(t)
	}

	if s := q.Get("currency"); s != "" {
		c, err := currency.Parse(s)
		if err != nil {
			return filter, err
		}

		filter.Currency = new(c)
	}

	if s := q.Get("start_date"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return filter, fmt.Errorf("invalid start_date: %w", err)
		}

		filter.StartDate = new(t)
	}

	if s := q.Get("end_date"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return filter, fmt.Errorf("invalid end_date: %w", err)
		}

		filter.EndDate = new(t.Add(24*time.Hour - time.Nanosecond))
	}

	return filter, nil
}
