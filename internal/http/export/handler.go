package export

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/MrJamesThe3rd/cedar/internal/export"
	txhttp "github.com/MrJamesThe3rd/cedar/internal/http/transaction"
	"github.com/MrJamesThe3rd/cedar/internal/http/respond"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/csv", h.csv)
	r.Get("/zip", h.zip)
}

func attachment(w http.ResponseWriter, contentType, ext string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"cedar_%s.%s\"", time.Now().Format("20060102"), ext))
}

// csv streams the filtered transactions. Headers are committed before the
// rows are written, so a failure midway can only be logged.
func (h *Handler) csv(w http.ResponseWriter, r *http.Request) {
	filter, err := txhttp.ParseFilter(r)
	if err != nil {
		respond.Message(w, r, http.StatusBadRequest, err.Error())
		return
	}

	attachment(w, "text/csv; charset=utf-8", "csv")

	n, err := h.svc.CSV(r.Context(), filter, w)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("csv export failed")
		return
	}

	hlog.FromRequest(r).Info().Int("count", n).Msg("exported csv")
}

func (h *Handler) zip(w http.ResponseWriter, r *http.Request) {
	filter, err := txhttp.ParseFilter(r)
	if err != nil {
		respond.Message(w, r, http.StatusBadRequest, err.Error())
		return
	}

	attachment(w, "application/zip", "zip")

	if err := h.svc.Archive(r.Context(), filter, w); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("zip export failed")
	}
}
