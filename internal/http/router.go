package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/MrJamesThe3rd/cedar/internal/http/assistant"
	"github.com/MrJamesThe3rd/cedar/internal/http/export"
	"github.com/MrJamesThe3rd/cedar/internal/http/importcsv"
	"github.com/MrJamesThe3rd/cedar/internal/http/summary"
	"github.com/MrJamesThe3rd/cedar/internal/http/transaction"
)

type Options struct {
	AllowedOrigins []string
	// Timeout bounds synchronous requests. Video generation runs as a
	// background job and is not affected.
	Timeout time.Duration
}

func New(
	log zerolog.Logger,
	opts Options,
	transactionsV1 *transaction.Handler,
	importV1 *importcsv.Handler,
	summaryV1 *summary.Handler,
	exportV1 *export.Handler,
	assistantV1 *assistant.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(hlog.NewHandler(log))
	router.Use(hlog.RequestIDHandler("req_id", "X-Request-ID"))
	router.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Stringer("url", r.URL).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	}))
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"Location", "X-Request-ID"},
		MaxAge:         300,
	}))

	if opts.Timeout > 0 {
		router.Use(middleware.Timeout(opts.Timeout))
	}

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/transactions", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			transactionsV1.Routes(r)
		})

		r.Route("/import", importV1.Routes)

		r.Route("/summary", summaryV1.Routes)

		r.Route("/export", exportV1.Routes)

		r.Route("/assistant", assistantV1.Routes)
	})

	return router
}
