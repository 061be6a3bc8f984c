// Package respond writes JSON bodies and maps domain errors to HTTP statuses.
package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/hlog"

	"github.com/MrJamesThe3rd/cedar/internal/assistant"
	"github.com/MrJamesThe3rd/cedar/internal/encoding"
	"github.com/MrJamesThe3rd/cedar/internal/importer"
	"github.com/MrJamesThe3rd/cedar/internal/transaction"
)

type errorResponse struct {
	Error string `json:"error"`
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if v == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(v); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("failed to encode response")
	}
}

// Message writes a JSON error body with an explicit status.
func Message(w http.ResponseWriter, r *http.Request, status int, msg string) {
	JSON(w, r, status, errorResponse{Error: msg})
}

// Error writes err with the status it maps to. Server-side failures are
// logged and their details hidden from the client.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	status := Status(err)

	msg := err.Error()
	if status == http.StatusInternalServerError {
		hlog.FromRequest(r).Error().Err(err).Msg("request failed")

		msg = "internal error"
	} else if status >= http.StatusBadGateway {
		hlog.FromRequest(r).Warn().Err(err).Msg("upstream failed")
	}

	Message(w, r, status, msg)
}

// Status maps an error to its HTTP status code.
func Status(err error) int {
	switch {
	case transaction.IsValidation(err),
		errors.Is(err, importer.ErrMissingColumns),
		errors.Is(err, importer.ErrEmptyFile),
		errors.Is(err, encoding.ErrUnknownCharset),
		errors.Is(err, assistant.ErrEmptyPrompt),
		errors.Is(err, assistant.ErrInvalidOption),
		errors.Is(err, assistant.ErrUnsupportedMedia):
		return http.StatusUnprocessableEntity
	case errors.Is(err, transaction.ErrNotFound),
		errors.Is(err, assistant.ErrJobNotFound):
		return http.StatusNotFound
	case errors.Is(err, assistant.ErrJobNotReady):
		return http.StatusConflict
	case errors.Is(err, assistant.ErrInvalidAPIKey):
		return http.StatusUnauthorized
	case errors.Is(err, assistant.ErrTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, assistant.ErrUpstream),
		errors.Is(err, assistant.ErrNoAudio),
		errors.Is(err, assistant.ErrNoImage),
		errors.Is(err, assistant.ErrVideoFailed):
		return http.StatusBadGateway
	}

	return http.StatusInternalServerError
}

// Decode reads a JSON request body into v, writing 400 on failure.
func Decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		Message(w, r, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}

	return true
}
