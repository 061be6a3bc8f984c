package respond_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/cedar/internal/assistant"
	"github.com/MrJamesThe3rd/cedar/internal/http/respond"
	"github.com/MrJamesThe3rd/cedar/internal/importer"
	"github.com/MrJamesThe3rd/cedar/internal/transaction"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "Amount", err: fmt.Errorf("candidate 2: %w", transaction.ErrInvalidAmount), want: http.StatusUnprocessableEntity},
		{name: "Category", err: transaction.ErrInvalidCategory, want: http.StatusUnprocessableEntity},
		{name: "Columns", err: importer.ErrMissingColumns, want: http.StatusUnprocessableEntity},
		{name: "Option", err: assistant.ErrInvalidOption, want: http.StatusUnprocessableEntity},
		{name: "NotFound", err: transaction.ErrNotFound, want: http.StatusNotFound},
		{name: "JobNotFound", err: assistant.ErrJobNotFound, want: http.StatusNotFound},
		{name: "JobNotReady", err: assistant.ErrJobNotReady, want: http.StatusConflict},
		{name: "APIKey", err: fmt.Errorf("chat: %w: %w", assistant.ErrInvalidAPIKey, errors.New("not found")), want: http.StatusUnauthorized},
		{name: "Timeout", err: assistant.ErrTimeout, want: http.StatusGatewayTimeout},
		{name: "Upstream", err: fmt.Errorf("chat: %w", assistant.ErrUpstream), want: http.StatusBadGateway},
		{name: "NoAudio", err: assistant.ErrNoAudio, want: http.StatusBadGateway},
		{name: "VideoFailed", err: assistant.ErrVideoFailed, want: http.StatusBadGateway},
		{name: "Other", err: errors.New("disk on fire"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, respond.Status(tt.err))
		})
	}
}

func TestError_HidesInternalDetails(t *testing.T) {
	rr := httptest.NewRecorder()
	respond.Error(rr, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("pq: password=hunter2"))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"internal error"}`, rr.Body.String())
}
