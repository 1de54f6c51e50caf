package httputil

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "landtitle/pkg/domain-errors"
)

func TestWriteError(t *testing.T) {
	t.Run("internal error omits description", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodeInternal, "db failed"))

		require.Equal(t, http.StatusInternalServerError, w.Code)
		var body map[string]string
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.Equal(t, "internal_error", body["error"])
		_, ok := body["error_description"]
		assert.False(t, ok, "internal errors must not leak a description")
	})

	t.Run("bad request includes description", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid input"))

		require.Equal(t, http.StatusBadRequest, w.Code)
		var body map[string]string
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.Equal(t, "bad_request", body["error"])
		assert.Equal(t, "invalid input", body["error_description"])
	})

	t.Run("untyped errors are internal", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, assert.AnError)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestStatusFor(t *testing.T) {
	cases := map[dErrors.Code]int{
		dErrors.CodeInvalidAddress:      http.StatusBadRequest,
		dErrors.CodeNotConfirmed:        http.StatusBadRequest,
		dErrors.CodeConflict:            http.StatusConflict,
		dErrors.CodeFundsNotReleased:    http.StatusConflict,
		dErrors.CodeFingerprintMismatch: http.StatusUnprocessableEntity,
		dErrors.CodeDocumentUnreadable:  http.StatusUnprocessableEntity,
		dErrors.CodeLedgerFailure:       http.StatusBadGateway,
		dErrors.CodeForbidden:           http.StatusForbidden,
	}
	for code, want := range cases {
		assert.Equal(t, want, StatusFor(code), string(code))
	}
}

type priceRequest struct {
	Price string `json:"price"`
}

func (r *priceRequest) Validate() error {
	if strings.TrimSpace(r.Price) == "" {
		return dErrors.New(dErrors.CodeValidation, "price is required")
	}
	return nil
}

func TestDecodeAndPrepare(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(httptest.NewRecorder(), nil))

	t.Run("valid body", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"price":"100"}`))
		w := httptest.NewRecorder()
		req, ok := DecodeAndPrepare[priceRequest](w, r, logger, r.Context(), "req-1")
		require.True(t, ok)
		assert.Equal(t, "100", req.Price)
	})

	t.Run("validation failure writes 400", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"price":" "}`))
		w := httptest.NewRecorder()
		_, ok := DecodeAndPrepare[priceRequest](w, r, logger, r.Context(), "req-2")
		require.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown fields rejected", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"price":"1","owner":"x"}`))
		w := httptest.NewRecorder()
		_, ok := DecodeAndPrepare[priceRequest](w, r, logger, r.Context(), "req-3")
		require.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("custom limit", func(t *testing.T) {
		body := `{"price":"` + strings.Repeat("9", 64) + `"}`
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		w := httptest.NewRecorder()
		req, ok := DecodeAndPrepareLimit[priceRequest](w, r, 128, logger, r.Context(), "req-4")
		require.True(t, ok)
		assert.Len(t, req.Price, 64)

		r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		w = httptest.NewRecorder()
		_, ok = DecodeAndPrepareLimit[priceRequest](w, r, 32, logger, r.Context(), "req-5")
		require.False(t, ok)
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})
}
