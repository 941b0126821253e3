package handler_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"

	"github.com/microfin-hq/microfin/handler"
	"github.com/microfin-hq/microfin/pkg/validator"
)

func errorHandler(buf *bytes.Buffer) handler.ErrorHandler[handler.Context] {
	log := slog.New(slog.NewTextHandler(buf, nil))
	return handler.NewErrorHandler(log, handler.ErrorHandlerConfig{
		ErrorPage: func(p handler.ErrorPageParams) templ.Component {
			return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
				_, err := fmt.Fprintf(w, "page %d %s", p.StatusCode, p.Error)
				return err
			})
		},
		ErrorToast: func(p handler.ErrorToastParams) templ.Component {
			return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
				_, err := fmt.Fprintf(w, "<div>toast %s %s %d</div>", p.Type, p.Message, len(p.Fields))
				return err
			})
		},
	})
}

func TestNewErrorHandler(t *testing.T) {
	t.Parallel()

	t.Run("page", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/market/42", nil)
		errorHandler(&buf)(handler.NewContext(rec, req), handler.ErrNotFound)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "page 404 Not Found", rec.Body.String())
		assert.Contains(t, buf.String(), "level=WARN")
	})

	t.Run("server error logged as error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/loans", nil)
		errorHandler(&buf)(handler.NewContext(rec, req), assert.AnError)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
		assert.Contains(t, buf.String(), "level=ERROR")
	})

	t.Run("datastar toast", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		rec := httptest.NewRecorder()
		err := validator.ValidationErrors{{Field: "amount", Message: "Loan amount is required"}}
		errorHandler(&buf)(handler.NewContext(rec, datastarRequest(http.MethodPost, "/loans/apply")), err)

		body := rec.Body.String()
		assert.Contains(t, body, "#toast-container")
		assert.Contains(t, body, "toast warning Please correct the highlighted fields 1")
	})

	t.Run("api json", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/validate/nope", nil)
		errorHandler(&buf)(handler.NewContext(rec, req), handler.ErrNotFound)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error":{"code":"not_found","message":"Not Found"}}`, rec.Body.String())
	})
}
