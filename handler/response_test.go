package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microfin-hq/microfin/handler"
	"github.com/microfin-hq/microfin/pkg/validator"
)

func datastarRequest(method, target string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set(handler.DataStarRequestHeader, "true")
	return req
}

func TestIsDataStar(t *testing.T) {
	t.Parallel()

	plain := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.False(t, handler.IsDataStar(plain))

	assert.True(t, handler.IsDataStar(datastarRequest(http.MethodPost, "/")))

	accept := httptest.NewRequest(http.MethodGet, "/", nil)
	accept.Header.Set("Accept", "text/event-stream")
	assert.True(t, handler.IsDataStar(accept))

	query := httptest.NewRequest(http.MethodGet, "/?datastar=%7B%7D", nil)
	assert.True(t, handler.IsDataStar(query))
}

func TestTempl(t *testing.T) {
	t.Parallel()

	t.Run("plain request gets html", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		err := handler.Templ(text("<p>hi</p>")).Render(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)

		assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Equal(t, "<p>hi</p>", rec.Body.String())
	})

	t.Run("status for plain request", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		err := handler.TemplStatus(http.StatusUnprocessableEntity, text("form")).Render(rec, httptest.NewRequest(http.MethodPost, "/", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("datastar request gets patch", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		resp := handler.TemplPartial(text(`<div id="errors">bad</div>`), text("<html>full</html>"), handler.WithTarget("#errors"))
		require.NoError(t, resp.Render(rec, datastarRequest(http.MethodPost, "/")))

		body := rec.Body.String()
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/event-stream")
		assert.Contains(t, body, "datastar-patch-elements")
		assert.Contains(t, body, "#errors")
		assert.Contains(t, body, "bad")
		assert.NotContains(t, body, "full")
	})

	t.Run("partial status renders full page for plain request", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		resp := handler.TemplPartialStatus(http.StatusUnprocessableEntity, text("form"), text("page"))
		require.NoError(t, resp.Render(rec, httptest.NewRequest(http.MethodPost, "/", nil)))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, "page", rec.Body.String())
	})

	t.Run("multi concatenates for plain request", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		resp := handler.TemplMulti(handler.Patch(text("a")), handler.Patch(text("b")))
		require.NoError(t, resp.Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)))
		assert.Equal(t, "ab", rec.Body.String())
	})
}

func TestJSONError(t *testing.T) {
	t.Parallel()

	t.Run("validation errors carry field details", func(t *testing.T) {
		t.Parallel()

		err := validator.ValidationErrors{
			{Field: "amount", Message: "Must be a positive number"},
			{Field: "amount", Message: "Must be at least 100"},
			{Field: "term", Message: "Term is required"},
		}
		rec := httptest.NewRecorder()
		require.NoError(t, handler.JSONError(err).Render(rec, httptest.NewRequest(http.MethodPost, "/", nil)))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.JSONEq(t, `{"error":{
			"code":"validation_error",
			"message":"Please correct the highlighted fields",
			"details":{"amount":"Must be a positive number","term":"Term is required"}
		}}`, rec.Body.String())
	})

	t.Run("server errors hide details", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		require.NoError(t, handler.JSON(assert.AnError).Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
		assert.Contains(t, rec.Body.String(), `"code":"internal_error"`)
	})

	t.Run("http error message", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		err := handler.ErrNotFound.WithMessage("Application not found")
		require.NoError(t, handler.JSONError(err).Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error":{"code":"not_found","message":"Application not found"}}`, rec.Body.String())
	})
}

func TestJSON(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	resp := handler.JSON([]int{1, 2}, handler.WithJSONStatus(http.StatusCreated), handler.WithJSONMeta(map[string]any{"total": 2}))
	require.NoError(t, resp.Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"data":[1,2],"meta":{"total":2}}`, rec.Body.String())
}

func TestRedirect(t *testing.T) {
	t.Parallel()

	t.Run("plain", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		require.NoError(t, handler.Redirect("/loans").Render(rec, httptest.NewRequest(http.MethodPost, "/loans/apply", nil)))
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/loans", rec.Header().Get("Location"))
	})

	t.Run("datastar", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		require.NoError(t, handler.Redirect("/loans").Render(rec, datastarRequest(http.MethodPost, "/loans/apply")))
		assert.Contains(t, rec.Body.String(), "/loans")
		assert.Empty(t, rec.Header().Get("Location"))
	})

	t.Run("back to same host referer", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/logout", nil)
		req.Header.Set("Referer", "http://example.com/market")
		rec := httptest.NewRecorder()
		require.NoError(t, handler.RedirectBack("/").Render(rec, req))
		assert.Equal(t, "http://example.com/market", rec.Header().Get("Location"))
	})

	t.Run("back ignores foreign referer", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/logout", nil)
		req.Header.Set("Referer", "https://evil.test/phish")
		rec := httptest.NewRecorder()
		require.NoError(t, handler.RedirectBack("/").Render(rec, req))
		assert.Equal(t, "/", rec.Header().Get("Location"))
	})
}

func TestIsSafeRedirect(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for target, want := range map[string]bool{
		"/loans":                   true,
		"/market/1/accept?x=1":     true,
		"http://example.com/loans": true,
		"//evil.test":              false,
		`/\evil.test`:              false,
		"https://evil.test/":       false,
		"javascript:alert(1)":      false,
	} {
		assert.Equal(t, want, handler.IsSafeRedirect(target, req), target)
	}
}
