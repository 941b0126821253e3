package binder_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microfin-hq/microfin/binder"
	"github.com/microfin-hq/microfin/pkg/validator"
)

func TestQuery(t *testing.T) {
	t.Parallel()

	type query struct {
		Path     string   `query:"path"`
		Page     int      `query:"page"`
		Rate     float64  `query:"rate"`
		Open     bool     `query:"open"`
		Limit    *uint    `query:"limit"`
		Tags     []string `query:"tag"`
		Internal string   `query:"-"`
	}

	t.Run("binds all kinds", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/?path=%2Floan_terms&page=2&rate=0.12&open=on&limit=5&tag=a,b&tag=c&internal=x", nil)

		var q query
		require.NoError(t, binder.Query()(r, &q))
		assert.Equal(t, "/loan_terms", q.Path)
		assert.Equal(t, 2, q.Page)
		assert.Equal(t, 0.12, q.Rate)
		assert.True(t, q.Open)
		require.NotNil(t, q.Limit)
		assert.Equal(t, uint(5), *q.Limit)
		assert.Equal(t, []string{"a", "b", "c"}, q.Tags)
		assert.Empty(t, q.Internal)
	})

	t.Run("invalid number", func(t *testing.T) {
		t.Parallel()
		var q query
		err := binder.Query()(httptest.NewRequest(http.MethodGet, "/?page=two", nil), &q)
		assert.ErrorIs(t, err, binder.ErrInvalidQuery)
		assert.True(t, binder.IsBindError(err))
	})

	t.Run("non struct target", func(t *testing.T) {
		t.Parallel()
		var s string
		err := binder.Query()(httptest.NewRequest(http.MethodGet, "/?path=x", nil), &s)
		assert.ErrorIs(t, err, binder.ErrNotApplicable)
	})
}

func TestPath(t *testing.T) {
	t.Parallel()

	type params struct {
		ID string `path:"id"`
	}
	extract := func(_ *http.Request, name string) string {
		if name == "id" {
			return "a1"
		}
		return ""
	}

	var p params
	require.NoError(t, binder.Path(extract)(httptest.NewRequest(http.MethodGet, "/", nil), &p))
	assert.Equal(t, "a1", p.ID)
}

func TestForm(t *testing.T) {
	t.Parallel()

	type form struct {
		Amount float64 `form:"amount"`
		Term   int     `form:"term_months"`
	}

	t.Run("urlencoded", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(url.Values{"amount": {"5000"}, "term_months": {"12"}}.Encode()))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		var f form
		require.NoError(t, binder.Form()(r, &f))
		assert.Equal(t, 5000.0, f.Amount)
		assert.Equal(t, 12, f.Term)
	})

	t.Run("no body", func(t *testing.T) {
		t.Parallel()
		var f form
		err := binder.Form()(httptest.NewRequest(http.MethodPost, "/", nil), &f)
		assert.ErrorIs(t, err, binder.ErrNotApplicable)
	})

	t.Run("wrong media type", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("x"))
		r.Header.Set("Content-Type", "text/plain")
		var f form
		assert.ErrorIs(t, binder.Form()(r, &f), binder.ErrUnsupportedMediaType)
	})
}

func TestJSON(t *testing.T) {
	t.Parallel()

	type body struct {
		Title string `json:"title"`
	}
	newReq := func(payload string) *http.Request {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload))
		r.Header.Set("Content-Type", "application/json; charset=utf-8")
		return r
	}

	tests := []struct {
		name    string
		payload string
		want    string
		err     error
	}{
		{name: "valid", payload: `{"title":"Bakery loan"}`, want: "Bakery loan"},
		{name: "unknown field", payload: `{"title":"x","extra":1}`, err: binder.ErrInvalidJSON},
		{name: "trailing data", payload: `{"title":"x"} {}`, err: binder.ErrInvalidJSON},
		{name: "empty", payload: ``, err: binder.ErrInvalidJSON},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var b body
			err := binder.JSON()(newReq(tt.payload), &b)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, b.Title)
		})
	}

	t.Run("missing content type", func(t *testing.T) {
		t.Parallel()
		var b body
		err := binder.JSON()(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`)), &b)
		assert.ErrorIs(t, err, binder.ErrMissingContentType)
	})
}

type recordTarget struct {
	ID     string `path:"id"`
	Record validator.Record
}

func (t *recordTarget) SetRecord(rec validator.Record) { t.Record = rec }

func TestRecord(t *testing.T) {
	t.Parallel()

	t.Run("form values", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("amount=5000&tag=a&tag=b"))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		var rec validator.Record
		require.NoError(t, binder.Record()(r, &rec))
		assert.Equal(t, validator.Record{"amount": "5000", "tag": []string{"a", "b"}}, rec)
	})

	t.Run("json keeps numbers", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"amount": 5000, "purpose": "stock"}`))
		r.Header.Set("Content-Type", "application/json")

		var target recordTarget
		require.NoError(t, binder.Record()(r, &target))
		assert.Equal(t, json.Number("5000"), target.Record["amount"])
		assert.Equal(t, "stock", target.Record.String("purpose"))
	})

	t.Run("unsupported target", func(t *testing.T) {
		t.Parallel()
		var s struct{}
		err := binder.Record()(httptest.NewRequest(http.MethodPost, "/", strings.NewReader("a=1")), &s)
		assert.ErrorIs(t, err, binder.ErrNotApplicable)
	})

	t.Run("no body", func(t *testing.T) {
		t.Parallel()
		var rec validator.Record
		err := binder.Record()(httptest.NewRequest(http.MethodGet, "/", nil), &rec)
		assert.ErrorIs(t, err, binder.ErrNotApplicable)
		assert.Nil(t, rec)
	})
}
