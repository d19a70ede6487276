package binder_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/marketplace/core/binder"
)

type serviceForm struct {
	Name     string   `form:"name"`
	Price    float64  `form:"price"`
	Location string   `form:"location"`
	Tags     []string `form:"tag"`
	Confirm  bool     `form:"confirm"`
	Note     *string  `form:"note"`
	Internal string   `form:"-"`
}

func postForm(values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestForm(t *testing.T) {
	t.Parallel()

	t.Run("binds tagged fields", func(t *testing.T) {
		t.Parallel()
		req := postForm(url.Values{
			"name":     {"  Plumbing  "},
			"price":    {"499.5"},
			"location": {"Jaipur"},
			"tag":      {"home", "repair"},
			"confirm":  {"yes"},
			"note":     {"evening"},
			"Internal": {"ignored"},
		})
		var f serviceForm
		require.NoError(t, binder.Form()(req, &f))
		assert.Equal(t, "Plumbing", f.Name)
		assert.InDelta(t, 499.5, f.Price, 0.0001)
		assert.Equal(t, "Jaipur", f.Location)
		assert.Equal(t, []string{"home", "repair"}, f.Tags)
		assert.True(t, f.Confirm)
		require.NotNil(t, f.Note)
		assert.Equal(t, "evening", *f.Note)
		assert.Empty(t, f.Internal)
	})

	t.Run("empty number leaves zero", func(t *testing.T) {
		t.Parallel()
		var f serviceForm
		require.NoError(t, binder.Form()(postForm(url.Values{"price": {""}}), &f))
		assert.Zero(t, f.Price)
	})

	t.Run("invalid number", func(t *testing.T) {
		t.Parallel()
		var f serviceForm
		err := binder.Form()(postForm(url.Values{"price": {"abc"}}), &f)
		assert.ErrorIs(t, err, binder.ErrFailedToParseForm)
	})

	t.Run("wrong content type", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{}"))
		req.Header.Set("Content-Type", "application/json")
		var f serviceForm
		assert.ErrorIs(t, binder.Form()(req, &f), binder.ErrUnsupportedMediaType)
	})

	t.Run("missing content type", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		var f serviceForm
		assert.ErrorIs(t, binder.Form()(req, &f), binder.ErrMissingContentType)
	})

	t.Run("non pointer target", func(t *testing.T) {
		t.Parallel()
		assert.ErrorIs(t, binder.Form()(postForm(url.Values{}), serviceForm{}), binder.ErrFailedToParseForm)
	})
}

func TestQuery(t *testing.T) {
	t.Parallel()

	type filter struct {
		Nearby bool   `query:"nearby"`
		City   string `query:"city"`
	}

	req := httptest.NewRequest(http.MethodGet, "/availableServices?nearby=1&city=Kota", nil)
	var f filter
	require.NoError(t, binder.Bind(req, &f, binder.Query()))
	assert.True(t, f.Nearby)
	assert.Equal(t, "Kota", f.City)
}
