package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/marketplace/core/cookie"
)

const (
	secretA = "0123456789abcdef0123456789abcdef"
	secretB = "fedcba9876543210fedcba9876543210"
)

// roundTrip copies Set-Cookie headers from rec into a fresh request.
func roundTrip(rec *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge >= 0 {
			req.AddCookie(c)
		}
	}
	return req
}

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := cookie.New(nil)
	assert.ErrorIs(t, err, cookie.ErrNoSecret)

	_, err = cookie.New([]string{"", ""})
	assert.ErrorIs(t, err, cookie.ErrNoSecret)

	_, err = cookie.New([]string{"short"})
	assert.ErrorIs(t, err, cookie.ErrSecretTooShort)

	m, err := cookie.New([]string{secretA})
	require.NoError(t, err)
	assert.NotNil(t, m)
}

func TestManager_PlainCookies(t *testing.T) {
	t.Parallel()

	m, err := cookie.New([]string{secretA})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, m.Set(rec, "theme", "dark", cookie.WithMaxAge(60)))

	set := rec.Result().Cookies()
	require.Len(t, set, 1)
	assert.Equal(t, "/", set[0].Path)
	assert.True(t, set[0].HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, set[0].SameSite)
	assert.Equal(t, 60, set[0].MaxAge)

	got, err := m.Get(roundTrip(rec), "theme")
	require.NoError(t, err)
	assert.Equal(t, "dark", got)

	_, err = m.Get(httptest.NewRequest(http.MethodGet, "/", nil), "theme")
	assert.ErrorIs(t, err, cookie.ErrCookieNotFound)

	rec = httptest.NewRecorder()
	m.Delete(rec, "theme")
	deleted := rec.Result().Cookies()
	require.Len(t, deleted, 1)
	assert.Equal(t, -1, deleted[0].MaxAge)
}

func TestManager_SignedCookies(t *testing.T) {
	t.Parallel()

	m, err := cookie.New([]string{secretA})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, m.SetSigned(rec, "userId", "u-1"))

	got, err := m.GetSigned(roundTrip(rec), "userId")
	require.NoError(t, err)
	assert.Equal(t, "u-1", got)

	t.Run("tampered", func(t *testing.T) {
		t.Parallel()
		raw := rec.Result().Cookies()[0].Value
		encoded, sig, _ := strings.Cut(raw, "|")
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "userId", Value: encoded + "x|" + sig})
		_, err := m.GetSigned(req, "userId")
		assert.Error(t, err)
	})

	t.Run("malformed", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "userId", Value: "no-separator"})
		_, err := m.GetSigned(req, "userId")
		assert.ErrorIs(t, err, cookie.ErrInvalidFormat)
	})
}

func TestManager_EncryptedCookies(t *testing.T) {
	t.Parallel()

	m, err := cookie.New([]string{secretA})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, m.SetEncrypted(rec, "accessToken", "tok-123"))
	assert.NotContains(t, rec.Header().Get("Set-Cookie"), "tok-123")

	got, err := m.GetEncrypted(roundTrip(rec), "accessToken")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", got)

	other, err := cookie.New([]string{secretB})
	require.NoError(t, err)
	_, err = other.GetEncrypted(roundTrip(rec), "accessToken")
	assert.ErrorIs(t, err, cookie.ErrDecryptionFailed)
}

func TestManager_KeyRotation(t *testing.T) {
	t.Parallel()

	old, err := cookie.New([]string{secretA})
	require.NoError(t, err)
	rotated, err := cookie.New([]string{secretB, secretA})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, old.SetSigned(rec, "s", "signed"))
	require.NoError(t, old.SetEncrypted(rec, "e", "encrypted"))
	req := roundTrip(rec)

	s, err := rotated.GetSigned(req, "s")
	require.NoError(t, err)
	assert.Equal(t, "signed", s)

	e, err := rotated.GetEncrypted(req, "e")
	require.NoError(t, err)
	assert.Equal(t, "encrypted", e)
}

func TestManager_Flash(t *testing.T) {
	t.Parallel()

	m, err := cookie.New([]string{secretA})
	require.NoError(t, err)

	type toast struct {
		Title string `json:"title"`
		Kind  string `json:"kind"`
	}

	rec := httptest.NewRecorder()
	require.NoError(t, m.SetFlash(rec, "toast", toast{Title: "Login Successful", Kind: "success"}))

	readRec := httptest.NewRecorder()
	var got toast
	require.NoError(t, m.GetFlash(readRec, roundTrip(rec), "toast", &got))
	assert.Equal(t, "Login Successful", got.Title)

	// Reading expires the cookie.
	expired := readRec.Result().Cookies()
	require.Len(t, expired, 1)
	assert.Equal(t, -1, expired[0].MaxAge)
}

func TestManager_SizeLimit(t *testing.T) {
	t.Parallel()

	m, err := cookie.New([]string{secretA})
	require.NoError(t, err)

	err = m.Set(httptest.NewRecorder(), "big", strings.Repeat("x", cookie.MaxCookieSize))
	var tooLarge cookie.ErrCookieTooLarge
	require.ErrorAs(t, err, &tooLarge)
	assert.Equal(t, "big", tooLarge.Name)
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	m, err := cookie.NewFromConfig(cookie.Config{
		Secrets:  " " + secretB + " , " + secretA,
		Path:     "/",
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, m.Set(rec, "a", "b"))
	c := rec.Result().Cookies()[0]
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)

	_, err = cookie.NewFromConfig(cookie.Config{})
	assert.ErrorIs(t, err, cookie.ErrNoSecret)
}
