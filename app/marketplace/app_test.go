package marketplace_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/marketplace/app/marketplace"
	"github.com/dmitrymomot/marketplace/app/marketplace/composer"
	"github.com/dmitrymomot/marketplace/app/marketplace/domain"
	"github.com/dmitrymomot/marketplace/core/cookie"
	"github.com/dmitrymomot/marketplace/core/session"
	"github.com/dmitrymomot/marketplace/integration/backend"
	"github.com/dmitrymomot/marketplace/middleware"
)

// fakeAPI is an in-memory marketplace API that records every call.
type fakeAPI struct {
	mu          sync.Mutex
	calls       []string
	user        domain.User
	userMissing bool
	loginFails  bool
	services    []domain.Service
	bookings    []map[string]any
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		user: domain.User{ID: "u1", Name: "Asha", Email: "asha@example.com", Address: "Jaipur"},
		services: []domain.Service{
			{ID: "s1", Name: "Plumbing", Type: "Home", Price: 499, Location: "Jaipur", ProviderID: "p1"},
			{ID: "s2", Name: "Tutoring", Type: "Education", Price: 300, Location: "Kota", ProviderID: "u1"},
		},
		bookings: []map[string]any{
			{"_id": "b1", "service": "s1", "userId": "u1", "providerId": "p1", "bookingTime": "2024-05-01T10:30:00Z", "status": "pending", "paymentStatus": "pending"},
		},
	}
}

func (f *fakeAPI) handler() http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			f.mu.Lock()
			f.calls = append(f.calls, req.Method+" "+req.URL.EscapedPath())
			f.mu.Unlock()
			next.ServeHTTP(w, req)
		})
	})

	r.Post("/users/login", func(w http.ResponseWriter, _ *http.Request) {
		if f.loginFails {
			reply(w, http.StatusUnauthorized, map[string]string{"message": "invalid credentials"})
			return
		}
		reply(w, http.StatusOK, map[string]string{"userId": "u1", "accessToken": "tok-1"})
	})
	r.Post("/users", func(w http.ResponseWriter, _ *http.Request) {
		reply(w, http.StatusCreated, map[string]string{"_id": "u2"})
	})
	r.Get("/users/{id}", func(w http.ResponseWriter, _ *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.userMissing {
			reply(w, http.StatusNotFound, map[string]string{"message": "user not found"})
			return
		}
		reply(w, http.StatusOK, f.user)
	})
	r.Post("/users/becomeProvider", func(w http.ResponseWriter, _ *http.Request) {
		reply(w, http.StatusOK, map[string]string{"message": "ok"})
	})
	r.Get("/services", func(w http.ResponseWriter, _ *http.Request) {
		reply(w, http.StatusOK, f.services)
	})
	r.Get("/services/location/{loc}", func(w http.ResponseWriter, req *http.Request) {
		var out []domain.Service
		for _, s := range f.services {
			if s.Location == chi.URLParam(req, "loc") {
				out = append(out, s)
			}
		}
		reply(w, http.StatusOK, out)
	})
	r.Post("/services", func(w http.ResponseWriter, _ *http.Request) {
		reply(w, http.StatusCreated, domain.Service{ID: "s9", Name: "Yoga"})
	})
	r.Get("/bookings/user/{id}", func(w http.ResponseWriter, _ *http.Request) {
		reply(w, http.StatusOK, f.bookings)
	})
	r.Get("/bookings/provider/{id}", func(w http.ResponseWriter, _ *http.Request) {
		reply(w, http.StatusOK, f.bookings)
	})
	r.Post("/bookings", func(w http.ResponseWriter, _ *http.Request) {
		reply(w, http.StatusCreated, map[string]any{"_id": "b2", "status": "pending"})
	})
	r.Post("/bookings/{id}/status", func(w http.ResponseWriter, _ *http.Request) {
		reply(w, http.StatusOK, map[string]string{"message": "ok"})
	})
	r.Post("/bookings/{id}/payment", func(w http.ResponseWriter, _ *http.Request) {
		reply(w, http.StatusOK, map[string]string{"message": "ok"})
	})
	r.Delete("/bookings/{id}", func(w http.ResponseWriter, _ *http.Request) {
		reply(w, http.StatusOK, map[string]string{"message": "ok"})
	})
	return r
}

func (f *fakeAPI) called(call string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c == call {
			return true
		}
	}
	return false
}

func reply(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func newApp(t *testing.T, api *fakeAPI) http.Handler {
	t.Helper()
	srv := httptest.NewServer(api.handler())
	t.Cleanup(srv.Close)

	client, err := backend.New(srv.URL)
	require.NoError(t, err)
	cookies, err := cookie.New([]string{"0123456789abcdefghijklmnopqrstuvwxyz"})
	require.NoError(t, err)
	comp := composer.New(composer.Config{ReconcileTimeout: time.Second}, func(s session.Session) composer.Backend {
		return client.WithToken(s.AccessToken)
	}, nil)

	app, err := marketplace.New(marketplace.Config{Env: "test"}, cookies, comp, client,
		marketplace.WithRateLimit(middleware.RateLimitConfig{Burst: 100}))
	require.NoError(t, err)
	return app
}

// browser keeps cookies between requests like a user agent.
type browser struct {
	t       *testing.T
	app     http.Handler
	cookies map[string]*http.Cookie
}

func newBrowser(t *testing.T, app http.Handler) *browser {
	return &browser{t: t, app: app, cookies: make(map[string]*http.Cookie)}
}

func (b *browser) do(method, target string, form url.Values) (*http.Response, string) {
	b.t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, c := range b.cookies {
		req.AddCookie(&http.Cookie{Name: c.Name, Value: c.Value})
	}

	rec := httptest.NewRecorder()
	b.app.ServeHTTP(rec, req)
	res := rec.Result()
	for _, c := range res.Cookies() {
		if c.MaxAge < 0 {
			delete(b.cookies, c.Name)
			continue
		}
		b.cookies[c.Name] = c
	}
	data, err := io.ReadAll(res.Body)
	require.NoError(b.t, err)
	return res, string(data)
}

func (b *browser) get(target string) (*http.Response, string) {
	return b.do(http.MethodGet, target, nil)
}

func (b *browser) post(target string, form url.Values) (*http.Response, string) {
	return b.do(http.MethodPost, target, form)
}

func (b *browser) login() {
	b.t.Helper()
	res, _ := b.post("/login", url.Values{"email": {"asha@example.com"}, "password": {"secret"}})
	require.Equal(b.t, http.StatusSeeOther, res.StatusCode)
	require.Equal(b.t, "/availableServices", res.Header.Get("Location"))
}

func TestAnonymousNavigation(t *testing.T) {
	t.Parallel()

	app := newApp(t, newFakeAPI())

	tests := []struct {
		name     string
		path     string
		status   int
		location string
	}{
		{name: "root", path: "/", status: http.StatusFound, location: "/login"},
		{name: "services", path: "/availableServices", status: http.StatusFound, location: "/login"},
		{name: "bookings", path: "/availableServices/bookings", status: http.StatusFound, location: "/login"},
		{name: "login", path: "/login", status: http.StatusOK},
		{name: "sign up", path: "/signUp", status: http.StatusOK},
		{name: "liveness", path: "/live", status: http.StatusOK},
		{name: "stylesheet", path: "/assets/app.css", status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res, _ := newBrowser(t, app).get(tt.path)
			assert.Equal(t, tt.status, res.StatusCode)
			assert.Equal(t, tt.location, res.Header.Get("Location"))
		})
	}
}

func TestNotFoundPage(t *testing.T) {
	t.Parallel()

	res, body := newBrowser(t, newApp(t, newFakeAPI())).get("/nowhere")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Contains(t, res.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, body, "Page not found")
}

func TestLogin(t *testing.T) {
	t.Parallel()

	t.Run("success starts session", func(t *testing.T) {
		t.Parallel()

		b := newBrowser(t, newApp(t, newFakeAPI()))
		b.login()
		assert.Contains(t, b.cookies, "userId")
		assert.Contains(t, b.cookies, "accessToken")

		res, body := b.get("/availableServices")
		require.Equal(t, http.StatusOK, res.StatusCode)
		assert.Contains(t, body, "Login Successful")
		assert.Contains(t, body, "Welcome, Asha")

		res, _ = b.get("/login")
		assert.Equal(t, http.StatusFound, res.StatusCode)
		assert.Equal(t, "/availableServices", res.Header.Get("Location"))
	})

	t.Run("rejected credentials", func(t *testing.T) {
		t.Parallel()

		api := newFakeAPI()
		api.loginFails = true
		b := newBrowser(t, newApp(t, api))

		res, body := b.post("/login", url.Values{"email": {"asha@example.com"}, "password": {"wrong"}})
		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Contains(t, body, "Invalid Credentials")
		assert.NotContains(t, b.cookies, "accessToken")
	})

	t.Run("missing fields never reach the API", func(t *testing.T) {
		t.Parallel()

		api := newFakeAPI()
		b := newBrowser(t, newApp(t, api))

		_, body := b.post("/login", url.Values{"email": {""}, "password": {""}})
		assert.Contains(t, body, "Login Failed")
		assert.False(t, api.called("POST /users/login"))
	})
}

func TestSignUp(t *testing.T) {
	t.Parallel()

	form := func(city string) url.Values {
		return url.Values{
			"name":        {"Ravi"},
			"email":       {"ravi@example.com"},
			"password":    {"secret"},
			"phoneNumber": {"9876543210"},
			"city":        {city},
		}
	}

	t.Run("creates account", func(t *testing.T) {
		t.Parallel()

		api := newFakeAPI()
		b := newBrowser(t, newApp(t, api))

		res, _ := b.post("/signUp", form("Udaipur"))
		assert.Equal(t, http.StatusSeeOther, res.StatusCode)
		assert.Equal(t, "/login", res.Header.Get("Location"))
		assert.True(t, api.called("POST /users"))

		_, body := b.get("/login")
		assert.Contains(t, body, "User Created Successfully")
	})

	t.Run("unknown city", func(t *testing.T) {
		t.Parallel()

		api := newFakeAPI()
		b := newBrowser(t, newApp(t, api))

		res, body := b.post("/signUp", form("Mumbai"))
		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Contains(t, body, "Sign Up Failed")
		assert.Contains(t, body, `value="Ravi"`)
		assert.False(t, api.called("POST /users"))
	})
}

func TestServicesPage(t *testing.T) {
	t.Parallel()

	t.Run("consumer sees book now for other providers", func(t *testing.T) {
		t.Parallel()

		b := newBrowser(t, newApp(t, newFakeAPI()))
		b.login()

		_, body := b.get("/availableServices")
		assert.Contains(t, body, "Plumbing")
		assert.Contains(t, body, "Tutoring")
		assert.Equal(t, 1, strings.Count(body, "Book Now"))
		assert.Contains(t, body, "Become a provider")
	})

	t.Run("location filter", func(t *testing.T) {
		t.Parallel()

		api := newFakeAPI()
		b := newBrowser(t, newApp(t, api))
		b.login()

		_, body := b.get("/availableServices?location=on")
		assert.True(t, api.called("GET /services/location/Jaipur"))
		assert.Contains(t, body, "Plumbing")
		assert.NotContains(t, body, "Tutoring")
	})

	t.Run("missing user shows banner", func(t *testing.T) {
		t.Parallel()

		api := newFakeAPI()
		api.userMissing = true
		b := newBrowser(t, newApp(t, api))
		b.login()

		res, body := b.get("/availableServices")
		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Contains(t, body, "User not found")
		assert.NotContains(t, body, "Book Now")
	})
}

func TestBooking(t *testing.T) {
	t.Parallel()

	t.Run("empty time is rejected locally", func(t *testing.T) {
		t.Parallel()

		api := newFakeAPI()
		b := newBrowser(t, newApp(t, api))
		b.login()
		b.get("/availableServices")

		res, _ := b.post("/availableServices/book", url.Values{"serviceId": {"s1"}, "time": {""}})
		assert.Equal(t, http.StatusSeeOther, res.StatusCode)
		assert.False(t, api.called("POST /bookings"))

		_, body := b.get("/availableServices")
		assert.Contains(t, body, "Time is required")
	})

	t.Run("empty time straight after login issues no request", func(t *testing.T) {
		t.Parallel()

		api := newFakeAPI()
		b := newBrowser(t, newApp(t, api))
		b.login()

		res, _ := b.post("/availableServices/book", url.Values{"serviceId": {"s1"}, "time": {""}})
		assert.Equal(t, http.StatusSeeOther, res.StatusCode)
		assert.False(t, api.called("GET /services"))
		assert.False(t, api.called("POST /bookings"))
	})

	t.Run("providers cannot book", func(t *testing.T) {
		t.Parallel()

		api := newFakeAPI()
		b := newBrowser(t, newApp(t, api))
		b.login()
		b.post("/availableServices/becomeProvider", url.Values{"confirm": {"yes"}})

		_, body := b.get("/availableServices")
		assert.NotContains(t, body, "Book Now")

		res, _ := b.post("/availableServices/book", url.Values{"serviceId": {"s1"}, "time": {"2024-05-01T10:30"}})
		assert.Equal(t, http.StatusSeeOther, res.StatusCode)
		assert.False(t, api.called("POST /bookings"))
	})

	t.Run("books a listed service", func(t *testing.T) {
		t.Parallel()

		api := newFakeAPI()
		b := newBrowser(t, newApp(t, api))
		b.login()
		b.get("/availableServices")

		b.post("/availableServices/book", url.Values{"serviceId": {"s1"}, "time": {"2024-05-01T10:30"}})
		assert.True(t, api.called("POST /bookings"))

		_, body := b.get("/availableServices")
		assert.Contains(t, body, "Booking created")
	})
}

func TestBecomeProvider(t *testing.T) {
	t.Parallel()

	api := newFakeAPI()
	b := newBrowser(t, newApp(t, api))
	b.login()
	b.get("/availableServices")

	res, body := b.post("/availableServices/becomeProvider", url.Values{})
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, `name="confirm" value="yes"`)
	assert.False(t, api.called("POST /users/becomeProvider"))

	res, _ = b.post("/availableServices/becomeProvider", url.Values{"confirm": {"yes"}})
	assert.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.True(t, api.called("POST /users/becomeProvider"))

	// the API still reports a consumer; the promotion sticks for the session
	_, body = b.get("/availableServices")
	assert.Contains(t, body, "List a new service")
	assert.NotContains(t, body, "Become a provider")
}

func TestProviderSetsBookingStatus(t *testing.T) {
	t.Parallel()

	api := newFakeAPI()
	api.user.IsProvider = true
	b := newBrowser(t, newApp(t, api))
	b.login()

	_, body := b.get("/availableServices/bookings")
	assert.Contains(t, body, "Booking requests")
	assert.Contains(t, body, "Mark completed")

	res, body := b.post("/availableServices/bookings/b1/status", url.Values{"status": {"cancelled"}})
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, `name="status" value="cancelled"`)
	assert.False(t, api.called("POST /bookings/b1/status"))

	res, _ = b.post("/availableServices/bookings/b1/status", url.Values{"status": {"completed"}})
	assert.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/availableServices/bookings", res.Header.Get("Location"))
	assert.Eventually(t, func() bool {
		return api.called("POST /bookings/b1/status")
	}, time.Second, 10*time.Millisecond)
}

func TestConsumerBookings(t *testing.T) {
	t.Parallel()

	api := newFakeAPI()
	b := newBrowser(t, newApp(t, api))
	b.login()

	_, body := b.get("/availableServices/bookings")
	assert.Contains(t, body, "My bookings")
	assert.Contains(t, body, "Plumbing")
	assert.Contains(t, body, "Cancel booking")

	res, _ := b.post("/availableServices/bookings/b1/cancel", url.Values{"confirm": {"yes"}})
	assert.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.True(t, api.called("DELETE /bookings/b1"))

	_, body = b.get("/availableServices/bookings")
	assert.Contains(t, body, "Booking cancelled")
}

func TestLogout(t *testing.T) {
	t.Parallel()

	b := newBrowser(t, newApp(t, newFakeAPI()))
	b.login()

	res, _ := b.post("/logout", url.Values{})
	assert.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.NotContains(t, b.cookies, "userId")
	assert.NotContains(t, b.cookies, "accessToken")

	res, _ = b.get("/availableServices")
	assert.Equal(t, http.StatusFound, res.StatusCode)
	assert.Equal(t, "/login", res.Header.Get("Location"))
}
