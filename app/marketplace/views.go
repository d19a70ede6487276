package marketplace

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/marketplace/app/marketplace/composer"
	"github.com/dmitrymomot/marketplace/app/marketplace/domain"
	"github.com/dmitrymomot/marketplace/core/handler"
	"github.com/dmitrymomot/marketplace/core/response"
)

var (
	//go:embed templates/*.html
	templateFS embed.FS
	//go:embed assets/*
	assetFS embed.FS
)

type views struct {
	login    *template.Template
	signUp   *template.Template
	services *template.Template
	bookings *template.Template
	confirm  *template.Template
	error    *template.Template
}

func loadViews() (*views, error) {
	var (
		v   views
		err error
	)
	pages := []struct {
		dst  **template.Template
		file string
	}{
		{&v.login, "login.html"},
		{&v.signUp, "signup.html"},
		{&v.services, "services.html"},
		{&v.bookings, "bookings.html"},
		{&v.confirm, "confirm.html"},
		{&v.error, "error.html"},
	}
	for _, p := range pages {
		*p.dst, err = template.ParseFS(templateFS, "templates/layout.html", "templates/"+p.file)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", p.file, err)
		}
	}
	return &v, nil
}

func render(t *template.Template, data any) handler.Response {
	return response.Templ(templ.FromGoHTML(t, data))
}

func renderWithStatus(t *template.Template, data any, status int) handler.Response {
	return response.TemplWithStatus(templ.FromGoHTML(t, data), status)
}

// layout is the data every page shares.
type layout struct {
	Title    string
	SignedIn bool
	Provider bool
	Notices  []composer.Notification
}

type loginView struct {
	layout
	Email string
}

type signUpView struct {
	layout
	Form   domain.NewUser
	Cities []string
}

type servicesView struct {
	layout
	// Banner replaces the page body when the current user cannot be resolved.
	Banner     string
	User       domain.User
	ByLocation bool
	Services   []serviceView
	Cities     []string
}

type serviceView struct {
	domain.Service
	CanBook bool
}

type bookingsView struct {
	layout
	Banner   string
	Bookings []bookingView
}

type bookingView struct {
	ID            string
	ServiceName   string
	Time          string
	Status        domain.Status
	PaymentStatus domain.PaymentStatus
	Pending       bool
	Next          []domain.Status
	Payable       bool
	Cancellable   bool
}

type confirmView struct {
	layout
	Message string
	Action  string
	Fields  map[string]string
	Back    string
}

type errorView struct {
	layout
	StatusCode int
	Message    string
}

func newServiceViews(ctx context.Context, ws *composer.Workspace, services []domain.Service) []serviceView {
	out := make([]serviceView, 0, len(services))
	for _, s := range services {
		out = append(out, serviceView{Service: s, CanBook: ws.CanBook(ctx, s)})
	}
	return out
}

func newBookingViews(entries []composer.BookingEntry, provider bool) []bookingView {
	out := make([]bookingView, 0, len(entries))
	for _, e := range entries {
		b := e.Value
		v := bookingView{
			ID:            b.ID,
			ServiceName:   b.ServiceID,
			Status:        b.Status,
			PaymentStatus: b.PaymentStatus,
			Pending:       e.Pending,
		}
		if b.Service != nil && b.Service.Name != "" {
			v.ServiceName = b.Service.Name
		}
		if !b.BookingTime.IsZero() {
			v.Time = b.BookingTime.Format("02 Jan 2006 15:04")
		}
		if !e.Pending {
			if provider {
				if !b.Status.Final() {
					v.Next = b.Status.Next()
				}
			} else {
				v.Payable = b.Payable()
				v.Cancellable = b.Status == domain.StatusPending
			}
		}
		out = append(out, v)
	}
	return out
}

var statusTitles = map[int]string{
	http.StatusNotFound:         "Page not found",
	http.StatusMethodNotAllowed: "Method not allowed",
	http.StatusTooManyRequests:  "Too many requests",
}
