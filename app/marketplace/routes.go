package marketplace

import (
	"github.com/dmitrymomot/marketplace/core/handler"
	"github.com/dmitrymomot/marketplace/core/health"
	"github.com/dmitrymomot/marketplace/core/logger"
	"github.com/dmitrymomot/marketplace/core/response"
	"github.com/dmitrymomot/marketplace/core/router"
	"github.com/dmitrymomot/marketplace/core/static"
	"github.com/dmitrymomot/marketplace/middleware"
	"github.com/dmitrymomot/marketplace/pkg/accesspolicy"
)

func (a *App) routes() router.Router[*Context] {
	headers := middleware.DefaultSecurityHeaders
	headers.IsDevelopment = a.cfg.IsDevelopment()

	// Session and Guard are router-wide so unmatched paths are guarded too.
	r := router.New[*Context](
		router.WithContextFactory[*Context](newContext),
		router.WithErrorHandler[*Context](a.errorHandler),
		router.WithLogger[*Context](a.log),
		router.WithMiddleware(
			middleware.RequestID[*Context](),
			middleware.ClientIP[*Context](),
			middleware.LoggingWithLogger[*Context](a.log.With(logger.Component("http.request"))),
			middleware.SecurityHeadersWithConfig[*Context](headers),
			middleware.BodyLimit[*Context](),
			middleware.Session[*Context](a.sessions),
			middleware.Guard[*Context](accesspolicy.Default(a.cfg.ProtectedPrefixes...), a.log),
		),
	)

	r.Get("/live", health.Liveness[*Context])
	r.Get("/ready", health.Readiness[*Context](a.log, a.checks...))
	r.Get("/assets/*", static.FS[*Context](assetFS,
		static.WithSubFS("assets"),
		static.WithFSStripPrefix("/assets"),
		static.WithMaxAge(3600),
	))

	r.Get("/", func(*Context) handler.Response {
		return response.Redirect(accesspolicy.LoginPath)
	})
	r.Get(accesspolicy.LoginPath, a.loginPage)
	r.Get(accesspolicy.SignUpPath, a.signUpPage)
	r.Group(func(r router.Router[*Context]) {
		r.Use(middleware.RateLimitWithConfig[*Context](a.rateLimit))
		r.Post(accesspolicy.LoginPath, a.login)
		r.Post(accesspolicy.SignUpPath, a.signUp)
	})
	r.Post("/logout", a.logout)

	r.Route(accesspolicy.HomePath, func(r router.Router[*Context]) {
		r.Get("/", a.servicesPage)
		r.Post("/services", a.createService)
		r.Post("/becomeProvider", a.becomeProvider)
		r.Post("/book", a.book)

		r.Get("/bookings", a.bookingsPage)
		r.Post("/bookings/{id}/status", a.setBookingStatus)
		r.Post("/bookings/{id}/payment", a.payBooking)
		r.Post("/bookings/{id}/cancel", a.cancelBooking)
	})

	return r
}
