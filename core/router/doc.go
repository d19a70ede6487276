// Package router adapts go-chi/chi to generic, typed handlers.
//
// Handlers receive an application-defined context C instead of the
// (http.ResponseWriter, *http.Request) pair and return a handler.Response that
// the router renders. Errors returned by a response, nil responses, panics and
// unmatched routes are all funneled into a single ErrorHandler so applications
// render failures in one place.
//
//	r := router.New[*router.Context](
//		router.WithErrorHandler(renderError),
//		router.WithMiddleware(middleware.RequestID[*router.Context]()),
//	)
//	r.Get("/bookings/{id}", func(ctx *router.Context) handler.Response {
//		return response.JSON(map[string]string{"id": ctx.Param("id")})
//	})
//	http.ListenAndServe(":8080", r)
//
// Middlewares registered with Use apply to the routes registered after the
// call. Group and With derive routers that share the route tree but carry their
// own middleware stack; Route mounts a chi sub-router under a path prefix.
//
// Applications with their own request state provide a context factory:
//
//	router.New[*app.Context](router.WithContextFactory(app.NewContext))
package router
