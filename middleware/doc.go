// Package middleware provides the HTTP middleware stack of the marketplace
// front end, written against the generic handler types of core/handler.
//
// Every middleware follows the same shape: a zero-config constructor, a
// WithConfig variant taking a config struct with an optional Skip predicate,
// and an accessor for any value it stores on the request context.
//
//	r := router.New[*app.Context]()
//	r.Use(
//		middleware.RequestID[*app.Context](),
//		middleware.ClientIP[*app.Context](),
//		middleware.LoggingWithLogger[*app.Context](log),
//		middleware.Session[*app.Context](sessions),
//		middleware.Guard[*app.Context](accesspolicy.Default(), log),
//	)
//
// Order matters: Session must run before Guard, and RequestID before Logging
// so the id appears in the access log.
package middleware
