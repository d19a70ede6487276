// Package handler defines the request-processing contract shared by the router,
// middleware and page handlers of the marketplace front end.
//
// A handler receives a typed request context and returns a Response. The Response
// is a deferred renderer: it only writes to the http.ResponseWriter when the router
// invokes it, which lets middleware decorate or replace it before anything reaches
// the client.
//
//	type Response func(w http.ResponseWriter, r *http.Request) error
//	type HandlerFunc[C Context] func(ctx C) Response
//	type Middleware[C Context] func(next HandlerFunc[C]) HandlerFunc[C]
//
// Any type implementing Context can be used as the request context. The application
// context in app/marketplace embeds the request and adds the injected session and
// the session workspace.
//
// Render errors returned by a Response are passed to the router's ErrorHandler.
package handler
