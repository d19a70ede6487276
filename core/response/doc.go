// Package response builds handler.Response values.
//
// A Response is a deferred renderer: handlers return it and the router invokes
// it with the final writer, so a handler never writes directly. Rendering
// errors bubble up to the router's error handler.
//
//	func show(ctx *router.Context) handler.Response {
//		if ctx.Param("id") == "" {
//			return response.Error(response.ErrNotFound)
//		}
//		return response.Templ(pages.Booking(b))
//	}
//
// Redirects are HTMX-aware: a request carrying HX-Request receives HX-Location
// with 200 OK instead of a 3xx status so the client performs the navigation.
package response
