package marketplace

import (
	"net/http"

	"github.com/dmitrymomot/marketplace/core/router"
	"github.com/dmitrymomot/marketplace/core/session"
	"github.com/dmitrymomot/marketplace/middleware"
)

// Context is the request context of every marketplace handler.
type Context struct {
	*router.Context
}

func newContext(w http.ResponseWriter, r *http.Request) *Context {
	return &Context{Context: router.NewContext(w, r)}
}

// Session returns the session injected by the session middleware. It is
// the zero Session for anonymous requests.
func (c *Context) Session() session.Session {
	s, _ := middleware.SessionFrom(c)
	return s
}
