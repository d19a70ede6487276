package handler

import (
	"context"
	"net/http"
)

// Context is the request context every handler and middleware receives.
// router.Context is the default implementation; applications embed it to add
// request-scoped state such as the current session.
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter
	Param(key string) string
	SetValue(key, val any)
}
