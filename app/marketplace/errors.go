package marketplace

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/marketplace/core/logger"
	"github.com/dmitrymomot/marketplace/core/response"
	"github.com/dmitrymomot/marketplace/core/router"
)

// errorHandler renders router and handler errors as HTML pages.
func (a *App) errorHandler(ctx *Context, err error) {
	status := router.StatusCode(err)
	data := errorView{
		layout: layout{
			Title:    "Something went wrong",
			SignedIn: ctx.Session().HasToken(),
		},
		StatusCode: status,
		Message:    http.StatusText(status),
	}
	if title, ok := statusTitles[status]; ok {
		data.Title = title
	}

	var httpErr response.HTTPError
	if status < http.StatusInternalServerError && errors.As(err, &httpErr) && httpErr.Message != "" {
		data.Message = httpErr.Message
	}
	if status >= http.StatusInternalServerError {
		a.log.ErrorContext(ctx, "request failed", logger.Component("http"), logger.Error(err))
	}

	w := ctx.ResponseWriter()
	if rerr := renderWithStatus(a.views.error, data, status)(w, ctx.Request()); rerr != nil {
		http.Error(w, data.Message, status)
	}
}
