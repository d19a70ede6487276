package marketplace

import (
	"errors"

	"github.com/dmitrymomot/marketplace/app/marketplace/composer"
	"github.com/dmitrymomot/marketplace/app/marketplace/domain"
	"github.com/dmitrymomot/marketplace/core/cookie"
	"github.com/dmitrymomot/marketplace/core/handler"
	"github.com/dmitrymomot/marketplace/core/logger"
	"github.com/dmitrymomot/marketplace/core/response"
	"github.com/dmitrymomot/marketplace/pkg/accesspolicy"
)

const flashKey = "notices"

func success(title, message string) composer.Notification {
	return composer.Notification{Level: composer.LevelSuccess, Title: title, Message: message}
}

func failure(title string, err error) composer.Notification {
	return composer.Notification{Level: composer.LevelError, Title: title, Message: domain.Message(err)}
}

func failureText(title, message string) composer.Notification {
	return composer.Notification{Level: composer.LevelError, Title: title, Message: message}
}

// flash stores n for the next rendered page.
func (a *App) flash(ctx *Context, n composer.Notification) {
	if err := a.cookies.SetFlash(ctx.ResponseWriter(), flashKey, []composer.Notification{n}); err != nil {
		a.log.WarnContext(ctx, "set flash notice", logger.Error(err))
	}
}

// notices collects the flashed notice and, when ws is set, the queued
// workspace notifications.
func (a *App) notices(ctx *Context, ws *composer.Workspace) []composer.Notification {
	var notes []composer.Notification
	err := a.cookies.GetFlash(ctx.ResponseWriter(), ctx.Request(), flashKey, &notes)
	if err != nil && !errors.Is(err, cookie.ErrCookieNotFound) {
		a.log.WarnContext(ctx, "read flash notice", logger.Error(err))
	}
	if ws != nil {
		notes = append(notes, ws.Notifications()...)
	}
	return notes
}

func (a *App) layout(ctx *Context, title string, ws *composer.Workspace) layout {
	return layout{
		Title:    title,
		SignedIn: ctx.Session().HasToken(),
		Notices:  a.notices(ctx, ws),
	}
}

// workspace returns the session's workspace. A token without a user id
// cannot be served, so such a session is ended.
func (a *App) workspace(ctx *Context) (*composer.Workspace, handler.Response) {
	ws, err := a.composer.Workspace(ctx.Session())
	if err != nil {
		return nil, a.expire(ctx)
	}
	return ws, nil
}

// expire ends the session and sends the user to the login page.
func (a *App) expire(ctx *Context) handler.Response {
	s := ctx.Session()
	a.sessions.End(ctx.ResponseWriter())
	a.composer.Drop(ctx, s)
	a.flash(ctx, failure("Session expired", domain.ErrUnauthorized))
	return response.RedirectSeeOther(accesspolicy.LoginPath)
}

func expired(err error) bool {
	return errors.Is(err, domain.ErrUnauthorized) || errors.Is(err, domain.ErrNoSession)
}

// settle redirects a form action back to back. ok is flashed on success
// unless it is empty; failures flash their message.
func (a *App) settle(ctx *Context, back string, ok composer.Notification, err error) handler.Response {
	switch {
	case err == nil:
		if ok.Message != "" {
			a.flash(ctx, ok)
		}
	case expired(err):
		return a.expire(ctx)
	default:
		a.flash(ctx, failure("Error", err))
	}
	return response.RedirectSeeOther(back)
}

// confirm asks the user to confirm the posted action. Confirming posts
// fields back to the same path with confirm=yes.
func (a *App) confirm(ctx *Context, ws *composer.Workspace, title, message, back string, fields map[string]string) handler.Response {
	return render(a.views.confirm, confirmView{
		layout:  a.layout(ctx, title, ws),
		Message: message,
		Action:  ctx.Request().URL.Path,
		Fields:  fields,
		Back:    back,
	})
}

type confirmForm struct {
	Confirm string `form:"confirm"`
}

func (f confirmForm) confirmed() bool { return f.Confirm == "yes" }

func invalidForm() error {
	return domain.ValidationErrors{}.Add("form", "please check the form and try again")
}
