package marketplace

import (
	"github.com/dmitrymomot/marketplace/app/marketplace/domain"
	"github.com/dmitrymomot/marketplace/core/binder"
	"github.com/dmitrymomot/marketplace/core/handler"
	"github.com/dmitrymomot/marketplace/core/logger"
	"github.com/dmitrymomot/marketplace/core/response"
	"github.com/dmitrymomot/marketplace/core/session"
	"github.com/dmitrymomot/marketplace/pkg/accesspolicy"
)

func (a *App) loginPage(ctx *Context) handler.Response {
	return render(a.views.login, loginView{layout: a.layout(ctx, "Log in", nil)})
}

func (a *App) login(ctx *Context) handler.Response {
	var creds domain.Credentials
	if err := binder.Bind(ctx.Request(), &creds, binder.Form()); err != nil {
		return a.loginFailed(ctx, creds.Email, invalidForm())
	}
	if err := domain.Validate(&creds); err != nil {
		return a.loginFailed(ctx, creds.Email, err)
	}

	res, err := a.accounts.Login(ctx, creds)
	if err != nil {
		a.log.InfoContext(ctx, "login failed", logger.Action("login"), logger.Error(err))
		view := loginView{layout: a.layout(ctx, "Log in", nil), Email: creds.Email}
		view.Notices = append(view.Notices, failureText("Login Failed", "Invalid Credentials"))
		return render(a.views.login, view)
	}

	if err := a.sessions.Start(ctx.ResponseWriter(), session.Session{UserID: res.UserID, AccessToken: res.AccessToken}); err != nil {
		a.log.ErrorContext(ctx, "start session", logger.Action("login"), logger.Error(err))
		return response.Error(response.ErrInternalServerError)
	}
	a.log.InfoContext(ctx, "user logged in", logger.Action("login"), logger.UserID(res.UserID))
	a.flash(ctx, success("Login Successful", "Welcome back!"))
	return response.RedirectSeeOther(accesspolicy.HomePath)
}

func (a *App) loginFailed(ctx *Context, email string, err error) handler.Response {
	view := loginView{layout: a.layout(ctx, "Log in", nil), Email: email}
	view.Notices = append(view.Notices, failure("Login Failed", err))
	return render(a.views.login, view)
}

func (a *App) signUpPage(ctx *Context) handler.Response {
	return render(a.views.signUp, signUpView{
		layout: a.layout(ctx, "Sign up", nil),
		Cities: domain.Cities,
	})
}

func (a *App) signUp(ctx *Context) handler.Response {
	var in domain.NewUser
	if err := binder.Bind(ctx.Request(), &in, binder.Form()); err != nil {
		return a.signUpFailed(ctx, in, invalidForm())
	}
	if err := domain.Validate(&in); err != nil {
		return a.signUpFailed(ctx, in, err)
	}

	if err := a.accounts.CreateUser(ctx, in); err != nil {
		a.log.WarnContext(ctx, "sign up failed", logger.Action("sign_up"), logger.Error(err))
		return a.signUpFailed(ctx, in, err)
	}
	a.log.InfoContext(ctx, "user signed up", logger.Action("sign_up"))
	a.flash(ctx, success("User Created Successfully", "You can log in now."))
	return response.RedirectSeeOther(accesspolicy.LoginPath)
}

func (a *App) signUpFailed(ctx *Context, in domain.NewUser, err error) handler.Response {
	in.Password = ""
	view := signUpView{layout: a.layout(ctx, "Sign up", nil), Form: in, Cities: domain.Cities}
	view.Notices = append(view.Notices, failure("Sign Up Failed", err))
	return render(a.views.signUp, view)
}

func (a *App) logout(ctx *Context) handler.Response {
	s := ctx.Session()
	a.sessions.End(ctx.ResponseWriter())
	a.composer.Drop(ctx, s)
	if s.UserID != "" {
		a.log.InfoContext(ctx, "user logged out", logger.Action("logout"), logger.UserID(s.UserID))
	}
	return response.RedirectSeeOther(accesspolicy.LoginPath)
}
