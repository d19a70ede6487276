package marketplace

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrymomot/marketplace/app/marketplace/composer"
	"github.com/dmitrymomot/marketplace/app/marketplace/domain"
	"github.com/dmitrymomot/marketplace/core/binder"
	"github.com/dmitrymomot/marketplace/core/handler"
	"github.com/dmitrymomot/marketplace/core/response"
	"github.com/dmitrymomot/marketplace/pkg/accesspolicy"
)

type servicesQuery struct {
	Location string `query:"location"`
}

type bookForm struct {
	ServiceID string `form:"serviceId"`
	Time      string `form:"time"`
}

func (a *App) servicesPage(ctx *Context) handler.Response {
	ws, resp := a.workspace(ctx)
	if resp != nil {
		return resp
	}

	page := ws.Compose(ctx)
	if expired(page.Err) {
		return a.expire(ctx)
	}
	view := servicesView{
		layout: a.layout(ctx, "Available services", ws),
		Cities: domain.Cities,
	}
	if page.Branch() == composer.NoView {
		view.Banner = page.User.Message
		return render(a.views.services, view)
	}
	view.User = page.User.Value
	view.Provider = page.Branch() == composer.ProviderView

	var q servicesQuery
	_ = binder.Bind(ctx.Request(), &q, binder.Query())
	filter := composer.ServiceFilter{ByLocation: q.Location == "on"}
	view.ByLocation = filter.ByLocation

	services, err := ws.ListServices(ctx, filter)
	if err != nil {
		if expired(err) {
			return a.expire(ctx)
		}
		view.Notices = append(view.Notices, failure("Error", err))
		services = ws.Services()
	}
	view.Services = newServiceViews(ctx, ws, services)
	return render(a.views.services, view)
}

func (a *App) createService(ctx *Context) handler.Response {
	ws, resp := a.workspace(ctx)
	if resp != nil {
		return resp
	}

	var in domain.NewService
	if err := binder.Bind(ctx.Request(), &in, binder.Form()); err != nil {
		return a.settle(ctx, accesspolicy.HomePath, composer.Notification{}, invalidForm())
	}
	created, err := ws.CreateService(ctx, in)
	return a.settle(ctx, accesspolicy.HomePath,
		success("Service created", fmt.Sprintf("%s is now listed.", created.Name)), err)
}

func (a *App) becomeProvider(ctx *Context) handler.Response {
	ws, resp := a.workspace(ctx)
	if resp != nil {
		return resp
	}

	var f confirmForm
	_ = binder.Bind(ctx.Request(), &f, binder.Form())

	err := ws.BecomeProvider(ctx, f.confirmed())
	switch {
	case errors.Is(err, domain.ErrConfirmationRequired):
		return a.confirm(ctx, ws, "Become a provider",
			"Providers can list services and handle booking requests. This cannot be undone.",
			accesspolicy.HomePath, nil)
	case err != nil && !expired(err):
		// the workspace has queued the failure notice
		return response.RedirectSeeOther(accesspolicy.HomePath)
	}
	return a.settle(ctx, accesspolicy.HomePath,
		success("You are now a provider", "You can list your services on this page."), err)
}

func (a *App) book(ctx *Context) handler.Response {
	ws, resp := a.workspace(ctx)
	if resp != nil {
		return resp
	}

	var f bookForm
	if err := binder.Bind(ctx.Request(), &f, binder.Form()); err != nil {
		return a.settle(ctx, accesspolicy.HomePath, composer.Notification{}, invalidForm())
	}
	// checked before the lazy load so an incomplete form costs no request
	if _, err := domain.ParseBookingTime(f.Time, time.Local); err != nil {
		return a.settle(ctx, accesspolicy.HomePath, composer.Notification{}, err)
	}
	// a workspace mounted after the page was rendered has not listed anything yet
	if len(ws.Services()) == 0 {
		if _, err := ws.ListServices(ctx, ws.Filter()); err != nil {
			return a.settle(ctx, accesspolicy.HomePath, composer.Notification{}, err)
		}
	}
	_, err := ws.CreateBooking(ctx, f.ServiceID, f.Time)
	return a.settle(ctx, accesspolicy.HomePath,
		success("Booking created", "Your booking request has been sent to the provider."), err)
}
