package marketplace

import (
	"errors"

	"github.com/dmitrymomot/marketplace/app/marketplace/composer"
	"github.com/dmitrymomot/marketplace/app/marketplace/domain"
	"github.com/dmitrymomot/marketplace/core/binder"
	"github.com/dmitrymomot/marketplace/core/handler"
	"github.com/dmitrymomot/marketplace/pkg/accesspolicy"
)

const bookingsPath = accesspolicy.HomePath + "/bookings"

type statusForm struct {
	Status  string `form:"status"`
	Confirm string `form:"confirm"`
}

func (a *App) bookingsPage(ctx *Context) handler.Response {
	ws, resp := a.workspace(ctx)
	if resp != nil {
		return resp
	}

	page := ws.Compose(ctx)
	if expired(page.Err) {
		return a.expire(ctx)
	}
	provider := page.Branch() == composer.ProviderView
	title := "My bookings"
	if provider {
		title = "Booking requests"
	}
	view := bookingsView{layout: a.layout(ctx, title, ws)}
	view.Provider = provider
	if page.Branch() == composer.NoView {
		view.Banner = page.User.Message
		return render(a.views.bookings, view)
	}

	entries, err := ws.LoadBookings(ctx)
	if err != nil {
		if expired(err) {
			return a.expire(ctx)
		}
		view.Notices = append(view.Notices, failure("Error", err))
		entries = ws.Bookings()
	}
	view.Bookings = newBookingViews(entries, provider)
	return render(a.views.bookings, view)
}

// loadedBookings makes sure the workspace has listed bookings before an
// action refers to one of them.
func loadedBookings(ctx *Context, ws *composer.Workspace) error {
	if len(ws.Bookings()) > 0 {
		return nil
	}
	_, err := ws.LoadBookings(ctx)
	return err
}

func (a *App) setBookingStatus(ctx *Context) handler.Response {
	ws, resp := a.workspace(ctx)
	if resp != nil {
		return resp
	}

	var f statusForm
	if err := binder.Bind(ctx.Request(), &f, binder.Form()); err != nil {
		return a.settle(ctx, bookingsPath, composer.Notification{}, invalidForm())
	}
	status, err := domain.ParseStatus(f.Status)
	if err != nil {
		return a.settle(ctx, bookingsPath, composer.Notification{}, err)
	}
	if err := loadedBookings(ctx, ws); err != nil {
		return a.settle(ctx, bookingsPath, composer.Notification{}, err)
	}

	// the outcome is reconciled in the background; the list shows the
	// change as pending until then
	_, err = ws.SetBookingStatus(ctx, ctx.Param("id"), status, f.Confirm == "yes")
	if errors.Is(err, domain.ErrConfirmationRequired) {
		return a.confirm(ctx, ws, "Cancel booking",
			"Cancel this booking request? The customer will see it as cancelled.",
			bookingsPath, map[string]string{"status": string(status)})
	}
	return a.settle(ctx, bookingsPath, composer.Notification{}, err)
}

func (a *App) payBooking(ctx *Context) handler.Response {
	ws, resp := a.workspace(ctx)
	if resp != nil {
		return resp
	}

	var f confirmForm
	_ = binder.Bind(ctx.Request(), &f, binder.Form())
	if err := loadedBookings(ctx, ws); err != nil {
		return a.settle(ctx, bookingsPath, composer.Notification{}, err)
	}

	err := ws.PayBooking(ctx, ctx.Param("id"), f.confirmed())
	if errors.Is(err, domain.ErrConfirmationRequired) {
		return a.confirm(ctx, ws, "Confirm payment", "Pay for this booking now?", bookingsPath, nil)
	}
	return a.settle(ctx, bookingsPath, success("Payment successful", "The booking has been paid."), err)
}

func (a *App) cancelBooking(ctx *Context) handler.Response {
	ws, resp := a.workspace(ctx)
	if resp != nil {
		return resp
	}

	var f confirmForm
	_ = binder.Bind(ctx.Request(), &f, binder.Form())
	if err := loadedBookings(ctx, ws); err != nil {
		return a.settle(ctx, bookingsPath, composer.Notification{}, err)
	}

	err := ws.CancelBooking(ctx, ctx.Param("id"), f.confirmed())
	if errors.Is(err, domain.ErrConfirmationRequired) {
		return a.confirm(ctx, ws, "Cancel booking", "Cancel this booking? This cannot be undone.", bookingsPath, nil)
	}
	return a.settle(ctx, bookingsPath, success("Booking cancelled", "Your booking has been cancelled."), err)
}
