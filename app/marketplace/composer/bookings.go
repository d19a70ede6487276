package composer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/marketplace/app/marketplace/domain"
	"github.com/dmitrymomot/marketplace/core/logger"
	"github.com/dmitrymomot/marketplace/pkg/async"
	"github.com/dmitrymomot/marketplace/pkg/viewstate"
)

// BookingEntry is a booking as rendered, with its pending marker.
type BookingEntry = viewstate.Entry[domain.Booking]

// CreateBooking books a service listed in the workspace for the session's
// user. The time must be present and parseable, the service must be known,
// only consumers book, and nobody books their own service. Each check fails
// before any booking request is made.
func (w *Workspace) CreateBooking(ctx context.Context, serviceID, at string) (domain.Booking, error) {
	when, err := domain.ParseBookingTime(at, time.Local)
	if err != nil {
		return domain.Booking{}, err
	}

	entry, ok := w.services.Get(serviceID)
	if !ok {
		return domain.Booking{}, domain.ValidationErrors{}.Add("service", "service is not available")
	}
	svc := entry.Value
	if err := w.requireRole(ctx, false); err != nil {
		return domain.Booking{}, err
	}
	if svc.ProviderID == w.sess.UserID {
		return domain.Booking{}, domain.ValidationErrors{}.Add("service", "you cannot book your own service")
	}

	b, err := w.api.CreateBooking(ctx, domain.NewBooking{
		ServiceID:   svc.ID,
		UserID:      w.sess.UserID,
		ProviderID:  svc.ProviderID,
		BookingTime: when,
	})
	if err != nil {
		w.log.WarnContext(ctx, "create booking", logger.Action("create_booking"), logger.ServiceID(serviceID), logger.Error(err))
		return domain.Booking{}, err
	}
	w.log.InfoContext(ctx, "booking created", logger.Action("create_booking"), logger.BookingID(b.ID))
	return b, nil
}

// LoadBookings refreshes the booking list for the user's role. Providers
// get their requests; consumers get their bookings joined with service
// details, both fetched concurrently. Entries with a pending optimistic
// change keep it.
func (w *Workspace) LoadBookings(ctx context.Context) ([]BookingEntry, error) {
	isProvider, err := w.IsProvider(ctx)
	if err != nil {
		return nil, err
	}
	tok := w.bookingsSeq.Next()

	var bookings []domain.Booking
	if isProvider {
		bookings, err = w.api.ListProviderBookings(ctx, w.sess.UserID)
	} else {
		bookings, err = w.consumerBookings(ctx)
	}
	if err != nil {
		w.log.WarnContext(ctx, "load bookings", logger.Error(err))
		return nil, err
	}

	_ = w.life.Do(func() {
		if w.bookingsSeq.Apply(tok) {
			w.bookings.Replace(bookings)
		}
	})
	return w.Bookings(), nil
}

func (w *Workspace) consumerBookings(ctx context.Context) ([]domain.Booking, error) {
	var (
		bookings []domain.Booking
		services []domain.Service
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		bookings, err = w.api.ListUserBookings(gctx, w.sess.UserID)
		return err
	})
	g.Go(func() (err error) {
		services, err = w.api.ListServices(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byID := make(map[string]domain.Service, len(services))
	for _, s := range services {
		byID[s.ID] = s
	}
	for i := range bookings {
		if bookings[i].Service != nil {
			continue
		}
		if s, ok := byID[bookings[i].ServiceID]; ok {
			bookings[i].Service = &s
		}
	}
	return bookings, nil
}

// Bookings returns the current booking list.
func (w *Workspace) Bookings() []BookingEntry {
	return w.bookings.Entries()
}

// SetBookingStatus moves a booking to status. The change shows immediately
// with a pending marker while the request runs in the background; the
// returned future resolves once it has been committed or rolled back. A
// rejected change reverts to the last confirmed status and queues an error
// notification. Cancelling needs confirmation.
func (w *Workspace) SetBookingStatus(ctx context.Context, bookingID string, status domain.Status, confirmed bool) (*async.Future, error) {
	entry, ok := w.bookings.Get(bookingID)
	if !ok {
		return nil, domain.ErrUnknownBooking
	}
	if err := domain.Transition(entry.Value.Status, status); err != nil {
		return nil, err
	}
	if status.RequiresConfirmation() && !confirmed {
		return nil, domain.ErrConfirmationRequired
	}
	if err := w.requireRole(ctx, true); err != nil {
		return nil, err
	}

	// checked again against the value the change applies to; another
	// request may have moved the booking in the meantime
	change, err := w.bookings.Update(bookingID, func(b domain.Booking) (domain.Booking, error) {
		if err := domain.Transition(b.Status, status); err != nil {
			return b, err
		}
		b.Status = status
		return b, nil
	})
	switch {
	case errors.Is(err, viewstate.ErrUnknownKey):
		return nil, domain.ErrUnknownBooking
	case err != nil:
		return nil, err
	}

	return async.Exec(context.WithoutCancel(ctx), change, func(ctx context.Context, c viewstate.Change[string, domain.Booking]) error {
		ctx, cancel := w.detached(ctx)
		defer cancel()
		err := w.api.SetBookingStatus(ctx, c.Key, c.Value.Status)
		w.reconcile(ctx, c, err)
		return err
	}), nil
}

func (w *Workspace) reconcile(ctx context.Context, c viewstate.Change[string, domain.Booking], err error) {
	attrs := []any{logger.Action("set_booking_status"), logger.BookingID(c.Key), slog.String("status", string(c.Value.Status))}
	done := w.life.Do(func() {
		if err == nil {
			w.bookings.Commit(c)
			return
		}
		if _, reverted := w.bookings.Rollback(c); reverted {
			w.notify(Notification{
				Level:   LevelError,
				Title:   "Error",
				Message: fmt.Sprintf("Could not mark booking as %s. %s", c.Value.Status, domain.Message(err)),
			})
		}
	})
	switch {
	case done != nil:
		w.log.DebugContext(ctx, "booking status settled after unmount", attrs...)
	case err != nil:
		w.log.WarnContext(ctx, "booking status rolled back", append(attrs, logger.Error(err))...)
	default:
		w.log.InfoContext(ctx, "booking status committed", attrs...)
	}
}

// PayBooking pays a completed booking whose payment is pending. Only the
// consumer pays; payment needs confirmation and only the local payment
// status changes on success.
func (w *Workspace) PayBooking(ctx context.Context, bookingID string, confirmed bool) error {
	entry, ok := w.bookings.Get(bookingID)
	if !ok {
		return domain.ErrUnknownBooking
	}
	if !entry.Value.Payable() {
		return fmt.Errorf("%w: booking is not awaiting payment", domain.ErrInvalidTransition)
	}
	if err := w.requireRole(ctx, false); err != nil {
		return err
	}
	if !confirmed {
		return domain.ErrConfirmationRequired
	}

	if err := w.api.PayBooking(ctx, bookingID); err != nil {
		w.log.WarnContext(ctx, "pay booking", logger.Action("pay_booking"), logger.BookingID(bookingID), logger.Error(err))
		return err
	}
	_ = w.life.Do(func() {
		_ = w.bookings.Set(bookingID, func(b domain.Booking) domain.Booking {
			b.PaymentStatus = domain.PaymentPaid
			return b
		})
	})
	w.log.InfoContext(ctx, "booking paid", logger.Action("pay_booking"), logger.BookingID(bookingID))
	return nil
}

// CancelBooking deletes a consumer's pending booking after confirmation.
func (w *Workspace) CancelBooking(ctx context.Context, bookingID string, confirmed bool) error {
	entry, ok := w.bookings.Get(bookingID)
	if !ok {
		return domain.ErrUnknownBooking
	}
	if entry.Value.Status != domain.StatusPending {
		return fmt.Errorf("%w: only pending bookings can be cancelled", domain.ErrInvalidTransition)
	}
	if err := w.requireRole(ctx, false); err != nil {
		return err
	}
	if !confirmed {
		return domain.ErrConfirmationRequired
	}

	if err := w.api.DeleteBooking(ctx, bookingID); err != nil {
		w.log.WarnContext(ctx, "cancel booking", logger.Action("cancel_booking"), logger.BookingID(bookingID), logger.Error(err))
		return err
	}
	_ = w.life.Do(func() { w.bookings.Remove(bookingID) })
	w.log.InfoContext(ctx, "booking cancelled", logger.Action("cancel_booking"), logger.BookingID(bookingID))
	return nil
}
