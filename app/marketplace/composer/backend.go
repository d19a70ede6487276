package composer

import (
	"context"

	"github.com/dmitrymomot/marketplace/app/marketplace/domain"
	"github.com/dmitrymomot/marketplace/core/session"
)

// Backend is the slice of the marketplace API a workspace uses. Calls are
// made with the session's credentials.
type Backend interface {
	GetUser(ctx context.Context, id string) (domain.User, error)
	BecomeProvider(ctx context.Context, userID string) error
	ListServices(ctx context.Context) ([]domain.Service, error)
	ListServicesByLocation(ctx context.Context, location string) ([]domain.Service, error)
	CreateService(ctx context.Context, s domain.NewService) (domain.Service, error)
	ListUserBookings(ctx context.Context, userID string) ([]domain.Booking, error)
	ListProviderBookings(ctx context.Context, providerID string) ([]domain.Booking, error)
	CreateBooking(ctx context.Context, b domain.NewBooking) (domain.Booking, error)
	SetBookingStatus(ctx context.Context, bookingID string, status domain.Status) error
	PayBooking(ctx context.Context, bookingID string) error
	DeleteBooking(ctx context.Context, bookingID string) error
}

// BackendFunc returns a Backend bound to the session's access token.
type BackendFunc func(s session.Session) Backend
