package composer_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/marketplace/app/marketplace/composer"
	"github.com/dmitrymomot/marketplace/app/marketplace/domain"
	"github.com/dmitrymomot/marketplace/core/session"
)

type backendMock struct {
	mock.Mock
}

func (m *backendMock) GetUser(ctx context.Context, id string) (domain.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(domain.User)
	return u, args.Error(1)
}

func (m *backendMock) BecomeProvider(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *backendMock) ListServices(ctx context.Context) ([]domain.Service, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).([]domain.Service)
	return s, args.Error(1)
}

func (m *backendMock) ListServicesByLocation(ctx context.Context, location string) ([]domain.Service, error) {
	args := m.Called(ctx, location)
	s, _ := args.Get(0).([]domain.Service)
	return s, args.Error(1)
}

func (m *backendMock) CreateService(ctx context.Context, s domain.NewService) (domain.Service, error) {
	args := m.Called(ctx, s)
	created, _ := args.Get(0).(domain.Service)
	return created, args.Error(1)
}

func (m *backendMock) ListUserBookings(ctx context.Context, userID string) ([]domain.Booking, error) {
	args := m.Called(ctx, userID)
	b, _ := args.Get(0).([]domain.Booking)
	return b, args.Error(1)
}

func (m *backendMock) ListProviderBookings(ctx context.Context, providerID string) ([]domain.Booking, error) {
	args := m.Called(ctx, providerID)
	b, _ := args.Get(0).([]domain.Booking)
	return b, args.Error(1)
}

func (m *backendMock) CreateBooking(ctx context.Context, b domain.NewBooking) (domain.Booking, error) {
	args := m.Called(ctx, b)
	created, _ := args.Get(0).(domain.Booking)
	return created, args.Error(1)
}

func (m *backendMock) SetBookingStatus(ctx context.Context, bookingID string, status domain.Status) error {
	return m.Called(ctx, bookingID, status).Error(0)
}

func (m *backendMock) PayBooking(ctx context.Context, bookingID string) error {
	return m.Called(ctx, bookingID).Error(0)
}

func (m *backendMock) DeleteBooking(ctx context.Context, bookingID string) error {
	return m.Called(ctx, bookingID).Error(0)
}

var testSession = session.Session{UserID: "u1", AccessToken: "token-1"}

var (
	consumer = domain.User{ID: "u1", Name: "Asha", Address: "Jaipur"}
	provider = domain.User{ID: "u1", Name: "Asha", Address: "Jaipur", IsProvider: true}
)

func newComposer(m *backendMock) *composer.Composer {
	return composer.New(composer.Config{ReconcileTimeout: time.Second}, func(session.Session) composer.Backend {
		return m
	}, nil)
}

func newWorkspace(t *testing.T, m *backendMock) (*composer.Composer, *composer.Workspace) {
	t.Helper()
	c := newComposer(m)
	ws, err := c.Workspace(testSession)
	require.NoError(t, err)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return c, ws
}
