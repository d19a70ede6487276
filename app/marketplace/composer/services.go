package composer

import (
	"context"

	"github.com/dmitrymomot/marketplace/app/marketplace/domain"
	"github.com/dmitrymomot/marketplace/core/logger"
)

// ServiceFilter narrows the service list.
type ServiceFilter struct {
	// ByLocation restricts the list to the user's city.
	ByLocation bool
}

// ListServices fetches the service list, narrowed to the user's city when
// the filter asks for it, and returns the newest applied list. A response
// that arrives after a newer one has been applied is discarded.
func (w *Workspace) ListServices(ctx context.Context, filter ServiceFilter) ([]domain.Service, error) {
	tok := w.servicesSeq.Next()

	var (
		services []domain.Service
		err      error
	)
	if filter.ByLocation {
		var u domain.User
		if u, err = w.FetchCurrentUser(ctx); err != nil {
			return nil, err
		}
		if u.Address == "" {
			return nil, domain.ValidationErrors{}.Add("location", "your profile has no location")
		}
		services, err = w.api.ListServicesByLocation(ctx, u.Address)
	} else {
		services, err = w.api.ListServices(ctx)
	}
	if err != nil {
		w.log.WarnContext(ctx, "list services", logger.Error(err))
		return nil, err
	}

	_ = w.life.Do(func() {
		if !w.servicesSeq.Apply(tok) {
			w.log.DebugContext(ctx, "stale service list discarded")
			return
		}
		w.services.Replace(services)
		w.mu.Lock()
		w.filter = filter
		w.mu.Unlock()
	})
	return w.Services(), nil
}

// Services returns the last applied service list.
func (w *Workspace) Services() []domain.Service {
	entries := w.services.Entries()
	out := make([]domain.Service, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Value)
	}
	return out
}

// Filter returns the filter of the last applied service list.
func (w *Workspace) Filter() ServiceFilter {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.filter
}

// CanBook reports whether the session's user may book svc: consumers may
// book any service but their own, providers book nothing.
func (w *Workspace) CanBook(ctx context.Context, svc domain.Service) bool {
	isProvider, err := w.IsProvider(ctx)
	if err != nil || isProvider {
		return false
	}
	return svc.ProviderID != w.sess.UserID
}

// CreateService lists a new service for a provider. Input is sanitized
// and validated before the request.
func (w *Workspace) CreateService(ctx context.Context, in domain.NewService) (domain.Service, error) {
	in.ProviderID = w.sess.UserID
	if err := domain.Validate(&in); err != nil {
		return domain.Service{}, err
	}
	if err := w.requireRole(ctx, true); err != nil {
		return domain.Service{}, err
	}

	created, err := w.api.CreateService(ctx, in)
	if err != nil {
		w.log.WarnContext(ctx, "create service", logger.Action("create_service"), logger.Error(err))
		return domain.Service{}, err
	}
	w.log.InfoContext(ctx, "service created", logger.Action("create_service"), logger.ServiceID(created.ID))
	return created, nil
}
