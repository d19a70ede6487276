package composer

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/marketplace/app/marketplace/domain"
	"github.com/dmitrymomot/marketplace/core/cache"
	"github.com/dmitrymomot/marketplace/core/logger"
	"github.com/dmitrymomot/marketplace/core/session"
	"github.com/dmitrymomot/marketplace/pkg/viewstate"
)

// Workspace is the view state shared by all pages of one session.
type Workspace struct {
	sess    session.Session
	key     string
	api     Backend
	users   cache.Store[domain.User]
	log     *slog.Logger
	timeout time.Duration

	life viewstate.Lifecycle

	mu            sync.Mutex
	promoted      bool
	filter        ServiceFilter
	notifications []Notification

	services    *viewstate.List[string, domain.Service]
	servicesSeq viewstate.Sequencer
	bookings    *viewstate.List[string, domain.Booking]
	bookingsSeq viewstate.Sequencer
}

func newWorkspace(c *Composer, s session.Session) *Workspace {
	w := &Workspace{
		sess:     s,
		key:      s.Key(),
		api:      c.backend(s),
		users:    c.users,
		log:      c.log.With(logger.UserID(s.UserID)),
		timeout:  c.cfg.ReconcileTimeout,
		services: viewstate.NewList(func(svc domain.Service) string { return svc.ID }),
		bookings: viewstate.NewList(func(b domain.Booking) string { return b.ID }),
	}
	w.life.OnUnmount(func() {
		w.mu.Lock()
		dropped := len(w.notifications)
		w.notifications = nil
		w.mu.Unlock()
		w.log.Debug("workspace unmounted", slog.Int("dropped_notifications", dropped))
	})
	return w
}

// Session returns the session the workspace belongs to.
func (w *Workspace) Session() session.Session { return w.sess }

// Mounted reports whether the workspace is still live.
func (w *Workspace) Mounted() bool { return w.life.Mounted() }

func (w *Workspace) unmount() { w.life.Unmount() }

// FetchCurrentUser returns the session's user, from the cache when
// possible. Concurrent misses each issue their own request.
func (w *Workspace) FetchCurrentUser(ctx context.Context) (domain.User, error) {
	u, ok, err := w.users.Get(ctx, w.key)
	if err != nil {
		w.log.WarnContext(ctx, "current user cache read", logger.Error(err))
	}
	if !ok {
		u, err = w.api.GetUser(ctx, w.sess.UserID)
		if err != nil {
			return domain.User{}, err
		}
		if err := w.users.Set(ctx, w.key, u); err != nil {
			w.log.WarnContext(ctx, "current user cache write", logger.Error(err))
		}
	}
	return w.withRole(u), nil
}

// withRole applies the local promotion so a provider never reads as a
// consumer again within the session, whatever a stale source says.
func (w *Workspace) withRole(u domain.User) domain.User {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.promoted {
		u.IsProvider = true
	}
	return u
}

// Compose resolves the current user into a page state.
func (w *Workspace) Compose(ctx context.Context) Page {
	u, err := w.FetchCurrentUser(ctx)
	if err != nil {
		w.log.WarnContext(ctx, "compose page", logger.Error(err))
		return Page{User: viewstate.Errored[domain.User](domain.Message(err)), Err: err}
	}
	return Page{User: viewstate.Ready(u)}
}

// BecomeProvider promotes the session's user. Without confirmation no
// request is made. On success the cached user is invalidated and the role is
// flipped locally without a re-fetch; on failure only a notification is
// queued.
func (w *Workspace) BecomeProvider(ctx context.Context, confirmed bool) error {
	if !confirmed {
		return domain.ErrConfirmationRequired
	}
	if err := w.api.BecomeProvider(ctx, w.sess.UserID); err != nil {
		w.log.WarnContext(ctx, "become provider", logger.Action("become_provider"), logger.Error(err))
		w.notify(Notification{Level: LevelError, Title: "Error", Message: domain.Message(err)})
		return err
	}

	w.mu.Lock()
	w.promoted = true
	w.mu.Unlock()

	if err := w.users.Delete(ctx, w.key); err != nil {
		w.log.WarnContext(ctx, "current user cache invalidate", logger.Error(err))
	}
	w.log.InfoContext(ctx, "user became provider", logger.Action("become_provider"), logger.Result("ok"))
	return nil
}

// IsProvider reports the role of the session's user.
func (w *Workspace) IsProvider(ctx context.Context) (bool, error) {
	u, err := w.FetchCurrentUser(ctx)
	if err != nil {
		return false, err
	}
	return u.IsProvider, nil
}

func (w *Workspace) requireRole(ctx context.Context, provider bool) error {
	isProvider, err := w.IsProvider(ctx)
	if err != nil {
		return err
	}
	if isProvider != provider {
		return domain.ErrForbidden
	}
	return nil
}

// detached derives a context for work that outlives the request.
func (w *Workspace) detached(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), w.timeout)
}
