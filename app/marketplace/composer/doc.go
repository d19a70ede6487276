// Package composer builds the role-gated views of the marketplace.
//
// A Composer keeps one Workspace per logged-in session in a bounded,
// expiring registry. The workspace owns everything a session's pages share:
// the current-user cache entry, the service list with its location filter,
// the booking list with optimistic status changes, and the queue of
// notifications produced by work that finished after its request returned.
//
//	ws, err := comp.Workspace(sess)
//	page := ws.Compose(ctx)
//	switch page.Branch() {
//	case composer.ProviderView:
//		...
//	case composer.ConsumerView:
//		...
//	}
//
// Operations that need the user's consent return ErrConfirmationRequired
// until they are called with confirmed set, and issue no backend request
// before that. A workspace that has been dropped or evicted ignores late
// completions.
package composer
