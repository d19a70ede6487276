// Package session models the login session as an explicit value and owns its
// cookie lifecycle.
//
// A Session is the pair of backend user id and access token returned by the
// login endpoint. The Provider persists it in two cookies, userId (signed) and
// accessToken (encrypted), loads it on every request and expires both on
// logout. Middleware stores the loaded value in the request context, so code
// downstream never reads cookies directly:
//
//	sess, _ := session.FromContext(ctx)
//	if !sess.Valid() {
//		return session.ErrNoSession
//	}
package session
