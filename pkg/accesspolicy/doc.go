// Package accesspolicy decides whether a navigation is allowed based on the
// request path and whether the caller holds a session.
//
// A Policy is an ordered list of rules. Evaluate walks them in order and the
// first rule whose path matcher and session condition both hold decides the
// outcome. When no rule fires the request is allowed.
//
//	p := accesspolicy.Default("/availableServices")
//	d := p.Evaluate(r.URL.Path, sess.HasToken())
//	if !d.Allowed() {
//		http.Redirect(w, r, d.Location, http.StatusFound)
//	}
//
// Matching works on cleaned paths and whole segments: the prefix
// "/availableServices" covers "/availableServices/bookings" but not
// "/availableServicesX". Paths that are empty or do not start with a slash
// never match.
package accesspolicy
