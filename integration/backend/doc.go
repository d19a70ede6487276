// Package backend is the JSON-over-HTTP client for the marketplace REST API.
//
// A Client is bound to one access token; use WithToken to derive a client for
// a session. Non-2xx responses come back as *HTTPError, which unwraps to the
// matching domain sentinel (domain.ErrNotFound for 404, domain.ErrUnauthorized
// for 401, domain.ErrNetworkFailure otherwise) so callers classify errors
// with errors.Is. Transport failures also wrap domain.ErrNetworkFailure.
package backend
