// Package marketplace is the HTTP front end of the service-booking
// marketplace. It renders server-side pages for authentication, the service
// catalogue and the booking list, and forwards every state change to the
// marketplace API through the session's composer workspace.
//
// Every request passes through the route guard before a handler runs, so
// handlers under /availableServices can rely on a session token being
// present. Confirmation-gated actions answer with a confirmation page that
// posts the same form again with confirm=yes.
//
// Outcomes of form posts travel as flash notices (post/redirect/get).
// Failures of background status changes are queued on the workspace and
// shown on the next render.
package marketplace
