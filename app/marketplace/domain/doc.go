// Package domain holds the marketplace model shared by the backend client,
// the view composer and the HTTP handlers: users, services and bookings, the
// booking status transition table, input validation and the error taxonomy
// with its user-facing messages.
package domain
