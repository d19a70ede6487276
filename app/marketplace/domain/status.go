package domain

import "fmt"

// Status is the lifecycle state of a booking.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// PaymentStatus tracks whether a booking has been paid.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

// transitions lists every allowed status change. Completed and cancelled
// bookings are final.
var transitions = map[Status][]Status{
	StatusPending: {StatusCompleted, StatusCancelled},
}

// ParseStatus validates a status received from a form.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPending, StatusCompleted, StatusCancelled:
		return st, nil
	}
	return "", fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, s)
}

// CanTransition reports whether a booking in from may move to to.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition returns ErrInvalidTransition for changes the table forbids.
func Transition(from, to Status) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, from, to)
	}
	return nil
}

// Next lists the statuses a booking in s may move to.
func (s Status) Next() []Status {
	return append([]Status(nil), transitions[s]...)
}

// Final reports whether no transition leaves s.
func (s Status) Final() bool { return len(transitions[s]) == 0 }

// RequiresConfirmation reports whether moving to s must be confirmed first.
func (s Status) RequiresConfirmation() bool { return s == StatusCancelled }
