package domain

import (
	"errors"

	"github.com/dmitrymomot/marketplace/core/validator"
)

var (
	ErrNetworkFailure       = errors.New("backend request failed")
	ErrNotFound             = errors.New("user not found")
	ErrUnauthorized         = errors.New("session rejected by backend")
	ErrConfirmationRequired = errors.New("confirmation required")
	ErrInvalidTransition    = errors.New("invalid booking status transition")
	ErrForbidden            = errors.New("action not allowed for this role")
	ErrNoSession            = errors.New("no active session")
	ErrUnknownService       = errors.New("unknown service")
	ErrUnknownBooking       = errors.New("unknown booking")
)

// ValidationErrors lists invalid input fields. It never reaches the network.
type ValidationErrors = validator.ValidationErrors

// IsValidation reports whether err carries field errors.
func IsValidation(err error) bool {
	var ve ValidationErrors
	return errors.As(err, &ve)
}

// Message turns any error into a sentence fit for a notification or banner.
// Internal details never leak into it.
func Message(err error) string {
	var ve ValidationErrors
	switch {
	case err == nil:
		return ""
	case errors.As(err, &ve):
		if len(ve) > 0 {
			return capitalize(ve[0].Message)
		}
		return "Please check the form and try again"
	case errors.Is(err, ErrNotFound):
		return "User not found"
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrNoSession):
		return "Your session has expired, please log in again"
	case errors.Is(err, ErrConfirmationRequired):
		return "Please confirm this action"
	case errors.Is(err, ErrInvalidTransition):
		return "This booking can no longer be changed"
	case errors.Is(err, ErrForbidden):
		return "You are not allowed to do that"
	case errors.Is(err, ErrUnknownService):
		return "Service not found"
	case errors.Is(err, ErrUnknownBooking):
		return "Booking not found"
	default:
		return "Something went wrong, please try again"
	}
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
