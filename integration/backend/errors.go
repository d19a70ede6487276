package backend

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrymomot/marketplace/app/marketplace/domain"
)

// ErrMissingBaseURL is returned by New without a base URL.
var ErrMissingBaseURL = errors.New("backend: base URL is required")

// HTTPError represents a non-2xx HTTP response from the API.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// Unwrap maps the status to the domain error taxonomy.
func (e *HTTPError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusUnauthorized:
		return domain.ErrUnauthorized
	default:
		return domain.ErrNetworkFailure
	}
}

// IsStatus returns true if err (or any wrapped error) is an HTTPError with the given status code.
func IsStatus(err error, code int) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == code
	}
	return false
}
