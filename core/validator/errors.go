package validator

import (
	"errors"
	"sort"
	"strings"
)

// ErrInvalidTarget is returned when Struct receives something other than a struct.
var ErrInvalidTarget = errors.New("validator: target must be a struct or pointer to struct")

// FieldError describes one failed field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationErrors lists failed fields in declaration order.
type ValidationErrors []FieldError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fe.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Get returns the message for field, if any.
func (e ValidationErrors) Get(field string) string {
	for _, fe := range e {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}

// Fields returns the failed field names sorted.
func (e ValidationErrors) Fields() []string {
	out := make([]string, 0, len(e))
	for _, fe := range e {
		out = append(out, fe.Field)
	}
	sort.Strings(out)
	return out
}

// Add appends a failure and returns the updated list.
func (e ValidationErrors) Add(field, message string) ValidationErrors {
	return append(e, FieldError{Field: field, Message: message})
}

// Err returns e as an error, or nil when empty.
func (e ValidationErrors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}
