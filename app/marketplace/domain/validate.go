package domain

import (
	"strings"
	"time"

	"github.com/dmitrymomot/marketplace/core/sanitizer"
	"github.com/dmitrymomot/marketplace/core/validator"
)

// BookingTimeLayout is the value format of an HTML datetime-local input.
const BookingTimeLayout = "2006-01-02T15:04"

var validate = validator.New(
	validator.WithRule("city", IsCity, "%s must be one of the listed cities"),
)

// Validate sanitizes v in place and checks its validation tags.
func Validate(v any) error {
	if err := sanitizer.SanitizeStruct(v); err != nil {
		return err
	}
	return validate.Struct(v)
}

// ParseBookingTime accepts datetime-local input or RFC 3339. An empty or
// unparsable value is a validation error for field "time".
func ParseBookingTime(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, ValidationErrors{}.Add("time", "time is required")
	}
	if loc == nil {
		loc = time.Local
	}
	if t, err := time.ParseInLocation(BookingTimeLayout, raw, loc); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Time{}, ValidationErrors{}.Add("time", "time must be a valid date and time")
}
