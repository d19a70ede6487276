package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	playground "github.com/go-playground/validator/v10"
)

// Validator is safe for concurrent use once built.
type Validator struct {
	v        *playground.Validate
	messages map[string]string
}

// Option configures a Validator.
type Option func(*Validator)

// WithRule registers a custom string rule under tag. message is used when the
// rule fails, with %s replaced by the field name.
func WithRule(tag string, fn func(string) bool, message string) Option {
	return func(v *Validator) {
		_ = v.v.RegisterValidation(tag, func(fl playground.FieldLevel) bool {
			return fn(fl.Field().String())
		})
		if message != "" {
			v.messages[tag] = message
		}
	}
}

// New builds a validator that names fields after their `form` tag, falling
// back to `json` and then the Go field name.
func New(opts ...Option) *Validator {
	pv := playground.New(playground.WithRequiredStructEnabled())
	pv.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"form", "json"} {
			name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return f.Name
	})

	v := &Validator{v: pv, messages: map[string]string{}}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Struct validates s. Failures are returned as ValidationErrors.
func (v *Validator) Struct(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var invalid *playground.InvalidValidationError
	if errors.As(err, &invalid) {
		return fmt.Errorf("%w: %v", ErrInvalidTarget, invalid)
	}

	var fieldErrs playground.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	out := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = out.Add(fe.Field(), v.message(fe))
	}
	return out
}

// Var validates a single value against tag, reporting failures under field.
func (v *Validator) Var(field string, value any, tag string) error {
	err := v.v.Var(value, tag)
	if err == nil {
		return nil
	}
	var fieldErrs playground.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	return ValidationErrors{{Field: field, Message: v.messageFor(field, fieldErrs[0])}}
}

func (v *Validator) message(fe playground.FieldError) string {
	return v.messageFor(fe.Field(), fe)
}

func (v *Validator) messageFor(field string, fe playground.FieldError) string {
	if custom, ok := v.messages[fe.Tag()]; ok {
		return fmt.Sprintf(custom, field)
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "e164", "numeric":
		return fmt.Sprintf("%s must be a valid number", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
