// Package validator wraps go-playground/validator and reports failures as
// ValidationErrors with readable messages keyed by form field name.
//
//	type signUp struct {
//		Email string `form:"email" validate:"required,email"`
//		City  string `form:"city" validate:"required,city"`
//	}
//
//	v := validator.New(validator.WithRule("city", isCity))
//	if err := v.Struct(form); err != nil {
//		var verrs validator.ValidationErrors // field -> message
//		errors.As(err, &verrs)
//	}
package validator
