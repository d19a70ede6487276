// Package sanitizer cleans user input before it is validated or sent on.
//
// Struct fields opt in through a `sanitize` tag listing sanitizers applied in
// order; "max:N" truncates to N runes:
//
//	type newService struct {
//		Name        string `form:"name" sanitize:"strip_html,single_line,max:120"`
//		Description string `form:"description" sanitize:"strip_html,text,max:2000"`
//		Email       string `form:"email" sanitize:"email"`
//	}
//	_ = sanitizer.SanitizeStruct(&f)
//
// HTML handling is delegated to bluemonday: strip_html removes all markup,
// safe_html keeps the user-generated-content subset.
package sanitizer
