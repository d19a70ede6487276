// Package binder decodes request data into tagged structs.
//
//	type bookingForm struct {
//		ServiceID   string `form:"service_id"`
//		BookingTime string `form:"booking_time"`
//		Confirm     bool   `form:"confirm"`
//	}
//
//	var f bookingForm
//	if err := binder.Form()(r, &f); err != nil {
//		return response.Error(response.ErrBadRequest.WithError(err))
//	}
//
// Fields without a tag bind to their lowercased name; a "-" tag skips them.
// String values are trimmed of surrounding whitespace.
package binder
