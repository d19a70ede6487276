package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// User is a marketplace account. Address holds the user's city.
type User struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
	IsProvider  bool   `json:"isProvider"`
}

// Price is an amount in rupees. It decodes from JSON numbers and numeric
// strings since form-created services may carry either.
type Price float64

func (p *Price) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(b, `"`)
	if len(b) == 0 || string(b) == "null" {
		*p = 0
		return nil
	}
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return fmt.Errorf("price: %w", err)
	}
	*p = Price(f)
	return nil
}

// String formats the price in rupees.
func (p Price) String() string { return FormatPrice(float64(p)) }

// Service is an offering listed by a provider.
type Service struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Price       Price  `json:"price"`
	Location    string `json:"location"`
	ProviderID  string `json:"providerId"`
}

// Booking is a consumer's request for a service at a given time.
// The backend sends the service either as its id or embedded; Service is
// set only in the latter case and ServiceID always.
type Booking struct {
	ID            string        `json:"_id"`
	ServiceID     string        `json:"-"`
	Service       *Service      `json:"-"`
	UserID        string        `json:"userId"`
	ProviderID    string        `json:"providerId"`
	BookingTime   time.Time     `json:"bookingTime"`
	Status        Status        `json:"status"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
}

func (b *Booking) UnmarshalJSON(data []byte) error {
	type plain Booking
	var raw struct {
		plain
		Service json.RawMessage `json:"service"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*b = Booking(raw.plain)

	svc := bytes.TrimSpace(raw.Service)
	switch {
	case len(svc) == 0 || string(svc) == "null":
	case svc[0] == '"':
		if err := json.Unmarshal(svc, &b.ServiceID); err != nil {
			return fmt.Errorf("booking service id: %w", err)
		}
	default:
		var s Service
		if err := json.Unmarshal(svc, &s); err != nil {
			return fmt.Errorf("booking service: %w", err)
		}
		b.Service = &s
		b.ServiceID = s.ID
	}
	return nil
}

// Payable reports whether the booking can be paid now.
func (b Booking) Payable() bool {
	return b.Status == StatusCompleted && b.PaymentStatus == PaymentPending
}

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email" form:"email" validate:"required,email" sanitize:"trim,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

// LoginResult is what the backend returns for valid credentials.
type LoginResult struct {
	UserID      string `json:"userId"`
	AccessToken string `json:"accessToken"`
}

// NewUser is the sign-up payload. Address is the chosen city.
type NewUser struct {
	Name        string `json:"name" form:"name" validate:"required" sanitize:"strip_html,single_line"`
	Email       string `json:"email" form:"email" validate:"required,email" sanitize:"trim,email"`
	Password    string `json:"password" form:"password" validate:"required"`
	PhoneNumber string `json:"phoneNumber" form:"phoneNumber" validate:"required" sanitize:"phone"`
	Address     string `json:"address" form:"city" validate:"required,city" sanitize:"trim"`
}

// NewService is the create-service payload. ProviderID is filled from the
// session, never from user input.
type NewService struct {
	Name        string  `json:"name" form:"name" validate:"required" sanitize:"strip_html,single_line,max:120"`
	Description string  `json:"description" form:"description" validate:"required" sanitize:"strip_html,max:2000"`
	Type        string  `json:"type" form:"type" validate:"required" sanitize:"strip_html,single_line,max:60"`
	Price       float64 `json:"price" form:"price" validate:"gt=0"`
	Location    string  `json:"location" form:"location" validate:"required,city" sanitize:"trim"`
	ProviderID  string  `json:"providerId" form:"-" validate:"required"`
}

// NewBooking is the create-booking payload.
type NewBooking struct {
	ServiceID   string    `json:"serviceId"`
	UserID      string    `json:"userId"`
	ProviderID  string    `json:"providerId"`
	BookingTime time.Time `json:"bookingTime"`
}
