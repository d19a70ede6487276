package middleware

import (
	"maps"
	"net/http"

	"github.com/dmitrymomot/marketplace/core/handler"
)

// SecurityHeadersConfig lists the headers added to every response. Empty
// fields are omitted.
type SecurityHeadersConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip                    func(ctx handler.Context) bool
	ContentTypeOptions      string
	FrameOptions            string
	ReferrerPolicy          string
	ContentSecurityPolicy   string
	StrictTransportSecurity string
	CustomHeaders           map[string]string
	// IsDevelopment drops HSTS so plain-HTTP local runs keep working
	IsDevelopment bool
}

// DefaultSecurityHeaders suits server-rendered pages with form posts back to
// the same origin.
var DefaultSecurityHeaders = SecurityHeadersConfig{
	ContentTypeOptions:      "nosniff",
	FrameOptions:            "DENY",
	ReferrerPolicy:          "strict-origin-when-cross-origin",
	ContentSecurityPolicy:   "default-src 'self'; style-src 'self' 'unsafe-inline'; form-action 'self'; frame-ancestors 'none'",
	StrictTransportSecurity: "max-age=31536000; includeSubDomains",
}

// SecurityHeaders applies DefaultSecurityHeaders.
func SecurityHeaders[C handler.Context]() handler.Middleware[C] {
	return SecurityHeadersWithConfig[C](DefaultSecurityHeaders)
}

// SecurityHeadersWithConfig applies the configured headers.
func SecurityHeadersWithConfig[C handler.Context](cfg SecurityHeadersConfig) handler.Middleware[C] {
	if cfg.IsDevelopment {
		cfg.StrictTransportSecurity = ""
	}

	headers := make(map[string]string)
	for name, value := range map[string]string{
		"X-Content-Type-Options":    cfg.ContentTypeOptions,
		"X-Frame-Options":           cfg.FrameOptions,
		"Referrer-Policy":           cfg.ReferrerPolicy,
		"Content-Security-Policy":   cfg.ContentSecurityPolicy,
		"Strict-Transport-Security": cfg.StrictTransportSecurity,
	} {
		if value != "" {
			headers[name] = value
		}
	}
	maps.Copy(headers, cfg.CustomHeaders)

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			resp := next(ctx)
			return func(w http.ResponseWriter, r *http.Request) error {
				for name, value := range headers {
					w.Header().Set(name, value)
				}
				return resp(w, r)
			}
		}
	}
}
