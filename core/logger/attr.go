package logger

import (
	"log/slog"
	"time"
)

// Error returns an "error" attribute, or an empty one for nil.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

func nonEmpty(key, value string) slog.Attr {
	if value == "" {
		return slog.Attr{}
	}
	return slog.String(key, value)
}

func Service(name string) slog.Attr   { return nonEmpty("service", name) }
func Component(name string) slog.Attr { return nonEmpty("component", name) }
func Action(name string) slog.Attr    { return nonEmpty("action", name) }
func Result(r string) slog.Attr       { return nonEmpty("result", r) }

func RequestID(id string) slog.Attr { return nonEmpty("request_id", id) }
func UserID(id string) slog.Attr    { return nonEmpty("user_id", id) }
func BookingID(id string) slog.Attr { return nonEmpty("booking_id", id) }
func ServiceID(id string) slog.Attr { return nonEmpty("service_id", id) }

func Method(method string) slog.Attr { return slog.String("method", method) }
func Path(path string) slog.Attr     { return slog.String("path", path) }
func ClientIP(ip string) slog.Attr   { return nonEmpty("client_ip", ip) }
func UserAgent(ua string) slog.Attr  { return nonEmpty("user_agent", ua) }
func StatusCode(code int) slog.Attr  { return slog.Int("status_code", code) }

// Latency records request handling time.
func Latency(d time.Duration) slog.Attr { return slog.Duration("latency", d) }

// Elapsed records the time since start.
func Elapsed(start time.Time) slog.Attr { return slog.Duration("elapsed", time.Since(start)) }

func Count(key string, n int) slog.Attr { return slog.Int(key, n) }
