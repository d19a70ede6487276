package server

import (
	"log/slog"
	"time"
)

// Option configures a Server.
type Option func(*Server)

func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithShutdownTimeout(d time.Duration) Option { return func(s *Server) { s.shutdown = d } }
func WithReadTimeout(d time.Duration) Option     { return func(s *Server) { s.read = d } }
func WithWriteTimeout(d time.Duration) Option    { return func(s *Server) { s.write = d } }
func WithIdleTimeout(d time.Duration) Option     { return func(s *Server) { s.idle = d } }
func WithMaxHeaderBytes(n int) Option            { return func(s *Server) { s.maxHdr = n } }
