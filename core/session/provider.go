package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrymomot/marketplace/core/cookie"
)

// Config names the session cookies and their lifetime.
type Config struct {
	UserCookie  string        `env:"SESSION_USER_COOKIE" envDefault:"userId"`
	TokenCookie string        `env:"SESSION_TOKEN_COOKIE" envDefault:"accessToken"`
	TTL         time.Duration `env:"SESSION_TTL" envDefault:"24h"`
}

// Provider loads, starts and ends sessions over cookies.
type Provider struct {
	cookies *cookie.Manager
	cfg     Config
}

// NewProvider creates a Provider. Empty cookie names fall back to userId and
// accessToken.
func NewProvider(cookies *cookie.Manager, cfg Config) *Provider {
	if cfg.UserCookie == "" {
		cfg.UserCookie = "userId"
	}
	if cfg.TokenCookie == "" {
		cfg.TokenCookie = "accessToken"
	}
	return &Provider{cookies: cookies, cfg: cfg}
}

// Load reads the session from r. Missing or tampered cookies leave the
// corresponding field empty; Load never fails.
func (p *Provider) Load(r *http.Request) Session {
	var s Session
	if id, err := p.cookies.GetSigned(r, p.cfg.UserCookie); err == nil {
		s.UserID = id
	}
	if tok, err := p.cookies.GetEncrypted(r, p.cfg.TokenCookie); err == nil {
		s.AccessToken = tok
	}
	return s
}

// Start writes both session cookies.
func (p *Provider) Start(w http.ResponseWriter, s Session) error {
	if !s.Valid() {
		return ErrNoSession
	}
	maxAge := cookie.WithMaxAge(int(p.cfg.TTL / time.Second))
	if err := p.cookies.SetSigned(w, p.cfg.UserCookie, s.UserID, maxAge); err != nil {
		return fmt.Errorf("session start: %w", err)
	}
	if err := p.cookies.SetEncrypted(w, p.cfg.TokenCookie, s.AccessToken, maxAge); err != nil {
		return fmt.Errorf("session start: %w", err)
	}
	return nil
}

// End expires both session cookies.
func (p *Provider) End(w http.ResponseWriter) {
	p.cookies.Delete(w, p.cfg.UserCookie)
	p.cookies.Delete(w, p.cfg.TokenCookie)
}

// IsNoSession reports whether err means the caller is not logged in.
func IsNoSession(err error) bool { return errors.Is(err, ErrNoSession) }
