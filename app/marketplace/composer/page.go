package composer

import (
	"github.com/dmitrymomot/marketplace/app/marketplace/domain"
	"github.com/dmitrymomot/marketplace/pkg/viewstate"
)

// Branch selects which half of a role-gated page renders.
type Branch uint8

const (
	NoView Branch = iota
	ConsumerView
	ProviderView
)

// Page is the resolved state of a role-gated page.
type Page struct {
	User viewstate.State[domain.User]
	// Err is the failure behind an Errored state.
	Err error
}

// Branch returns the view for a ready page and NoView otherwise.
func (p Page) Branch() Branch {
	if !p.User.IsReady() {
		return NoView
	}
	if p.User.Value.IsProvider {
		return ProviderView
	}
	return ConsumerView
}
