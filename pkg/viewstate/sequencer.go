package viewstate

import "sync"

// Token identifies one fetch issued by a Sequencer.
type Token uint64

// Sequencer orders the results of repeated fetches of the same resource.
// Every fetch takes a token with Next; its result may be applied only if
// Apply accepts the token, which happens when no newer token was applied
// before it.
type Sequencer struct {
	mu      sync.Mutex
	issued  Token
	applied Token
}

// Next issues a token newer than every token issued so far.
func (s *Sequencer) Next() Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return s.issued
}

// Apply reports whether the result for t is current and records it.
// Results for older tokens are rejected once a newer one has been applied.
func (s *Sequencer) Apply(t Token) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t <= s.applied || t > s.issued {
		return false
	}
	s.applied = t
	return true
}
