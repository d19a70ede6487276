package accesspolicy

// Condition restricts a rule to callers with or without a session.
type Condition uint8

const (
	// Always fires regardless of the session.
	Always Condition = iota
	// WithSession fires only when the caller holds a session.
	WithSession
	// WithoutSession fires only when the caller holds no session.
	WithoutSession
)

func (c Condition) holds(hasSession bool) bool {
	switch c {
	case WithSession:
		return hasSession
	case WithoutSession:
		return !hasSession
	default:
		return true
	}
}

// Rule redirects requests matching Match under Condition to Redirect.
// A rule with an empty Redirect allows the request and stops evaluation.
type Rule struct {
	Name      string
	Match     Matcher
	Condition Condition
	Redirect  string
}

// Decision is the outcome of evaluating a policy.
type Decision struct {
	// Location is the redirect target. Empty means allow.
	Location string
	// Rule names the rule that fired, empty when none did.
	Rule string
}

// Allow is the zero decision.
func Allow() Decision { return Decision{} }

// RedirectTo builds a redirect decision.
func RedirectTo(location string) Decision { return Decision{Location: location} }

// Allowed reports whether the request may proceed.
func (d Decision) Allowed() bool { return d.Location == "" }

// Policy is an ordered, immutable rule list. It is safe for concurrent use.
type Policy struct {
	rules []Rule
}

// New builds a policy from rules evaluated in the given order.
// Rules without a matcher are ignored.
func New(rules ...Rule) *Policy {
	p := &Policy{rules: make([]Rule, 0, len(rules))}
	for _, r := range rules {
		if r.Match != nil {
			p.rules = append(p.rules, r)
		}
	}
	return p
}

// Evaluate returns the decision of the first rule that fires for path.
func (p *Policy) Evaluate(path string, hasSession bool) Decision {
	cleaned, ok := normalize(path)
	if !ok {
		return Allow()
	}
	for _, r := range p.rules {
		if !r.Condition.holds(hasSession) || !r.Match(cleaned) {
			continue
		}
		return Decision{Location: r.Redirect, Rule: r.Name}
	}
	return Allow()
}

// Rules returns a copy of the rule list.
func (p *Policy) Rules() []Rule {
	out := make([]Rule, len(p.rules))
	copy(out, p.rules)
	return out
}
