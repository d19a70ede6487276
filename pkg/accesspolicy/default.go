package accesspolicy

// Paths referenced by the default policy.
const (
	LoginPath  = "/login"
	SignUpPath = "/signUp"
	HomePath   = "/availableServices"
)

// Default returns the marketplace policy: anonymous visitors are sent to the
// login page from protected areas, and signed-in users skip the login and
// sign-up pages. With no prefixes given HomePath is protected.
func Default(protected ...string) *Policy {
	if len(protected) == 0 {
		protected = []string{HomePath}
	}
	return New(
		Rule{
			Name:      "require-session",
			Match:     All(Prefix(protected...), Not(Exact(LoginPath))),
			Condition: WithoutSession,
			Redirect:  LoginPath,
		},
		Rule{
			Name:      "skip-login",
			Match:     Exact(LoginPath),
			Condition: WithSession,
			Redirect:  HomePath,
		},
		Rule{
			Name:      "skip-signup",
			Match:     Exact(SignUpPath),
			Condition: WithSession,
			Redirect:  HomePath,
		},
	)
}
