package accesspolicy

import (
	"path"
	"strings"
)

// Matcher reports whether a cleaned request path satisfies a rule.
type Matcher func(p string) bool

// Prefix matches paths equal to one of the prefixes or nested below it on a
// segment boundary.
func Prefix(prefixes ...string) Matcher {
	cleaned := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		if p = strings.TrimSpace(p); p == "" || p[0] != '/' {
			continue
		}
		cleaned = append(cleaned, path.Clean(p))
	}
	return func(p string) bool {
		for _, prefix := range cleaned {
			if prefix == "/" || p == prefix || strings.HasPrefix(p, prefix+"/") {
				return true
			}
		}
		return false
	}
}

// Exact matches one of the given paths after cleaning.
func Exact(paths ...string) Matcher {
	set := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		if p == "" || p[0] != '/' {
			continue
		}
		set[path.Clean(p)] = struct{}{}
	}
	return func(p string) bool {
		_, ok := set[p]
		return ok
	}
}

// Not inverts m.
func Not(m Matcher) Matcher {
	return func(p string) bool { return !m(p) }
}

// All matches when every matcher does.
func All(ms ...Matcher) Matcher {
	return func(p string) bool {
		for _, m := range ms {
			if !m(p) {
				return false
			}
		}
		return true
	}
}

// normalize returns the cleaned path and false for input that can never
// match a rule.
func normalize(p string) (string, bool) {
	if p == "" || p[0] != '/' {
		return "", false
	}
	return path.Clean(p), true
}
