package sanitizer

import (
	"html"
	"regexp"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
)

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)

	strictPolicy = bluemonday.StrictPolicy()
	ugcPolicy    = func() *bluemonday.Policy {
		p := bluemonday.UGCPolicy()
		p.RequireNoFollowOnLinks(true)
		p.AddTargetBlankToFullyQualifiedLinks(true)
		return p
	}()
)

func Trim(s string) string { return strings.TrimSpace(s) }

// RemoveExtraWhitespace collapses runs of whitespace into single spaces.
func RemoveExtraWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

// SingleLine joins lines with spaces.
func SingleLine(s string) string {
	return RemoveExtraWhitespace(strings.NewReplacer("\r", " ", "\n", " ").Replace(s))
}

// Text keeps line breaks but trims every line and drops control characters.
func Text(s string) string {
	lines := strings.Split(strings.ReplaceAll(RemoveControlChars(s), "\r\n", "\n"), "\n")
	for i, l := range lines {
		lines[i] = RemoveExtraWhitespace(l)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// RemoveControlChars drops control characters except newline and tab.
func RemoveControlChars(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t' {
			return -1
		}
		return r
	}, s)
}

// StripHTML removes every tag and returns plain text with entities decoded.
func StripHTML(s string) string {
	return html.UnescapeString(strictPolicy.Sanitize(s))
}

// SafeHTML keeps the formatting subset allowed for user-generated content.
func SafeHTML(s string) string {
	return strings.TrimSpace(ugcPolicy.Sanitize(s))
}

// MaxLength truncates s to maxLen runes.
func MaxLength(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen])
}

// NormalizeEmail trims and lowercases an address.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizePhone keeps digits and a leading plus sign.
func NormalizePhone(s string) string {
	s = strings.TrimSpace(s)
	plus := strings.HasPrefix(s, "+")
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
	if plus && digits != "" {
		return "+" + digits
	}
	return digits
}
