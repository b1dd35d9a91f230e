package content

import (
	"errors"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MaxNameLen is the longest accepted name, after trimming.
const MaxNameLen = 50

var (
	// namePattern admits ASCII letters, digits, and ASCII whitespace. None of
	// the markup-significant characters can match it.
	namePattern = regexp.MustCompile(`^[a-zA-Z0-9 \t\n\v\f\r]{1,50}$`)

	// denylist is checked against the lowercased input. The allowlist already
	// excludes every entry; this is a second, independent check.
	denylist = [...]string{
		"<script",
		"javascript:",
		"onerror=",
		"onload=",
		"onmouseover=",
		"onclick=",
		"onfocus=",
		"onblur=",
		"onsubmit=",
		"onmouseout=",
		"ondblclick=",
	}

	// errRejected carries no detail on purpose.
	errRejected = errors.New("rejected")
)

// ValidatedInput is trimmed text that passed [Validate].
type ValidatedInput string

// Validate reports whether raw, once trimmed, is an acceptable name. The
// result is deliberately only a boolean.
func Validate(raw string) (ValidatedInput, bool) {
	trimmed := trim(raw)
	if trimmed == "" || len(trimmed) > MaxNameLen {
		return "", false
	}
	if !namePattern.MatchString(trimmed) || containsDenied(trimmed) {
		return "", false
	}
	return ValidatedInput(trimmed), true
}

// TrimControl strips leading and trailing spaces and control characters.
func TrimControl() TransformerFunc {
	return func(input string) (string, error) {
		return trim(input), nil
	}
}

// ValidateName fails the chain when [Validate] rejects its input.
func ValidateName() TransformerFunc {
	return func(input string) (string, error) {
		valid, ok := Validate(input)
		if !ok {
			return "", errRejected
		}
		return string(valid), nil
	}
}

// trim removes every rune at or below U+0020 from both ends.
func trim(s string) string {
	return strings.TrimFunc(s, func(r rune) bool { return r <= ' ' })
}

func containsDenied(s string) bool {
	// Casers are stateful and must not be shared across goroutines.
	normalized := cases.Lower(language.English).String(s)
	for _, entry := range denylist {
		if strings.Contains(normalized, entry) {
			return true
		}
	}
	return false
}
