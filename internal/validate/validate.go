// Package validate provides the field-level predicates used by the service
// layer. Predicates are pure; callers collect every violation before failing
// so clients see the full list at once.
package validate

import (
	"net/mail"
	"strings"
	"unicode/utf8"
)

// Violation is a single field rule failure.
type Violation struct {
	Message string `json:"message"`
}

// IsEmail reports whether s parses as a bare email address.
func IsEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	// Reject display-name forms like `Name <a@b.c>`; only the address itself counts.
	return addr.Address == strings.TrimSpace(s)
}

// NonEmpty reports whether s contains anything besides whitespace.
func NonEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}

// MinLength reports whether s has at least n characters after trimming.
func MinLength(s string, n int) bool {
	return utf8.RuneCountInString(strings.TrimSpace(s)) >= n
}
