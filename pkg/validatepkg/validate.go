// Package validatepkg provides checks and sanitization for account input values.
package validatepkg

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Maximum lengths of the account columns.
const (
	MaxNameLen  = 100
	MaxEmailLen = 120
	MaxPhoneLen = 20
)

// MinNameLen is the minimum length of a trimmed name.
const MinNameLen = 2

var emailRx = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

var sanitizer = strings.NewReplacer(
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// Email returns true if s looks like local@domain.tld.
func Email(s string) bool {
	return emailRx.MatchString(s)
}

// Name returns true if s has at least MinNameLen characters once surrounding spaces are trimmed.
func Name(s string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(s)) >= MinNameLen
}

// MaxLen returns true if s is at most n characters long.
func MaxLen(s string, n int) bool {
	return utf8.RuneCountInString(s) <= n
}

// Sanitize replaces markup characters with their HTML entities.
func Sanitize(s string) string {
	return sanitizer.Replace(s)
}

// SanitizePtr is Sanitize for optional values. A nil s is returned unchanged.
func SanitizePtr(s *string) *string {
	if s == nil {
		return nil
	}

	v := Sanitize(*s)

	return &v
}

// ValidEmail validates whether the field holds a well formed email.
var ValidEmail validator.Func = func(fl validator.FieldLevel) bool {
	if s, ok := fl.Field().Interface().(string); ok {
		return Email(s)
	}
	return false
}

// ValidName validates whether the field holds a long enough name.
var ValidName validator.Func = func(fl validator.FieldLevel) bool {
	if s, ok := fl.Field().Interface().(string); ok {
		return Name(s)
	}
	return false
}
