package validation

import (
	"strings"
	"unicode/utf8"
)

const (
	DisplayNameMinLength = 3
	DisplayNameMaxLength = 10
)

// DisplayNameViolations validates the public display name shown on shared pages.
func DisplayNameViolations(name string) []Violation {
	trimmed := strings.TrimSpace(name)

	if trimmed == "" {
		return []Violation{{Field: "displayName", Rule: "required", Message: "display name is required"}}
	}

	length := utf8.RuneCountInString(trimmed)
	if length < DisplayNameMinLength || length > DisplayNameMaxLength {
		return []Violation{{Field: "displayName", Rule: "length", Message: "must be between 3 and 10 characters"}}
	}

	return nil
}

func ValidateDisplayName(name string) error {
	return asError(DisplayNameViolations(name))
}
