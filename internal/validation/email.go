package validation

import (
	"net/mail"
	"unicode/utf8"
)

// EmailViolations validates format and length.
// Uses Go's built-in net/mail parser which follows RFC 5322
func EmailViolations(email string) []Violation {
	if email == "" {
		return []Violation{{Field: "email", Rule: "required", Message: "email address is required"}}
	}

	var violations []Violation
	length := utf8.RuneCountInString(email)
	if length < 3 || length > 100 {
		violations = append(violations, Violation{Field: "email", Rule: "length", Message: "must be between 3 and 100 characters"})
	}

	// ParseAddress accepts "Name <addr>" forms, so require the bare address back
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		violations = append(violations, Violation{Field: "email", Rule: "format", Message: "invalid email address format"})
	}

	return violations
}

func ValidateEmail(email string) error {
	return asError(EmailViolations(email))
}
