package validation

import (
	"unicode/utf8"
)

const (
	PasswordMinLength = 8
	PasswordMaxLength = 20

	// bcrypt silently truncates input past 72 bytes
	passwordMaxBytes = 72
)

// Password rule identifiers reported in Violation.Rule.
const (
	RuleMinLength = "min_length"
	RuleMaxLength = "max_length"
	RuleUppercase = "uppercase"
	RuleLowercase = "lowercase"
	RuleDigit     = "digit"
	RuleSymbol    = "symbol"
)

// PasswordViolations returns every password rule the input breaks.
// Character classes follow ASCII: anything outside A-Z, a-z and 0-9 is a symbol.
func PasswordViolations(password string) []Violation {
	var violations []Violation
	add := func(rule, message string) {
		violations = append(violations, Violation{Field: "password", Rule: rule, Message: message})
	}

	length := utf8.RuneCountInString(password)
	if length < PasswordMinLength {
		add(RuleMinLength, "must be at least 8 characters")
	}
	if length > PasswordMaxLength || len(password) > passwordMaxBytes {
		add(RuleMaxLength, "must be at most 20 characters")
	}

	var upper, lower, digit, symbol bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			symbol = true
		}
	}

	if !upper {
		add(RuleUppercase, "must contain at least one uppercase letter")
	}
	if !lower {
		add(RuleLowercase, "must contain at least one lowercase letter")
	}
	if !digit {
		add(RuleDigit, "must contain at least one number")
	}
	if !symbol {
		add(RuleSymbol, "must contain at least one special character")
	}

	return violations
}

// ValidatePassword returns Errors listing every failed rule, or nil.
func ValidatePassword(password string) error {
	return asError(PasswordViolations(password))
}
