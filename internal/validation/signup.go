package validation

// ValidateSignup checks every signup field and reports all violations together.
func ValidateSignup(email, password, displayName string) error {
	var violations []Violation
	violations = append(violations, EmailViolations(email)...)
	violations = append(violations, PasswordViolations(password)...)
	violations = append(violations, DisplayNameViolations(displayName)...)
	return asError(violations)
}
