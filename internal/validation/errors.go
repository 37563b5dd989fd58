package validation

import (
	"strings"
)

// Violation is one failed rule for one input field.
type Violation struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Errors collects every violation found in a single pass; validators never stop
// at the first failing rule.
type Errors []Violation

func (e Errors) Error() string {
	messages := make([]string, 0, len(e))
	for _, v := range e {
		messages = append(messages, v.Field+": "+v.Message)
	}
	return "validation failed: " + strings.Join(messages, "; ")
}

// Rules returns the failed rule identifiers for field, in check order.
func (e Errors) Rules(field string) []string {
	var rules []string
	for _, v := range e {
		if v.Field == field {
			rules = append(rules, v.Rule)
		}
	}
	return rules
}

// asError keeps a nil slice from turning into a non-nil error interface.
func asError(violations []Violation) error {
	if len(violations) == 0 {
		return nil
	}
	return Errors(violations)
}
