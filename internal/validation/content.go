package validation

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/templui/brainbox/internal/model"
)

const (
	ContentTitleMaxLength   = 200
	ContentLocatorMaxLength = 10000
)

// ValidateContent checks a new item before it reaches the content store.
// Notes carry free text in locator; every other kind needs an http(s) URL.
func ValidateContent(title, kind, locator string) error {
	var violations []Violation

	title = strings.TrimSpace(title)
	switch {
	case title == "":
		violations = append(violations, Violation{Field: "title", Rule: "required", Message: "title is required"})
	case utf8.RuneCountInString(title) > ContentTitleMaxLength:
		violations = append(violations, Violation{Field: "title", Rule: "length", Message: "must be at most 200 characters"})
	}

	if !model.IsContentKind(kind) {
		violations = append(violations, Violation{Field: "kind", Rule: "enum", Message: "must be one of " + strings.Join(model.ContentKinds, ", ")})
	}

	switch {
	case strings.TrimSpace(locator) == "":
		violations = append(violations, Violation{Field: "locator", Rule: "required", Message: "link or note text is required"})
	case utf8.RuneCountInString(locator) > ContentLocatorMaxLength:
		violations = append(violations, Violation{Field: "locator", Rule: "length", Message: "is too long"})
	case kind != model.ContentKindNote && model.IsContentKind(kind) && !isHTTPURL(locator):
		violations = append(violations, Violation{Field: "locator", Rule: "url", Message: "must be an http or https URL"})
	}

	return asError(violations)
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
