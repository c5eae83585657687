// Package sanitize neutralizes markup in free-text fields before they
// are handed to storage or notification. Validation already rejects
// markup in most fields; stripping again here is defense in depth in
// case the validation patterns are ever loosened.
package sanitize

import (
	"regexp"
	"strings"
)

// tagPattern matches any substring shaped like an HTML/XML tag.
var tagPattern = regexp.MustCompile(`<[^>]*>`)

// StripTags removes every tag-shaped substring, leaving inner text
// content intact. Idempotent: stripping already-stripped text is a
// no-op.
func StripTags(s string) string {
	return tagPattern.ReplaceAllString(s, "")
}

// NormalizeEmail lower-cases and trims an email address. The address
// is not tag-stripped; its validation pattern already excludes angle
// brackets.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
