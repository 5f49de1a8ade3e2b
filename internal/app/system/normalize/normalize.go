// Package normalize cleans user-supplied strings before they are validated
// or stored. Free-text fields pass through bluemonday's strict policy so no
// markup survives into stored documents or JSON responses.
package normalize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Email lowercases and trims an email address. Uniqueness in the user store
// is on this normalized form.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims, strips markup, and collapses inner whitespace. Case is
// preserved.
func Name(s string) string {
	return strings.Join(strings.Fields(strict.Sanitize(s)), " ")
}

// Text trims and strips markup from a free-text field (addresses, rating
// comments), preserving inner spacing.
func Text(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}
