// Package htmlsanitize strips dangerous markup from user-supplied text.
//
// Claim descriptions and reviewer comments arrive from the presentation
// layer as free text that may contain HTML. Sanitize keeps a small set of
// formatting tags and removes everything executable; SanitizeStrict strips
// all markup and is used where only plain text makes sense.
package htmlsanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	ugc    = bluemonday.UGCPolicy()
	strict = bluemonday.StrictPolicy()
)

// Sanitize removes scripts, event handlers, and javascript: URLs while
// keeping basic user-generated-content formatting (p, strong, em, lists,
// links with safe hrefs).
func Sanitize(s string) string {
	return ugc.Sanitize(s)
}

// SanitizeStrict strips all HTML, returning plain text with surrounding
// whitespace trimmed.
func SanitizeStrict(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}
