// Package htmlsanitize cleans user-entered text before it is stored.
package htmlsanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// StripTags removes all markup from s and returns plain text. Script and
// style contents are dropped with their tags. Entities are decoded so the
// result is stored as the user would read it; templates escape on output.
func StripTags(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}
