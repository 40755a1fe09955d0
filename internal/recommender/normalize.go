// internal/recommender/normalize.go
package recommender

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var multipleSpaces = regexp.MustCompile(`\s+`)

// Normalize folds a raw attribute value into its comparable form:
// NFKC, lowercased, trimmed, inner whitespace collapsed to one space.
// Casers are stateful, so one is built per call.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = norm.NFKC.String(s)
	s = cases.Lower(language.Und).String(s)
	return strings.TrimSpace(multipleSpaces.ReplaceAllString(s, " "))
}
