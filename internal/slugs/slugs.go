// Package slugs normalises user-typed note names.
package slugs

import (
	"strings"

	goslug "github.com/gosimple/slug"
)

// Name turns free text into a note name: lower case, ASCII, words joined by
// "-". Dots never survive, so the result cannot be mistaken for an
// extension. It returns "" when nothing usable is left.
func Name(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	slugged := goslug.Make(s)
	slugged = strings.ReplaceAll(slugged, ".", "-")
	return strings.Trim(slugged, "-")
}

// Tag normalises a tag: surrounding space and a leading '#' are dropped and
// inner whitespace becomes '-'. Case is kept.
func Tag(s string) string {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	return strings.Join(strings.Fields(s), "-")
}
