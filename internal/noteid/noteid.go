// Package noteid handles the `{prefix}-{name}.{ext}` filename convention that
// carries a note's identity.
//
// The prefix is an opaque sortable string, conventionally the creation time as
// UTC epoch seconds. The name is the user-chosen short identifier. The
// extension is everything after the last '.' in the filename.
package noteid

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Separator joins prefix and name.
const Separator = "-"

// DefaultExtension is used when no extension is configured.
const DefaultExtension = "md"

// ErrInvalidIdentifier indicates a filename that does not follow the
// `{prefix}-{name}.{ext}` convention.
var ErrInvalidIdentifier = errors.New("invalid note identifier")

// now is swapped in tests.
var now = time.Now

// ID is a note identifier. It is a value type: renaming a note means building
// a new ID and moving the file.
type ID struct {
	Prefix    string
	Name      string
	Extension string
}

// Generate returns a fresh identifier for name, prefixed with the current UTC
// time in epoch seconds. An empty ext falls back to DefaultExtension.
func Generate(name, ext string) ID {
	if ext == "" {
		ext = DefaultExtension
	}
	return ID{
		Prefix:    strconv.FormatInt(now().UTC().Unix(), 10),
		Name:      name,
		Extension: ext,
	}
}

// Parse derives an identifier from a filename. Any directory components are
// ignored. Parse is total: a stem without a separator yields the whole stem as
// the prefix and an empty name. Use ParseStrict to reject such filenames.
func Parse(filename string) ID {
	id, _ := parse(filename)
	return id
}

// ParseStrict is Parse but fails with ErrInvalidIdentifier when the stem has
// no separator.
func ParseStrict(filename string) (ID, error) {
	id, ok := parse(filename)
	if !ok {
		return id, fmt.Errorf("%w: %q has no %q between prefix and name", ErrInvalidIdentifier, filepath.Base(filename), Separator)
	}
	return id, nil
}

func parse(filename string) (ID, bool) {
	base := filepath.Base(filename)
	if base == "." || base == string(filepath.Separator) {
		base = ""
	}

	stem, ext := base, ""
	if i := strings.LastIndex(base, "."); i >= 0 {
		stem, ext = base[:i], base[i+1:]
	}

	prefix, name, found := strings.Cut(stem, Separator)
	return ID{Prefix: prefix, Name: name, Extension: ext}, found
}

// String returns the canonical filename.
func (id ID) String() string {
	var b strings.Builder
	b.WriteString(id.Prefix)
	b.WriteString(Separator)
	b.WriteString(id.Name)
	if id.Extension != "" {
		b.WriteByte('.')
		b.WriteString(id.Extension)
	}
	return b.String()
}

// Time interprets the prefix as epoch seconds. ok is false for prefixes that
// are not decimal timestamps.
func (id ID) Time() (t time.Time, ok bool) {
	secs, err := strconv.ParseInt(id.Prefix, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.Unix(secs, 0).UTC(), true
}
