// Package matter handles the YAML frontmatter block at the top of a note.
//
// The block is a fixed shape: a name, an ordered list of tags and an ordered
// list of links to other notes. Anything else in the block is rejected rather
// than carried along, so a note is never rewritten with metadata silently
// dropped.
package matter

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// Delimiter opens and closes the frontmatter block.
const Delimiter = "---"

// MaxBlockBytes caps the size of the block between the delimiters.
const MaxBlockBytes = 64 << 10

// ErrFrontmatter is matched by every *Error.
var ErrFrontmatter = errors.New("malformed frontmatter")

// Error describes why a frontmatter block could not be used.
type Error struct {
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("frontmatter: %s: %v", e.Reason, e.Err)
	}
	return "frontmatter: " + e.Reason
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports ErrFrontmatter as a match so callers need not know about *Error.
func (e *Error) Is(target error) bool { return target == ErrFrontmatter }

// Matter is the structured metadata of a note.
type Matter struct {
	Name  string   `yaml:"name"`
	Tags  []string `yaml:"tags"`
	Links []string `yaml:"links"`
}

// New returns the metadata of a freshly created note.
func New(name string) Matter {
	return Matter{Name: name, Tags: []string{}, Links: []string{}}
}

// Default returns the minimal block written into a new note: delimiters and
// the name only.
func Default(name string) []byte {
	return []byte(encode(&yaml.Node{
		Kind:    yaml.MappingNode,
		Content: []*yaml.Node{str("name"), str(name)},
	}))
}

// Parse decodes the YAML between the delimiters (block must not include
// them). Unknown keys and duplicate tags or links are errors.
func Parse(block string) (Matter, error) {
	if len(block) > MaxBlockBytes {
		return Matter{}, &Error{Reason: fmt.Sprintf("block exceeds %d bytes", MaxBlockBytes)}
	}

	var m Matter
	dec := yaml.NewDecoder(strings.NewReader(block))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil && !errors.Is(err, io.EOF) {
		return Matter{}, &Error{Reason: "invalid YAML", Err: err}
	}

	if m.Tags == nil {
		m.Tags = []string{}
	}
	if m.Links == nil {
		m.Links = []string{}
	}
	if dup, ok := firstDuplicate(m.Tags); ok {
		return Matter{}, &Error{Reason: fmt.Sprintf("duplicate tag %q", dup)}
	}
	if dup, ok := firstDuplicate(m.Links); ok {
		return Matter{}, &Error{Reason: fmt.Sprintf("duplicate link %q", dup)}
	}
	return m, nil
}

// Serialize renders m as a complete delimited block ending in a newline.
// Empty tags and links are written as `[]` rather than omitted.
func Serialize(m Matter) string {
	return encode(&yaml.Node{
		Kind: yaml.MappingNode,
		Content: []*yaml.Node{
			str("name"), str(m.Name),
			str("tags"), seq(m.Tags),
			str("links"), seq(m.Links),
		},
	})
}

func encode(doc *yaml.Node) string {
	var buf bytes.Buffer
	buf.WriteString(Delimiter + "\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	// A tree of string scalars always encodes.
	_ = enc.Encode(doc)
	_ = enc.Close()
	buf.WriteString(Delimiter + "\n")
	return buf.String()
}

// str builds a string scalar. Values holding line breaks or other
// non-printable runes are double-quoted: the block styles yaml would pick
// otherwise drop leading and trailing newlines on the way back.
func str(s string) *yaml.Node {
	n := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
	if strings.ContainsFunc(s, func(r rune) bool { return r != ' ' && !unicode.IsPrint(r) }) {
		n.Style = yaml.DoubleQuotedStyle
	}
	return n
}

func seq(items []string) *yaml.Node {
	n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, item := range items {
		n.Content = append(n.Content, str(item))
	}
	return n
}

// Equal compares two values, treating nil and empty lists alike.
func Equal(a, b Matter) bool {
	return a.Name == b.Name && equalStrings(a.Tags, b.Tags) && equalStrings(a.Links, b.Links)
}

// Clone returns a deep copy.
func (m Matter) Clone() Matter {
	return Matter{
		Name:  m.Name,
		Tags:  append([]string{}, m.Tags...),
		Links: append([]string{}, m.Links...),
	}
}

// HasTag reports whether tag is present.
func (m Matter) HasTag(tag string) bool { return indexOf(m.Tags, tag) >= 0 }

// HasLink reports whether link is present.
func (m Matter) HasLink(link string) bool { return indexOf(m.Links, link) >= 0 }

// Split separates raw note content into the frontmatter block (without
// delimiters, line endings kept) and the body. The first line must be the opening delimiter and
// a closing delimiter line must follow. The body is everything after the
// closing delimiter's line ending, byte for byte.
func Split(raw string) (block, body string, err error) {
	first, rest, found := strings.Cut(raw, "\n")
	if !isDelimiter(first) {
		return "", "", &Error{Reason: "missing opening " + Delimiter}
	}
	if !found {
		return "", "", &Error{Reason: "missing closing " + Delimiter}
	}

	offset := 0
	for offset <= len(rest) {
		line, _, more := strings.Cut(rest[offset:], "\n")
		if isDelimiter(line) {
			block = rest[:offset]
			end := offset + len(line)
			if more {
				end++
			}
			return block, rest[end:], nil
		}
		if !more {
			break
		}
		offset += len(line) + 1
	}
	return "", "", &Error{Reason: "missing closing " + Delimiter}
}

func isDelimiter(line string) bool {
	return strings.TrimRight(line, " \t\r") == Delimiter
}

func indexOf(items []string, s string) int {
	for i, item := range items {
		if item == s {
			return i
		}
	}
	return -1
}

func firstDuplicate(items []string) (string, bool) {
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			return item, true
		}
		seen[item] = struct{}{}
	}
	return "", false
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
