// Package note binds a note identifier, its file, its frontmatter and its body.
//
// The file on disk is the source of truth. Every mutation edits the in-memory
// frontmatter and immediately rewrites the whole file; nothing is re-read
// first, so callers holding an older Note see stale data until they Load
// again.
package note

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/zkcli/zk/internal/atomicfile"
	"github.com/zkcli/zk/internal/matter"
	"github.com/zkcli/zk/internal/noteid"
)

var (
	// ErrLinkExists is returned when adding a link that is already present.
	ErrLinkExists = errors.New("link already exists")
	// ErrLinkMissing is returned when removing a link that is not present.
	ErrLinkMissing = errors.New("link does not exist")
	// ErrTagExists is returned when adding a tag that is already present.
	ErrTagExists = errors.New("tag already exists")
	// ErrTagMissing is returned when removing a tag that is not present.
	ErrTagMissing = errors.New("tag does not exist")
)

// Note is a single note file.
type Note struct {
	// ID is derived from the filename.
	ID noteid.ID

	// Path is the absolute location of the file.
	Path string

	// Matter is the parsed frontmatter.
	Matter matter.Matter

	// Content is everything after the frontmatter block, unchanged.
	Content string
}

// Create writes a new file at path holding the default frontmatter for the
// name in its filename, then loads it back. It fails if the filename is not a
// valid identifier or the file already exists.
func Create(path string) (*Note, error) {
	id, err := noteid.ParseStrict(path)
	if err != nil {
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}
	if _, err := f.Write(matter.Default(id.Name)); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return nil, fmt.Errorf("write note: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close note: %w", err)
	}

	return Load(path)
}

// Load reads the file at path and splits it into frontmatter and body.
func Load(path string) (*Note, error) {
	id, err := noteid.ParseStrict(path)
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve note path: %w", err)
	}

	raw, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("read note: %w", err)
	}

	block, body, err := matter.Split(string(raw))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", id, err)
	}
	m, err := matter.Parse(block)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", id, err)
	}

	return &Note{ID: id, Path: abs, Matter: m, Content: body}, nil
}

// HasLink reports whether the note links to target.
func (n *Note) HasLink(target string) bool {
	return n.Matter.HasLink(target)
}

// HasTag reports whether the note carries tag.
func (n *Note) HasTag(tag string) bool {
	return n.Matter.HasTag(tag)
}

// AddLink appends target to the note's links and persists.
func (n *Note) AddLink(target string) error {
	if n.HasLink(target) {
		return fmt.Errorf("%s -> %s: %w", n.ID, target, ErrLinkExists)
	}
	return n.mutate(func(m *matter.Matter) {
		m.Links = append(m.Links, target)
	})
}

// RemoveLink drops target from the note's links and persists.
func (n *Note) RemoveLink(target string) error {
	if !n.HasLink(target) {
		return fmt.Errorf("%s -> %s: %w", n.ID, target, ErrLinkMissing)
	}
	return n.mutate(func(m *matter.Matter) {
		m.Links = slices.DeleteFunc(m.Links, func(l string) bool { return l == target })
	})
}

// AddTag appends tag and persists.
func (n *Note) AddTag(tag string) error {
	if n.HasTag(tag) {
		return fmt.Errorf("%s #%s: %w", n.ID, tag, ErrTagExists)
	}
	return n.mutate(func(m *matter.Matter) {
		m.Tags = append(m.Tags, tag)
	})
}

// RemoveTag drops tag and persists.
func (n *Note) RemoveTag(tag string) error {
	if !n.HasTag(tag) {
		return fmt.Errorf("%s #%s: %w", n.ID, tag, ErrTagMissing)
	}
	return n.mutate(func(m *matter.Matter) {
		m.Tags = slices.DeleteFunc(m.Tags, func(t string) bool { return t == tag })
	})
}

// Remove deletes the file. Links to this note held by other notes are left
// alone.
func (n *Note) Remove() error {
	if err := os.Remove(n.Path); err != nil {
		return fmt.Errorf("remove note: %w", err)
	}
	return nil
}

// RelPath returns the path relative to root, or the absolute path when it is
// not below root.
func (n *Note) RelPath(root string) string {
	rel, err := filepath.Rel(root, n.Path)
	if err != nil {
		return n.Path
	}
	return rel
}

// mutate applies fn to a copy of the frontmatter and persists it. The
// in-memory frontmatter only changes once the write has succeeded.
func (n *Note) mutate(fn func(m *matter.Matter)) error {
	next := n.Matter.Clone()
	fn(&next)
	if err := n.persist(next); err != nil {
		return err
	}
	n.Matter = next
	return nil
}

// persist rewrites the whole file: serialized frontmatter followed by the
// unchanged body.
func (n *Note) persist(m matter.Matter) error {
	data := matter.Serialize(m) + n.Content
	if err := atomicfile.WriteFile(n.Path, []byte(data), 0); err != nil {
		return fmt.Errorf("persist %s: %w", n.ID, err)
	}
	return nil
}
