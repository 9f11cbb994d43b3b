// Package directory enumerates the notes stored under a root path.
//
// Nothing is cached: every query walks the filesystem again and loads each
// matching file, so two calls may observe different notes if the files
// changed in between.
package directory

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/zkcli/zk/internal/note"
	"github.com/zkcli/zk/internal/noteid"
)

var (
	// ErrNotFound is returned when a query matches no note.
	ErrNotFound = errors.New("note not found")
	// ErrRootMissing is returned when the storage root does not exist.
	ErrRootMissing = errors.New("storage root does not exist")
)

// Directory is a view over the notes under Root with a given extension.
type Directory struct {
	Root      string
	Extension string

	logger *slog.Logger
}

// Option configures a Directory.
type Option func(*Directory)

// WithLogger sets the logger used for per-file diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Directory) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// New returns a Directory rooted at root. An empty ext selects
// noteid.DefaultExtension.
func New(root, ext string, opts ...Option) *Directory {
	if ext == "" {
		ext = noteid.DefaultExtension
	}
	d := &Directory{
		Root:      root,
		Extension: strings.TrimPrefix(ext, "."),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// List loads every note under the root. The first file that cannot be loaded
// aborts the listing.
func (d *Directory) List() ([]*note.Note, error) {
	return d.collect(func(*note.Note) bool { return true })
}

// FindByName returns the notes whose identifier name equals name. Several
// notes may share a name; they differ by prefix.
func (d *Directory) FindByName(name string) ([]*note.Note, error) {
	notes, err := d.collect(func(n *note.Note) bool { return n.ID.Name == name })
	if err != nil {
		return nil, err
	}
	if len(notes) == 0 {
		return nil, fmt.Errorf("no note named %q: %w", name, ErrNotFound)
	}
	return notes, nil
}

// FindByTag returns the notes carrying tag.
func (d *Directory) FindByTag(tag string) ([]*note.Note, error) {
	notes, err := d.collect(func(n *note.Note) bool { return n.HasTag(tag) })
	if err != nil {
		return nil, err
	}
	if len(notes) == 0 {
		return nil, fmt.Errorf("no note tagged %q: %w", tag, ErrNotFound)
	}
	return notes, nil
}

// FindByLink returns the notes whose links contain target. An empty result
// is not an error.
func (d *Directory) FindByLink(target string) ([]*note.Note, error) {
	return d.collect(func(n *note.Note) bool { return n.HasLink(target) })
}

// Get returns the note whose filename is exactly filename.
func (d *Directory) Get(filename string) (*note.Note, error) {
	notes, err := d.collect(func(n *note.Note) bool { return n.ID.String() == filename })
	if err != nil {
		return nil, err
	}
	if len(notes) == 0 {
		return nil, fmt.Errorf("no note %q: %w", filename, ErrNotFound)
	}
	return notes[0], nil
}

// Create writes a new note called name directly under the root.
func (d *Directory) Create(name string) (*note.Note, error) {
	if err := d.checkRoot(); err != nil {
		return nil, err
	}
	id := noteid.Generate(name, d.Extension)
	n, err := note.Create(filepath.Join(d.Root, id.String()))
	if err != nil {
		return nil, err
	}
	d.logger.Debug("created note", "path", n.Path)
	return n, nil
}

func (d *Directory) checkRoot() error {
	st, err := os.Stat(d.Root)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w", d.Root, ErrRootMissing)
	}
	if err != nil {
		return fmt.Errorf("stat root: %w", err)
	}
	if !st.IsDir() {
		return fmt.Errorf("%s is not a directory: %w", d.Root, ErrRootMissing)
	}
	return nil
}

// collect walks the root in lexical order and keeps the notes accepted by
// keep.
func (d *Directory) collect(keep func(*note.Note) bool) ([]*note.Note, error) {
	if err := d.checkRoot(); err != nil {
		return nil, err
	}

	var notes []*note.Note
	err := filepath.WalkDir(d.Root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			if path != d.Root && strings.HasPrefix(entry.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !entry.Type().IsRegular() || strings.HasPrefix(entry.Name(), ".") {
			return nil
		}
		if noteid.Parse(entry.Name()).Extension != d.Extension {
			return nil
		}

		n, err := note.Load(path)
		if err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		d.logger.Debug("loaded note", "path", path, "tags", len(n.Matter.Tags), "links", len(n.Matter.Links))
		if keep(n) {
			notes = append(notes, n)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return notes, nil
}
