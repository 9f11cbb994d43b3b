// Package linker keeps links between notes symmetric.
//
// Every link A -> B is expected to be mirrored by B -> A. The engine creates
// and removes both sides together, strips back-links before a note is
// deleted, and can find and repair links that drifted out of sync through
// manual edits.
package linker

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/zkcli/zk/internal/directory"
	"github.com/zkcli/zk/internal/note"
	"github.com/zkcli/zk/internal/picker"
)

// ErrSelfLink is returned when both sides of a link are the same note.
var ErrSelfLink = errors.New("cannot link a note to itself")

// Chooser picks among several candidate notes.
type Chooser interface {
	Choose(prompt string, candidates []*note.Note, multi bool) ([]*note.Note, error)
}

// Engine applies cross-note operations to the notes of a Directory.
type Engine struct {
	dir     *directory.Directory
	chooser Chooser
	logger  *slog.Logger
}

// New returns an Engine. chooser may be nil, in which case any ambiguous
// resolution fails with picker.ErrUnavailable. A nil logger discards.
func New(dir *directory.Directory, chooser Chooser, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{dir: dir, chooser: chooser, logger: logger}
}

// Directory returns the directory the engine operates on.
func (e *Engine) Directory() *directory.Directory { return e.dir }

// Resolve returns the single note called name. If several notes share the
// name the chooser is asked to pick one. A name that matches no identifier
// name is also tried as a full filename.
func (e *Engine) Resolve(name string) (*note.Note, error) {
	candidates, err := e.candidates(name)
	if err != nil {
		return nil, err
	}
	selected, err := e.Pick("select "+name, candidates, false)
	if err != nil {
		return nil, err
	}
	return selected[0], nil
}

// ResolveMany returns every note called name the user selects. A single
// match is returned without asking.
func (e *Engine) ResolveMany(name string) ([]*note.Note, error) {
	candidates, err := e.candidates(name)
	if err != nil {
		return nil, err
	}
	return e.Pick("select "+name, candidates, true)
}

// Pick narrows candidates through the chooser. One candidate is returned as
// is; none yields picker.ErrNoteNotSelected.
func (e *Engine) Pick(prompt string, candidates []*note.Note, multi bool) ([]*note.Note, error) {
	switch {
	case len(candidates) == 0:
		return nil, picker.ErrNoteNotSelected
	case len(candidates) == 1:
		return candidates, nil
	case e.chooser == nil:
		return nil, fmt.Errorf("%d notes match: %w", len(candidates), picker.ErrUnavailable)
	}

	selected, err := e.chooser.Choose(prompt, candidates, multi)
	if err != nil {
		return nil, err
	}
	if len(selected) == 0 {
		return nil, picker.ErrNoteNotSelected
	}
	if !multi {
		selected = selected[:1]
	}
	return selected, nil
}

func (e *Engine) candidates(name string) ([]*note.Note, error) {
	notes, err := e.dir.FindByName(name)
	if err == nil {
		return notes, nil
	}
	if !errors.Is(err, directory.ErrNotFound) {
		return nil, err
	}
	n, getErr := e.dir.Get(name)
	if getErr != nil {
		// Report the name lookup; the filename fallback is incidental.
		if errors.Is(getErr, directory.ErrNotFound) {
			return nil, err
		}
		return nil, getErr
	}
	return []*note.Note{n}, nil
}

// Link records a link from a to b and from b to a. It succeeds if at least
// one side was added; if both sides already held the link it returns an
// error wrapping note.ErrLinkExists.
func (e *Engine) Link(a, b *note.Note) error {
	if a.Path == b.Path {
		return fmt.Errorf("%s: %w", a.ID, ErrSelfLink)
	}

	addedA, err := tolerate(a.AddLink(b.ID.String()), note.ErrLinkExists)
	if err != nil {
		return err
	}
	addedB, err := tolerate(b.AddLink(a.ID.String()), note.ErrLinkExists)
	if err != nil {
		return err
	}

	if !addedA && !addedB {
		return fmt.Errorf("%s and %s: %w", a.ID, b.ID, note.ErrLinkExists)
	}
	e.logger.Debug("linked", "a", a.ID.String(), "b", b.ID.String(), "a_added", addedA, "b_added", addedB)
	return nil
}

// Unlink removes the link between a and b on both sides. A side that
// already lacks the link is skipped; if neither side had it the error wraps
// note.ErrLinkMissing.
func (e *Engine) Unlink(a, b *note.Note) error {
	removedA, err := tolerate(a.RemoveLink(b.ID.String()), note.ErrLinkMissing)
	if err != nil {
		return err
	}
	removedB, err := tolerate(b.RemoveLink(a.ID.String()), note.ErrLinkMissing)
	if err != nil {
		return err
	}

	if !removedA && !removedB {
		return fmt.Errorf("%s and %s: %w", a.ID, b.ID, note.ErrLinkMissing)
	}
	e.logger.Debug("unlinked", "a", a.ID.String(), "b", b.ID.String(), "a_removed", removedA, "b_removed", removedB)
	return nil
}

// RemoveWithCascade strips every link to n from the other notes, then
// deletes n's file. The notes that were edited are returned. If a back-link
// edit fails the file is left in place, so the operation can be retried.
func (e *Engine) RemoveWithCascade(n *note.Note) ([]*note.Note, error) {
	target := n.ID.String()
	backers, err := e.dir.FindByLink(target)
	if err != nil {
		return nil, err
	}

	var edited []*note.Note
	for _, b := range backers {
		if b.Path == n.Path {
			continue
		}
		if err := b.RemoveLink(target); err != nil {
			return edited, fmt.Errorf("cascade %s: %w", target, err)
		}
		e.logger.Debug("removed back-link", "from", b.ID.String(), "to", target)
		edited = append(edited, b)
	}

	if err := n.Remove(); err != nil {
		return edited, err
	}
	e.logger.Debug("removed note", "path", n.Path, "back_links", len(edited))
	return edited, nil
}

// tolerate turns an error matching allowed into (false, nil). A nil error
// yields (true, nil).
func tolerate(err, allowed error) (bool, error) {
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, allowed):
		return false, nil
	default:
		return false, err
	}
}
