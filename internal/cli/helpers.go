package cli

import (
	"fmt"
	"strings"

	"github.com/zkcli/zk/internal/editor"
	"github.com/zkcli/zk/internal/note"
	"github.com/zkcli/zk/internal/ui"
)

// openEditor is swapped in tests.
var openEditor = editor.Open

// openNotes opens notes in the configured editor. In JSON mode nothing is
// launched.
func openNotes(notes []*note.Note) error {
	if jsonOutput || len(notes) == 0 {
		return nil
	}
	paths := make([]string, 0, len(notes))
	for _, n := range notes {
		paths = append(paths, n.Path)
	}
	logger.Debug("opening editor", "editor", cfg.Editor, "files", len(paths))
	return openEditor(cfg.Editor, paths...)
}

// noteLine renders a note as "id  title  #tags" for one-line listings.
func noteLine(n *note.Note) string {
	parts := []string{ui.NoteID(n.ID.String())}
	if title := n.Title(); title != "" && title != n.ID.Name {
		parts = append(parts, title)
	}
	if tags := ui.Tags(n.Matter.Tags); tags != "" {
		parts = append(parts, tags)
	}
	return strings.Join(parts, "  ")
}

func printNotes(notes []*note.Note) {
	tbl := ui.NewTable(3)
	for _, n := range notes {
		tbl.AddRow(ui.NoteID(n.ID.String()), n.Title(), ui.Tags(n.Matter.Tags))
	}
	fmt.Fprint(stdout, tbl.String())
}

func noteIDs(notes []*note.Note) []string {
	ids := make([]string, 0, len(notes))
	for _, n := range notes {
		ids = append(ids, n.ID.String())
	}
	return ids
}

func notesOf(n ...*note.Note) []*note.Note { return n }
