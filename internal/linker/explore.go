package linker

import (
	"github.com/zkcli/zk/internal/note"
)

// Level holds the notes first reached at a given distance from the root.
type Level struct {
	Depth int
	Notes []*note.Note
}

// Exploration is the neighbourhood of a note.
type Exploration struct {
	Root *note.Note
	// Levels[0] is at distance 1.
	Levels []Level
	// Backlinks are the notes linking to Root.
	Backlinks []*note.Note
	// Dangling lists link targets met on the way that have no note.
	Dangling []string
}

// Explore walks outgoing links breadth-first from root up to depth hops.
// Each note appears once, at its shortest distance. depth below 1 is
// treated as 1.
func (e *Engine) Explore(root *note.Note, depth int) (*Exploration, error) {
	if depth < 1 {
		depth = 1
	}
	notes, err := e.dir.List()
	if err != nil {
		return nil, err
	}
	byID := index(notes)

	rootID := root.ID.String()
	if fresh, ok := byID[rootID]; ok {
		root = fresh
	}

	x := &Exploration{Root: root}
	for _, n := range notes {
		if n.Path != root.Path && n.HasLink(rootID) {
			x.Backlinks = append(x.Backlinks, n)
		}
	}

	seen := map[string]bool{rootID: true}
	frontier := []*note.Note{root}
	for d := 1; d <= depth && len(frontier) > 0; d++ {
		var next []*note.Note
		for _, n := range frontier {
			for _, link := range n.Matter.Links {
				if seen[link] {
					continue
				}
				seen[link] = true
				target, ok := byID[link]
				if !ok {
					x.Dangling = append(x.Dangling, link)
					continue
				}
				next = append(next, target)
			}
		}
		if len(next) > 0 {
			x.Levels = append(x.Levels, Level{Depth: d, Notes: next})
		}
		frontier = next
	}

	e.logger.Debug("explored", "root", rootID, "depth", depth, "levels", len(x.Levels))
	return x, nil
}
