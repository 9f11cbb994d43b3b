package linker

import (
	"errors"
	"fmt"

	"github.com/zkcli/zk/internal/note"
)

// IssueKind classifies a link inconsistency.
type IssueKind string

const (
	// Asymmetric means Source links to Target but Target does not link back.
	Asymmetric IssueKind = "asymmetric"
	// Dangling means Source links to a filename no note has.
	Dangling IssueKind = "dangling"
)

// Issue is one inconsistent link found by Check.
type Issue struct {
	Kind   IssueKind
	Source *note.Note
	// Target is the link value as stored in Source.
	Target string
	// TargetNote is nil for dangling links.
	TargetNote *note.Note
}

func (i Issue) String() string {
	switch i.Kind {
	case Asymmetric:
		return fmt.Sprintf("%s links to %s, which does not link back", i.Source.ID, i.Target)
	case Dangling:
		return fmt.Sprintf("%s links to missing note %s", i.Source.ID, i.Target)
	default:
		return fmt.Sprintf("%s -> %s: %s", i.Source.ID, i.Target, i.Kind)
	}
}

// Check scans every note and reports links that are one-sided or point at a
// note that does not exist. Issues come out in directory order.
func (e *Engine) Check() ([]Issue, error) {
	notes, err := e.dir.List()
	if err != nil {
		return nil, err
	}
	byID := index(notes)

	var issues []Issue
	for _, n := range notes {
		for _, link := range n.Matter.Links {
			target, ok := byID[link]
			switch {
			case !ok:
				issues = append(issues, Issue{Kind: Dangling, Source: n, Target: link})
			case !target.HasLink(n.ID.String()):
				issues = append(issues, Issue{Kind: Asymmetric, Source: n, Target: link, TargetNote: target})
			}
		}
	}
	e.logger.Debug("checked links", "notes", len(notes), "issues", len(issues))
	return issues, nil
}

// Repair fixes issues found by Check: asymmetric links get the missing
// back-link, dangling links are removed. Issues that were already fixed in
// the meantime are skipped; the rest are returned in order.
func (e *Engine) Repair(issues []Issue) ([]Issue, error) {
	var repaired []Issue
	for _, issue := range issues {
		var err error
		switch issue.Kind {
		case Asymmetric:
			err = issue.TargetNote.AddLink(issue.Source.ID.String())
			if errors.Is(err, note.ErrLinkExists) {
				continue
			}
		case Dangling:
			err = issue.Source.RemoveLink(issue.Target)
			if errors.Is(err, note.ErrLinkMissing) {
				continue
			}
		default:
			continue
		}
		if err != nil {
			return repaired, fmt.Errorf("repair %s: %w", issue, err)
		}
		e.logger.Debug("repaired link", "kind", string(issue.Kind), "source", issue.Source.ID.String(), "target", issue.Target)
		repaired = append(repaired, issue)
	}
	return repaired, nil
}

func index(notes []*note.Note) map[string]*note.Note {
	byID := make(map[string]*note.Note, len(notes))
	for _, n := range notes {
		key := n.ID.String()
		if _, dup := byID[key]; !dup {
			byID[key] = n
		}
	}
	return byID
}
