package linker

import (
	"errors"
	"fmt"
	"slices"
	"testing"

	"pgregory.net/rapid"

	"github.com/zkcli/zk/internal/directory"
	"github.com/zkcli/zk/internal/note"
	"github.com/zkcli/zk/internal/picker"
	"github.com/zkcli/zk/internal/testutil"
)

// fakeChooser returns the candidates at the configured positions.
type fakeChooser struct {
	pick   []int
	err    error
	calls  int
	multis []bool
}

func (f *fakeChooser) Choose(_ string, candidates []*note.Note, multi bool) ([]*note.Note, error) {
	f.calls++
	f.multis = append(f.multis, multi)
	if f.err != nil {
		return nil, f.err
	}
	var out []*note.Note
	for _, i := range f.pick {
		out = append(out, candidates[i])
	}
	return out, nil
}

func newEngine(v *testutil.TestVault, chooser Chooser) *Engine {
	return New(directory.New(v.Path, "md"), chooser, nil)
}

func TestLinkIsSymmetric(t *testing.T) {
	v := testutil.NewTestVault(t).
		WithNote("1-a.md", nil, nil, "# A\n").
		WithNote("2-b.md", nil, nil, "# B\n").
		Build()
	e := newEngine(v, nil)

	a, b := v.Note("1-a.md"), v.Note("2-b.md")
	if err := e.Link(a, b); err != nil {
		t.Fatalf("Link: %v", err)
	}

	if !a.HasLink("2-b.md") || !b.HasLink("1-a.md") {
		t.Fatalf("in-memory links a=%v b=%v", a.Matter.Links, b.Matter.Links)
	}
	v.AssertLinks("1-a.md", "2-b.md")
	v.AssertLinks("2-b.md", "1-a.md")
	v.AssertFileContains("1-a.md", "# A\n")
}

func TestLinkThenUnlinkRestores(t *testing.T) {
	v := testutil.NewTestVault(t).
		WithNote("1-a.md", nil, []string{"3-c.md"}, "").
		WithNote("2-b.md", nil, nil, "").
		WithNote("3-c.md", nil, []string{"1-a.md"}, "").
		Build()
	e := newEngine(v, nil)

	a, b := v.Note("1-a.md"), v.Note("2-b.md")
	if err := e.Link(a, b); err != nil {
		t.Fatalf("Link: %v", err)
	}
	if err := e.Unlink(a, b); err != nil {
		t.Fatalf("Unlink: %v", err)
	}

	v.AssertLinks("1-a.md", "3-c.md")
	v.AssertLinks("2-b.md")
}

func TestLinkPartialAndConflicts(t *testing.T) {
	v := testutil.NewTestVault(t).
		WithNote("1-a.md", nil, []string{"2-b.md"}, "").
		WithNote("2-b.md", nil, nil, "").
		Build()
	e := newEngine(v, nil)
	a, b := v.Note("1-a.md"), v.Note("2-b.md")

	// One side already holds the link; the other side is completed.
	if err := e.Link(a, b); err != nil {
		t.Fatalf("Link with one side present: %v", err)
	}
	v.AssertLinks("2-b.md", "1-a.md")

	if err := e.Link(a, b); !errors.Is(err, note.ErrLinkExists) {
		t.Fatalf("expected ErrLinkExists, got %v", err)
	}
	if err := e.Link(a, v.Note("1-a.md")); !errors.Is(err, ErrSelfLink) {
		t.Fatalf("expected ErrSelfLink, got %v", err)
	}
	v.AssertLinks("1-a.md", "2-b.md")
}

func TestUnlinkTolerance(t *testing.T) {
	v := testutil.NewTestVault(t).
		WithNote("1-a.md", nil, []string{"2-b.md"}, "").
		WithNote("2-b.md", nil, nil, "").
		Build()
	e := newEngine(v, nil)
	a, b := v.Note("1-a.md"), v.Note("2-b.md")

	if err := e.Unlink(a, b); err != nil {
		t.Fatalf("Unlink with one side present: %v", err)
	}
	v.AssertLinks("1-a.md")

	if err := e.Unlink(a, b); !errors.Is(err, note.ErrLinkMissing) {
		t.Fatalf("expected ErrLinkMissing, got %v", err)
	}
}

func TestRemoveWithCascade(t *testing.T) {
	v := testutil.NewTestVault(t).
		WithNote("1-a.md", nil, []string{"2-b.md", "3-c.md"}, "").
		WithNote("2-b.md", []string{"keep"}, []string{"1-a.md", "4-d.md"}, "b body\n").
		WithNote("sub/3-c.md", nil, []string{"1-a.md"}, "").
		WithNote("4-d.md", nil, []string{"2-b.md"}, "").
		Build()
	e := newEngine(v, nil)

	edited, err := e.RemoveWithCascade(v.Note("1-a.md"))
	if err != nil {
		t.Fatalf("RemoveWithCascade: %v", err)
	}

	var names []string
	for _, n := range edited {
		names = append(names, n.ID.String())
	}
	if want := []string{"2-b.md", "3-c.md"}; !slices.Equal(names, want) {
		t.Fatalf("edited = %v, want %v", names, want)
	}

	v.AssertFileNotExists("1-a.md")
	v.AssertLinks("2-b.md", "4-d.md")
	v.AssertLinks("sub/3-c.md")
	v.AssertLinks("4-d.md", "2-b.md")
	v.AssertTags("2-b.md", "keep")
	v.AssertFileContains("2-b.md", "b body\n")
}

func TestRemoveWithCascadeFailsFastOnBadNote(t *testing.T) {
	v := testutil.NewTestVault(t).
		WithNote("1-a.md", nil, nil, "").
		WithFile("2-broken.md", "no frontmatter").
		Build()
	e := newEngine(v, nil)

	if _, err := e.RemoveWithCascade(v.Note("1-a.md")); err == nil {
		t.Fatal("expected listing error")
	}
	v.AssertFileExists("1-a.md")
}

func TestResolve(t *testing.T) {
	v := testutil.NewTestVault(t).
		WithNote("1-idea.md", nil, nil, "").
		WithNote("2-idea.md", nil, nil, "").
		WithNote("3-solo.md", nil, nil, "").
		Build()

	t.Run("single match skips chooser", func(t *testing.T) {
		c := &fakeChooser{}
		n, err := newEngine(v, c).Resolve("solo")
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if n.ID.String() != "3-solo.md" || c.calls != 0 {
			t.Fatalf("got %s after %d chooser calls", n.ID, c.calls)
		}
	})

	t.Run("full filename", func(t *testing.T) {
		n, err := newEngine(v, nil).Resolve("2-idea.md")
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if n.ID.String() != "2-idea.md" {
			t.Fatalf("got %s", n.ID)
		}
	})

	t.Run("ambiguous uses chooser", func(t *testing.T) {
		c := &fakeChooser{pick: []int{1}}
		n, err := newEngine(v, c).Resolve("idea")
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if n.ID.String() != "2-idea.md" {
			t.Fatalf("got %s", n.ID)
		}
		if len(c.multis) != 1 || c.multis[0] {
			t.Fatalf("expected one single-select call, got %v", c.multis)
		}
	})

	t.Run("ambiguous without chooser", func(t *testing.T) {
		if _, err := newEngine(v, nil).Resolve("idea"); !errors.Is(err, picker.ErrUnavailable) {
			t.Fatalf("expected ErrUnavailable, got %v", err)
		}
	})

	t.Run("nothing selected", func(t *testing.T) {
		if _, err := newEngine(v, &fakeChooser{}).Resolve("idea"); !errors.Is(err, picker.ErrNoteNotSelected) {
			t.Fatalf("expected ErrNoteNotSelected, got %v", err)
		}
		c := &fakeChooser{err: picker.ErrNoteNotSelected}
		if _, err := newEngine(v, c).Resolve("idea"); !errors.Is(err, picker.ErrNoteNotSelected) {
			t.Fatalf("expected ErrNoteNotSelected, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		if _, err := newEngine(v, nil).Resolve("missing"); !errors.Is(err, directory.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("many", func(t *testing.T) {
		c := &fakeChooser{pick: []int{0, 1}}
		notes, err := newEngine(v, c).ResolveMany("idea")
		if err != nil {
			t.Fatalf("ResolveMany: %v", err)
		}
		if len(notes) != 2 || !c.multis[0] {
			t.Fatalf("got %d notes, multi=%v", len(notes), c.multis)
		}
	})
}

func TestCheckAndRepair(t *testing.T) {
	v := testutil.NewTestVault(t).
		WithNote("1-a.md", nil, []string{"2-b.md", "9-gone.md"}, "").
		WithNote("2-b.md", nil, nil, "").
		WithNote("3-c.md", nil, []string{"4-d.md"}, "").
		WithNote("4-d.md", nil, []string{"3-c.md"}, "").
		Build()
	e := newEngine(v, nil)

	issues, err := e.Check()
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if len(issues) != 2 {
		t.Fatalf("expected 2 issues, got %v", issues)
	}
	if issues[0].Kind != Asymmetric || issues[0].Target != "2-b.md" {
		t.Errorf("issue 0 = %s", issues[0])
	}
	if issues[1].Kind != Dangling || issues[1].Target != "9-gone.md" {
		t.Errorf("issue 1 = %s", issues[1])
	}

	fixed, err := e.Repair(issues)
	if err != nil {
		t.Fatalf("Repair: %v", err)
	}
	if len(fixed) != 2 {
		t.Errorf("fixed %d issues, want 2: %v", len(fixed), fixed)
	}
	v.AssertLinks("1-a.md", "2-b.md")
	v.AssertLinks("2-b.md", "1-a.md")

	again, err := e.Check()
	if err != nil {
		t.Fatal(err)
	}
	if len(again) != 0 {
		t.Fatalf("expected clean check after repair, got %v", again)
	}
}

func TestExplore(t *testing.T) {
	v := testutil.NewTestVault(t).
		WithNote("1-a.md", nil, []string{"2-b.md", "3-c.md"}, "").
		WithNote("2-b.md", nil, []string{"1-a.md", "4-d.md"}, "").
		WithNote("3-c.md", nil, []string{"1-a.md", "8-gone.md"}, "").
		WithNote("4-d.md", nil, []string{"2-b.md", "5-e.md"}, "").
		WithNote("5-e.md", nil, []string{"4-d.md"}, "").
		WithNote("6-f.md", nil, []string{"1-a.md"}, "").
		Build()
	e := newEngine(v, nil)

	x, err := e.Explore(v.Note("1-a.md"), 2)
	if err != nil {
		t.Fatalf("Explore: %v", err)
	}

	var levels []string
	for _, l := range x.Levels {
		var ids []string
		for _, n := range l.Notes {
			ids = append(ids, n.ID.String())
		}
		levels = append(levels, fmt.Sprintf("%d:%v", l.Depth, ids))
	}
	want := []string{"1:[2-b.md 3-c.md]", "2:[4-d.md]"}
	if !slices.Equal(levels, want) {
		t.Fatalf("levels = %v, want %v", levels, want)
	}
	if !slices.Equal(x.Dangling, []string{"8-gone.md"}) {
		t.Errorf("dangling = %v", x.Dangling)
	}

	var back []string
	for _, n := range x.Backlinks {
		back = append(back, n.ID.String())
	}
	if want := []string{"2-b.md", "3-c.md", "6-f.md"}; !slices.Equal(back, want) {
		t.Errorf("backlinks = %v, want %v", back, want)
	}
}

func TestLinkOperationsKeepSymmetry(t *testing.T) {
	names := []string{"1-a.md", "2-b.md", "3-c.md", "4-d.md"}

	rapid.Check(t, func(rt *rapid.T) {
		builder := testutil.NewTestVault(t)
		for _, n := range names {
			builder.WithNote(n, nil, nil, "")
		}
		v := builder.Build()
		e := newEngine(v, nil)

		steps := rapid.IntRange(1, 20).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			x := rapid.SampledFrom(names).Draw(rt, "x")
			y := rapid.SampledFrom(names).Draw(rt, "y")
			a, b := v.Note(x), v.Note(y)

			var err error
			if rapid.Bool().Draw(rt, "link") {
				err = e.Link(a, b)
			} else {
				err = e.Unlink(a, b)
			}
			if err != nil && !errors.Is(err, note.ErrLinkExists) &&
				!errors.Is(err, note.ErrLinkMissing) && !errors.Is(err, ErrSelfLink) {
				rt.Fatalf("step %d %s/%s: %v", i, x, y, err)
			}
		}

		issues, err := e.Check()
		if err != nil {
			rt.Fatalf("Check: %v", err)
		}
		if len(issues) != 0 {
			rt.Fatalf("asymmetric state after operations: %v", issues)
		}
	})
}

func TestRepairSkipsFixedIssues(t *testing.T) {
	// Both copies of 1-a.md miss the same back-link from 2-b.md.
	v := testutil.NewTestVault(t).
		WithNote("2-b.md", nil, nil, "").
		WithNote("x/1-a.md", nil, []string{"2-b.md"}, "").
		WithNote("y/1-a.md", nil, []string{"2-b.md"}, "").
		Build()
	e := newEngine(v, nil)

	issues, err := e.Check()
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if len(issues) != 2 {
		t.Fatalf("expected 2 issues, got %v", issues)
	}

	fixed, err := e.Repair(issues)
	if err != nil {
		t.Fatalf("Repair: %v", err)
	}
	if len(fixed) != 1 || fixed[0].Source.Path != issues[0].Source.Path {
		t.Fatalf("fixed = %v, want only the first issue", fixed)
	}
	v.AssertLinks("2-b.md", "1-a.md")

	again, err := e.Repair(issues)
	if err != nil {
		t.Fatalf("second Repair: %v", err)
	}
	if len(again) != 0 {
		t.Errorf("second Repair fixed %v, want nothing", again)
	}
}
