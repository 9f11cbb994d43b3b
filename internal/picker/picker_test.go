package picker

import (
	"errors"
	"os/exec"
	"slices"
	"strings"
	"testing"

	"github.com/zkcli/zk/internal/matter"
	"github.com/zkcli/zk/internal/note"
	"github.com/zkcli/zk/internal/noteid"
)

func stubTerminal(t *testing.T, tty bool, found bool) {
	t.Helper()
	prevLook, prevIn, prevOut, prevRun := lookPath, stdinIsTerminal, stdoutIsTerminal, run
	t.Cleanup(func() {
		lookPath, stdinIsTerminal, stdoutIsTerminal, run = prevLook, prevIn, prevOut, prevRun
	})

	stdinIsTerminal = func() bool { return tty }
	stdoutIsTerminal = func() bool { return tty }
	lookPath = func(string) (string, error) {
		if found {
			return "/usr/bin/fzf", nil
		}
		return "", exec.ErrNotFound
	}
}

func candidates() []*note.Note {
	var out []*note.Note
	for _, f := range []string{"1-idea.md", "2-idea.md", "3-idea.md"} {
		id := noteid.Parse(f)
		out = append(out, &note.Note{ID: id, Path: "/vault/" + f, Matter: matter.New(id.Name)})
	}
	return out
}

func TestChooseUnavailable(t *testing.T) {
	tests := []struct {
		name  string
		tty   bool
		found bool
	}{
		{name: "no terminal", tty: false, found: true},
		{name: "no binary", tty: true, found: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubTerminal(t, tt.tty, tt.found)
			run = func(string, []string, string) (string, error) {
				t.Fatal("picker should not run")
				return "", nil
			}
			if _, err := New("").Choose("pick", candidates(), false); !errors.Is(err, ErrUnavailable) {
				t.Fatalf("expected ErrUnavailable, got %v", err)
			}
		})
	}
}

func TestChooseSingle(t *testing.T) {
	stubTerminal(t, true, true)
	var gotArgs []string
	var gotInput string
	run = func(binary string, args []string, input string) (string, error) {
		gotArgs, gotInput = args, input
		return "1\t2-idea.md\tidea\t/vault/2-idea.md\n", nil
	}

	selected, err := New("").Choose("link", candidates(), false)
	if err != nil {
		t.Fatalf("Choose: %v", err)
	}
	if len(selected) != 1 || selected[0].ID.String() != "2-idea.md" {
		t.Fatalf("selected = %v", selected)
	}
	if slices.Contains(gotArgs, "--multi") {
		t.Errorf("single select should not pass --multi: %v", gotArgs)
	}
	if !strings.Contains(gotInput, "0\t1-idea.md\tidea\t/vault/1-idea.md\n") {
		t.Errorf("unexpected picker input %q", gotInput)
	}
}

func TestChooseMulti(t *testing.T) {
	stubTerminal(t, true, true)
	var gotArgs []string
	run = func(binary string, args []string, input string) (string, error) {
		gotArgs = args
		return "2\t3-idea.md\tidea\t/vault/3-idea.md\n0\t1-idea.md\tidea\t/vault/1-idea.md\n", nil
	}

	selected, err := New("").Choose("open", candidates(), true)
	if err != nil {
		t.Fatalf("Choose: %v", err)
	}
	if len(selected) != 2 || selected[0].ID.String() != "1-idea.md" || selected[1].ID.String() != "3-idea.md" {
		t.Fatalf("selected = %v", selected)
	}
	if !slices.Contains(gotArgs, "--multi") {
		t.Errorf("expected --multi in %v", gotArgs)
	}
}

func TestChooseNothingSelected(t *testing.T) {
	stubTerminal(t, true, true)

	run = func(string, []string, string) (string, error) { return "", ErrNoteNotSelected }
	if _, err := New("").Choose("x", candidates(), false); !errors.Is(err, ErrNoteNotSelected) {
		t.Fatalf("expected ErrNoteNotSelected from dismissed picker, got %v", err)
	}

	run = func(string, []string, string) (string, error) { return "\n", nil }
	if _, err := New("").Choose("x", candidates(), false); !errors.Is(err, ErrNoteNotSelected) {
		t.Fatalf("expected ErrNoteNotSelected from empty output, got %v", err)
	}

	if _, err := New("").Choose("x", nil, false); !errors.Is(err, ErrNoteNotSelected) {
		t.Fatalf("expected ErrNoteNotSelected for no candidates, got %v", err)
	}
}

func TestChooseBadOutput(t *testing.T) {
	stubTerminal(t, true, true)
	run = func(string, []string, string) (string, error) { return "9\tx\n", nil }
	if _, err := New("").Choose("x", candidates(), false); err == nil {
		t.Fatal("expected error for out-of-range selection")
	}
}

func TestNewDefaultsBinary(t *testing.T) {
	if got := New("  ").Binary; got != DefaultBinary {
		t.Fatalf("Binary = %q, want %q", got, DefaultBinary)
	}
}
