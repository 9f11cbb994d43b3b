// Package picker lets the user choose among candidate notes with fzf.
package picker

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/zkcli/zk/internal/note"
)

var (
	// ErrNoteNotSelected is returned when the user dismissed the picker or
	// chose nothing.
	ErrNoteNotSelected = errors.New("no note selected")
	// ErrUnavailable is returned when no interactive selection is possible:
	// the picker binary is missing or stdio is not a terminal.
	ErrUnavailable = errors.New("interactive picker unavailable")
)

// DefaultBinary is the picker executable looked up on PATH.
const DefaultBinary = "fzf"

var (
	lookPath         = exec.LookPath
	stdinIsTerminal  = func() bool { return isatty.IsTerminal(os.Stdin.Fd()) }
	stdoutIsTerminal = func() bool { return isatty.IsTerminal(os.Stdout.Fd()) }
	run              = runFZF
)

// FZF selects notes through an fzf subprocess.
type FZF struct {
	// Binary is the fzf executable name or path.
	Binary string
}

// New returns an FZF picker. An empty binary selects DefaultBinary.
func New(binary string) *FZF {
	if strings.TrimSpace(binary) == "" {
		binary = DefaultBinary
	}
	return &FZF{Binary: binary}
}

// Available reports whether the picker can be shown.
func (f *FZF) Available() bool {
	if !stdinIsTerminal() || !stdoutIsTerminal() {
		return false
	}
	_, err := lookPath(f.Binary)
	return err == nil
}

// Choose shows candidates and returns the selected ones in candidate order.
// With multi unset at most one note is returned.
func (f *FZF) Choose(prompt string, candidates []*note.Note, multi bool) ([]*note.Note, error) {
	if len(candidates) == 0 {
		return nil, ErrNoteNotSelected
	}
	if !f.Available() {
		return nil, ErrUnavailable
	}

	lines := make([]string, 0, len(candidates))
	for i, n := range candidates {
		lines = append(lines, strings.Join([]string{
			strconv.Itoa(i),
			n.ID.String(),
			n.Title(),
			n.Path,
		}, "\t"))
	}

	args := []string{
		"--layout=reverse",
		"--height=80%",
		"--border",
		"--exit-0",
		"--delimiter", "\t",
		"--with-nth", "2,3",
		"--preview", "cat {4}",
	}
	if strings.TrimSpace(prompt) != "" {
		args = append(args, "--prompt", prompt+"> ")
	}
	if multi {
		args = append(args, "--multi")
	}

	out, err := run(f.Binary, args, strings.Join(lines, "\n")+"\n")
	if err != nil {
		return nil, err
	}

	picked := make([]bool, len(candidates))
	for _, line := range strings.Split(out, "\n") {
		field, _, _ := strings.Cut(strings.TrimSpace(line), "\t")
		if field == "" {
			continue
		}
		i, err := strconv.Atoi(field)
		if err != nil || i < 0 || i >= len(candidates) {
			return nil, fmt.Errorf("unexpected picker output %q", line)
		}
		picked[i] = true
	}

	var selected []*note.Note
	for i, ok := range picked {
		if ok {
			selected = append(selected, candidates[i])
		}
	}
	if len(selected) == 0 {
		return nil, ErrNoteNotSelected
	}
	if !multi {
		selected = selected[:1]
	}
	return selected, nil
}

func runFZF(binary string, args []string, input string) (string, error) {
	cmd := exec.Command(binary, args...)
	cmd.Stdin = strings.NewReader(input)

	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			if code := exitErr.ExitCode(); code == 1 || code == 130 {
				return "", ErrNoteNotSelected
			}
		}
		return "", fmt.Errorf("run %s: %w", binary, err)
	}
	return stdout.String(), nil
}
