// Package editor opens note files in the user's editor.
package editor

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ErrNoEditor is returned when no editor command is configured.
var ErrNoEditor = errors.New("no editor configured")

// run is swapped in tests.
var run = func(cmd *exec.Cmd) error { return cmd.Run() }

// Open runs editor on paths in the foreground, attached to the terminal, and
// waits for it to exit. An editor string containing spaces, such as
// "code --wait" or "open -a Typora", is run through sh.
func Open(editor string, paths ...string) error {
	editor = strings.TrimSpace(editor)
	if editor == "" {
		return ErrNoEditor
	}
	if len(paths) == 0 {
		return nil
	}

	cmd := command(editor, paths)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := run(cmd); err != nil {
		return fmt.Errorf("run editor %q: %w", commandName(editor), err)
	}
	return nil
}

func command(editor string, paths []string) *exec.Cmd {
	if !strings.ContainsAny(editor, " \t") {
		return exec.Command(editor, paths...)
	}
	quoted := make([]string, 0, len(paths))
	for _, p := range paths {
		quoted = append(quoted, quote(p))
	}
	return exec.Command("sh", "-c", editor+" "+strings.Join(quoted, " "))
}

// commandName returns the executable part of an editor string, for messages.
func commandName(editor string) string {
	fields := strings.Fields(editor)
	if len(fields) == 0 {
		return ""
	}
	return strings.Trim(fields[0], `"'`)
}

// quote wraps s in single quotes for sh.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
