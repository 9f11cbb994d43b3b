// Package testutil builds throwaway note stores for tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/zkcli/zk/internal/matter"
	"github.com/zkcli/zk/internal/note"
	"github.com/zkcli/zk/internal/noteid"
)

// TestVault is a temporary storage root populated with notes.
type TestVault struct {
	Path  string
	t     *testing.T
	files map[string]string
	order []string
}

// NewTestVault creates a new vault builder. Call Build to create the
// directory.
func NewTestVault(t *testing.T) *TestVault {
	t.Helper()
	return &TestVault{
		t:     t,
		files: make(map[string]string),
	}
}

// WithFile adds a raw file, relative to the vault root.
func (v *TestVault) WithFile(path, content string) *TestVault {
	if _, ok := v.files[path]; !ok {
		v.order = append(v.order, path)
	}
	v.files[path] = content
	return v
}

// WithNote adds a note file with the given frontmatter and body. The name in
// the frontmatter is taken from the filename.
func (v *TestVault) WithNote(filename string, tags, links []string, body string) *TestVault {
	m := matter.Matter{Name: nameOf(filename), Tags: tags, Links: links}
	return v.WithFile(filename, matter.Serialize(m)+body)
}

// Build creates the vault directory and writes every configured file.
func (v *TestVault) Build() *TestVault {
	v.t.Helper()
	v.Path = v.t.TempDir()
	for _, path := range v.order {
		v.writeFile(path, v.files[path])
	}
	return v
}

func (v *TestVault) writeFile(relPath, content string) {
	v.t.Helper()
	fullPath := filepath.Join(v.Path, relPath)

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		v.t.Fatalf("failed to create directory %s: %v", dir, err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
		v.t.Fatalf("failed to write file %s: %v", fullPath, err)
	}
}

// ReadFile reads a file from the vault.
func (v *TestVault) ReadFile(relPath string) string {
	v.t.Helper()
	fullPath := filepath.Join(v.Path, relPath)
	content, err := os.ReadFile(fullPath)
	if err != nil {
		v.t.Fatalf("failed to read file %s: %v", fullPath, err)
	}
	return string(content)
}

// FileExists checks if a file exists in the vault.
func (v *TestVault) FileExists(relPath string) bool {
	v.t.Helper()
	_, err := os.Stat(filepath.Join(v.Path, relPath))
	return err == nil
}

// Note loads a note from the vault, failing the test on error.
func (v *TestVault) Note(relPath string) *note.Note {
	v.t.Helper()
	n, err := note.Load(filepath.Join(v.Path, relPath))
	if err != nil {
		v.t.Fatalf("failed to load note %s: %v", relPath, err)
	}
	return n
}

func nameOf(filename string) string {
	return noteid.Parse(filename).Name
}
