package testutil

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

// AssertFileExists fails the test if the file does not exist.
func (v *TestVault) AssertFileExists(relPath string) {
	v.t.Helper()
	if _, err := os.Stat(filepath.Join(v.Path, relPath)); os.IsNotExist(err) {
		v.t.Errorf("expected file to exist: %s", relPath)
	}
}

// AssertFileNotExists fails the test if the file exists.
func (v *TestVault) AssertFileNotExists(relPath string) {
	v.t.Helper()
	if _, err := os.Stat(filepath.Join(v.Path, relPath)); err == nil {
		v.t.Errorf("expected file to not exist: %s", relPath)
	}
}

// AssertFileContains fails the test if the file does not contain the substring.
func (v *TestVault) AssertFileContains(relPath, substr string) {
	v.t.Helper()
	content := v.ReadFile(relPath)
	if !strings.Contains(content, substr) {
		v.t.Errorf("expected file %s to contain %q, got:\n%s", relPath, substr, content)
	}
}

// AssertLinks fails the test unless the note's links on disk equal want,
// ignoring order.
func (v *TestVault) AssertLinks(relPath string, want ...string) {
	v.t.Helper()
	got := slices.Clone(v.Note(relPath).Matter.Links)
	want = slices.Clone(want)
	slices.Sort(got)
	slices.Sort(want)
	if !slices.Equal(got, want) {
		v.t.Errorf("links of %s = %v, want %v", relPath, got, want)
	}
}

// AssertTags fails the test unless the note's tags on disk equal want, in
// order.
func (v *TestVault) AssertTags(relPath string, want ...string) {
	v.t.Helper()
	got := v.Note(relPath).Matter.Tags
	if want == nil {
		want = []string{}
	}
	if !slices.Equal(got, want) {
		v.t.Errorf("tags of %s = %v, want %v", relPath, got, want)
	}
}

// AssertHasWarning checks that the result contains a warning with the given code.
func (r *CLIResult) AssertHasWarning(t *testing.T, code string) {
	t.Helper()
	for _, w := range r.Warnings {
		if w.Code == code {
			return
		}
	}
	t.Errorf("expected warning with code %s, got warnings: %+v", code, r.Warnings)
}

// AssertResultCount checks that a list in the result data has the expected length.
func (r *CLIResult) AssertResultCount(t *testing.T, key string, expected int) {
	t.Helper()
	results := r.DataList(key)
	if len(results) != expected {
		t.Errorf("expected %d %s, got %d\nRaw: %s", expected, key, len(results), r.RawJSON)
	}
}
