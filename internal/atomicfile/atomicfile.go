// Package atomicfile replaces files without leaving torn writes behind.
package atomicfile

import (
	"bytes"
	"fmt"
	"os"

	"github.com/natefinch/atomic"
)

// WriteFile writes data to path by way of a synced temp file in the same
// directory that is then renamed over path.
//
// If perm is 0 the existing file's mode is kept, or 0644 is used for a new
// file.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	existed := true
	if _, err := os.Stat(path); os.IsNotExist(err) {
		existed = false
	}

	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("atomic write %s: %w", path, err)
	}

	if perm == 0 && !existed {
		perm = 0o644
	}
	if perm != 0 {
		// Best-effort; some filesystems reject chmod.
		_ = os.Chmod(path, perm)
	}
	return nil
}
