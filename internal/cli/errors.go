package cli

import (
	"errors"
	"io/fs"

	"github.com/zkcli/zk/internal/config"
	"github.com/zkcli/zk/internal/directory"
	"github.com/zkcli/zk/internal/editor"
	"github.com/zkcli/zk/internal/linker"
	"github.com/zkcli/zk/internal/matter"
	"github.com/zkcli/zk/internal/note"
	"github.com/zkcli/zk/internal/noteid"
	"github.com/zkcli/zk/internal/picker"
)

// Error codes for structured error responses.
// These codes are stable and can be relied upon by scripts.
const (
	ErrConfigInvalid = "CONFIG_INVALID"
	ErrConfigExists  = "CONFIG_EXISTS"
	ErrRootNotFound  = "STORAGE_NOT_FOUND"

	ErrNoteNotFound       = "NOTE_NOT_FOUND"
	ErrNoteExists         = "NOTE_EXISTS"
	ErrInvalidIdentifier  = "INVALID_IDENTIFIER"
	ErrFrontmatterInvalid = "FRONTMATTER_INVALID"

	ErrLinkExists  = "LINK_EXISTS"
	ErrLinkMissing = "LINK_MISSING"
	ErrSelfLink    = "SELF_LINK"
	ErrTagExists   = "TAG_EXISTS"
	ErrTagMissing  = "TAG_MISSING"

	ErrNothingSelected   = "NOTHING_SELECTED"
	ErrPickerUnavailable = "PICKER_UNAVAILABLE"
	ErrEditorFailed      = "EDITOR_FAILED"

	ErrInvalidInput = "INVALID_INPUT"
	ErrInternal     = "INTERNAL_ERROR"
)

// Process exit codes.
const (
	exitOK          = 0
	exitInternal    = 1
	exitNotFound    = 3
	exitConflict    = 4
	exitInvalid     = 5
	exitNoSelection = 6
)

var (
	errInvalidInput   = errors.New("invalid input")
	errConfigExists   = errors.New("config file already exists")
	errNotConfirmed   = errors.New("not confirmed")
	errNeedsForceFlag = errors.New("confirmation required")
)

// inputError carries a message for a usage mistake.
type inputError struct{ msg string }

func (e *inputError) Error() string        { return e.msg }
func (e *inputError) Is(target error) bool { return target == errInvalidInput }

func usageError(msg string) error { return &inputError{msg: msg} }

type classification struct {
	Code       string
	Exit       int
	Suggestion string
}

// classify maps an error to its stable code and exit status. Order matters:
// more specific sentinels come first.
func classify(err error) classification {
	switch {
	case errors.Is(err, errInvalidInput):
		return classification{ErrInvalidInput, exitInvalid, "Run 'zk help' for usage"}
	case errors.Is(err, config.ErrInvalid):
		return classification{ErrConfigInvalid, exitInvalid, "Fix the config file or the ZK_* environment variables"}
	case errors.Is(err, noteid.ErrInvalidIdentifier):
		return classification{ErrInvalidIdentifier, exitInvalid, "Note files are named {prefix}-{name}.{ext}"}
	case errors.Is(err, matter.ErrFrontmatter):
		return classification{ErrFrontmatterInvalid, exitInvalid, "Fix the frontmatter block of the note named in the message"}

	case errors.Is(err, directory.ErrRootMissing):
		return classification{ErrRootNotFound, exitNotFound, "Run 'zk init <path>' or pass --path"}
	case errors.Is(err, directory.ErrNotFound):
		return classification{ErrNoteNotFound, exitNotFound, "Run 'zk list' to see existing notes"}

	case errors.Is(err, linker.ErrSelfLink):
		return classification{ErrSelfLink, exitConflict, ""}
	case errors.Is(err, note.ErrLinkExists):
		return classification{ErrLinkExists, exitConflict, ""}
	case errors.Is(err, note.ErrLinkMissing):
		return classification{ErrLinkMissing, exitConflict, ""}
	case errors.Is(err, note.ErrTagExists):
		return classification{ErrTagExists, exitConflict, ""}
	case errors.Is(err, note.ErrTagMissing):
		return classification{ErrTagMissing, exitConflict, ""}
	case errors.Is(err, errConfigExists):
		return classification{ErrConfigExists, exitConflict, "Pass --force to overwrite it"}
	case errors.Is(err, errNeedsForceFlag):
		return classification{ErrInvalidInput, exitConflict, "Pass --force to skip confirmation"}
	case errors.Is(err, fs.ErrExist):
		return classification{ErrNoteExists, exitConflict, "Wait a second and retry; the prefix is the creation time"}

	case errors.Is(err, picker.ErrUnavailable):
		return classification{ErrPickerUnavailable, exitNoSelection, "Use the full filename, or run in a terminal with fzf installed"}
	case errors.Is(err, picker.ErrNoteNotSelected), errors.Is(err, errNotConfirmed):
		return classification{ErrNothingSelected, exitNoSelection, ""}

	case errors.Is(err, editor.ErrNoEditor):
		return classification{ErrEditorFailed, exitInternal, "Set editor in the config file or $EDITOR"}
	case errors.Is(err, fs.ErrNotExist):
		return classification{ErrNoteNotFound, exitNotFound, ""}
	default:
		return classification{ErrInternal, exitInternal, ""}
	}
}
