package pipeline

import (
	"errors"
	"fmt"
)

// Sentinel errors for directory listing and name checks.
var (
	ErrNotADirectory = errors.New("not a directory")
	ErrInvalidName   = errors.New("invalid file name")
)

// RenameError reports a failed rename of one file. It aborts the batch.
// Old and New are base names inside the target directory; a wrapped
// filesystem error carries the full paths.
type RenameError struct {
	Old string
	New string
	Err error
}

func (e *RenameError) Error() string {
	return fmt.Sprintf("rename %s -> %s: %v", e.Old, e.New, e.Err)
}

func (e *RenameError) Unwrap() error { return e.Err }
