package core

import (
	"errors"
	"fmt"
)

// Sentinel errors for deletion outcomes. Callers branch with
// errors.Is to decide between reporting and aborting.
var (
	// ErrBlockedPath means the safety validator refused the path.
	ErrBlockedPath = errors.New("path is protected")

	// ErrInvalidPath means the path never reached the filesystem:
	// empty, relative, or containing traversal components.
	ErrInvalidPath = errors.New("invalid path")

	// ErrPermissionDenied distinguishes EACCES/EPERM on delete so the
	// UI can suggest re-running with sudo.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrRequiresRoot marks operations that only make sense elevated.
	ErrRequiresRoot = errors.New("operation requires root privileges")

	// ErrCancelled is returned when the user aborts an operation.
	ErrCancelled = errors.New("operation cancelled")
)

// CommandError captures a failed external command. Each maintenance
// task fails independently; the batch never aborts on one of these.
type CommandError struct {
	Command string
	Stderr  string
}

func (e *CommandError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("command failed: %s", e.Command)
	}
	return fmt.Sprintf("command failed: %s: %s", e.Command, e.Stderr)
}
