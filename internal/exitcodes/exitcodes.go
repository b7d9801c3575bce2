package exitcodes

import (
	"errors"

	"github.com/lakshaymaurya-felt/linmole/internal/core"
)

// Exit codes returned by the lm binary. Scripts and the installer
// depend on these values staying stable.
const (
	Success         = 0 // Successful execution, including "nothing found"
	InvalidConfig   = 2 // Configuration or command usage invalid
	SafetyViolation = 3 // Path safety validation refused an operation
	RuntimeError    = 4 // Runtime error during execution
)

// UsageError marks configuration or command-line problems so ForError
// maps them to InvalidConfig.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }
func (e *UsageError) Unwrap() error { return e.Err }

// ForError maps a command failure to the process exit code.
func ForError(err error) int {
	var usage *UsageError
	switch {
	case err == nil:
		return Success
	case errors.As(err, &usage):
		return InvalidConfig
	case errors.Is(err, core.ErrBlockedPath), errors.Is(err, core.ErrInvalidPath):
		return SafetyViolation
	default:
		return RuntimeError
	}
}
