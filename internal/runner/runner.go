// Package runner executes external maintenance commands behind an
// interface so callers can be tested without spawning processes.
package runner

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/lakshaymaurya-felt/linmole/internal/core"
)

// commandTimeout is the maximum time to wait for one external command.
const commandTimeout = 120 * time.Second

// Runner runs a command and returns its combined output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands on the host with a per-command timeout.
type ExecRunner struct {
	Timeout time.Duration // zero means commandTimeout
}

func (r ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = commandTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	output, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		return output, translateError(ctx, name, args, output, err, timeout)
	}
	return output, nil
}

func translateError(ctx context.Context, name string, args []string, output []byte, err error, timeout time.Duration) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &core.CommandError{
			Command: commandLine(name, args),
			Stderr:  "timed out after " + timeout.String(),
		}
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &core.CommandError{
			Command: commandLine(name, args),
			Stderr:  truncateOutput(output),
		}
	}

	// Not found, permission, or context errors pass through untouched.
	return err
}

func commandLine(name string, args []string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}

// truncateOutput caps captured output at 200 bytes, backing off to a
// valid UTF-8 boundary.
func truncateOutput(output []byte) string {
	s := strings.TrimSpace(string(output))
	if len(s) <= 200 {
		return s
	}
	s = s[:200]
	for len(s) > 0 && !utf8.ValidString(s) {
		s = s[:len(s)-1]
	}
	return s + "..."
}
