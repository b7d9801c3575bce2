package core

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	"github.com/lakshaymaurya-felt/linmole/internal/fsops"
	"github.com/lakshaymaurya-felt/linmole/internal/logging"
)

// ─── Size Accounting ─────────────────────────────────────────────────────────

// DirSize sums regular-file sizes under path without following
// symlinks. Nonexistent paths yield 0 and unreadable subtrees are
// skipped; size accounting never fails.
func DirSize(path string) int64 {
	var total int64
	filepath.WalkDir(path, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		total += info.Size()
		return nil
	})
	return total
}

// CountFiles counts regular files under path, symlinks not followed.
func CountFiles(path string) int {
	count := 0
	filepath.WalkDir(path, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.Type().IsRegular() {
			count++
		}
		return nil
	})
	return count
}

// IsSymlink reports whether path itself is a symlink.
func IsSymlink(path string) bool {
	info, err := os.Lstat(path)
	return err == nil && info.Mode()&os.ModeSymlink != 0
}

// DiskFree reports the free and total bytes of the filesystem holding
// path. Free counts only space available to unprivileged users.
func DiskFree(path string) (free, total int64, err error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return 0, 0, err
	}
	bsize := int64(stat.Bsize)
	return int64(stat.Bavail) * bsize, int64(stat.Blocks) * bsize, nil
}

// FormatSize renders bytes with binary units. Whole values drop the
// fraction: "1 KiB", "1.5 MiB".
func FormatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	value := float64(bytes)
	units := []string{"KiB", "MiB", "GiB", "TiB", "PiB"}
	idx := -1
	for value >= unit && idx < len(units)-1 {
		value /= unit
		idx++
	}

	if value == float64(int64(value)) {
		return fmt.Sprintf("%d %s", int64(value), units[idx])
	}
	return fmt.Sprintf("%.1f %s", value, units[idx])
}

// ─── Deletion Executor ───────────────────────────────────────────────────────

// DeletionReceipt records the outcome of one deletion attempt. It is
// a per-call value; persistence is the history journal's business.
type DeletionReceipt struct {
	Path  string
	Freed int64
	Err   error
}

// Executor performs validated deletions. All destructive calls go
// through the Deleter seam so tests can prove dry-run behavior.
type Executor struct {
	validator *Validator
	deleter   fsops.Deleter
	log       *logrus.Logger
}

// NewExecutor builds an executor over a validator and a deleter.
func NewExecutor(v *Validator, d fsops.Deleter) *Executor {
	return &Executor{validator: v, deleter: d, log: logging.L()}
}

// Validator exposes the executor's validator for callers that want to
// pre-classify scan results.
func (e *Executor) Validator() *Validator { return e.validator }

// SafeDelete validates then deletes a path, returning the bytes
// freed. Dry-run computes the same size without mutating anything.
//
// Blocked and invalid verdicts fail before any size computation.
// Caution verdicts proceed; surfacing the warning to the user is the
// caller's job, this is a non-interactive primitive. A symlink is
// deleted as the link itself, never its target; under elevation the
// target is validated first since root can write through links a
// regular user cannot.
func (e *Executor) SafeDelete(path string, dryRun bool) (int64, error) {
	verdict := e.validator.Validate(path)
	switch verdict.Kind {
	case VerdictSafe:
	case VerdictBlocked:
		return 0, fmt.Errorf("%w: %s: %s", ErrBlockedPath, path, verdict.Reason)
	case VerdictInvalid:
		return 0, fmt.Errorf("%w: %s: %s", ErrInvalidPath, path, verdict.Reason)
	case VerdictCaution:
		e.log.Warnf("caution: %s: %s", path, verdict.Reason)
	case VerdictSymlink:
		if e.validator.Elevated() {
			if tv := e.validator.Validate(verdict.Target); tv.Kind == VerdictBlocked {
				return 0, fmt.Errorf("%w: symlink target: %s", ErrBlockedPath, tv.Reason)
			}
		}
	}

	info, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	size := DirSize(path)
	if IsLargeDeletion(size) {
		e.log.Warnf("large deletion: %s (%s)", path, FormatSize(size))
	}

	if dryRun {
		return size, nil
	}

	if info.IsDir() {
		err = e.deleter.RemoveAll(path)
	} else {
		// Files and symlinks unlink; a link to a directory must not
		// recurse into its target.
		err = e.deleter.Remove(path)
	}
	if err != nil {
		if os.IsPermission(err) {
			return 0, fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return 0, err
	}

	return size, nil
}

// CleanDirectory deletes the contents of dir but keeps dir itself.
// Each immediate child is re-validated independently; children that
// fail validation or deletion are skipped and the rest proceed.
// Partial success is expected at this granularity.
func (e *Executor) CleanDirectory(dir string, dryRun bool) (int64, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return 0, nil
	}

	if verdict := e.validator.Validate(dir); verdict.Kind == VerdictBlocked {
		return 0, fmt.Errorf("%w: %s: %s", ErrBlockedPath, dir, verdict.Reason)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}

	var freed int64
	for _, entry := range entries {
		child := filepath.Join(dir, entry.Name())

		verdict := e.validator.Validate(child)
		switch verdict.Kind {
		case VerdictBlocked:
			e.log.Debugf("skipping blocked path: %s: %s", child, verdict.Reason)
			continue
		case VerdictInvalid:
			e.log.Debugf("skipping invalid path: %s: %s", child, verdict.Reason)
			continue
		case VerdictSymlink:
			// Batch cleaning always refuses links into protected
			// trees, regardless of privilege.
			if tv := e.validator.Validate(verdict.Target); tv.Kind == VerdictBlocked {
				e.log.Debugf("skipping symlink to protected path: %s", child)
				continue
			}
		}

		n, err := e.SafeDelete(child, dryRun)
		if err != nil {
			e.log.Debugf("skipping %s: %v", child, err)
			continue
		}
		freed += n
	}

	return freed, nil
}
