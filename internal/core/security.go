// Package core implements the path-safety layer that gates every
// deletion: verdict classification against the protected-path model,
// size accounting, and the deletion executor.
package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/lakshaymaurya-felt/linmole/pkg/whitelist"
)

// ─── Protected Path Tables ───────────────────────────────────────────────────

// blockedPaths are system locations that are never deleted, matched
// as the path itself or any descendant. Root matches exact only.
var blockedPaths = []string{
	"/",

	"/bin",
	"/boot",
	"/dev",
	"/etc",
	"/lib",
	"/lib32",
	"/lib64",
	"/libx32",
	"/proc",
	"/root",
	"/run",
	"/sbin",
	"/srv",
	"/sys",
	"/usr",
	"/var",

	"/var/lib",
	"/var/log",
	"/var/run",

	// Ubuntu snap essentials
	"/snap/core",
	"/snap/snapd",
}

// cautionPaths are deletable only with explicit acknowledgment.
// Matched exact, never by prefix.
var cautionPaths = []string{
	"/opt",
	"/home",
	"/tmp",
	"/var/tmp",
	"/var/cache",
}

// safeCacheExceptions are the few locations inside blocked prefixes
// that are known-safe to clean. The list only ever narrows the
// blocked set; it cannot widen anything.
var safeCacheExceptions = []string{
	"/var/cache/apt/archives",
	"/var/cache/apt/pkgcache.bin",
	"/var/cache/apt/srcpkgcache.bin",
}

// LargeDeletionThreshold is the advisory warning boundary, inclusive.
const LargeDeletionThreshold int64 = 1024 * 1024 * 1024

// ─── Verdicts ────────────────────────────────────────────────────────────────

// VerdictKind enumerates classification outcomes. Exactly one kind
// holds per call.
type VerdictKind int

const (
	// VerdictSafe allows deletion.
	VerdictSafe VerdictKind = iota
	// VerdictBlocked refuses deletion outright.
	VerdictBlocked
	// VerdictCaution allows deletion after the caller surfaces a warning.
	VerdictCaution
	// VerdictSymlink means the path itself is a symlink; Target holds
	// the link destination, unvalidated.
	VerdictSymlink
	// VerdictInvalid rejects malformed input before any filesystem access.
	VerdictInvalid
)

func (k VerdictKind) String() string {
	switch k {
	case VerdictSafe:
		return "safe"
	case VerdictBlocked:
		return "blocked"
	case VerdictCaution:
		return "caution"
	case VerdictSymlink:
		return "symlink"
	case VerdictInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Verdict is the classification result for one path.
type Verdict struct {
	Kind   VerdictKind
	Reason string // Blocked, Caution, Invalid
	Target string // Symlink: raw link destination, may be relative
}

// ─── Validator ───────────────────────────────────────────────────────────────

// Validator classifies paths before deletion. It holds only immutable
// state after construction and is safe to share across callers.
// Elevation is an explicit input so privileged behavior is testable
// without actually running as root.
type Validator struct {
	whitelist *whitelist.Whitelist
	elevated  bool
}

// NewValidator builds a validator over the given whitelist. A nil
// whitelist behaves as empty. elevated should reflect whether the
// process runs with superuser rights.
func NewValidator(wl *whitelist.Whitelist, elevated bool) *Validator {
	return &Validator{whitelist: wl, elevated: elevated}
}

// Elevated reports whether the validator was built for a privileged
// process.
func (v *Validator) Elevated() bool { return v.elevated }

// Validate classifies a path. Checks run in a fixed order and the
// first match wins: malformed input, textual traversal, the system
// blocklist (minus safe-cache carve-outs), the user whitelist, the
// path's own symlink-ness, then caution locations.
func (v *Validator) Validate(path string) Verdict {
	if path == "" {
		return Verdict{Kind: VerdictInvalid, Reason: "empty path"}
	}
	if !filepath.IsAbs(path) {
		return Verdict{Kind: VerdictInvalid, Reason: "path must be absolute"}
	}

	// Textual check on the raw input, before any normalization or
	// filesystem resolution. Catches traversal attempts that would
	// canonicalize to something harmless-looking.
	if hasTraversalComponent(path) {
		return Verdict{Kind: VerdictInvalid, Reason: "path traversal detected"}
	}

	cleaned := filepath.Clean(path)

	if prefix, ok := v.blockedMatch(cleaned); ok {
		return Verdict{
			Kind:   VerdictBlocked,
			Reason: fmt.Sprintf("system path protected: %s", prefix),
		}
	}

	// After the system blocklist, before symlink and caution checks:
	// a whitelist cannot bypass the rules above, but it suppresses
	// the caution warnings below.
	if v.whitelist != nil && v.whitelist.IsWhitelisted(cleaned) {
		return Verdict{Kind: VerdictBlocked, Reason: "path is whitelisted by user"}
	}

	// One lstat, no link chasing. The target is reported, not
	// validated; resolving chains here would loop on cyclic links.
	if info, err := os.Lstat(cleaned); err == nil && info.Mode()&os.ModeSymlink != 0 {
		if target, err := os.Readlink(cleaned); err == nil {
			return Verdict{Kind: VerdictSymlink, Target: target}
		}
	}

	for _, caution := range cautionPaths {
		if cleaned == caution {
			return Verdict{
				Kind:   VerdictCaution,
				Reason: fmt.Sprintf("deleting %s requires confirmation", caution),
			}
		}
	}

	return Verdict{Kind: VerdictSafe}
}

// ValidateForPrivileged re-checks a Safe path against the blocklist
// after full symlink resolution. Elevated deletions can write through
// links a regular user could not, so a link that resolves into a
// protected tree must be refused even when the link itself passed.
func (v *Validator) ValidateForPrivileged(path string) Verdict {
	base := v.Validate(path)
	if base.Kind != VerdictSafe {
		return base
	}

	canonical, err := filepath.EvalSymlinks(path)
	if err != nil {
		// Nothing to resolve (or nothing exists); the base verdict stands.
		return base
	}

	if _, ok := v.blockedMatch(canonical); ok {
		return Verdict{
			Kind:   VerdictBlocked,
			Reason: fmt.Sprintf("symlink resolves to protected path: %s", canonical),
		}
	}

	return base
}

// blockedMatch returns the blocklist prefix covering path, unless the
// path sits inside a safe-cache carve-out.
func (v *Validator) blockedMatch(path string) (string, bool) {
	for _, blocked := range blockedPaths {
		if path == blocked || strings.HasPrefix(path, blocked+string(os.PathSeparator)) {
			if isSafeCacheException(path) {
				continue
			}
			return blocked, true
		}
	}
	return "", false
}

func isSafeCacheException(path string) bool {
	for _, safe := range safeCacheExceptions {
		if path == safe || strings.HasPrefix(path, safe+string(os.PathSeparator)) {
			return true
		}
	}
	return false
}

// IsLargeDeletion reports whether a deletion of the given size should
// carry the advisory large-deletion warning. The boundary is inclusive.
func IsLargeDeletion(size int64) bool {
	return size >= LargeDeletionThreshold
}

// hasTraversalComponent reports whether any path component of the raw
// input is "..".
func hasTraversalComponent(path string) bool {
	for _, part := range strings.Split(path, "/") {
		if part == ".." {
			return true
		}
	}
	return false
}

// ContainsDangerousChars reports control bytes in a path, including
// newlines and NUL. Such paths are rejected before display or any
// shell handoff.
func ContainsDangerousChars(path string) bool {
	for _, r := range path {
		if unicode.IsControl(r) {
			return true
		}
	}
	return false
}
