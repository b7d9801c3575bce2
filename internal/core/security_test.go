package core

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lakshaymaurya-felt/linmole/pkg/whitelist"
)

func newTestValidator(t *testing.T, elevated bool, whitelistLines string) *Validator {
	t.Helper()
	if whitelistLines == "" {
		return NewValidator(nil, elevated)
	}
	path := filepath.Join(t.TempDir(), "whitelist")
	if err := os.WriteFile(path, []byte(whitelistLines), 0o644); err != nil {
		t.Fatalf("write whitelist: %v", err)
	}
	return NewValidator(whitelist.LoadFrom(path), elevated)
}

func TestMalformedPathsAreInvalid(t *testing.T) {
	v := newTestValidator(t, false, "")

	tests := []struct {
		name string
		path string
	}{
		{"empty", ""},
		{"relative", "relative/path"},
		{"relative with traversal", "../etc/passwd"},
		{"dot relative", "./cache"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := v.Validate(tt.path); got.Kind != VerdictInvalid {
				t.Errorf("Validate(%q) = %v, want invalid", tt.path, got.Kind)
			}
		})
	}
}

func TestTraversalComponentsAreInvalid(t *testing.T) {
	v := newTestValidator(t, false, "")

	// All of these would canonicalize to something harmless or even
	// safe; the textual check must reject them regardless.
	paths := []string{
		"/home/user/../etc/passwd",
		"/tmp/..",
		"/..",
		"/home/user/.cache/../../user/.cache/x",
	}

	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			got := v.Validate(path)
			if got.Kind != VerdictInvalid {
				t.Fatalf("Validate(%q) = %v, want invalid", path, got.Kind)
			}
			if got.Reason != "path traversal detected" {
				t.Errorf("reason = %q, want traversal reason", got.Reason)
			}
		})
	}
}

func TestSystemPathsAreBlocked(t *testing.T) {
	v := newTestValidator(t, false, "")

	tests := []struct {
		path       string
		wantPrefix string
	}{
		{"/", "/"},
		{"/etc", "/etc"},
		{"/etc/passwd", "/etc"},
		{"/usr/bin/ls", "/usr"},
		{"/boot/grub", "/boot"},
		{"/var/lib/dpkg", "/var"},
		{"/var/log/syslog", "/var"},
		{"/var/tmp", "/var"},
		{"/var/cache", "/var"},
		{"/snap/core/1234", "/snap/core"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := v.Validate(tt.path)
			if got.Kind != VerdictBlocked {
				t.Fatalf("Validate(%q) = %v, want blocked", tt.path, got.Kind)
			}
			if !strings.Contains(got.Reason, tt.wantPrefix) {
				t.Errorf("reason = %q, want mention of %q", got.Reason, tt.wantPrefix)
			}
		})
	}
}

func TestRootBlocksExactOnly(t *testing.T) {
	v := newTestValidator(t, false, "")

	// "/" never widens to a prefix match; an unknown top-level
	// directory is fair game.
	if got := v.Validate("/mydata"); got.Kind != VerdictSafe {
		t.Errorf("Validate(/mydata) = %v (%s), want safe", got.Kind, got.Reason)
	}
}

func TestSafeCacheCarveOuts(t *testing.T) {
	v := newTestValidator(t, false, "")

	tests := []struct {
		path string
		want VerdictKind
	}{
		{"/var/cache/apt/archives", VerdictSafe},
		{"/var/cache/apt/archives/foo.deb", VerdictSafe},
		{"/var/cache/apt/pkgcache.bin", VerdictSafe},
		{"/var/cache/apt", VerdictBlocked},
		{"/var/cache/apt/archives-old", VerdictBlocked},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := v.Validate(tt.path); got.Kind != tt.want {
				t.Errorf("Validate(%q) = %v, want %v", tt.path, got.Kind, tt.want)
			}
		})
	}
}

func TestWhitelistBlocksWithReason(t *testing.T) {
	v := newTestValidator(t, false, "/data/keep\n")

	for _, path := range []string{"/data/keep", "/data/keep/sub/file"} {
		got := v.Validate(path)
		if got.Kind != VerdictBlocked {
			t.Fatalf("Validate(%q) = %v, want blocked", path, got.Kind)
		}
		if !strings.Contains(got.Reason, "whitelist") {
			t.Errorf("reason = %q, want mention of whitelist", got.Reason)
		}
	}

	if got := v.Validate("/data/other"); got.Kind != VerdictSafe {
		t.Errorf("sibling of whitelist entry = %v, want safe", got.Kind)
	}
}

func TestWhitelistDoesNotOverrideSystemBlocklist(t *testing.T) {
	v := newTestValidator(t, false, "/etc\n")

	got := v.Validate("/etc/passwd")
	if got.Kind != VerdictBlocked {
		t.Fatalf("Validate(/etc/passwd) = %v, want blocked", got.Kind)
	}
	// The system blocklist wins the race; the reason names the
	// protected prefix, not the whitelist.
	if !strings.Contains(got.Reason, "system path protected") {
		t.Errorf("reason = %q, want system protection reason", got.Reason)
	}
}

func TestWhitelistSuppressesCaution(t *testing.T) {
	v := newTestValidator(t, false, "/opt\n")

	got := v.Validate("/opt")
	if got.Kind != VerdictBlocked {
		t.Fatalf("Validate(/opt) = %v, want blocked via whitelist", got.Kind)
	}
	if !strings.Contains(got.Reason, "whitelist") {
		t.Errorf("reason = %q, want whitelist reason", got.Reason)
	}
}

func TestCautionPathsMatchExactOnly(t *testing.T) {
	v := newTestValidator(t, false, "")

	for _, path := range []string{"/opt", "/home", "/tmp"} {
		if got := v.Validate(path); got.Kind != VerdictCaution {
			t.Errorf("Validate(%q) = %v, want caution", path, got.Kind)
		}
	}

	if got := v.Validate("/opt/myapp"); got.Kind != VerdictSafe {
		t.Errorf("Validate(/opt/myapp) = %v, want safe (caution is exact match)", got.Kind)
	}
}

func TestHomeCacheIsSafe(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home dir: %v", err)
	}

	v := newTestValidator(t, false, "")
	path := filepath.Join(home, ".cache", "some-app", "data")
	if got := v.Validate(path); got.Kind != VerdictSafe {
		t.Errorf("Validate(%q) = %v (%s), want safe", path, got.Kind, got.Reason)
	}
}

func TestSymlinkVerdictReportsTargetUnvalidated(t *testing.T) {
	dir := t.TempDir()
	link := filepath.Join(dir, "link")

	// The target is as protected as it gets; classification still
	// reports the link without judging the target.
	if err := os.Symlink("/etc", link); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	v := newTestValidator(t, false, "")
	got := v.Validate(link)
	if got.Kind != VerdictSymlink {
		t.Fatalf("Validate(link) = %v, want symlink", got.Kind)
	}
	if got.Target != "/etc" {
		t.Errorf("target = %q, want /etc", got.Target)
	}
}

func TestValidateIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	v := newTestValidator(t, false, "")
	first := v.Validate(file)
	second := v.Validate(file)
	if first != second {
		t.Errorf("verdicts differ: %+v vs %+v", first, second)
	}
}

func TestPrivilegedValidationResolvesSymlinkParents(t *testing.T) {
	if _, err := os.Stat("/etc/passwd"); err != nil {
		t.Skipf("/etc/passwd unavailable: %v", err)
	}

	dir := t.TempDir()
	link := filepath.Join(dir, "link")
	if err := os.Symlink("/etc", link); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	v := newTestValidator(t, true, "")
	inside := filepath.Join(link, "passwd")

	// The path itself is not a symlink and matches no blocked prefix
	// textually, so plain validation lets it through.
	if got := v.Validate(inside); got.Kind != VerdictSafe {
		t.Fatalf("Validate(%q) = %v, want safe", inside, got.Kind)
	}

	// Privileged validation resolves the link and catches the escape.
	got := v.ValidateForPrivileged(inside)
	if got.Kind != VerdictBlocked {
		t.Fatalf("ValidateForPrivileged(%q) = %v, want blocked", inside, got.Kind)
	}
	if !strings.Contains(got.Reason, "resolves to protected path") {
		t.Errorf("reason = %q, want resolution reason", got.Reason)
	}
}

func TestPrivilegedValidationPassesOrdinaryPaths(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	v := newTestValidator(t, true, "")
	if got := v.ValidateForPrivileged(file); got.Kind != VerdictSafe {
		t.Errorf("ValidateForPrivileged(%q) = %v (%s), want safe", file, got.Kind, got.Reason)
	}
}

func TestIsLargeDeletion(t *testing.T) {
	tests := []struct {
		name string
		size int64
		want bool
	}{
		{"500 MiB", 500 * 1024 * 1024, false},
		{"one byte under", LargeDeletionThreshold - 1, false},
		{"exactly 1 GiB", LargeDeletionThreshold, true},
		{"2 GiB", 2 * 1024 * 1024 * 1024, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsLargeDeletion(tt.size); got != tt.want {
				t.Errorf("IsLargeDeletion(%d) = %v, want %v", tt.size, got, tt.want)
			}
		})
	}
}

func TestContainsDangerousChars(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/path/with\nnewline", true},
		{"/path/with\x00null", true},
		{"/path/with\rreturn", true},
		{"/normal/path with spaces", false},
	}

	for _, tt := range tests {
		if got := ContainsDangerousChars(tt.path); got != tt.want {
			t.Errorf("ContainsDangerousChars(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
