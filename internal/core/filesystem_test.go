package core

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/lakshaymaurya-felt/linmole/internal/fsops"
	"github.com/lakshaymaurya-felt/linmole/pkg/whitelist"
)

func mustWrite(t *testing.T, path string, size int) {
	t.Helper()
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestDirSize(t *testing.T) {
	t.Run("empty directory", func(t *testing.T) {
		if got := DirSize(t.TempDir()); got != 0 {
			t.Errorf("DirSize = %d, want 0", got)
		}
	})

	t.Run("single file", func(t *testing.T) {
		dir := t.TempDir()
		mustWrite(t, filepath.Join(dir, "f.txt"), 13)
		if got := DirSize(dir); got != 13 {
			t.Errorf("DirSize = %d, want 13", got)
		}
	})

	t.Run("nested files", func(t *testing.T) {
		dir := t.TempDir()
		mustWrite(t, filepath.Join(dir, "a.txt"), 4)
		sub := filepath.Join(dir, "sub")
		if err := os.Mkdir(sub, 0o755); err != nil {
			t.Fatal(err)
		}
		mustWrite(t, filepath.Join(sub, "b.txt"), 6)
		if got := DirSize(dir); got != 10 {
			t.Errorf("DirSize = %d, want 10", got)
		}
	})

	t.Run("nonexistent path", func(t *testing.T) {
		if got := DirSize(filepath.Join(t.TempDir(), "missing")); got != 0 {
			t.Errorf("DirSize = %d, want 0", got)
		}
	})

	t.Run("symlinks not followed", func(t *testing.T) {
		root := t.TempDir()
		mustWrite(t, filepath.Join(root, "big.txt"), 100)

		dir := filepath.Join(root, "subject")
		if err := os.Mkdir(dir, 0o755); err != nil {
			t.Fatal(err)
		}
		mustWrite(t, filepath.Join(dir, "real.txt"), 5)
		if err := os.Symlink(filepath.Join(root, "big.txt"), filepath.Join(dir, "link")); err != nil {
			t.Fatalf("symlink: %v", err)
		}

		if got := DirSize(dir); got != 5 {
			t.Errorf("DirSize = %d, want 5 (link target must not count)", got)
		}
	})
}

func TestCountFiles(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "a"), 1)
	mustWrite(t, filepath.Join(dir, "b"), 1)
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	mustWrite(t, filepath.Join(sub, "c"), 1)

	if got := CountFiles(dir); got != 3 {
		t.Errorf("CountFiles = %d, want 3", got)
	}
	if got := CountFiles(filepath.Join(dir, "missing")); got != 0 {
		t.Errorf("CountFiles(missing) = %d, want 0", got)
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{100, "100 B"},
		{1023, "1023 B"},
		{1024, "1 KiB"},
		{1536, "1.5 KiB"},
		{2048, "2 KiB"},
		{1024 * 1024, "1 MiB"},
		{5 * 1024 * 1024, "5 MiB"},
		{1024 * 1024 * 1024, "1 GiB"},
	}

	for _, tt := range tests {
		if got := FormatSize(tt.bytes); got != tt.want {
			t.Errorf("FormatSize(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}

func newTestExecutor(d fsops.Deleter) *Executor {
	return NewExecutor(NewValidator(nil, false), d)
}

func TestSafeDeleteDryRunThenReal(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f.txt")
	mustWrite(t, file, 13)

	e := newTestExecutor(fsops.OSDeleter{})

	freed, err := e.SafeDelete(file, true)
	if err != nil {
		t.Fatalf("dry-run: %v", err)
	}
	if freed != 13 {
		t.Errorf("dry-run freed = %d, want 13", freed)
	}
	if _, err := os.Stat(file); err != nil {
		t.Fatalf("dry-run must not delete: %v", err)
	}

	// The real run frees exactly what the dry-run promised.
	freed, err = e.SafeDelete(file, false)
	if err != nil {
		t.Fatalf("real run: %v", err)
	}
	if freed != 13 {
		t.Errorf("real freed = %d, want 13", freed)
	}
	if _, err := os.Stat(file); !os.IsNotExist(err) {
		t.Errorf("file should be gone, stat err = %v", err)
	}
}

func TestSafeDeleteDryRunMakesNoDeleterCalls(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "f.txt"), 8)

	fake := &fsops.FakeDeleter{}
	e := newTestExecutor(fake)

	if _, err := e.SafeDelete(dir, true); err != nil {
		t.Fatalf("dry-run: %v", err)
	}
	if fake.Calls() != 0 {
		t.Errorf("dry-run made %d deleter calls, want 0", fake.Calls())
	}
}

func TestSafeDeleteRefusals(t *testing.T) {
	fake := &fsops.FakeDeleter{}
	e := newTestExecutor(fake)

	t.Run("blocked path", func(t *testing.T) {
		_, err := e.SafeDelete("/etc", false)
		if !errors.Is(err, ErrBlockedPath) {
			t.Errorf("err = %v, want ErrBlockedPath", err)
		}
	})

	t.Run("invalid path", func(t *testing.T) {
		_, err := e.SafeDelete("relative/path", false)
		if !errors.Is(err, ErrInvalidPath) {
			t.Errorf("err = %v, want ErrInvalidPath", err)
		}
	})

	if fake.Calls() != 0 {
		t.Errorf("refusals made %d deleter calls, want 0", fake.Calls())
	}
}

func TestSafeDeleteNonexistentIsZero(t *testing.T) {
	e := newTestExecutor(fsops.OSDeleter{})
	freed, err := e.SafeDelete(filepath.Join(t.TempDir(), "missing"), false)
	if err != nil {
		t.Fatalf("err = %v, want nil", err)
	}
	if freed != 0 {
		t.Errorf("freed = %d, want 0", freed)
	}
}

func TestSafeDeleteTranslatesPermissionDenied(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f.txt")
	mustWrite(t, file, 1)

	fake := &fsops.FakeDeleter{FailOn: map[string]error{file: fs.ErrPermission}}
	e := newTestExecutor(fake)

	_, err := e.SafeDelete(file, false)
	if !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("err = %v, want ErrPermissionDenied", err)
	}
}

func TestSafeDeleteRemovesLinkNotTarget(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "target")
	if err := os.Mkdir(target, 0o755); err != nil {
		t.Fatal(err)
	}
	mustWrite(t, filepath.Join(target, "data.txt"), 9)

	link := filepath.Join(root, "link")
	if err := os.Symlink(target, link); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	e := newTestExecutor(fsops.OSDeleter{})
	if _, err := e.SafeDelete(link, false); err != nil {
		t.Fatalf("SafeDelete(link): %v", err)
	}

	if _, err := os.Lstat(link); !os.IsNotExist(err) {
		t.Errorf("link should be gone, lstat err = %v", err)
	}
	if _, err := os.Stat(filepath.Join(target, "data.txt")); err != nil {
		t.Errorf("target contents must survive: %v", err)
	}
}

func TestElevatedSafeDeleteChecksSymlinkTarget(t *testing.T) {
	root := t.TempDir()
	link := filepath.Join(root, "link")
	if err := os.Symlink("/etc", link); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	fake := &fsops.FakeDeleter{}
	elevated := NewExecutor(NewValidator(nil, true), fake)

	_, err := elevated.SafeDelete(link, false)
	if !errors.Is(err, ErrBlockedPath) {
		t.Fatalf("elevated delete of link to /etc: err = %v, want ErrBlockedPath", err)
	}
	if fake.Calls() != 0 {
		t.Errorf("refused delete made %d deleter calls, want 0", fake.Calls())
	}

	// A non-elevated run deletes the link itself without judging the
	// target; regular users cannot write through root-owned links.
	plain := NewExecutor(NewValidator(nil, false), fake)
	if _, err := plain.SafeDelete(link, false); err != nil {
		t.Fatalf("non-elevated delete of link: %v", err)
	}
	if fake.Calls() != 1 {
		t.Errorf("deleter calls = %d, want 1", fake.Calls())
	}
}

func TestCleanDirectoryMixedEntries(t *testing.T) {
	dir := t.TempDir()

	safeFile := filepath.Join(dir, "cache.dat")
	mustWrite(t, safeFile, 7)

	keptFile := filepath.Join(dir, "keep.txt")
	mustWrite(t, keptFile, 99)

	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	mustWrite(t, filepath.Join(sub, "nested.dat"), 3)

	linkToBlocked := filepath.Join(dir, "etclink")
	if err := os.Symlink("/etc", linkToBlocked); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	wlPath := filepath.Join(t.TempDir(), "whitelist")
	if err := os.WriteFile(wlPath, []byte(keptFile+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	e := NewExecutor(NewValidator(whitelist.LoadFrom(wlPath), false), fsops.OSDeleter{})

	freed, err := e.CleanDirectory(dir, false)
	if err != nil {
		t.Fatalf("CleanDirectory: %v", err)
	}

	// Only the safe file and the subtree count: 7 + 3.
	if freed != 10 {
		t.Errorf("freed = %d, want 10", freed)
	}
	if _, err := os.Stat(keptFile); err != nil {
		t.Errorf("whitelisted file must survive: %v", err)
	}
	if _, err := os.Lstat(linkToBlocked); err != nil {
		t.Errorf("link to protected tree must survive: %v", err)
	}
	if _, err := os.Stat(safeFile); !os.IsNotExist(err) {
		t.Errorf("safe file should be gone, stat err = %v", err)
	}
	if _, err := os.Stat(sub); !os.IsNotExist(err) {
		t.Errorf("subdirectory should be gone, stat err = %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("the directory itself must remain: %v", err)
	}
}

func TestCleanDirectoryDryRunReportsWithoutDeleting(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "a.dat"), 4)
	mustWrite(t, filepath.Join(dir, "b.dat"), 6)

	e := newTestExecutor(fsops.OSDeleter{})

	freed, err := e.CleanDirectory(dir, true)
	if err != nil {
		t.Fatalf("CleanDirectory: %v", err)
	}
	if freed != 10 {
		t.Errorf("dry-run freed = %d, want 10", freed)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("dry-run removed entries, %d left, want 2", len(entries))
	}
}

func TestCleanDirectoryRefusesBlockedDir(t *testing.T) {
	e := newTestExecutor(&fsops.FakeDeleter{})
	_, err := e.CleanDirectory("/etc", true)
	if !errors.Is(err, ErrBlockedPath) {
		t.Errorf("err = %v, want ErrBlockedPath", err)
	}
}

func TestCleanDirectoryNonexistentIsZero(t *testing.T) {
	e := newTestExecutor(&fsops.FakeDeleter{})
	freed, err := e.CleanDirectory(filepath.Join(t.TempDir(), "missing"), false)
	if err != nil || freed != 0 {
		t.Errorf("got (%d, %v), want (0, nil)", freed, err)
	}
}
