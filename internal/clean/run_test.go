package clean

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lakshaymaurya-felt/linmole/internal/config"
	"github.com/lakshaymaurya-felt/linmole/internal/core"
	"github.com/lakshaymaurya-felt/linmole/internal/fsops"
	"github.com/lakshaymaurya-felt/linmole/internal/history"
)

func testTarget(name, dir string) config.CleanTarget {
	return config.CleanTarget{
		Name:     name,
		Paths:    []string{dir},
		Category: "user",
	}
}

func TestRunDryRunMatchesRealRun(t *testing.T) {
	cache := filepath.Join(t.TempDir(), "cache")
	mustWrite(t, filepath.Join(cache, "a.tmp"), "1234567")
	mustWrite(t, filepath.Join(cache, "nested", "b.tmp"), "123")

	exec := core.NewExecutor(core.NewValidator(nil, false), &fsops.OSDeleter{})

	var dryOut bytes.Buffer
	wouldFree, err := Run(exec, nil, Options{
		Targets: []config.CleanTarget{testTarget("Cache", cache)},
		DryRun:  true,
		Out:     &dryOut,
	})
	if err != nil {
		t.Fatalf("dry run: %v", err)
	}
	if wouldFree != 10 {
		t.Errorf("dry run reported %d bytes, want 10", wouldFree)
	}
	if !strings.Contains(dryOut.String(), "[DRY RUN] No files were deleted.") {
		t.Errorf("dry run output missing marker:\n%s", dryOut.String())
	}
	if _, err := os.Stat(filepath.Join(cache, "a.tmp")); err != nil {
		t.Errorf("dry run deleted files: %v", err)
	}

	var realOut bytes.Buffer
	freed, err := Run(exec, nil, Options{
		Targets: []config.CleanTarget{testTarget("Cache", cache)},
		Out:     &realOut,
	})
	if err != nil {
		t.Fatalf("real run: %v", err)
	}
	if freed != wouldFree {
		t.Errorf("real run freed %d bytes, dry run promised %d", freed, wouldFree)
	}

	entries, err := os.ReadDir(cache)
	if err != nil {
		t.Fatalf("cache dir should survive: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("cache still has %d entries", len(entries))
	}
	if !strings.Contains(realOut.String(), "Cleaned Cache") {
		t.Errorf("real run output missing success row:\n%s", realOut.String())
	}
}

func TestRunReportsBlockedTargetAndContinues(t *testing.T) {
	cache := filepath.Join(t.TempDir(), "cache")
	mustWrite(t, filepath.Join(cache, "junk"), "xx")

	// The deleter never fires for the blocked target; scanning it
	// still works because scanning does not validate.
	fake := &fsops.FakeDeleter{}
	exec := core.NewExecutor(core.NewValidator(nil, true), fake)

	var out bytes.Buffer
	_, err := Run(exec, nil, Options{
		Targets: []config.CleanTarget{
			{Name: "System Logs", Paths: []string{"/var/log"}, Category: "system", RequiresRoot: true},
			testTarget("Cache", cache),
		},
		Elevated: true,
		Out:      &out,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if !strings.Contains(out.String(), "Cleaned Cache") {
		t.Errorf("good target did not clean:\n%s", out.String())
	}
	// /var/log may be missing or empty in minimal environments. If it
	// made it into the plan at all, cleaning it must fail, not succeed.
	if strings.Contains(out.String(), "System Logs") &&
		!strings.Contains(out.String(), "Failed System Logs") {
		t.Errorf("blocked target not refused:\n%s", out.String())
	}
	for _, call := range fake.Removed {
		if strings.Contains(call, "/var/log") {
			t.Errorf("deleter touched protected tree: %s", call)
		}
	}
}

func TestRunJournalsOutcomes(t *testing.T) {
	cache := filepath.Join(t.TempDir(), "cache")
	mustWrite(t, filepath.Join(cache, "junk"), "xxxx")

	journal, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	defer journal.Close()

	exec := core.NewExecutor(core.NewValidator(nil, false), &fsops.OSDeleter{})

	var out bytes.Buffer
	if _, err := Run(exec, nil, Options{
		Targets: []config.CleanTarget{testTarget("Cache", cache)},
		Journal: journal,
		Out:     &out,
	}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	records, err := journal.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("journal has %d records, want 1", len(records))
	}
	r := records[0]
	if r.Tool != "clean" || r.Path != cache || r.Freed != 4 || r.Outcome != history.OutcomeDeleted {
		t.Errorf("journal record = %+v", r)
	}
}

func TestRunNoTargetsFound(t *testing.T) {
	exec := core.NewExecutor(core.NewValidator(nil, false), &fsops.FakeDeleter{})

	var out bytes.Buffer
	freed, err := Run(exec, nil, Options{
		Targets: []config.CleanTarget{testTarget("Empty", filepath.Join(t.TempDir(), "missing"))},
		Out:     &out,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if freed != 0 {
		t.Errorf("freed = %d, want 0", freed)
	}
	if !strings.Contains(out.String(), "No caches found to clean.") {
		t.Errorf("missing empty-scan message:\n%s", out.String())
	}
}
