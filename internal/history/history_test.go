package history

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { j.Close() })
	return j
}

func TestRecordAndRecent(t *testing.T) {
	j := openTestJournal(t)

	records := []Record{
		{Tool: "clean", Category: "user", Path: "/home/u/.cache/pip", Freed: 4096, Outcome: OutcomeDeleted},
		{Tool: "purge", Category: "dev", Path: "/home/u/proj/node_modules", Freed: 1 << 20, Outcome: OutcomeDeleted},
		{Tool: "clean", Category: "system", Path: "/var/cache/apt/archives", Freed: 0, Outcome: OutcomeFailed, Error: "permission denied"},
	}
	for i, r := range records {
		r.Timestamp = time.Now().Add(time.Duration(i) * time.Second)
		if err := j.Record(r); err != nil {
			t.Fatalf("Record %d: %v", i, err)
		}
	}

	got, err := j.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Recent returned %d records, want 3", len(got))
	}

	// Newest first.
	if got[0].Path != "/var/cache/apt/archives" {
		t.Errorf("newest record path = %q", got[0].Path)
	}
	if got[0].Outcome != OutcomeFailed || got[0].Error != "permission denied" {
		t.Errorf("failure record = %+v", got[0])
	}
	if got[2].Tool != "clean" || got[2].Freed != 4096 {
		t.Errorf("oldest record = %+v", got[2])
	}
}

func TestRecentHonorsLimit(t *testing.T) {
	j := openTestJournal(t)

	for i := 0; i < 5; i++ {
		err := j.Record(Record{
			Tool:      "clean",
			Path:      "/tmp/x",
			Outcome:   OutcomeDeleted,
			Timestamp: time.Now().Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	got, err := j.Recent(2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Recent(2) returned %d records", len(got))
	}
}

func TestTotalFreedExcludesDryRunsAndFailures(t *testing.T) {
	j := openTestJournal(t)

	seed := []Record{
		{Tool: "clean", Path: "/a", Freed: 100, Outcome: OutcomeDeleted},
		{Tool: "clean", Path: "/b", Freed: 50, Outcome: OutcomeDeleted, DryRun: true},
		{Tool: "clean", Path: "/c", Freed: 30, Outcome: OutcomeFailed},
		{Tool: "purge", Path: "/d", Freed: 7, Outcome: OutcomeDeleted},
	}
	for _, r := range seed {
		if err := j.Record(r); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	total, err := j.TotalFreed()
	if err != nil {
		t.Fatalf("TotalFreed: %v", err)
	}
	if total != 107 {
		t.Errorf("TotalFreed = %d, want 107", total)
	}
}

func TestPruneRemovesOldRecords(t *testing.T) {
	j := openTestJournal(t)

	old := Record{Tool: "clean", Path: "/old", Outcome: OutcomeDeleted,
		Timestamp: time.Now().AddDate(0, -2, 0)}
	recent := Record{Tool: "clean", Path: "/new", Outcome: OutcomeDeleted,
		Timestamp: time.Now()}
	if err := j.Record(old); err != nil {
		t.Fatalf("Record old: %v", err)
	}
	if err := j.Record(recent); err != nil {
		t.Fatalf("Record recent: %v", err)
	}

	n, err := j.Prune(time.Now().AddDate(0, -1, 0))
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if n != 1 {
		t.Errorf("Prune removed %d records, want 1", n)
	}

	got, err := j.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 1 || got[0].Path != "/new" {
		t.Errorf("after prune: %+v", got)
	}
}
