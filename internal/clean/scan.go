package clean

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/lakshaymaurya-felt/linmole/internal/config"
	"github.com/lakshaymaurya-felt/linmole/internal/core"
	"github.com/lakshaymaurya-felt/linmole/pkg/whitelist"
)

// ─── Scan Types ──────────────────────────────────────────────────────────────

// CleanItem is a single deletable entry discovered during a scan.
type CleanItem struct {
	Path        string
	Size        int64
	Category    string
	Description string
}

// TargetResult aggregates the scan of one cleanup target.
type TargetResult struct {
	Name         string
	Description  string
	Category     string
	RequiresRoot bool
	Dirs         []string // existing, non-whitelisted directories to clean
	Items        []CleanItem
	Size         int64
}

// ─── Directory Scanning ──────────────────────────────────────────────────────

// scanDirectory lists the top-level entries of dir as clean items,
// sizing directories recursively. Whitelisted entries are skipped.
func scanDirectory(dir, category, description string, wl *whitelist.Whitelist) []CleanItem {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var items []CleanItem
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if wl != nil && wl.IsWhitelisted(path) {
			continue
		}

		var size int64
		if entry.IsDir() {
			size = core.DirSize(path)
		} else if info, err := entry.Info(); err == nil {
			size = info.Size()
		}

		items = append(items, CleanItem{
			Path:        path,
			Size:        size,
			Category:    category,
			Description: description,
		})
	}

	return items
}

// expandPaths resolves each pattern (globs allowed) to existing
// directories, deduplicating overlaps like ~/.cache appearing both
// directly and through a glob.
func expandPaths(patterns []string) []string {
	seen := make(map[string]bool)
	var dirs []string

	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			continue
		}
		for _, match := range matches {
			cleaned := filepath.Clean(match)
			if seen[cleaned] {
				continue
			}
			seen[cleaned] = true

			info, err := os.Stat(cleaned)
			if err != nil || !info.IsDir() {
				continue
			}
			dirs = append(dirs, cleaned)
		}
	}

	return dirs
}

// ─── Target Scanning ─────────────────────────────────────────────────────────

// ScanTarget expands one target's patterns and sizes what a clean run
// would touch. Whitelisted directories are skipped whole; whitelisted
// children are excluded from the reported size.
func ScanTarget(t config.CleanTarget, wl *whitelist.Whitelist) TargetResult {
	result := TargetResult{
		Name:         t.Name,
		Description:  t.Description,
		Category:     t.Category,
		RequiresRoot: t.RequiresRoot,
	}

	for _, dir := range expandPaths(t.Paths) {
		if wl != nil && wl.IsWhitelisted(dir) {
			continue
		}

		items := scanDirectory(dir, t.Category, t.Name, wl)
		if len(items) == 0 {
			continue
		}

		result.Dirs = append(result.Dirs, dir)
		result.Items = append(result.Items, items...)
		for _, item := range items {
			result.Size += item.Size
		}
	}

	return result
}

// ScanTargets scans every applicable target and returns the non-empty
// results sorted largest first. Root-only targets are skipped unless
// the process is elevated.
func ScanTargets(targets []config.CleanTarget, wl *whitelist.Whitelist, elevated bool) []TargetResult {
	var results []TargetResult

	for _, t := range targets {
		if t.RequiresRoot && !elevated {
			continue
		}
		result := ScanTarget(t, wl)
		if result.Size == 0 {
			continue
		}
		results = append(results, result)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Size > results[j].Size
	})

	return results
}
