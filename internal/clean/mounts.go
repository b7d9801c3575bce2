package clean

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shirou/gopsutil/v4/disk"

	"github.com/lakshaymaurya-felt/linmole/internal/core"
	"github.com/lakshaymaurya-felt/linmole/pkg/whitelist"
)

// ─── Removable Media Scanning ────────────────────────────────────────────────

// mountJunkDirs are directory names other operating systems drop on
// removable media. Their contents are safe to clean.
var mountJunkDirs = []string{
	".Trashes",                  // macOS per-volume trash
	".Spotlight-V100",           // macOS search index
	".fseventsd",                // macOS filesystem events
	"System Volume Information", // Windows restore/index data
}

// removableMounts returns mountpoints of mounted writable volumes at
// the conventional removable-media locations. The root volume and
// internal mounts are covered by the standard target tables.
func removableMounts() []string {
	parts, err := disk.Partitions(false)
	if err != nil {
		return nil
	}

	var mounts []string
	for _, p := range parts {
		mp := p.Mountpoint
		if !strings.HasPrefix(mp, "/media/") &&
			!strings.HasPrefix(mp, "/run/media/") &&
			!strings.HasPrefix(mp, "/mnt/") && mp != "/mnt" {
			continue
		}
		if readOnlyMount(p.Opts) {
			continue
		}
		mounts = append(mounts, mp)
	}
	return mounts
}

func readOnlyMount(opts []string) bool {
	for _, o := range opts {
		if o == "ro" {
			return true
		}
	}
	return false
}

// ScanRemovableMedia scans each removable volume for its per-volume
// trash directory and foreign-OS junk directories. One TargetResult
// per volume that has anything to clean.
func ScanRemovableMedia(wl *whitelist.Whitelist) []TargetResult {
	var results []TargetResult
	for _, mount := range removableMounts() {
		if res := scanMount(mount, wl); len(res.Dirs) > 0 {
			results = append(results, res)
		}
	}
	return results
}

func scanMount(mount string, wl *whitelist.Whitelist) TargetResult {
	res := TargetResult{
		Name:        "Removable Media (" + filepath.Base(mount) + ")",
		Description: "Per-volume trash and foreign OS junk",
		Category:    "user",
	}

	candidates := append(
		[]string{filepath.Join(mount, fmt.Sprintf(".Trash-%d", os.Getuid()))},
		junkDirsUnder(mount)...)

	for _, dir := range candidates {
		if wl != nil && wl.IsWhitelisted(dir) {
			continue
		}
		info, err := os.Lstat(dir)
		if err != nil || !info.IsDir() {
			continue
		}
		size := core.DirSize(dir)
		res.Dirs = append(res.Dirs, dir)
		res.Size += size
		res.Items = append(res.Items, CleanItem{
			Path:        dir,
			Size:        size,
			Category:    res.Category,
			Description: res.Description,
		})
	}
	return res
}

func junkDirsUnder(mount string) []string {
	dirs := make([]string, 0, len(mountJunkDirs))
	for _, name := range mountJunkDirs {
		dirs = append(dirs, filepath.Join(mount, name))
	}
	return dirs
}
