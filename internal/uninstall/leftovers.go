package uninstall

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/lakshaymaurya-felt/linmole/internal/core"
)

// LeftoverType classifies where a leftover was found.
type LeftoverType int

const (
	LeftoverConfig LeftoverType = iota
	LeftoverCache
	LeftoverData
	LeftoverLog
	LeftoverDesktop
	LeftoverAutostart
)

func (t LeftoverType) String() string {
	switch t {
	case LeftoverConfig:
		return "config"
	case LeftoverCache:
		return "cache"
	case LeftoverData:
		return "data"
	case LeftoverLog:
		return "log"
	case LeftoverDesktop:
		return "desktop"
	default:
		return "autostart"
	}
}

// LeftoverFile is an orphaned file or directory tied to an app.
type LeftoverFile struct {
	Path string
	Type LeftoverType
	Size int64
}

type leftoverLocation struct {
	dir string
	typ LeftoverType
}

// leftoverLocations lists where apps scatter their files. System
// locations are included for reporting even though deleting under
// them gets refused by the validator.
func leftoverLocations() []leftoverLocation {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	return []leftoverLocation{
		{filepath.Join(home, ".config"), LeftoverConfig},
		{"/etc", LeftoverConfig},

		{filepath.Join(home, ".cache"), LeftoverCache},
		{"/var/cache", LeftoverCache},
		{filepath.Join(home, "snap"), LeftoverCache},
		{filepath.Join(home, ".var", "app"), LeftoverCache},

		{filepath.Join(home, ".local", "share"), LeftoverData},
		{"/var/lib", LeftoverData},

		{"/var/log", LeftoverLog},

		{filepath.Join(home, ".local", "share", "applications"), LeftoverDesktop},
		{"/usr/share/applications", LeftoverDesktop},

		{filepath.Join(home, ".config", "autostart"), LeftoverAutostart},
	}
}

// FindLeftovers searches the first level of each known location for
// entries matching the app name.
func FindLeftovers(appName string) []LeftoverFile {
	normalized := normalizeAppName(appName)
	if normalized == "" {
		return nil
	}
	patterns := searchPatterns(normalized)

	var leftovers []LeftoverFile
	for _, loc := range leftoverLocations() {
		entries, err := os.ReadDir(loc.dir)
		if err != nil {
			continue
		}

		for _, entry := range entries {
			entryName := strings.ToLower(entry.Name())
			if !matchesAny(entryName, patterns) {
				continue
			}
			path := filepath.Join(loc.dir, entry.Name())
			leftovers = append(leftovers, LeftoverFile{
				Path: path,
				Type: loc.typ,
				Size: core.DirSize(path),
			})
		}
	}
	return leftovers
}

// normalizeAppName strips separators so "my-app" matches "myapp".
func normalizeAppName(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, "-", "")
	name = strings.ReplaceAll(name, "_", "")
	name = strings.ReplaceAll(name, " ", "")
	return name
}

// searchPatterns returns the normalized name plus a five-character
// prefix for long names, catching truncated config dirs.
func searchPatterns(normalized string) []string {
	patterns := []string{normalized}
	if len(normalized) >= 5 {
		patterns = append(patterns, normalized[:5])
	}
	return patterns
}

func matchesAny(name string, patterns []string) bool {
	// Entry names keep their separators; normalize before matching.
	normalized := normalizeAppName(name)
	for _, p := range patterns {
		if strings.Contains(normalized, p) {
			return true
		}
	}
	return false
}
