package config

import (
	"os"
	"path/filepath"
)

// CleanTarget represents a category of files that can be cleaned.
type CleanTarget struct {
	// Name is the unique identifier for this target.
	Name string

	// Paths is the list of filesystem paths to clean. Entries may
	// contain glob patterns, expanded at scan time.
	Paths []string

	// Description is a human-readable description.
	Description string

	// RequiresRoot indicates whether elevated privileges are needed.
	RequiresRoot bool

	// Category groups related targets: "user", "browser", "system", "dev".
	Category string

	// RiskLevel is one of "low", "medium", "high".
	RiskLevel string
}

// home returns the invoking user's home directory.
func home() string {
	h, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return h
}

// GetCleanTargets returns all available cleanup targets with paths
// expanded for the current user. Every path still passes the safety
// validator before anything is deleted.
func GetCleanTargets() []CleanTarget {
	h := home()

	return []CleanTarget{
		// ── User Caches ─────────────────────────────────────────
		{
			Name:        "UserCache",
			Paths:       []string{filepath.Join(h, ".cache")},
			Description: "User application cache",
			Category:    "user",
			RiskLevel:   "low",
		},
		{
			Name:        "Thumbnails",
			Paths:       []string{filepath.Join(h, ".cache", "thumbnails")},
			Description: "Thumbnail cache",
			Category:    "user",
			RiskLevel:   "low",
		},
		{
			Name:        "Trash",
			Paths:       []string{filepath.Join(h, ".local", "share", "Trash")},
			Description: "Trash contents",
			Category:    "user",
			RiskLevel:   "medium",
		},
		{
			Name:        "PipCache",
			Paths:       []string{filepath.Join(h, ".cache", "pip")},
			Description: "Python pip package cache",
			Category:    "user",
			RiskLevel:   "low",
		},
		{
			Name:        "NpmCache",
			Paths:       []string{filepath.Join(h, ".npm", "_cacache")},
			Description: "npm package manager cache",
			Category:    "user",
			RiskLevel:   "low",
		},
		{
			Name:        "YarnCache",
			Paths:       []string{filepath.Join(h, ".cache", "yarn")},
			Description: "Yarn package cache",
			Category:    "user",
			RiskLevel:   "low",
		},

		// ── Browser Caches ──────────────────────────────────────
		{
			Name:        "FirefoxCache",
			Paths:       []string{filepath.Join(h, ".cache", "mozilla", "firefox")},
			Description: "Mozilla Firefox browser cache",
			Category:    "browser",
			RiskLevel:   "low",
		},
		{
			Name:        "ChromeCache",
			Paths:       []string{filepath.Join(h, ".cache", "google-chrome")},
			Description: "Google Chrome browser cache",
			Category:    "browser",
			RiskLevel:   "low",
		},
		{
			Name:        "ChromiumCache",
			Paths:       []string{filepath.Join(h, ".cache", "chromium")},
			Description: "Chromium browser cache",
			Category:    "browser",
			RiskLevel:   "low",
		},

		// ── Developer Caches ────────────────────────────────────
		{
			Name:        "CargoCache",
			Paths:       []string{filepath.Join(h, ".cargo", "registry", "cache")},
			Description: "Rust cargo registry cache",
			Category:    "dev",
			RiskLevel:   "low",
		},
		{
			Name: "GradleCache",
			Paths: []string{
				filepath.Join(h, ".gradle", "caches"),
			},
			Description: "Gradle build cache",
			Category:    "dev",
			RiskLevel:   "low",
		},
		{
			Name:        "GoModCache",
			Paths:       []string{filepath.Join(h, "go", "pkg", "mod", "cache")},
			Description: "Go module download cache",
			Category:    "dev",
			RiskLevel:   "low",
		},
		{
			Name: "JetBrainsCache",
			Paths: []string{
				filepath.Join(h, ".cache", "JetBrains", "*", "caches"),
				filepath.Join(h, ".cache", "JetBrains", "*", "tmp"),
			},
			Description: "JetBrains IDE caches (IntelliJ, GoLand, etc.)",
			Category:    "dev",
			RiskLevel:   "medium",
		},

		// ── System Caches ───────────────────────────────────────
		{
			Name:         "AptArchives",
			Paths:        []string{"/var/cache/apt/archives"},
			Description:  "APT package download cache",
			RequiresRoot: true,
			Category:     "system",
			RiskLevel:    "low",
		},
		{
			Name:         "AptLists",
			Paths:        []string{"/var/lib/apt/lists"},
			Description:  "APT package index lists",
			RequiresRoot: true,
			Category:     "system",
			RiskLevel:    "medium",
		},
		{
			Name:         "JournalLogs",
			Paths:        []string{"/var/log/journal"},
			Description:  "systemd journal (vacuumed by optimize)",
			RequiresRoot: true,
			Category:     "system",
			RiskLevel:    "medium",
		},
		{
			Name:         "SystemLogs",
			Paths:        []string{"/var/log"},
			Description:  "System log files",
			RequiresRoot: true,
			Category:     "system",
			RiskLevel:    "high",
		},
		{
			Name:         "Tmp",
			Paths:        []string{"/tmp"},
			Description:  "Temporary files",
			RequiresRoot: true,
			Category:     "system",
			RiskLevel:    "medium",
		},
		{
			Name:         "VarTmp",
			Paths:        []string{"/var/tmp"},
			Description:  "Persistent temporary files",
			RequiresRoot: true,
			Category:     "system",
			RiskLevel:    "medium",
		},
	}
}

// GetTargetsByCategory returns clean targets filtered by category.
func GetTargetsByCategory(category string) []CleanTarget {
	var result []CleanTarget
	for _, t := range GetCleanTargets() {
		if t.Category == category {
			result = append(result, t)
		}
	}
	return result
}
