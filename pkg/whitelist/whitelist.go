// Package whitelist manages the user-protected path list. Whitelisted
// paths are never deleted, no matter which scan produced them.
package whitelist

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const fileName = "whitelist"

// Whitelist is the set of user-protected paths, loaded once per run.
// A target is protected when it equals an entry or lives under one.
type Whitelist struct {
	path    string
	entries []string
}

// DefaultPath returns the whitelist file location under the user
// config directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "linmole", fileName)
}

// Load reads the whitelist from its default location. A missing or
// unreadable file yields an empty whitelist; loading cannot fail.
func Load() *Whitelist {
	return LoadFrom(DefaultPath())
}

// LoadFrom reads a whitelist file: one path per line, blank lines and
// #-comments skipped, a leading ~ expanded to the user home.
func LoadFrom(path string) *Whitelist {
	w := &Whitelist{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		return w
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		w.entries = append(w.entries, expand(line))
	}
	return w
}

// IsWhitelisted reports whether path is equal to or a descendant of
// any whitelist entry.
func (w *Whitelist) IsWhitelisted(path string) bool {
	cleaned := filepath.Clean(path)
	for _, entry := range w.entries {
		if cleaned == entry || strings.HasPrefix(cleaned, entry+string(os.PathSeparator)) {
			return true
		}
	}
	return false
}

// Entries returns the expanded whitelist paths.
func (w *Whitelist) Entries() []string {
	return w.entries
}

// Extend adds entries from another source (the config file's
// whitelist field), with the same ~ expansion as the file format.
func (w *Whitelist) Extend(paths []string) {
	for _, p := range paths {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		w.entries = append(w.entries, expand(p))
	}
}

// Add appends a path to the whitelist file and the in-memory set.
// Already-present paths are left alone.
func (w *Whitelist) Add(path string) error {
	expanded := expand(strings.TrimSpace(path))
	if w.IsWhitelisted(expanded) {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(w.path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open whitelist: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintln(f, path); err != nil {
		return fmt.Errorf("write whitelist: %w", err)
	}
	w.entries = append(w.entries, expanded)
	return nil
}

// Remove rewrites the whitelist file without the given path,
// preserving comments and blank lines.
func (w *Whitelist) Remove(path string) error {
	expanded := expand(strings.TrimSpace(path))

	data, err := os.ReadFile(w.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read whitelist: %w", err)
	}

	var kept []string
	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && !strings.HasPrefix(trimmed, "#") && expand(trimmed) == expanded {
			continue
		}
		kept = append(kept, line)
	}

	if err := os.WriteFile(w.path, []byte(strings.Join(kept, "\n")), 0o644); err != nil {
		return fmt.Errorf("write whitelist: %w", err)
	}

	var entries []string
	for _, e := range w.entries {
		if e != expanded {
			entries = append(entries, e)
		}
	}
	w.entries = entries
	return nil
}

// expand resolves a leading ~/ against the user home directory and
// normalizes the result.
func expand(line string) string {
	if line == "~" || strings.HasPrefix(line, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Clean(filepath.Join(home, strings.TrimPrefix(line, "~")))
		}
	}
	return filepath.Clean(line)
}
