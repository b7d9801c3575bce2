package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	logDirName = "linmole"
	logFile    = "linmole.log"

	// Rotated log files older than this are removed.
	retentionDays = 30
)

var log = logrus.New()

// L returns the shared logger. Commands and internal packages log
// through this instance so --debug affects everything at once.
func L() *logrus.Logger {
	return log
}

// Setup configures the shared logger. Debug mode lowers the level and
// adds caller-friendly timestamps; otherwise only warnings and errors
// reach stderr so TUI output stays clean.
func Setup(debug bool) {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: !debug,
		FullTimestamp:    debug,
	})

	if debug {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}

	if f := openLogFile(); f != nil {
		log.SetOutput(io.MultiWriter(os.Stderr, f))
	}
}

// openLogFile opens the per-user log file under the state directory,
// rotating an old one first. Returns nil when the file cannot be
// opened; logging to stderr alone is fine.
func openLogFile() *os.File {
	dir := StateDir()
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil
	}

	path := filepath.Join(dir, logFile)
	rotateIfStale(path)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil
	}
	return f
}

// StateDir returns the per-user state directory holding the log file
// and the deletion journal. Empty when no home directory resolves.
func StateDir() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, logDirName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", logDirName)
}

// rotateIfStale renames a log file older than the retention window and
// prunes previously rotated files past it.
func rotateIfStale(path string) {
	info, err := os.Stat(path)
	if err != nil {
		return
	}

	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	if !info.ModTime().Before(cutoff) {
		return
	}

	stamp := info.ModTime().Format("20060102-150405")
	if err := os.Rename(path, path+"."+stamp); err != nil {
		return
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		return
	}
	base := filepath.Base(path) + "."
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || len(name) <= len(base) || name[:len(base)] != base {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			continue
		}
		if fi.ModTime().Before(cutoff) {
			os.Remove(filepath.Join(filepath.Dir(path), name))
		}
	}
}
