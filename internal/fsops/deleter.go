package fsops

import "os"

// Deleter abstracts the destructive filesystem calls so tests can
// observe deletions without touching the disk.
type Deleter interface {
	// Remove deletes a single file or symlink.
	Remove(path string) error
	// RemoveAll deletes a directory tree.
	RemoveAll(path string) error
}

// OSDeleter performs real deletions.
type OSDeleter struct{}

func (OSDeleter) Remove(path string) error    { return os.Remove(path) }
func (OSDeleter) RemoveAll(path string) error { return os.RemoveAll(path) }
