// Package cache owns the on-disk context cache directory lifecycle.
// Freshness is deliberately coarse: a non-empty directory is fresh, and
// the only invalidation trigger is an explicit forced refresh.
package cache

import (
	"fmt"
	"os"
)

// NeedsRefresh reports whether the cached context documents must be
// refetched: when force is set, when the directory does not exist, or
// when it exists but contains zero entries.
func NeedsRefresh(dir string, force bool) bool {
	if force {
		return true
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		// Missing or unreadable directory: must fetch.
		return os.IsNotExist(err)
	}
	return len(entries) == 0
}

// Reset deletes the entire cache directory and recreates it empty, so
// stale documents from a prior configuration cannot linger after a
// forced refresh.
func Reset(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to delete cache directory %s: %w", dir, err)
	}
	return Ensure(dir)
}

// Ensure creates the cache directory if it does not exist.
func Ensure(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory %s: %w", dir, err)
	}
	return nil
}
