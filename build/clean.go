package build

import (
	"errors"
	"fmt"
	"os"
)

// RemoveAll deletes each path recursively. Absent paths are success, so
// cleanup on a fresh checkout is a no-op.
func RemoveAll(paths ...string) error {
	for _, path := range paths {
		if err := os.RemoveAll(path); err != nil {
			return fmt.Errorf("remove %s: %w", path, err)
		}
	}
	return nil
}

// RemoveFiles deletes individual files, ignoring absent ones.
func RemoveFiles(paths ...string) error {
	for _, path := range paths {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove %s: %w", path, err)
		}
	}
	return nil
}
