package build

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// RelocateCJS moves a staged CommonJS build into its destination, renaming
// .js to .cjs and .js.map to .cjs.map along the way, then removes the
// staging directory. Files that are neither move unchanged.
func RelocateCJS(staging, dest string) error {
	err := filepath.WalkDir(staging, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(staging, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dest, renameCJS(rel))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		return os.Rename(path, target)
	})
	if err != nil {
		return fmt.Errorf("relocate cjs build: %w", err)
	}
	return os.RemoveAll(staging)
}

func renameCJS(rel string) string {
	switch {
	case strings.HasSuffix(rel, ".js.map"):
		return strings.TrimSuffix(rel, ".js.map") + ".cjs.map"
	case strings.HasSuffix(rel, ".js"):
		return strings.TrimSuffix(rel, ".js") + ".cjs"
	}
	return rel
}
