package manifest

import (
	"fmt"
	"os"
	"strings"
)

const gitignoreHeader = "# Auto-generated by entrykit. Do not edit manually."

// defaultIgnores are always present in the regenerated ignore list.
var defaultIgnores = []string{
	"node_modules/",
	"dist/",
	"dist-cjs/",
	".turbo/",
	".eslintcache",
}

// WriteGitignore regenerates the ignore list at path from the generated
// stub filenames, the fixed defaults, and any configured extras.
func WriteGitignore(path string, generated, extras []string) error {
	var b strings.Builder
	b.WriteString(gitignoreHeader)
	b.WriteByte('\n')

	for _, name := range generated {
		b.WriteString(name)
		b.WriteByte('\n')
	}
	for _, name := range defaultIgnores {
		b.WriteString(name)
		b.WriteByte('\n')
	}
	for _, name := range extras {
		b.WriteString(name)
		b.WriteByte('\n')
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write gitignore: %w", err)
	}
	return nil
}
