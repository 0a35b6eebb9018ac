package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/packsmith/entrykit/core"
)

const testExportsHeader = "// Auto-generated by entrykit. Do not edit manually."

// testTarget is one downstream harness that imports every public entrypoint
// to prove the published surface resolves in its environment.
type testTarget struct {
	dir       string
	statement func(specifier, ident string) string
}

var testTargets = []testTarget{
	{dir: "test-exports-esm", statement: esmStatement},
	{dir: "test-exports-esbuild", statement: esmStatement},
	{dir: "test-exports-vite", statement: esmStatement},
	{dir: "test-exports-cjs", statement: cjsStatement},
}

func esmStatement(specifier, ident string) string {
	return fmt.Sprintf("import * as %s from %q;", ident, specifier)
}

func cjsStatement(specifier, ident string) string {
	return fmt.Sprintf("const %s = require(%q);", ident, specifier)
}

// WriteTestExports rewrites the harness entrypoint files in the
// environment_tests tree beside the package directory. Optional-dependency
// and Node-only entrypoints are skipped so the harnesses stay runnable
// everywhere.
func WriteTestExports(cfg *core.Config, packageDir, pkg string) error {
	for _, target := range testTargets {
		dir := filepath.Join(packageDir, "..", "environment_tests", target.dir, "src")
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create harness dir: %w", err)
		}

		path := filepath.Join(dir, "entrypoints.js")
		content := renderTestEntrypoints(cfg, pkg, target.statement)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	return nil
}

func renderTestEntrypoints(cfg *core.Config, pkg string, statement func(specifier, ident string) string) string {
	var b strings.Builder
	b.WriteString(testExportsHeader)
	b.WriteByte('\n')

	for _, key := range cfg.EntrypointKeys() {
		if !cfg.InTestExports(key) {
			continue
		}

		specifier := pkg + "/" + key
		if key == core.IndexEntrypoint {
			specifier = pkg
		}
		ident := strings.ReplaceAll(key, "/", "_")

		b.WriteString(statement(specifier, ident))
		b.WriteByte('\n')
	}
	return b.String()
}
