package artifact

import (
	"fmt"
	"slices"
	"strings"

	"github.com/packsmith/entrykit/core"
)

// ImportMapPath is where the aggregated import map is generated.
const ImportMapPath = "src/load/import_map.ts"

// renderImportMap produces the import map: one star re-export per included
// entrypoint, then the configured alias groups. Entrypoint order follows
// the sorted key order; alias groups keep their configured order.
func renderImportMap(cfg *core.Config) string {
	var b strings.Builder
	b.WriteString(Header + "\n\n")

	wrote := false
	for _, key := range cfg.EntrypointKeys() {
		if !cfg.InImportMap(key) {
			continue
		}
		source, _ := cfg.SourceModule(key)
		fmt.Fprintf(&b, "export * as %s from %q;\n", exportName(key), "../"+source+".js")
		wrote = true
	}

	if len(cfg.ExtraImportMapEntries) > 0 {
		if wrote {
			b.WriteString("\n")
		}
		renderAliasGroups(&b, cfg.ExtraImportMapEntries)
		wrote = true
	}

	if !wrote {
		b.WriteString("export {};\n")
	}
	return b.String()
}

// exportName flattens a slash-separated entrypoint key into a valid
// identifier for the star re-export.
func exportName(key string) string {
	return strings.ReplaceAll(key, "/", "__")
}

// renderAliasGroups emits one import statement per distinct path, in first
// appearance order with duplicate modules dropped, then one grouped export
// per alias entry.
func renderAliasGroups(b *strings.Builder, entries []core.ImportAliasEntry) {
	var paths []string
	modulesByPath := make(map[string][]string)
	for _, entry := range entries {
		if _, ok := modulesByPath[entry.Path]; !ok {
			paths = append(paths, entry.Path)
		}
		for _, module := range entry.Modules {
			if !slices.Contains(modulesByPath[entry.Path], module) {
				modulesByPath[entry.Path] = append(modulesByPath[entry.Path], module)
			}
		}
	}

	for _, path := range paths {
		fmt.Fprintf(b, "import { %s } from %q;\n", strings.Join(modulesByPath[path], ", "), path)
	}
	b.WriteString("\n")
	for _, entry := range entries {
		fmt.Fprintf(b, "export const %s = { %s };\n",
			strings.Join(entry.Alias, "__"), strings.Join(entry.Modules, ", "))
	}
}
