package artifact

import (
	"fmt"
	"sort"
	"strings"

	"github.com/packsmith/entrykit/core"
)

const (
	// ImportConstantsPath is where the optional entrypoint list is
	// generated.
	ImportConstantsPath = "src/load/import_constants.ts"

	// ImportTypePath is where the optional import and secret map
	// declarations are generated.
	ImportTypePath = "src/load/import_type.ts"
)

// renderImportConstants lists the specifiers of entrypoints that need an
// optional dependency installed before they can be imported.
func renderImportConstants(cfg *core.Config, pkg string) string {
	var b strings.Builder
	b.WriteString(Header + "\n\n")

	optional := cfg.OptionalEntrypoints()
	if len(optional) == 0 {
		b.WriteString("export const optionalImportEntrypoints: string[] = [];\n")
		return b.String()
	}

	b.WriteString("export const optionalImportEntrypoints: string[] = [\n")
	for _, key := range optional {
		fmt.Fprintf(&b, "  %q,\n", pkg+"/"+key)
	}
	b.WriteString("];\n")
	return b.String()
}

// renderImportType declares the optional import map and the secret map.
// Secret identifiers are sorted before rendering so the declaration is
// stable across runs.
func renderImportType(cfg *core.Config, pkg string, secretIDs []string) string {
	ids := append([]string(nil), secretIDs...)
	sort.Strings(ids)

	var b strings.Builder
	b.WriteString(Header + "\n\n")

	optional := cfg.OptionalEntrypoints()
	if len(optional) == 0 {
		b.WriteString("export interface OptionalImportMap {}\n")
	} else {
		b.WriteString("export interface OptionalImportMap {\n")
		for _, key := range optional {
			source, _ := cfg.SourceModule(key)
			fmt.Fprintf(&b, "  %q?: typeof import(%q);\n", pkg+"/"+key, "../"+source+".js")
		}
		b.WriteString("}\n")
	}

	b.WriteString("\n")

	if len(ids) == 0 {
		b.WriteString("export interface SecretMap {}\n")
		return b.String()
	}
	b.WriteString("export interface SecretMap {\n")
	for _, id := range ids {
		fmt.Fprintf(&b, "  %s?: string;\n", id)
	}
	b.WriteString("}\n")
	return b.String()
}
