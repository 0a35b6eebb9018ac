package artifact

import (
	"fmt"
	"strings"
)

// Header marks every aggregated generated file.
const Header = "// Auto-generated by entrykit. Do not edit manually."

// relPrefix climbs from an entrypoint stub's directory back to the package
// root, so nested entrypoints resolve dist/ correctly.
func relPrefix(key string) string {
	if depth := strings.Count(key, "/"); depth > 0 {
		return strings.Repeat("../", depth)
	}
	return "./"
}

// StubNames returns the four stub filenames generated for one entrypoint
// key, relative to the package root.
func StubNames(key string) []string {
	return []string{key + ".cjs", key + ".js", key + ".d.ts", key + ".d.cts"}
}

// renderStubs adds the redirect stubs for one entrypoint: a CommonJS
// require shim plus ESM and declaration re-exports, all pointing into the
// compiled dist/ tree.
func renderStubs(set *Set, key, source string) {
	rel := relPrefix(key)
	cjs := fmt.Sprintf("module.exports = require('%sdist/%s.cjs');", rel, source)
	esm := fmt.Sprintf("export * from '%sdist/%s.js'", rel, source)

	set.Add(key+".cjs", cjs)
	set.Add(key+".js", esm)
	set.Add(key+".d.ts", esm)
	set.Add(key+".d.cts", esm)
}
