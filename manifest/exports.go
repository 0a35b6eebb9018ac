package manifest

import (
	"github.com/packsmith/entrykit/core"
)

// BuildExports constructs the export map for every configured entrypoint.
// Keys are emitted in sorted entrypoint order with index collapsed to the
// root export; the package.json self-reference always comes last. Node-only
// legacy entrypoints are wrapped in a node condition so other runtimes do
// not resolve them.
func BuildExports(cfg *core.Config) *Object {
	exports := NewObject()

	for _, key := range cfg.EntrypointKeys() {
		exportKey := "./" + key
		if key == core.IndexEntrypoint {
			exportKey = "."
		}

		types := NewObject()
		types.Set("import", "./"+key+".d.ts")
		types.Set("require", "./"+key+".d.cts")
		types.Set("default", "./"+key+".d.ts")

		entry := NewObject()
		entry.Set("types", types)
		entry.Set("import", "./"+key+".js")
		entry.Set("require", "./"+key+".cjs")

		if cfg.IsDeprecatedNodeOnly(key) {
			wrapped := NewObject()
			wrapped.Set("node", entry)
			exports.Set(exportKey, wrapped)
			continue
		}
		exports.Set(exportKey, entry)
	}

	exports.Set(PackageJSONExport, PackageJSONExport)
	return exports
}

// Update applies the configured export surface to the manifest: the files
// list and the export map. The caller persists the result with Save.
func (m *Manifest) Update(cfg *core.Config, stubNames []string) {
	m.SetFiles(stubNames)
	m.SetExports(BuildExports(cfg))
}
