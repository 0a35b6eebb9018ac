package core

import (
	"slices"
	"sort"
	"strings"
)

const (
	// IndexEntrypoint is the implied root entrypoint key. It collapses to
	// the "." export in the package manifest.
	IndexEntrypoint = "index"

	// LoadEntrypoint is the entrypoint the aggregated import files are
	// served from. It never re-exports itself in the import map.
	LoadEntrypoint = "load"

	// sourceRootPrefix is stripped from entrypoint source values so they
	// are always relative to the src/ root.
	sourceRootPrefix = "src/"
)

// NormalizeSourceModule trims surrounding whitespace and a leading src/
// prefix from an entrypoint source path.
func NormalizeSourceModule(source string) string {
	source = strings.TrimSpace(source)
	return strings.TrimPrefix(source, sourceRootPrefix)
}

// EntrypointKeys returns every entrypoint key, including the implied index,
// in sorted order. Generators walk this slice so output is deterministic
// regardless of map iteration order.
func (c *Config) EntrypointKeys() []string {
	keys := make([]string, 0, len(c.resolved))
	for key := range c.resolved {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// SourceModule returns the normalized source module path for key.
func (c *Config) SourceModule(key string) (string, bool) {
	source, ok := c.resolved[key]
	return source, ok
}

// IsDeprecatedNodeOnly reports whether key is a Node-only legacy entrypoint.
func (c *Config) IsDeprecatedNodeOnly(key string) bool {
	return slices.Contains(c.DeprecatedNodeOnly, key)
}

// RequiresOptionalDep reports whether key imports optional dependencies.
func (c *Config) RequiresOptionalDep(key string) bool {
	return slices.Contains(c.RequiresOptionalDependency, key)
}

// OmittedFromImportMap reports whether key was deliberately left out of the
// import map without being optional.
func (c *Config) OmittedFromImportMap(key string) bool {
	return slices.Contains(c.DeprecatedOmitFromImportMap, key)
}

// InImportMap reports whether key belongs in the aggregated import map.
// Optional-dependency entrypoints, deprecated omissions, and the load
// entrypoint itself stay out.
func (c *Config) InImportMap(key string) bool {
	if key == LoadEntrypoint {
		return false
	}
	return !c.OmittedFromImportMap(key) && !c.RequiresOptionalDep(key)
}

// InTestExports reports whether key is rewritten into the downstream export
// test harnesses.
func (c *Config) InTestExports(key string) bool {
	return !c.RequiresOptionalDep(key) && !c.IsDeprecatedNodeOnly(key)
}

// RequiresSource reports whether generation must find an existing source
// file for key. Entrypoints in an exclusion set may point at removed or
// optional sources.
func (c *Config) RequiresSource(key string) bool {
	return !c.IsDeprecatedNodeOnly(key) &&
		!c.RequiresOptionalDep(key) &&
		!c.OmittedFromImportMap(key)
}

// OptionalEntrypoints returns the optional-dependency entrypoints that are
// not Node-only, in sorted order. These feed the generated import constants
// and the optional import declarations.
func (c *Config) OptionalEntrypoints() []string {
	var keys []string
	for _, key := range c.EntrypointKeys() {
		if c.RequiresOptionalDep(key) && !c.IsDeprecatedNodeOnly(key) {
			keys = append(keys, key)
		}
	}
	return keys
}
