package artifact

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packsmith/entrykit/core"
)

// testConfig loads a configuration from yaml with the given source modules
// present under src/.
func testConfig(t *testing.T, yaml string, sources ...string) *core.Config {
	t.Helper()
	dir := t.TempDir()
	for _, rel := range sources {
		path := filepath.Join(dir, "src", filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("export {};\n"), 0o644))
	}
	cfgPath := filepath.Join(dir, core.DefaultConfigFile)
	require.NoError(t, os.WriteFile(cfgPath, []byte(yaml), 0o644))

	cfg, err := core.LoadConfig(cfgPath)
	require.NoError(t, err)
	return cfg
}

func TestGenerate_Stubs(t *testing.T) {
	cfg := testConfig(t, `
entrypoints:
  index: index
  agents: agents/index
  tools/calculator: tools/calculator
`, "index.ts", "agents/index.ts", "tools/calculator.ts")

	result, err := Generate(cfg, "@packsmith/community", nil)
	require.NoError(t, err)

	content, ok := result.Stubs.Content("agents.cjs")
	require.True(t, ok)
	assert.Equal(t, "module.exports = require('./dist/agents/index.cjs');", content)

	content, _ = result.Stubs.Content("agents.js")
	assert.Equal(t, "export * from './dist/agents/index.js'", content)

	for _, name := range []string{"agents.d.ts", "agents.d.cts"} {
		content, ok = result.Stubs.Content(name)
		require.True(t, ok, name)
		assert.Equal(t, "export * from './dist/agents/index.js'", content, name)
	}

	// nested keys climb back to the package root
	content, _ = result.Stubs.Content("tools/calculator.cjs")
	assert.Equal(t, "module.exports = require('../dist/tools/calculator.cjs');", content)
	content, _ = result.Stubs.Content("tools/calculator.js")
	assert.Equal(t, "export * from '../dist/tools/calculator.js'", content)

	assert.Equal(t, 12, result.Stubs.Len(), "four stubs per entrypoint")
}

func TestGenerate_MissingSource(t *testing.T) {
	cfg := testConfig(t, `
entrypoints:
  index: index
  agents: agents/index
`, "index.ts")

	_, err := Generate(cfg, "pkg", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingSource)

	var missing *MissingSourceError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "agents", missing.Entrypoint)
	assert.Equal(t, "agents/index", missing.Source)
}

func TestGenerate_ExcludedKeysNeedNoSource(t *testing.T) {
	cfg := testConfig(t, `
entrypoints:
  index: index
  legacy: old/legacy
  vector: vector
  node_only: node_only
deprecated_omit_from_import_map: [legacy]
requires_optional_dependency: [vector]
deprecated_node_only: [node_only]
`, "index.ts")

	result, err := Generate(cfg, "pkg", nil)
	require.NoError(t, err, "entrypoints in exclusion sets may point at absent sources")

	// excluded entrypoints still get stubs
	_, ok := result.Stubs.Content("legacy.cjs")
	assert.True(t, ok)
	_, ok = result.Stubs.Content("vector.d.cts")
	assert.True(t, ok)
}

func TestGenerate_AlternateSourceExtensions(t *testing.T) {
	cfg := testConfig(t, `
entrypoints:
  index: index
  view: view
  shim: shim
`, "index.ts", "view.tsx", "shim.js")

	_, err := Generate(cfg, "pkg", nil)
	assert.NoError(t, err)
}

func TestGenerate_ImportMap(t *testing.T) {
	cfg := testConfig(t, `
entrypoints:
  index: index
  a: mod_a
  b: mod_b
  load: load/index
  legacy: old/legacy
  vector: vector
deprecated_omit_from_import_map: [legacy]
requires_optional_dependency: [vector]
`, "index.ts", "mod_a.ts", "mod_b.ts", "load/index.ts")

	result, err := Generate(cfg, "pkg", nil)
	require.NoError(t, err)

	content, ok := result.Maps.Content(ImportMapPath)
	require.True(t, ok)
	assert.Equal(t, `// Auto-generated by entrykit. Do not edit manually.

export * as a from "../mod_a.js";
export * as b from "../mod_b.js";
export * as index from "../index.js";
`, content, "load, omitted, and optional entrypoints stay out of the map")
}

func TestGenerate_ImportMapNestedKeys(t *testing.T) {
	cfg := testConfig(t, `
entrypoints:
  index: index
  chat_models/openai: chat_models/openai
`, "index.ts", "chat_models/openai.ts")

	result, err := Generate(cfg, "pkg", nil)
	require.NoError(t, err)

	content, _ := result.Maps.Content(ImportMapPath)
	assert.Contains(t, content, `export * as chat_models__openai from "../chat_models/openai.js";`)
}

func TestGenerate_ImportMapAliasGroups(t *testing.T) {
	cfg := testConfig(t, `
entrypoints:
  index: index
extra_import_map_entries:
  - modules: [BaseChain, LLMChain]
    alias: [chains, base]
    path: "@packsmith/core/chains"
  - modules: [PromptTemplate]
    alias: [prompts]
    path: "@packsmith/core/prompts"
  - modules: [BaseChain]
    alias: [chains, legacy]
    path: "@packsmith/core/chains"
`, "index.ts")

	result, err := Generate(cfg, "pkg", nil)
	require.NoError(t, err)

	content, _ := result.Maps.Content(ImportMapPath)
	assert.Equal(t, `// Auto-generated by entrykit. Do not edit manually.

export * as index from "../index.js";

import { BaseChain, LLMChain } from "@packsmith/core/chains";
import { PromptTemplate } from "@packsmith/core/prompts";

export const chains__base = { BaseChain, LLMChain };
export const prompts = { PromptTemplate };
export const chains__legacy = { BaseChain };
`, content, "imports merge per path, exports stay per entry")
}

func TestGenerate_ImportConstants(t *testing.T) {
	cfg := testConfig(t, `
entrypoints:
  index: index
  vector: vector
  chat_models/bedrock: chat_models/bedrock
  node_legacy: node_legacy
requires_optional_dependency: [vector, chat_models/bedrock, node_legacy]
deprecated_node_only: [node_legacy]
`, "index.ts")

	result, err := Generate(cfg, "@packsmith/community", nil)
	require.NoError(t, err)

	content, _ := result.Maps.Content(ImportConstantsPath)
	assert.Equal(t, `// Auto-generated by entrykit. Do not edit manually.

export const optionalImportEntrypoints: string[] = [
  "@packsmith/community/chat_models/bedrock",
  "@packsmith/community/vector",
];
`, content, "node-only optionals are dropped, the rest sorted")
}

func TestGenerate_ImportType(t *testing.T) {
	cfg := testConfig(t, `
entrypoints:
  index: index
  vector: vector
requires_optional_dependency: [vector]
`, "index.ts")

	result, err := Generate(cfg, "@packsmith/community", []string{"OPENAI_API_KEY", "ANTHROPIC_API_KEY"})
	require.NoError(t, err)

	content, _ := result.Maps.Content(ImportTypePath)
	assert.Equal(t, `// Auto-generated by entrykit. Do not edit manually.

export interface OptionalImportMap {
  "@packsmith/community/vector"?: typeof import("../vector.js");
}

export interface SecretMap {
  ANTHROPIC_API_KEY?: string;
  OPENAI_API_KEY?: string;
}
`, content, "secret identifiers are sorted before rendering")
}

func TestGenerate_EmptyAggregates(t *testing.T) {
	cfg := testConfig(t, `
entrypoints:
  index: index
`, "index.ts")

	result, err := Generate(cfg, "pkg", nil)
	require.NoError(t, err)

	content, _ := result.Maps.Content(ImportConstantsPath)
	assert.Equal(t, Header+"\n\nexport const optionalImportEntrypoints: string[] = [];\n", content)

	content, _ = result.Maps.Content(ImportTypePath)
	assert.Equal(t, Header+"\n\nexport interface OptionalImportMap {}\n\nexport interface SecretMap {}\n", content)
}

func TestGenerate_Idempotent(t *testing.T) {
	yaml := `
entrypoints:
  index: index
  agents: agents/index
  vector: vector
requires_optional_dependency: [vector]
`
	cfg := testConfig(t, yaml, "index.ts", "agents/index.ts")

	first, err := Generate(cfg, "pkg", []string{"A_KEY", "B_KEY"})
	require.NoError(t, err)
	second, err := Generate(cfg, "pkg", []string{"A_KEY", "B_KEY"})
	require.NoError(t, err)

	assert.Equal(t, first.All().Fingerprint(), second.All().Fingerprint(),
		"regeneration must be byte-for-byte identical")
	for _, name := range first.Maps.Names() {
		want, _ := first.Maps.Content(name)
		got, _ := second.Maps.Content(name)
		assert.Equal(t, want, got, name)
	}
}

func TestPlaceholderMaps(t *testing.T) {
	maps := PlaceholderMaps()
	assert.Equal(t, []string{ImportConstantsPath, ImportMapPath, ImportTypePath}, maps.Names())

	content, _ := maps.Content(ImportConstantsPath)
	assert.Equal(t, Header+"\n\nexport const optionalImportEntrypoints: string[] = [];\n", content)

	content, _ = maps.Content(ImportMapPath)
	assert.Equal(t, Header+"\n\nexport {};\n", content)
}

func TestSet_WriteAll(t *testing.T) {
	set := NewSet()
	set.Add("agents.cjs", "module.exports = require('./dist/agents.cjs');")
	set.Add("src/load/import_map.ts", Header+"\n\nexport {};\n")

	dir := t.TempDir()
	require.NoError(t, set.WriteAll(context.Background(), dir))

	data, err := os.ReadFile(filepath.Join(dir, "agents.cjs"))
	require.NoError(t, err)
	assert.Equal(t, "module.exports = require('./dist/agents.cjs');", string(data))

	data, err = os.ReadFile(filepath.Join(dir, "src/load/import_map.ts"))
	require.NoError(t, err)
	assert.Equal(t, Header+"\n\nexport {};\n", string(data))
}

func TestSet_Fingerprint(t *testing.T) {
	a := NewSet()
	a.Add("one.ts", "alpha")
	a.Add("two.ts", "beta")

	b := NewSet()
	b.Add("two.ts", "beta")
	b.Add("one.ts", "alpha")

	assert.Equal(t, a.Fingerprint(), b.Fingerprint(), "insertion order must not matter")
	assert.Len(t, a.Fingerprint(), 16)

	b.Add("one.ts", "changed")
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}

func TestStubNames(t *testing.T) {
	assert.Equal(t,
		[]string{"agents.cjs", "agents.js", "agents.d.ts", "agents.d.cts"},
		StubNames("agents"))
	assert.Equal(t,
		[]string{"tools/calculator.cjs", "tools/calculator.js", "tools/calculator.d.ts", "tools/calculator.d.cts"},
		StubNames("tools/calculator"))
}
