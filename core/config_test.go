package core

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultConfigFile)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
entrypoints:
  index: index
  agents: agents/index
  tools/calculator: src/tools/calculator
deprecated_node_only:
  - agents
requires_optional_dependency:
  - tools/calculator
extra_import_map_entries:
  - modules: [ChatOpenAI]
    alias: [chat_models, openai]
    path: "@packsmith/openai"
internals:
  - "internal/"
package_suffix: pack
additional_gitignore_paths:
  - .api_docs
should_test_exports: true
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v, want nil", err)
	}

	if got := len(cfg.Entrypoints); got != 3 {
		t.Errorf("len(Entrypoints) = %d, want 3", got)
	}
	if cfg.PackageSuffix != "pack" {
		t.Errorf("PackageSuffix = %q, want %q", cfg.PackageSuffix, "pack")
	}
	if !cfg.ShouldTestExports {
		t.Error("ShouldTestExports = false, want true")
	}
	if len(cfg.ExtraImportMapEntries) != 1 {
		t.Fatalf("len(ExtraImportMapEntries) = %d, want 1", len(cfg.ExtraImportMapEntries))
	}
	if cfg.ExtraImportMapEntries[0].Path != "@packsmith/openai" {
		t.Errorf("alias path = %q, want %q", cfg.ExtraImportMapEntries[0].Path, "@packsmith/openai")
	}

	// The src/ prefix is stripped from values during resolution.
	source, ok := cfg.SourceModule("tools/calculator")
	if !ok {
		t.Fatal("SourceModule(tools/calculator) not found")
	}
	if source != "tools/calculator" {
		t.Errorf("SourceModule(tools/calculator) = %q, want %q", source, "tools/calculator")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `
entrypoints:
  index: index
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v, want nil", err)
	}

	if cfg.TsConfigPath != "tsconfig.json" {
		t.Errorf("TsConfigPath = %q, want %q", cfg.TsConfigPath, "tsconfig.json")
	}
	if cfg.CjsSource != "dist-cjs" {
		t.Errorf("CjsSource = %q, want %q", cfg.CjsSource, "dist-cjs")
	}
	if cfg.CjsDestination != "dist" {
		t.Errorf("CjsDestination = %q, want %q", cfg.CjsDestination, "dist")
	}
}

func TestLoadConfigImpliedIndex(t *testing.T) {
	path := writeConfig(t, `
entrypoints:
  agents: agents/index
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v, want nil", err)
	}

	source, ok := cfg.SourceModule(IndexEntrypoint)
	if !ok {
		t.Fatal("implied index entrypoint missing")
	}
	if source != "index" {
		t.Errorf("SourceModule(index) = %q, want %q", source, "index")
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "no entrypoints",
			content: "package_suffix: pack\n",
			wantErr: ErrNoEntrypoints,
		},
		{
			name:    "dotted key",
			content: "entrypoints:\n  agents.base: agents/base\n",
			wantErr: ErrInvalidEntrypointKey,
		},
		{
			name:    "empty segment key",
			content: "entrypoints:\n  agents//base: agents/base\n",
			wantErr: ErrInvalidEntrypointKey,
		},
		{
			name:    "absolute key",
			content: "entrypoints:\n  /agents: agents/base\n",
			wantErr: ErrInvalidEntrypointKey,
		},
		{
			name:    "whitespace key",
			content: "entrypoints:\n  \"agents base\": agents/base\n",
			wantErr: ErrInvalidEntrypointKey,
		},
		{
			name:    "empty source",
			content: "entrypoints:\n  agents: \"  \"\n",
			wantErr: ErrEmptyEntrypointSource,
		},
		{
			name:    "unknown exclusion reference",
			content: "entrypoints:\n  index: index\ndeprecated_node_only:\n  - missing\n",
			wantErr: ErrUnknownEntrypoint,
		},
		{
			name:    "alias entry missing path",
			content: "entrypoints:\n  index: index\nextra_import_map_entries:\n  - modules: [X]\n    alias: [x]\n",
			wantErr: ErrInvalidAliasEntry,
		},
		{
			name:    "suffix with slash",
			content: "entrypoints:\n  index: index\npackage_suffix: a/b\n",
			wantErr: ErrInvalidPackageSuffix,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))

			if err == nil {
				t.Fatalf("LoadConfig() error = nil, want %v", tt.wantErr)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("LoadConfig() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("LoadConfig() error = nil, want error")
	}
	if !strings.Contains(err.Error(), "read config") {
		t.Errorf("LoadConfig() error = %v, want read config failure", err)
	}
}

func TestLoadConfigMalformedYAML(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "entrypoints: [unterminated"))
	if err == nil {
		t.Fatal("LoadConfig() error = nil, want error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Errorf("LoadConfig() error = %v, want parse failure", err)
	}
}

func TestConfigAbs(t *testing.T) {
	path := writeConfig(t, "entrypoints:\n  index: index\n")
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v, want nil", err)
	}

	want := filepath.Join(filepath.Dir(path), "dist")
	if got := cfg.Abs("dist"); got != want {
		t.Errorf("Abs(dist) = %q, want %q", got, want)
	}

	abs := filepath.Join(string(filepath.Separator), "elsewhere", "dist")
	if got := cfg.Abs(abs); got != abs {
		t.Errorf("Abs(%q) = %q, want unchanged", abs, got)
	}

	if cfg.RootDir() != filepath.Dir(path) {
		t.Errorf("RootDir() = %q, want %q", cfg.RootDir(), filepath.Dir(path))
	}
}
