// Copyright 2026 Packsmith Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the configuration filename used when none is given.
const DefaultConfigFile = "entrykit.yaml"

// ImportAliasEntry re-exports modules from an external module path under a
// grouped alias in the generated import map. Entries sharing a path are
// merged into a single import statement.
type ImportAliasEntry struct {
	Modules []string `yaml:"modules"`
	Alias   []string `yaml:"alias"`
	Path    string   `yaml:"path"`
}

// Config is the build configuration for a single TypeScript package.
// It is loaded once from a YAML file in the package directory and never
// mutated afterwards.
type Config struct {
	// Entrypoints maps public entrypoint keys (slash-separated, dot-free)
	// to source module paths relative to src/.
	Entrypoints map[string]string `yaml:"entrypoints"`

	// DeprecatedNodeOnly lists entrypoints that only work under Node and
	// are kept for backwards compatibility. Their manifest exports are
	// wrapped in a node condition.
	DeprecatedNodeOnly []string `yaml:"deprecated_node_only"`

	// RequiresOptionalDependency lists entrypoints that import optional
	// peer dependencies. They stay out of eagerly loaded artifacts and are
	// surfaced through the generated optional-import declarations instead.
	RequiresOptionalDependency []string `yaml:"requires_optional_dependency"`

	// DeprecatedOmitFromImportMap lists entrypoints excluded from the
	// import map without being optional.
	DeprecatedOmitFromImportMap []string `yaml:"deprecated_omit_from_import_map"`

	// ExtraImportMapEntries are alias re-exports merged into the import map.
	ExtraImportMapEntries []ImportAliasEntry `yaml:"extra_import_map_entries"`

	// Internals are module specifiers treated as external during
	// tree-shaking verification, in addition to declared dependencies.
	Internals []string `yaml:"internals"`

	// PackageSuffix overrides the import prefix used in generated constants
	// and export tests. The manifest name is used when empty.
	PackageSuffix string `yaml:"package_suffix"`

	// TsConfigPath is the compiler configuration for the ESM build.
	TsConfigPath string `yaml:"ts_config_path"`

	// CjsSource is the staging directory the CJS build compiles into.
	CjsSource string `yaml:"cjs_source"`

	// CjsDestination is the directory relocated CJS output lands in.
	CjsDestination string `yaml:"cjs_destination"`

	// AdditionalGitignorePaths are appended to the regenerated ignore list.
	AdditionalGitignorePaths []string `yaml:"additional_gitignore_paths"`

	// ShouldTestExports enables rewriting of the downstream export test
	// harness entrypoint files.
	ShouldTestExports bool `yaml:"should_test_exports"`

	rootDir  string
	resolved map[string]string
}

// LoadConfig reads, defaults, and validates a build configuration.
// The directory containing path becomes the root that all relative paths
// resolve against.
func LoadConfig(path string) (*Config, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.rootDir = filepath.Dir(abs)
	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.TsConfigPath == "" {
		c.TsConfigPath = "tsconfig.json"
	}
	if c.CjsSource == "" {
		c.CjsSource = "dist-cjs"
	}
	if c.CjsDestination == "" {
		c.CjsDestination = "dist"
	}
}

func (c *Config) validate() error {
	if len(c.Entrypoints) == 0 {
		return ErrNoEntrypoints
	}

	resolved := make(map[string]string, len(c.Entrypoints)+1)
	for key, source := range c.Entrypoints {
		if err := validateEntrypointKey(key); err != nil {
			return err
		}
		normalized := NormalizeSourceModule(source)
		if normalized == "" {
			return fmt.Errorf("%w: %q", ErrEmptyEntrypointSource, key)
		}
		resolved[key] = normalized
	}

	// The root entrypoint always exists so the package has a "." export.
	if _, ok := resolved[IndexEntrypoint]; !ok {
		resolved[IndexEntrypoint] = IndexEntrypoint
	}
	c.resolved = resolved

	exclusions := []struct {
		name string
		keys []string
	}{
		{"deprecated_node_only", c.DeprecatedNodeOnly},
		{"requires_optional_dependency", c.RequiresOptionalDependency},
		{"deprecated_omit_from_import_map", c.DeprecatedOmitFromImportMap},
	}
	for _, set := range exclusions {
		for _, key := range set.keys {
			if _, ok := resolved[key]; !ok {
				return fmt.Errorf("%w: %s references %q", ErrUnknownEntrypoint, set.name, key)
			}
		}
	}

	for i, entry := range c.ExtraImportMapEntries {
		if len(entry.Modules) == 0 || len(entry.Alias) == 0 || entry.Path == "" {
			return fmt.Errorf("%w: entry %d", ErrInvalidAliasEntry, i)
		}
	}

	if strings.ContainsFunc(c.PackageSuffix, unicode.IsSpace) || strings.Contains(c.PackageSuffix, "/") {
		return fmt.Errorf("%w: %q", ErrInvalidPackageSuffix, c.PackageSuffix)
	}

	return nil
}

func validateEntrypointKey(key string) error {
	if key == "" || strings.Contains(key, ".") {
		return fmt.Errorf("%w: %q", ErrInvalidEntrypointKey, key)
	}
	if strings.ContainsFunc(key, unicode.IsSpace) {
		return fmt.Errorf("%w: %q", ErrInvalidEntrypointKey, key)
	}
	for _, segment := range strings.Split(key, "/") {
		if segment == "" {
			return fmt.Errorf("%w: %q", ErrInvalidEntrypointKey, key)
		}
	}
	return nil
}

// Abs resolves rel against the directory containing the configuration file.
// Absolute paths are returned unchanged.
func (c *Config) Abs(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(c.rootDir, rel)
}

// RootDir returns the directory containing the configuration file.
func (c *Config) RootDir() string {
	return c.rootDir
}
