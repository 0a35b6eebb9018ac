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


package artifact

import (
	"os"
	"path/filepath"

	"github.com/packsmith/entrykit/core"
)

// sourceExtensions are the extensions an entrypoint source module may
// resolve to under src/.
var sourceExtensions = []string{".ts", ".tsx", ".js"}

// Result groups the generated files by destination: redirect stubs at the
// package root and aggregated import files under src/load/.
type Result struct {
	Stubs *Set
	Maps  *Set
}

// All returns every generated file as one set.
func (r *Result) All() *Set {
	return r.Stubs.Merge(r.Maps)
}

// Generate renders every artifact for the configuration. pkg is the import
// prefix consumers see, normally the manifest name. secretIDs are the
// identifiers collected by the secret scan.
//
// Every entrypoint outside the exclusion sets must have a source module
// under src/; a missing one aborts generation before anything is rendered.
func Generate(cfg *core.Config, pkg string, secretIDs []string) (*Result, error) {
	if err := checkSources(cfg); err != nil {
		return nil, err
	}

	stubs := NewSet()
	for _, key := range cfg.EntrypointKeys() {
		source, _ := cfg.SourceModule(key)
		renderStubs(stubs, key, source)
	}

	maps := NewSet()
	maps.Add(ImportMapPath, renderImportMap(cfg))
	maps.Add(ImportConstantsPath, renderImportConstants(cfg, pkg))
	maps.Add(ImportTypePath, renderImportType(cfg, pkg, secretIDs))

	return &Result{Stubs: stubs, Maps: maps}, nil
}

// PlaceholderMaps renders empty aggregated files so a compile that runs
// before generation can still resolve the imports. The constants and
// declarations match what Generate produces for a configuration with
// nothing optional and no secrets; the import map is an empty module.
func PlaceholderMaps() *Set {
	maps := NewSet()
	maps.Add(ImportMapPath, Header+"\n\nexport {};\n")
	maps.Add(ImportConstantsPath, Header+"\n\nexport const optionalImportEntrypoints: string[] = [];\n")
	maps.Add(ImportTypePath, Header+"\n\nexport interface OptionalImportMap {}\n\nexport interface SecretMap {}\n")
	return maps
}

func checkSources(cfg *core.Config) error {
	srcRoot := cfg.Abs("src")
	for _, key := range cfg.EntrypointKeys() {
		if !cfg.RequiresSource(key) {
			continue
		}
		source, _ := cfg.SourceModule(key)
		if !sourceExists(srcRoot, source) {
			return &MissingSourceError{Entrypoint: key, Source: source}
		}
	}
	return nil
}

func sourceExists(srcRoot, source string) bool {
	for _, ext := range sourceExtensions {
		if _, err := os.Stat(filepath.Join(srcRoot, filepath.FromSlash(source)+ext)); err == nil {
			return true
		}
	}
	return false
}
