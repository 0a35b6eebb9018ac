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


package manifest

import (
	"fmt"
	"os"
)

// PackageJSONExport is the self-reference every export map ends with.
const PackageJSONExport = "./package.json"

// Manifest is a loaded package.json document.
type Manifest struct {
	path string
	doc  *Object
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	doc, err := ParseObject(data)
	if err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}

	return &Manifest{path: path, doc: doc}, nil
}

// Path returns the file the manifest was loaded from.
func (m *Manifest) Path() string {
	return m.path
}

// Name returns the package name, or an error when the manifest lacks one.
func (m *Manifest) Name() (string, error) {
	raw, ok := m.doc.Get("name")
	if !ok {
		return "", ErrNoName
	}
	name, ok := raw.(string)
	if !ok || name == "" {
		return "", ErrNoName
	}
	return name, nil
}

// Dependencies returns the dependency names in document order.
func (m *Manifest) Dependencies() []string {
	return m.memberKeys("dependencies")
}

// PeerDependencies returns the peer dependency names in document order.
func (m *Manifest) PeerDependencies() []string {
	return m.memberKeys("peerDependencies")
}

func (m *Manifest) memberKeys(member string) []string {
	raw, ok := m.doc.Get(member)
	if !ok {
		return nil
	}
	obj, ok := raw.(*Object)
	if !ok {
		return nil
	}
	keys := obj.Keys()
	out := make([]string, len(keys))
	copy(out, keys)
	return out
}

// SetFiles replaces the files member with dist/ followed by the generated
// stub filenames.
func (m *Manifest) SetFiles(stubNames []string) {
	files := make([]string, 0, len(stubNames)+1)
	files = append(files, "dist/")
	files = append(files, stubNames...)
	m.doc.Set("files", files)
}

// SetExports replaces the exports member.
func (m *Manifest) SetExports(exports *Object) {
	m.doc.Set("exports", exports)
}

// ExportTarget is one entry of the manifest export map, reduced to the file
// its ESM condition resolves to.
type ExportTarget struct {
	Key    string // export key, "." or "./name"
	Import string // ESM target, "./name.js"
}

// ExportTargets returns the ESM targets of the export map in document
// order, skipping the package.json self-reference and entries without an
// import condition. Node-wrapped entries are unwrapped first.
func (m *Manifest) ExportTargets() ([]ExportTarget, error) {
	raw, ok := m.doc.Get("exports")
	if !ok {
		return nil, ErrNoExports
	}
	obj, ok := raw.(*Object)
	if !ok {
		return nil, ErrNoExports
	}

	var targets []ExportTarget
	for _, key := range obj.Keys() {
		if key == PackageJSONExport {
			continue
		}
		value, _ := obj.Get(key)

		switch entry := value.(type) {
		case string:
			targets = append(targets, ExportTarget{Key: key, Import: entry})
		case *Object:
			conditions := entry
			if node, ok := entry.Get("node"); ok {
				if nodeObj, isObj := node.(*Object); isObj {
					conditions = nodeObj
				}
			}
			if imp, ok := conditions.Get("import"); ok {
				if target, isStr := imp.(string); isStr {
					targets = append(targets, ExportTarget{Key: key, Import: target})
				}
			}
		}
	}
	return targets, nil
}

// Save writes the manifest back to its file.
func (m *Manifest) Save() error {
	data, err := m.doc.Encode()
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	if err := os.WriteFile(m.path, data, 0644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}
