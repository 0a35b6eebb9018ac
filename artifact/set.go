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
	"context"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/go-crypt/x/blake2b"
	"golang.org/x/sync/errgroup"
)

// Set is a collection of generated files keyed by path relative to the
// package root.
type Set struct {
	files map[string]string
}

// NewSet returns an empty file set.
func NewSet() *Set {
	return &Set{files: make(map[string]string)}
}

// Add records one generated file. A later add for the same name wins.
func (s *Set) Add(name, content string) {
	s.files[name] = content
}

// Names returns the relative path of every file in the set, sorted.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.files))
	for name := range s.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Content returns the rendered content of one file.
func (s *Set) Content(name string) (string, bool) {
	content, ok := s.files[name]
	return content, ok
}

// Len returns the number of files in the set.
func (s *Set) Len() int {
	return len(s.files)
}

// Fingerprint returns a deterministic digest of the set using BLAKE2b
// hashing. Identical file sets produce identical fingerprints, so a caller
// can tell whether a regeneration changed anything.
func (s *Set) Fingerprint() string {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	for _, name := range s.Names() {
		h.Write([]byte(name))
		h.Write([]byte{0})
		h.Write([]byte(s.files[name]))
		h.Write([]byte{0})
	}
	sum := h.Sum(nil)
	return fmt.Sprintf("%016x", binary.LittleEndian.Uint64(sum))
}

// WriteAll persists every file in the set under root, creating parent
// directories as needed. Files are written concurrently and the first
// failure cancels the rest.
func (s *Set) WriteAll(ctx context.Context, root string) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, name := range s.Names() {
		name := name
		path := filepath.Join(root, filepath.FromSlash(name))
		content := s.files[name]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return fmt.Errorf("create directory for %s: %w", name, err)
			}
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", name, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// Merge returns a new set holding the files of s and other. Names in other
// win on collision.
func (s *Set) Merge(other *Set) *Set {
	merged := NewSet()
	for name, content := range s.files {
		merged.files[name] = content
	}
	if other != nil {
		for name, content := range other.files {
			merged.files[name] = content
		}
	}
	return merged
}
