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


// Package secrets discovers the secret identifiers a TypeScript package
// declares, so a typed secret map can be generated for it.
//
// The convention: any class may expose a zero-argument accessor named
// secretKeys returning an object literal whose keys name the environment
// secrets the class reads. The scanner resolves the package's source files
// from its compiler configuration, parses each one with a tolerant
// TypeScript-subset tokenizer into a closed set of declaration nodes, and
// collects the literal keys of every such accessor.
//
// Identifiers must be uppercase and free of whitespace. A violation aborts
// the scan with an error naming both the identifier and the file that
// declared it. Results are deduplicated and sorted, so repeated scans of an
// unchanged tree produce identical output.
package secrets
