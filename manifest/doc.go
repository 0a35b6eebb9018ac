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


// Package manifest reads and rewrites the package.json of a TypeScript
// package without disturbing anything it does not own.
//
// Rewrites touch exactly two members, files and exports; every other member
// keeps its position, its key order, and its original number formatting.
// Documents round-trip through an order-preserving object representation and
// are written back with two-space indentation and a trailing newline, the
// way npm formats them.
//
// The package also regenerates the .gitignore next to the manifest and the
// entrypoint files of the downstream export test harnesses.
package manifest
