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


// Package core defines the build configuration model shared by every
// entrykit subsystem.
//
// A configuration file declares the public entrypoints of a TypeScript
// package, the exclusion sets that govern which entrypoints appear in
// generated import maps and downstream export tests, extra import aliases,
// and the compiler paths used during a build. The configuration is loaded
// once, validated eagerly, and never mutated afterwards; all consumers
// treat it as read-only.
//
// Entrypoint keys are slash-separated path segments without dots (for
// example "chat_models/openai"). Values are module paths relative to the
// src/ root of the package; a leading "src/" is accepted and stripped.
// The "index" entrypoint is implied when absent so the package root export
// always exists.
package core
