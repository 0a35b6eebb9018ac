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


// Package artifact renders the generated files of a package: per-entrypoint
// stub modules at the package root and the aggregated import files under
// src/load/.
//
// Rendering is pure. Generate walks the configured entrypoints in sorted
// key order and produces string content only, so the same configuration and
// secret set always yield byte-identical output. Writing the files to disk
// is a separate, concurrent step.
package artifact
