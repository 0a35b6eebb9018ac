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


// Package treeshake verifies that every published entrypoint of a package
// can be tree-shaken: bundling it with all dependencies external must
// produce no module-level side effects.
//
// Each entrypoint is bundled through a Bundler, whose diagnostic stream is
// filtered for side-effect reports. A reported side effect flags the
// entrypoint unless its compiled module carries the suppression marker. The
// outcome is a Report; by default it is advisory, and a strict verifier
// turns flagged entrypoints into an error.
package treeshake
