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

import "errors"

// Configuration validation errors
var (
	// ErrNoEntrypoints indicates the configuration declares no entrypoints.
	ErrNoEntrypoints = errors.New("config declares no entrypoints")

	// ErrInvalidEntrypointKey indicates an entrypoint key is not a clean,
	// dot-free, slash-separated path.
	ErrInvalidEntrypointKey = errors.New("invalid entrypoint key")

	// ErrEmptyEntrypointSource indicates an entrypoint maps to an empty
	// source module path.
	ErrEmptyEntrypointSource = errors.New("entrypoint source path is empty")

	// ErrUnknownEntrypoint indicates an exclusion set references a key that
	// is not declared in the entrypoints map.
	ErrUnknownEntrypoint = errors.New("unknown entrypoint")

	// ErrInvalidAliasEntry indicates an import alias entry is missing its
	// modules, alias, or path.
	ErrInvalidAliasEntry = errors.New("invalid import map alias entry")

	// ErrInvalidPackageSuffix indicates the package suffix contains
	// whitespace or path separators.
	ErrInvalidPackageSuffix = errors.New("invalid package suffix")
)
