package treeshake

import "errors"

var (
	// ErrBundlerRequired indicates a verifier was constructed without a
	// bundler.
	ErrBundlerRequired = errors.New("bundler is required")

	// ErrSideEffects indicates a strict verification found entrypoints
	// with unsuppressed side effects.
	ErrSideEffects = errors.New("entrypoints with unexpected side effects")
)
