package build

import "errors"

var (
	// ErrConfigRequired indicates a pipeline was constructed without a
	// configuration.
	ErrConfigRequired = errors.New("configuration is required")

	// ErrCompilerRequired indicates a nil compiler was supplied.
	ErrCompilerRequired = errors.New("compiler is required")
)
