package manifest

import "errors"

var (
	// ErrNotObject indicates a document whose root is not a JSON object.
	ErrNotObject = errors.New("manifest root is not a JSON object")

	// ErrNoExports indicates the manifest has no usable exports member.
	ErrNoExports = errors.New("manifest has no exports object")

	// ErrNoName indicates the manifest has no name member.
	ErrNoName = errors.New("manifest has no name")
)
