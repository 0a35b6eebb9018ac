package secrets

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSourceFiles indicates the compiler configuration resolved to an
	// empty source set.
	ErrNoSourceFiles = errors.New("compiler config resolves to no source files")

	// ErrUnterminatedClass indicates a class declaration with no body.
	ErrUnterminatedClass = errors.New("unterminated class declaration")
)

// ValidationError reports a secret identifier that violates the naming
// convention, and the file that declared it.
type ValidationError struct {
	File       string
	Identifier string
	Reason     string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid secret identifier %q in %s: %s", e.Identifier, e.File, e.Reason)
}
