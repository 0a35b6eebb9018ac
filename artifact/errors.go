package artifact

import (
	"errors"
	"fmt"
)

// ErrMissingSource indicates an entrypoint whose source module does not
// exist under src/.
var ErrMissingSource = errors.New("entrypoint source file not found")

// MissingSourceError reports which entrypoint is broken and where its
// source was expected.
type MissingSourceError struct {
	Entrypoint string
	Source     string
}

func (e *MissingSourceError) Error() string {
	return fmt.Sprintf("entrypoint %q: source file not found for %q", e.Entrypoint, e.Source)
}

func (e *MissingSourceError) Unwrap() error {
	return ErrMissingSource
}
