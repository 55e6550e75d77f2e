package repo

import (
	"errors"
	"fmt"
)

// UpdateError reports a failed fast-forward of an existing checkout.
// Non-fast-forward divergence and transient network failures both land here;
// the existing working copy is left untouched and remains usable.
type UpdateError struct {
	Dir string
	Err error
}

func (e *UpdateError) Error() string {
	return fmt.Sprintf("repository update failed for %s: %v", e.Dir, e.Err)
}

func (e *UpdateError) Unwrap() error {
	return e.Err
}

// IsUpdateError reports whether err stems from a tolerated checkout update failure.
func IsUpdateError(err error) bool {
	var updateErr *UpdateError
	return errors.As(err, &updateErr)
}
