package steam

import (
	"errors"
	"fmt"
)

// ErrEmptyLibrary is returned when the owned-games listing is empty,
// which usually means the profile is private
var ErrEmptyLibrary = errors.New("profile private or empty")

// ErrRobotsDisallowed is returned when robots compliance is enabled and
// the target host forbids the path
var ErrRobotsDisallowed = errors.New("disallowed by robots.txt")

// IdentityError means a handle could not be resolved to a numeric id.
// Always fatal: nothing can be scanned without an identity.
type IdentityError struct {
	Handle string
	Err    error
}

func (e *IdentityError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("resolve %q: %v", e.Handle, e.Err)
	}
	return fmt.Sprintf("resolve %q: profile not found", e.Handle)
}

func (e *IdentityError) Unwrap() error { return e.Err }

// TransientError means a request failed after exhausting the bounded
// retry budget. Rate limiting never produces this: 429 responses are
// retried without bound and never count against the budget.
type TransientError struct {
	URL      string
	Attempts int
	Err      error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("fetch %s: giving up after %d attempts: %v", e.URL, e.Attempts, e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }
