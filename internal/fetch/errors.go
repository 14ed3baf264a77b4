package fetch

import (
	"errors"
	"fmt"
)

// Sentinel errors for the fetch package.
var (
	// ErrInvalidEntry indicates an entry path that is empty, absolute,
	// escapes its root or looks like a command-line flag.
	ErrInvalidEntry = errors.New("invalid fetch entry")

	// ErrSparseUnsupported indicates the system git is too old for a sparse clone.
	ErrSparseUnsupported = errors.New("sparse clone not supported by system git")

	// ErrNoStrategies indicates a Fetcher configured without clone strategies.
	ErrNoStrategies = errors.New("no clone strategies configured")
)

// FetchError reports a fetch that could not populate the target. Err holds
// the cause of every failed clone attempt, joined in attempt order.
type FetchError struct {
	Repo string
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch templates from %s: %v", e.Repo, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
