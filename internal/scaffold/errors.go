package scaffold

import (
	"errors"
	"fmt"
)

// Sentinel errors for the scaffold package.
var (
	// ErrUnknownPlatform indicates a platform name other than ios or android.
	ErrUnknownPlatform = errors.New("unknown platform")

	// ErrNoPlatforms indicates a configuration without any platform.
	ErrNoPlatforms = errors.New("at least one platform is required")

	// ErrTargetNotDirectory indicates the target path exists as a file.
	ErrTargetNotDirectory = errors.New("target exists and is not a directory")

	// ErrMissingTemplate indicates the manifest lacks a template the
	// configuration asks for.
	ErrMissingTemplate = errors.New("template not described by manifest")
)

// StageError reports the stage a scaffolding run failed to reach.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("scaffold %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
