// Package config loads the settings of create-lynx-app from an optional
// YAML file and the environment. Settings are read once at startup and
// passed down explicitly; no other package reads environment variables.
package config

import (
	"errors"
	"fmt"
)

// Sentinel errors for configuration operations.
var (
	// ErrInvalidConfig indicates a setting with an unusable value.
	ErrInvalidConfig = errors.New("config: invalid configuration")

	// ErrReadConfig indicates the config file exists but could not be read.
	ErrReadConfig = errors.New("config: cannot read config file")
)

// ValidationError reports one invalid setting.
type ValidationError struct {
	Key     string
	Message string
	Value   any
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s (got: %v)", e.Key, e.Message, e.Value)
}

// Unwrap lets errors.Is match ErrInvalidConfig.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfig
}
