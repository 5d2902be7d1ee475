package config

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat indicates a config path with an unrecognized
// extension.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// ErrInvalidValue indicates a config field with an out-of-range value.
var ErrInvalidValue = errors.New("invalid config value")

// ParseError describes a syntax error in a configuration file.
type ParseError struct {
	Path    string
	Message string
	Err     error
}

// Error implements error.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying parser error.
func (e *ParseError) Unwrap() error { return e.Err }
