package motion

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig indicates a motion parameter outside its valid range.
var ErrInvalidConfig = errors.New("motion: invalid config")

// ConfigError names the offending field of a rejected Config.
type ConfigError struct {
	Field string
	Value float64
	Want  string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%v: %s=%g, want %s", ErrInvalidConfig, e.Field, e.Value, e.Want)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}
