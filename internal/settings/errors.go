package settings

import (
	"errors"
	"fmt"
)

var (
	// ErrConfigNotFound means the settings file does not exist.
	ErrConfigNotFound = errors.New("settings file not found")
	// ErrBadConfigFormat means the settings file exists but is unusable.
	ErrBadConfigFormat = errors.New("bad settings file format")
)

// ConfigError reports why a settings file could not be used. It matches
// its Kind (ErrConfigNotFound or ErrBadConfigFormat) with errors.Is.
type ConfigError struct {
	Path string
	Kind error
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Path, e.Kind)
	}

	return fmt.Sprintf("%s: %v: %v", e.Path, e.Kind, e.Err)
}

func (e *ConfigError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}

	return []error{e.Kind, e.Err}
}

func badFormat(path string, err error) *ConfigError {
	return &ConfigError{Path: path, Kind: ErrBadConfigFormat, Err: err}
}
