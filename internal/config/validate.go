package config

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/fieldcheck/internal/logging"
	"github.com/thoreinstein/fieldcheck/pkg/validation"
)

// Validation errors for configuration fields.
var (
	// ErrUnsupportedVersion indicates a version this build cannot read.
	ErrUnsupportedVersion = errors.New("unsupported config version")

	// ErrInvalidValue indicates a key holds a value outside its allowed set.
	ErrInvalidValue = errors.New("invalid value")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")
)

// Validate checks a Config for validity.
// Returns nil if valid, or one error per offending key.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Version != CurrentVersion {
		errs = append(errs, &FieldError{Field: "version", Value: strconv.Itoa(cfg.Version), Err: ErrUnsupportedVersion})
	}

	if _, err := validation.ParseMode(cfg.Mode); err != nil {
		errs = append(errs, &FieldError{Field: "mode", Value: cfg.Mode, Err: ErrInvalidValue})
	}

	switch strings.ToLower(cfg.Output) {
	case OutputText, OutputJSON:
	default:
		errs = append(errs, &FieldError{Field: "output", Value: cfg.Output, Err: ErrInvalidValue})
	}

	if _, err := logging.ParseColorMode(cfg.Color); err != nil {
		errs = append(errs, &FieldError{Field: "color", Value: cfg.Color, Err: ErrInvalidValue})
	}

	if cfg.Timeout < 0 {
		errs = append(errs, &FieldError{Field: "timeout", Value: cfg.Timeout.String(), Err: ErrInvalidValue})
	}

	if cfg.FormsDir != "" {
		if err := validatePath(cfg.FormsDir); err != nil {
			errs = append(errs, &PathError{Field: "forms_dir", Path: cfg.FormsDir, Err: err})
		}
	}

	return errs
}

// validatePath checks that a path is well-formed. It does not check that it exists.
func validatePath(path string) error {
	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}
	cleaned := filepath.Clean(path)
	if cleaned == "" || cleaned == "." {
		return ErrInvalidPath
	}
	return nil
}

// FieldError reports a key whose value is not allowed.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Value
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// PathError represents an error for a specific path field.
type PathError struct {
	Field string
	Path  string
	Err   error
}

func (e *PathError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Path
}

func (e *PathError) Unwrap() error {
	return e.Err
}
