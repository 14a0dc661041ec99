package validation

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Status is the outcome of validating a field or a whole form.
type Status int

const (
	// StatusNone means the field was never validated or has been cleared.
	StatusNone Status = iota
	// StatusSuccess means the last run accepted the value.
	StatusSuccess
	// StatusError means the last run rejected the value.
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusNone:
		return "none"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
// An empty string decodes to StatusNone.
func (s *Status) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "", "none":
		*s = StatusNone
	case "success":
		*s = StatusSuccess
	case "error":
		*s = StatusError
	default:
		return errors.Newf("unknown validation status %q", string(text))
	}
	return nil
}

// Dominant returns whichever of a and b ranks higher in the aggregation
// order Error > Success > None.
func Dominant(a, b Status) Status {
	if b > a {
		return b
	}
	return a
}

// Mode controls when an Aggregator re-derives its status.
type Mode int

const (
	// ModeAuto validates a field as soon as its value changes and recomputes
	// the aggregate whenever a unit's status changes.
	ModeAuto Mode = iota
	// ModeManual only validates on explicit request.
	ModeManual
)

func (m Mode) String() string {
	switch m {
	case ModeAuto:
		return "auto"
	case ModeManual:
		return "manual"
	default:
		return "unknown"
	}
}

// ParseMode converts "auto" or "manual" (case-insensitive) into a Mode.
// An empty string selects ModeAuto.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ModeAuto, nil
	case "manual":
		return ModeManual, nil
	default:
		return ModeAuto, errors.Wrapf(ErrInvalidMode, "%q", s)
	}
}

// HandlerKind selects the validation strategy a Unit runs.
type HandlerKind int

const (
	// HandlerValidator delegates to user-supplied validator functions or a Checker.
	HandlerValidator HandlerKind = iota
	// HandlerPattern matches the value's text form against a regular expression.
	HandlerPattern
	// HandlerAnnotation asks an AnnotationSource for the bound field's errors.
	HandlerAnnotation
)

func (k HandlerKind) String() string {
	switch k {
	case HandlerValidator:
		return "validator"
	case HandlerPattern:
		return "pattern"
	case HandlerAnnotation:
		return "annotation"
	default:
		return "unknown"
	}
}

// ParseHandlerKind converts a handler name into a HandlerKind.
// An empty string selects HandlerValidator.
func ParseHandlerKind(s string) (HandlerKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "validator", "custom":
		return HandlerValidator, nil
	case "pattern", "regex":
		return HandlerPattern, nil
	case "annotation", "tag":
		return HandlerAnnotation, nil
	default:
		return HandlerKind(-1), errors.Wrapf(ErrUnknownHandler, "%q", s)
	}
}
