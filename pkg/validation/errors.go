package validation

import "github.com/cockroachdb/errors"

// Configuration errors. They are returned immediately from constructors and
// attach calls and are never produced by a validation run.
var (
	// ErrUnknownHandler indicates a HandlerKind the factory cannot build.
	ErrUnknownHandler = errors.New("unknown validation handler")

	// ErrConflictingBinding indicates both a model and an explicit binding
	// context were supplied to an Aggregator.
	ErrConflictingBinding = errors.New("aggregator requires a model or a binding context, but not both")

	// ErrInvalidPattern indicates a pattern that does not compile.
	ErrInvalidPattern = errors.New("invalid validation pattern")

	// ErrInvalidMode indicates an unrecognized validation mode name.
	ErrInvalidMode = errors.New("invalid validation mode")
)
