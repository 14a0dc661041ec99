package validation

import "context"

// ValidatorFunc is a synchronous custom validator.
type ValidatorFunc func(value any) Result

// AsyncValidatorFunc is a custom validator that may suspend, for example on a
// network lookup. It must return promptly with ctx.Err() once ctx is done.
type AsyncValidatorFunc func(ctx context.Context, value any) (Result, error)

// Checker is the richer custom validator capability: it reports its own
// status and error text after each check.
type Checker interface {
	Check(value any) bool
	CheckAsync(ctx context.Context, value any) (bool, error)
	ErrorMessage() string
	Status() Status
}

// MessagesFunc adapts a plain callback that returns the failure messages for
// a value. No messages means the value is valid.
func MessagesFunc(fn func(value any) []string) ValidatorFunc {
	return func(value any) Result {
		msgs := fn(value)
		if len(msgs) == 0 {
			return Success()
		}
		return Failure(msgs...)
	}
}

// PredicateFunc adapts a boolean predicate with a fixed failure message.
func PredicateFunc(fn func(value any) bool, message string) ValidatorFunc {
	return func(value any) Result {
		if fn(value) {
			return Success()
		}
		return Failure(message)
	}
}
