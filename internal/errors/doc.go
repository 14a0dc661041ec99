// Package errors provides error handling conventions for the fieldcheck CLI.
//
// It re-exports the wrapping helpers of github.com/cockroachdb/errors so
// callers need a single import, defines sentinel errors for common failure
// conditions, and an ExitError type that carries a process exit code.
//
// # Sentinel Errors
//
// Sentinel errors allow callers to check for specific error conditions
// using [Is]:
//
//	if errors.Is(err, errors.ErrNotFound) {
//	    // handle unknown form
//	}
//
// # Exit Codes
//
//   - ExitSuccess (0): every field passed
//   - ExitUser (1): a field failed validation, or the input was unusable
//   - ExitSystem (2): I/O, permissions or another environment fault
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and optional
// suggestion:
//
//	err := errors.NewUserError(errors.ErrInvalidForm, "Run: fieldcheck form show signup")
//	var exitErr *errors.ExitError
//	if errors.As(err, &exitErr) {
//	    os.Exit(exitErr.Code)
//	}
package errors
