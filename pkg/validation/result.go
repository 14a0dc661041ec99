package validation

// Default messages used when a run fails without saying why.
const (
	// PatternMismatchMessage is reported by the pattern handler on a failed match.
	PatternMismatchMessage = "Value does not match the required pattern."

	// DefaultUnitMessage is exposed by a failed unit whose handler supplied no message.
	DefaultUnitMessage = "This field has an error."

	// DefaultMissingFieldsMessage is appended once to an aggregate error when
	// at least one failed unit carries no message of its own.
	DefaultMissingFieldsMessage = "one or more fields have an error."
)

// Result is what a handler run produces.
type Result struct {
	Status   Status
	Messages []string
}

// Success returns a passing Result.
func Success() Result {
	return Result{Status: StatusSuccess}
}

// Failure returns a failing Result carrying messages. Empty messages are dropped.
func Failure(messages ...string) Result {
	var kept []string
	for _, m := range messages {
		if m != "" {
			kept = append(kept, m)
		}
	}
	return Result{Status: StatusError, Messages: kept}
}

// None returns a Result that leaves the field unvalidated.
func None() Result {
	return Result{Status: StatusNone}
}

// Failed reports whether r is an error outcome.
func (r Result) Failed() bool {
	return r.Status == StatusError
}
