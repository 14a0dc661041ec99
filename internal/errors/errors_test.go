package errors

import (
	"fmt"
	"testing"
)

func TestExitError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ExitError
		want string
	}{
		{
			name: "with underlying error",
			err:  NewExitError(ErrNotFound, ExitUser),
			want: "resource not found",
		},
		{
			name: "with wrapped error",
			err:  NewExitError(Wrap(ErrInvalidForm, "loading form signup"), ExitUser),
			want: "loading form signup: invalid form definition",
		},
		{
			name: "nil underlying error",
			err:  NewExitError(nil, ExitSystem),
			want: "exit code 2",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("ExitError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExitError_Is(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{"sentinel", NewExitError(ErrNotFound, ExitUser), ErrNotFound, true},
		{"through fmt wrapping", NewUserError(fmt.Errorf("form %q: %w", "signup", ErrMissingName), ""), ErrMissingName, true},
		{"through cockroach wrapping", Wrapf(NewConfigError(ErrInvalidConfig), "startup"), ErrInvalidConfig, true},
		{"different sentinel", NewExitError(ErrNotFound, ExitUser), ErrInvalidConfig, false},
		{"nil underlying", NewExitError(nil, ExitUser), ErrNotFound, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.target); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"user error", NewUserError(ErrInvalidForm, "fix it"), ExitUser},
		{"wrapped system error", Wrap(NewSystemError(New("disk full"), ""), "saving"), ExitSystem},
		{"validation failure", NewValidationError("signup", 2), ExitUser},
		{"plain error", New("boom"), ExitSystem},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("signup", 3)
	if !Is(err, ErrValidationFailed) {
		t.Error("NewValidationError() should wrap ErrValidationFailed")
	}
	want := `form "signup": 3 field(s) failed: validation failed`
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if err.Suggestion != "" {
		t.Errorf("Suggestion = %q, want empty", err.Suggestion)
	}
}

func TestConstructors(t *testing.T) {
	base := New("oops")
	tests := []struct {
		name           string
		err            *ExitError
		wantCode       int
		wantSuggestion string
	}{
		{"with suggestion", NewExitErrorWithSuggestion(base, 3, "try this"), 3, "try this"},
		{"user", NewUserError(base, "check input"), ExitUser, "check input"},
		{"system", NewSystemError(base, "check logs"), ExitSystem, "check logs"},
		{"config", NewConfigError(base), ExitUser, "Run: fieldcheck config list"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Err != base {
				t.Errorf("Err = %v, want %v", tt.err.Err, base)
			}
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %d, want %d", tt.err.Code, tt.wantCode)
			}
			if tt.err.Suggestion != tt.wantSuggestion {
				t.Errorf("Suggestion = %q, want %q", tt.err.Suggestion, tt.wantSuggestion)
			}
		})
	}
}

func TestHints(t *testing.T) {
	err := WithHint(ErrInvalidConfig, "set FIELDCHECK_MODE to auto or manual")
	hints := GetAllHints(Wrap(err, "loading config"))
	if len(hints) != 1 || hints[0] != "set FIELDCHECK_MODE to auto or manual" {
		t.Errorf("GetAllHints() = %v", hints)
	}
}
