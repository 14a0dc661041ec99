package report

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/thoreinstein/fieldcheck/internal/errors"
	"github.com/thoreinstein/fieldcheck/internal/form"
	"github.com/thoreinstein/fieldcheck/internal/logging"
	"github.com/thoreinstein/fieldcheck/pkg/validation"
)

// Severity represents the impact of an issue.
type Severity int

const (
	// SeverityError marks a field that failed validation.
	SeverityError Severity = iota
	// SeverityWarning marks an enabled field that has not been validated.
	SeverityWarning
	// SeverityInfo marks a note that needs no action, such as a disabled field.
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// MarshalText encodes the severity by name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a severity name.
func (s *Severity) UnmarshalText(text []byte) error {
	switch string(text) {
	case "error":
		*s = SeverityError
	case "warning":
		*s = SeverityWarning
	case "info":
		*s = SeverityInfo
	default:
		return errors.Newf("unknown severity %q", text)
	}
	return nil
}

// Issue is one finding about one field.
type Issue struct {
	Severity Severity          `json:"severity"`
	Field    string            `json:"field,omitempty"`
	Label    string            `json:"label,omitempty"`
	Message  string            `json:"message"`
	Value    string            `json:"value,omitempty"`
	Context  map[string]string `json:"context,omitempty"`
}

// Error implements the error interface.
func (i Issue) Error() string {
	var sb strings.Builder
	sb.WriteString(i.Severity.String())
	sb.WriteString(": ")
	if i.Field != "" {
		fmt.Fprintf(&sb, "field %q: ", i.Field)
	}
	sb.WriteString(i.Message)
	if i.Value != "" {
		fmt.Fprintf(&sb, " (got %s)", i.Value)
	}
	return sb.String()
}

// Result is a snapshot of one validation run.
type Result struct {
	RunID    string            `json:"run_id"`
	Form     string            `json:"form"`
	Status   validation.Status `json:"status"`
	Valid    bool              `json:"valid"`
	Fields   int               `json:"fields"`
	Messages []string          `json:"messages,omitempty"`
	Issues   []Issue           `json:"issues,omitempty"`
}

// NewRunID returns a fresh identifier for a validation run.
func NewRunID() string {
	return uuid.NewString()
}

// FromForm snapshots f after a run. Valid is true when no field is in error.
func FromForm(f *form.Form, runID string) *Result {
	agg := f.Aggregator
	res := &Result{
		RunID:    runID,
		Form:     f.Definition.Name,
		Status:   agg.Status(),
		Fields:   agg.Len(),
		Messages: agg.Messages(),
	}

	for _, u := range agg.Units() {
		fd, _ := f.Definition.Field(u.Name())
		value := displayValue(u.Name(), f.Values.Get(u.Name()))
		ctx := map[string]string{"handler": u.Kind().String()}

		switch {
		case u.Disabled():
			res.add(Issue{Severity: SeverityInfo, Field: u.Name(), Label: fd.Label, Message: "disabled, not validated", Context: ctx})
		case u.Status() == validation.StatusError:
			for _, msg := range u.Messages() {
				res.add(Issue{Severity: SeverityError, Field: u.Name(), Label: fd.Label, Message: msg, Value: value, Context: ctx})
			}
		case u.Status() == validation.StatusNone:
			res.add(Issue{Severity: SeverityWarning, Field: u.Name(), Label: fd.Label, Message: "not validated", Context: ctx})
		}
	}
	res.Valid = !res.HasErrors()
	return res
}

func displayValue(name string, v any) string {
	if v == nil {
		return ""
	}
	return logging.Redact(name, fmt.Sprint(v))
}

func (r *Result) add(i Issue) {
	r.Issues = append(r.Issues, i)
}

// HasErrors returns true if any issue has SeverityError.
func (r *Result) HasErrors() bool {
	return len(r.bySeverity(SeverityError)) > 0
}

// HasWarnings returns true if any issue has SeverityWarning.
func (r *Result) HasWarnings() bool {
	return len(r.bySeverity(SeverityWarning)) > 0
}

// Errors returns the issues with SeverityError.
func (r *Result) Errors() []Issue {
	return r.bySeverity(SeverityError)
}

// Warnings returns the issues with SeverityWarning.
func (r *Result) Warnings() []Issue {
	return r.bySeverity(SeverityWarning)
}

// FailedFields returns the names of fields with errors, without repeats.
func (r *Result) FailedFields() []string {
	var out []string
	seen := make(map[string]bool)
	for _, i := range r.Errors() {
		if !seen[i.Field] {
			seen[i.Field] = true
			out = append(out, i.Field)
		}
	}
	return out
}

func (r *Result) bySeverity(s Severity) []Issue {
	if r == nil {
		return nil
	}
	var out []Issue
	for _, i := range r.Issues {
		if i.Severity == s {
			out = append(out, i)
		}
	}
	return out
}
