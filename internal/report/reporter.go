package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/thoreinstein/fieldcheck/internal/errors"
)

// Format specifies the output format for reports.
type Format string

const (
	// FormatText produces human-readable text output.
	FormatText Format = "text"
	// FormatJSON produces machine-readable JSON output.
	FormatJSON Format = "json"
)

// maxValueWidth bounds how much of a field value is echoed in text output.
const maxValueWidth = 50

// Reporter formats and writes results.
type Reporter struct {
	out    io.Writer
	format Format
	color  bool
}

// ReporterOption configures a Reporter.
type ReporterOption func(*Reporter)

// WithColor enables or disables ANSI colors in text output.
func WithColor(enabled bool) ReporterOption {
	return func(r *Reporter) {
		r.color = enabled
	}
}

// NewReporter creates a Reporter. Colors are off unless WithColor enables them.
func NewReporter(out io.Writer, format Format, opts ...ReporterOption) *Reporter {
	r := &Reporter{out: out, format: format}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Report writes the result to the output.
func (r *Reporter) Report(result *Result) error {
	if result == nil {
		return nil
	}

	switch r.format {
	case FormatJSON:
		return r.reportJSON(result)
	default:
		return r.reportText(result)
	}
}

func (r *Reporter) reportJSON(result *Result) error {
	encoder := json.NewEncoder(r.out)
	encoder.SetIndent("", "  ")
	return errors.Wrap(encoder.Encode(result), "encoding JSON report")
}

func (r *Reporter) paint(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if r.color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

func (r *Reporter) reportText(result *Result) error {
	errs := result.Errors()
	warnings := result.Warnings()

	if len(errs) == 0 {
		fmt.Fprintf(r.out, "%s %s: valid (%d field(s))\n",
			r.paint(color.FgGreen).Sprint("✓"), result.Form, result.Fields)
	} else {
		fmt.Fprintf(r.out, "%s %s: %s\n",
			r.paint(color.FgRed).Sprint("✗"), result.Form,
			r.paint(color.FgRed).Sprintf("%d field(s) failed", len(result.FailedFields())))
	}

	if len(errs) > 0 {
		fmt.Fprintln(r.out, "\nErrors:")
		for _, i := range errs {
			r.printIssue(i, color.FgRed)
		}
	}
	if len(warnings) > 0 {
		fmt.Fprintln(r.out, "\nWarnings:")
		for _, i := range warnings {
			r.printIssue(i, color.FgYellow)
		}
	}
	return nil
}

// printIssue writes "  • field: message (context) [value]".
func (r *Reporter) printIssue(i Issue, attr color.Attribute) {
	var sb strings.Builder
	sb.WriteString("  • ")

	name := i.Label
	if name == "" {
		name = i.Field
	}
	if name != "" {
		sb.WriteString(r.paint(attr).Sprint(name))
		sb.WriteString(": ")
	}
	sb.WriteString(i.Message)

	dim := r.paint(color.FgHiBlack)
	if len(i.Context) > 0 {
		parts := make([]string, 0, len(i.Context))
		for k, v := range i.Context {
			parts = append(parts, k+"="+v)
		}
		sort.Strings(parts)
		sb.WriteString(" ")
		sb.WriteString(dim.Sprintf("(%s)", strings.Join(parts, ", ")))
	}

	if i.Value != "" {
		v := i.Value
		if len(v) > maxValueWidth {
			v = v[:maxValueWidth-3] + "..."
		}
		sb.WriteString(dim.Sprintf(" [%s]", v))
	}

	fmt.Fprintln(r.out, sb.String())
}
