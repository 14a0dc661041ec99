// Package report turns the state of a validated form into a [Result] and
// writes it for people or machines.
//
// Each field that failed becomes an error [Issue] carrying its messages.
// Enabled fields that never ran become warnings and disabled fields are
// noted as info. Field values are redacted with the logging package's
// rules before they are stored, so a Result is safe to print or persist.
//
//	res := report.FromForm(f, report.NewRunID())
//	err := report.NewReporter(os.Stdout, report.FormatText).Report(res)
package report
