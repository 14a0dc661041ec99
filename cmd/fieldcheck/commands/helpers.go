package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/thoreinstein/fieldcheck/cmd/fieldcheck/commands/flags"
	"github.com/thoreinstein/fieldcheck/internal/cli"
	"github.com/thoreinstein/fieldcheck/internal/config"
	"github.com/thoreinstein/fieldcheck/internal/errors"
	"github.com/thoreinstein/fieldcheck/internal/form"
	"github.com/thoreinstein/fieldcheck/internal/logging"
	"github.com/thoreinstein/fieldcheck/internal/report"
)

// interactive reports whether a picker can be shown. Tests override it.
var interactive = func() bool {
	return logging.IsTTY(os.Stdout) && logging.IsTTY(os.Stderr)
}

// loadDefinition resolves the form named by args, or picks one.
func loadDefinition(args []string) (*form.Definition, error) {
	catalog, err := cli.ResolveCatalog(flags.FormsDir())
	if err != nil {
		return nil, errors.NewSystemError(err, "check the forms_dir setting")
	}

	var name string
	if len(args) > 0 {
		name = args[0]
	}
	def, err := cli.ResolveForm(catalog, name, interactive())
	switch {
	case err == nil:
		return def, nil
	case errors.Is(err, errors.ErrNotFound), errors.Is(err, errors.ErrInvalidForm),
		errors.Is(err, cli.ErrFormRequired), errors.Is(err, cli.ErrNoForms):
		return nil, errors.NewUserError(err, "")
	default:
		return nil, err
	}
}

// loadValues reads the values file, or returns empty values for "".
func loadValues(path string) (form.Values, error) {
	if path == "" {
		return form.Values{}, nil
	}
	values, err := form.LoadValues(path)
	if err != nil {
		return nil, errors.NewUserError(errors.Wrap(err, "loading values"), "Values files must be YAML, JSON or TOML")
	}
	return values, nil
}

// buildOptions maps configuration onto form.Build options. The config's
// mode applies to definitions that do not set their own.
func buildOptions(cfg *config.Config, logger *slog.Logger) ([]form.BuildOption, error) {
	mode, err := cfg.ValidationMode()
	if err != nil {
		return nil, errors.NewConfigError(err)
	}
	return []form.BuildOption{
		form.WithLogger(logger),
		form.WithDefaultMode(mode),
		form.WithDefaultMissingFieldsMessage(cfg.MissingFieldsMessage),
	}, nil
}

// newReporter picks the report format and color for w.
func newReporter(w io.Writer, asJSON bool) *report.Reporter {
	format := report.FormatText
	if asJSON || flags.Config().Output == config.OutputJSON {
		format = report.FormatJSON
	}
	return report.NewReporter(w, format, report.WithColor(colorEnabled(w)))
}

// colorEnabled applies --color and the color config key to w.
func colorEnabled(w io.Writer) bool {
	mode, err := logging.ParseColorMode(flags.ColorMode())
	if err != nil {
		mode = logging.ColorAuto
	}
	return mode.Enabled(w)
}
