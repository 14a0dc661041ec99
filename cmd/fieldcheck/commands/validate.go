package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/fieldcheck/cmd/fieldcheck/commands/flags"
	"github.com/thoreinstein/fieldcheck/internal/errors"
	"github.com/thoreinstein/fieldcheck/internal/form"
	"github.com/thoreinstein/fieldcheck/internal/logging"
	"github.com/thoreinstein/fieldcheck/internal/report"
	"github.com/thoreinstein/fieldcheck/pkg/validation"
)

var (
	validateValues  string
	validateJSON    bool
	validateTimeout time.Duration
)

func init() {
	validateCmd.Flags().StringVarP(&validateValues, "values", "f", "", "values file (YAML, JSON or TOML)")
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "output the report as JSON")
	validateCmd.Flags().DurationVar(&validateTimeout, "timeout", 0, "abort validation after this long (default from config)")
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate [form]",
	Short: "Validate a set of values against a form",
	Long: `Validate every enabled field of a form and print a report.

The form is looked up by name in the forms directories, or given as a path.
Without a form argument an interactive picker opens when running in a
terminal. Values are read from a YAML, JSON or TOML file; fields without a
value are validated as empty.

Exit status is 0 when the form is valid, 1 when a field fails or the input
is unusable, and 2 on system errors.`,
	Example: `  # Validate a values file
  fieldcheck validate signup --values answers.yaml

  # Machine-readable report
  fieldcheck validate ./forms/signup.toml -f answers.json --json

  See Also: fieldcheck fill, fieldcheck form list`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	logger := logging.FromContext(cmd.Context())
	cfg := flags.Config()

	def, err := loadDefinition(args)
	if err != nil {
		return err
	}
	values, err := loadValues(validateValues)
	if err != nil {
		return err
	}

	timeout := validateTimeout
	if timeout <= 0 {
		timeout = cfg.Timeout
	}
	ctx := cmd.Context()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	// Manual mode: nothing runs until ValidateAll, whatever the definition says.
	opts, err := buildOptions(cfg, logger)
	if err != nil {
		return err
	}
	opts = append(opts, form.WithMode(validation.ModeManual))
	f, err := form.Build(ctx, def, values, opts...)
	if err != nil {
		return errors.NewUserError(err, "Run: fieldcheck form show "+def.Name)
	}

	ok, err := f.Aggregator.ValidateAll(ctx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return errors.NewUserError(err, "Raise --timeout or the timeout config key")
		}
		return errors.NewSystemError(err, "")
	}

	res := report.FromForm(f, report.NewRunID())
	logger.Info("form validated", "form", def.Name, "run_id", res.RunID, "valid", ok, "status", res.Status)

	if err := newReporter(cmd.OutOrStdout(), validateJSON).Report(res); err != nil {
		return errors.NewSystemError(err, "")
	}
	if !ok {
		return errors.NewValidationError(def.Name, len(res.FailedFields()))
	}
	return nil
}
