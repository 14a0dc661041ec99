package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/fieldcheck/cmd/fieldcheck/commands/flags"
	"github.com/thoreinstein/fieldcheck/internal/cli"
	"github.com/thoreinstein/fieldcheck/internal/config"
	"github.com/thoreinstein/fieldcheck/internal/doctor"
	"github.com/thoreinstein/fieldcheck/internal/errors"
	"github.com/thoreinstein/fieldcheck/internal/logging"
)

var (
	doctorJSON bool
	doctorAll  bool
	doctorFix  bool
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "output results as JSON")
	doctorCmd.Flags().BoolVarP(&doctorAll, "all", "a", false, "show passed checks too")
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "repair fixable problems, then check again")
	doctorCmd.MarkFlagsMutuallyExclusive("json", "all")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose configuration and form problems",
	Long: `Run diagnostic checks on the config file, the forms directories and
every form definition.

Exit codes:
  0 - No errors (warnings may be present)
  1 - At least one check failed`,
	Example: `  # Show problems
  fieldcheck doctor

  # Show every check
  fieldcheck doctor --all

  # Make world-writable forms private again
  fieldcheck doctor --fix`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	logger := logging.FromContext(cmd.Context())
	out := cmd.OutOrStdout()

	catalog, err := cli.ResolveCatalog(flags.FormsDir())
	if err != nil {
		return errors.NewSystemError(err, "check the forms_dir setting")
	}
	dirs := catalog.Dirs()

	runner := doctor.NewRunner(
		doctor.NewConfigCheck(doctorConfigPath()),
		doctor.NewFormsDirCheck(dirs),
		doctor.NewFormsCheck(catalog),
		doctor.NewPermissionCheck(dirs),
		doctor.EditorCheck{},
	)

	report := runner.Run()
	logger.Debug("doctor run", "run_id", report.RunID, "errors", report.Summary.Errors, "warnings", report.Summary.Warnings)

	if doctorFix {
		fixes := runner.Fix()
		if !doctorJSON {
			printFixes(out, fixes)
		}
		if len(fixes) > 0 {
			report = runner.Run()
		}
	}

	if err := outputDoctorReport(out, report); err != nil {
		return err
	}

	if report.HasErrors() {
		return errors.NewUserError(
			errors.Newf("%d check(s) failed", report.Summary.Errors),
			"Run: fieldcheck doctor --all",
		)
	}
	return nil
}

// doctorConfigPath returns the config file in effect, or "" when the
// defaults apply.
func doctorConfigPath() string {
	if used := config.Used(); used != "" {
		return used
	}
	return configFile
}

func outputDoctorReport(w io.Writer, report *doctor.Report) error {
	if quiet {
		return nil
	}
	if doctorJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return errors.Wrap(err, "encoding JSON")
		}
		return nil
	}
	printDoctorText(w, report)
	return nil
}

func printDoctorText(w io.Writer, report *doctor.Report) {
	hasOutput := false
	for _, result := range report.Results {
		problem := result.Status == doctor.SeverityError || result.Status == doctor.SeverityWarning
		if !doctorAll && !problem {
			continue
		}

		hasOutput = true
		fmt.Fprintf(w, "%s [%s] %s: %s\n", statusIcon(w, result.Status), result.Category, result.Name, result.Message)
		if result.FixHint != "" && problem {
			fmt.Fprintf(w, "  hint: %s\n", result.FixHint)
		}
	}

	if hasOutput {
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "Summary: %d passed, %d info, %d warnings, %d errors\n",
		report.Summary.Passed, report.Summary.Info, report.Summary.Warnings, report.Summary.Errors)
}

func printFixes(w io.Writer, fixes []doctor.FixResult) {
	if quiet {
		return
	}
	if len(fixes) == 0 {
		fmt.Fprintln(w, "Nothing to fix")
		return
	}
	for _, f := range fixes {
		if f.Fixed {
			fmt.Fprintf(w, "%s fixed %s: %s\n", statusIcon(w, doctor.SeverityPass), f.Path, f.Description)
			continue
		}
		fmt.Fprintf(w, "%s could not fix %s: %v\n", statusIcon(w, doctor.SeverityError), f.Path, f.Error)
	}
	fmt.Fprintln(w)
}

func statusIcon(w io.Writer, s doctor.Severity) string {
	var (
		icon string
		attr color.Attribute
	)
	switch s {
	case doctor.SeverityPass:
		icon, attr = "✓", color.FgGreen
	case doctor.SeverityInfo:
		icon, attr = "ℹ", color.FgCyan
	case doctor.SeverityWarning:
		icon, attr = "⚠", color.FgYellow
	case doctor.SeverityError:
		icon, attr = "✗", color.FgRed
	default:
		return "?"
	}

	c := color.New(attr)
	if colorEnabled(w) {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.Sprint(icon)
}
