package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/fieldcheck/cmd/fieldcheck/commands/flags"
	"github.com/thoreinstein/fieldcheck/internal/cli/prompt"
	"github.com/thoreinstein/fieldcheck/internal/errors"
	"github.com/thoreinstein/fieldcheck/internal/form"
	"github.com/thoreinstein/fieldcheck/internal/logging"
	"github.com/thoreinstein/fieldcheck/internal/report"
	"github.com/thoreinstein/fieldcheck/pkg/validation"
)

var (
	fillValues string
	fillOut    string
)

func init() {
	fillCmd.Flags().StringVarP(&fillValues, "values", "f", "", "values file to start from")
	fillCmd.Flags().StringVarP(&fillOut, "out", "o", "", "write the answers to this file (YAML, JSON or TOML)")
	rootCmd.AddCommand(fillCmd)
}

var fillCmd = &cobra.Command{
	Use:   "fill [form]",
	Short: "Fill in a form interactively",
	Long: `Prompt for each enabled field of a form and validate the answers.

In auto mode each answer is checked as soon as it is entered. In manual
mode the whole form is checked once every field has an answer. Failed
fields can be answered again until the form passes or you stop.

Press Enter to keep the value shown in brackets.`,
	Example: `  # Fill in a form
  fieldcheck fill signup

  # Start from existing answers and save the result
  fieldcheck fill signup -f draft.yaml -o answers.yaml

  See Also: fieldcheck validate`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFill,
}

func runFill(cmd *cobra.Command, args []string) error {
	logger := logging.FromContext(cmd.Context())

	def, err := loadDefinition(args)
	if err != nil {
		return err
	}
	values, err := loadValues(fillValues)
	if err != nil {
		return err
	}
	opts, err := buildOptions(flags.Config(), logger)
	if err != nil {
		return err
	}
	f, err := form.Build(cmd.Context(), def, values, opts...)
	if err != nil {
		return errors.NewUserError(err, "Run: fieldcheck form show "+def.Name)
	}

	p := prompt.NewWithIO(cmd.InOrStdin(), cmd.OutOrStdout())
	ok, err := fill(cmd.Context(), p, f)
	if err != nil {
		if errors.Is(err, prompt.ErrCancelled) || errors.Is(err, prompt.ErrInvalidSelection) {
			return errors.NewUserError(err, "")
		}
		return err
	}

	res := report.FromForm(f, report.NewRunID())
	logger.Info("form filled", "form", def.Name, "run_id", res.RunID, "valid", ok)
	fmt.Fprintln(cmd.OutOrStdout())
	if err := newReporter(cmd.OutOrStdout(), false).Report(res); err != nil {
		return errors.NewSystemError(err, "")
	}

	if fillOut != "" {
		if err := f.Values.Save(fillOut); err != nil {
			return errors.NewSystemError(err, "check that the directory of "+fillOut+" exists")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved answers to %s\n", fillOut)
	}

	if !ok {
		return errors.NewValidationError(def.Name, len(res.FailedFields()))
	}
	return nil
}

// fill asks for every enabled field, then validates the form and offers to
// revisit failed fields until it passes or the user declines.
func fill(ctx context.Context, p *prompt.Prompter, f *form.Form) (bool, error) {
	var names []string
	for _, fd := range f.Definition.Fields {
		if !fd.Disabled {
			names = append(names, fd.Name)
		}
	}

	for {
		if err := askFields(ctx, p, f, names); err != nil {
			return false, err
		}
		ok, err := f.Aggregator.ValidateAll(ctx)
		if err != nil || ok {
			return ok, err
		}

		names = f.Failed()
		again, err := p.Confirm(fmt.Sprintf("%d field(s) failed. Answer them again?", len(names)), true)
		if err != nil || !again {
			return false, err
		}
	}
}

func askFields(ctx context.Context, p *prompt.Prompter, f *form.Form, names []string) error {
	for _, name := range names {
		fd, _ := f.Definition.Field(name)

		var current string
		if v := f.Values.Get(name); v != nil {
			current = fmt.Sprint(v)
		}
		answer, err := p.Ask(fd.DisplayName(), current)
		if err != nil {
			return err
		}
		if err := f.Set(ctx, name, answer); err != nil {
			return errors.Wrapf(err, "setting field %q", name)
		}
		if f.Aggregator.Mode() == validation.ModeAuto {
			printFeedback(p.Writer(), f.Aggregator.Unit(name))
		}
	}
	return nil
}

// printFeedback shows the outcome of a field that validated on entry.
func printFeedback(w io.Writer, u *validation.Unit) {
	ok := color.New(color.FgGreen)
	bad := color.New(color.FgRed)
	if !colorEnabled(w) {
		ok.DisableColor()
		bad.DisableColor()
	}

	switch u.Status() {
	case validation.StatusSuccess:
		fmt.Fprintf(w, "  %s\n", ok.Sprint("✓"))
	case validation.StatusError:
		for _, msg := range u.Messages() {
			fmt.Fprintf(w, "  %s %s\n", bad.Sprint("✗"), msg)
		}
	}
}
