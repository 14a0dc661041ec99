package form

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/fieldcheck/internal/cli"
	"github.com/thoreinstein/fieldcheck/internal/cli/prompt"
	"github.com/thoreinstein/fieldcheck/internal/errors"
	formdef "github.com/thoreinstein/fieldcheck/internal/form"
	"github.com/thoreinstein/fieldcheck/internal/logging"
)

// interactive reports whether the fuzzy finder can run. Tests override it.
var interactive = func() bool {
	return logging.IsTTY(os.Stdin) && logging.IsTTY(os.Stdout)
}

func init() {
	Cmd.AddCommand(pickCmd)
}

var pickCmd = &cobra.Command{
	Use:   "pick [query]",
	Short: "Choose a form and print its path",
	Long: `Choose a form and print the path of its definition.

In a terminal a fuzzy finder is shown. Otherwise the matching forms are
listed with numbers and one is read from standard input. A query matching
a single form prints it without asking.`,
	Example: `  # Open the chosen form in an editor
  $EDITOR "$(fieldcheck form pick)"

  # Pick among forms matching "sign"
  fieldcheck form pick sign`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPick,
}

func runPick(cmd *cobra.Command, args []string) error {
	c, err := catalog()
	if err != nil {
		return err
	}
	entries, err := c.List(nil)
	if err != nil {
		return errors.NewSystemError(err, "")
	}

	var query string
	if len(args) > 0 {
		query = args[0]
		entries = formdef.Search(entries, query)
	}

	e, err := choose(cmd, query, entries)
	switch {
	case err == nil:
	case errors.Is(err, cli.ErrNoForms), errors.Is(err, prompt.ErrNoForms):
		return errors.NewUserError(err, "Run: fieldcheck form list")
	case errors.Is(err, cli.ErrPickAborted), errors.Is(err, prompt.ErrCancelled),
		errors.Is(err, prompt.ErrInvalidSelection):
		return errors.NewUserError(err, "")
	default:
		return errors.NewSystemError(err, "")
	}

	fmt.Fprintln(cmd.OutOrStdout(), e.Path)
	return nil
}

func choose(cmd *cobra.Command, query string, entries []formdef.Entry) (*formdef.Entry, error) {
	if len(entries) == 1 && query != "" {
		return &entries[0], nil
	}
	if interactive() {
		return cli.PickForm(entries)
	}
	return prompt.NewWithIO(cmd.InOrStdin(), cmd.ErrOrStderr()).SelectForm(query, entries)
}
