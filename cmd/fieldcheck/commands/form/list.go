package form

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/fieldcheck/internal/errors"
	formdef "github.com/thoreinstein/fieldcheck/internal/form"
	"github.com/thoreinstein/fieldcheck/internal/logging"
)

var listJSON bool

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	Cmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list [query]",
	Short: "List available forms",
	Long: `List every form in the search path, sorted by name.

With a query, only forms whose name or description match are listed, best
match first. Files that cannot be parsed are skipped with a warning.`,
	Example: `  # List all forms
  fieldcheck form list

  # Forms matching "sign"
  fieldcheck form list sign

  # Output as JSON
  fieldcheck form list --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	logger := logging.FromContext(cmd.Context())

	c, err := catalog()
	if err != nil {
		return err
	}
	entries, err := c.List(func(path string, err error) {
		logger.Warn("skipping form", "path", path, "error", err)
	})
	if err != nil {
		return errors.NewSystemError(err, "")
	}
	if len(args) > 0 {
		entries = formdef.Search(entries, args[0])
	}

	w := cmd.OutOrStdout()
	if listJSON {
		return outputListJSON(w, entries)
	}
	return outputListTabular(w, entries, c.Dirs())
}

func outputListJSON(w io.Writer, entries []formdef.Entry) error {
	if entries == nil {
		entries = []formdef.Entry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(entries), "encoding output")
}

func outputListTabular(w io.Writer, entries []formdef.Entry, dirs []string) error {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No forms found")
		fmt.Fprintf(w, "  searched: %s\n", strings.Join(dirs, ", "))
		fmt.Fprintln(w, "  Run: fieldcheck form init <name>")
		return nil
	}

	bold := painter(w, color.Bold)
	green := painter(w, color.FgGreen)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\n", bold.Sprint("NAME"), bold.Sprint("FIELDS"), bold.Sprint("DESCRIPTION"))
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", green.Sprint(e.Name), e.Fields, truncate(e.Description, 60))
	}
	return errors.Wrap(tw.Flush(), "writing output")
}
