package form

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/fieldcheck/internal/errors"
	formdef "github.com/thoreinstein/fieldcheck/internal/form"
)

func init() {
	Cmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check [name|path...]",
	Short: "Check form definitions for mistakes",
	Long: `Check that form definitions parse and are complete: every field has a
unique name, patterns compile, rules are known and handlers have what they
need.

Without arguments every form in the search path is checked.`,
	Example: `  fieldcheck form check
  fieldcheck form check signup ./draft.toml`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	targets := args
	if len(targets) == 0 {
		c, err := catalog()
		if err != nil {
			return err
		}
		// Entries that fail to list are checked too so their problems show.
		var broken []string
		entries, err := c.List(func(path string, _ error) {
			broken = append(broken, path)
		})
		if err != nil {
			return errors.NewSystemError(err, "")
		}
		for _, e := range entries {
			targets = append(targets, e.Path)
		}
		targets = append(targets, broken...)
	}

	w := cmd.OutOrStdout()
	if len(targets) == 0 {
		fmt.Fprintln(w, "No forms found")
		return nil
	}

	failed := 0
	for _, target := range targets {
		path, err := resolvePath(target)
		if err != nil {
			return err
		}
		def, err := formdef.LoadFile(path)
		if err != nil {
			failed++
			fmt.Fprintf(w, "✗ %s\n", path)
			var loadErr *formdef.LoadError
			if errors.As(err, &loadErr) {
				err = loadErr.Err
			}
			printProblems(w, err)
			continue
		}
		fmt.Fprintf(w, "✓ %s (%d field(s))\n", def.Name, len(def.Fields))
	}

	if failed > 0 {
		return errors.NewUserError(errors.Newf("%d of %d form(s) invalid", failed, len(targets)), "Run: fieldcheck form edit <name>")
	}
	return nil
}
