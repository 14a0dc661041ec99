package form

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/fieldcheck/internal/editor"
	"github.com/thoreinstein/fieldcheck/internal/errors"
	formdef "github.com/thoreinstein/fieldcheck/internal/form"
)

func init() {
	Cmd.AddCommand(editCmd)
}

var editCmd = &cobra.Command{
	Use:   "edit <name|path>",
	Short: "Open a form definition in $EDITOR",
	Long: `Open a form definition in your editor, then check it.

Uses $FIELDCHECK_EDITOR, $EDITOR or $VISUAL, falling back to nano or vi.
Problems found after editing are reported but the file is kept as saved.`,
	Example: `  fieldcheck form edit signup
  fieldcheck form edit ./forms/signup.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func runEdit(cmd *cobra.Command, args []string) error {
	path, err := resolvePath(args[0])
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if err := editor.OpenWith(w, path); err != nil {
		return errors.NewSystemError(err, "Set $FIELDCHECK_EDITOR to your editor")
	}

	fmt.Fprintln(w)
	if _, err := formdef.LoadFile(path); err != nil {
		fmt.Fprintln(w, "✗ Form has problems:")
		printProblems(w, err)
		return nil
	}
	fmt.Fprintln(w, "✓ Form is valid")
	return nil
}

// resolvePath returns target itself when it names a file, otherwise the
// path of the catalog form with that name. Broken forms are still found by
// their file name so they can be repaired.
func resolvePath(target string) (string, error) {
	if info, err := os.Stat(target); err == nil && !info.IsDir() {
		return filepath.Abs(target)
	}

	c, err := catalog()
	if err != nil {
		return "", err
	}
	for _, dir := range c.Dirs() {
		for _, ext := range formdef.Extensions {
			path := filepath.Join(dir, target+ext)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}
	}

	def, err := find(target)
	if err != nil {
		return "", err
	}
	return def.Path, nil
}

func printProblems(w io.Writer, err error) {
	for line := range strings.SplitSeq(err.Error(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			fmt.Fprintf(w, "  • %s\n", line)
		}
	}
}
