// Package form provides commands for managing form definitions.
package form

import (
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/fieldcheck/cmd/fieldcheck/commands/flags"
	"github.com/thoreinstein/fieldcheck/internal/cli"
	"github.com/thoreinstein/fieldcheck/internal/errors"
	formdef "github.com/thoreinstein/fieldcheck/internal/form"
	"github.com/thoreinstein/fieldcheck/internal/logging"
)

// Cmd is the parent command for all form subcommands.
var Cmd = &cobra.Command{
	Use:   "form",
	Short: "Manage form definitions",
	Long: `Commands for listing, creating and editing form definitions.

Forms are looked up in .fieldcheck/forms under the current directory, then
in the user forms directory. Set --forms-dir or the forms_dir config key to
search a single directory instead.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

// catalog resolves the catalog for the current flags.
func catalog() (*formdef.Catalog, error) {
	c, err := cli.ResolveCatalog(flags.FormsDir())
	if err != nil {
		return nil, errors.NewSystemError(err, "check the forms_dir setting")
	}
	return c, nil
}

// find loads the named form, mapping lookup failures to user errors.
func find(name string) (*formdef.Definition, error) {
	c, err := catalog()
	if err != nil {
		return nil, err
	}
	def, err := c.Find(name)
	if errors.Is(err, errors.ErrNotFound) || errors.Is(err, errors.ErrInvalidForm) {
		return nil, errors.NewUserError(err, "")
	}
	return def, err
}

// painter returns a color for w that honours --color and the color config key.
func painter(w io.Writer, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	mode, err := logging.ParseColorMode(flags.ColorMode())
	if err != nil {
		mode = logging.ColorAuto
	}
	if mode.Enabled(w) {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// truncate shortens a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen < 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
