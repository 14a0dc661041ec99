package form

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/fieldcheck/cmd/fieldcheck/commands/flags"
	"github.com/thoreinstein/fieldcheck/internal/backup"
	"github.com/thoreinstein/fieldcheck/internal/cli"
	"github.com/thoreinstein/fieldcheck/internal/errors"
	formdef "github.com/thoreinstein/fieldcheck/internal/form"
	"github.com/thoreinstein/fieldcheck/internal/paths"
)

var (
	initFormat      string
	initDescription string
	initForce       bool
)

func init() {
	initCmd.Flags().StringVar(&initFormat, "format", "yaml", "file format: yaml, toml, json, md")
	initCmd.Flags().StringVarP(&initDescription, "description", "d", "", "form description")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing form")
	Cmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init <name>",
	Short: "Create a new form definition",
	Long: `Create a form definition with example fields in the forms directory.

The example shows each way to validate a field: a validator tag, a list of
rules and a regular expression.`,
	Example: `  # Create signup.yaml
  fieldcheck form init signup

  # Create a Markdown definition with a description
  fieldcheck form init contact --format md -d "Contact details"

  See Also:
    fieldcheck form edit   - Edit a form
    fieldcheck validate    - Validate values against a form`,
	Args: cobra.ExactArgs(1),
	RunE: runInit,
}

// nameRegex allows lowercase names with single hyphens or underscores
// between segments.
var nameRegex = regexp.MustCompile(`^[a-z][a-z0-9]*([-_][a-z0-9]+)*$`)

var formatExt = map[string]string{
	"yaml": ".yaml",
	"toml": ".toml",
	"json": ".json",
	"md":   ".md",
}

func runInit(cmd *cobra.Command, args []string) error {
	name := args[0]
	if err := validateName(name); err != nil {
		return errors.NewUserError(err, "Use lowercase letters, digits and single hyphens, starting with a letter")
	}
	ext, ok := formatExt[initFormat]
	if !ok {
		return errors.NewUserError(errors.Newf("unsupported format %q", initFormat), "Use --format yaml, toml, json or md")
	}

	dir, err := cli.WritableFormsDir(flags.FormsDir())
	if err != nil {
		return errors.NewSystemError(err, "")
	}
	path := filepath.Join(dir, name+ext)
	if _, err := os.Stat(path); err == nil && !initForce {
		return errors.NewUserError(errors.Newf("%s already exists", path), "Use --force to overwrite it")
	}

	if err := paths.EnsureDir(dir, 0o755); err != nil {
		return errors.NewSystemError(errors.Wrap(err, "creating forms directory"), "")
	}
	if m, err := backup.NewManager().Backup(backup.KindForms, path); err != nil {
		return errors.NewSystemError(errors.Wrap(err, "backing up form"), "")
	} else if m != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Backed up %s as %s\n", path, m.ID)
	}
	if err := formdef.Save(path, template(name, initDescription)); err != nil {
		return errors.NewSystemError(errors.Wrapf(err, "writing %s", path), "")
	}
	if _, err := formdef.LoadFile(path); err != nil {
		return errors.NewSystemError(err, "")
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "✓ Form '%s' created at %s\n", name, path)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Next steps:")
	fmt.Fprintf(w, "    1. Run: fieldcheck form edit %s\n", name)
	fmt.Fprintf(w, "    2. Run: fieldcheck fill %s\n", name)
	return nil
}

func validateName(name string) error {
	if name == "" {
		return errors.ErrMissingName
	}
	if len(name) > 64 {
		return errors.Newf("form name must be at most 64 characters (got %d)", len(name))
	}
	if !nameRegex.MatchString(name) {
		return errors.Newf("invalid form name %q", name)
	}
	return nil
}

func template(name, description string) *formdef.Definition {
	if description == "" {
		description = "Describe what this form collects."
	}
	return &formdef.Definition{
		Name:        name,
		Description: description,
		Fields: []formdef.FieldDef{
			{Name: "email", Label: "Email", Tag: "required,email"},
			{Name: "username", Label: "Username", Rules: []string{"required", "min_length=3", "max_length=20"}},
			{Name: "zip", Label: "ZIP code", Pattern: `^[0-9]{5}$`, Message: "Enter a 5-digit ZIP code."},
		},
	}
}
