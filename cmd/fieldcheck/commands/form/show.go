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
)

var showJSON bool

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output as JSON")
	Cmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Display a form definition",
	Long: `Display a form's settings and each field with the check it runs.

The name may also be a path to a definition file.`,
	Example: `  fieldcheck form show signup
  fieldcheck form show ./forms/signup.yaml --json`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

// showDetail is the JSON form of a definition.
type showDetail struct {
	*formdef.Definition
	Path string `json:"path"`
}

func runShow(cmd *cobra.Command, args []string) error {
	def, err := find(args[0])
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if showJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(showDetail{Definition: def, Path: def.Path}), "encoding output")
	}
	return outputShow(w, def)
}

func outputShow(w io.Writer, def *formdef.Definition) error {
	bold := painter(w, color.Bold)
	gray := painter(w, color.FgHiBlack)

	mode := def.Mode
	if mode == "" {
		mode = "default"
	}

	fmt.Fprintf(w, "%s %s\n", bold.Sprint("Name:"), def.Name)
	fmt.Fprintf(w, "%s %s\n", bold.Sprint("Path:"), def.Path)
	fmt.Fprintf(w, "%s %s\n", bold.Sprint("Mode:"), mode)
	if def.ValidateOnAttach {
		fmt.Fprintf(w, "%s yes\n", bold.Sprint("Validate on attach:"))
	}
	if def.Description != "" {
		fmt.Fprintf(w, "\n%s\n", def.Description)
	}

	fmt.Fprintf(w, "\n%s\n", bold.Sprint("Fields:"))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, fd := range def.Fields {
		kind, err := fd.Kind()
		if err != nil {
			return errors.Wrapf(err, "field %q", fd.Name)
		}
		line := fmt.Sprintf("  %s\t%s\t%s\t%s", fd.Name, fd.DisplayName(), kind, check(fd))
		if fd.Disabled {
			line += "\t" + gray.Sprint("(disabled)")
		}
		fmt.Fprintln(tw, line)
	}
	return errors.Wrap(tw.Flush(), "writing output")
}

// check summarises what a field is validated against.
func check(fd formdef.FieldDef) string {
	switch {
	case fd.Pattern != "":
		return fd.Pattern
	case fd.Tag != "":
		return fd.Tag
	case len(fd.Rules) > 0:
		return strings.Join(fd.Rules, ", ")
	default:
		return "-"
	}
}
