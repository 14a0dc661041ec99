package doctor

import (
	"fmt"

	"github.com/thoreinstein/fieldcheck/internal/editor"
)

// EditorCheck verifies the editor used by the edit commands can be found.
type EditorCheck struct{}

var _ Check = EditorCheck{}

// Name returns the unique identifier for this check.
func (EditorCheck) Name() string { return "editor" }

// Category returns the grouping for this check.
func (EditorCheck) Category() string { return "environment" }

// Run resolves the editor on PATH.
func (c EditorCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	name, path, err := editor.Lookup()
	if err != nil {
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("editor %q not found", name)
		result.FixHint = "Set $EDITOR or " + editor.EnvEditor
		return result
	}

	result.Status = SeverityPass
	result.Message = "using " + name
	result.Details = map[string]any{"path": path}
	return result
}
