package doctor

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/thoreinstein/fieldcheck/internal/errors"
	"github.com/thoreinstein/fieldcheck/internal/form"
)

// FormsDirCheck reports which forms directories exist.
type FormsDirCheck struct {
	dirs []string
}

var _ Check = (*FormsDirCheck)(nil)

// NewFormsDirCheck creates a check over the forms search path.
func NewFormsDirCheck(dirs []string) *FormsDirCheck {
	return &FormsDirCheck{dirs: dirs}
}

// Name returns the unique identifier for this check.
func (c *FormsDirCheck) Name() string { return "forms-dirs" }

// Category returns the grouping for this check.
func (c *FormsDirCheck) Category() string { return "forms" }

// Run stats every directory. A missing directory is normal; a file where a
// directory is expected is not.
func (c *FormsDirCheck) Run() *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Details:  map[string]any{"searched": c.dirs},
	}

	var found, problems []string
	for _, dir := range c.dirs {
		info, err := os.Stat(dir)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			problems = append(problems, fmt.Sprintf("%s: %v", dir, err))
		case !info.IsDir():
			problems = append(problems, dir+": not a directory")
		default:
			found = append(found, dir)
		}
	}
	result.Details["found"] = found

	switch {
	case len(problems) > 0:
		result.Status = SeverityError
		result.Message = fmt.Sprintf("%d forms path(s) unusable", len(problems))
		result.Details["problems"] = problems
	case len(found) == 0:
		result.Status = SeverityWarning
		result.Message = "no forms directory exists"
		result.FixHint = "Run: fieldcheck form init <name>"
	default:
		result.Status = SeverityPass
		result.Message = fmt.Sprintf("found %d of %d forms directories", len(found), len(c.dirs))
	}
	return result
}

// FormsCheck fully loads every definition in the catalog.
type FormsCheck struct {
	catalog *form.Catalog
}

var _ Check = (*FormsCheck)(nil)

// NewFormsCheck creates a check over the definitions in c.
func NewFormsCheck(c *form.Catalog) *FormsCheck {
	return &FormsCheck{catalog: c}
}

// Name returns the unique identifier for this check.
func (c *FormsCheck) Name() string { return "form-definitions" }

// Category returns the grouping for this check.
func (c *FormsCheck) Category() string { return "forms" }

// Run loads every listed form and collects those that fail to parse or
// validate.
func (c *FormsCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	invalid := make(map[string]string)
	entries, err := c.catalog.List(func(path string, err error) {
		invalid[path] = err.Error()
	})
	if err != nil {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("cannot list forms: %v", err)
		return result
	}
	for _, e := range entries {
		if _, err := form.LoadFile(e.Path); err != nil {
			invalid[e.Path] = err.Error()
		}
	}

	total := len(entries) + len(invalid) - countListed(entries, invalid)
	switch {
	case len(invalid) > 0:
		result.Status = SeverityError
		result.Message = fmt.Sprintf("%d of %d form(s) invalid", len(invalid), total)
		result.Details = map[string]any{"invalid": invalid}
		result.FixHint = "Run: fieldcheck form check"
	case total == 0:
		result.Status = SeverityInfo
		result.Message = "no forms found"
		result.FixHint = "Run: fieldcheck form init <name>"
	default:
		result.Status = SeverityPass
		result.Message = fmt.Sprintf("%d form(s) valid", total)
	}
	return result
}

// countListed counts the entries that are also in invalid, so a listed form
// that fails its full load is not counted twice.
func countListed(entries []form.Entry, invalid map[string]string) int {
	n := 0
	for _, e := range entries {
		if _, ok := invalid[e.Path]; ok {
			n++
		}
	}
	return n
}
