package cli

import (
	"os"

	"github.com/thoreinstein/fieldcheck/internal/errors"
	"github.com/thoreinstein/fieldcheck/internal/form"
	"github.com/thoreinstein/fieldcheck/internal/paths"
)

// ResolveCatalog builds the form catalog. A non-empty formsDir replaces the
// default search path of the project's .fieldcheck/forms followed by the
// user's forms directory.
func ResolveCatalog(formsDir string) (*form.Catalog, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, "getting working directory")
	}
	dirs, err := paths.FormSearchDirs(formsDir, cwd)
	if err != nil {
		return nil, errors.Wrap(err, "resolving forms directories")
	}
	return form.NewCatalog(dirs...), nil
}

// WritableFormsDir returns the directory new forms are created in: the
// configured override, or the user's forms directory.
func WritableFormsDir(formsDir string) (string, error) {
	if formsDir == "" {
		return paths.FormsDir(), nil
	}
	dir, err := paths.ExpandHome(formsDir)
	if err != nil {
		return "", errors.Wrap(err, "resolving forms directory")
	}
	return dir, nil
}

// ErrFormRequired is returned by ResolveForm when no name is given and no
// terminal is available to pick one.
var ErrFormRequired = errors.New("form name required")

// ResolveForm loads the named form. With no name it opens the picker when
// interactive is set.
func ResolveForm(c *form.Catalog, name string, interactive bool) (*form.Definition, error) {
	if name != "" {
		return c.Find(name)
	}
	if !interactive {
		return nil, errors.WithHint(ErrFormRequired, "Pass a form name, or run in a terminal to pick one")
	}

	entries, err := c.List(nil)
	if err != nil {
		return nil, err
	}
	e, err := PickForm(entries)
	if err != nil {
		return nil, err
	}
	return form.LoadFile(e.Path)
}
