package form

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/thoreinstein/fieldcheck/internal/errors"
	"github.com/thoreinstein/fieldcheck/pkg/fileutil"
)

// Entry is a definition file found by a Catalog.
type Entry struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Path        string `json:"path"`
	Fields      int    `json:"fields"`
}

// Catalog finds definitions across an ordered list of directories. When two
// directories hold a form with the same name the earlier one wins.
type Catalog struct {
	dirs []string
}

// NewCatalog creates a Catalog over dirs, most specific first.
func NewCatalog(dirs ...string) *Catalog {
	return &Catalog{dirs: dirs}
}

// Dirs returns the searched directories.
func (c *Catalog) Dirs() []string {
	return slices.Clone(c.dirs)
}

// List returns every definition in the catalog sorted by name. Files that
// fail to parse are reported through skipped and left out.
func (c *Catalog) List(skipped func(path string, err error)) ([]Entry, error) {
	seen := make(map[string]bool)
	var entries []Entry

	for _, dir := range c.dirs {
		files, err := os.ReadDir(dir)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, errors.Wrapf(err, "reading forms directory %s", dir)
		}

		for _, f := range files {
			if f.IsDir() || !Supported(f.Name()) {
				continue
			}
			path := filepath.Join(dir, f.Name())
			def, err := LoadHeader(path)
			if err != nil {
				if skipped != nil {
					skipped(path, err)
				}
				continue
			}
			if seen[def.Name] {
				continue
			}
			seen[def.Name] = true
			entries = append(entries, Entry{
				Name:        def.Name,
				Description: firstLine(def.Description),
				Path:        path,
				Fields:      len(def.Fields),
			})
		}
	}

	slices.SortFunc(entries, func(a, b Entry) int {
		return strings.Compare(a.Name, b.Name)
	})
	return entries, nil
}

// Find locates a form by name or by path. A name is tried against each
// directory with every supported extension before falling back to the
// names declared inside the files.
func (c *Catalog) Find(name string) (*Definition, error) {
	if strings.ContainsRune(name, filepath.Separator) || fileutil.FormatOf(name) != fileutil.FormatUnknown {
		if _, err := os.Stat(name); err == nil {
			return LoadFile(name)
		}
	}

	for _, dir := range c.dirs {
		for _, ext := range Extensions {
			path := filepath.Join(dir, name+ext)
			if _, err := os.Stat(path); err == nil {
				return LoadFile(path)
			}
		}
	}

	entries, err := c.List(nil)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.Name == name {
			return LoadFile(e.Path)
		}
	}

	return nil, errors.WithHint(
		errors.Wrapf(errors.ErrNotFound, "form %q", name),
		"Run: fieldcheck form list",
	)
}

// Search returns the entries matching query, best match first. Matching is
// case-insensitive against names and descriptions; an empty query matches
// everything.
func Search(entries []Entry, query string) []Entry {
	query = strings.ToLower(query)

	var out []Entry
	for _, e := range entries {
		if query == "" || scoreMatch(e, query) > 0 {
			out = append(out, e)
		}
	}
	slices.SortStableFunc(out, func(a, b Entry) int {
		return scoreMatch(b, query) - scoreMatch(a, query)
	})
	return out
}

// scoreMatch ranks exact names over prefixes over substrings, and any name
// match over a description-only match.
func scoreMatch(e Entry, query string) int {
	if query == "" {
		return 0
	}
	name := strings.ToLower(e.Name)
	switch {
	case name == query:
		return 100
	case strings.HasPrefix(name, query):
		return 75
	case strings.Contains(name, query):
		return 50
	case strings.Contains(strings.ToLower(e.Description), query):
		return 25
	default:
		return 0
	}
}

// Supported reports whether name has a definition file extension.
func Supported(name string) bool {
	return slices.Contains(Extensions, strings.ToLower(filepath.Ext(name)))
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(line)
}
