package form

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/thoreinstein/fieldcheck/internal/errors"
	"github.com/thoreinstein/fieldcheck/pkg/fileutil"
	"github.com/thoreinstein/fieldcheck/pkg/frontmatter"
)

// Extensions lists the definition file extensions, in lookup order.
var Extensions = []string{".yaml", ".yml", ".toml", ".json", ".md"}

// LoadError reports a definition file that could not be read or parsed.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("loading form: %v", e.Err)
	}
	return fmt.Sprintf("loading form %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// LoadFile reads and validates a definition. A definition without a name
// takes its file name without the extension.
func LoadFile(path string) (*Definition, error) {
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	def, err := Parse(data, fileutil.FormatOf(path))
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	def.Path = path
	if def.Name == "" {
		def.Name = baseName(path)
	}
	if errs := def.Validate(); len(errs) > 0 {
		return nil, &LoadError{Path: path, Err: errors.Join(errs...)}
	}
	return def, nil
}

// Parse decodes a definition. For Markdown the YAML header holds the
// definition and the body, when the header has no description, becomes it.
func Parse(data []byte, format fileutil.Format) (*Definition, error) {
	var def Definition
	if format != fileutil.FormatMarkdown {
		if err := fileutil.Decode(format, data, &def); err != nil {
			return nil, err
		}
		return &def, nil
	}

	body, err := frontmatter.MustParse(bytes.NewReader(data), &def)
	if err != nil {
		return nil, err
	}
	if def.Description == "" {
		def.Description = strings.TrimSpace(string(body))
	}
	return &def, nil
}

// LoadHeader reads just enough of a definition to list it. Markdown
// documents stop at the end of their header.
func LoadHeader(path string) (*Definition, error) {
	if fileutil.FormatOf(path) != fileutil.FormatMarkdown {
		def, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		return def, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	var def Definition
	if err := frontmatter.ParseHeader(f, &def); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	def.Path = path
	if def.Name == "" {
		def.Name = baseName(path)
	}
	return &def, nil
}

// Save writes def to path in the format implied by its extension.
func Save(path string, def *Definition) error {
	if fileutil.FormatOf(path) != fileutil.FormatMarkdown {
		return fileutil.AtomicWriteEncoded(path, def)
	}

	header := *def
	body := header.Description
	header.Description = ""
	data, err := frontmatter.Format(header, body)
	if err != nil {
		return err
	}
	return fileutil.AtomicWriteFile(path, data, fileutil.DefaultFilePerm)
}

func baseName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
