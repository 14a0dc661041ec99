package fileutil

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/fieldcheck/internal/errors"
)

// MaxFileSize is the largest file ReadFileWithLimit reads (1MB).
const MaxFileSize = 1024 * 1024

// Format identifies a structured file encoding.
type Format string

// Supported structured formats.
const (
	FormatUnknown  Format = ""
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatTOML     Format = "toml"
	FormatMarkdown Format = "markdown"
)

var (
	// ErrFileTooLarge indicates that a file exceeded MaxFileSize.
	ErrFileTooLarge = errors.Newf("file exceeds maximum size of %d bytes", MaxFileSize)

	// ErrUnsupportedFormat indicates a file extension with no known decoder.
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

// FormatOf maps a file extension to its Format.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	case ".md", ".markdown":
		return FormatMarkdown
	default:
		return FormatUnknown
	}
}

// ReadFileWithLimit reads a file up to MaxFileSize.
// It returns ErrFileTooLarge if the file is larger than the limit.
func ReadFileWithLimit(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening file")
	}
	defer f.Close()

	if info, err := f.Stat(); err == nil && info.Size() > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(f, MaxFileSize+1))
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}
	if len(data) > MaxFileSize {
		return nil, ErrFileTooLarge
	}
	return data, nil
}

// Decode unmarshals data in the given format into v. Unknown JSON and TOML
// keys are rejected so typos in definitions surface as errors.
func Decode(format Format, data []byte, v any) error {
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		return errors.Wrap(dec.Decode(v), "decoding JSON")
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(v); err != nil && err != io.EOF {
			return errors.Wrap(err, "decoding YAML")
		}
		return nil
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		return errors.Wrap(dec.Decode(v), "decoding TOML")
	default:
		return errors.Wrapf(ErrUnsupportedFormat, "%q", string(format))
	}
}

// DecodeFile reads path with ReadFileWithLimit and decodes it according to
// its extension.
func DecodeFile(path string, v any) error {
	format := FormatOf(path)
	if format == FormatUnknown || format == FormatMarkdown {
		return errors.Wrapf(ErrUnsupportedFormat, "%s", path)
	}
	data, err := ReadFileWithLimit(path)
	if err != nil {
		return err
	}
	return errors.Wrapf(Decode(format, data, v), "%s", path)
}
