package frontmatter

import (
	"bufio"
	"bytes"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/fieldcheck/internal/errors"
)

var (
	// ErrMissingFrontmatter is returned by MustParse when the document does
	// not open with a "---" line.
	ErrMissingFrontmatter = errors.New("missing frontmatter")

	// ErrUnclosedFrontmatter is returned by MustParse when the opening
	// delimiter has no matching close.
	ErrUnclosedFrontmatter = errors.New("missing closing frontmatter delimiter")
)

const delimiter = "---"

// Parse decodes the header into matter and returns the body. A document
// without a header is returned whole as the body and matter is untouched.
func Parse[T any](r io.Reader, matter *T) ([]byte, error) {
	return parse(r, matter, false)
}

// MustParse is Parse for documents that are required to carry a header.
func MustParse[T any](r io.Reader, matter *T) ([]byte, error) {
	return parse(r, matter, true)
}

func parse[T any](r io.Reader, matter *T, required bool) ([]byte, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading document")
	}

	header, body, err := split(content)
	switch {
	case err == nil:
	case !required:
		return content, nil
	default:
		return nil, err
	}

	if err := yaml.Unmarshal(header, matter); err != nil {
		return nil, errors.Wrap(err, "parsing frontmatter")
	}
	return body, nil
}

// split returns the header between the delimiter lines and the body after
// the closing one, without the blank line that conventionally follows it.
func split(content []byte) (header, body []byte, err error) {
	first, rest, _ := cutLine(content)
	if string(first) != delimiter {
		return nil, nil, ErrMissingFrontmatter
	}

	start := len(content) - len(rest)
	for pos := start; pos < len(content); {
		line, next, _ := cutLine(content[pos:])
		if string(line) == delimiter {
			header = content[start:pos]
			body = next
			if blank, after, ok := cutLine(body); ok && len(blank) == 0 {
				body = after
			}
			return header, body, nil
		}
		pos = len(content) - len(next)
	}
	return nil, nil, ErrUnclosedFrontmatter
}

// cutLine returns the first line of b without its terminator, the remainder,
// and whether a terminator was found.
func cutLine(b []byte) (line, rest []byte, ok bool) {
	line, rest, ok = bytes.Cut(b, []byte("\n"))
	return bytes.TrimSuffix(line, []byte("\r")), rest, ok
}

// ParseHeader decodes only the header and stops reading at the closing
// delimiter. A document without a header leaves matter untouched.
func ParseHeader(r io.Reader, matter any) error {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		return errors.Wrap(scanner.Err(), "reading document")
	}
	if strings.TrimSpace(scanner.Text()) != delimiter {
		return nil
	}

	var buf bytes.Buffer
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == delimiter {
			return errors.Wrap(yaml.Unmarshal(buf.Bytes(), matter), "parsing frontmatter")
		}
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "reading document")
	}
	return ErrUnclosedFrontmatter
}

// Format renders matter as a YAML header followed by body.
func Format(matter any, body string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(delimiter + "\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(matter); err != nil {
		return nil, errors.Wrap(err, "encoding frontmatter")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "encoding frontmatter")
	}

	buf.WriteString(delimiter + "\n")
	if body != "" {
		buf.WriteString("\n")
		buf.WriteString(body)
		if !strings.HasSuffix(body, "\n") {
			buf.WriteString("\n")
		}
	}
	return buf.Bytes(), nil
}
