// Package prompt provides the line-oriented prompts used by interactive
// commands.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/thoreinstein/fieldcheck/internal/errors"
	"github.com/thoreinstein/fieldcheck/internal/form"
)

// Sentinel errors for prompts.
var (
	ErrNoForms          = errors.New("no forms to select from")
	ErrInvalidSelection = errors.New("invalid selection")
	ErrCancelled        = errors.New("prompt cancelled")
)

// Prompter reads answers line by line. One Prompter should serve a whole
// session so buffered input is not lost between questions.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New creates a Prompter on stdin and stdout.
func New() *Prompter {
	return NewWithIO(os.Stdin, os.Stdout)
}

// NewWithIO creates a Prompter with custom input and output.
func NewWithIO(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(r), out: w}
}

// Writer returns the prompt output.
func (p *Prompter) Writer() io.Writer {
	return p.out
}

// readLine returns the next line without its terminator. EOF with nothing
// typed is ErrCancelled.
func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line == "" {
			return "", ErrCancelled
		}
		if !errors.Is(err, io.EOF) {
			return "", errors.Wrap(err, "reading input")
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Ask prints label and returns the answer. An empty answer keeps current,
// which is shown in brackets when set.
func (p *Prompter) Ask(label, current string) (string, error) {
	if current != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", label, current)
	} else {
		fmt.Fprintf(p.out, "%s: ", label)
	}

	answer, err := p.readLine()
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(answer) == "" {
		return current, nil
	}
	return answer, nil
}

// Confirm asks a yes/no question. An empty answer returns def.
func (p *Prompter) Confirm(question string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	fmt.Fprintf(p.out, "%s [%s]: ", question, hint)

	answer, err := p.readLine()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	default:
		return false, errors.Wrapf(ErrInvalidSelection, "%q is not yes or no", answer)
	}
}

// SelectForm asks the user to choose one of entries.
//
// Returns:
//   - ErrNoForms if the list is empty
//   - The entry if only one exists (auto-selects without prompting)
//   - The selected entry based on user input, the first on an empty answer
//   - ErrInvalidSelection if the selection is out of range
//   - ErrCancelled if input ends
func (p *Prompter) SelectForm(query string, entries []form.Entry) (*form.Entry, error) {
	if len(entries) == 0 {
		return nil, ErrNoForms
	}
	if len(entries) == 1 {
		return &entries[0], nil
	}

	fmt.Fprintf(p.out, "Multiple forms match %q:\n", query)
	for i, e := range entries {
		if e.Description != "" {
			fmt.Fprintf(p.out, "  [%d] %s - %s\n", i+1, e.Name, e.Description)
		} else {
			fmt.Fprintf(p.out, "  [%d] %s\n", i+1, e.Name)
		}
	}
	fmt.Fprint(p.out, "Select [1]: ")

	input, err := p.readLine()
	if err != nil {
		return nil, err
	}
	input = strings.TrimSpace(input)
	if input == "" {
		return &entries[0], nil
	}

	n, err := strconv.Atoi(input)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidSelection, "%q is not a number", input)
	}
	if n < 1 || n > len(entries) {
		return nil, errors.Wrapf(ErrInvalidSelection, "%d is out of range [1-%d]", n, len(entries))
	}
	return &entries[n-1], nil
}
