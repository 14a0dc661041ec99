// Package editor launches the user's editor on a form definition.
package editor

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/thoreinstein/fieldcheck/internal/errors"
)

// EnvEditor overrides $EDITOR and $VISUAL for fieldcheck only.
const EnvEditor = "FIELDCHECK_EDITOR"

// Open launches the editor on path, attached to the current terminal.
func Open(path string) error {
	return OpenWith(os.Stdout, path)
}

// OpenWith is Open with the location notice written to w.
func OpenWith(w io.Writer, path string) error {
	cmd := command(path)
	fmt.Fprintf(w, "Opening %s\n", path)

	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "running editor %q", cmd.Args[0])
	}
	return nil
}

// Lookup returns the configured editor command and the resolved path of its
// executable.
func Lookup() (name, path string, err error) {
	name = detectEditor()
	path, err = exec.LookPath(strings.Fields(name)[0])
	if err != nil {
		return name, "", errors.Wrapf(err, "editor %q", name)
	}
	return name, path, nil
}

// command builds the editor invocation. The editor setting may carry its own
// arguments, as in "code --wait".
func command(path string) *exec.Cmd {
	args := strings.Fields(detectEditor())
	args = append(args, path)
	return exec.Command(args[0], args[1:]...)
}

// detectEditor returns the editor to use: $FIELDCHECK_EDITOR, $EDITOR,
// $VISUAL, then nano if installed, then vi.
func detectEditor() string {
	for _, env := range []string{EnvEditor, "EDITOR", "VISUAL"} {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			return v
		}
	}
	if _, err := exec.LookPath("nano"); err == nil {
		return "nano"
	}
	return "vi"
}
