package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/fieldcheck/cmd/fieldcheck/commands/flags"
	"github.com/thoreinstein/fieldcheck/internal/backup"
)

const signupYAML = `name: signup
description: Create an account
mode: manual
fields:
  - name: email
    label: Email
    tag: required,email
  - name: username
    label: Username
    rules: [required, min_length=3]
  - name: zip
    label: ZIP code
    pattern: "^[0-9]{5}$"
    message: Enter a 5-digit ZIP code.
`

// testEnv holds the directories a command test runs against.
type testEnv struct {
	dir      string
	formsDir string
	config   string
}

// newTestEnv creates a forms directory holding signup.yaml and a config file
// with only the version set.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	env := &testEnv{
		dir:      dir,
		formsDir: filepath.Join(dir, "forms"),
		config:   filepath.Join(dir, "config.yaml"),
	}
	require.NoError(t, os.MkdirAll(env.formsDir, 0o755))
	env.write(t, "forms/signup.yaml", signupYAML)
	env.write(t, "config.yaml", "version: 1\n")
	return env
}

// write creates name under the env directory and returns its path.
func (e *testEnv) write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(e.dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// run executes the root command with the env's config and forms directory.
func (e *testEnv) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	args = append([]string{"--config", e.config, "--forms-dir", e.formsDir, "--color", "never"}, args...)
	return execute(t, stdin, args...)
}

// execute runs rootCmd with args and returns everything it wrote.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(t)
	if os.Getenv(backup.EnvBackupDir) == "" {
		t.Setenv(backup.EnvBackupDir, filepath.Join(t.TempDir(), "backups"))
	}

	origInteractive := interactive
	interactive = func() bool { return false }
	t.Cleanup(func() { interactive = origInteractive })

	var out bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags returns every flag in the command tree to its default so one
// test's flags do not leak into the next.
func resetFlags(t *testing.T) {
	t.Helper()
	var reset func(*cobra.Command)
	reset = func(c *cobra.Command) {
		for _, fs := range []*pflag.FlagSet{c.PersistentFlags(), c.Flags()} {
			fs.VisitAll(func(f *pflag.Flag) {
				require.NoError(t, f.Value.Set(f.DefValue), "resetting --%s", f.Name)
				f.Changed = false
			})
		}
		for _, sub := range c.Commands() {
			reset(sub)
		}
	}
	reset(rootCmd)
	flags.SetConfig(nil)
	configLoadErr = nil
}
