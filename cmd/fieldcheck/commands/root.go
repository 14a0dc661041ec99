// Package commands implements the CLI commands for fieldcheck.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/fieldcheck/cmd"
	"github.com/thoreinstein/fieldcheck/cmd/fieldcheck/commands/flags"
	"github.com/thoreinstein/fieldcheck/cmd/fieldcheck/commands/form"
	"github.com/thoreinstein/fieldcheck/internal/config"
	"github.com/thoreinstein/fieldcheck/internal/errors"
	"github.com/thoreinstein/fieldcheck/internal/logging"
	"github.com/thoreinstein/fieldcheck/internal/paths"
)

// defaultLogFile selects paths.LogFile for --log-file.
const defaultLogFile = "default"

var (
	// verbosity holds the count of -v flags.
	verbosity int
	// quiet holds the value of the -q/--quiet flag.
	quiet bool
	// logFormat holds the value of the --log-format flag.
	logFormat string
	// logFile holds the path to the log file.
	logFile string
	// configFile holds an explicit config file path.
	configFile string
	// formsDir holds the value of the --forms-dir flag.
	formsDir string
	// colorMode holds the value of the --color flag.
	colorMode string

	// configLoadErr holds any error that occurred during config loading.
	configLoadErr error
)

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.CountVarP(&verbosity, "verbose", "v", "increase verbosity level (e.g., -v, -vv)")
	pf.BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")
	pf.StringVar(&logFormat, "log-format", "text", "log format: text, json")
	pf.StringVar(&logFile, "log-file", "", `also write JSON logs to this file ("default" for the state directory)`)
	pf.StringVar(&configFile, "config", "", "config file (default: ./config.yaml or "+filepath.Join(paths.ConfigDir(), "config.yaml")+")")
	pf.StringVar(&formsDir, "forms-dir", "", "directory holding form definitions")
	pf.StringVar(&colorMode, "color", "", "colorize output: auto, always, never")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("fieldcheck version {{.Version}}\n")

	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	rootCmd.AddCommand(form.Cmd)
}

func initConfig() {
	config.Init()
	cfg, err := config.Load(configFile)
	configLoadErr = err
	if err == nil {
		flags.SetConfig(cfg)
	}
}

var rootCmd = &cobra.Command{
	Use:   "fieldcheck",
	Short: "Validate form input against declarative field rules",
	Long: `fieldcheck validates form values field by field and reports one
outcome for the whole form.

Forms are defined in YAML, TOML, JSON or Markdown files. Each field is
checked by a regular expression, a list of rules such as "min_length=3",
or a validator tag such as "required,email".`,
	Example: `  # Validate a values file against a form
  fieldcheck validate signup --values answers.yaml

  # Fill in a form interactively
  fieldcheck fill signup

  # List available forms
  fieldcheck form list

  See Also: fieldcheck form, fieldcheck config`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return applyGlobalFlags(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("conflicting flags"), "cannot use --quiet and --verbose together")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity
		if v == 0 {
			if val, ok := os.LookupEnv(config.EnvPrefix + "_DEBUG"); ok {
				switch val {
				case "1", "true":
					v = 2
				case "2":
					v = 3
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	format := logging.Format(logFormat)
	if format != logging.FormatText && format != logging.FormatJSON {
		return errors.NewUserError(errors.Newf("invalid log format %q", logFormat), "Use --log-format text or --log-format json")
	}

	handlers := []slog.Handler{
		logging.New(logging.Config{Level: level, Format: format, Output: cmd.ErrOrStderr()}).Handler(),
	}

	if logFile != "" {
		path := logFile
		if path == defaultLogFile {
			path = paths.LogFile()
			if err := paths.EnsureDir(filepath.Dir(path), paths.DefaultDirPerm); err != nil {
				return errors.NewSystemError(err, "check permissions on "+filepath.Dir(path))
			}
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(err, "failed to open log file")
		}
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level}))
	}

	logger := slog.New(logging.NewMultiHandler(handlers...))
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))
	return nil
}

// applyGlobalFlags surfaces config errors and hands global flags to
// subcommands.
func applyGlobalFlags(cmd *cobra.Command) error {
	flags.SetFormsDirFlag(formsDir)
	flags.SetColorFlag(colorMode)

	if colorMode != "" {
		if _, err := logging.ParseColorMode(colorMode); err != nil {
			return errors.NewUserError(err, "Use --color auto, always or never")
		}
	}

	if cmd.Name() == "help" || cmd.Name() == "version" {
		return nil
	}
	if configLoadErr != nil {
		// The config, backup and doctor commands stay usable so a broken
		// file can be diagnosed and repaired.
		if cmd == configCmd || cmd.Parent() == configCmd || cmd.Parent() == backupCmd || cmd == doctorCmd {
			logging.FromContext(cmd.Context()).Warn("config file is invalid", "error", configLoadErr)
			return nil
		}
		return errors.NewConfigError(configLoadErr)
	}

	if used := config.Used(); used != "" {
		logging.FromContext(cmd.Context()).Debug("config loaded", "path", used)
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// PrintError writes err and any suggestion or hints to w.
func PrintError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)

	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) && exitErr.Suggestion != "" {
		fmt.Fprintf(w, "  %s\n", exitErr.Suggestion)
	}
	for _, hint := range errors.GetAllHints(err) {
		fmt.Fprintf(w, "  %s\n", hint)
	}
}
