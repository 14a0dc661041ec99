package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/fieldcheck/internal/backup"
	"github.com/thoreinstein/fieldcheck/internal/config"
	"github.com/thoreinstein/fieldcheck/internal/editor"
	"github.com/thoreinstein/fieldcheck/internal/errors"
	"github.com/thoreinstein/fieldcheck/internal/paths"
	"github.com/thoreinstein/fieldcheck/pkg/fileutil"
)

var configInitForce bool

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing config file")

	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configEditCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage fieldcheck configuration",
	Long: `Manage fieldcheck configuration stored in config.yaml.

The file is read from the current directory, then $FIELDCHECK_CONFIG_DIR,
then the user config directory. Every key can also be set through an
environment variable such as FIELDCHECK_MODE.

Without a subcommand, lists the effective configuration.`,
	Example: `  # List the effective configuration
  fieldcheck config

  # Validate every field only on demand
  fieldcheck config set mode manual

  # Write a config file with the defaults
  fieldcheck config init

  See Also: fieldcheck validate, fieldcheck fill`,
	RunE: runConfigList,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value and write the config file.

The resulting configuration is validated before it is written, so an
unknown mode or color leaves the file untouched.`,
	Example: `  fieldcheck config set mode manual
  fieldcheck config set timeout 10s
  fieldcheck config set output json`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"show"},
	Short:   "List the effective configuration",
	Long:    `List the effective configuration in YAML, with the file it was read from.`,
	RunE:    runConfigList,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	RunE:  runConfigPath,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default values",
	RunE:  runConfigInit,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the config file in $EDITOR",
	Long: `Open the config file in your editor, then check it.

Uses $FIELDCHECK_EDITOR, $EDITOR or $VISUAL, falling back to nano or vi.`,
	RunE: runConfigEdit,
}

// configPath returns the file config changes are written to: the file that
// was read, or config.yaml in the user config directory.
func configPath() string {
	if used := config.Used(); used != "" {
		return used
	}
	if configFile != "" {
		return configFile
	}
	return filepath.Join(paths.ConfigDir(), "config.yaml")
}

func knownKey(key string) bool {
	_, ok := config.Defaults()[key]
	return ok
}

func configKeys() []string {
	keys := make([]string, 0, len(config.Defaults()))
	for k := range config.Defaults() {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	key := args[0]
	if !knownKey(key) {
		return errors.NewUserError(errors.Newf("unknown config key %q", key), "Valid keys: "+strings.Join(configKeys(), ", "))
	}
	fmt.Fprintln(cmd.OutOrStdout(), viper.GetString(key))
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]
	if !knownKey(key) {
		return errors.NewUserError(errors.Newf("unknown config key %q", key), "Valid keys: "+strings.Join(configKeys(), ", "))
	}

	viper.Set(key, value)
	cfg, err := effectiveConfig()
	if err != nil {
		return err
	}
	if errs := config.Validate(cfg); len(errs) > 0 {
		return errors.NewConfigError(errors.Join(errs...))
	}

	path := configPath()
	if err := writeConfig(path, cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s in %s\n", key, value, path)
	return nil
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	cfg, err := effectiveConfig()
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}

	source := config.Used()
	if source == "" {
		source = "defaults"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "# source: %s\n", source)
	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	fmt.Fprintln(cmd.OutOrStdout(), configPath())
	return nil
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	path := configFile
	if path == "" {
		path = filepath.Join(paths.ConfigDir(), "config.yaml")
	}
	if _, err := os.Stat(path); err == nil && !configInitForce {
		return errors.NewUserError(errors.Newf("config file %s already exists", path), "Use --force to overwrite it")
	}

	if err := writeConfig(path, config.Default()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", path)
	return nil
}

func runConfigEdit(cmd *cobra.Command, _ []string) error {
	path := configPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return errors.NewUserError(errors.Newf("config file not found at %s", path), "Run: fieldcheck config init")
	}

	if err := editor.OpenWith(cmd.OutOrStdout(), path); err != nil {
		return errors.NewSystemError(err, "Set $FIELDCHECK_EDITOR to your editor")
	}

	config.Init()
	if _, err := config.Load(path); err != nil {
		return errors.NewConfigError(err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "✓ Configuration is valid")
	return nil
}

// effectiveConfig decodes the merged file, environment and default values.
func effectiveConfig() (*config.Config, error) {
	var cfg config.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.NewConfigError(errors.Wrap(err, "unmarshaling config"))
	}
	return &cfg, nil
}

// writeConfig backs up any existing file, then replaces it with cfg.
func writeConfig(path string, cfg *config.Config) error {
	if _, err := backup.NewManager().Backup(backup.KindConfig, path); err != nil {
		return errors.NewSystemError(errors.Wrap(err, "backing up config file"), "")
	}
	if err := paths.EnsureDir(filepath.Dir(path), paths.DefaultDirPerm); err != nil {
		return errors.NewSystemError(errors.Wrap(err, "creating config directory"), "")
	}
	if err := fileutil.AtomicWriteYAML(path, cfg); err != nil {
		return errors.NewSystemError(errors.Wrap(err, "writing config file"), "")
	}
	return nil
}
