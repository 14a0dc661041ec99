// Package config provides configuration management for fieldcheck using Viper.
package config

import (
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/thoreinstein/fieldcheck/internal/errors"
	"github.com/thoreinstein/fieldcheck/internal/paths"
	"github.com/thoreinstein/fieldcheck/pkg/validation"
)

// EnvPrefix prefixes every environment variable read by the config.
const EnvPrefix = "FIELDCHECK"

// ConfigDirEnv overrides the directory searched for config.yaml.
const ConfigDirEnv = EnvPrefix + "_CONFIG_DIR"

// CurrentVersion is the only config file version understood.
const CurrentVersion = 1

// Output formats for validation reports.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Config represents the top-level configuration structure.
type Config struct {
	Version              int           `mapstructure:"version" yaml:"version"`
	Mode                 string        `mapstructure:"mode" yaml:"mode"`
	ValidateOnAttach     bool          `mapstructure:"validate_on_attach" yaml:"validate_on_attach"`
	FormsDir             string        `mapstructure:"forms_dir" yaml:"forms_dir,omitempty"`
	MissingFieldsMessage string        `mapstructure:"missing_fields_message" yaml:"missing_fields_message"`
	Output               string        `mapstructure:"output" yaml:"output"`
	Color                string        `mapstructure:"color" yaml:"color"`
	Timeout              time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// ValidationMode returns the parsed engine mode.
func (c *Config) ValidationMode() (validation.Mode, error) {
	return validation.ParseMode(c.Mode)
}

// Init resets Viper and installs the search paths, environment binding and
// defaults. Call it once at startup, and again in tests to start clean.
func Init() {
	viper.Reset()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AddConfigPath(".")
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		viper.AddConfigPath(dir)
	}
	viper.AddConfigPath(paths.ConfigDir())

	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()

	for key, value := range Defaults() {
		viper.SetDefault(key, value)
	}
}

// Defaults returns the default value of every key.
func Defaults() map[string]any {
	return map[string]any{
		"version":                CurrentVersion,
		"mode":                   validation.ModeAuto.String(),
		"validate_on_attach":     false,
		"forms_dir":              "",
		"missing_fields_message": validation.DefaultMissingFieldsMessage,
		"output":                 OutputText,
		"color":                  "auto",
		"timeout":                "30s",
	}
}

// Load reads and validates the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations and falls back to
// defaults when no file exists.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && path == "":
			// Defaults only.
		case errors.As(err, &notFound), os.IsNotExist(err):
			return nil, errors.Wrapf(errors.ErrNotFound, "config file %s", path)
		default:
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, errors.Wrap(errors.Mark(errs[0], errors.ErrInvalidConfig), "validating config")
	}

	return &cfg, nil
}

// LoadDefault loads from the default search locations.
func LoadDefault() (*Config, error) {
	return Load("")
}

// Default returns the configuration used when no file or environment
// overrides exist.
func Default() *Config {
	return &Config{
		Version:              CurrentVersion,
		Mode:                 validation.ModeAuto.String(),
		MissingFieldsMessage: validation.DefaultMissingFieldsMessage,
		Output:               OutputText,
		Color:                "auto",
		Timeout:              30 * time.Second,
	}
}

// Used returns the path of the config file that was read, or "".
func Used() string {
	return viper.ConfigFileUsed()
}
