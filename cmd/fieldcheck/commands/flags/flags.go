// Package flags provides shared flag and configuration accessors for CLI
// commands. It exists to avoid import cycles between the root command and
// noun subpackages such as form.
package flags

import "github.com/thoreinstein/fieldcheck/internal/config"

var (
	formsDirFlag string
	colorFlag    string
	cfg          *config.Config
)

// SetFormsDirFlag records the value of the --forms-dir flag.
func SetFormsDirFlag(dir string) {
	formsDirFlag = dir
}

// FormsDir returns the forms directory override: the --forms-dir flag, then
// the forms_dir config key. Empty means the default search path.
func FormsDir() string {
	if formsDirFlag != "" {
		return formsDirFlag
	}
	return Config().FormsDir
}

// SetColorFlag records the value of the --color flag.
func SetColorFlag(mode string) {
	colorFlag = mode
}

// ColorMode returns the --color flag, falling back to the color config key.
func ColorMode() string {
	if colorFlag != "" {
		return colorFlag
	}
	return Config().Color
}

// SetConfig stores the loaded configuration.
func SetConfig(c *config.Config) {
	cfg = c
}

// Config returns the loaded configuration, or the defaults before one is
// loaded.
func Config() *config.Config {
	if cfg == nil {
		return config.Default()
	}
	return cfg
}
