package doctor

import (
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/fieldcheck/internal/config"
	"github.com/thoreinstein/fieldcheck/internal/errors"
)

// ConfigCheck reads the config file on its own, so a file that stops the
// rest of the CLI from starting can still be diagnosed.
type ConfigCheck struct {
	path string
}

var _ Check = (*ConfigCheck)(nil)

// NewConfigCheck creates a check of the config file at path. An empty path
// means no file was found.
func NewConfigCheck(path string) *ConfigCheck {
	return &ConfigCheck{path: path}
}

// Name returns the unique identifier for this check.
func (c *ConfigCheck) Name() string { return "config-file" }

// Category returns the grouping for this check.
func (c *ConfigCheck) Category() string { return "config" }

// Run parses the file over the defaults and validates every key.
func (c *ConfigCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	if c.path == "" {
		result.Status = SeverityInfo
		result.Message = "no config file, using defaults"
		result.FixHint = "Run: fieldcheck config init"
		return result
	}
	result.Details = map[string]any{"path": c.path}

	data, err := os.ReadFile(c.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		result.Status = SeverityError
		result.Message = "config file not found"
		result.FixHint = "Run: fieldcheck config init"
		return result
	case err != nil:
		result.Status = SeverityError
		result.Message = fmt.Sprintf("cannot read config file: %v", err)
		return result
	}

	cfg := config.Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		result.Status = SeverityError
		result.Message = "config file is not valid YAML"
		result.Details["error"] = err.Error()
		result.FixHint = "Run: fieldcheck config edit"
		return result
	}

	if errs := config.Validate(cfg); len(errs) > 0 {
		problems := make([]string, 0, len(errs))
		for _, e := range errs {
			problems = append(problems, e.Error())
		}
		result.Status = SeverityError
		result.Message = fmt.Sprintf("%d invalid setting(s)", len(errs))
		result.Details["problems"] = problems
		result.FixHint = "Run: fieldcheck config edit"
		return result
	}

	result.Status = SeverityPass
	result.Message = "config file is valid"
	return result
}
