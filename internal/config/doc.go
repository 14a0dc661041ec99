// Package config provides configuration management for the fieldcheck CLI.
//
// Settings come from, in increasing precedence: built-in defaults, a
// config.yaml found in the working directory, $FIELDCHECK_CONFIG_DIR or
// ~/.config/fieldcheck, and FIELDCHECK_* environment variables.
//
// # Configuration File
//
//	version: 1
//	mode: auto                  # auto | manual
//	validate_on_attach: false
//	forms_dir: ~/forms          # optional, replaces the default search path
//	missing_fields_message: one or more fields have an error.
//	output: text                # text | json
//	color: auto                 # auto | always | never
//	timeout: 30s
//
// # Loading Configuration
//
//	config.Init()
//	cfg, err := config.LoadDefault()
//	if err != nil {
//	    return err
//	}
//
// Loaded configurations are validated; the first offending key is reported
// wrapped with errors.ErrInvalidConfig. Use [Validate] to list every problem.
package config
