package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/thoreinstein/fieldcheck/internal/errors"
	"github.com/thoreinstein/fieldcheck/pkg/validation"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestInit(t *testing.T) {
	Init()

	if viper.GetInt("version") != 1 {
		t.Errorf("expected version default 1, got %d", viper.GetInt("version"))
	}
	if viper.GetString("mode") != "auto" {
		t.Errorf("expected mode default auto, got %q", viper.GetString("mode"))
	}
	if viper.GetDuration("timeout") != 30*time.Second {
		t.Errorf("expected timeout default 30s, got %v", viper.GetDuration("timeout"))
	}
}

func TestLoad_NoConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(ConfigDirEnv, t.TempDir())
	Init()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() with no config file should not error: %v", err)
	}
	if cfg.Mode != "auto" || cfg.Output != OutputText {
		t.Errorf("expected defaults, got %+v", cfg)
	}
	if cfg.MissingFieldsMessage != validation.DefaultMissingFieldsMessage {
		t.Errorf("MissingFieldsMessage = %q", cfg.MissingFieldsMessage)
	}
}

func TestLoad_WithConfigFile(t *testing.T) {
	Init()
	path := writeConfig(t, t.TempDir(), "mode: manual\nvalidate_on_attach: true\noutput: json\ntimeout: 5s\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	mode, err := cfg.ValidationMode()
	if err != nil || mode != validation.ModeManual {
		t.Errorf("ValidationMode() = %v, %v; want manual", mode, err)
	}
	if !cfg.ValidateOnAttach {
		t.Error("expected validate_on_attach to be true")
	}
	if cfg.Output != OutputJSON {
		t.Errorf("Output = %q, want json", cfg.Output)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.Timeout)
	}
	if Used() != path {
		t.Errorf("Used() = %q, want %q", Used(), path)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(ConfigDirEnv, t.TempDir())
	t.Setenv("FIELDCHECK_MODE", "manual")
	Init()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Mode != "manual" {
		t.Errorf("Mode = %q, want manual from the environment", cfg.Mode)
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	Init()

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("Load() error = %v, want ErrNotFound", err)
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"invalid version", "version: 2\n", "version: unsupported config version: 2"},
		{"invalid mode", "mode: sometimes\n", "mode: invalid value: sometimes"},
		{"invalid output", "output: xml\n", "output: invalid value: xml"},
		{"invalid color", "color: rainbow\n", "color: invalid value: rainbow"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Init()
			path := writeConfig(t, t.TempDir(), tt.content)

			_, err := Load(path)
			if err == nil {
				t.Fatal("Load() expected error, got nil")
			}
			if want := "validating config: " + tt.wantErr; err.Error() != want {
				t.Errorf("Load() error = %v, want %v", err, want)
			}
			if !errors.Is(err, errors.ErrInvalidConfig) {
				t.Errorf("Load() error should be marked ErrInvalidConfig: %v", err)
			}
		})
	}
}

func TestInit_ClearsPreviousState(t *testing.T) {
	Init()
	if _, err := Load(writeConfig(t, t.TempDir(), "mode: manual\n")); err != nil {
		t.Fatalf("first Load failed: %v", err)
	}

	t.Chdir(t.TempDir())
	dirB := t.TempDir()
	t.Setenv(ConfigDirEnv, dirB)
	writeConfig(t, dirB, "output: json\n")

	Init()
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if cfg.Mode != "auto" {
		t.Errorf("Mode = %q, want auto once the earlier file is forgotten", cfg.Mode)
	}
	if cfg.Output != OutputJSON {
		t.Errorf("Output = %q, want json from %s", cfg.Output, ConfigDirEnv)
	}
}

func TestDefault(t *testing.T) {
	if errs := Validate(Default()); len(errs) != 0 {
		t.Errorf("Default() should be valid, got %v", errs)
	}
}
