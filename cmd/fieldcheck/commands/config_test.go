package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/fieldcheck/internal/config"
	"github.com/thoreinstein/fieldcheck/internal/errors"
)

func TestConfigList(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "", "config")
	require.NoError(t, err)
	assert.Contains(t, out, "# source: "+env.config)
	assert.Contains(t, out, "mode: auto")
	assert.Contains(t, out, "timeout: 30s")
}

func TestConfigList_ShowAlias(t *testing.T) {
	env := newTestEnv(t)

	list, err := env.run(t, "", "config", "list")
	require.NoError(t, err)
	show, err := env.run(t, "", "config", "show")
	require.NoError(t, err)
	assert.Equal(t, list, show)
}

func TestConfigGet(t *testing.T) {
	env := newTestEnv(t)
	env.write(t, "config.yaml", "version: 1\nmode: manual\n")

	out, err := env.run(t, "", "config", "get", "mode")
	require.NoError(t, err)
	assert.Equal(t, "manual\n", out)

	out, err = env.run(t, "", "config", "get", "output")
	require.NoError(t, err)
	assert.Equal(t, "text\n", out)
}

func TestConfigGet_UnknownKey(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "", "config", "get", "platforms")
	require.Error(t, err)
	assert.Equal(t, errors.ExitUser, errors.CodeOf(err))
}

func TestConfigSet(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "", "config", "set", "mode", "manual")
	require.NoError(t, err)
	assert.Contains(t, out, "Set mode = manual in "+env.config)

	cfg, err := loadConfigFile(t, env.config)
	require.NoError(t, err)
	assert.Equal(t, "manual", cfg.Mode)
	assert.Equal(t, config.CurrentVersion, cfg.Version)

	out, err = env.run(t, "", "config", "get", "mode")
	require.NoError(t, err)
	assert.Equal(t, "manual\n", out)
}

func TestConfigSet_RejectsInvalidValue(t *testing.T) {
	env := newTestEnv(t)
	before, err := os.ReadFile(env.config)
	require.NoError(t, err)

	_, err = env.run(t, "", "config", "set", "mode", "sometimes")
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidValue)

	after, err := os.ReadFile(env.config)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestConfigPath(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "", "config", "path")
	require.NoError(t, err)
	assert.Equal(t, env.config+"\n", out)
}

func TestConfigInit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	out, err := execute(t, "", "--config", path, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Wrote "+path)

	cfg, err := loadConfigFile(t, path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	_, err = execute(t, "", "--config", path, "config", "init")
	require.Error(t, err)
	assert.Equal(t, errors.ExitUser, errors.CodeOf(err))

	_, err = execute(t, "", "--config", path, "config", "init", "--force")
	require.NoError(t, err)
}

func TestConfigEdit(t *testing.T) {
	env := newTestEnv(t)
	t.Setenv("FIELDCHECK_EDITOR", "true")

	out, err := env.run(t, "", "config", "edit")
	require.NoError(t, err)
	assert.Contains(t, out, "Opening "+env.config)
	assert.Contains(t, out, "✓ Configuration is valid")
}

func loadConfigFile(t *testing.T, path string) (*config.Config, error) {
	t.Helper()
	config.Init()
	return config.Load(path)
}
