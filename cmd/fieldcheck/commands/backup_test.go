package commands

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/fieldcheck/internal/errors"
)

func TestBackup_ConfigSetRoundTrip(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "", "config", "set", "mode", "manual")
	require.NoError(t, err)

	out, err := env.run(t, "", "backup", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "config")
	assert.Contains(t, out, env.config)

	out, err = env.run(t, "", "backup", "restore", "--kind", "config")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Restored "+env.config+" from backup ")

	data, err := os.ReadFile(env.config)
	require.NoError(t, err)
	assert.Equal(t, "version: 1\n", string(data))
}

func TestBackup_ListEmpty(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "", "backup", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No backups available")
}

func TestBackup_ListJSON(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "", "config", "set", "output", "json")
	require.NoError(t, err)

	out, err := env.run(t, "", "backup", "list", "--kind", "config", "--json")
	require.NoError(t, err)

	var entries []struct {
		ID   string `json:"id"`
		Kind string `json:"kind"`
		Path string `json:"path"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "config", entries[0].Kind)
	assert.Equal(t, env.config, entries[0].Path)

	out, err = env.run(t, "", "backup", "list", "--kind", "forms", "--json")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", out)
}

func TestBackup_Prune(t *testing.T) {
	env := newTestEnv(t)
	for _, mode := range []string{"manual", "auto", "manual"} {
		_, err := env.run(t, "", "config", "set", "mode", mode)
		require.NoError(t, err)
	}

	out, err := env.run(t, "", "backup", "prune", "--keep", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Kept at most 0 backup(s) per kind")

	out, err = env.run(t, "", "backup", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No backups available")
}

func TestBackup_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"restore without kind", []string{"backup", "restore"}},
		{"restore unknown kind", []string{"backup", "restore", "--kind", "platform"}},
		{"restore with no backups", []string{"backup", "restore", "--kind", "forms"}},
		{"restore unknown id", []string{"backup", "restore", "20990101T000000.000000000", "--kind", "config"}},
		{"list unknown kind", []string{"backup", "list", "--kind", "platform"}},
		{"prune negative keep", []string{"backup", "prune", "--keep", "-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			_, err := env.run(t, "", tt.args...)
			require.Error(t, err)
			assert.Equal(t, errors.ExitUser, errors.CodeOf(err))
		})
	}
}
