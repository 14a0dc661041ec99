package backup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/fieldcheck/internal/errors"
)

// newTestManager returns a manager under a temp dir whose clock advances one
// second per backup.
func newTestManager(t *testing.T, opts ...Option) *Manager {
	t.Helper()
	m := NewManager(append([]Option{WithBackupDir(t.TempDir())}, opts...)...)
	clock := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	m.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return m
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestNewManager_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvBackupDir, dir)
	assert.Equal(t, dir, NewManager().Dir())

	other := t.TempDir()
	assert.Equal(t, other, NewManager(WithBackupDir(other)).Dir())
}

func TestBackupRestore(t *testing.T) {
	m := newTestManager(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "mode: manual\n")

	manifest, err := m.Backup(KindConfig, path)
	require.NoError(t, err)
	require.NotNil(t, manifest)
	assert.Equal(t, "20260301T090001.000000000", manifest.ID)
	assert.Equal(t, KindConfig, manifest.Kind)
	assert.Equal(t, path, manifest.File.OriginalPath)
	assert.Equal(t, "config.yaml", manifest.File.Name)
	assert.Len(t, manifest.File.SHA256Hash, 64)

	writeFile(t, path, "mode: auto\n")

	restored, err := m.Restore(KindConfig, manifest.ID)
	require.NoError(t, err)
	assert.Equal(t, manifest.ID, restored.ID)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "mode: manual\n", string(data))
}

func TestBackup_MissingFile(t *testing.T) {
	m := newTestManager(t)

	manifest, err := m.Backup(KindForms, filepath.Join(t.TempDir(), "gone.yaml"))
	require.NoError(t, err)
	assert.Nil(t, manifest)

	list, err := m.List(KindForms)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestBackup_UnknownKind(t *testing.T) {
	m := newTestManager(t)
	_, err := m.Backup("platform", "x")
	assert.True(t, errors.Is(err, ErrUnknownKind))
}

func TestList_NewestFirst(t *testing.T) {
	m := newTestManager(t)
	path := filepath.Join(t.TempDir(), "signup.yaml")
	writeFile(t, path, "name: signup\n")

	var ids []string
	for range 3 {
		manifest, err := m.Backup(KindForms, path)
		require.NoError(t, err)
		ids = append(ids, manifest.ID)
	}

	list, err := m.List(KindForms)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{ids[2], ids[1], ids[0]}, []string{list[0].ID, list[1].ID, list[2].ID})

	none, err := m.List(KindConfig)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestBackup_PrunesToRetention(t *testing.T) {
	m := newTestManager(t, WithRetentionCount(2))
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "version: 1\n")

	var last *Manifest
	for range 4 {
		var err error
		last, err = m.Backup(KindConfig, path)
		require.NoError(t, err)
	}

	list, err := m.List(KindConfig)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, last.ID, list[0].ID)
}

func TestPrune(t *testing.T) {
	m := newTestManager(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "version: 1\n")
	for range 3 {
		_, err := m.Backup(KindConfig, path)
		require.NoError(t, err)
	}

	require.NoError(t, m.Prune(KindConfig, 10))
	list, _ := m.List(KindConfig)
	assert.Len(t, list, 3)

	require.NoError(t, m.Prune(KindConfig, 0))
	list, _ = m.List(KindConfig)
	assert.Empty(t, list)

	assert.Error(t, m.Prune(KindConfig, -1))
}

func TestGet(t *testing.T) {
	m := newTestManager(t)

	_, err := m.Get(KindConfig, "latest")
	assert.True(t, errors.Is(err, ErrNoBackupsFound), "got %v", err)

	_, err = m.Get(KindConfig, "20990101T000000.000000000")
	assert.True(t, errors.Is(err, ErrNoBackupsFound), "got %v", err)

	_, err = m.Get(KindConfig, "")
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "version: 1\n")
	_, err = m.Backup(KindConfig, path)
	require.NoError(t, err)
	second, err := m.Backup(KindConfig, path)
	require.NoError(t, err)

	latest, err := m.Get(KindConfig, "latest")
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)
}

func TestRestore_Corrupted(t *testing.T) {
	m := newTestManager(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "version: 1\n")

	manifest, err := m.Backup(KindConfig, path)
	require.NoError(t, err)
	writeFile(t, filepath.Join(m.Dir(), KindConfig, manifest.ID, "config.yaml"), "tampered\n")

	_, err = m.Restore(KindConfig, manifest.ID)
	assert.True(t, errors.Is(err, ErrBackupCorrupted), "got %v", err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "version: 1\n", string(data))
}

func TestRestore_RecreatesDirectory(t *testing.T) {
	m := newTestManager(t)
	dir := filepath.Join(t.TempDir(), "forms")
	require.NoError(t, os.Mkdir(dir, 0o755))
	path := filepath.Join(dir, "signup.yaml")
	writeFile(t, path, "name: signup\n")

	manifest, err := m.Backup(KindForms, path)
	require.NoError(t, err)
	require.NoError(t, os.RemoveAll(dir))

	_, err = m.Restore(KindForms, "latest")
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "name: signup\n", string(data))
	assert.Equal(t, manifest.File.Mode, os.FileMode(0o644))
}
