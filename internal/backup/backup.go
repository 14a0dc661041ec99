package backup

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/thoreinstein/fieldcheck/cmd"
	"github.com/thoreinstein/fieldcheck/internal/errors"
	"github.com/thoreinstein/fieldcheck/internal/paths"
	"github.com/thoreinstein/fieldcheck/pkg/fileutil"
)

// idFormat sorts lexically in time order and keeps backups taken in the
// same second apart.
const idFormat = "20060102T150405.000000000"

// Manager creates, lists, restores and prunes backups.
type Manager struct {
	rootDir        string
	retentionCount int
	now            func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithBackupDir sets the root backup directory.
func WithBackupDir(dir string) Option {
	return func(m *Manager) {
		m.rootDir = dir
	}
}

// WithRetentionCount sets the number of backups kept per kind.
func WithRetentionCount(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.retentionCount = n
		}
	}
}

// NewManager creates a Manager rooted at $FIELDCHECK_BACKUP_DIR, or
// paths.BackupDir when that is unset.
func NewManager(opts ...Option) *Manager {
	root := os.Getenv(EnvBackupDir)
	if root == "" {
		root = paths.BackupDir()
	}
	m := &Manager{
		rootDir:        root,
		retentionCount: DefaultRetentionCount,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Dir returns the root backup directory.
func (m *Manager) Dir() string { return m.rootDir }

// Backup copies path into a new backup of kind and prunes the kind down to
// the retention count. A missing path is not an error: there is nothing to
// lose, so nil is returned with no manifest.
func (m *Manager) Backup(kind, path string) (*Manifest, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "resolving %s", path)
	}
	if _, err := os.Stat(abs); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, errors.Wrapf(err, "stat %s", path)
	}

	created := m.now().UTC()
	id := created.Format(idFormat)
	dir := m.backupPath(kind, id)
	if err := paths.EnsureDir(dir, paths.DefaultDirPerm); err != nil {
		return nil, errors.Wrap(err, "creating backup directory")
	}

	name := filepath.Base(abs)
	hash, mode, err := copyFile(abs, filepath.Join(dir, name))
	if err != nil {
		_ = os.RemoveAll(dir)
		return nil, errors.Wrapf(err, "backing up %s", path)
	}

	manifest := &Manifest{
		Version:   ManifestVersion,
		CreatedAt: created,
		Kind:      kind,
		File: File{
			OriginalPath: abs,
			Name:         name,
			SHA256Hash:   hash,
			Mode:         mode,
		},
		FieldcheckVersion: cmd.Version,
		ID:                id,
	}
	if err := fileutil.AtomicWriteJSON(filepath.Join(dir, "manifest.json"), manifest); err != nil {
		_ = os.RemoveAll(dir)
		return nil, errors.Wrap(err, "writing manifest")
	}

	if err := m.Prune(kind, m.retentionCount); err != nil {
		return manifest, errors.Wrap(err, "pruning backups")
	}
	return manifest, nil
}

// Restore copies the backed up file back to where it came from, after
// checking its hash.
func (m *Manager) Restore(kind, id string) (*Manifest, error) {
	manifest, err := m.Get(kind, id)
	if err != nil {
		return nil, err
	}

	src := filepath.Join(m.backupPath(kind, manifest.ID), manifest.File.Name)
	hash, err := hashFile(src)
	if err != nil {
		return nil, errors.Wrapf(err, "reading backup %s", manifest.ID)
	}
	if hash != manifest.File.SHA256Hash {
		return nil, errors.Wrapf(ErrBackupCorrupted, "backup %s", manifest.ID)
	}

	dst := manifest.File.OriginalPath
	if err := paths.EnsureDir(filepath.Dir(dst), 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating directory for %s", dst)
	}
	if _, _, err := copyFile(src, dst); err != nil {
		return nil, errors.Wrapf(err, "restoring %s", dst)
	}
	if err := os.Chmod(dst, manifest.File.Mode); err != nil {
		return nil, errors.Wrapf(err, "setting permissions for %s", dst)
	}
	return manifest, nil
}

// List returns the backups of kind, newest first.
func (m *Manager) List(kind string) ([]Manifest, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(filepath.Join(m.rootDir, kind))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading backup directory")
	}

	manifests := make([]Manifest, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		manifest, err := m.load(kind, entry.Name())
		if err != nil {
			// Partial backups have no manifest.
			continue
		}
		manifests = append(manifests, *manifest)
	}

	slices.SortFunc(manifests, func(a, b Manifest) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return manifests, nil
}

// Prune removes all but the keep most recent backups of kind.
func (m *Manager) Prune(kind string, keep int) error {
	if keep < 0 {
		return errors.New("keep must be non-negative")
	}
	manifests, err := m.List(kind)
	if err != nil {
		return err
	}
	for _, old := range manifests[min(keep, len(manifests)):] {
		if err := os.RemoveAll(m.backupPath(kind, old.ID)); err != nil {
			return errors.Wrapf(err, "removing backup %s", old.ID)
		}
	}
	return nil
}

// Get returns the manifest of backup id. The id "latest" selects the most
// recent backup of kind.
func (m *Manager) Get(kind, id string) (*Manifest, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, errors.New("backup ID is required")
	}

	if id == "latest" {
		manifests, err := m.List(kind)
		if err != nil {
			return nil, err
		}
		if len(manifests) == 0 {
			return nil, errors.Wrapf(ErrNoBackupsFound, "kind %s", kind)
		}
		return &manifests[0], nil
	}

	manifest, err := m.load(kind, id)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrapf(ErrNoBackupsFound, "backup %s", id)
	}
	return manifest, err
}

func (m *Manager) load(kind, id string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(m.backupPath(kind, id), "manifest.json"))
	if err != nil {
		return nil, err
	}
	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, errors.Wrap(err, "parsing manifest")
	}
	manifest.ID = id
	return &manifest, nil
}

func (m *Manager) backupPath(kind, id string) string {
	return filepath.Join(m.rootDir, kind, id)
}

func checkKind(kind string) error {
	switch kind {
	case KindConfig, KindForms:
		return nil
	default:
		return errors.WithHint(errors.Wrapf(ErrUnknownKind, "%q", kind), "Use config or forms")
	}
}

// hashFile computes the SHA-256 hash of a file.
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.Wrap(err, "opening file")
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", errors.Wrap(err, "reading file")
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// copyFile copies src to dst, hashing the content on the way, and gives
// dst the mode of src.
func copyFile(src, dst string) (hash string, mode fs.FileMode, err error) {
	in, err := os.Open(src)
	if err != nil {
		return "", 0, errors.Wrap(err, "opening source file")
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return "", 0, errors.Wrap(err, "stat source file")
	}
	mode = info.Mode().Perm()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return "", 0, errors.Wrap(err, "creating destination file")
	}

	h := sha256.New()
	if _, err := io.Copy(io.MultiWriter(out, h), in); err != nil {
		out.Close()
		return "", 0, errors.Wrap(err, "copying file")
	}
	if err := out.Close(); err != nil {
		return "", 0, errors.Wrap(err, "closing destination file")
	}
	if err := os.Chmod(dst, mode); err != nil {
		return "", 0, errors.Wrap(err, "setting permissions")
	}
	return hex.EncodeToString(h.Sum(nil)), mode, nil
}
