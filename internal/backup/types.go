package backup

import (
	"io/fs"
	"time"

	"github.com/thoreinstein/fieldcheck/internal/errors"
)

// ManifestVersion is the manifest format version.
const ManifestVersion = 1

// DefaultRetentionCount is the number of backups kept per kind.
const DefaultRetentionCount = 5

// EnvBackupDir overrides the backup root directory.
const EnvBackupDir = "FIELDCHECK_BACKUP_DIR"

// Kinds of backed up files.
const (
	KindConfig = "config"
	KindForms  = "forms"
)

// Sentinel errors for backup operations.
var (
	// ErrNoBackupsFound indicates no backups exist for the kind or ID.
	ErrNoBackupsFound = errors.New("no backups found")

	// ErrBackupCorrupted indicates a backed up file no longer matches its hash.
	ErrBackupCorrupted = errors.New("backup corrupted")

	// ErrUnknownKind indicates a kind other than KindConfig or KindForms.
	ErrUnknownKind = errors.New("unknown backup kind")
)

// Manifest describes one backup. It is stored as manifest.json.
type Manifest struct {
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	Kind      string    `json:"kind"`
	File      File      `json:"file"`
	// FieldcheckVersion is the build that took the backup.
	FieldcheckVersion string `json:"fieldcheck_version"`

	// ID is the backup directory name. It is filled in on load.
	ID string `json:"-"`
}

// File records the backed up file.
type File struct {
	OriginalPath string      `json:"original_path"`
	Name         string      `json:"name"`
	SHA256Hash   string      `json:"sha256_hash"`
	Mode         fs.FileMode `json:"mode"`
}
