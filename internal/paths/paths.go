package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// AppName names the per-application directories under the XDG homes.
const AppName = "fieldcheck"

// ProjectDir is the per-project directory searched for form definitions.
const ProjectDir = ".fieldcheck"

// Sentinel errors for path resolution.
var (
	// ErrHomeDirNotFound indicates the user's home directory could not be determined.
	ErrHomeDirNotFound = errors.New("home directory not found")

	// ErrInvalidPath indicates the provided path is malformed or invalid.
	ErrInvalidPath = errors.New("invalid path")
)

// DefaultDirPerm is the default permission for newly created directories (private).
const DefaultDirPerm = 0o700

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm (0700) is used.
// This function is idempotent; it returns nil if the directory already exists.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// Home returns the user's home directory, or "" if it cannot be determined.
func Home() string {
	h, _ := ResolveHome()
	return h
}

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := ResolveHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// ConfigHome returns the XDG config home directory.
func ConfigHome() string {
	return xdg.ConfigHome
}

// DataHome returns the XDG data home directory.
func DataHome() string {
	return xdg.DataHome
}

// StateHome returns the XDG state home directory.
func StateHome() string {
	return xdg.StateHome
}

// ConfigDir returns the directory holding fieldcheck's config file.
// Returns: <ConfigHome>/fieldcheck/
func ConfigDir() string {
	return filepath.Join(ConfigHome(), AppName)
}

// FormsDir returns the user-wide directory of form definitions.
// Returns: <DataHome>/fieldcheck/forms/
func FormsDir() string {
	return filepath.Join(DataHome(), AppName, "forms")
}

// BackupDir returns the directory holding copies of overwritten files.
// Returns: <DataHome>/fieldcheck/backups/
func BackupDir() string {
	return filepath.Join(DataHome(), AppName, "backups")
}

// ProjectFormsDir returns the form directory of the project rooted at root.
// Returns: <root>/.fieldcheck/forms/
func ProjectFormsDir(root string) string {
	return filepath.Join(root, ProjectDir, "forms")
}

// LogFile returns the path of the JSON log written alongside terminal output.
// Returns: <StateHome>/fieldcheck/fieldcheck.log
func LogFile() string {
	return filepath.Join(StateHome(), AppName, AppName+".log")
}

// FormSearchDirs lists the directories searched for form definitions, most
// specific first: the configured override if set, otherwise the project
// directory under cwd followed by the user-wide FormsDir.
func FormSearchDirs(override, cwd string) ([]string, error) {
	if override != "" {
		if strings.ContainsRune(override, '\x00') {
			return nil, errors.Wrapf(ErrInvalidPath, "%q", override)
		}
		dir, err := ExpandHome(override)
		if err != nil {
			return nil, err
		}
		return []string{filepath.Clean(dir)}, nil
	}

	var dirs []string
	if cwd != "" {
		dirs = append(dirs, ProjectFormsDir(cwd))
	}
	return append(dirs, FormsDir()), nil
}
