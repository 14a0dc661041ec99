package doctor

import (
	"fmt"
	"os"

	"github.com/thoreinstein/fieldcheck/internal/errors"
)

// Fixer is implemented by checks that can repair what they find. CanFix and
// Fix must be called after Run.
type Fixer interface {
	CanFix() bool
	Fix() []FixResult
}

// FixResult describes the outcome of an attempted fix.
type FixResult struct {
	Path        string `json:"path"`
	Fixed       bool   `json:"fixed"`
	Description string `json:"description"`
	Error       error  `json:"-"`
}

const (
	secureFilePerm os.FileMode = 0o644
	secureDirPerm  os.FileMode = 0o755
)

// permissionFixer resets the mode of paths flagged by PermissionCheck.
type permissionFixer struct {
	issues []pathIssue
}

// CanFix reports whether any stored issue is fixable.
func (f *permissionFixer) CanFix() bool {
	return f.countFixable() > 0
}

// Fix chmods every fixable path to the secure mode for its type.
func (f *permissionFixer) Fix() []FixResult {
	results := make([]FixResult, 0, f.countFixable())
	for _, issue := range f.issues {
		if issue.Fixable {
			results = append(results, fixIssue(issue))
		}
	}
	return results
}

func fixIssue(issue pathIssue) FixResult {
	result := FixResult{Path: issue.Path}

	target := secureFilePerm
	if issue.Dir {
		target = secureDirPerm
	}

	if err := os.Chmod(issue.Path, target); err != nil {
		result.Description = fmt.Sprintf("failed to chmod %04o", target)
		result.Error = errors.Wrapf(err, "chmod %04o %s", target, issue.Path)
		return result
	}

	result.Fixed = true
	result.Description = fmt.Sprintf("chmod %04o", target)
	return result
}

func (f *permissionFixer) countFixable() int {
	n := 0
	for _, issue := range f.issues {
		if issue.Fixable {
			n++
		}
	}
	return n
}
