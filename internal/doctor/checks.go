package doctor

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/thoreinstein/fieldcheck/internal/errors"
	"github.com/thoreinstein/fieldcheck/internal/form"
)

// PermissionCheck flags world-writable forms directories and definition
// files. Anyone able to rewrite a definition can change what a form accepts.
type PermissionCheck struct {
	permissionFixer
	dirs []string
}

var (
	_ Check = (*PermissionCheck)(nil)
	_ Fixer = (*PermissionCheck)(nil)
)

// NewPermissionCheck creates a permission check over the forms directories.
func NewPermissionCheck(dirs []string) *PermissionCheck {
	return &PermissionCheck{dirs: dirs}
}

// Name returns the unique identifier for this check.
func (c *PermissionCheck) Name() string { return "permissions" }

// Category returns the grouping for this check.
func (c *PermissionCheck) Category() string { return "filesystem" }

// pathIssue is one path with a problem.
type pathIssue struct {
	Path     string
	Dir      bool
	Problem  string
	Severity Severity
	Mode     os.FileMode
	Fixable  bool
	FixHint  string
}

// Run inspects every existing forms directory and the definitions in it.
func (c *PermissionCheck) Run() *CheckResult {
	var (
		issues  []pathIssue
		checked int
	)
	for _, dir := range c.dirs {
		info, err := os.Stat(dir)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			issues = append(issues, pathIssue{
				Path: dir, Dir: true, Severity: SeverityError,
				Problem: fmt.Sprintf("cannot stat directory: %v", err),
			})
			continue
		}
		checked++
		issues = append(issues, checkMode(dir, info)...)

		entries, err := os.ReadDir(dir)
		if err != nil {
			issues = append(issues, pathIssue{
				Path: dir, Dir: true, Severity: SeverityError,
				Problem: "directory is not readable",
				Mode:    info.Mode(),
				FixHint: "chmod u+rx " + dir,
			})
			continue
		}
		for _, e := range entries {
			if e.IsDir() || !form.Supported(e.Name()) {
				continue
			}
			path := filepath.Join(dir, e.Name())
			fi, err := e.Info()
			if err != nil {
				continue
			}
			checked++
			issues = append(issues, checkMode(path, fi)...)
		}
	}

	c.issues = issues
	return c.buildResult(checked)
}

// checkMode reports a world-writable path. Unix modes do not apply on Windows.
func checkMode(path string, info fs.FileInfo) []pathIssue {
	if runtime.GOOS == "windows" || info.Mode().Perm()&0o002 == 0 {
		return nil
	}
	target := secureFilePerm
	kind := "file"
	if info.IsDir() {
		target = secureDirPerm
		kind = "directory"
	}
	return []pathIssue{{
		Path:     path,
		Dir:      info.IsDir(),
		Problem:  kind + " is world-writable",
		Severity: SeverityWarning,
		Mode:     info.Mode(),
		Fixable:  true,
		FixHint:  fmt.Sprintf("chmod %o %s", target, path),
	}}
}

func (c *PermissionCheck) buildResult(checked int) *CheckResult {
	if len(c.issues) == 0 {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityPass,
			Message:  fmt.Sprintf("%d path(s) have safe permissions", checked),
		}
	}

	severities := make([]Severity, 0, len(c.issues))
	problems := make([]map[string]any, 0, len(c.issues))
	for _, issue := range c.issues {
		severities = append(severities, issue.Severity)
		p := map[string]any{
			"path":     issue.Path,
			"problem":  issue.Problem,
			"severity": issue.Severity.String(),
		}
		if issue.Mode != 0 {
			p["mode"] = fmt.Sprintf("%04o", issue.Mode.Perm())
		}
		if issue.FixHint != "" {
			p["fix_hint"] = issue.FixHint
		}
		problems = append(problems, p)
	}

	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   worst(severities...),
		Message:  fmt.Sprintf("%d permission problem(s) in %d path(s)", len(c.issues), checked),
		Details:  map[string]any{"issues": problems},
		Fixable:  c.CanFix(),
	}
	if result.Fixable {
		result.FixHint = "Run: fieldcheck doctor --fix"
	} else {
		result.FixHint = c.issues[0].FixHint
	}
	return result
}
