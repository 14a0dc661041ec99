package doctor

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/thoreinstein/fieldcheck/internal/form"
)

const validForm = `name: signup
fields:
  - name: email
    tag: required,email
`

const brokenForm = `name: broken
fields:
  - name: zip
    pattern: "("
`

func writeFile(t *testing.T, path, content string, perm os.FileMode) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	// WriteFile honours the umask; force the mode under test.
	if err := os.Chmod(path, perm); err != nil {
		t.Fatalf("Chmod: %v", err)
	}
}

func TestConfigCheck(t *testing.T) {
	dir := t.TempDir()
	valid := filepath.Join(dir, "valid.yaml")
	writeFile(t, valid, "version: 1\nmode: manual\ntimeout: 10s\n", 0o644)
	badValue := filepath.Join(dir, "bad-value.yaml")
	writeFile(t, badValue, "mode: sometimes\noutput: xml\n", 0o644)
	badYAML := filepath.Join(dir, "bad-yaml.yaml")
	writeFile(t, badYAML, "mode: [auto\n", 0o644)

	tests := []struct {
		name       string
		path       string
		wantStatus Severity
		wantMsg    string
	}{
		{"no file", "", SeverityInfo, "no config file, using defaults"},
		{"valid", valid, SeverityPass, "config file is valid"},
		{"missing", filepath.Join(dir, "missing.yaml"), SeverityError, "config file not found"},
		{"invalid values", badValue, SeverityError, "2 invalid setting(s)"},
		{"invalid yaml", badYAML, SeverityError, "config file is not valid YAML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := NewConfigCheck(tt.path).Run()
			if res.Status != tt.wantStatus {
				t.Errorf("Status = %v, want %v (%s)", res.Status, tt.wantStatus, res.Message)
			}
			if res.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", res.Message, tt.wantMsg)
			}
		})
	}
}

func TestFormsDirCheck(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "not-a-dir")
	writeFile(t, file, "", 0o644)

	tests := []struct {
		name       string
		dirs       []string
		wantStatus Severity
	}{
		{"found", []string{filepath.Join(dir, "missing"), dir}, SeverityPass},
		{"none exist", []string{filepath.Join(dir, "missing")}, SeverityWarning},
		{"file in the way", []string{file}, SeverityError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := NewFormsDirCheck(tt.dirs).Run()
			if res.Status != tt.wantStatus {
				t.Errorf("Status = %v, want %v (%s)", res.Status, tt.wantStatus, res.Message)
			}
		})
	}
}

func TestFormsCheck(t *testing.T) {
	t.Run("all valid", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "signup.yaml"), validForm, 0o644)

		res := NewFormsCheck(form.NewCatalog(dir)).Run()
		if res.Status != SeverityPass {
			t.Errorf("Status = %v, want pass (%s)", res.Status, res.Message)
		}
		if res.Message != "1 form(s) valid" {
			t.Errorf("Message = %q", res.Message)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "signup.yaml"), validForm, 0o644)
		writeFile(t, filepath.Join(dir, "broken.yaml"), brokenForm, 0o644)
		writeFile(t, filepath.Join(dir, "garbled.json"), "{", 0o644)

		res := NewFormsCheck(form.NewCatalog(dir)).Run()
		if res.Status != SeverityError {
			t.Fatalf("Status = %v, want error (%s)", res.Status, res.Message)
		}
		if res.Message != "2 of 3 form(s) invalid" {
			t.Errorf("Message = %q, want %q", res.Message, "2 of 3 form(s) invalid")
		}
		invalid, ok := res.Details["invalid"].(map[string]string)
		if !ok {
			t.Fatalf("Details[invalid] = %T", res.Details["invalid"])
		}
		for _, name := range []string{"broken.yaml", "garbled.json"} {
			if _, ok := invalid[filepath.Join(dir, name)]; !ok {
				t.Errorf("invalid is missing %s: %v", name, invalid)
			}
		}
	})

	t.Run("empty", func(t *testing.T) {
		res := NewFormsCheck(form.NewCatalog(t.TempDir())).Run()
		if res.Status != SeverityInfo {
			t.Errorf("Status = %v, want info", res.Status)
		}
	})
}

func TestPermissionCheck(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions")
	}

	t.Run("safe", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.Chmod(dir, 0o755); err != nil {
			t.Fatal(err)
		}
		writeFile(t, filepath.Join(dir, "signup.yaml"), validForm, 0o644)
		writeFile(t, filepath.Join(dir, "notes.txt"), "", 0o666)

		c := NewPermissionCheck([]string{dir, filepath.Join(dir, "missing")})
		res := c.Run()
		if res.Status != SeverityPass {
			t.Errorf("Status = %v, want pass (%s)", res.Status, res.Message)
		}
		if res.Message != "2 path(s) have safe permissions" {
			t.Errorf("Message = %q", res.Message)
		}
		if c.CanFix() {
			t.Error("CanFix() = true, want false")
		}
	})

	t.Run("world-writable", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.Chmod(dir, 0o777); err != nil {
			t.Fatal(err)
		}
		writeFile(t, filepath.Join(dir, "signup.yaml"), validForm, 0o666)

		c := NewPermissionCheck([]string{dir})
		res := c.Run()
		if res.Status != SeverityWarning {
			t.Errorf("Status = %v, want warning", res.Status)
		}
		if !res.Fixable || res.FixHint != "Run: fieldcheck doctor --fix" {
			t.Errorf("Fixable = %v, FixHint = %q", res.Fixable, res.FixHint)
		}
		if !c.CanFix() {
			t.Error("CanFix() = false, want true")
		}
	})
}

func TestEditorCheck(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on the true utility")
	}

	t.Setenv("FIELDCHECK_EDITOR", "true")
	if res := (EditorCheck{}).Run(); res.Status != SeverityPass || res.Message != "using true" {
		t.Errorf("Run() = %v %q, want pass", res.Status, res.Message)
	}

	t.Setenv("FIELDCHECK_EDITOR", "no-such-editor-fieldcheck")
	if res := (EditorCheck{}).Run(); res.Status != SeverityWarning {
		t.Errorf("Status = %v, want warning", res.Status)
	}
}
