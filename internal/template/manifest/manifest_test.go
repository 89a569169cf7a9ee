package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/uniwebcms/uniweb-cli/internal/template/model"
)

// writeTemplate creates a template root with the given manifest content and
// subdirectories.
func writeTemplate(t *testing.T, manifestJSON string, dirs ...string) string {
	t.Helper()

	root := t.TempDir()
	if manifestJSON != "" {
		if err := os.WriteFile(filepath.Join(root, model.TemplateManifestFile), []byte(manifestJSON), 0644); err != nil {
			t.Fatalf("WriteFile(manifest) error = %v", err)
		}
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(filepath.Join(root, dir), 0755); err != nil {
			t.Fatalf("MkdirAll(%s) error = %v", dir, err)
		}
	}
	return root
}

func validationCode(t *testing.T, err error) Code {
	t.Helper()
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("error type = %T (%v), want *ValidationError", err, err)
	}
	return vErr.Code
}

func TestValidate_SinglePackageLayout(t *testing.T) {
	t.Parallel()

	root := writeTemplate(t, `{"name":"demo","compatible":"^1.0.0"}`, "site", "foundation")

	m, err := Validate(root, "1.3.0")
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if m.Name != "demo" {
		t.Fatalf("Name = %q, want demo", m.Name)
	}
	if len(m.ContentDirs) != 2 {
		t.Fatalf("ContentDirs = %d, want 2 (foundation + site)", len(m.ContentDirs))
	}
	if m.ContentDirs[0].Type != "foundation" || m.ContentDirs[1].Type != "site" {
		t.Fatalf("ContentDirs types = %q, %q", m.ContentDirs[0].Type, m.ContentDirs[1].Type)
	}
}

func TestValidate_SiteOnlyLayout(t *testing.T) {
	t.Parallel()

	root := writeTemplate(t, `{"name":"demo"}`, "site")

	m, err := Validate(root, "1.0.0")
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if len(m.ContentDirs) != 1 || m.ContentDirs[0].Name != "site" {
		t.Fatalf("ContentDirs = %+v, want single site dir", m.ContentDirs)
	}
}

func TestValidate_MultiPackageLayout(t *testing.T) {
	t.Parallel()

	root := writeTemplate(t, `{
		"name": "multi",
		"packages": [
			{"name": "marketing-site", "type": "site", "foundation": "core"},
			{"name": "core", "type": "foundation"},
			{"name": "missing-dir", "type": "site"}
		]
	}`, "marketing-site", "core")

	m, err := Validate(root, "1.0.0")
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	// Declared entries without a directory are skipped, not errors.
	if len(m.ContentDirs) != 2 {
		t.Fatalf("ContentDirs = %d, want 2", len(m.ContentDirs))
	}
	if m.ContentDirs[0].Name != "marketing-site" || m.ContentDirs[0].Foundation != "core" {
		t.Fatalf("first content dir = %+v", m.ContentDirs[0])
	}
}

func TestValidate_MissingManifest(t *testing.T) {
	t.Parallel()

	root := writeTemplate(t, "", "site")
	_, err := Validate(root, "1.0.0")
	if code := validationCode(t, err); code != CodeMissingManifest {
		t.Fatalf("code = %q, want %q", code, CodeMissingManifest)
	}
}

func TestValidate_InvalidManifest(t *testing.T) {
	t.Parallel()

	root := writeTemplate(t, `{"name": "broken"`, "site")
	_, err := Validate(root, "1.0.0")
	if code := validationCode(t, err); code != CodeInvalidManifest {
		t.Fatalf("code = %q, want %q", code, CodeInvalidManifest)
	}
}

func TestValidate_MissingName(t *testing.T) {
	t.Parallel()

	root := writeTemplate(t, `{"description":"nameless"}`, "site")
	_, err := Validate(root, "1.0.0")
	if code := validationCode(t, err); code != CodeMissingRequiredField {
		t.Fatalf("code = %q, want %q", code, CodeMissingRequiredField)
	}
	var vErr *ValidationError
	errors.As(err, &vErr)
	if vErr.Field != "name" {
		t.Fatalf("Field = %q, want name", vErr.Field)
	}
}

func TestValidate_VersionMismatch(t *testing.T) {
	t.Parallel()

	root := writeTemplate(t, `{"name":"demo","compatible":"^2.0.0"}`, "site")
	_, err := Validate(root, "1.3.0")
	if code := validationCode(t, err); code != CodeVersionMismatch {
		t.Fatalf("code = %q, want %q", code, CodeVersionMismatch)
	}
}

func TestValidate_LegacyUniwebField(t *testing.T) {
	t.Parallel()

	root := writeTemplate(t, `{"name":"demo","uniweb":">=1.0.0"}`, "site")
	if _, err := Validate(root, "1.3.0"); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	root = writeTemplate(t, `{"name":"demo","uniweb":">=2.0.0"}`, "site")
	_, err := Validate(root, "1.3.0")
	if code := validationCode(t, err); code != CodeVersionMismatch {
		t.Fatalf("code = %q, want %q", code, CodeVersionMismatch)
	}
}

func TestValidate_MissingContentDirectory(t *testing.T) {
	t.Parallel()

	root := writeTemplate(t, `{"name":"demo"}`)
	_, err := Validate(root, "1.0.0")
	if code := validationCode(t, err); code != CodeMissingContentDirectory {
		t.Fatalf("code = %q, want %q", code, CodeMissingContentDirectory)
	}

	// Declared packages whose directories are all missing fail the same way.
	root = writeTemplate(t, `{"name":"demo","packages":[{"name":"ghost","type":"site"}]}`)
	_, err = Validate(root, "1.0.0")
	if code := validationCode(t, err); code != CodeMissingContentDirectory {
		t.Fatalf("code = %q, want %q", code, CodeMissingContentDirectory)
	}
}
