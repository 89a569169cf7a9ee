package apply

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeTree creates files under root from relative path to content,
// creating parent directories as needed.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("MkdirAll(%s) error = %v", path, err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("WriteFile(%s) error = %v", path, err)
		}
	}
}

func readOutput(t *testing.T, root, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("ReadFile(%s) error = %v", rel, err)
	}
	return string(data)
}

func TestCopyTree_RendersHandlebarsFiles(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	dst := t.TempDir()
	writeTree(t, src, map[string]string{
		"README.md.hbs": "Hello {{name}}",
	})

	p := NewProcessor(nil)
	if err := p.CopyTree(src, dst, map[string]interface{}{"name": "Acme"}, CopyOptions{}); err != nil {
		t.Fatalf("CopyTree() error = %v", err)
	}

	if got := readOutput(t, dst, "README.md"); got != "Hello Acme" {
		t.Fatalf("README.md = %q, want %q", got, "Hello Acme")
	}
	if _, err := os.Stat(filepath.Join(dst, "README.md.hbs")); !os.IsNotExist(err) {
		t.Fatal("marker extension was not stripped from output name")
	}
}

func TestCopyTree_UnresolvedPlaceholderWarnsButWrites(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	dst := t.TempDir()
	writeTree(t, src, map[string]string{
		"config.json.hbs": `{"site": "{{siteName}}"}`,
	})

	var warnings []string
	p := NewProcessor(nil)
	err := p.CopyTree(src, dst, map[string]interface{}{}, CopyOptions{
		OnWarning: func(msg string) { warnings = append(warnings, msg) },
	})
	if err != nil {
		t.Fatalf("CopyTree() error = %v", err)
	}

	if got := readOutput(t, dst, "config.json"); !strings.Contains(got, "{{siteName}}") {
		t.Fatalf("output = %q, want unresolved token preserved", got)
	}
	if len(warnings) != 1 {
		t.Fatalf("warnings = %d (%v), want exactly 1", len(warnings), warnings)
	}
	if !strings.Contains(warnings[0], "siteName") {
		t.Fatalf("warning = %q, want it to name siteName", warnings[0])
	}
}

func TestCopyTree_UnderscoreDirectoryRenaming(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	dst := t.TempDir()
	writeTree(t, src, map[string]string{
		"_vscode/settings.json": `{"editor.tabSize": 2}`,
		"__reserved/keep.txt":   "untouched",
	})

	p := NewProcessor(nil)
	if err := p.CopyTree(src, dst, nil, CopyOptions{}); err != nil {
		t.Fatalf("CopyTree() error = %v", err)
	}

	if got := readOutput(t, dst, ".vscode/settings.json"); got != `{"editor.tabSize": 2}` {
		t.Fatalf(".vscode/settings.json = %q", got)
	}
	if got := readOutput(t, dst, "__reserved/keep.txt"); got != "untouched" {
		t.Fatalf("__reserved/keep.txt = %q", got)
	}
	if _, err := os.Stat(filepath.Join(dst, "_vscode")); !os.IsNotExist(err) {
		t.Fatal("_vscode was copied under its source name")
	}
}

func TestCopyTree_ExcludesRootManifestOnly(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	dst := t.TempDir()
	writeTree(t, src, map[string]string{
		"template.json":        `{"name":"demo"}`,
		"nested/template.json": `{"inner": true}`,
	})

	p := NewProcessor(nil)
	if err := p.CopyTree(src, dst, nil, CopyOptions{}); err != nil {
		t.Fatalf("CopyTree() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(dst, "template.json")); !os.IsNotExist(err) {
		t.Fatal("root manifest was copied into the output")
	}
	if got := readOutput(t, dst, "nested/template.json"); got != `{"inner": true}` {
		t.Fatalf("nested/template.json = %q", got)
	}
}

func TestCopyTree_SkipListMatchesOutputName(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	dst := t.TempDir()
	writeTree(t, src, map[string]string{
		"package.json.hbs": `{"name": "{{name}}"}`,
		"keep.md":          "kept",
	})

	p := NewProcessor(nil)
	err := p.CopyTree(src, dst, map[string]interface{}{"name": "x"}, CopyOptions{
		Skip: []string{"package.json"},
	})
	if err != nil {
		t.Fatalf("CopyTree() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(dst, "package.json")); !os.IsNotExist(err) {
		t.Fatal("skip list did not match the stripped output name")
	}
	if got := readOutput(t, dst, "keep.md"); got != "kept" {
		t.Fatalf("keep.md = %q", got)
	}
}

func TestCopyTree_LiteralSubstitutionForTextFiles(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	dst := t.TempDir()
	writeTree(t, src, map[string]string{
		// No .hbs marker: only literal replacement, no templating.
		"index.js": `export const site = "{{name}}"; // {{#if x}}untouched{{/if}}`,
	})

	p := NewProcessor(nil)
	vars := map[string]interface{}{"name": "Acme", "count": 3}
	if err := p.CopyTree(src, dst, vars, CopyOptions{}); err != nil {
		t.Fatalf("CopyTree() error = %v", err)
	}

	got := readOutput(t, dst, "index.js")
	if !strings.Contains(got, `"Acme"`) {
		t.Fatalf("index.js = %q, want literal substitution of name", got)
	}
	if !strings.Contains(got, "{{#if x}}untouched{{/if}}") {
		t.Fatalf("index.js = %q, want block syntax left alone", got)
	}
}

func TestCopyTree_BinaryFilesCopiedVerbatim(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	dst := t.TempDir()
	payload := []byte{0x89, 'P', 'N', 'G', 0, '{', '{', 'n', 'a', 'm', 'e', '}', '}'}
	if err := os.WriteFile(filepath.Join(src, "logo.png"), payload, 0644); err != nil {
		t.Fatalf("WriteFile error = %v", err)
	}

	p := NewProcessor(nil)
	if err := p.CopyTree(src, dst, map[string]interface{}{"name": "Acme"}, CopyOptions{}); err != nil {
		t.Fatalf("CopyTree() error = %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dst, "logo.png"))
	if err != nil {
		t.Fatalf("ReadFile error = %v", err)
	}
	if string(got) != string(payload) {
		t.Fatalf("logo.png modified: got %v, want %v", got, payload)
	}
}

func TestCopyTree_VersionHelper(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	dst := t.TempDir()
	writeTree(t, src, map[string]string{
		"package.json.hbs": `{
  "react": "{{version "react"}}",
  "runtime": "{{version "express-runtime"}}",
  "mystery": "{{version "left-pad"}}"
}`,
	})

	p := NewProcessor(map[string]string{
		"react":                   "^18.2.0",
		"@uniweb/express-runtime": "2.1.0",
	})
	if err := p.CopyTree(src, dst, nil, CopyOptions{}); err != nil {
		t.Fatalf("CopyTree() error = %v", err)
	}

	got := readOutput(t, dst, "package.json")
	if !strings.Contains(got, `"react": "^18.2.0"`) {
		t.Fatalf("package.json = %q, want exact version match", got)
	}
	if !strings.Contains(got, `"runtime": "2.1.0"`) {
		t.Fatalf("package.json = %q, want scope-prefixed match", got)
	}
	if !strings.Contains(got, `"mystery": "latest"`) {
		t.Fatalf("package.json = %q, want fallback version spec", got)
	}

	fallbacks := p.FallbackPackages()
	if len(fallbacks) != 1 || fallbacks[0] != "left-pad" {
		t.Fatalf("FallbackPackages() = %v, want [left-pad]", fallbacks)
	}

	p.Reset()
	if len(p.FallbackPackages()) != 0 {
		t.Fatal("Reset() did not clear the fallback record")
	}
}

func TestCopyTree_NestedDirectories(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	dst := t.TempDir()
	writeTree(t, src, map[string]string{
		"pages/docs/intro.md.hbs": "# {{title}}",
		"pages/_github/ci.yml":    "on: push",
	})

	p := NewProcessor(nil)
	if err := p.CopyTree(src, dst, map[string]interface{}{"title": "Guide"}, CopyOptions{}); err != nil {
		t.Fatalf("CopyTree() error = %v", err)
	}

	if got := readOutput(t, dst, "pages/docs/intro.md"); got != "# Guide" {
		t.Fatalf("pages/docs/intro.md = %q", got)
	}
	if got := readOutput(t, dst, "pages/.github/ci.yml"); got != "on: push" {
		t.Fatalf("pages/.github/ci.yml = %q", got)
	}
}

func TestCopyTree_ProgressCallback(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	dst := t.TempDir()
	writeTree(t, src, map[string]string{
		"a.md": "a",
		"b.md": "b",
	})

	var seen []string
	p := NewProcessor(nil)
	err := p.CopyTree(src, dst, nil, CopyOptions{
		OnProgress: func(msg string) { seen = append(seen, msg) },
	})
	if err != nil {
		t.Fatalf("CopyTree() error = %v", err)
	}
	if len(seen) != 2 {
		t.Fatalf("progress calls = %d (%v), want 2", len(seen), seen)
	}
}
