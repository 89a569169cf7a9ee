package fetch

import (
	"archive/tar"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

// newNpmTestServer serves a minimal registry: a packument for pkg and its
// tarball (wrapped in the conventional package/ directory).
func newNpmTestServer(t *testing.T, pkg string, files []tarEntry) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	var server *httptest.Server

	mux.HandleFunc("/"+pkg, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{
			"dist-tags": {"latest": "1.4.2"},
			"versions": {"1.4.2": {"dist": {"tarball": "%s/tarball.tgz"}}}
		}`, server.URL)
	})
	mux.HandleFunc("/tarball.tgz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(buildTarGz(t, files))
	})

	server = httptest.NewServer(mux)
	return server
}

func TestNpmFetcher_FetchExtractsPackage(t *testing.T) {
	t.Parallel()

	server := newNpmTestServer(t, "demo-template", []tarEntry{
		{name: "package/", typ: tar.TypeDir},
		{name: "package/template.json", typ: tar.TypeReg, content: `{"name":"demo"}`},
		{name: "package/site/", typ: tar.TypeDir},
		{name: "package/site/index.md", typ: tar.TypeReg, content: "hello"},
	})
	defer server.Close()

	f := NewNpmFetcher()
	f.RegistryURL = server.URL

	var progress []string
	result, err := f.Fetch(context.Background(), "demo-template", Options{
		OnProgress: func(msg string) { progress = append(progress, msg) },
	})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	defer os.RemoveAll(result.TempDir)

	if result.Version != "1.4.2" {
		t.Fatalf("Version = %q, want 1.4.2", result.Version)
	}
	if _, err := os.Stat(filepath.Join(result.TempDir, "template.json")); err != nil {
		t.Fatalf("template.json missing from extracted package: %v", err)
	}
	if _, err := os.Stat(filepath.Join(result.TempDir, "site", "index.md")); err != nil {
		t.Fatalf("site/index.md missing from extracted package: %v", err)
	}
	if len(progress) == 0 {
		t.Fatalf("expected progress callbacks")
	}
}

func TestNpmFetcher_FetchUnknownPackage(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	f := NewNpmFetcher()
	f.RegistryURL = server.URL

	_, err := f.Fetch(context.Background(), "@uniweb/template-nope", Options{})
	var fetchErr *Error
	if !errors.As(err, &fetchErr) || fetchErr.Code != CodeNotFound {
		t.Fatalf("Fetch() error = %v, want NOT_FOUND", err)
	}
}

func TestNpmFetcher_FetchPackageWithoutVersions(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"dist-tags": {}, "versions": {}}`)
	}))
	defer server.Close()

	f := NewNpmFetcher()
	f.RegistryURL = server.URL

	_, err := f.Fetch(context.Background(), "empty-package", Options{})
	var fetchErr *Error
	if !errors.As(err, &fetchErr) || fetchErr.Code != CodeNotFound {
		t.Fatalf("Fetch() error = %v, want NOT_FOUND for unpublished package", err)
	}
}
