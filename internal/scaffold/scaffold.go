// Package scaffold ships the built-in starter templates inside the binary
// and materializes them on demand, so creating a basic project never
// touches the network.
package scaffold

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/uniwebcms/uniweb-cli/internal/debug"
	"github.com/uniwebcms/uniweb-cli/internal/template/fetch"
)

//go:embed all:scaffolds
var scaffoldsFS embed.FS

const scaffoldsRoot = "scaffolds"

// Provider materializes embedded templates into temporary directories.
type Provider struct{}

// New creates the bundled template provider.
func New() *Provider {
	return &Provider{}
}

// Names lists the bundled template names, sorted.
func (p *Provider) Names() []string {
	entries, err := scaffoldsFS.ReadDir(scaffoldsRoot)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names
}

// Materialize copies the named bundled template into a fresh temporary
// directory and returns it with a cleanup function that removes it.
func (p *Provider) Materialize(name string) (string, func(), error) {
	root := path.Join(scaffoldsRoot, name)
	if _, err := fs.Stat(scaffoldsFS, root); err != nil {
		return "", nil, fetch.NewNotFoundError("builtin", name, "no bundled template with this name")
	}

	dir, err := os.MkdirTemp("", "uniweb-builtin-")
	if err != nil {
		return "", nil, err
	}
	debug.Debug("[scaffold] materializing %s into %s", name, dir)

	err = fs.WalkDir(scaffoldsFS, root, func(entryPath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, entryPath)
		if err != nil {
			return err
		}
		target := filepath.Join(dir, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		data, err := scaffoldsFS.ReadFile(entryPath)
		if err != nil {
			return err
		}
		return os.WriteFile(target, data, 0644)
	})
	if err != nil {
		os.RemoveAll(dir)
		return "", nil, err
	}

	return dir, func() { os.RemoveAll(dir) }, nil
}
