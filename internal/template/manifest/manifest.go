// Package manifest reads and validates template manifests: required fields,
// tool compatibility, and content directory discovery.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/uniwebcms/uniweb-cli/internal/debug"
	"github.com/uniwebcms/uniweb-cli/internal/template/model"
)

// Validate reads the manifest at templateRoot, checks required fields and
// the declared compatibility range against currentVersion, and discovers
// the template's content directories.
func Validate(templateRoot, currentVersion string) (*model.TemplateManifest, error) {
	debug.DebugSection("[manifest] validate template")
	debug.DebugValue("[manifest] root", templateRoot)

	manifestPath := filepath.Join(templateRoot, model.TemplateManifestFile)
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, newValidationError(CodeMissingManifest, templateRoot,
				model.TemplateManifestFile+" not found at template root", err)
		}
		return nil, newValidationError(CodeInvalidManifest, templateRoot,
			"failed to read "+model.TemplateManifestFile, err)
	}

	var m model.TemplateManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, newValidationError(CodeInvalidManifest, templateRoot,
			"failed to parse "+model.TemplateManifestFile, err)
	}

	if m.Name == "" {
		return nil, &ValidationError{
			Code:         CodeMissingRequiredField,
			TemplateRoot: templateRoot,
			Field:        "name",
			Message:      model.TemplateManifestFile + " missing required field: name",
		}
	}
	debug.DebugValue("[manifest] name", m.Name)

	if r := m.CompatibleRange(); r != "" && !Satisfies(currentVersion, r) {
		return nil, newValidationError(CodeVersionMismatch, templateRoot,
			fmt.Sprintf("template requires uniweb %s, current version is %s", r, currentVersion), nil)
	}

	m.ContentDirs = discoverContentDirs(templateRoot, &m)
	if len(m.ContentDirs) == 0 {
		return nil, newValidationError(CodeMissingContentDirectory, templateRoot,
			"template has no foundation/, site/, or declared package directory", nil)
	}
	debug.DebugValue("[manifest] content dirs", len(m.ContentDirs))

	return &m, nil
}

// discoverContentDirs finds the template's usable content directories.
// A declared packages array wins; entries whose directory is missing are
// skipped, not errors. Without one, the conventional foundation/ and site/
// directories are checked independently.
func discoverContentDirs(templateRoot string, m *model.TemplateManifest) []model.ContentDirectory {
	var dirs []model.ContentDirectory

	if len(m.Packages) > 0 {
		for _, pkg := range m.Packages {
			dir := filepath.Join(templateRoot, pkg.Name)
			if !isDir(dir) {
				debug.Debug("[manifest] declared package %q has no directory, skipping", pkg.Name)
				continue
			}
			dirs = append(dirs, model.ContentDirectory{
				Type:       pkg.Type,
				Name:       pkg.Name,
				Dir:        dir,
				Foundation: pkg.Foundation,
			})
		}
		return dirs
	}

	for _, name := range []string{"foundation", "site"} {
		dir := filepath.Join(templateRoot, name)
		if isDir(dir) {
			dirs = append(dirs, model.ContentDirectory{Type: name, Name: name, Dir: dir})
		}
	}
	return dirs
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
