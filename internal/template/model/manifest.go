package model

// TemplateManifest is the parsed template.json at a template root.
type TemplateManifest struct {
	// Name is the template identifier (required).
	Name string `json:"name"`
	// Description is a human-readable description of the template.
	Description string `json:"description,omitempty"`
	// Compatible is the tool version range the template declares support for.
	Compatible string `json:"compatible,omitempty"`
	// Uniweb is the legacy alias for Compatible, kept for older templates.
	Uniweb string `json:"uniweb,omitempty"`
	// Version is the template's own version.
	Version string `json:"version,omitempty"`
	// Packages declares the multi-package layout. When absent, the
	// conventional foundation/ and site/ directories are discovered instead.
	Packages []PackageDef `json:"packages,omitempty"`

	// ContentDirs are the usable content directories discovered during
	// validation. Not part of the manifest file itself.
	ContentDirs []ContentDirectory `json:"-"`
}

// CompatibleRange returns the declared compatibility range, preferring the
// current field name over the legacy alias. Empty when undeclared.
func (m *TemplateManifest) CompatibleRange() string {
	if m.Compatible != "" {
		return m.Compatible
	}
	return m.Uniweb
}

// PackageDef is one entry of a manifest's packages array.
type PackageDef struct {
	// Name is the package directory name under the template root.
	Name string `json:"name"`
	// Type is the package type (e.g. "foundation", "site").
	Type string `json:"type"`
	// Foundation names the foundation package a site package consumes.
	Foundation string `json:"foundation,omitempty"`
}

// ContentDirectory is a usable content directory of a validated template.
type ContentDirectory struct {
	// Type is the directory role ("foundation", "site", or a declared type).
	Type string
	// Name is the directory name.
	Name string
	// Dir is the absolute path of the directory.
	Dir string
	// Foundation names the foundation package a site directory consumes.
	Foundation string
}
