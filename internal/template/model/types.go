// Package model holds the shared types of the template pipeline: identifier
// classification, resolved templates, and manifest structures.
package model

// Special file names and naming conventions used by uniweb templates.
const (
	// TemplateManifestFile is the manifest file name at a template root.
	TemplateManifestFile = "template.json"
	// HandlebarsExt is the marker extension for files rendered through the
	// Handlebars engine. The extension is stripped from output file names.
	HandlebarsExt = ".hbs"
	// NpmTemplateScope is the npm scope used for version lookups and for
	// synthesized shorthand package names.
	NpmTemplateScope = "@uniweb"
	// NpmTemplatePrefix is prepended to bare identifiers to form the
	// conventional npm template package name.
	NpmTemplatePrefix = "@uniweb/template-"
	// OfficialTemplatesOwner is the GitHub owner of the official templates
	// release repository.
	OfficialTemplatesOwner = "uniwebcms"
	// OfficialTemplatesRepo is the GitHub repository holding official
	// template releases.
	OfficialTemplatesRepo = "uniweb-templates"
)

// BuiltinTemplates are the names served by the CLI's bundled scaffold
// generators. No remote fetch happens for these.
var BuiltinTemplates = []string{"starter", "library"}

// OfficialTemplates are the names published as release assets of the
// official templates repository.
var OfficialTemplates = []string{"marketing", "portfolio", "blog", "docs", "minimal"}

// SourceKind classifies where a template identifier points to.
type SourceKind int

const (
	// KindBuiltin is a bundled scaffold shipped with the CLI.
	KindBuiltin SourceKind = iota
	// KindOfficial is an official template published as a release asset.
	KindOfficial
	// KindNpm is an npm package fetched from the public registry.
	KindNpm
	// KindGitHub is an arbitrary GitHub repository archive.
	KindGitHub
	// KindLocal is a template directory on the local filesystem.
	KindLocal
)

// String returns the kind name as used in identifiers and error messages.
func (k SourceKind) String() string {
	switch k {
	case KindBuiltin:
		return "builtin"
	case KindOfficial:
		return "official"
	case KindNpm:
		return "npm"
	case KindGitHub:
		return "github"
	case KindLocal:
		return "local"
	default:
		return "unknown"
	}
}

// TemplateIdentifier is the classified form of a user-supplied template
// string. Exactly one kind is produced for a valid input; the fields beyond
// Kind are populated per kind and empty otherwise.
type TemplateIdentifier struct {
	// Kind is the source classification.
	Kind SourceKind
	// Name is the builtin or official template name.
	Name string
	// Package is the full npm package name.
	Package string
	// Owner is the GitHub repository owner.
	Owner string
	// Repo is the GitHub repository name.
	Repo string
	// Ref is the optional GitHub branch, tag, or commit.
	Ref string
	// Path is the local filesystem path.
	Path string
}

// ResolvedTemplate is a template materialized on the local filesystem,
// ready for validation and application.
type ResolvedTemplate struct {
	// Kind is the source the template was resolved from.
	Kind SourceKind
	// Path is the template root directory. It is guaranteed to exist until
	// Cleanup is invoked.
	Path string
	// Version is the resolved version, when the source reports one.
	Version string
	// Metadata is source-specific metadata (e.g. release manifest entry).
	Metadata map[string]interface{}
	// Cleanup removes the temporary directory backing the template. Nil for
	// sources that did not create one (local, builtin without temp copy).
	// Safe to call more than once; never returns an error to the caller.
	Cleanup func()
}

// IsBuiltinTemplate reports whether name is a bundled scaffold name.
func IsBuiltinTemplate(name string) bool {
	for _, n := range BuiltinTemplates {
		if n == name {
			return true
		}
	}
	return false
}

// IsOfficialTemplate reports whether name is an official template name.
func IsOfficialTemplate(name string) bool {
	for _, n := range OfficialTemplates {
		if n == name {
			return true
		}
	}
	return false
}
