package cli

import (
	"errors"

	"github.com/uniwebcms/uniweb-cli/internal/template/apply"
	"github.com/uniwebcms/uniweb-cli/internal/template/fetch"
	"github.com/uniwebcms/uniweb-cli/internal/template/identifier"
	"github.com/uniwebcms/uniweb-cli/internal/template/manifest"
)

// hintFor maps a pipeline error to a one-line remediation hint, or ""
// when no targeted advice applies.
func hintFor(err error) string {
	var idErr *identifier.InvalidIdentifierError
	if errors.As(err, &idErr) {
		return "expected a builtin name, official name, npm package, github:owner/repo[#ref], GitHub URL, or local path"
	}

	var fErr *fetch.Error
	if errors.As(err, &fErr) {
		switch fErr.Code {
		case fetch.CodeNotFound:
			return "check the template name or package spelling; run \"uniweb template list\" to see known templates"
		case fetch.CodeRateLimited:
			return "set GITHUB_TOKEN (or GH_TOKEN) to raise the GitHub API rate limit"
		case fetch.CodeNetwork:
			return "check your network connection and retry"
		case fetch.CodeRegistry:
			return "the remote service returned an unexpected response; retry later"
		}
	}

	var vErr *manifest.ValidationError
	if errors.As(err, &vErr) {
		switch vErr.Code {
		case manifest.CodeMissingManifest:
			return "the template has no template.json at its root; it may not be a Uniweb template"
		case manifest.CodeInvalidManifest, manifest.CodeMissingRequiredField:
			return "the template's template.json is malformed; report this to the template author"
		case manifest.CodeVersionMismatch:
			return "upgrade uniweb, or pick a template release compatible with this version"
		case manifest.CodeMissingContentDirectory:
			return "the template declares no foundation/, site/, or package directories"
		}
	}

	var ioErr *apply.IOError
	if errors.As(err, &ioErr) {
		return "check permissions and free disk space for the target directory"
	}

	return ""
}
