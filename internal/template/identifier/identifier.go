// Package identifier classifies user-supplied template strings into one of
// the five source kinds. Classification is pure string handling; no network
// or filesystem access happens here.
package identifier

import (
	"strings"

	"github.com/uniwebcms/uniweb-cli/internal/template/model"
)

// Parse classifies identifier into a TemplateIdentifier. Precedence, first
// match wins:
//
//  1. builtin allow-list
//  2. official allow-list
//  3. "github:" shorthand (owner/repo, optional #ref)
//  4. github.com URL (optional /tree/<ref>)
//  5. local filesystem path prefixes
//  6. "@" scoped npm package name, verbatim
//  7. anything else: npm package synthesized as @uniweb/template-<identifier>
//
// Malformed GitHub shorthand and URLs fail with an InvalidIdentifier error
// rather than falling through to the npm shorthand.
func Parse(identifier string) (model.TemplateIdentifier, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return model.TemplateIdentifier{}, NewInvalidIdentifierError(identifier, "identifier cannot be empty")
	}

	if model.IsBuiltinTemplate(identifier) {
		return model.TemplateIdentifier{Kind: model.KindBuiltin, Name: identifier}, nil
	}

	if model.IsOfficialTemplate(identifier) {
		return model.TemplateIdentifier{Kind: model.KindOfficial, Name: identifier}, nil
	}

	if strings.HasPrefix(identifier, "github:") {
		return parseGitHubShorthand(identifier)
	}

	if strings.HasPrefix(identifier, "https://github.com/") || strings.HasPrefix(identifier, "http://github.com/") {
		return parseGitHubURL(identifier)
	}

	if isLocalPath(identifier) {
		return model.TemplateIdentifier{Kind: model.KindLocal, Path: strings.TrimPrefix(identifier, "file://")}, nil
	}

	if strings.HasPrefix(identifier, "@") {
		return model.TemplateIdentifier{Kind: model.KindNpm, Package: identifier}, nil
	}

	// Shorthand convention: a bare name maps to the conventional scoped
	// package. Typos produce a plausible-looking but likely-nonexistent
	// package name; the registry fetch surfaces those as not-found.
	return model.TemplateIdentifier{Kind: model.KindNpm, Package: model.NpmTemplatePrefix + identifier}, nil
}

// parseGitHubShorthand parses "github:owner/repo" with an optional "#ref".
func parseGitHubShorthand(identifier string) (model.TemplateIdentifier, error) {
	rest := strings.TrimPrefix(identifier, "github:")

	ref := ""
	if idx := strings.Index(rest, "#"); idx != -1 {
		ref = rest[idx+1:]
		rest = rest[:idx]
	}

	parts := strings.Split(rest, "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return model.TemplateIdentifier{}, NewInvalidIdentifierError(identifier,
			"github shorthand must be github:owner/repo[#ref]")
	}

	return model.TemplateIdentifier{
		Kind:  model.KindGitHub,
		Owner: parts[0],
		Repo:  parts[1],
		Ref:   ref,
	}, nil
}

// parseGitHubURL parses https://github.com/owner/repo URLs, honoring an
// embedded /tree/<ref> segment.
func parseGitHubURL(identifier string) (model.TemplateIdentifier, error) {
	rest := strings.TrimPrefix(identifier, "https://github.com/")
	rest = strings.TrimPrefix(rest, "http://github.com/")
	rest = strings.TrimSuffix(rest, "/")

	parts := strings.Split(rest, "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return model.TemplateIdentifier{}, NewInvalidIdentifierError(identifier,
			"github URL must contain at least owner and repository segments")
	}

	id := model.TemplateIdentifier{
		Kind:  model.KindGitHub,
		Owner: parts[0],
		Repo:  strings.TrimSuffix(parts[1], ".git"),
	}

	if len(parts) >= 4 && parts[2] == "tree" {
		id.Ref = parts[3]
	}

	return id, nil
}

// isLocalPath reports whether the identifier is a filesystem path. Only
// explicit path prefixes count; bare names stay in npm-shorthand territory.
func isLocalPath(identifier string) bool {
	for _, prefix := range []string{"./", "../", "/", "~/", "file://"} {
		if strings.HasPrefix(identifier, prefix) {
			return true
		}
	}
	return identifier == "." || identifier == ".."
}
