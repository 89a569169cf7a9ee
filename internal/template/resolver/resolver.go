// Package resolver orchestrates the template pipeline: classify an
// identifier, materialize the template locally, validate it, and apply it
// to a target directory. Temporary directories are cleaned up regardless
// of outcome.
package resolver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/uniwebcms/uniweb-cli/internal/debug"
	"github.com/uniwebcms/uniweb-cli/internal/template/apply"
	"github.com/uniwebcms/uniweb-cli/internal/template/fetch"
	"github.com/uniwebcms/uniweb-cli/internal/template/identifier"
	"github.com/uniwebcms/uniweb-cli/internal/template/manifest"
	"github.com/uniwebcms/uniweb-cli/internal/template/model"
)

// BundledProvider materializes templates shipped inside the binary.
type BundledProvider interface {
	// Names lists the bundled template names.
	Names() []string
	// Materialize copies the named template to a temporary directory and
	// returns it with a cleanup function.
	Materialize(name string) (dir string, cleanup func(), err error)
}

// Options adjusts a single Resolve call.
type Options struct {
	// Tag pins an official template to a specific release tag instead of
	// the latest release.
	Tag string
	// OnProgress receives download progress messages. Optional.
	OnProgress func(message string)
}

// ApplyOptions adjusts a single Apply call.
type ApplyOptions struct {
	// Versions maps package names to version specs for the template
	// engine's version helper.
	Versions map[string]string
	// Skip lists output file names to exclude from the copy.
	Skip []string
	// OnWarning receives unresolved placeholder and version fallback
	// reports. Optional.
	OnWarning func(message string)
	// OnProgress receives one message per file written. Optional.
	OnProgress func(message string)
}

// Resolver drives the template pipeline. A Resolver owns its fetchers and
// their caches; it is intended for a single invocation at a time.
type Resolver struct {
	version  string
	bundled  BundledProvider
	npm      *fetch.NpmFetcher
	releases *fetch.ReleaseFetcher
	repos    *fetch.RepoFetcher
}

// New creates a Resolver. version is the current tool version used for
// compatibility checks, token is the optional GitHub bearer token, and
// bundled provides the built-in templates (nil when none are available).
func New(version, token string, bundled BundledProvider) *Resolver {
	return &Resolver{
		version:  version,
		bundled:  bundled,
		npm:      fetch.NewNpmFetcher(),
		releases: fetch.NewReleaseFetcher(token),
		repos:    fetch.NewRepoFetcher(token),
	}
}

// Resolve classifies identifier and materializes the template into a
// local directory. Remote kinds download into a temporary directory whose
// removal is the returned template's Cleanup; Cleanup is idempotent and
// safe to call multiple times.
func (r *Resolver) Resolve(ctx context.Context, rawIdentifier string, opts Options) (*model.ResolvedTemplate, error) {
	debug.DebugSection("[resolver] resolve template")
	debug.DebugValue("[resolver] identifier", rawIdentifier)

	id, err := identifier.Parse(rawIdentifier)
	if err != nil {
		return nil, err
	}
	debug.DebugValue("[resolver] kind", id.Kind.String())

	switch id.Kind {
	case model.KindBuiltin:
		return r.resolveBuiltin(id)
	case model.KindOfficial:
		return r.resolveOfficial(ctx, id, opts)
	case model.KindNpm:
		return r.resolveNpm(ctx, id, opts)
	case model.KindGitHub:
		return r.resolveGitHub(ctx, id, opts)
	case model.KindLocal:
		return r.resolveLocal(id)
	}
	return nil, identifier.NewInvalidIdentifierError(rawIdentifier, "unsupported template source")
}

func (r *Resolver) resolveBuiltin(id model.TemplateIdentifier) (*model.ResolvedTemplate, error) {
	if r.bundled == nil {
		return nil, fetch.NewNotFoundError("builtin", id.Name, "no bundled templates are available in this build")
	}
	dir, cleanup, err := r.bundled.Materialize(id.Name)
	if err != nil {
		return nil, err
	}
	return &model.ResolvedTemplate{
		Kind:    id.Kind,
		Path:    dir,
		Version: r.version,
		Cleanup: once(cleanup),
	}, nil
}

func (r *Resolver) resolveOfficial(ctx context.Context, id model.TemplateIdentifier, opts Options) (*model.ResolvedTemplate, error) {
	result, err := r.releases.Fetch(ctx, id.Name, opts.Tag, fetch.Options{OnProgress: opts.OnProgress})
	if err != nil {
		return nil, err
	}
	return fetchedTemplate(id.Kind, result), nil
}

func (r *Resolver) resolveNpm(ctx context.Context, id model.TemplateIdentifier, opts Options) (*model.ResolvedTemplate, error) {
	result, err := r.npm.Fetch(ctx, id.Package, fetch.Options{OnProgress: opts.OnProgress})
	if err != nil {
		return nil, err
	}
	return fetchedTemplate(id.Kind, result), nil
}

func (r *Resolver) resolveGitHub(ctx context.Context, id model.TemplateIdentifier, opts Options) (*model.ResolvedTemplate, error) {
	result, err := r.repos.Fetch(ctx, id.Owner, id.Repo, id.Ref, fetch.Options{OnProgress: opts.OnProgress})
	if err != nil {
		return nil, err
	}
	return fetchedTemplate(id.Kind, result), nil
}

func (r *Resolver) resolveLocal(id model.TemplateIdentifier) (*model.ResolvedTemplate, error) {
	path := id.Path
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fetch.NewNotFoundError("local", id.Path, "cannot resolve template path")
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return nil, fetch.NewNotFoundError("local", id.Path, "template directory does not exist")
	}
	return &model.ResolvedTemplate{
		Kind: id.Kind,
		Path: abs,
	}, nil
}

// fetchedTemplate wraps a fetch result; Cleanup removes the temporary
// directory exactly once.
func fetchedTemplate(kind model.SourceKind, result *fetch.Result) *model.ResolvedTemplate {
	dir := result.TempDir
	return &model.ResolvedTemplate{
		Kind:     kind,
		Path:     dir,
		Version:  result.Version,
		Metadata: result.Metadata,
		Cleanup: once(func() {
			if err := os.RemoveAll(dir); err != nil {
				debug.Debug("[resolver] cleanup of %s failed: %v", dir, err)
			}
		}),
	}
}

func once(fn func()) func() {
	if fn == nil {
		return nil
	}
	var o sync.Once
	return func() { o.Do(fn) }
}

// Apply validates the resolved template and copies its content
// directories into targetDir. Each content directory lands under its own
// name. Version fallbacks are aggregated into a single warning after the
// copy completes. Cleanup is the caller's responsibility; see
// ApplyExternal.
func (r *Resolver) Apply(ctx context.Context, resolved *model.ResolvedTemplate, targetDir string, vars map[string]interface{}, opts ApplyOptions) (*model.TemplateManifest, error) {
	debug.DebugSection("[resolver] apply template")
	debug.DebugValue("[resolver] template root", resolved.Path)
	debug.DebugValue("[resolver] target", targetDir)

	m, err := manifest.Validate(resolved.Path, r.version)
	if err != nil {
		return nil, err
	}

	proc := apply.NewProcessor(opts.Versions)
	copyOpts := apply.CopyOptions{
		Skip:       opts.Skip,
		OnWarning:  opts.OnWarning,
		OnProgress: opts.OnProgress,
	}
	for _, dir := range m.ContentDirs {
		if err := proc.CopyTree(dir.Dir, filepath.Join(targetDir, dir.Name), vars, copyOpts); err != nil {
			return nil, err
		}
	}

	if fallbacks := proc.FallbackPackages(); len(fallbacks) > 0 && opts.OnWarning != nil {
		opts.OnWarning(fmt.Sprintf("no version found for %s; using %q",
			strings.Join(fallbacks, ", "), apply.DefaultVersionSpec))
	}
	return m, nil
}

// ApplyExternal applies a resolved template and guarantees its Cleanup
// runs exactly once, whether the apply succeeds or fails.
func (r *Resolver) ApplyExternal(ctx context.Context, resolved *model.ResolvedTemplate, targetDir string, vars map[string]interface{}, opts ApplyOptions) (*model.TemplateManifest, error) {
	defer func() {
		if resolved.Cleanup != nil {
			resolved.Cleanup()
		}
	}()
	return r.Apply(ctx, resolved, targetDir, vars, opts)
}

// ResetCaches clears the per-resolution caches so a long-lived process can
// serve independent resolutions with fresh state.
func (r *Resolver) ResetCaches() {
	r.releases.ResetCache()
}
