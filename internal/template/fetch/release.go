package fetch

import (
	"context"
	"fmt"
	"strings"

	"github.com/uniwebcms/uniweb-cli/internal/debug"
	"github.com/uniwebcms/uniweb-cli/internal/template/model"
)

// DefaultGitHubAPIBase is the GitHub REST API endpoint.
const DefaultGitHubAPIBase = "https://api.github.com"

const releaseSource = "github-release"

// ReleaseManifest is the manifest.json asset of a templates release. It maps
// template names to metadata and carries the download-URL base the per-
// template archives hang off.
type ReleaseManifest struct {
	// BaseURL is the base all template archive URLs are constructed from.
	BaseURL string `json:"baseUrl"`
	// Templates maps template name to its metadata.
	Templates map[string]map[string]interface{} `json:"templates"`

	// Tag is the release tag the manifest came from. Not part of the asset.
	Tag string `json:"-"`
}

// ReleaseFetcher downloads official templates published as GitHub release
// assets of the fixed upstream templates repository. The manifest of the
// latest release is cached in memory for the lifetime of the fetcher;
// specific version requests bypass and never populate that cache.
type ReleaseFetcher struct {
	// APIBase is the GitHub API endpoint. Defaults to the public API.
	APIBase string
	// Owner is the templates repository owner.
	Owner string
	// Repo is the templates repository name.
	Repo string

	client         *client
	latestManifest *ReleaseManifest
}

// NewReleaseFetcher creates a release fetcher for the official templates
// repository. token is the optional GITHUB_TOKEN bearer token.
func NewReleaseFetcher(token string) *ReleaseFetcher {
	return &ReleaseFetcher{
		APIBase: DefaultGitHubAPIBase,
		Owner:   model.OfficialTemplatesOwner,
		Repo:    model.OfficialTemplatesRepo,
		client:  newClient(token),
	}
}

// githubRelease is the subset of the release API response we consume.
type githubRelease struct {
	TagName string `json:"tag_name"`
	Assets  []struct {
		Name               string `json:"name"`
		BrowserDownloadURL string `json:"browser_download_url"`
	} `json:"assets"`
}

// Manifest fetches the release manifest for tag, or for the latest release
// when tag is empty. The latest manifest is served from cache on repeat
// calls.
func (f *ReleaseFetcher) Manifest(ctx context.Context, tag string) (*ReleaseManifest, error) {
	if tag == "" && f.latestManifest != nil {
		debug.Debug("[fetch] serving cached latest release manifest")
		return f.latestManifest, nil
	}

	selector := fmt.Sprintf("%s/%s", f.Owner, f.Repo)
	releaseURL := fmt.Sprintf("%s/repos/%s/%s/releases/latest", f.APIBase, f.Owner, f.Repo)
	if tag != "" {
		releaseURL = fmt.Sprintf("%s/repos/%s/%s/releases/tags/%s", f.APIBase, f.Owner, f.Repo, tag)
	}

	var release githubRelease
	if err := f.client.getJSON(ctx, releaseSource, selector, releaseURL, &release); err != nil {
		return nil, err
	}
	debug.DebugValue("[fetch] release tag", release.TagName)

	manifestURL := ""
	for _, asset := range release.Assets {
		if asset.Name == "manifest.json" {
			manifestURL = asset.BrowserDownloadURL
			break
		}
	}
	if manifestURL == "" {
		return nil, NewRegistryError(releaseSource, selector, 0,
			fmt.Sprintf("release %s has no manifest.json asset (incompatible release format)", release.TagName))
	}

	manifest := &ReleaseManifest{}
	if err := f.client.getJSON(ctx, releaseSource, selector, manifestURL, manifest); err != nil {
		return nil, err
	}
	manifest.Tag = release.TagName

	if tag == "" {
		f.latestManifest = manifest
	}
	return manifest, nil
}

// Fetch downloads the named template from the release identified by tag
// (latest when empty) and extracts it. Release archives are rooted at the
// template root, so no wrapper directory is stripped.
func (f *ReleaseFetcher) Fetch(ctx context.Context, name, tag string, opts Options) (*Result, error) {
	debug.DebugSection("[fetch] github release fetch")
	debug.DebugValue("[fetch] template", name)

	opts.progress(fmt.Sprintf("Resolving template %s from %s/%s releases...", name, f.Owner, f.Repo))

	manifest, err := f.Manifest(ctx, tag)
	if err != nil {
		return nil, err
	}

	metadata, ok := manifest.Templates[name]
	if !ok {
		return nil, NewNotFoundError(releaseSource, name,
			fmt.Sprintf("template %q not in release %s", name, manifest.Tag))
	}

	archiveURL := strings.TrimSuffix(manifest.BaseURL, "/") + "/" + name + ".tar.gz"
	opts.progress(fmt.Sprintf("Downloading %s (%s)...", name, manifest.Tag))
	tempDir, err := f.client.downloadAndExtract(ctx, releaseSource, name, archiveURL, "uniweb-release", false)
	if err != nil {
		return nil, err
	}

	return &Result{TempDir: tempDir, Version: manifest.Tag, Metadata: metadata}, nil
}

// ResetCache drops the cached latest release manifest. Long-lived hosts call
// this between independent command invocations when freshness matters.
func (f *ReleaseFetcher) ResetCache() {
	f.latestManifest = nil
}
