package fetch

import (
	"context"
	"fmt"
	"net/url"

	"github.com/uniwebcms/uniweb-cli/internal/debug"
)

// DefaultRegistryURL is the public npm registry endpoint.
const DefaultRegistryURL = "https://registry.npmjs.org"

const npmSource = "npm"

// NpmFetcher downloads template packages from the npm registry.
type NpmFetcher struct {
	// RegistryURL is the registry endpoint. Defaults to the public registry.
	RegistryURL string

	client *client
}

// NewNpmFetcher creates an npm fetcher against the public registry.
func NewNpmFetcher() *NpmFetcher {
	return &NpmFetcher{
		RegistryURL: DefaultRegistryURL,
		client:      newClient(""),
	}
}

// registryMetadata is the subset of the registry packument we consume.
type registryMetadata struct {
	DistTags map[string]string `json:"dist-tags"`
	Versions map[string]struct {
		Dist struct {
			Tarball string `json:"tarball"`
		} `json:"dist"`
	} `json:"versions"`
}

// Fetch resolves pkg's latest dist-tag, downloads its tarball, and extracts
// it into a fresh temporary directory. npm tarballs wrap their content in a
// single "package/" directory, which is stripped.
func (f *NpmFetcher) Fetch(ctx context.Context, pkg string, opts Options) (*Result, error) {
	debug.DebugSection("[fetch] npm fetch")
	debug.DebugValue("[fetch] package", pkg)

	opts.progress(fmt.Sprintf("Resolving %s from npm registry...", pkg))

	metaURL := f.RegistryURL + "/" + url.PathEscape(pkg)
	var meta registryMetadata
	if err := f.client.getJSON(ctx, npmSource, pkg, metaURL, &meta); err != nil {
		return nil, err
	}

	latest := meta.DistTags["latest"]
	if latest == "" || len(meta.Versions) == 0 {
		return nil, NewNotFoundError(npmSource, pkg, "package has no published versions")
	}

	version, ok := meta.Versions[latest]
	if !ok || version.Dist.Tarball == "" {
		return nil, NewRegistryError(npmSource, pkg, 0,
			fmt.Sprintf("registry metadata has no tarball for version %s", latest))
	}
	debug.DebugValue("[fetch] resolved version", latest)

	opts.progress(fmt.Sprintf("Downloading %s@%s...", pkg, latest))
	tempDir, err := f.client.downloadAndExtract(ctx, npmSource, pkg, version.Dist.Tarball, "uniweb-npm", true)
	if err != nil {
		return nil, err
	}

	return &Result{TempDir: tempDir, Version: latest}, nil
}
