package fetch

import (
	"context"
	"fmt"

	"github.com/uniwebcms/uniweb-cli/internal/debug"
)

const repoSource = "github-repo"

// RepoFetcher downloads arbitrary GitHub repositories as tarball archives.
type RepoFetcher struct {
	// APIBase is the GitHub API endpoint. Defaults to the public API.
	APIBase string

	client *client
}

// NewRepoFetcher creates a repository fetcher. token is the optional
// GITHUB_TOKEN bearer token.
func NewRepoFetcher(token string) *RepoFetcher {
	return &RepoFetcher{
		APIBase: DefaultGitHubAPIBase,
		client:  newClient(token),
	}
}

// Fetch downloads owner/repo at ref (default branch when empty) and
// extracts it, stripping the conventional top-level wrapper directory of
// codeload-style archives.
func (f *RepoFetcher) Fetch(ctx context.Context, owner, repo, ref string, opts Options) (*Result, error) {
	debug.DebugSection("[fetch] github repo fetch")
	debug.DebugValue("[fetch] repository", owner+"/"+repo)
	debug.DebugValue("[fetch] ref", ref)

	selector := fmt.Sprintf("%s/%s", owner, repo)
	if ref != "" {
		selector = fmt.Sprintf("%s@%s", selector, ref)
	}

	archiveURL := fmt.Sprintf("%s/repos/%s/%s/tarball", f.APIBase, owner, repo)
	if ref != "" {
		archiveURL += "/" + ref
	}

	opts.progress(fmt.Sprintf("Downloading %s...", selector))
	tempDir, err := f.client.downloadAndExtract(ctx, repoSource, selector, archiveURL, "uniweb-repo", true)
	if err != nil {
		return nil, err
	}

	return &Result{TempDir: tempDir, Version: ref}, nil
}
