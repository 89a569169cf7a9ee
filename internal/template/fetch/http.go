package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/uniwebcms/uniweb-cli/internal/debug"
)

const (
	// apiTimeout bounds metadata and API requests.
	apiTimeout = 30 * time.Second
	// downloadTimeout bounds tarball downloads.
	downloadTimeout = 60 * time.Second
	// userAgent is sent on every request; the GitHub API requires one.
	userAgent = "uniweb-cli"
)

// client wraps the two HTTP clients shared by the fetchers: a short-timeout
// one for metadata calls and a longer one for archive downloads.
type client struct {
	api      *http.Client
	download *http.Client
	token    string
}

// newClient creates a client. token is the optional bearer token for GitHub
// requests; pass "" for anonymous access.
func newClient(token string) *client {
	return &client{
		api:      &http.Client{Timeout: apiTimeout},
		download: &http.Client{Timeout: downloadTimeout},
		token:    token,
	}
}

// get performs a single GET and classifies the response status into the
// fetch error taxonomy. The caller owns the response body on success.
func (c *client) get(ctx context.Context, hc *http.Client, source, selector, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, NewNetworkError(source, selector, err)
	}
	req.Header.Set("User-Agent", userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := hc.Do(req)
	if err != nil {
		return nil, NewNetworkError(source, selector, err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return resp, nil
	case resp.StatusCode == http.StatusNotFound:
		resp.Body.Close()
		return nil, NewNotFoundError(source, selector, "resource not found")
	case resp.StatusCode == http.StatusForbidden && resp.Header.Get("X-RateLimit-Remaining") == "0":
		resp.Body.Close()
		return nil, NewRateLimitedError(source, selector)
	default:
		resp.Body.Close()
		return nil, NewRegistryError(source, selector, resp.StatusCode,
			fmt.Sprintf("unexpected status code: %d", resp.StatusCode))
	}
}

// getJSON fetches url with retry and decodes the response body into out.
func (c *client) getJSON(ctx context.Context, source, selector, url string, out interface{}) error {
	debug.Debug("[fetch] GET %s", url)
	body, err := WithRetry(ctx, MaxAttempts, Backoff, func(ctx context.Context) ([]byte, error) {
		resp, err := c.get(ctx, c.api, source, selector, url)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, NewNetworkError(source, selector, err)
		}
		return data, nil
	})
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return NewRegistryError(source, selector, 0,
			fmt.Sprintf("invalid JSON response from %s: %v", url, err))
	}
	return nil
}

// downloadFile fetches url with retry and streams the body into a temporary
// file. The caller removes the file when done.
func (c *client) downloadFile(ctx context.Context, source, selector, url string) (string, error) {
	debug.Debug("[fetch] downloading %s", url)
	return WithRetry(ctx, MaxAttempts, Backoff, func(ctx context.Context) (string, error) {
		resp, err := c.get(ctx, c.download, source, selector, url)
		if err != nil {
			return "", err
		}
		defer resp.Body.Close()

		tmpFile, err := os.CreateTemp("", "uniweb-download-*.tar.gz")
		if err != nil {
			return "", NewNetworkError(source, selector, fmt.Errorf("failed to create temp file: %w", err))
		}

		if _, err := io.Copy(tmpFile, resp.Body); err != nil {
			tmpFile.Close()
			os.Remove(tmpFile.Name())
			return "", NewNetworkError(source, selector, fmt.Errorf("failed to download archive: %w", err))
		}
		if err := tmpFile.Close(); err != nil {
			os.Remove(tmpFile.Name())
			return "", NewNetworkError(source, selector, fmt.Errorf("failed to close temp file: %w", err))
		}
		return tmpFile.Name(), nil
	})
}
