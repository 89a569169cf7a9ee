package fetch

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/uniwebcms/uniweb-cli/internal/debug"
)

// newTempDir creates a unique temporary directory under the system temp
// root. Names are collision-resistant so concurrent invocations never
// interfere.
func newTempDir(prefix string) (string, error) {
	dir := filepath.Join(os.TempDir(), fmt.Sprintf("%s-%s", prefix, uuid.NewString()))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create temp directory: %w", err)
	}
	return dir, nil
}

// downloadAndExtract downloads a gzip-compressed tarball and extracts it
// into a fresh temporary directory. On extraction failure the directory is
// removed before the error is returned, so failed fetches leave nothing
// behind.
func (c *client) downloadAndExtract(ctx context.Context, source, selector, url, prefix string, stripRoot bool) (string, error) {
	archivePath, err := c.downloadFile(ctx, source, selector, url)
	if err != nil {
		return "", err
	}
	defer os.Remove(archivePath)

	extractDir, err := newTempDir(prefix)
	if err != nil {
		return "", NewNetworkError(source, selector, err)
	}

	if err := extractTarGz(archivePath, extractDir, stripRoot); err != nil {
		os.RemoveAll(extractDir)
		return "", &Error{
			Code:     CodeRegistry,
			Source:   source,
			Selector: selector,
			Message:  "failed to extract archive",
			Cause:    err,
		}
	}

	debug.Debug("[fetch] extracted %s into %s", url, extractDir)
	return extractDir, nil
}

// extractTarGz extracts a .tar.gz archive into dest. When stripRoot is true
// the conventional single top-level wrapping directory (npm's "package/",
// codeload's "repo-ref/") is stripped from entry names.
func extractTarGz(archivePath, dest string, stripRoot bool) error {
	file, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer file.Close()

	gzr, err := gzip.NewReader(file)
	if err != nil {
		return fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzr.Close()

	tr := tar.NewReader(gzr)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read tar entry: %w", err)
		}

		relPath := header.Name
		if stripRoot {
			parts := strings.SplitN(header.Name, "/", 2)
			if len(parts) < 2 {
				// The root directory entry itself.
				continue
			}
			relPath = parts[1]
		}
		if relPath == "" || relPath == "." {
			continue
		}

		// Reject entries that would escape the destination directory.
		target := filepath.Join(dest, filepath.FromSlash(relPath))
		if !strings.HasPrefix(target, filepath.Clean(dest)+string(filepath.Separator)) {
			return fmt.Errorf("archive entry escapes destination: %s", header.Name)
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, os.FileMode(header.Mode)); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", target, err)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return fmt.Errorf("failed to create parent directory: %w", err)
			}
			outFile, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, os.FileMode(header.Mode))
			if err != nil {
				return fmt.Errorf("failed to create file %s: %w", target, err)
			}
			if _, err := io.Copy(outFile, tr); err != nil {
				outFile.Close()
				return fmt.Errorf("failed to write file %s: %w", target, err)
			}
			if err := outFile.Close(); err != nil {
				return fmt.Errorf("failed to close file %s: %w", target, err)
			}
		case tar.TypeSymlink:
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return fmt.Errorf("failed to create parent directory: %w", err)
			}
			if err := os.Symlink(header.Linkname, target); err != nil {
				return fmt.Errorf("failed to create symlink %s: %w", target, err)
			}
		}
	}

	return nil
}
