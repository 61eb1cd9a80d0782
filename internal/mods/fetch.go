package mods

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/tunaflsh/external-mods-manager/pkg/logger"
	"github.com/tunaflsh/external-mods-manager/pkg/transport"
)

// FetchStatus tags the outcome of a successful fetch
type FetchStatus int

const (
	// StatusUpdated means a new file was downloaded
	StatusUpdated FetchStatus = iota
	// StatusAlreadyCurrent means the resolved file was already on disk and
	// no body transfer was performed
	StatusAlreadyCurrent
)

// FetchResult reports the resolved filename and how it got there
type FetchResult struct {
	Status FetchStatus
	File   string
}

// Fetcher downloads a resolved artifact into dir, discovering the real
// filename from response metadata, and replaces the mod's previous file.
// A mod keeps at most one resident file at a time.
type Fetcher struct {
	http transport.HTTPFetcher
	dir  string
	log  *logger.Logger
}

// NewFetcher creates a fetch engine writing into dir
func NewFetcher(client transport.HTTPFetcher, dir string, log *logger.Logger) *Fetcher {
	return &Fetcher{http: client, dir: dir, log: log}
}

// Fetch resolves the artifact's filename via a HEAD request, downloads it
// unless a file of that name already exists, and on success deletes
// previous when it differs from the new filename. Any failure leaves prior
// state untouched; a partially written file from an interrupted transfer is
// never referenced.
func (f *Fetcher) Fetch(artifactURL, previous string) (*FetchResult, error) {
	filename, err := f.resolveFilename(artifactURL)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(f.dir, filename)
	if _, err := os.Stat(path); err == nil {
		f.log.Info("Already up to date", logger.String("file", filename))
		return &FetchResult{Status: StatusAlreadyCurrent, File: filename}, nil
	}

	f.log.Info("Downloading", logger.String("file", filename))
	if err := f.download(artifactURL, path); err != nil {
		return nil, err
	}

	if previous != "" && previous != filename {
		oldPath := filepath.Join(f.dir, previous)
		if _, err := os.Stat(oldPath); err == nil {
			if err := os.Remove(oldPath); err != nil {
				f.log.Error("Failed to remove previous file", logger.String("file", previous), logger.Err(err))
			} else {
				f.log.Info("Download complete", logger.String("updated", previous), logger.String("to", filename))
				return &FetchResult{Status: StatusUpdated, File: filename}, nil
			}
		}
	}

	f.log.Info("Download complete", logger.String("saved", filename))
	return &FetchResult{Status: StatusUpdated, File: filename}, nil
}

// resolveFilename issues a metadata-only request and extracts the true
// filename from Content-Disposition. The URL path is never trusted as a
// filename source: redirected and signed URLs are typically opaque.
func (f *Fetcher) resolveFilename(artifactURL string) (string, error) {
	req, err := http.NewRequest(http.MethodHead, artifactURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", transport.UserAgent)

	resp, err := f.http.Do(req)
	if err != nil {
		return "", &NetworkError{URL: artifactURL, Wrapped: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		f.log.Error("Filename header request failed", logger.Int("status", resp.StatusCode), logger.String("url", artifactURL))
		return "", &StatusError{URL: artifactURL, Code: resp.StatusCode}
	}

	return filenameFromDisposition(resp.Header.Get("Content-Disposition"))
}

// download streams the response body straight to path
func (f *Fetcher) download(artifactURL, path string) error {
	req, err := http.NewRequest(http.MethodGet, artifactURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", transport.UserAgent)

	resp, err := f.http.Do(req)
	if err != nil {
		return &NetworkError{URL: artifactURL, Wrapped: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		f.log.Error("Download failed", logger.Int("status", resp.StatusCode), logger.String("url", artifactURL))
		return &StatusError{URL: artifactURL, Code: resp.StatusCode}
	}

	out, err := os.Create(path) // #nosec G304 -- filename is sanitized to its base name
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	written, err := io.Copy(out, resp.Body)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	f.log.Debug("Download finished", logger.Int("bytes", int(written)))
	return nil
}

// filenameFromDisposition extracts and sanitizes the filename parameter of
// a Content-Disposition header value
func filenameFromDisposition(disposition string) (string, error) {
	if disposition == "" {
		return "", ErrNoFilename
	}
	_, params, err := mime.ParseMediaType(disposition)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoFilename, err)
	}
	name := params["filename"]
	if name == "" {
		return "", ErrNoFilename
	}
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}
	// Strip any path components an upstream might smuggle in
	name = filepath.Base(name)
	if name == "." || name == string(filepath.Separator) || name == "/" {
		return "", ErrNoFilename
	}
	return name, nil
}
