package mods

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tunaflsh/external-mods-manager/pkg/transport"
)

const jarURL = "https://objects.example.com/signed/opaque-path"

func newTestFetcher(t *testing.T, client transport.HTTPFetcher) (*Fetcher, string) {
	t.Helper()
	dir := t.TempDir()
	return NewFetcher(client, dir, testLog()), dir
}

func addJarResponse(client *transport.MockHTTPFetcher, filename, body string) {
	client.AddResponseWithHeaders(jarURL, 200, body, map[string]string{
		"Content-Disposition": `attachment; filename="` + filename + `"`,
	})
}

func TestFetchDownloads(t *testing.T) {
	client := transport.NewMockHTTPFetcher()
	addJarResponse(client, "mod-1.1.jar", "jar bytes")
	fetcher, dir := newTestFetcher(t, client)

	result, err := fetcher.Fetch(jarURL, "")
	require.NoError(t, err)

	assert.Equal(t, StatusUpdated, result.Status)
	assert.Equal(t, "mod-1.1.jar", result.File)

	data, err := os.ReadFile(filepath.Join(dir, "mod-1.1.jar"))
	require.NoError(t, err)
	assert.Equal(t, "jar bytes", string(data))
}

func TestFetchIdempotent(t *testing.T) {
	client := transport.NewMockHTTPFetcher()
	addJarResponse(client, "mod-1.1.jar", "jar bytes")
	fetcher, _ := newTestFetcher(t, client)

	first, err := fetcher.Fetch(jarURL, "")
	require.NoError(t, err)
	require.Equal(t, StatusUpdated, first.Status)

	second, err := fetcher.Fetch(jarURL, first.File)
	require.NoError(t, err)
	assert.Equal(t, StatusAlreadyCurrent, second.Status)
	assert.Equal(t, "mod-1.1.jar", second.File)

	// The second call must not transfer the body again
	assert.Equal(t, 1, client.CallCount("GET "+jarURL))
	assert.Equal(t, 2, client.CallCount("HEAD "+jarURL))
}

func TestFetchReplacesPreviousFile(t *testing.T) {
	client := transport.NewMockHTTPFetcher()
	addJarResponse(client, "mod-1.1.jar", "new")
	fetcher, dir := newTestFetcher(t, client)

	oldPath := filepath.Join(dir, "mod-1.0.jar")
	require.NoError(t, os.WriteFile(oldPath, []byte("old"), 0o644))

	result, err := fetcher.Fetch(jarURL, "mod-1.0.jar")
	require.NoError(t, err)

	assert.Equal(t, StatusUpdated, result.Status)
	assert.NoFileExists(t, oldPath)
	assert.FileExists(t, filepath.Join(dir, "mod-1.1.jar"))
}

func TestFetchKeepsPreviousFileWithSameName(t *testing.T) {
	client := transport.NewMockHTTPFetcher()
	addJarResponse(client, "mod-1.0.jar", "same")
	fetcher, dir := newTestFetcher(t, client)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "mod-1.0.jar"), []byte("already here"), 0o644))

	result, err := fetcher.Fetch(jarURL, "mod-1.0.jar")
	require.NoError(t, err)

	assert.Equal(t, StatusAlreadyCurrent, result.Status)
	data, err := os.ReadFile(filepath.Join(dir, "mod-1.0.jar"))
	require.NoError(t, err)
	assert.Equal(t, "already here", string(data))
}

func TestFetchMissingContentDisposition(t *testing.T) {
	client := transport.NewMockHTTPFetcher()
	client.AddResponse(jarURL, 200, "jar bytes")
	fetcher, dir := newTestFetcher(t, client)

	_, err := fetcher.Fetch(jarURL, "")
	assert.ErrorIs(t, err, ErrNoFilename)

	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries, "failed fetch must leave the filesystem untouched")
}

func TestFetchHeadFailure(t *testing.T) {
	client := transport.NewMockHTTPFetcher()
	client.AddResponse(jarURL, 404, "Not Found")
	fetcher, _ := newTestFetcher(t, client)

	_, err := fetcher.Fetch(jarURL, "")
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, 404, statusErr.Code)
	// No GET after a failed HEAD
	assert.Equal(t, 0, client.CallCount("GET "+jarURL))
}

func TestFetchDownloadFailureKeepsPreviousFile(t *testing.T) {
	client := transport.NewMockHTTPFetcher()
	client.AddResponseWithHeaders("HEAD "+jarURL, 200, "", map[string]string{
		"Content-Disposition": `attachment; filename="mod-1.1.jar"`,
	})
	client.AddResponse("GET "+jarURL, 500, "boom")
	fetcher, dir := newTestFetcher(t, client)

	oldPath := filepath.Join(dir, "mod-1.0.jar")
	require.NoError(t, os.WriteFile(oldPath, []byte("old"), 0o644))

	_, err := fetcher.Fetch(jarURL, "mod-1.0.jar")
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, 500, statusErr.Code)

	// The previous file survives a failed replace
	assert.FileExists(t, oldPath)
}

func TestFilenameFromDisposition(t *testing.T) {
	tests := []struct {
		name        string
		disposition string
		expected    string
		wantErr     bool
	}{
		{
			name:        "quoted filename",
			disposition: `attachment; filename="itemscroller-1.20.1-7.2.1.jar"`,
			expected:    "itemscroller-1.20.1-7.2.1.jar",
		},
		{
			name:        "unquoted filename",
			disposition: `attachment; filename=mod.jar`,
			expected:    "mod.jar",
		},
		{
			name:        "url-escaped filename",
			disposition: `attachment; filename="mod%20pack.jar"`,
			expected:    "mod pack.jar",
		},
		{
			name:        "path components stripped",
			disposition: `attachment; filename="../../etc/mod.jar"`,
			expected:    "mod.jar",
		},
		{
			name:        "missing header",
			disposition: "",
			wantErr:     true,
		},
		{
			name:        "no filename parameter",
			disposition: "attachment",
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, err := filenameFromDisposition(tt.disposition)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNoFilename)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, name)
		})
	}
}
