package transport

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealFetcherSetsUserAgent(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
	}))
	defer server.Close()

	fetcher := NewRealHTTPFetcher(NewClient(5 * time.Second))
	resp, err := fetcher.Get(server.URL)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, UserAgent, gotUA)
}

func TestRealFetcherKeepsExplicitUserAgent(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
	}))
	defer server.Close()

	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "custom")

	fetcher := NewRealHTTPFetcher(NewClient(5 * time.Second))
	resp, err := fetcher.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, "custom", gotUA)
}

func TestMockPerMethodResponses(t *testing.T) {
	mock := NewMockHTTPFetcher()
	mock.AddResponse("HEAD https://x/a", 200, "")
	mock.AddResponse("GET https://x/a", 500, "boom")

	head, err := http.NewRequest(http.MethodHead, "https://x/a", nil)
	require.NoError(t, err)
	resp, err := mock.Do(head)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = mock.Get("https://x/a")
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)

	assert.Equal(t, 1, mock.CallCount("HEAD https://x/a"))
	assert.Equal(t, 1, mock.CallCount("GET https://x/a"))
}

func TestMockHeadStripsBody(t *testing.T) {
	mock := NewMockHTTPFetcher()
	mock.AddResponseWithHeaders("https://x/a", 200, "body", map[string]string{"Content-Disposition": `attachment; filename="a.jar"`})

	head, err := http.NewRequest(http.MethodHead, "https://x/a", nil)
	require.NoError(t, err)
	resp, err := mock.Do(head)
	require.NoError(t, err)

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Empty(t, data)
	assert.NotEmpty(t, resp.Header.Get("Content-Disposition"))
}

func TestMockUnknownURL404s(t *testing.T) {
	mock := NewMockHTTPFetcher()
	resp, err := mock.Get("https://x/unknown")
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}
