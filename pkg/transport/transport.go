// Package transport abstracts HTTP access so network-touching components
// can be exercised against canned responses in tests.
package transport

import (
	"crypto/tls"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// UserAgent identifies the client on every outbound request. GitHub's API
// terms require a product/contact string for unauthenticated access.
const UserAgent = "external-mods-manager (github.com/tunaflsh/external-mods-manager)"

// HTTPFetcher abstracts HTTP calls for testability
type HTTPFetcher interface {
	Get(url string) (*http.Response, error)
	Do(req *http.Request) (*http.Response, error)
}

// NewClient builds an HTTP client with a timeout and TLS verification.
// Redirects are followed with the default policy.
func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
	}
}

// RealHTTPFetcher wraps http.Client for production use
type RealHTTPFetcher struct {
	client *http.Client
}

// NewRealHTTPFetcher creates a production HTTP fetcher
func NewRealHTTPFetcher(client *http.Client) HTTPFetcher {
	return &RealHTTPFetcher{client: client}
}

func (f *RealHTTPFetcher) Get(url string) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return f.Do(req)
}

func (f *RealHTTPFetcher) Do(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", UserAgent)
	}
	return f.client.Do(req)
}

type mockResponse struct {
	statusCode int
	body       string
	header     http.Header
}

// MockHTTPFetcher simulates HTTP responses for testing. Responses are
// registered per URL, or per "METHOD URL" when the method matters.
// Every request is recorded in Calls as "METHOD URL". Safe for use from
// concurrent requests.
type MockHTTPFetcher struct {
	mu        sync.Mutex
	responses map[string]*mockResponse
	errors    map[string]error
	Calls     []string
}

// NewMockHTTPFetcher creates a mock HTTP fetcher
func NewMockHTTPFetcher() *MockHTTPFetcher {
	return &MockHTTPFetcher{
		responses: make(map[string]*mockResponse),
		errors:    make(map[string]error),
	}
}

// AddResponse registers a mock response for a URL (any method)
func (m *MockHTTPFetcher) AddResponse(urlStr string, statusCode int, body string) {
	m.responses[urlStr] = &mockResponse{statusCode: statusCode, body: body, header: make(http.Header)}
}

// AddResponseWithHeaders registers a mock response carrying response headers
func (m *MockHTTPFetcher) AddResponseWithHeaders(urlStr string, statusCode int, body string, headers map[string]string) {
	h := make(http.Header)
	for k, v := range headers {
		h.Set(k, v)
	}
	m.responses[urlStr] = &mockResponse{statusCode: statusCode, body: body, header: h}
}

// AddError registers a mock transport error for a URL
func (m *MockHTTPFetcher) AddError(urlStr string, err error) {
	m.errors[urlStr] = err
}

// CallCount returns how many recorded calls have the given "METHOD URL" key
func (m *MockHTTPFetcher) CallCount(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.Calls {
		if c == key {
			n++
		}
	}
	return n
}

func (m *MockHTTPFetcher) Get(urlStr string) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, err
	}
	return m.Do(req)
}

func (m *MockHTTPFetcher) Do(req *http.Request) (*http.Response, error) {
	urlStr := req.URL.String()
	m.mu.Lock()
	m.Calls = append(m.Calls, req.Method+" "+urlStr)
	m.mu.Unlock()

	if err, ok := m.errors[req.Method+" "+urlStr]; ok {
		return nil, err
	}
	if err, ok := m.errors[urlStr]; ok {
		return nil, err
	}

	tmpl, ok := m.responses[req.Method+" "+urlStr]
	if !ok {
		tmpl, ok = m.responses[urlStr]
	}
	if !ok {
		// Unknown URLs 404
		return m.materialize(&mockResponse{statusCode: 404, body: "Not Found", header: make(http.Header)}, req), nil
	}
	return m.materialize(tmpl, req), nil
}

func (m *MockHTTPFetcher) materialize(tmpl *mockResponse, req *http.Request) *http.Response {
	body := tmpl.body
	if req.Method == http.MethodHead {
		body = ""
	}
	parsedURL, _ := url.Parse(req.URL.String())
	return &http.Response{
		StatusCode: tmpl.statusCode,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     tmpl.header.Clone(),
		Request:    &http.Request{URL: parsedURL, Method: req.Method},
	}
}
