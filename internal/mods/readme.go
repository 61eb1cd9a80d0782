package mods

import (
	"fmt"
	"io"
	"net/http"
	"regexp"

	"github.com/tunaflsh/external-mods-manager/pkg/logger"
	"github.com/tunaflsh/external-mods-manager/pkg/transport"
)

var (
	// versionTabHeading finds the "Version Tab" markdown heading at any
	// level, case-insensitively
	versionTabHeading = regexp.MustCompile(`(?mi)^(#+)[ \t]+version tab[ \t]*$`)

	// versionTabRow parses table rows of the shape
	// | <mc_version> | [<mod_version>](<jar_url>) |
	versionTabRow = regexp.MustCompile(`\|[ \t]*([A-Za-z0-9._-]+)[ \t]*\|[ \t]*\[([A-Za-z0-9._-]+)\]\(([^)\s]+)\)`)
)

// readmeExtractor scrapes the version table out of a repository's README.
// Some upstreams never publish structured releases and only maintain a
// markdown table of per-version jar links on their default branch.
type readmeExtractor struct {
	name string
	repo string
	http transport.HTTPFetcher
	log  *logger.Logger
}

func newReadmeExtractor(name, repo string, client transport.HTTPFetcher, _ string, log *logger.Logger) Extractor {
	return &readmeExtractor{name: name, repo: repo, http: client, log: log}
}

func (e *readmeExtractor) Name() string {
	return e.name
}

func (e *readmeExtractor) Extract() (VersionMap, error) {
	readmeURL := fmt.Sprintf("https://raw.githubusercontent.com/%s/master/README.md", e.repo)

	req, err := http.NewRequest(http.MethodGet, readmeURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", transport.UserAgent)

	resp, err := e.http.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: readmeURL, Wrapped: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		e.log.Error("README download failed", logger.Int("status", resp.StatusCode), logger.String("url", readmeURL))
		return nil, &StatusError{URL: readmeURL, Code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{URL: readmeURL, Wrapped: err}
	}

	section, err := versionTabSection(string(body))
	if err != nil {
		e.log.Error("Version Tab not found in README.md")
		return nil, err
	}

	versions := make(VersionMap)
	for _, row := range versionTabRow.FindAllStringSubmatch(section, -1) {
		versions[row[1]] = row[3]
	}

	e.log.Debug("Extracted versions", logger.Any("versions", versions))
	return versions, nil
}

// versionTabSection returns the README body between the Version Tab heading
// and the next heading of equal or higher level (or end of document).
func versionTabSection(readme string) (string, error) {
	loc := versionTabHeading.FindStringSubmatchIndex(readme)
	if loc == nil {
		return "", &ParseError{Source: "readme", Message: `section "Version Tab" not found`}
	}

	level := loc[3] - loc[2] // heading marker count
	rest := readme[loc[1]:]

	next := regexp.MustCompile(fmt.Sprintf(`(?m)^#{1,%d}[ \t]`, level)).FindStringIndex(rest)
	if next != nil {
		rest = rest[:next[0]]
	}
	return rest, nil
}
