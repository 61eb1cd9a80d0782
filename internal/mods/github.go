package mods

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"

	"github.com/tunaflsh/external-mods-manager/pkg/logger"
	"github.com/tunaflsh/external-mods-manager/pkg/transport"
)

// assetPattern parses release asset filenames of the shape
// <mod-name>-<game-version>-<mod-version>.<ext>. The game version is either
// a dotted version with an optional -preN/-rcN suffix, or a snapshot code
// like 24w10a.
var assetPattern = regexp.MustCompile(`^(.+?)-(\d+(?:\.\d+)+(?:-(?:pre|rc)\d+)?|\d{2}w\d{2}[a-z]+)-(.+)\.([A-Za-z0-9]+)$`)

// releasesExtractor reads the repository's releases listing from the GitHub
// API and keys every asset by the game version embedded in its filename.
type releasesExtractor struct {
	name  string
	repo  string
	http  transport.HTTPFetcher
	token string
	log   *logger.Logger
}

func newReleasesExtractor(name, repo string, client transport.HTTPFetcher, token string, log *logger.Logger) Extractor {
	return &releasesExtractor{name: name, repo: repo, http: client, token: token, log: log}
}

// githubRelease matches the GitHub releases API response structure
type githubRelease struct {
	TagName string `json:"tag_name"`
	Assets  []struct {
		Name               string `json:"name"`
		BrowserDownloadURL string `json:"browser_download_url"`
	} `json:"assets"`
}

func (e *releasesExtractor) Name() string {
	return e.name
}

func (e *releasesExtractor) Extract() (VersionMap, error) {
	apiURL := fmt.Sprintf("https://api.github.com/repos/%s/releases", e.repo)

	req, err := http.NewRequest(http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", transport.UserAgent)
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if e.token != "" {
		req.Header.Set("Authorization", "token "+e.token)
	}

	resp, err := e.http.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: apiURL, Wrapped: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		e.log.Error("Releases listing failed", logger.Int("status", resp.StatusCode), logger.String("url", apiURL))
		return nil, &StatusError{URL: apiURL, Code: resp.StatusCode}
	}

	var releases []githubRelease
	if err := json.NewDecoder(resp.Body).Decode(&releases); err != nil {
		return nil, &ParseError{Source: "releases", Message: "listing response", Wrapped: err}
	}
	if len(releases) == 0 {
		return nil, &ParseError{Source: "releases", Message: "listing: no releases published"}
	}

	// Releases arrive newest first; the first asset seen for a game
	// version wins so older builds never shadow newer ones.
	versions := make(VersionMap)
	for _, release := range releases {
		for _, asset := range release.Assets {
			m := assetPattern.FindStringSubmatch(asset.Name)
			if m == nil {
				return nil, &ParseError{
					Source:  "releases",
					Message: fmt.Sprintf("asset name %q (expected <mod>-<gameversion>-<modversion>.<ext>)", asset.Name),
				}
			}
			gameVersion := m[2]
			if _, ok := versions[gameVersion]; !ok {
				versions[gameVersion] = asset.BrowserDownloadURL
			}
		}
	}

	e.log.Debug("Extracted versions", logger.Any("versions", versions))
	return versions, nil
}
