package mods

import (
	"fmt"
	"strings"

	"github.com/tunaflsh/external-mods-manager/pkg/logger"
	"github.com/tunaflsh/external-mods-manager/pkg/transport"
)

// Extractor retrieves and parses one upstream source's published-artifact
// metadata into a VersionMap. Implementations differ per upstream shape:
// most mods publish structured releases, a few only maintain a table in
// their README.
type Extractor interface {
	// Name returns the mod this extractor serves
	Name() string

	// Extract fetches upstream metadata and returns the full game-version
	// to download-URL map
	Extract() (VersionMap, error)
}

// extractorFactory builds an extractor for one mod
type extractorFactory func(name, repo string, client transport.HTTPFetcher, token string, log *logger.Logger) Extractor

// extractorRegistry selects an extractor variant by mod name. Mods not
// listed here use the GitHub releases API.
var extractorRegistry = map[string]extractorFactory{
	// SeedcrackerX publishes per-version jars only in a README table
	"SeedcrackerX": newReadmeExtractor,
}

// NewExtractor builds the extractor registered for the mod name, defaulting
// to the releases-API extractor. Returns ErrBadSource when source does not
// identify a hosted repository.
func NewExtractor(name, source string, client transport.HTTPFetcher, token string) (Extractor, error) {
	repo, err := splitRepoPath(source)
	if err != nil {
		return nil, err
	}

	log := logger.Named(name)
	if factory, ok := extractorRegistry[name]; ok {
		return factory(name, repo, client, token, log), nil
	}
	return newReleasesExtractor(name, repo, client, token, log), nil
}

// splitRepoPath reduces a repository URL to its "owner/repo" form.
// Accepted shapes: host/owner/repo with an optional scheme and an optional
// trailing .git.
func splitRepoPath(source string) (string, error) {
	s := strings.TrimSpace(source)
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimSuffix(s, "/")
	s = strings.TrimSuffix(s, ".git")

	parts := strings.Split(s, "/")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return "", fmt.Errorf("%w: %s (expected host/owner/repo)", ErrBadSource, source)
	}
	return parts[1] + "/" + parts[2], nil
}
