package mods

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/tunaflsh/external-mods-manager/pkg/logger"
)

// VersionMap maps an upstream-published game version string to its
// artifact's download URL. Built fresh per run by an extractor, never
// persisted. Keys are upstream-defined and not normalized.
type VersionMap map[string]string

// Resolution is the outcome of matching a VersionMap against a target
// version. Version is always a key of the map it was resolved from.
type Resolution struct {
	Version string
	URL     string
}

// Resolve picks the best candidate for target out of candidates under a
// tiered fallback policy: exact version, then same major.minor patch line,
// then bare major.minor. The first tier with exactly one candidate wins.
// More than one candidate at a tier is ErrAmbiguousVersion, never a silent
// pick: it means the upstream metadata is malformed for this target, which
// is a different problem than a mod with no compatible build yet.
func Resolve(log *logger.Logger, target string, candidates VersionMap) (Resolution, error) {
	// Tier 1: exact. Full-token equality, so target 1.20.1 never picks up
	// 1.20.10 or 1.20.1-pre1.
	if url, ok := candidates[target]; ok {
		log.Debug("Exact version found", logger.String("version", target))
		return Resolution{Version: target, URL: url}, nil
	}

	parts := strings.Split(target, ".")

	// Tier 2: patch wildcard. Only meaningful when the target has an
	// explicit patch component; a two-component target skips straight to
	// tier 3.
	if len(parts) == 3 {
		prefix := regexp.MustCompile(`(^|\D)` + regexp.QuoteMeta(parts[0]+"."+parts[1]+"."))
		var matches []string
		for version := range candidates {
			if prefix.MatchString(version) {
				matches = append(matches, version)
			}
		}
		sort.Strings(matches)

		if len(matches) > 1 {
			log.Error("More than one version found", logger.Any("versions", matches))
			return Resolution{}, fmt.Errorf("%w for %s: %v", ErrAmbiguousVersion, target, matches)
		}
		if len(matches) == 1 {
			log.Warn("No exact version found", logger.String("using", matches[0]))
			return Resolution{Version: matches[0], URL: candidates[matches[0]]}, nil
		}
	}

	// Tier 3: bare major.minor.
	if len(parts) >= 2 {
		minor := parts[0] + "." + parts[1]
		if url, ok := candidates[minor]; ok {
			log.Warn("No exact version found", logger.String("using", minor))
			return Resolution{Version: minor, URL: url}, nil
		}
	}

	log.Error("No matching version found", logger.String("target", target))
	return Resolution{}, fmt.Errorf("%w for %s", ErrNoMatchingVersion, target)
}
