package mods

import (
	"golang.org/x/sync/errgroup"

	"github.com/tunaflsh/external-mods-manager/internal/manifest"
	"github.com/tunaflsh/external-mods-manager/pkg/logger"
	"github.com/tunaflsh/external-mods-manager/pkg/transport"
)

// Outcome is the terminal state of one mod's update attempt
type Outcome int

const (
	// OutcomeUpdated means a new file was downloaded and recorded
	OutcomeUpdated Outcome = iota
	// OutcomeCurrent means the resolved file was already present
	OutcomeCurrent
	// OutcomeSkipped means the mod was disabled or the run was a dry run
	OutcomeSkipped
	// OutcomeFailed means extraction, resolution, or fetch failed; the
	// descriptor was not advanced
	OutcomeFailed
)

// Options configures an update run
type Options struct {
	// Client is the HTTP client shared by all extractors and fetches
	Client transport.HTTPFetcher

	// Dir is the directory resident mod files live in
	Dir string

	// Token is an optional GitHub API token
	Token string

	// Jobs bounds how many mods are updated concurrently. 1 reproduces
	// manifest order.
	Jobs int

	// DryRun resolves versions but performs no downloads and records
	// nothing
	DryRun bool
}

// Summary aggregates the terminal outcomes of a whole run
type Summary struct {
	Updated int
	Current int
	Skipped int
	Failed  int
}

// Updater drives the extract → resolve → fetch lifecycle for each mod
type Updater struct {
	opts Options
}

// NewUpdater creates an updater
func NewUpdater(opts Options) *Updater {
	if opts.Jobs < 1 {
		opts.Jobs = 1
	}
	return &Updater{opts: opts}
}

// Run updates every mod in the manifest and aggregates outcomes after all
// mods reach a terminal state. Mods are independent: a failure in one never
// affects another, and descriptors are only advanced for mods that
// succeeded. The caller persists the manifest afterwards.
func (u *Updater) Run(m *manifest.Manifest) Summary {
	outcomes := make([]Outcome, len(m.Mods))

	g := new(errgroup.Group)
	g.SetLimit(u.opts.Jobs)
	for i, mod := range m.Mods {
		i, mod := i, mod
		g.Go(func() error {
			outcomes[i] = u.UpdateMod(mod, m.Version)
			return nil
		})
	}
	_ = g.Wait()

	var summary Summary
	for _, outcome := range outcomes {
		switch outcome {
		case OutcomeUpdated:
			summary.Updated++
		case OutcomeCurrent:
			summary.Current++
		case OutcomeSkipped:
			summary.Skipped++
		case OutcomeFailed:
			summary.Failed++
		}
	}
	return summary
}

// UpdateMod runs one mod's lifecycle and records the resolved version and
// filename into the descriptor on success. Every failure is recovered here:
// it is logged with mod-scoped context and degrades to "this mod was not
// updated this run".
func (u *Updater) UpdateMod(mod *manifest.Mod, target string) Outcome {
	log := logger.Named(mod.Name)

	if mod.Disabled {
		log.Debug("Disabled, skipping")
		return OutcomeSkipped
	}

	extractor, err := NewExtractor(mod.Name, mod.Source, u.opts.Client, u.opts.Token)
	if err != nil {
		log.Error("Unusable source", logger.Err(err))
		return OutcomeFailed
	}

	versions, err := extractor.Extract()
	if err != nil {
		log.Error("Extraction failed", logger.Err(err))
		return OutcomeFailed
	}

	resolved, err := Resolve(log, target, versions)
	if err != nil {
		return OutcomeFailed
	}

	if u.opts.DryRun {
		log.Info("Would download", logger.String("version", resolved.Version), logger.String("url", resolved.URL))
		return OutcomeSkipped
	}

	result, err := NewFetcher(u.opts.Client, u.opts.Dir, log).Fetch(resolved.URL, mod.File)
	if err != nil {
		log.Error("Fetch failed", logger.Err(err))
		return OutcomeFailed
	}

	mod.Version = resolved.Version
	mod.File = result.File

	if result.Status == StatusAlreadyCurrent {
		return OutcomeCurrent
	}
	return OutcomeUpdated
}
