/*
Copyright © 2026 tunaflsh
*/
package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tunaflsh/external-mods-manager/internal/manifest"
	"github.com/tunaflsh/external-mods-manager/internal/mods"
	"github.com/tunaflsh/external-mods-manager/pkg/config"
	"github.com/tunaflsh/external-mods-manager/pkg/logger"
	"github.com/tunaflsh/external-mods-manager/pkg/transport"
)

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update every mod to its latest compatible release",
	Long: `Update resolves each enabled mod in the manifest against the target
Minecraft version, downloads the matching jar when it is not already
present, and replaces the previously downloaded file. Mods that fail to
resolve or download are left untouched and retried on the next run.`,
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().Bool("dry-run", false, "Resolve versions without downloading or changing anything")
	updateCmd.Flags().Int("jobs", 0, "Number of mods to update concurrently (0 uses the config value)")
}

func runUpdate(cmd *cobra.Command, _ []string) error {
	manifestPath, _ := cmd.Flags().GetString("manifest")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	jobs, _ := cmd.Flags().GetInt("jobs")

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if jobs < 1 {
		jobs = cfg.Update.Jobs
	}

	m, err := manifest.Load(manifestPath)
	if err != nil {
		return err
	}

	dir := cfg.Download.Dir
	if dir == "" {
		dir = filepath.Dir(manifestPath)
	}

	logger.Info("Updating mods",
		logger.Int("mods", len(m.Mods)),
		logger.String("minecraft", m.Version))

	client := transport.NewRealHTTPFetcher(transport.NewClient(cfg.Download.Timeout))
	updater := mods.NewUpdater(mods.Options{
		Client: client,
		Dir:    dir,
		Token:  cfg.GitHub.Token,
		Jobs:   jobs,
		DryRun: dryRun,
	})

	summary := updater.Run(m)

	if !dryRun {
		m.Prune(dir)
		if err := m.Save(manifestPath); err != nil {
			return err
		}
	}

	logger.Info("Done!",
		logger.Int("updated", summary.Updated),
		logger.Int("current", summary.Current),
		logger.Int("skipped", summary.Skipped),
		logger.Int("failed", summary.Failed))
	return nil
}
