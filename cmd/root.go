/*
Copyright © 2026 tunaflsh
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/tunaflsh/external-mods-manager/internal/manifest"
	"github.com/tunaflsh/external-mods-manager/pkg/buildinfo"
	"github.com/tunaflsh/external-mods-manager/pkg/exitcode"
	"github.com/tunaflsh/external-mods-manager/pkg/logger"
)

// newRootCommand creates a fresh root command instance.
// This factory pattern allows tests to create isolated command trees without shared state.
func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "modman",
		Short: "Keep Minecraft mods in sync with their upstream releases",
		Long: `Modman tracks a list of mods in a manifest (mods.json) and keeps their
jar files synchronized with the latest release compatible with one target
Minecraft version.

Examples:
   modman update             # Update every mod in mods.json
   modman update --dry-run   # Resolve versions without downloading
   modman list               # Show tracked mods and their state`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			initializeLogger(cmd)
		},
	}

	// Add global flags
	cmd.PersistentFlags().String("manifest", manifest.DefaultFile, "Path to the mods manifest")
	cmd.PersistentFlags().String("log-level", "info", "Set log level (trace|debug|info|warn|error)")
	cmd.PersistentFlags().Bool("json", false, "Output logs in JSON format")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	cmd.Version = buildinfo.BinaryVersion
	cmd.SetVersionTemplate("modman {{.Version}}\n")

	return cmd
}

// registerSubcommands adds all subcommands to the root command.
// This is called from init() for production and can be called explicitly in tests.
func registerSubcommands(cmd *cobra.Command) {
	cmd.AddCommand(updateCmd)
	cmd.AddCommand(listCmd)
	cmd.AddCommand(versionCmd)
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCommand()

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("Command execution failed", logger.Err(err))
		os.Exit(exitcode.GeneralError)
	}
}

func init() {
	registerSubcommands(rootCmd)
}

// initializeLogger sets up the logger based on command flags
func initializeLogger(cmd *cobra.Command) {
	logLevelStr, _ := cmd.Flags().GetString("log-level")
	jsonLogs, _ := cmd.Flags().GetBool("json")
	noColor, _ := cmd.Flags().GetBool("no-color")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	logger.Initialize(logger.Config{
		Level:    logger.ParseLevel(logLevelStr),
		UseColor: !noColor,
		JSON:     jsonLogs,
		DryRun:   dryRun,
	})
}
