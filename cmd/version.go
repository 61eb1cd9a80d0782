/*
Copyright © 2026 tunaflsh
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tunaflsh/external-mods-manager/pkg/buildinfo"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the modman version",
	Run: func(cmd *cobra.Command, _ []string) {
		version := buildinfo.BinaryVersion
		if version == "dev" {
			if mod := buildinfo.ModuleVersion(); mod != "" {
				version = mod
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "modman %s\n", version)
	},
}
