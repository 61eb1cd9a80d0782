/*
Copyright © 2026 tunaflsh
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tunaflsh/external-mods-manager/internal/manifest"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tracked mods and their recorded state",
	RunE:  runList,
}

func runList(cmd *cobra.Command, _ []string) error {
	manifestPath, _ := cmd.Flags().GetString("manifest")

	m, err := manifest.Load(manifestPath)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Target Minecraft version: %s\n\n", m.Version)
	fmt.Fprintf(out, "%-20s %-12s %-40s %s\n", "NAME", "VERSION", "FILE", "STATE")
	for _, mod := range m.Mods {
		state := "enabled"
		if mod.Disabled {
			state = "disabled"
		}
		version := mod.Version
		if version == "" {
			version = "-"
		}
		file := mod.File
		if file == "" {
			file = "-"
		}
		fmt.Fprintf(out, "%-20s %-12s %-40s %s\n", mod.Name, version, file, state)
	}
	return nil
}
