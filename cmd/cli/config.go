// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tips/internal/config"
)

func newConfigCmd(a *app) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect tips configuration",
		Long: `Shows where tips reads its configuration from.

Settings are taken from the environment first (TIPS_HOME, EDITOR), then from
the config file, then from defaults. The config file is YAML:

  tips_home: ~/notes/tips
  editor: nvim
  invalid_lines: warn   # skip (default), warn or fail`,
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.prepare(cmd); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.settings.ConfigPath)
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective settings and where each came from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.prepare(cmd); err != nil {
				return err
			}
			printSettings(cmd, a.settings)
			return nil
		},
	})

	return configCmd
}

func printSettings(cmd *cobra.Command, s config.Settings) {
	out := cmd.OutOrStdout()

	switch {
	case s.ConfigPath == "":
		fmt.Fprintf(out, "Config file:   %s\n", dimColor.Sprint("(none)"))
	case fileExists(s.ConfigPath):
		fmt.Fprintf(out, "Config file:   %s\n", identifierColor.Sprint(s.ConfigPath))
	default:
		fmt.Fprintf(out, "Config file:   %s %s\n", identifierColor.Sprint(s.ConfigPath), dimColor.Sprint("(not found)"))
	}

	fmt.Fprintf(out, "Tips home:     %s %s\n", identifierColor.Sprint(s.TipsHome), dimColor.Sprintf("(%s)", s.TipsHomeSource))
	if !fileExists(s.TipsHome) {
		warnColor.Fprintf(out, "               directory does not exist yet; create it with 'tips edit <name> --init'\n")
	}
	fmt.Fprintf(out, "Editor:        %s %s\n", identifierColor.Sprint(s.Editor), dimColor.Sprintf("(%s)", s.EditorSource))
	fmt.Fprintf(out, "Invalid lines: %s %s\n", identifierColor.Sprint(s.InvalidLines), dimColor.Sprintf("(%s)", s.InvalidLinesSource))
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
