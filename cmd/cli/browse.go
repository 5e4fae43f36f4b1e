// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var errNotTerminal = errors.New("browse needs an interactive terminal")

func newBrowseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Pick and edit tips interactively",
		Long: `Opens a full-screen list of tips with a preview of the selected one.
Press / to filter by substring, enter to edit, n to create a tip named after
the filter, and q to quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.prepare(cmd); err != nil {
				return err
			}
			if !a.isTerminal() {
				cmd.SilenceUsage = true
				return errNotTerminal
			}
			return a.runBrowser(a.store, a.settings.Editor, a.settings.InvalidLines)
		},
	}
}
