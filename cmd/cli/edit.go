// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"github.com/spf13/cobra"

	"tips/internal/editor"
	"tips/internal/logger"
)

func newEditCmd(a *app) *cobra.Command {
	var initTip bool

	cmd := &cobra.Command{
		Use:   "edit <name>",
		Short: "Open a tip in $EDITOR",
		Long: `Opens <name>.tips from the tips directory in $EDITOR (vim when unset).
With --init, the tips directory and an empty tip file are created first when
missing. An existing tip is never truncated.`,
		Example:           "  tips edit git\n  tips edit docker --init",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: a.completeTipNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.prepare(cmd); err != nil {
				return err
			}
			a.editTip(cmd, args[0], initTip)
			return nil
		},
	}

	cmd.Flags().BoolVar(&initTip, "init", false, "Create the tips directory and an empty tip if missing")
	return cmd
}

// editTip optionally creates the tip, then runs the editor on it and reports
// the outcome. Failures are reported and end the operation with exit code 0.
func (a *app) editTip(cmd *cobra.Command, name string, initTip bool) {
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	path := a.store.Path(name)

	if initTip {
		if err := a.store.EnsureDir(); err != nil {
			logger.Error("Cannot create tips directory", "dir", a.store.Dir, "error", err)
			errorColor.Fprintf(errOut, "Cannot create directory %q: %v\n", a.store.Dir, err)
			return
		}
		if _, err := a.store.EnsureFile(name); err != nil {
			logger.Error("Cannot create tip file", "path", path, "error", err)
			errorColor.Fprintf(errOut, "Cannot create file %q: %v\n", path, err)
			return
		}
	}

	launcher := a.newLauncher(a.settings.Editor)
	outcome, err := launcher.Run(cmd.Context(), path)
	if err != nil {
		errorColor.Fprintf(errOut, "Failed to start editor process: %v\n", err)
		return
	}

	switch outcome {
	case editor.Updated:
		successColor.Fprintf(out, "Tips for %s updated.\n", name)
	default:
		warnColor.Fprintln(out, "Cancelled.")
	}
	logger.Info("Edit finished", "name", name, "outcome", outcome.String())
}
