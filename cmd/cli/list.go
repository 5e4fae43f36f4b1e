// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tips/internal/logger"
	"tips/internal/tips"
)

func newListCmd(a *app) *cobra.Command {
	var query string
	var copyOutput bool

	cmd := &cobra.Command{
		Use:   "list [name]",
		Short: "List tip names, or the lines of one tip",
		Long: `Without a name, prints the name of every tip in the tips directory.
With a name, prints the lines of <name>.tips with trailing whitespace removed.
--query keeps only names or lines containing the given substring.`,
		Example:           "  tips list\n  tips list -q git\n  tips list git --query rebase",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: a.completeTipNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.prepare(cmd); err != nil {
				return err
			}

			var printed []string
			if len(args) == 0 {
				printed = a.listNames(cmd, query)
			} else {
				printed = a.listContent(cmd, args[0], query)
			}

			if copyOutput {
				a.copyLines(cmd, printed)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Only show names or lines containing this substring")
	cmd.Flags().BoolVarP(&copyOutput, "copy", "c", false, "Also copy the printed lines to the clipboard")
	return cmd
}

// listNames prints matching tip names and returns them.
func (a *app) listNames(cmd *cobra.Command, query string) []string {
	names, err := a.store.Names(query)
	if err != nil {
		logger.Warn("Could not read tips directory", "dir", a.store.Dir, "error", err)
		errorColor.Fprintf(cmd.ErrOrStderr(), "No tips.d found on %q\n", a.store.Dir)
		return nil
	}

	out := cmd.OutOrStdout()
	for _, name := range names {
		fmt.Fprintln(out, name)
	}
	return names
}

// listContent prints the matching lines of one tip and returns them.
func (a *app) listContent(cmd *cobra.Command, name, query string) []string {
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

	f, err := a.store.Open(name)
	if errors.Is(err, tips.ErrNotFound) {
		fmt.Fprintf(out, "No tips available for %s\n", name)
		return nil
	}
	if err != nil {
		logger.Error("Cannot open tip", "name", name, "error", err)
		errorColor.Fprintf(errOut, "Cannot open file: %v\n", err)
		return nil
	}
	defer f.Close()

	path := a.store.Path(name)
	opts := tips.ScanOptions{
		Query:        query,
		InvalidLines: a.settings.InvalidLines,
		OnInvalid: func(line int) {
			logger.Warn("Skipped undecodable line", "path", path, "line", line)
			warnColor.Fprintf(errOut, "Warning: skipped line %d of %s: not valid UTF-8\n", line, path)
		},
	}

	var printed []string
	err = tips.ScanLines(f, opts, func(line string) error {
		printed = append(printed, line)
		_, werr := fmt.Fprintln(out, line)
		return werr
	})
	if err != nil {
		logger.Error("Cannot read tip", "name", name, "error", err)
		errorColor.Fprintf(errOut, "Cannot read %s: %v\n", path, err)
	}
	return printed
}

func (a *app) copyLines(cmd *cobra.Command, lines []string) {
	if len(lines) == 0 {
		return
	}
	if err := a.copyText(strings.Join(lines, "\n")); err != nil {
		logger.Warn("Clipboard write failed", "error", err)
		warnColor.Fprintf(cmd.ErrOrStderr(), "Warning: could not copy to clipboard: %v\n", err)
		return
	}
	dimColor.Fprintf(cmd.ErrOrStderr(), "Copied %d line(s) to the clipboard.\n", len(lines))
}
