// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

// completeTipNames provides dynamic completion for the tip name argument of
// list and edit. Errors only mean there is nothing to suggest.
func (a *app) completeTipNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	if err := a.load(); err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	names, err := a.store.Names("")
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	suggestions := make([]string, 0, len(names))
	for _, name := range names {
		if strings.HasPrefix(name, toComplete) {
			suggestions = append(suggestions, name)
		}
	}
	return suggestions, cobra.ShellCompDirectiveNoFileComp
}
