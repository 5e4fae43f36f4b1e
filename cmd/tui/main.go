// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"tips/internal/editor"
	"tips/internal/tips"
	"tips/internal/ui"
)

// RunTUI initializes and runs the Bubble Tea tips browser.
func RunTUI(store *tips.Store, launcher editor.Commander, policy tips.InvalidLinePolicy) error {
	m := ui.InitialModel(store, launcher, policy)
	p := tea.NewProgram(&m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
