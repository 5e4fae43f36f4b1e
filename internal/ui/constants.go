// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

// state represents the different views or modes of the TUI.
type state int

const (
	stateLoadingTips state = iota
	stateTipList
	stateFiltering
)

const (
	headerHeight  = 1 // Title line.
	footerHeight  = 3 // Status line, blank line, help line.
	listMinHeight = 3 // Rows kept for the tip list before the preview gets space.
)
