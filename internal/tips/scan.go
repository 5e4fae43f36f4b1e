// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package tips

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"
)

// InvalidLinePolicy decides what happens to a line that is not valid UTF-8.
type InvalidLinePolicy string

const (
	// SkipInvalid drops undecodable lines silently.
	SkipInvalid InvalidLinePolicy = "skip"
	// WarnInvalid drops undecodable lines and reports them through ScanOptions.OnInvalid.
	WarnInvalid InvalidLinePolicy = "warn"
	// FailInvalid stops the scan at the first undecodable line.
	FailInvalid InvalidLinePolicy = "fail"
)

// ParseInvalidLinePolicy validates s. The empty string selects SkipInvalid.
func ParseInvalidLinePolicy(s string) (InvalidLinePolicy, error) {
	switch p := InvalidLinePolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return SkipInvalid, nil
	case SkipInvalid, WarnInvalid, FailInvalid:
		return p, nil
	default:
		return "", fmt.Errorf("invalid line policy %q (want skip, warn or fail)", s)
	}
}

// InvalidLineError is returned by ScanLines under FailInvalid.
type InvalidLineError struct {
	Line int // 1-based line number
}

func (e *InvalidLineError) Error() string {
	return fmt.Sprintf("line %d is not valid UTF-8", e.Line)
}

// ScanOptions controls filtering and decoding in ScanLines.
type ScanOptions struct {
	// Query keeps only lines containing it. Empty keeps every line.
	Query string

	// InvalidLines is the policy for undecodable lines. Zero value is SkipInvalid.
	InvalidLines InvalidLinePolicy

	// OnInvalid is called with the 1-based line number of each dropped line
	// under WarnInvalid.
	OnInvalid func(line int)
}

// ScanLines reads r line by line, strips trailing whitespace from each line
// and passes the lines that match opts.Query to emit, in order. Leading
// whitespace and empty lines are preserved. A non-nil error from emit stops
// the scan and is returned as is.
func ScanLines(r io.Reader, opts ScanOptions, emit func(line string) error) error {
	reader := bufio.NewReader(r)
	lineNo := 0

	for {
		raw, readErr := reader.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return fmt.Errorf("failed to read line %d: %w", lineNo+1, readErr)
		}
		if raw == "" && readErr != nil {
			return nil
		}
		lineNo++

		line := strings.TrimSuffix(raw, "\n")
		if !utf8.ValidString(line) {
			switch opts.InvalidLines {
			case FailInvalid:
				return &InvalidLineError{Line: lineNo}
			case WarnInvalid:
				if opts.OnInvalid != nil {
					opts.OnInvalid(lineNo)
				}
			}
		} else {
			line = strings.TrimRightFunc(line, unicode.IsSpace)
			if opts.Query == "" || strings.Contains(line, opts.Query) {
				if err := emit(line); err != nil {
					return err
				}
			}
		}

		if readErr != nil {
			return nil
		}
	}
}
