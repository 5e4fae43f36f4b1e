// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package tips provides access to the tips directory: enumerating tip names,
// reading tip contents line by line, and creating empty tips on request.
// A tip is a plain text file named <name>.tips lying directly inside the
// tips home directory.
package tips

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"tips/internal/logger"
)

// Ext is the literal file extension that marks a file as a tip.
const Ext = ".tips"

// ErrNotFound is returned when the requested tip file does not exist.
var ErrNotFound = errors.New("tip not found")

// Store is a view over one tips home directory.
// The directory is not required to exist.
type Store struct {
	Dir string
}

// NewStore returns a store over dir.
func NewStore(dir string) *Store {
	return &Store{Dir: dir}
}

// Path returns the file path backing the tip called name.
func (s *Store) Path(name string) string {
	return filepath.Join(s.Dir, name+Ext)
}

// Names returns the names of all tips in the store whose name contains query.
// An empty query matches every tip. Entries are returned in directory order,
// which os.ReadDir sorts by filename.
func (s *Store) Names(query string) ([]string, error) {
	logger.Debug("Enumerating tips", "dir", s.Dir, "query", query)

	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read tips directory %s: %w", s.Dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name, ok := nameFromFile(entry.Name())
		if !ok {
			continue
		}
		if query != "" && !strings.Contains(name, query) {
			continue
		}
		names = append(names, name)
	}

	logger.Debug("Tips enumerated", "dir", s.Dir, "count", len(names))
	return names, nil
}

// nameFromFile returns the tip name for a file called filename, or false if
// the file is not a tip. A bare ".tips" has no stem and is ignored.
func nameFromFile(filename string) (string, bool) {
	if filepath.Ext(filename) != Ext {
		return "", false
	}
	stem := strings.TrimSuffix(filename, Ext)
	if stem == "" {
		return "", false
	}
	return stem, true
}

// Open opens the tip called name for reading.
// It returns ErrNotFound if the tip file does not exist.
func (s *Store) Open(name string) (*os.File, error) {
	path := s.Path(name)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
	}
	return os.Open(path)
}

// EnsureDir creates the tips directory and any missing parents.
// An empty Dir is the working directory, which always exists.
func (s *Store) EnsureDir() error {
	if s.Dir == "" {
		return nil
	}
	if err := os.MkdirAll(s.Dir, 0750); err != nil {
		return err
	}
	return nil
}

// EnsureFile creates an empty tip file for name if none exists yet.
// An existing file is never truncated. It reports whether a file was created.
func (s *Store) EnsureFile(name string) (bool, error) {
	path := s.Path(name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0640)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return false, nil
		}
		return false, err
	}
	if err := f.Close(); err != nil {
		return true, err
	}
	logger.Info("Created empty tip", "name", name, "path", path)
	return true, nil
}

// Summary returns the first non-blank line of the tip, trimmed of
// surrounding whitespace. Unreadable tips yield an empty summary.
func (s *Store) Summary(name string) string {
	f, err := s.Open(name)
	if err != nil {
		return ""
	}
	defer f.Close()

	var summary string
	errStop := errors.New("stop")
	_ = ScanLines(f, ScanOptions{}, func(line string) error {
		if strings.TrimSpace(line) == "" {
			return nil
		}
		summary = strings.TrimSpace(line)
		return errStop
	})
	return summary
}
