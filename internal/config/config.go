// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package config resolves the settings every tips operation runs with: the
// tips home directory, the editor program and the policy for undecodable
// lines. Settings come from the environment first, then from an optional
// YAML file, then from built-in defaults. They are resolved once at startup
// and passed explicitly to the operations that need them.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"tips/internal/tips"
)

const (
	// EnvTipsHome overrides the tips directory entirely, even when empty.
	EnvTipsHome = "TIPS_HOME"
	// EnvHome is the user home used to derive the default tips directory.
	EnvHome = "HOME"
	// EnvEditor names the external editor program.
	EnvEditor = "EDITOR"

	// DefaultEditor is used when neither EDITOR nor the config file name one.
	DefaultEditor = "vim"

	// defaultTipsDir is appended to the user home when nothing overrides it.
	defaultTipsDir = ".config/himkt/dotfiles/tips"
)

// ErrHomeNotSet is returned when the tips home has to be derived from HOME
// and HOME is not set.
var ErrHomeNotSet = errors.New("HOME environment variable is not set")

// Env looks up an environment variable. os.LookupEnv satisfies it.
type Env func(key string) (string, bool)

// Source describes where a resolved setting came from.
type Source string

const (
	SourceEnv     Source = "environment"
	SourceFile    Source = "config file"
	SourceDefault Source = "default"
)

// File represents the optional YAML configuration file.
type File struct {
	// TipsHome is the tips directory. A leading "~/" is expanded against HOME.
	TipsHome string `yaml:"tips_home,omitempty"`

	// Editor is the editor program used when EDITOR is unset or empty.
	Editor string `yaml:"editor,omitempty"`

	// InvalidLines is one of skip, warn or fail.
	InvalidLines string `yaml:"invalid_lines,omitempty"`
}

// Settings is the fully resolved configuration for one invocation.
type Settings struct {
	TipsHome       string
	TipsHomeSource Source

	Editor       string
	EditorSource Source

	InvalidLines       tips.InvalidLinePolicy
	InvalidLinesSource Source

	// ConfigPath is the config file consulted, empty when none was.
	ConfigPath string
}

// DefaultConfigPath returns <user config dir>/tips/config.yaml.
func DefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, "tips", "config.yaml"), nil
}

// LoadFile reads the config file at path. A missing file yields a zero File.
func LoadFile(path string) (File, error) {
	if path == "" {
		return File{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return File{}, nil
		}
		return File{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return f, nil
}

// Resolve loads the config file at configPath (which may be empty) and
// resolves every setting against env.
func Resolve(env Env, configPath string) (Settings, error) {
	f, err := LoadFile(configPath)
	if err != nil {
		return Settings{}, err
	}

	home, homeSource, err := ResolveHome(env, f)
	if err != nil {
		return Settings{}, err
	}

	policy, err := tips.ParseInvalidLinePolicy(f.InvalidLines)
	if err != nil {
		return Settings{}, fmt.Errorf("config file %s: %w", configPath, err)
	}
	policySource := SourceDefault
	if f.InvalidLines != "" {
		policySource = SourceFile
	}

	editor, editorSource := ResolveEditor(env, f)

	return Settings{
		TipsHome:           home,
		TipsHomeSource:     homeSource,
		Editor:             editor,
		EditorSource:       editorSource,
		InvalidLines:       policy,
		InvalidLinesSource: policySource,
		ConfigPath:         configPath,
	}, nil
}

// ResolveHome determines the tips directory. TIPS_HOME wins whenever it is
// set, including when set to the empty string, and is returned verbatim.
// The path is not checked for existence.
func ResolveHome(env Env, f File) (string, Source, error) {
	if path, ok := env(EnvTipsHome); ok {
		return path, SourceEnv, nil
	}

	if f.TipsHome != "" {
		path, err := ResolvePath(env, f.TipsHome)
		if err != nil {
			return "", SourceFile, err
		}
		return path, SourceFile, nil
	}

	home, ok := env(EnvHome)
	if !ok {
		return "", SourceDefault, ErrHomeNotSet
	}
	return filepath.Join(home, defaultTipsDir), SourceDefault, nil
}

// ResolveEditor picks the editor program: EDITOR if non-empty, then the
// config file, then vim.
func ResolveEditor(env Env, f File) (string, Source) {
	if editor, ok := env(EnvEditor); ok && editor != "" {
		return editor, SourceEnv
	}
	if f.Editor != "" {
		return f.Editor, SourceFile
	}
	return DefaultEditor, SourceDefault
}

// ResolvePath expands a leading "~/" against HOME.
func ResolvePath(env Env, path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	home, ok := env(EnvHome)
	if !ok {
		return path, fmt.Errorf("could not resolve path '%s': %w", path, ErrHomeNotSet)
	}
	return filepath.Join(home, path[2:]), nil
}
