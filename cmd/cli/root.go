// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"tips/cmd/tui"
	"tips/internal/config"
	"tips/internal/editor"
	"tips/internal/logger"
	"tips/internal/tips"
)

const (
	version   = "0.0.1"
	usageHint = "Available commands: list, edit"
)

var (
	errorColor      = color.New(color.FgRed)
	warnColor       = color.New(color.FgYellow)
	successColor    = color.New(color.FgGreen)
	identifierColor = color.New(color.FgBlue)
	dimColor        = color.New(color.Faint)
)

// deps are the collaborators the commands reach the outside world through.
type deps struct {
	env         config.Env
	configPath  func() (string, error)
	newLauncher func(program string) editor.Launcher
	copyText    func(text string) error
	isTerminal  func() bool
	runBrowser  func(store *tips.Store, program string, policy tips.InvalidLinePolicy) error
}

func defaultDeps() deps {
	return deps{
		env:        os.LookupEnv,
		configPath: config.DefaultConfigPath,
		newLauncher: func(program string) editor.Launcher {
			return editor.NewExecLauncher(program)
		},
		copyText:   clipboard.WriteAll,
		isTerminal: func() bool { return term.IsTerminal(int(os.Stdin.Fd())) },
		runBrowser: func(store *tips.Store, program string, policy tips.InvalidLinePolicy) error {
			return tui.RunTUI(store, editor.NewExecLauncher(program), policy)
		},
	}
}

// app carries the settings resolved for this invocation into every command.
type app struct {
	deps

	configFile string
	loaded     bool
	settings   config.Settings
	store      *tips.Store
}

// load resolves the settings once. Later calls return the cached result.
func (a *app) load() error {
	if a.loaded {
		return nil
	}

	path := a.configFile
	if path == "" {
		// Without a config dir there is simply no config file to read.
		if p, err := a.configPath(); err == nil {
			path = p
		} else {
			logger.Debug("No user config directory", "error", err)
		}
	}

	settings, err := config.Resolve(a.env, path)
	if err != nil {
		logger.Error("Could not resolve settings", "error", err)
		return err
	}

	logger.Debug("Settings resolved",
		"tips_home", settings.TipsHome,
		"tips_home_source", settings.TipsHomeSource,
		"editor", settings.Editor,
		"invalid_lines", settings.InvalidLines)

	a.settings = settings
	a.store = tips.NewStore(settings.TipsHome)
	a.loaded = true
	return nil
}

// prepare is load for RunE: configuration errors are fatal but are not
// argument errors, so usage is not printed for them.
func (a *app) prepare(cmd *cobra.Command) error {
	if err := a.load(); err != nil {
		cmd.SilenceUsage = true
		return err
	}
	return nil
}

func newRootCmd(d deps) *cobra.Command {
	a := &app{deps: d}
	var verbose bool

	rootCmd := &cobra.Command{
		Use:     "tips",
		Short:   "Personal tips and snippets manager",
		Version: version,
		Long: `tips keeps small named text files ("tips") in one directory and lets you
list, filter and edit them.

The tips directory is $TIPS_HOME when set, then tips_home from the config file
(~/.config/tips/config.yaml), then ~/.config/himkt/dotfiles/tips.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.InitLogger(verbose)
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), usageHint)
		},
	}

	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Mirror debug logs to stderr")
	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", "Config file (default is <user config dir>/tips/config.yaml)")

	rootCmd.AddCommand(newListCmd(a))
	rootCmd.AddCommand(newEditCmd(a))
	rootCmd.AddCommand(newBrowseCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))

	return rootCmd
}

func RunCLI() {
	err := newRootCmd(defaultDeps()).Execute()
	if err != nil {
		os.Exit(1)
	}
}
