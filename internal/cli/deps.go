// Package cli provides the cobra command of create-lynx-app and the
// dependency wiring behind it. This file defines the Dependencies struct
// (Composition Root) that wires the domain packages together.
package cli

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/lynx-community/create-lynx-app/internal/config"
	"github.com/lynx-community/create-lynx-app/internal/fetch"
	"github.com/lynx-community/create-lynx-app/internal/scaffold"
	"github.com/lynx-community/create-lynx-app/internal/templates"
	"github.com/lynx-community/create-lynx-app/internal/ui"
)

// Dependencies holds the services the command uses.
type Dependencies struct {
	Settings *config.Settings
	Manifest *templates.Manifest
	Bundle   fs.FS
	Fetcher  scaffold.Fetcher
	Headless *ui.HeadlessManager
	Theme    *ui.Theme
	Logger   *slog.Logger

	// InitRepository overrides git initialization; nil uses the default.
	InitRepository func(dir string) error
}

// deps is the global dependencies instance, initialized by InitDependencies
// unless already set.
var deps *Dependencies

// DependencyOptions tune InitDependencies.
type DependencyOptions struct {
	ConfigFile string    // explicit config file; empty uses the default location
	Verbose    bool      // log at debug level to LogOutput
	LogOutput  io.Writer // defaults to os.Stderr
}

// InitDependencies reads settings and the template manifest and wires the
// services. It should be called once during startup.
func InitDependencies(opts DependencyOptions) error {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if opts.Verbose {
		w := opts.LogOutput
		if w == nil {
			w = os.Stderr
		}
		logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	settings, err := config.Load(opts.ConfigFile)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	if settings.File != "" {
		logger.Debug("settings loaded", "file", settings.File)
	}

	manifest, err := templates.Load()
	if err != nil {
		return fmt.Errorf("load template manifest: %w", err)
	}

	noColor := !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd())

	deps = &Dependencies{
		Settings: settings,
		Manifest: manifest,
		Bundle:   templates.Bundle(),
		Fetcher: fetch.New(
			fetch.WithLogger(logger),
			fetch.WithTimeout(settings.FetchTimeout),
		),
		Headless: ui.NewHeadlessManager(os.Stdin),
		Theme:    ui.NewTheme(ui.ThemeConfig{NoColor: noColor}),
		Logger:   logger,
	}
	return nil
}

// source returns the template repository from the settings.
func (d *Dependencies) source() fetch.Source {
	return fetch.Source{URL: d.Settings.RepoURL, Branch: d.Settings.Branch}
}
