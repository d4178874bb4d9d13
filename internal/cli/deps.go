// Package cli provides the Cobra command tree and dependency injection
// wiring for the folio CLI. This file defines the Dependencies struct
// (Composition Root) that wires configuration, logging and the builder.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/modu-ai/folio/internal/builder"
	"github.com/modu-ai/folio/internal/config"
	"github.com/modu-ai/folio/internal/logging"
	"github.com/modu-ai/folio/pkg/models"
)

// SiteOptions selects the site and the command-line overrides applied on
// top of its configuration.
type SiteOptions struct {
	Root       string
	ConfigPath string
	Verbose    bool
	// Layout overrides build.layout when non-empty.
	Layout string
	// StampVersion overrides build.stamp_version when non-nil.
	StampVersion *bool
	// Stderr receives log output when no log file is configured.
	Stderr io.Writer
}

// Dependencies holds the services used by CLI commands. This is the
// Composition Root: the only place where concrete types are instantiated
// and wired together.
type Dependencies struct {
	Config  *config.Config
	Builder *builder.Builder
	Logger  *slog.Logger

	site     SiteOptions
	closeLog func() error
}

// deps is the global dependencies instance, initialized by InitDependencies.
var deps *Dependencies

// @MX:ANCHOR: [AUTO] InitDependencies is the Composition Root entry point
// @MX:REASON: [AUTO] fan_in=3, called from root.go, deps_test.go, build_test.go
// InitDependencies creates the dependency container. Site-bound services
// need the --root flag and are created by EnsureSite once flags are parsed.
func InitDependencies() {
	deps = &Dependencies{
		Logger: logging.Discard(),
	}
}

// GetDeps returns the current Dependencies instance.
// Returns nil if InitDependencies has not been called.
func GetDeps() *Dependencies {
	return deps
}

// SetDeps replaces the global dependencies (used for testing).
func SetDeps(d *Dependencies) {
	deps = d
}

// EnsureSite lazily loads configuration, opens the logger and creates the
// builder. Subsequent calls are no-ops.
func (d *Dependencies) EnsureSite(opts SiteOptions) error {
	if d.Builder != nil {
		return nil
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	bootstrap, _, err := logging.New(logging.Options{
		Config:  config.NewDefaultLoggingConfig(),
		Stderr:  opts.Stderr,
		Verbose: opts.Verbose,
	})
	if err != nil {
		return err
	}
	cfg, err := loadConfig(opts, bootstrap)
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.New(logging.Options{
		Config:  cfg.Logging,
		File:    cfg.LogFilePath(),
		Stderr:  opts.Stderr,
		Verbose: opts.Verbose,
	})
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}

	d.site = opts
	d.Config = cfg
	d.Logger = logger
	d.closeLog = closeLog
	d.Builder = builder.New(cfg, logger)
	return nil
}

// Reload re-reads the configuration of the current site and replaces the
// builder. The logger is kept.
func (d *Dependencies) Reload() error {
	if d.Builder == nil {
		return fmt.Errorf("dependencies not initialized")
	}
	cfg, err := loadConfig(d.site, d.Logger)
	if err != nil {
		return err
	}
	d.Config = cfg
	d.Builder = builder.New(cfg, d.Logger)
	return nil
}

// Close flushes the log file sink, if any.
func (d *Dependencies) Close() error {
	if d == nil || d.closeLog == nil {
		return nil
	}
	return d.closeLog()
}

// loadConfig loads the site configuration and applies flag overrides.
func loadConfig(opts SiteOptions, logger *slog.Logger) (*config.Config, error) {
	cfg, err := config.NewLoader(logger).Load(opts.Root, opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.Layout != "" {
		cfg.Build.Layout = models.Layout(opts.Layout)
	}
	if opts.StampVersion != nil {
		cfg.Build.StampVersion = *opts.StampVersion
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// siteOptions collects SiteOptions from the persistent and command flags.
func siteOptions(cmd *cobra.Command) SiteOptions {
	opts := SiteOptions{
		Root:       getStringFlag(cmd, "root"),
		ConfigPath: getStringFlag(cmd, "config"),
		Verbose:    getBoolFlag(cmd, "verbose"),
		Layout:     getStringFlag(cmd, "layout"),
		Stderr:     cmd.ErrOrStderr(),
	}
	if f := cmd.Flags().Lookup("stamp-version"); f != nil && f.Changed {
		stamp := getBoolFlag(cmd, "stamp-version")
		opts.StampVersion = &stamp
	}
	return opts
}

// ensureSite initializes the site-bound dependencies for cmd.
func ensureSite(cmd *cobra.Command) (*Dependencies, error) {
	if deps == nil {
		return nil, fmt.Errorf("dependencies not initialized")
	}
	if err := deps.EnsureSite(siteOptions(cmd)); err != nil {
		return nil, err
	}
	return deps, nil
}
