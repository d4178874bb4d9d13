package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/modu-ai/folio/internal/defs"
	"github.com/modu-ai/folio/pkg/models"
)

// Environment variables that override folio.yaml values.
const (
	EnvProjectsDir  = "FOLIO_PROJECTS_DIR"
	EnvTemplate     = "FOLIO_TEMPLATE"
	EnvOutput       = "FOLIO_OUTPUT"
	EnvMetadata     = "FOLIO_METADATA"
	EnvLayout       = "FOLIO_LAYOUT"
	EnvStampVersion = "FOLIO_STAMP_VERSION"
	EnvSiteVersion  = "FOLIO_SITE_VERSION"
	EnvLogLevel     = "FOLIO_LOG_LEVEL"
	EnvLogFormat    = "FOLIO_LOG_FORMAT"
	EnvLogFile      = "FOLIO_LOG_FILE"
	EnvServeAddr    = "FOLIO_SERVE_ADDR"
)

// maxConfigSize is the maximum accepted size of folio.yaml.
const maxConfigSize = 1 << 20

// Loader reads the site configuration from folio.yaml, .env and the process
// environment, in increasing order of precedence.
type Loader struct {
	logger *slog.Logger
	lookup func(string) (string, bool)
}

// NewLoader creates a Loader. A nil logger discards log output.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Loader{logger: logger, lookup: os.LookupEnv}
}

// Load reads configuration for the site rooted at root. configPath may be
// empty, in which case <root>/folio.yaml is used if it exists. A missing
// file yields defaults; invalid YAML is an error.
func (l *Loader) Load(root, configPath string) (*Config, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve site root %q: %w", root, err)
	}

	explicit := configPath != ""
	if !explicit {
		configPath = filepath.Join(absRoot, defs.ConfigYAML)
	}

	cfg := NewDefaultConfig()
	if err := l.loadFile(configPath, explicit, cfg); err != nil {
		return nil, err
	}
	cfg.Root = absRoot

	if cfg.Taxonomy.Fallback == "" {
		cfg.Taxonomy.Fallback = DefaultFallback
	}

	dotenv := l.readDotEnv(filepath.Join(absRoot, defs.DotEnv))
	l.applyEnv(cfg, func(key string) (string, bool) {
		if v, ok := l.lookup(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	})

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFile decodes folio.yaml onto cfg. A taxonomy section replaces the
// default tables wholesale instead of merging into them.
func (l *Loader) loadFile(path string, explicit bool, cfg *Config) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			l.logger.Debug("no site configuration file, using defaults", "path", path)
			return nil
		}
		return fmt.Errorf("%w: %s: %v", ErrConfigRead, path, err)
	}
	if info.Size() > maxConfigSize {
		return fmt.Errorf("%w: %s exceeds %d bytes", ErrConfigRead, path, maxConfigSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrConfigRead, path, err)
	}

	var sections map[string]yaml.Node
	if err := yaml.Unmarshal(data, &sections); err != nil {
		return fmt.Errorf("parse %s: %w: %v", filepath.Base(path), ErrInvalidYAML, err)
	}
	for name := range sections {
		if !IsValidSectionName(name) {
			l.logger.Warn("unknown configuration section ignored", "path", path, "section", name)
		}
	}

	// A taxonomy section replaces the default table instead of merging into it.
	defaultTaxonomy := cfg.Taxonomy
	_, hasTaxonomy := sections["taxonomy"]
	if hasTaxonomy {
		cfg.Taxonomy = TaxonomyConfig{}
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w: %v", filepath.Base(path), ErrInvalidYAML, err)
	}
	if !hasTaxonomy {
		cfg.Taxonomy = defaultTaxonomy
	}

	l.logger.Debug("site configuration loaded", "path", path)
	return nil
}

// readDotEnv returns the key/value pairs of the .env file, or nil when the
// file is absent or unreadable.
func (l *Loader) readDotEnv(path string) map[string]string {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	values, err := godotenv.Read(path)
	if err != nil {
		l.logger.Warn("failed to read .env file, ignoring it", "path", path, "error", err)
		return nil
	}
	return values
}

// applyEnv overrides configuration values from FOLIO_* variables.
func (l *Loader) applyEnv(cfg *Config, lookup func(string) (string, bool)) {
	str := func(dst *string, key string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	str(&cfg.Site.ProjectsDir, EnvProjectsDir)
	str(&cfg.Site.Template, EnvTemplate)
	str(&cfg.Site.Output, EnvOutput)
	str(&cfg.Site.Metadata, EnvMetadata)
	str(&cfg.Build.Version, EnvSiteVersion)
	str(&cfg.Logging.Level, EnvLogLevel)
	str(&cfg.Logging.Format, EnvLogFormat)
	str(&cfg.Logging.File, EnvLogFile)
	str(&cfg.Serve.Addr, EnvServeAddr)

	if v, ok := lookup(EnvLayout); ok && strings.TrimSpace(v) != "" {
		cfg.Build.Layout = models.Layout(strings.ToLower(strings.TrimSpace(v)))
	}
	if v, ok := lookup(EnvStampVersion); ok && strings.TrimSpace(v) != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			l.logger.Warn("ignoring invalid boolean", "env", EnvStampVersion, "value", v)
		} else {
			cfg.Build.StampVersion = b
		}
	}
}

// ParseDuration is a small helper for flag values such as "300ms".
// An empty string yields the fallback.
func ParseDuration(raw string, fallback time.Duration) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, errors.Join(ErrInvalidConfig, err)
	}
	return d, nil
}
