package config

import (
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/modu-ai/folio/pkg/models"
)

// Config is the root configuration aggregate containing all sections.
type Config struct {
	Site     SiteConfig     `yaml:"site"`
	Build    BuildConfig    `yaml:"build"`
	Taxonomy TaxonomyConfig `yaml:"taxonomy"`
	Logging  LoggingConfig  `yaml:"logging"`
	Serve    ServeConfig    `yaml:"serve"`
	Watch    WatchConfig    `yaml:"watch"`

	// Root is the absolute site root. It is set by the loader, never read
	// from YAML; every relative path below resolves against it.
	Root string `yaml:"-"`
}

// SiteConfig locates the build inputs and outputs.
type SiteConfig struct {
	ProjectsDir string `yaml:"projects_dir"`
	Template    string `yaml:"template"`
	Output      string `yaml:"output"`
	Metadata    string `yaml:"metadata"`
}

// BuildConfig controls the pipeline options.
type BuildConfig struct {
	Layout          models.Layout `yaml:"layout"`
	StampVersion    bool          `yaml:"stamp_version"`
	Version         string        `yaml:"version"`
	Placeholder     string        `yaml:"placeholder"`
	VersionToken    string        `yaml:"version_token"`
	EntryPoint      string        `yaml:"entry_point"`
	DescriptorFiles []string      `yaml:"descriptor_files"`
	CardTemplate    string        `yaml:"card_template"`
}

// TaxonomyConfig holds the category enumeration and its lookup tables.
// A taxonomy section in folio.yaml replaces the defaults as a whole.
type TaxonomyConfig struct {
	Categories []string          `yaml:"categories"`
	Fallback   string            `yaml:"fallback"`
	Prefixes   map[string]string `yaml:"prefixes"`
	Glyphs     map[string]string `yaml:"glyphs"`
}

// LoggingConfig represents the logging configuration section.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// ServeConfig represents the preview server section.
type ServeConfig struct {
	Addr string `yaml:"addr"`
}

// WatchConfig represents the rebuild-on-change section.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

// ProjectsPath returns the absolute projects directory.
func (c *Config) ProjectsPath() string { return c.resolve(c.Site.ProjectsDir) }

// TemplatePath returns the absolute page template path.
func (c *Config) TemplatePath() string { return c.resolve(c.Site.Template) }

// OutputPath returns the absolute output page path.
func (c *Config) OutputPath() string { return c.resolve(c.Site.Output) }

// MetadataPath returns the absolute metadata file path.
func (c *Config) MetadataPath() string { return c.resolve(c.Site.Metadata) }

// CardTemplatePath returns the absolute card template override, or "" when
// the embedded card template is used.
func (c *Config) CardTemplatePath() string {
	if c.Build.CardTemplate == "" {
		return ""
	}
	return c.resolve(c.Build.CardTemplate)
}

// LogFilePath returns the absolute log file path, or "" when logging goes
// to stderr.
func (c *Config) LogFilePath() string { return c.resolve(c.Logging.File) }

// LinkPrefix returns the projects directory as seen from the output page,
// in slash form (for example "projects"). Links on the page are built from it.
func (c *Config) LinkPrefix() string {
	rel, err := filepath.Rel(filepath.Dir(c.OutputPath()), c.ProjectsPath())
	if err != nil {
		return filepath.ToSlash(filepath.Clean(c.Site.ProjectsDir))
	}
	return filepath.ToSlash(rel)
}

func (c *Config) resolve(p string) string {
	if p == "" {
		return ""
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(c.Root, filepath.FromSlash(p))
}

// IsCategory reports whether name is one of the configured categories.
func (t TaxonomyConfig) IsCategory(name string) bool {
	return slices.Contains(t.Categories, name)
}

// Clone returns a deep copy so callers can hand the tables to long-lived
// components without sharing the backing maps.
func (t TaxonomyConfig) Clone() TaxonomyConfig {
	out := TaxonomyConfig{
		Categories: slices.Clone(t.Categories),
		Fallback:   t.Fallback,
		Prefixes:   make(map[string]string, len(t.Prefixes)),
		Glyphs:     make(map[string]string, len(t.Glyphs)),
	}
	for k, v := range t.Prefixes {
		out.Prefixes[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	for k, v := range t.Glyphs {
		out.Glyphs[strings.TrimSpace(k)] = v
	}
	return out
}

// sectionNames lists all valid configuration section names.
var sectionNames = []string{
	"site", "build", "taxonomy", "logging", "serve", "watch",
}

// IsValidSectionName checks if the given name is a valid section name.
func IsValidSectionName(name string) bool {
	return slices.Contains(sectionNames, name)
}

// ValidSectionNames returns all valid section names.
func ValidSectionNames() []string {
	result := make([]string, len(sectionNames))
	copy(result, sectionNames)
	return result
}
