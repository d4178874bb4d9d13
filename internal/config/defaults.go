package config

import (
	"time"

	"github.com/modu-ai/folio/internal/defs"
	"github.com/modu-ai/folio/pkg/models"
)

// Default value constants to avoid magic numbers and strings.
const (
	DefaultLayout   = models.LayoutCategorized
	DefaultFallback = "other"

	DefaultLogLevel   = "info"
	DefaultLogFormat  = "text"
	DefaultMaxSizeMB  = 20
	DefaultMaxBackups = 5
	DefaultMaxAgeDays = 7

	DefaultServeAddr = "127.0.0.1:8080"
	DefaultDebounce  = 250 * time.Millisecond
)

// defaultCategories is the category enumeration used when folio.yaml has no
// taxonomy section. Order is the scan order of category folders.
var defaultCategories = []string{
	"archive", "component", "demo", "gallery", "game",
	"portfolio", "showcase", "template", "other",
}

// NewDefaultConfig returns a Config with all fields set to compiled defaults.
func NewDefaultConfig() *Config {
	return &Config{
		Site:     NewDefaultSiteConfig(),
		Build:    NewDefaultBuildConfig(),
		Taxonomy: NewDefaultTaxonomyConfig(),
		Logging:  NewDefaultLoggingConfig(),
		Serve:    NewDefaultServeConfig(),
		Watch:    NewDefaultWatchConfig(),
	}
}

// NewDefaultSiteConfig returns a SiteConfig with default values.
func NewDefaultSiteConfig() SiteConfig {
	return SiteConfig{
		ProjectsDir: defs.ProjectsDir,
		Template:    defs.TemplateHTML,
		Output:      defs.IndexHTML,
		Metadata:    defs.MetadataJSON,
	}
}

// NewDefaultBuildConfig returns a BuildConfig with default values.
func NewDefaultBuildConfig() BuildConfig {
	return BuildConfig{
		Layout:          DefaultLayout,
		Placeholder:     defs.CardsPlaceholder,
		VersionToken:    defs.VersionToken,
		EntryPoint:      defs.IndexHTML,
		DescriptorFiles: []string{defs.MetaJSON, defs.MetaYAML, defs.MetaYML},
	}
}

// NewDefaultTaxonomyConfig returns the default category tables. Every
// category except the fallback has a prefix entry of the same name.
func NewDefaultTaxonomyConfig() TaxonomyConfig {
	categories := make([]string, len(defaultCategories))
	copy(categories, defaultCategories)

	prefixes := make(map[string]string, len(categories))
	for _, c := range categories {
		if c != DefaultFallback {
			prefixes[c] = c
		}
	}

	return TaxonomyConfig{
		Categories: categories,
		Fallback:   DefaultFallback,
		Prefixes:   prefixes,
		Glyphs: map[string]string{
			"portfolio": "\U0001F3A8",
			"game":      "\U0001F3AE",
			"component": "\U0001F9E9",
			"template":  "\U0001F4C4",
			"gallery":   "\U0001F5BC\uFE0F",
			"showcase":  "\u2728",
			"archive":   "\U0001F4E6",
			"demo":      "\U0001F680",
			"other":     "\U0001F4C1",
		},
	}
}

// NewDefaultLoggingConfig returns a LoggingConfig with default values.
func NewDefaultLoggingConfig() LoggingConfig {
	return LoggingConfig{
		Level:      DefaultLogLevel,
		Format:     DefaultLogFormat,
		MaxSizeMB:  DefaultMaxSizeMB,
		MaxBackups: DefaultMaxBackups,
		MaxAgeDays: DefaultMaxAgeDays,
		Compress:   true,
	}
}

// NewDefaultServeConfig returns a ServeConfig with default values.
func NewDefaultServeConfig() ServeConfig {
	return ServeConfig{Addr: DefaultServeAddr}
}

// NewDefaultWatchConfig returns a WatchConfig with default values.
func NewDefaultWatchConfig() WatchConfig {
	return WatchConfig{Debounce: DefaultDebounce}
}
