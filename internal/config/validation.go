package config

import (
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/modu-ai/folio/pkg/models"
)

// validLogLevels and validLogFormats list the accepted logging values.
var (
	validLogLevels  = map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}
	validLogFormats = map[string]bool{"text": true, "json": true}
)

// Validate checks the configuration for correctness and returns
// *ValidationErrors listing every problem found.
func Validate(cfg *Config) error {
	var errs []ValidationError

	errs = append(errs, validateSite(cfg)...)
	errs = append(errs, validateBuild(&cfg.Build)...)
	errs = append(errs, validateTaxonomy(&cfg.Taxonomy)...)
	errs = append(errs, validateLogging(&cfg.Logging)...)

	if cfg.Watch.Debounce < 0 {
		errs = append(errs, ValidationError{
			Field:   "watch.debounce",
			Message: "must not be negative",
			Value:   cfg.Watch.Debounce.String(),
			Wrapped: ErrInvalidConfig,
		})
	}

	if len(errs) > 0 {
		return &ValidationErrors{Errors: errs}
	}
	return nil
}

// validateSite checks that every input and output path is set and that
// the page and metadata files are distinct.
func validateSite(cfg *Config) []ValidationError {
	var errs []ValidationError
	s := &cfg.Site
	required := []struct {
		field string
		value string
	}{
		{"site.projects_dir", s.ProjectsDir},
		{"site.template", s.Template},
		{"site.output", s.Output},
		{"site.metadata", s.Metadata},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errs = append(errs, ValidationError{
				Field:   r.field,
				Message: "required field is empty",
				Wrapped: ErrInvalidConfig,
			})
		}
	}
	if strings.TrimSpace(s.Output) != "" && cfg.OutputPath() == cfg.MetadataPath() {
		errs = append(errs, ValidationError{
			Field:   "site.metadata",
			Message: "must differ from site.output",
			Value:   s.Metadata,
			Wrapped: ErrInvalidConfig,
		})
	}
	return errs
}

// validateBuild checks layout, tokens and file names.
func validateBuild(b *BuildConfig) []ValidationError {
	var errs []ValidationError

	if !b.Layout.IsValid() {
		valid := make([]string, 0, 2)
		for _, l := range models.ValidLayouts() {
			valid = append(valid, string(l))
		}
		errs = append(errs, ValidationError{
			Field:   "build.layout",
			Message: fmt.Sprintf("must be one of: %s", strings.Join(valid, ", ")),
			Value:   string(b.Layout),
			Wrapped: ErrInvalidLayout,
		})
	}

	if b.Placeholder == "" {
		errs = append(errs, ValidationError{
			Field:   "build.placeholder",
			Message: "required field is empty",
			Wrapped: ErrInvalidConfig,
		})
	}
	if b.StampVersion && b.VersionToken == "" {
		errs = append(errs, ValidationError{
			Field:   "build.version_token",
			Message: "required when build.stamp_version is true",
			Wrapped: ErrInvalidConfig,
		})
	}
	if b.VersionToken != "" && b.VersionToken == b.Placeholder {
		errs = append(errs, ValidationError{
			Field:   "build.version_token",
			Message: "must differ from build.placeholder",
			Value:   b.VersionToken,
			Wrapped: ErrInvalidConfig,
		})
	}

	if !isPlainFileName(b.EntryPoint) {
		errs = append(errs, ValidationError{
			Field:   "build.entry_point",
			Message: "must be a plain file name",
			Value:   b.EntryPoint,
			Wrapped: ErrInvalidConfig,
		})
	}
	if len(b.DescriptorFiles) == 0 {
		errs = append(errs, ValidationError{
			Field:   "build.descriptor_files",
			Message: "at least one descriptor file name is required",
			Wrapped: ErrInvalidConfig,
		})
	}
	for i, name := range b.DescriptorFiles {
		if !isPlainFileName(name) {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("build.descriptor_files[%d]", i),
				Message: "must be a plain file name",
				Value:   name,
				Wrapped: ErrInvalidConfig,
			})
		}
	}
	return errs
}

// validateTaxonomy checks that the category tables are explicit and complete:
// categories are unique folder-safe names, the fallback is one of them and
// has a glyph, and every prefix maps to a known category.
func validateTaxonomy(t *TaxonomyConfig) []ValidationError {
	var errs []ValidationError

	if len(t.Categories) == 0 {
		errs = append(errs, ValidationError{
			Field:   "taxonomy.categories",
			Message: "at least one category is required",
			Wrapped: ErrInvalidTaxonomy,
		})
	}

	seen := make(map[string]bool, len(t.Categories))
	for i, c := range t.Categories {
		field := fmt.Sprintf("taxonomy.categories[%d]", i)
		switch {
		case c == "" || strings.ContainsAny(c, `/\`):
			errs = append(errs, ValidationError{Field: field, Message: "must be a non-empty folder name", Value: c, Wrapped: ErrInvalidTaxonomy})
		case strings.HasPrefix(c, "_") || strings.HasPrefix(c, "."):
			errs = append(errs, ValidationError{Field: field, Message: "must not start with '_' or '.'", Value: c, Wrapped: ErrInvalidTaxonomy})
		case seen[c]:
			errs = append(errs, ValidationError{Field: field, Message: "duplicate category", Value: c, Wrapped: ErrInvalidTaxonomy})
		}
		seen[c] = true
	}

	if !seen[t.Fallback] {
		errs = append(errs, ValidationError{
			Field:   "taxonomy.fallback",
			Message: "must be one of taxonomy.categories",
			Value:   t.Fallback,
			Wrapped: ErrInvalidTaxonomy,
		})
	}
	if t.Glyphs[t.Fallback] == "" {
		errs = append(errs, ValidationError{
			Field:   "taxonomy.glyphs",
			Message: fmt.Sprintf("missing glyph for fallback category %q", t.Fallback),
			Wrapped: ErrInvalidTaxonomy,
		})
	}

	prefixes := make([]string, 0, len(t.Prefixes))
	for p := range t.Prefixes {
		prefixes = append(prefixes, p)
	}
	sort.Strings(prefixes)
	for _, p := range prefixes {
		target := t.Prefixes[p]
		if p == "" || strings.Contains(p, "-") {
			errs = append(errs, ValidationError{Field: "taxonomy.prefixes", Message: "prefix must be non-empty and contain no '-'", Value: p, Wrapped: ErrInvalidTaxonomy})
		}
		if !seen[target] {
			errs = append(errs, ValidationError{Field: "taxonomy.prefixes." + p, Message: "maps to an unknown category", Value: target, Wrapped: ErrInvalidTaxonomy})
		}
	}
	return errs
}

// validateLogging checks level and format names.
func validateLogging(l *LoggingConfig) []ValidationError {
	var errs []ValidationError
	if l.Level != "" && !validLogLevels[strings.ToLower(l.Level)] {
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Message: "must be one of: debug, info, warn, error",
			Value:   l.Level,
			Wrapped: ErrInvalidConfig,
		})
	}
	if l.Format != "" && !validLogFormats[strings.ToLower(l.Format)] {
		errs = append(errs, ValidationError{
			Field:   "logging.format",
			Message: "must be one of: text, json",
			Value:   l.Format,
			Wrapped: ErrInvalidConfig,
		})
	}
	return errs
}

// isPlainFileName reports whether name is a single path element.
func isPlainFileName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return path.Base(name) == name && filepath.Base(name) == name
}
