package config

import (
	"testing"

	"github.com/modu-ai/folio/pkg/models"
)

func TestNewDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := NewDefaultConfig()
	if cfg == nil {
		t.Fatal("NewDefaultConfig() returned nil")
	}

	cfg2 := NewDefaultConfig()
	if cfg == cfg2 {
		t.Error("NewDefaultConfig() returned the same pointer, expected distinct instances")
	}
}

func TestNewDefaultConfigContainsAllSections(t *testing.T) {
	t.Parallel()

	cfg := NewDefaultConfig()

	if cfg.Site.ProjectsDir != "projects" {
		t.Errorf("Site.ProjectsDir: got %q, want %q", cfg.Site.ProjectsDir, "projects")
	}
	if cfg.Site.Template != "_template.html" {
		t.Errorf("Site.Template: got %q, want %q", cfg.Site.Template, "_template.html")
	}
	if cfg.Build.Layout != models.LayoutCategorized {
		t.Errorf("Build.Layout: got %q, want %q", cfg.Build.Layout, models.LayoutCategorized)
	}
	if cfg.Build.StampVersion {
		t.Error("Build.StampVersion: got true, want false")
	}
	if cfg.Build.Placeholder != "{{PROJECT_CARDS}}" {
		t.Errorf("Build.Placeholder: got %q", cfg.Build.Placeholder)
	}
	if cfg.Logging.Level != DefaultLogLevel {
		t.Errorf("Logging.Level: got %q, want %q", cfg.Logging.Level, DefaultLogLevel)
	}
	if cfg.Serve.Addr != DefaultServeAddr {
		t.Errorf("Serve.Addr: got %q, want %q", cfg.Serve.Addr, DefaultServeAddr)
	}
	if cfg.Watch.Debounce != DefaultDebounce {
		t.Errorf("Watch.Debounce: got %v, want %v", cfg.Watch.Debounce, DefaultDebounce)
	}
}

func TestNewDefaultTaxonomyIsComplete(t *testing.T) {
	t.Parallel()

	tax := NewDefaultTaxonomyConfig()
	if len(tax.Categories) != 9 {
		t.Fatalf("Categories: got %d, want 9", len(tax.Categories))
	}
	for _, c := range tax.Categories {
		if tax.Glyphs[c] == "" {
			t.Errorf("category %q has no glyph", c)
		}
		if c == tax.Fallback {
			if _, ok := tax.Prefixes[c]; ok {
				t.Errorf("fallback %q should not have a prefix entry", c)
			}
			continue
		}
		if tax.Prefixes[c] != c {
			t.Errorf("Prefixes[%q] = %q, want %q", c, tax.Prefixes[c], c)
		}
	}
}

func TestNewDefaultTaxonomyIndependentCopies(t *testing.T) {
	t.Parallel()

	a := NewDefaultTaxonomyConfig()
	b := NewDefaultTaxonomyConfig()
	a.Categories[0] = "changed"
	a.Glyphs["game"] = "x"
	if b.Categories[0] == "changed" || b.Glyphs["game"] == "x" {
		t.Error("default taxonomies share backing storage")
	}
}

func TestTaxonomyClone(t *testing.T) {
	t.Parallel()

	orig := NewDefaultTaxonomyConfig()
	clone := orig.Clone()
	clone.Prefixes["game"] = "demo"
	clone.Categories[0] = "zzz"
	if orig.Prefixes["game"] != "game" {
		t.Error("Clone shares the prefix map")
	}
	if orig.Categories[0] == "zzz" {
		t.Error("Clone shares the category slice")
	}
}

func TestConfigPaths(t *testing.T) {
	t.Parallel()

	cfg := NewDefaultConfig()
	cfg.Root = "/site"

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"projects", cfg.ProjectsPath(), "/site/projects"},
		{"template", cfg.TemplatePath(), "/site/_template.html"},
		{"output", cfg.OutputPath(), "/site/index.html"},
		{"metadata", cfg.MetadataPath(), "/site/metadata.json"},
		{"card template unset", cfg.CardTemplatePath(), ""},
		{"link prefix", cfg.LinkPrefix(), "projects"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestConfigLinkPrefixFromNestedOutput(t *testing.T) {
	t.Parallel()

	cfg := NewDefaultConfig()
	cfg.Root = "/site"
	cfg.Site.Output = "public/index.html"
	if got := cfg.LinkPrefix(); got != "../projects" {
		t.Errorf("LinkPrefix() = %q, want %q", got, "../projects")
	}
}

func TestIsValidSectionName(t *testing.T) {
	t.Parallel()

	for _, name := range ValidSectionNames() {
		if !IsValidSectionName(name) {
			t.Errorf("IsValidSectionName(%q) = false", name)
		}
	}
	if IsValidSectionName("quality") {
		t.Error("IsValidSectionName(quality) = true, want false")
	}
}
