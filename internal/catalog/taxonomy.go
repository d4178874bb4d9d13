package catalog

import (
	"slices"
	"strings"

	"github.com/modu-ai/folio/internal/config"
)

// Category is the resolved classification of a project.
type Category struct {
	Name  string
	Glyph string
}

// Classifier maps project identifiers to categories. Its tables are copied
// at construction and never change afterwards, so a Classifier is safe for
// concurrent use.
type Classifier struct {
	categories []string
	known      map[string]bool
	fallback   string
	prefixes   map[string]string
	glyphs     map[string]string
}

// NewClassifier builds a Classifier from the taxonomy configuration.
func NewClassifier(tax config.TaxonomyConfig) *Classifier {
	t := tax.Clone()
	known := make(map[string]bool, len(t.Categories))
	for _, c := range t.Categories {
		known[c] = true
	}
	return &Classifier{
		categories: t.Categories,
		known:      known,
		fallback:   t.Fallback,
		prefixes:   t.Prefixes,
		glyphs:     t.Glyphs,
	}
}

// Classify returns the category for id. A known category segment wins;
// otherwise the text before the first '-' of the folder name is looked up
// in the prefix table; otherwise the fallback category is used.
func (c *Classifier) Classify(id ProjectID) Category {
	name := c.fallback
	if group, ok := id.Group(); ok && c.known[group] {
		name = group
	} else {
		prefix, _, _ := strings.Cut(id.Name(), "-")
		if target, ok := c.prefixes[prefix]; ok && c.known[target] {
			name = target
		}
	}
	return Category{Name: name, Glyph: c.Glyph(name)}
}

// Glyph returns the display glyph for a category name, falling back to the
// fallback category's glyph for unknown names.
func (c *Classifier) Glyph(name string) string {
	if g, ok := c.glyphs[name]; ok && g != "" {
		return g
	}
	return c.glyphs[c.fallback]
}

// IsCategory reports whether name is a configured category.
func (c *Classifier) IsCategory(name string) bool {
	return c.known[name]
}

// Categories returns the configured categories in scan order.
func (c *Classifier) Categories() []string {
	return slices.Clone(c.categories)
}

// Fallback returns the category used when nothing else matches.
func (c *Classifier) Fallback() string {
	return c.fallback
}
