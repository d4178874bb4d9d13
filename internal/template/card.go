package template

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/modu-ai/folio/pkg/models"
)

// CardRenderer turns catalog records into HTML card fragments. Values are
// interpolated without HTML escaping, so titles and notes containing markup
// end up in the page verbatim.
type CardRenderer struct {
	renderer Renderer
	name     string
}

// NewCardRenderer returns a CardRenderer using the card template at
// overridePath, or the built-in card template when overridePath is empty.
func NewCardRenderer(overridePath string) (*CardRenderer, error) {
	if overridePath == "" {
		return NewCardRendererFS(CardFS(), CardTemplateName)
	}
	return NewCardRendererFS(os.DirFS(filepath.Dir(overridePath)), filepath.Base(overridePath))
}

// NewCardRendererFS returns a CardRenderer for the named template in fsys.
// The template is parsed eagerly so a broken override fails the build
// before any output is written.
func NewCardRendererFS(fsys fs.FS, name string) (*CardRenderer, error) {
	c := &CardRenderer{renderer: NewRenderer(fsys), name: name}
	if _, err := c.renderer.Render(name, models.Record{}); err != nil {
		return nil, err
	}
	return c, nil
}

// Render returns the card markup for one record.
func (c *CardRenderer) Render(rec models.Record) (string, error) {
	out, err := c.renderer.Render(c.name, rec)
	if err != nil {
		return "", fmt.Errorf("render card %s: %w", rec.ID, err)
	}
	return strings.TrimRight(string(out), "\r\n"), nil
}

// RenderAll renders every record in order.
func (c *CardRenderer) RenderAll(ctx context.Context, records []models.Record) ([]string, error) {
	cards := make([]string, 0, len(records))
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		card, err := c.Render(rec)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}
