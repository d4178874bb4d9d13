package template

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/modu-ai/folio/internal/atomicfile"
	"github.com/modu-ai/folio/pkg/models"
)

// leftoverTokenPattern finds {{NAME}} tokens still present in the page
// template after the placeholder and version token are replaced.
var leftoverTokenPattern = regexp.MustCompile(`\{\{[A-Z_][A-Z0-9_]*\}\}`)

// AssemblerOptions configures an Assembler.
type AssemblerOptions struct {
	TemplatePath string
	OutputPath   string
	MetadataPath string
	Placeholder  string
	// VersionToken is replaced by Version when non-empty.
	VersionToken string
	Version      string
}

// Artifacts describes the files written by one assembly.
type Artifacts struct {
	PagePath     string
	MetadataPath string
	Cards        int
	Warnings     []error
}

// Assembler writes the catalog page and the metadata file.
type Assembler struct {
	opts   AssemblerOptions
	logger *slog.Logger
}

// NewAssembler creates an Assembler.
func NewAssembler(opts AssemblerOptions, logger *slog.Logger) *Assembler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Assembler{opts: opts, logger: logger}
}

// @MX:ANCHOR: [AUTO] Assemble is the only place the build writes to disk.
// Assemble reads the page template, substitutes the cards, writes the page
// and then the metadata file. Both writes are atomic. A read failure
// returns ErrTemplateRead and a write failure returns ErrOutputWrite; no
// output is touched when the template cannot be read.
func (a *Assembler) Assemble(ctx context.Context, records []models.Record, cards []string) (*Artifacts, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(a.opts.TemplatePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateRead, a.opts.TemplatePath, err)
	}

	metadata, err := MarshalRecords(records)
	if err != nil {
		return nil, fmt.Errorf("%w: encode metadata: %v", ErrOutputWrite, err)
	}

	art := &Artifacts{
		PagePath:     a.opts.OutputPath,
		MetadataPath: a.opts.MetadataPath,
		Cards:        len(cards),
	}
	page := a.compose(string(raw), cards, art)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := atomicfile.Save(a.opts.OutputPath, []byte(page), 0o644); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrOutputWrite, a.opts.OutputPath, err)
	}
	a.logger.Info("page written", "path", a.opts.OutputPath, "cards", len(cards))

	if err := atomicfile.Save(a.opts.MetadataPath, metadata, 0o644); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrOutputWrite, a.opts.MetadataPath, err)
	}
	a.logger.Info("metadata written", "path", a.opts.MetadataPath, "records", len(records))

	return art, nil
}

// compose builds the page text. The version token is stamped into the
// template before the cards go in, so card content is never rewritten.
func (a *Assembler) compose(tmpl string, cards []string, art *Artifacts) string {
	if a.opts.VersionToken != "" {
		tmpl = strings.ReplaceAll(tmpl, a.opts.VersionToken, a.opts.Version)
	}

	switch n := strings.Count(tmpl, a.opts.Placeholder); {
	case n == 0:
		art.warn(a.logger, fmt.Errorf("%w: %s in %s", ErrPlaceholderMissing, a.opts.Placeholder, a.opts.TemplatePath))
	case n > 1:
		art.warn(a.logger, fmt.Errorf("%w: %s occurs %d times, only the first is replaced", ErrPlaceholderRepeated, a.opts.Placeholder, n))
	}

	for _, tok := range leftoverTokenPattern.FindAllString(tmpl, -1) {
		if tok != a.opts.Placeholder {
			art.warn(a.logger, fmt.Errorf("%w: %s", ErrUnexpandedToken, tok))
			break
		}
	}

	return strings.Replace(tmpl, a.opts.Placeholder, strings.Join(cards, "\n"), 1)
}

func (art *Artifacts) warn(logger *slog.Logger, err error) {
	art.Warnings = append(art.Warnings, err)
	logger.Warn("page template problem", "error", err)
}

// MarshalRecords encodes records as a two-space indented JSON array without
// HTML escaping. A nil or empty slice encodes as [].
func MarshalRecords(records []models.Record) ([]byte, error) {
	if records == nil {
		records = []models.Record{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
