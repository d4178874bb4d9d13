// Package builder runs the catalog pipeline: scan, classify, resolve,
// render and write. One Builder holds the immutable tables for one
// configuration and can run any number of builds.
package builder

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/modu-ai/folio/internal/catalog"
	"github.com/modu-ai/folio/internal/config"
	"github.com/modu-ai/folio/internal/template"
	"github.com/modu-ai/folio/pkg/models"
	"github.com/modu-ai/folio/pkg/version"
)

// ProgressFunc is called after each project is resolved.
type ProgressFunc func(done, total int, id catalog.ProjectID)

// Catalog is the resolved, ordered project list of one run.
type Catalog struct {
	Records    []models.Record
	Discovered int
	Skipped    []catalog.ProjectID
	Warnings   []string
}

// Result describes a completed build.
type Result struct {
	Catalog
	PagePath     string
	MetadataPath string
	Version      string
}

// Builder orchestrates one configuration's builds.
type Builder struct {
	cfg        *config.Config
	logger     *slog.Logger
	classifier *catalog.Classifier
	scanner    *catalog.Scanner
	resolver   *catalog.Resolver
	progress   ProgressFunc
}

// New creates a Builder for cfg. The taxonomy tables are copied, so later
// changes to cfg do not affect the Builder.
func New(cfg *config.Config, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	classifier := catalog.NewClassifier(cfg.Taxonomy)
	return &Builder{
		cfg:        cfg,
		logger:     logger,
		classifier: classifier,
		scanner:    catalog.NewScanner(cfg.ProjectsPath(), cfg.Build.Layout, classifier, logger),
		resolver: catalog.NewResolver(catalog.ResolverOptions{
			ProjectsRoot:    cfg.ProjectsPath(),
			LinkPrefix:      cfg.LinkPrefix(),
			EntryPoint:      cfg.Build.EntryPoint,
			DescriptorFiles: cfg.Build.DescriptorFiles,
		}, logger),
	}
}

// OnProgress registers a callback invoked once per resolved project.
func (b *Builder) OnProgress(fn ProgressFunc) {
	b.progress = fn
}

// Classifier returns the category classifier used by this Builder.
func (b *Builder) Classifier() *catalog.Classifier {
	return b.classifier
}

// Config returns the configuration the Builder was created with.
func (b *Builder) Config() *config.Config {
	return b.cfg
}

// Collect scans, classifies and resolves every project without writing
// anything. Records come back in scan order; skipped projects are listed
// separately and have no record.
func (b *Builder) Collect(ctx context.Context) (*Catalog, error) {
	ids, err := b.scanner.Scan(ctx)
	if err != nil {
		return nil, err
	}

	cats := make([]catalog.Category, len(ids))
	for i, id := range ids {
		cats[i] = b.classifier.Classify(id)
	}

	out := &Catalog{
		Records:    make([]models.Record, 0, len(ids)),
		Discovered: len(ids),
	}
	for i, id := range ids {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res := b.resolver.Resolve(id, cats[i])
		for _, w := range res.Warnings {
			out.Warnings = append(out.Warnings, w.Error())
		}
		if res.Skipped {
			out.Skipped = append(out.Skipped, id)
		} else {
			out.Records = append(out.Records, res.Record)
		}
		if b.progress != nil {
			b.progress(i+1, len(ids), id)
		}
	}
	return out, nil
}

// @MX:ANCHOR: [AUTO] Build is the single entry point for producing the page and metadata file.
// Build runs the full pipeline and writes both artifacts. Errors returned
// here are fatal; per-project problems only appear in Result.Warnings.
func (b *Builder) Build(ctx context.Context) (*Result, error) {
	b.logger.Info("starting build",
		"root", b.cfg.ProjectsPath(),
		"layout", b.cfg.Build.Layout,
	)

	cards, err := template.NewCardRenderer(b.cfg.CardTemplatePath())
	if err != nil {
		return nil, fmt.Errorf("load card template: %w", err)
	}

	cat, err := b.Collect(ctx)
	if err != nil {
		return nil, err
	}
	b.logger.Info("projects discovered", "count", cat.Discovered)
	if len(cat.Skipped) > 0 {
		b.logger.Info("projects skipped", "count", len(cat.Skipped))
	}

	html, err := cards.RenderAll(ctx, cat.Records)
	if err != nil {
		return nil, err
	}

	res := &Result{Catalog: *cat}
	opts := template.AssemblerOptions{
		TemplatePath: b.cfg.TemplatePath(),
		OutputPath:   b.cfg.OutputPath(),
		MetadataPath: b.cfg.MetadataPath(),
		Placeholder:  b.cfg.Build.Placeholder,
	}
	if b.cfg.Build.StampVersion {
		res.Version = version.Stamp(b.cfg.Build.Version)
		opts.VersionToken = b.cfg.Build.VersionToken
		opts.Version = res.Version
	}

	art, err := template.NewAssembler(opts, b.logger).Assemble(ctx, cat.Records, html)
	if err != nil {
		return nil, err
	}
	for _, w := range art.Warnings {
		res.Warnings = append(res.Warnings, w.Error())
	}
	res.PagePath = art.PagePath
	res.MetadataPath = art.MetadataPath

	b.logger.Info("build complete", "projects", len(res.Records))
	return res, nil
}
