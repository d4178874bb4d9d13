package catalog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/modu-ai/folio/pkg/models"
)

// Scanner discovers project folders under a projects root. Scanning is
// read-only; every call to Scan walks the filesystem again.
type Scanner struct {
	root       string
	layout     models.Layout
	categories []string
	isCategory func(string) bool
	logger     *slog.Logger
}

// NewScanner creates a Scanner for root using the classifier's categories
// as the fixed category folder names.
func NewScanner(root string, layout models.Layout, classifier *Classifier, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Scanner{
		root:       filepath.Clean(root),
		layout:     layout,
		categories: classifier.Categories(),
		isCategory: classifier.IsCategory,
		logger:     logger,
	}
}

// Scan returns the identifiers of all visible project folders, sorted
// lexicographically. A missing root is reported as ErrRootNotFound; a
// missing category folder is skipped.
func (s *Scanner) Scan(ctx context.Context) ([]ProjectID, error) {
	info, err := os.Stat(s.root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrRootNotFound, s.root)
	}

	s.logger.Debug("scanning projects", "root", s.root, "layout", s.layout)

	var ids []ProjectID
	if s.layout != models.LayoutFlat {
		for _, category := range s.categories {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			ids = append(ids, s.scanCategory(category)...)
		}
	}

	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("read projects root %s: %w", s.root, err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() || !isVisible(name) {
			continue
		}
		if s.layout != models.LayoutFlat && s.isCategory(name) {
			continue
		}
		ids = append(ids, NewProjectID(name))
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	s.logger.Debug("scan complete", "count", len(ids))
	return ids, nil
}

// scanCategory lists the visible child folders of one category folder.
func (s *Scanner) scanCategory(category string) []ProjectID {
	dir := filepath.Join(s.root, category)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		s.logger.Warn("cannot read category folder, skipping", "category", category, "error", err)
		return nil
	}

	ids := make([]ProjectID, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() && isVisible(entry.Name()) {
			ids = append(ids, NewProjectID(category, entry.Name()))
		}
	}
	return ids
}
