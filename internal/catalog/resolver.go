package catalog

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/modu-ai/folio/pkg/models"
)

// ResolverOptions configures a Resolver.
type ResolverOptions struct {
	// ProjectsRoot is the projects directory on disk.
	ProjectsRoot string
	// LinkPrefix is the slash path from the output page to ProjectsRoot,
	// e.g. "projects".
	LinkPrefix string
	// EntryPoint is the default entry file name, e.g. "index.html".
	EntryPoint string
	// DescriptorFiles are the descriptor names tried in order.
	DescriptorFiles []string
}

// Resolution is the outcome of resolving one project. When Skipped is
// true, Record is zero and must not be published.
type Resolution struct {
	Record   models.Record
	Skipped  bool
	Warnings []error
}

// Resolver turns project identifiers into catalog records. Per-project
// problems are reported as warnings on the Resolution; Resolve never fails.
type Resolver struct {
	opts   ResolverOptions
	logger *slog.Logger
}

// NewResolver creates a Resolver.
func NewResolver(opts ResolverOptions, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	opts.DescriptorFiles = append([]string(nil), opts.DescriptorFiles...)
	return &Resolver{opts: opts, logger: logger}
}

// Resolve builds the record for id in category cat.
//
// Defaults are derived from the folder name. A parsed descriptor overrides
// title and note when they are non-empty, and the link when its mainFile is
// a regular file inside the project folder. A malformed descriptor keeps
// the defaults. Without any descriptor the default entry point must exist,
// otherwise the project is skipped.
func (r *Resolver) Resolve(id ProjectID, cat Category) Resolution {
	// Paths on disk keep the folder's own bytes; only displayed values are
	// normalized.
	name := norm.NFC.String(id.Name())
	dir := id.Dir(r.opts.ProjectsRoot)
	rel := path.Join(r.opts.LinkPrefix, string(id))

	rec := models.Record{
		ID:            name,
		Title:         DefaultTitle(name),
		Category:      cat.Name,
		CategoryEmoji: cat.Glyph,
		LinkPath:      linkTo(rel, r.opts.EntryPoint),
		RelativePath:  rel,
	}

	var res Resolution
	desc := LoadDescriptor(dir, r.opts.DescriptorFiles)
	switch desc.Status {
	case DescriptorParsed:
		d := desc.Descriptor
		if d.Title != "" {
			rec.Title = d.Title
		}
		if d.Note != "" {
			rec.Note = d.Note
		}
		if d.MainFile != "" {
			entry, err := checkEntryPoint(dir, d.MainFile)
			if err != nil {
				res.warn(r.logger, id, "declared entry point unusable, keeping default link", err)
			} else {
				rec.LinkPath = linkTo(rel, entry)
			}
		}
	case DescriptorMalformed:
		res.warn(r.logger, id, "malformed descriptor, using defaults", desc.Err)
	case DescriptorAbsent:
		if _, err := checkEntryPoint(dir, r.opts.EntryPoint); err != nil {
			res.Skipped = true
			res.warn(r.logger, id, "project skipped: no descriptor and no entry point", err)
			return res
		}
	}

	res.Record = rec
	return res
}

func (res *Resolution) warn(logger *slog.Logger, id ProjectID, msg string, err error) {
	werr := fmt.Errorf("%s: %w", id, err)
	res.Warnings = append(res.Warnings, werr)
	logger.Warn(msg, "project", id.String(), "error", err)
}

// DefaultTitle derives a display title from a folder name by turning '-'
// and '_' into spaces.
func DefaultTitle(folder string) string {
	title := strings.NewReplacer("-", " ", "_", " ").Replace(folder)
	return norm.NFC.String(title)
}

// checkEntryPoint validates that file names a regular file inside dir and
// returns its cleaned slash form.
func checkEntryPoint(dir, file string) (string, error) {
	slashed := strings.ReplaceAll(file, "\\", "/")
	if path.IsAbs(slashed) || filepath.IsAbs(file) || filepath.VolumeName(file) != "" {
		return "", fmt.Errorf("%w: %q", ErrUnsafeEntryPoint, file)
	}
	clean := path.Clean(slashed)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("%w: %q", ErrUnsafeEntryPoint, file)
	}

	info, err := os.Stat(filepath.Join(dir, filepath.FromSlash(clean)))
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrEntryPointMissing, clean)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %s is not a regular file", ErrEntryPointMissing, clean)
	}
	return clean, nil
}

// linkTo builds the page-relative link to file inside the project at rel.
func linkTo(rel, file string) string {
	link := path.Join(rel, file)
	if strings.HasPrefix(link, "../") || strings.HasPrefix(link, "/") {
		return link
	}
	return "./" + link
}
