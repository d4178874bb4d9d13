// Package template renders project cards, assembles the catalog page and
// scaffolds new project folders from embedded starter templates.
package template

import "errors"

// Sentinel errors for template operations.
var (
	// ErrTemplateNotFound indicates a named template does not exist in the filesystem.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrTemplateRead indicates the page template could not be read.
	ErrTemplateRead = errors.New("template read failed")

	// ErrOutputWrite indicates the page or metadata file could not be written.
	ErrOutputWrite = errors.New("output write failed")

	// ErrMissingTemplateKey indicates template execution referenced missing data.
	ErrMissingTemplateKey = errors.New("missing template key")

	// ErrUnexpandedToken indicates a {{TOKEN}} remained in the assembled page.
	ErrUnexpandedToken = errors.New("unexpanded token in output")

	// ErrPathTraversal indicates a deploy path escapes the target directory.
	ErrPathTraversal = errors.New("path traversal detected")

	// ErrPlaceholderMissing indicates the page template has no cards placeholder.
	ErrPlaceholderMissing = errors.New("cards placeholder not found")

	// ErrPlaceholderRepeated indicates the cards placeholder occurs more than once.
	ErrPlaceholderRepeated = errors.New("cards placeholder repeated")
)
