// Package catalog implements project discovery and metadata resolution for
// the catalog page: the directory scanner, the category classifier, the
// descriptor parser and the metadata resolver.
package catalog

import "errors"

// Sentinel errors for the catalog package.
var (
	// ErrRootNotFound indicates the projects directory is missing or not a directory.
	ErrRootNotFound = errors.New("projects root not found")

	// ErrMalformedDescriptor indicates a descriptor file exists but cannot be parsed.
	ErrMalformedDescriptor = errors.New("malformed project descriptor")

	// ErrEntryPointMissing indicates a declared or default entry point file does not exist.
	ErrEntryPointMissing = errors.New("entry point not found")

	// ErrUnsafeEntryPoint indicates a declared entry point leaves the project folder.
	ErrUnsafeEntryPoint = errors.New("entry point escapes project folder")
)
