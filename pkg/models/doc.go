// Package models provides shared data models and types for folio.
//
// This package contains the record and layout types that are used across
// the catalog, template, builder and server packages.
//
// # Layouts
//
// A projects directory can be organized two ways:
//   - Categorized: fixed-name category folders, each holding project folders
//   - Flat: project folders directly under the projects directory
//
// Use [Layout] and its constants:
//
//	layout := models.LayoutCategorized
//	if layout.IsValid() {
//	    fmt.Println("Valid layout:", layout)
//	}
//
// # Records
//
// A [Record] is the resolved, immutable description of one published project.
// The JSON field names are consumed by client-side search and filter scripts
// and must stay stable.
package models
