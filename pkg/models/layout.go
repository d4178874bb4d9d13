package models

// Layout defines how the projects directory is organized.
type Layout string

const (
	// LayoutCategorized scans fixed-name category folders and loose project
	// folders at the projects root (default).
	LayoutCategorized Layout = "categorized"

	// LayoutFlat treats every folder under the projects root as a project.
	LayoutFlat Layout = "flat"
)

// ValidLayouts returns all valid layout values.
func ValidLayouts() []Layout {
	return []Layout{LayoutCategorized, LayoutFlat}
}

// IsValid checks if the layout is a valid value.
func (l Layout) IsValid() bool {
	switch l {
	case LayoutCategorized, LayoutFlat:
		return true
	}
	return false
}
