package catalog

import (
	"path"
	"path/filepath"
	"strings"
)

// ProjectID identifies a project folder relative to the projects root, in
// slash form: either "folder" or "category/folder".
type ProjectID string

// NewProjectID joins path segments into a ProjectID.
func NewProjectID(segments ...string) ProjectID {
	return ProjectID(path.Join(segments...))
}

// Segments returns the slash-separated parts of the identifier.
func (id ProjectID) Segments() []string {
	return strings.Split(string(id), "/")
}

// Name returns the project folder name (the last segment).
func (id ProjectID) Name() string {
	return path.Base(string(id))
}

// Group returns the leading category segment, if the identifier has one.
func (id ProjectID) Group() (string, bool) {
	before, _, found := strings.Cut(string(id), "/")
	if !found {
		return "", false
	}
	return before, true
}

// Dir returns the project folder on disk under projectsRoot.
func (id ProjectID) Dir(projectsRoot string) string {
	return filepath.Join(projectsRoot, filepath.FromSlash(string(id)))
}

// String implements fmt.Stringer.
func (id ProjectID) String() string {
	return string(id)
}

// isVisible reports whether a directory entry takes part in the scan.
// Names starting with '_' (drafts) or '.' (hidden) never do.
func isVisible(name string) bool {
	return name != "" && !strings.HasPrefix(name, "_") && !strings.HasPrefix(name, ".")
}
