package models

// Record is a resolved project as it appears on the catalog page and in
// the metadata file.
type Record struct {
	ID            string `json:"id" yaml:"id"`
	Title         string `json:"title" yaml:"title"`
	Note          string `json:"note" yaml:"note"`
	Category      string `json:"category" yaml:"category"`
	CategoryEmoji string `json:"categoryEmoji" yaml:"category_emoji"`
	LinkPath      string `json:"linkPath" yaml:"link_path"`
	RelativePath  string `json:"relativePath" yaml:"relative_path"`
}

// HasNote reports whether the record carries a note to display.
func (r Record) HasNote() bool {
	return r.Note != ""
}
