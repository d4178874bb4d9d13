package template

import (
	"embed"
	"io/fs"
)

//go:embed templates
var embedded embed.FS

// Embedded file names.
const (
	// CardTemplateName is the card template inside CardFS.
	CardTemplateName = "card.html.tmpl"
	// StarterEntryTemplate is the starter entry page inside StarterFS.
	StarterEntryTemplate = "index.html.tmpl"
)

// CardFS returns the filesystem holding the built-in card template.
func CardFS() fs.FS {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		panic("template: embedded card templates missing: " + err.Error())
	}
	return sub
}

// StarterFS returns the filesystem scaffolded by `folio new`.
func StarterFS() fs.FS {
	sub, err := fs.Sub(embedded, "templates/starter")
	if err != nil {
		panic("template: embedded starter templates missing: " + err.Error())
	}
	return sub
}
