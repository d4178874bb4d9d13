package template

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"sync"
	"text/template"
)

// templateFuncMap provides custom functions available in all templates.
var templateFuncMap = template.FuncMap{
	// jsonEscape escapes a string for embedding inside a JSON string literal.
	"jsonEscape": func(s string) string {
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(s); err != nil {
			return s
		}
		b := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
		// strip the surrounding quotes
		return string(b[1 : len(b)-1])
	},
}

// Renderer renders Go text/template files with strict mode enabled.
type Renderer interface {
	// Render parses the named template from the filesystem and executes
	// it with the given data. Returns ErrTemplateNotFound when the file is
	// missing and ErrMissingTemplateKey when execution fails.
	Render(templateName string, data any) ([]byte, error)
}

// renderer is the concrete implementation of Renderer. Parsed templates are
// cached per name, so a Renderer over a changing filesystem must be
// recreated to pick up edits.
type renderer struct {
	fsys fs.FS

	mu    sync.Mutex
	cache map[string]*template.Template
}

// NewRenderer creates a Renderer backed by the given filesystem.
func NewRenderer(fsys fs.FS) Renderer {
	return &renderer{fsys: fsys, cache: make(map[string]*template.Template)}
}

// Render parses and executes a template with strict mode (missingkey=error).
func (r *renderer) Render(templateName string, data any) ([]byte, error) {
	tmpl, err := r.lookup(templateName)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingTemplateKey, err)
	}
	return buf.Bytes(), nil
}

func (r *renderer) lookup(templateName string) (*template.Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if tmpl, ok := r.cache[templateName]; ok {
		return tmpl, nil
	}

	content, err := fs.ReadFile(r.fsys, templateName)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, templateName)
	}

	tmpl, err := template.New(templateName).
		Funcs(templateFuncMap).
		Option("missingkey=error").
		Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("template parse %q: %w", templateName, err)
	}

	r.cache[templateName] = tmpl
	return tmpl, nil
}
