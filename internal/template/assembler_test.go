package template

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/modu-ai/folio/pkg/models"
)

func newTestAssembler(t *testing.T, tmpl string) (*Assembler, string) {
	t.Helper()
	dir := t.TempDir()
	tmplPath := filepath.Join(dir, "_template.html")
	if err := os.WriteFile(tmplPath, []byte(tmpl), 0o644); err != nil {
		t.Fatal(err)
	}
	return NewAssembler(AssemblerOptions{
		TemplatePath: tmplPath,
		OutputPath:   filepath.Join(dir, "index.html"),
		MetadataPath: filepath.Join(dir, "metadata.json"),
		Placeholder:  "{{PROJECT_CARDS}}",
	}, nil), dir
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestAssemble(t *testing.T) {
	t.Parallel()

	a, dir := newTestAssembler(t, "<main>\n{{PROJECT_CARDS}}\n</main>\n")
	records := []models.Record{{ID: "a", Title: "A & B"}, {ID: "b", Title: "<B>"}}

	art, err := a.Assemble(context.Background(), records, []string{"<card a>", "<card b>"})
	if err != nil {
		t.Fatalf("Assemble() error: %v", err)
	}
	if len(art.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", art.Warnings)
	}
	if art.Cards != 2 {
		t.Errorf("Cards = %d", art.Cards)
	}

	if got, want := readFile(t, filepath.Join(dir, "index.html")), "<main>\n<card a>\n<card b>\n</main>\n"; got != want {
		t.Errorf("page = %q, want %q", got, want)
	}

	meta := readFile(t, filepath.Join(dir, "metadata.json"))
	if !strings.HasPrefix(meta, "[\n  {\n    \"id\": \"a\",") {
		t.Errorf("metadata not two-space indented:\n%s", meta)
	}
	if !strings.Contains(meta, `"title": "A & B"`) || !strings.Contains(meta, `"title": "<B>"`) {
		t.Errorf("metadata HTML-escaped:\n%s", meta)
	}
	if strings.HasSuffix(meta, "\n") {
		t.Error("metadata should not end with a newline")
	}
}

func TestAssembleEmpty(t *testing.T) {
	t.Parallel()

	a, dir := newTestAssembler(t, "[{{PROJECT_CARDS}}]")
	if _, err := a.Assemble(context.Background(), nil, nil); err != nil {
		t.Fatal(err)
	}
	if got := readFile(t, filepath.Join(dir, "metadata.json")); got != "[]" {
		t.Errorf("metadata = %q, want []", got)
	}
	if got := readFile(t, filepath.Join(dir, "index.html")); got != "[]" {
		t.Errorf("page = %q, want []", got)
	}
}

func TestAssemblePlaceholderWarnings(t *testing.T) {
	t.Parallel()

	t.Run("missing", func(t *testing.T) {
		t.Parallel()
		a, dir := newTestAssembler(t, "<main></main>")
		art, err := a.Assemble(context.Background(), nil, []string{"x"})
		if err != nil {
			t.Fatal(err)
		}
		if len(art.Warnings) != 1 || !errors.Is(art.Warnings[0], ErrPlaceholderMissing) {
			t.Errorf("Warnings = %v", art.Warnings)
		}
		if got := readFile(t, filepath.Join(dir, "index.html")); got != "<main></main>" {
			t.Errorf("page = %q", got)
		}
	})

	t.Run("repeated", func(t *testing.T) {
		t.Parallel()
		a, dir := newTestAssembler(t, "{{PROJECT_CARDS}}|{{PROJECT_CARDS}}")
		art, err := a.Assemble(context.Background(), nil, []string{"x"})
		if err != nil {
			t.Fatal(err)
		}
		if len(art.Warnings) != 1 || !errors.Is(art.Warnings[0], ErrPlaceholderRepeated) {
			t.Errorf("Warnings = %v", art.Warnings)
		}
		if got := readFile(t, filepath.Join(dir, "index.html")); got != "x|{{PROJECT_CARDS}}" {
			t.Errorf("page = %q", got)
		}
	})

	t.Run("unknown token", func(t *testing.T) {
		t.Parallel()
		a, _ := newTestAssembler(t, "{{SITE_NAME}} {{PROJECT_CARDS}} ${jsValue}")
		art, err := a.Assemble(context.Background(), nil, nil)
		if err != nil {
			t.Fatal(err)
		}
		if len(art.Warnings) != 1 || !errors.Is(art.Warnings[0], ErrUnexpandedToken) {
			t.Errorf("Warnings = %v", art.Warnings)
		}
	})
}

func TestAssembleVersionStamp(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tmplPath := filepath.Join(dir, "_template.html")
	if err := os.WriteFile(tmplPath, []byte("v{{BUILD_VERSION}}\n{{PROJECT_CARDS}}"), 0o644); err != nil {
		t.Fatal(err)
	}
	a := NewAssembler(AssemblerOptions{
		TemplatePath: tmplPath,
		OutputPath:   filepath.Join(dir, "index.html"),
		MetadataPath: filepath.Join(dir, "metadata.json"),
		Placeholder:  "{{PROJECT_CARDS}}",
		VersionToken: "{{BUILD_VERSION}}",
		Version:      "1.2.3",
	}, nil)

	art, err := a.Assemble(context.Background(), nil, []string{"card {{BUILD_VERSION}}"})
	if err != nil {
		t.Fatal(err)
	}
	if len(art.Warnings) != 0 {
		t.Errorf("Warnings = %v", art.Warnings)
	}
	if got := readFile(t, filepath.Join(dir, "index.html")); got != "v1.2.3\ncard {{BUILD_VERSION}}" {
		t.Errorf("page = %q", got)
	}
}

func TestAssembleTemplateReadFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := NewAssembler(AssemblerOptions{
		TemplatePath: filepath.Join(dir, "missing.html"),
		OutputPath:   filepath.Join(dir, "index.html"),
		MetadataPath: filepath.Join(dir, "metadata.json"),
		Placeholder:  "{{PROJECT_CARDS}}",
	}, nil)

	_, err := a.Assemble(context.Background(), nil, nil)
	if !errors.Is(err, ErrTemplateRead) {
		t.Fatalf("expected ErrTemplateRead, got %v", err)
	}
	for _, name := range []string{"index.html", "metadata.json"} {
		if _, statErr := os.Stat(filepath.Join(dir, name)); !os.IsNotExist(statErr) {
			t.Errorf("%s should not be written", name)
		}
	}
}

func TestAssembleWriteFailure(t *testing.T) {
	t.Parallel()

	a, dir := newTestAssembler(t, "{{PROJECT_CARDS}}")
	blocker := filepath.Join(dir, "blocked")
	if err := os.WriteFile(blocker, []byte("file"), 0o644); err != nil {
		t.Fatal(err)
	}
	a.opts.MetadataPath = filepath.Join(blocker, "metadata.json")

	_, err := a.Assemble(context.Background(), nil, nil)
	if !errors.Is(err, ErrOutputWrite) {
		t.Fatalf("expected ErrOutputWrite, got %v", err)
	}
}

func TestMarshalRecordsKeys(t *testing.T) {
	t.Parallel()

	data, err := MarshalRecords([]models.Record{{
		ID: "clock", Title: "Clock", Category: "demo", CategoryEmoji: "D",
		LinkPath: "./projects/demo/clock/app.html", RelativePath: "projects/demo/clock",
	}})
	if err != nil {
		t.Fatal(err)
	}
	want := `[
  {
    "id": "clock",
    "title": "Clock",
    "note": "",
    "category": "demo",
    "categoryEmoji": "D",
    "linkPath": "./projects/demo/clock/app.html",
    "relativePath": "projects/demo/clock"
  }
]`
	if string(data) != want {
		t.Errorf("MarshalRecords() =\n%s\nwant\n%s", data, want)
	}
}
