package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/modu-ai/folio/internal/builder"
	"github.com/modu-ai/folio/pkg/models"
)

func TestListCmd_HasFlags(t *testing.T) {
	for _, name := range []string{"format", "layout"} {
		if listCmd.Flags().Lookup(name) == nil {
			t.Errorf("list command should have --%s flag", name)
		}
	}
}

func TestListCommand_InvalidFormat(t *testing.T) {
	root := newSite(t, scenario())

	_, _, err := runCLI(t, "list", "--root", root, "--format", "yaml")
	if err == nil || !strings.Contains(err.Error(), "invalid --format") {
		t.Fatalf("error = %v, want invalid --format", err)
	}
}

func TestListCommand_JSON(t *testing.T) {
	root := newSite(t, scenario())

	out, _, err := runCLI(t, "list", "--root", root, "--format", "json")
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	var records []models.Record
	if err := json.Unmarshal([]byte(out), &records); err != nil {
		t.Fatalf("output is not a JSON array: %v\n%s", err, out)
	}
	if len(records) != 2 || records[0].Title != "Clock Widget" {
		t.Errorf("records = %+v", records)
	}

	if _, err := os.Stat(filepath.Join(root, "metadata.json")); !os.IsNotExist(err) {
		t.Error("list must not write the metadata file")
	}
	if _, err := os.Stat(filepath.Join(root, "index.html")); !os.IsNotExist(err) {
		t.Error("list must not write the page")
	}
}

func TestListCommand_JSONMatchesBuild(t *testing.T) {
	root := newSite(t, scenario())

	listed, _, err := runCLI(t, "list", "--root", root, "--format", "json")
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if _, _, err := runCLI(t, "build", "--root", root, "--no-progress"); err != nil {
		t.Fatalf("build error: %v", err)
	}
	written, err := os.ReadFile(filepath.Join(root, "metadata.json"))
	if err != nil {
		t.Fatal(err)
	}
	if listed != string(written)+"\n" {
		t.Errorf("list json differs from metadata.json:\nlist:  %q\nbuild: %q", listed, written)
	}
}

func TestListCommand_Table(t *testing.T) {
	root := newSite(t, scenario())

	out, _, err := runCLI(t, "list", "--root", root)
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	for _, want := range []string{"CATEGORY", "Clock Widget", "./projects/game/asteroids/index.html"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestListCommand_Markdown(t *testing.T) {
	root := newSite(t, scenario())

	out, _, err := runCLI(t, "list", "--root", root, "--format", "markdown")
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if !strings.Contains(out, "Clock") || !strings.Contains(out, "asteroids") {
		t.Errorf("markdown output missing projects:\n%s", out)
	}
}

func TestRenderTable_Empty(t *testing.T) {
	if got := renderTable(nil); !strings.Contains(got, "No projects found.") {
		t.Errorf("renderTable(nil) = %q", got)
	}
}

func TestCatalogMarkdown(t *testing.T) {
	cat := &builder.Catalog{
		Discovered: 4,
		Records: []models.Record{
			{ID: "snake", Title: "Snake", Category: "game", CategoryEmoji: "G", LinkPath: "./projects/game/snake/index.html"},
			{ID: "clock", Title: "Clock", Note: "Ticks", Category: "demo", CategoryEmoji: "D", LinkPath: "./projects/demo/clock/index.html"},
			{ID: "odd", Title: "Odd", Category: "zzz", CategoryEmoji: "Z", LinkPath: "./projects/odd/index.html"},
		},
	}

	md := catalogMarkdown(cat, []string{"demo", "game", "other"})

	if !strings.HasPrefix(md, "# Projects\n\n3 of 4 folders listed.\n") {
		t.Errorf("unexpected header:\n%s", md)
	}
	demo := strings.Index(md, "## D Demo")
	game := strings.Index(md, "## G Game")
	odd := strings.Index(md, "## Z Zzz")
	if demo < 0 || game < 0 || odd < 0 {
		t.Fatalf("missing category headings:\n%s", md)
	}
	if !(demo < game && game < odd) {
		t.Errorf("headings should follow taxonomy order, unknown categories last:\n%s", md)
	}
	if strings.Contains(md, "Other") {
		t.Error("empty categories should be omitted")
	}
	if !strings.Contains(md, "- **Clock** `./projects/demo/clock/index.html`: Ticks\n") {
		t.Errorf("note should follow the link:\n%s", md)
	}
}

func TestRenderMarkdown_NoTTY(t *testing.T) {
	got, err := renderMarkdown("# Projects\n\n- **Snake**\n", false)
	if err != nil {
		t.Fatalf("renderMarkdown error: %v", err)
	}
	if !strings.Contains(got, "Snake") {
		t.Errorf("rendered output missing item:\n%s", got)
	}
}
