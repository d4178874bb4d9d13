package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/modu-ai/folio/internal/template"
)

func TestRebuild_ReloadsConfig(t *testing.T) {
	root := newSite(t, map[string]string{
		"projects/clock/index.html": "<html></html>",
	})
	d := &Dependencies{}
	if err := d.EnsureSite(SiteOptions{Root: root, Stderr: new(bytes.Buffer)}); err != nil {
		t.Fatalf("EnsureSite error: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	writeTree(t, root, map[string]string{"folio.yaml": "build:\n  layout: flat\n"})
	res, err := rebuild(context.Background(), d)
	if err != nil {
		t.Fatalf("rebuild error: %v", err)
	}
	if len(res.Records) != 1 || res.Records[0].ID != "clock" {
		t.Errorf("flat layout from the edited config should list clock, got %+v", res.Records)
	}
}

func TestRebuild_RetriesWhileTemplateIsMissing(t *testing.T) {
	root := newSite(t, scenario())
	d := &Dependencies{}
	if err := d.EnsureSite(SiteOptions{Root: root, Stderr: new(bytes.Buffer)}); err != nil {
		t.Fatalf("EnsureSite error: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	tmpl := filepath.Join(root, "_template.html")
	if err := os.Remove(tmpl); err != nil {
		t.Fatal(err)
	}
	go func() {
		time.Sleep(50 * time.Millisecond)
		_ = os.WriteFile(tmpl, []byte(testTemplate), 0o644)
	}()

	res, err := rebuild(context.Background(), d)
	if err != nil {
		t.Fatalf("rebuild should succeed once the template is back: %v", err)
	}
	if len(res.Records) != 2 {
		t.Errorf("got %d records, want 2", len(res.Records))
	}
}

func TestRebuild_GivesUpOnFatalErrors(t *testing.T) {
	root := newSite(t, scenario())
	d := &Dependencies{}
	if err := d.EnsureSite(SiteOptions{Root: root, Stderr: new(bytes.Buffer)}); err != nil {
		t.Fatalf("EnsureSite error: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	if err := os.Remove(filepath.Join(root, "_template.html")); err != nil {
		t.Fatal(err)
	}
	_, err := rebuild(context.Background(), d)
	if !errors.Is(err, template.ErrTemplateRead) {
		t.Fatalf("error = %v, want ErrTemplateRead", err)
	}
}
