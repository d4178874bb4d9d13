package catalog

import (
	"errors"
	"testing"
)

func TestParseDescriptor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		file    string
		data    string
		want    Descriptor
		wantErr bool
	}{
		{
			name: "json full",
			file: "meta.json",
			data: `{"title":"Clock Widget","note":"ticks","mainFile":"app.html"}`,
			want: Descriptor{Title: "Clock Widget", Note: "ticks", MainFile: "app.html"},
		},
		{
			name: "json partial with unknown keys",
			file: "meta.json",
			data: `{"title":"Only Title","tags":["x"]}`,
			want: Descriptor{Title: "Only Title"},
		},
		{
			name: "json with BOM",
			file: "meta.json",
			data: "\xef\xbb\xbf{\"note\":\"n\"}",
			want: Descriptor{Note: "n"},
		},
		{
			name: "yaml",
			file: "meta.yaml",
			data: "title: Snake\nmainFile: play.html\n",
			want: Descriptor{Title: "Snake", MainFile: "play.html"},
		},
		{
			name: "trims whitespace",
			file: "meta.yml",
			data: "title: '  Spaced  '\n",
			want: Descriptor{Title: "Spaced"},
		},
		{name: "json syntax error", file: "meta.json", data: `{"title":`, wantErr: true},
		{name: "json array", file: "meta.json", data: `["title"]`, wantErr: true},
		{name: "json empty", file: "meta.json", data: "", wantErr: true},
		{name: "json wrong type", file: "meta.json", data: `{"title":42}`, wantErr: true},
		{name: "yaml scalar", file: "meta.yaml", data: "just text\n", wantErr: true},
		{name: "yaml syntax error", file: "meta.yaml", data: "title: [unclosed\n", wantErr: true},
		{name: "yaml empty", file: "meta.yml", data: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseDescriptor(tt.file, []byte(tt.data))
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedDescriptor) {
					t.Fatalf("expected ErrMalformedDescriptor, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDescriptor() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseDescriptor() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLoadDescriptor(t *testing.T) {
	t.Parallel()

	names := []string{"meta.json", "meta.yaml", "meta.yml"}

	t.Run("absent", func(t *testing.T) {
		t.Parallel()
		res := LoadDescriptor(t.TempDir(), names)
		if res.Status != DescriptorAbsent {
			t.Errorf("Status = %v, want absent", res.Status)
		}
	})

	t.Run("first existing wins", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeFiles(t, dir, map[string]string{
			"meta.json": `{"title":"From JSON"}`,
			"meta.yaml": "title: From YAML\n",
		})
		res := LoadDescriptor(dir, names)
		if res.Status != DescriptorParsed || res.Descriptor.Title != "From JSON" {
			t.Errorf("got %v %+v", res.Status, res.Descriptor)
		}
	})

	t.Run("yaml fallback", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeFiles(t, dir, map[string]string{"meta.yml": "note: hi\n"})
		res := LoadDescriptor(dir, names)
		if res.Status != DescriptorParsed || res.Descriptor.Note != "hi" {
			t.Errorf("got %v %+v", res.Status, res.Descriptor)
		}
	})

	t.Run("malformed does not fall through", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeFiles(t, dir, map[string]string{
			"meta.json": `{broken`,
			"meta.yaml": "title: Fine\n",
		})
		res := LoadDescriptor(dir, names)
		if res.Status != DescriptorMalformed {
			t.Fatalf("Status = %v, want malformed", res.Status)
		}
		if !errors.Is(res.Err, ErrMalformedDescriptor) {
			t.Errorf("Err = %v", res.Err)
		}
	})

	t.Run("directory named like descriptor is ignored", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		mkdirs(t, dir, "meta.json")
		res := LoadDescriptor(dir, names)
		if res.Status != DescriptorAbsent {
			t.Errorf("Status = %v, want absent", res.Status)
		}
	})
}

func TestDescriptorStatusString(t *testing.T) {
	t.Parallel()

	if DescriptorMalformed.String() != "malformed" || DescriptorAbsent.String() != "absent" {
		t.Error("unexpected status labels")
	}
}
