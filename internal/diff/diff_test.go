package diff

import (
	"slices"
	"testing"

	"github.com/modu-ai/folio/pkg/models"
)

func TestKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		a, b    []string
		inserts []string
		deletes []string
	}{
		{"identical", []string{"a", "b"}, []string{"a", "b"}, nil, nil},
		{"both empty", nil, nil, nil, nil},
		{"all added", nil, []string{"a", "b"}, []string{"a", "b"}, nil},
		{"all removed", []string{"a", "b"}, nil, nil, []string{"a", "b"}},
		{"middle insert", []string{"a", "c"}, []string{"a", "b", "c"}, []string{"b"}, nil},
		{"middle delete", []string{"a", "b", "c"}, []string{"a", "c"}, nil, []string{"b"}},
		{"replace", []string{"a", "b", "c"}, []string{"a", "x", "c"}, []string{"x"}, []string{"b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var inserts, deletes []string
			equal := 0
			for _, e := range Keys(tt.a, tt.b) {
				switch e.Op {
				case OpInsert:
					inserts = append(inserts, tt.b[e.New])
				case OpDelete:
					deletes = append(deletes, tt.a[e.Old])
				case OpEqual:
					if tt.a[e.Old] != tt.b[e.New] {
						t.Errorf("equal edit pairs %q with %q", tt.a[e.Old], tt.b[e.New])
					}
					equal++
				}
			}
			if !slices.Equal(inserts, tt.inserts) {
				t.Errorf("inserts = %v, want %v", inserts, tt.inserts)
			}
			if !slices.Equal(deletes, tt.deletes) {
				t.Errorf("deletes = %v, want %v", deletes, tt.deletes)
			}
			if want := len(tt.b) - len(tt.inserts); equal != want {
				t.Errorf("equal edits = %d, want %d", equal, want)
			}
		})
	}
}

func rec(path, title string) models.Record {
	return models.Record{RelativePath: path, Title: title}
}

func TestCatalog(t *testing.T) {
	t.Parallel()

	before := []models.Record{
		rec("projects/demo/clock", "Clock"),
		rec("projects/game/asteroids", "asteroids"),
		rec("projects/game/pong", "pong"),
	}
	after := []models.Record{
		rec("projects/demo/clock", "Clock Widget"),
		rec("projects/game/asteroids", "asteroids"),
		rec("projects/game/snake", "snake"),
	}

	s := Catalog(before, after)
	if !slices.Equal(s.Added, []string{"projects/game/snake"}) {
		t.Errorf("Added = %v", s.Added)
	}
	if !slices.Equal(s.Removed, []string{"projects/game/pong"}) {
		t.Errorf("Removed = %v", s.Removed)
	}
	if !slices.Equal(s.Changed, []string{"projects/demo/clock"}) {
		t.Errorf("Changed = %v", s.Changed)
	}
	if s.Empty() {
		t.Error("Empty() = true, want false")
	}
	want := []string{"+ projects/game/snake", "- projects/game/pong", "~ projects/demo/clock"}
	if !slices.Equal(s.Lines(), want) {
		t.Errorf("Lines() = %v, want %v", s.Lines(), want)
	}
	if s.String() != "1 added, 1 removed, 1 changed" {
		t.Errorf("String() = %q", s.String())
	}
}

func TestCatalog_Identical(t *testing.T) {
	t.Parallel()

	records := []models.Record{rec("projects/demo/clock", "Clock")}
	if s := Catalog(records, slices.Clone(records)); !s.Empty() {
		t.Errorf("identical catalogs reported %v", s)
	}
}
