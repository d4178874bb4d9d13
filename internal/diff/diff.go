// Package diff compares two catalogs and reports which projects were
// added, removed or changed between builds.
package diff

import (
	"fmt"

	"github.com/modu-ai/folio/pkg/models"
)

// EditOp represents a single edit operation in a diff.
type EditOp int

const (
	// OpEqual means the key is present on both sides.
	OpEqual EditOp = iota
	// OpInsert means the key was added.
	OpInsert
	// OpDelete means the key was removed.
	OpDelete
)

// Edit represents a single keyed edit operation.
type Edit struct {
	Op EditOp
	// Old is the index in the original slice, -1 for inserts.
	Old int
	// New is the index in the modified slice, -1 for deletes.
	New int
}

// Keys computes the edit script between two key sequences using a
// longest-common-subsequence table. Equal entries are included so callers
// can compare the elements behind matching keys.
func Keys(a, b []string) []Edit {
	m, n := len(a), len(b)

	// lcs[i][j] = length of the LCS of a[i:] and b[j:]
	lcs := make([][]int, m+1)
	for i := range lcs {
		lcs[i] = make([]int, n+1)
	}
	for i := m - 1; i >= 0; i-- {
		for j := n - 1; j >= 0; j-- {
			if a[i] == b[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}

	edits := make([]Edit, 0, max(m, n))
	i, j := 0, 0
	for i < m || j < n {
		switch {
		case i < m && j < n && a[i] == b[j]:
			edits = append(edits, Edit{Op: OpEqual, Old: i, New: j})
			i++
			j++
		case j < n && (i == m || lcs[i][j+1] >= lcs[i+1][j]):
			edits = append(edits, Edit{Op: OpInsert, Old: -1, New: j})
			j++
		default:
			edits = append(edits, Edit{Op: OpDelete, Old: i, New: -1})
			i++
		}
	}
	return edits
}

// Summary lists catalog changes by project path.
type Summary struct {
	Added   []string
	Removed []string
	Changed []string
}

// Empty reports whether the catalogs are identical.
func (s Summary) Empty() bool {
	return len(s.Added) == 0 && len(s.Removed) == 0 && len(s.Changed) == 0
}

// Lines renders the summary as "+ path", "- path" and "~ path" lines in
// that order.
func (s Summary) Lines() []string {
	lines := make([]string, 0, len(s.Added)+len(s.Removed)+len(s.Changed))
	for _, p := range s.Added {
		lines = append(lines, "+ "+p)
	}
	for _, p := range s.Removed {
		lines = append(lines, "- "+p)
	}
	for _, p := range s.Changed {
		lines = append(lines, "~ "+p)
	}
	return lines
}

// String implements fmt.Stringer.
func (s Summary) String() string {
	return fmt.Sprintf("%d added, %d removed, %d changed", len(s.Added), len(s.Removed), len(s.Changed))
}

// Catalog compares two ordered record lists keyed by their relative path.
func Catalog(before, after []models.Record) Summary {
	var s Summary
	for _, e := range Keys(paths(before), paths(after)) {
		switch e.Op {
		case OpInsert:
			s.Added = append(s.Added, after[e.New].RelativePath)
		case OpDelete:
			s.Removed = append(s.Removed, before[e.Old].RelativePath)
		case OpEqual:
			if before[e.Old] != after[e.New] {
				s.Changed = append(s.Changed, after[e.New].RelativePath)
			}
		}
	}
	return s
}

func paths(records []models.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.RelativePath
	}
	return out
}
