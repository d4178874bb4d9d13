package server

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/modu-ai/folio/internal/catalog"
	"github.com/modu-ai/folio/pkg/models"
)

// CategorySummary is one entry of the categories endpoint.
type CategorySummary struct {
	Name  string `json:"name"`
	Glyph string `json:"glyph"`
	Count int    `json:"count"`
}

// ProjectService holds the record list of the most recent build. Reads and
// replacements may happen from different goroutines.
type ProjectService struct {
	mu         sync.RWMutex
	classifier *catalog.Classifier
	records    []models.Record
	builtAt    time.Time
}

// NewProjectService creates an empty ProjectService.
func NewProjectService(classifier *catalog.Classifier) *ProjectService {
	return &ProjectService{classifier: classifier}
}

// Replace swaps in the records of a new build together with the taxonomy
// they were classified with. A nil classifier keeps the current one.
func (s *ProjectService) Replace(records []models.Record, classifier *catalog.Classifier) {
	cp := slices.Clone(records)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = cp
	if classifier != nil {
		s.classifier = classifier
	}
	s.builtAt = time.Now()
}

// BuiltAt returns when the current records were loaded.
func (s *ProjectService) BuiltAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.builtAt
}

// GetAll returns all records in build order, optionally restricted to one
// category. The result is never nil.
func (s *ProjectService) GetAll(category string) []models.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Record, 0, len(s.records))
	for _, r := range s.records {
		if category == "" || r.Category == category {
			out = append(out, r)
		}
	}
	return out
}

// GetByID returns the first record whose id matches.
func (s *ProjectService) GetByID(id string) (models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.records {
		if r.ID == id {
			return r, nil
		}
	}
	return models.Record{}, fmt.Errorf("%w: %s", ErrProjectNotFound, id)
}

// Categories lists every configured category with its record count, in
// configuration order.
func (s *ProjectService) Categories() []CategorySummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.classifier == nil {
		return []CategorySummary{}
	}
	counts := make(map[string]int)
	for _, r := range s.records {
		counts[r.Category]++
	}
	names := s.classifier.Categories()
	out := make([]CategorySummary, len(names))
	for i, name := range names {
		out[i] = CategorySummary{Name: name, Glyph: s.classifier.Glyph(name), Count: counts[name]}
	}
	return out
}
