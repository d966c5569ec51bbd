package history

import (
	"sync"

	"github.com/Aravinsamy/ai-fake-image-video-detector/internal/domain/analysis"
)

// Capacity: the dashboard keeps only the most recent analyses.
const Capacity = 5

// Store is the bounded, newest-first collection of past analysis results.
// Index 0 is always the most recent entry. Completions can land in quick
// succession (overlapping submissions), so mutations take a mutex even
// though the UI itself is single-writer.
type Store struct {
	mu      sync.Mutex
	entries []*analysis.Result
}

func New() *Store {
	return &Store{}
}

// InsertFront prepends a result; when the store grows past Capacity the
// oldest entry is evicted.
func (s *Store) InsertFront(r *analysis.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append([]*analysis.Result{r}, s.entries...)
	if len(s.entries) > Capacity {
		s.entries = s.entries[:Capacity]
	}
}

// RemoveAt drops the entry at position i; later entries shift up by one.
// Out-of-range indices are a silent no-op so a stale render never fails.
func (s *Store) RemoveAt(i int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= len(s.entries) {
		return
	}
	s.entries = append(s.entries[:i], s.entries[i+1:]...)
}

// Clear empties the store (logout).
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
}

// List returns the current ordered sequence, newest first. Consumers
// re-render from scratch rather than hold the slice across mutations.
func (s *Store) List() []*analysis.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*analysis.Result, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *Store) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
