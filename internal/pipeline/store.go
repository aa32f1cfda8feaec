// ABOUTME: Single-slot store for the most recently completed pipeline result
// ABOUTME: Overwrite-on-success, last-writer-wins, read-only to consumers
package pipeline

import (
	"sync"

	"github.com/vidprep/vidprep/internal/models"
)

// ResultStore holds the single most-recently-completed PipelineResult.
// Each successful run overwrites the slot; failed runs never touch it.
// Concurrent writers race last-writer-wins with no ordering guarantee —
// acceptable for the single-user demo this backs. The mutex only prevents
// torn reads.
type ResultStore struct {
	mu     sync.RWMutex
	latest *models.PipelineResult
}

// NewResultStore returns an empty store.
func NewResultStore() *ResultStore {
	return &ResultStore{}
}

// Set overwrites the slot with a completed result.
func (s *ResultStore) Set(r *models.PipelineResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = r
}

// Latest returns the stored result, or false if no run has completed yet
// in this process's lifetime.
func (s *ResultStore) Latest() (*models.PipelineResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.latest == nil {
		return nil, false
	}
	return s.latest, true
}
