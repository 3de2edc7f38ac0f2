// Package session holds the current file selection: an explicit optional
// single-value slot rather than a list, since at most one ingested file
// exists at a time.
package session

import (
	"sync"

	"docquery/internal/models"
)

// Store is the single-slot holder for the current IngestedFile. Setting a new
// file replaces the previous one. Safe for concurrent use; never persisted.
type Store struct {
	mu      sync.RWMutex
	current *models.IngestedFile
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{}
}

// Set replaces the current file with f.
func (s *Store) Set(f *models.IngestedFile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = f
}

// Current returns the held file, or nil when the slot is empty.
func (s *Store) Current() *models.IngestedFile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Clear empties the slot.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}
