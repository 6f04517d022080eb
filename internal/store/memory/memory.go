// Package memory is an in-process analysis store.
package memory

import (
	"context"
	"sync"

	"github.com/spigell/career-advisor/internal/analysis"
)

// Store keeps results in a map. When MaxEntries is positive the oldest entries
// are evicted first once the limit is reached.
type Store struct {
	mu         sync.RWMutex
	results    map[string]*analysis.Result
	order      []string
	maxEntries int
}

// New creates a store. maxEntries <= 0 disables eviction.
func New(maxEntries int) *Store {
	return &Store{
		results:    make(map[string]*analysis.Result),
		maxEntries: maxEntries,
	}
}

func (s *Store) Put(_ context.Context, id string, result *analysis.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.results[id]; !exists {
		s.order = append(s.order, id)
	}
	s.results[id] = result

	for s.maxEntries > 0 && len(s.order) > s.maxEntries {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.results, oldest)
	}

	return nil
}

func (s *Store) Get(_ context.Context, id string) (*analysis.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result, ok := s.results[id]
	if !ok {
		return nil, analysis.ErrNotFound
	}
	return result, nil
}

// Len returns the number of stored results.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.results)
}
