// Package memstore provides an in-memory implementation of triage.Store.
package memstore

import (
	"context"
	"sync"

	"github.com/linnemanlabs/quicktriage/internal/triage"
)

// Store holds triage reports in memory. Suitable for dev/testing.
type Store struct {
	mu      sync.RWMutex
	reports map[string]*triage.Report
	order   []string // insertion order of new IDs, oldest first
}

// New initializes a new in-memory Store.
func New() *Store {
	return &Store{
		reports: make(map[string]*triage.Report),
	}
}

// Get retrieves a report by its ID. Returns a copy.
func (s *Store) Get(_ context.Context, id string) (*triage.Report, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reports[id]
	if !ok {
		return nil, false, nil
	}
	return copyReport(r), true, nil
}

// Put stores a copy of the report. Re-putting an existing ID overwrites
// in place without changing its position in the recency order.
func (s *Store) Put(_ context.Context, r *triage.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.reports[r.ID]; !exists {
		s.order = append(s.order, r.ID)
	}
	s.reports[r.ID] = copyReport(r)
	return nil
}

// Recent returns up to limit reports, newest first.
func (s *Store) Recent(_ context.Context, limit int) ([]*triage.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		return nil, nil
	}

	out := make([]*triage.Report, 0, min(limit, len(s.order)))
	for i := len(s.order) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, copyReport(s.reports[s.order[i]]))
	}
	return out, nil
}

func copyReport(r *triage.Report) *triage.Report {
	cp := *r
	if r.Results != nil {
		cp.Results = make([]triage.Condition, len(r.Results))
		copy(cp.Results, r.Results)
	}
	return &cp
}
