package memory

import (
	"context"
	"sync"

	"github.com/aretw0/tracetm/pkg/domain"
)

// Store implements ports.ReportStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.TraceRecord
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.TraceRecord),
	}
}

// Save keeps a copy of the record.
func (s *Store) Save(ctx context.Context, record *domain.TraceRecord) error {
	copied := copyRecord(record)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[record.ID] = copied
	return nil
}

// Load retrieves a copy of the record.
func (s *Store) Load(ctx context.Context, id string) (*domain.TraceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.data[id]
	if !ok {
		return nil, domain.ErrReportNotFound
	}
	return copyRecord(record), nil
}

// Delete removes the record.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns stored record IDs.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	return ids, nil
}

// copyRecord isolates slices so callers cannot mutate stored reports.
func copyRecord(r *domain.TraceRecord) *domain.TraceRecord {
	c := *r
	c.Report.Levels = append([]domain.LevelStats(nil), r.Report.Levels...)
	if r.Report.Path != nil {
		c.Report.Path = make([]domain.Configuration, len(r.Report.Path))
		for i, cfg := range r.Report.Path {
			c.Report.Path[i] = domain.Configuration{
				State: cfg.State,
				Left:  append([]string{}, cfg.Left...),
				Head:  cfg.Head,
				Right: append([]string{}, cfg.Right...),
			}
		}
	}
	return &c
}
