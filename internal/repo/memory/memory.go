package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/hamed0406/oncallsla/internal/domain"
)

type Store struct {
	mu      sync.RWMutex
	records []domain.Indicator
}

func New() *Store {
	return &Store{records: make([]domain.Indicator, 0, 128)}
}

// Bootstrap is a no-op; there is no schema to create.
func (m *Store) Bootstrap(ctx context.Context) error { return nil }

func (m *Store) Record(ctx context.Context, ind *domain.Indicator) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, *ind)
	return nil
}

// Records returns a copy of everything recorded so far, oldest first.
func (m *Store) Records() []domain.Indicator {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Indicator, len(m.records))
	copy(out, m.records)
	return out
}

func (m *Store) Summary(ctx context.Context, from, to time.Time) ([]domain.IndicatorSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	byName := map[string]*domain.IndicatorSummary{}
	for _, r := range m.records {
		if r.Datetime.Before(from) || !r.Datetime.Before(to) {
			continue
		}
		s := byName[r.Name]
		if s == nil {
			s = &domain.IndicatorSummary{Name: r.Name}
			byName[r.Name] = s
		}
		s.Total++
		if r.IsBad {
			s.Bad++
		}
	}

	out := make([]domain.IndicatorSummary, 0, len(byName))
	for _, s := range byName {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *Store) Close() error { return nil }
