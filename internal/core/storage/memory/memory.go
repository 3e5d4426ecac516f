package memory

import (
	"context"
	"sort"
	"sync"

	v1 "github.com/aevon-lab/faultline/internal/api/v1"
	"github.com/aevon-lab/faultline/internal/core/storage"
)

type filterKey struct {
	tenantID string
	id       string
}

type nameKey struct {
	tenantID string
	name     string
}

// FilterStore is an in-memory implementation of storage.FilterStore.
// Useful for testing and development.
type FilterStore struct {
	mu      sync.RWMutex
	filters map[filterKey]*v1.SavedFilter
	names   map[nameKey]string // name -> id, enforces per-tenant uniqueness
}

// NewFilterStore creates a new in-memory filter store.
func NewFilterStore() *FilterStore {
	return &FilterStore{
		filters: make(map[filterKey]*v1.SavedFilter),
		names:   make(map[nameKey]string),
	}
}

var _ storage.FilterStore = (*FilterStore)(nil)

func (s *FilterStore) SaveFilter(ctx context.Context, f *v1.SavedFilter) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	nk := nameKey{tenantID: f.TenantID, name: f.Name}
	if _, exists := s.names[nk]; exists {
		return storage.ErrDuplicate
	}
	key := filterKey{tenantID: f.TenantID, id: f.ID}
	if _, exists := s.filters[key]; exists {
		return storage.ErrDuplicate
	}

	// Store a copy to prevent external modification
	copy := *f
	s.filters[key] = &copy
	s.names[nk] = f.ID
	return nil
}

func (s *FilterStore) GetFilter(ctx context.Context, tenantID, id string) (*v1.SavedFilter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, exists := s.filters[filterKey{tenantID: tenantID, id: id}]
	if !exists {
		return nil, storage.ErrNotFound
	}

	copy := *f
	return &copy, nil
}

func (s *FilterStore) ListFilters(ctx context.Context, tenantID string, kind v1.FilterKind) ([]*v1.SavedFilter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []*v1.SavedFilter{}
	for key, f := range s.filters {
		if key.tenantID != tenantID {
			continue
		}
		if kind != "" && f.Kind != kind {
			continue
		}
		copy := *f
		result = append(result, &copy)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (s *FilterStore) DeleteFilter(ctx context.Context, tenantID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := filterKey{tenantID: tenantID, id: id}
	f, exists := s.filters[key]
	if !exists {
		return storage.ErrNotFound
	}

	delete(s.names, nameKey{tenantID: tenantID, name: f.Name})
	delete(s.filters, key)
	return nil
}
