package storage

import (
	"context"
	"errors"

	v1 "github.com/aevon-lab/faultline/internal/api/v1"
)

// ErrDuplicate is returned when a filter with the same (tenant_id, name) already exists.
var ErrDuplicate = errors.New("filter already exists")

// ErrNotFound is returned when no filter matches (tenant_id, id).
var ErrNotFound = errors.New("filter not found")

// FilterStore persists tenant saved filters. Every lookup is tenant-scoped:
// a filter is never visible to another tenant even when its ID is known.
type FilterStore interface {
	// SaveFilter inserts a new filter. Returns ErrDuplicate when the tenant
	// already has a filter with the same name.
	SaveFilter(ctx context.Context, filter *v1.SavedFilter) error

	// GetFilter returns ErrNotFound when the filter does not exist for the tenant.
	GetFilter(ctx context.Context, tenantID, id string) (*v1.SavedFilter, error)

	// ListFilters returns the tenant's filters ordered by name. An empty kind lists all kinds.
	ListFilters(ctx context.Context, tenantID string, kind v1.FilterKind) ([]*v1.SavedFilter, error)

	// DeleteFilter returns ErrNotFound when nothing was deleted.
	DeleteFilter(ctx context.Context, tenantID, id string) error
}
