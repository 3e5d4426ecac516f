package v1

import (
	"fmt"
	"strings"
	"time"
)

// FilterKind distinguishes where a saved filter is applied.
type FilterKind string

const (
	// KindSearch is a saved search shown in dashboards; it may carry aggregations.
	KindSearch FilterKind = "search"
	// KindWebhook selects the events forwarded to a tenant webhook.
	KindWebhook FilterKind = "webhook"
)

// Valid reports whether k is a known kind.
func (k FilterKind) Valid() bool {
	return k == KindSearch || k == KindWebhook
}

// SavedFilter is a tenant-owned search filter persisted for reuse.
type SavedFilter struct {
	ID       string     `json:"id"`
	TenantID string     `json:"tenant_id"`
	Name     string     `json:"name"`
	Kind     FilterKind `json:"kind"`

	// Query is the filter exactly as the tenant wrote it. Expansion happens
	// per request so policy changes apply to existing filters.
	Query        string `json:"query"`
	Aggregations string `json:"aggregations,omitempty"`

	// UsesPremiumFeatures is the premium flag at the time the filter was saved.
	UsesPremiumFeatures bool `json:"uses_premium_features"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate ensures the filter has all required attributes.
func (f *SavedFilter) Validate() error {
	if f.TenantID == "" {
		return fmt.Errorf("tenant_id is required")
	}

	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("name is required")
	}

	if !f.Kind.Valid() {
		return fmt.Errorf("kind must be %q or %q", KindSearch, KindWebhook)
	}

	if f.Kind == KindWebhook && f.Aggregations != "" {
		return fmt.Errorf("webhook filters cannot carry aggregations")
	}

	return nil
}

// CreateFilterRequest is the body of POST /v1/tenants/:tenant_id/filters.
type CreateFilterRequest struct {
	Name         string     `json:"name"`
	Kind         FilterKind `json:"kind"`
	Query        string     `json:"query"`
	Aggregations string     `json:"aggregations"`
}
