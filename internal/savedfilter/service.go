// Package savedfilter manages tenant saved searches and webhook filters.
// Filters are checked by the search planner before they are stored and
// re-planned on every use.
package savedfilter

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	v1 "github.com/aevon-lab/faultline/internal/api/v1"
	httperr "github.com/aevon-lab/faultline/internal/core/errors"
	"github.com/aevon-lab/faultline/internal/core/storage"
	"github.com/aevon-lab/faultline/internal/search"
)

const (
	msgInvalidJSON     = "Invalid JSON body"
	msgDuplicateFilter = "A filter with this name already exists"
	msgFilterNotFound  = "Filter not found"
	msgPersistFailed   = "Failed to persist filter"
	msgLoadFailed      = "Failed to load filters"
)

type Service struct {
	store   storage.FilterStore
	planner *search.Service
	now     func() time.Time
}

func NewService(store storage.FilterStore, planner *search.Service) *Service {
	if store == nil {
		panic("savedfilter: store must not be nil")
	}
	if planner == nil {
		panic("savedfilter: planner must not be nil")
	}
	return &Service{
		store:   store,
		planner: planner,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// RegisterRoutes registers the saved filter routes.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	g := r.Group("/v1/tenants/:tenant_id/filters")
	g.POST("", s.CreateHandler)
	g.GET("", s.ListHandler)
	g.GET("/:id", s.GetHandler)
	g.DELETE("/:id", s.DeleteHandler)
	g.GET("/:id/plan", s.PlanHandler)
}

// filterError carries the HTTP error shape from the service back to the handlers.
type filterError struct {
	statusCode int
	errorType  string
	message    string
	details    interface{}
}

func (e *filterError) Error() string {
	return e.message
}

// create checks req against the tenant policy and stores it as a new filter.
func (s *Service) create(ctx context.Context, tenantID string, req v1.CreateFilterRequest) (*v1.SavedFilter, *filterError) {
	now := s.now()
	f := &v1.SavedFilter{
		ID:           uuid.NewString(),
		TenantID:     tenantID,
		Name:         req.Name,
		Kind:         req.Kind,
		Query:        req.Query,
		Aggregations: req.Aggregations,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := f.Validate(); err != nil {
		return nil, &filterError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidFilterError,
			message:    err.Error(),
		}
	}

	q := s.planner.ValidateQuery(f.Query)
	if q.Failed() {
		slog.Info("Saved filter query rejected", "tenant_id", tenantID, "name", f.Name, "reason", q.Message)
		return nil, &filterError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidQueryError,
			message:    q.Message,
		}
	}
	f.UsesPremiumFeatures = q.UsesPremiumFeatures

	if f.Aggregations != "" {
		a := s.planner.CompileAggregations(f.Aggregations, true)
		if a.Failed() {
			slog.Info("Saved filter aggregations rejected", "tenant_id", tenantID, "name", f.Name, "reason", a.Message)
			return nil, &filterError{
				statusCode: http.StatusBadRequest,
				errorType:  httperr.HttpInvalidAggregationError,
				message:    a.Message,
			}
		}
		f.UsesPremiumFeatures = f.UsesPremiumFeatures || a.UsesPremiumFeatures
	}

	if err := s.store.SaveFilter(ctx, f); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			slog.Info("Duplicate filter rejected", "tenant_id", tenantID, "name", f.Name)
			return nil, &filterError{
				statusCode: http.StatusConflict,
				errorType:  httperr.HttpDuplicateFilterError,
				message:    msgDuplicateFilter,
				details:    map[string]interface{}{"name": f.Name},
			}
		}

		slog.Error("Failed to persist filter", "error", err, "tenant_id", tenantID, "filter_id", f.ID)
		return nil, &filterError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgPersistFailed,
		}
	}

	slog.Info("Saved filter created",
		"tenant_id", tenantID,
		"filter_id", f.ID,
		"kind", f.Kind,
		"uses_premium_features", f.UsesPremiumFeatures)
	return f, nil
}

// get returns one of the tenant's filters.
func (s *Service) get(ctx context.Context, tenantID, id string) (*v1.SavedFilter, *filterError) {
	f, err := s.store.GetFilter(ctx, tenantID, id)
	if err != nil {
		return nil, lookupError(err, tenantID, id)
	}
	return f, nil
}

// list returns the tenant's filters of the given kind, or all kinds when kind is empty.
func (s *Service) list(ctx context.Context, tenantID string, kind v1.FilterKind) ([]*v1.SavedFilter, *filterError) {
	if kind != "" && !kind.Valid() {
		return nil, &filterError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidFilterError,
			message:    "unknown filter kind",
			details:    map[string]interface{}{"kind": kind},
		}
	}

	filters, err := s.store.ListFilters(ctx, tenantID, kind)
	if err != nil {
		slog.Error("Failed to list filters", "error", err, "tenant_id", tenantID)
		return nil, &filterError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgLoadFailed,
		}
	}
	return filters, nil
}

// delete removes one of the tenant's filters.
func (s *Service) delete(ctx context.Context, tenantID, id string) *filterError {
	if err := s.store.DeleteFilter(ctx, tenantID, id); err != nil {
		return lookupError(err, tenantID, id)
	}
	slog.Info("Saved filter deleted", "tenant_id", tenantID, "filter_id", id)
	return nil
}

// plan expands a stored filter with the current policy.
func (s *Service) plan(ctx context.Context, tenantID, id string) (*v1.PlanResponse, *filterError) {
	f, ferr := s.get(ctx, tenantID, id)
	if ferr != nil {
		return nil, ferr
	}

	plan, perr := s.planner.Plan(v1.PlanRequest{Query: f.Query, Aggregations: f.Aggregations})
	if perr != nil {
		// The policy tightened since the filter was saved.
		slog.Warn("Stored filter no longer passes policy", "tenant_id", tenantID, "filter_id", id, "reason", perr.Message)
		return nil, &filterError{
			statusCode: http.StatusUnprocessableEntity,
			errorType:  httperr.HttpInvalidFilterError,
			message:    perr.Message,
			details:    map[string]interface{}{"rejected_by": perr.ErrorType()},
		}
	}
	return plan, nil
}

func lookupError(err error, tenantID, id string) *filterError {
	if errors.Is(err, storage.ErrNotFound) {
		return &filterError{
			statusCode: http.StatusNotFound,
			errorType:  httperr.HttpNotFoundError,
			message:    msgFilterNotFound,
		}
	}
	slog.Error("Filter lookup failed", "error", err, "tenant_id", tenantID, "filter_id", id)
	return &filterError{
		statusCode: http.StatusInternalServerError,
		errorType:  httperr.HttpInternalError,
		message:    msgLoadFailed,
	}
}
