// Package search plans index requests: it runs search filters through the
// field rewriter and aggregation requests through the compiler, and serves
// both over HTTP.
package search

import (
	"fmt"

	"github.com/gin-gonic/gin"

	v1 "github.com/aevon-lab/faultline/internal/api/v1"
	"github.com/aevon-lab/faultline/internal/core/aggregation"
	"github.com/aevon-lab/faultline/internal/core/filter"
	"github.com/aevon-lab/faultline/internal/core/policy"
	"github.com/aevon-lab/faultline/internal/telemetry"
)

type Service struct {
	processor *filter.Processor
	compiler  *aggregation.Compiler
	metrics   *telemetry.Metrics

	processed    *resultCache[filter.Result]
	validated    *resultCache[filter.Result]
	aggregations *resultCache[aggregation.Result]
}

// NewService builds the engines from p. cacheSize <= 0 disables result
// caching. metrics may be nil.
func NewService(p policy.Policy, cacheSize int, metrics *telemetry.Metrics) (*Service, error) {
	processed, err := newResultCache[filter.Result](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create query cache: %w", err)
	}
	validated, err := newResultCache[filter.Result](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create validation cache: %w", err)
	}
	aggregations, err := newResultCache[aggregation.Result](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create aggregation cache: %w", err)
	}

	return &Service{
		processor:    filter.NewProcessor(p.Query),
		compiler:     aggregation.NewCompiler(p.Aggregation),
		metrics:      metrics,
		processed:    processed,
		validated:    validated,
		aggregations: aggregations,
	}, nil
}

// RegisterRoutes registers the search planning routes.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.POST("/v1/search/plan", s.PlanHandler)
	r.GET("/v1/search/validate", s.ValidateQueryHandler)
	r.POST("/v1/aggregations/validate", s.ValidateAggregationsHandler)
}

// ProcessQuery rewrites a search filter for the index.
func (s *Service) ProcessQuery(query string) filter.Result {
	res, hit := s.processed.getOrCompute(query, func() filter.Result {
		return s.processor.Process(query)
	})
	s.metrics.ObserveCache(hit)
	s.metrics.ObserveQuery(!res.Failed(), res.UsesPremiumFeatures, res.UsesDynamicFields)
	return res
}

// ValidateQuery checks a search filter without producing the expanded form.
func (s *Service) ValidateQuery(query string) filter.Result {
	res, hit := s.validated.getOrCompute(query, func() filter.Result {
		return s.processor.Validate(query)
	})
	s.metrics.ObserveCache(hit)
	s.metrics.ObserveQuery(!res.Failed(), res.UsesPremiumFeatures, res.UsesDynamicFields)
	return res
}

// CompileAggregations compiles an aggregation request. The returned
// definitions are shared with the cache and must not be modified.
func (s *Service) CompileAggregations(spec string, applyPolicy bool) aggregation.Result {
	key := fmt.Sprintf("%t:%s", applyPolicy, spec)
	res, hit := s.aggregations.getOrCompute(key, func() aggregation.Result {
		return s.compiler.Compile(spec, applyPolicy)
	})
	s.metrics.ObserveCache(hit)
	s.metrics.ObserveAggregation(!res.Failed(), res.UsesPremiumFeatures, res.Message)
	return res
}

// Plan combines the query and aggregation results into one index request.
// The query is checked first; the first failure is returned.
func (s *Service) Plan(req v1.PlanRequest) (*v1.PlanResponse, *PlanError) {
	q := s.ProcessQuery(req.Query)
	if q.Failed() {
		return nil, &PlanError{Source: SourceQuery, Message: q.Message}
	}

	a := s.CompileAggregations(req.Aggregations, true)
	if a.Failed() {
		return nil, &PlanError{Source: SourceAggregation, Message: a.Message}
	}

	aggs := make([]v1.Aggregation, len(a.Aggregations))
	for i, d := range a.Aggregations {
		aggs[i] = toAggregation(d)
	}

	return &v1.PlanResponse{
		ExpandedQuery:       q.ExpandedQuery,
		Aggregations:        aggs,
		UsesPremiumFeatures: q.UsesPremiumFeatures || a.UsesPremiumFeatures,
		UsesDynamicFields:   q.UsesDynamicFields,
	}, nil
}

func toAggregation(d aggregation.Definition) v1.Aggregation {
	return v1.Aggregation{
		Type:               string(d.Type),
		Field:              d.Field,
		Key:                d.Key(),
		DefaultValue:       d.DefaultValue,
		DefaultValueScript: d.DefaultValueScript(),
		SortOrder:          d.SortOrder,
		Include:            d.IncludePattern,
		Exclude:            d.ExcludePattern,
	}
}
