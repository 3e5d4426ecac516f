package search

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/aevon-lab/faultline/internal/api/v1"
	httperr "github.com/aevon-lab/faultline/internal/core/errors"
)

const msgInvalidJSON = "Invalid JSON body"

// PlanSource names the half of a plan that was rejected.
type PlanSource int

const (
	SourceQuery PlanSource = iota
	SourceAggregation
)

// PlanError carries the engine message of a rejected plan.
type PlanError struct {
	Source  PlanSource
	Message string
}

func (e *PlanError) Error() string {
	return e.Message
}

// ErrorType is the API error type for the rejected half.
func (e *PlanError) ErrorType() string {
	if e.Source == SourceAggregation {
		return httperr.HttpInvalidAggregationError
	}
	return httperr.HttpInvalidQueryError
}

// PlanHandler handles POST /v1/search/plan.
func (s *Service) PlanHandler(c *gin.Context) {
	var req v1.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("Invalid JSON body received", "error", err)
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidJsonError,
			Message:   msgInvalidJSON,
		})
		return
	}

	plan, perr := s.Plan(req)
	if perr != nil {
		slog.Info("Search plan rejected", "error_type", perr.ErrorType(), "reason", perr.Message)
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: perr.ErrorType(),
			Message:   perr.Message,
		})
		return
	}

	c.JSON(http.StatusOK, plan)
}

// ValidateQueryHandler handles GET /v1/search/validate?query=.
// Rejected filters are reported in the body, not as an HTTP error.
func (s *Service) ValidateQueryHandler(c *gin.Context) {
	res := s.ValidateQuery(c.Query("query"))
	c.JSON(http.StatusOK, v1.ValidationResponse{
		IsValid:             !res.Failed(),
		Message:             res.Message,
		UsesPremiumFeatures: res.UsesPremiumFeatures,
	})
}

// ValidateAggregationsHandler handles POST /v1/aggregations/validate.
func (s *Service) ValidateAggregationsHandler(c *gin.Context) {
	var req v1.AggregationValidationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("Invalid JSON body received", "error", err)
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidJsonError,
			Message:   msgInvalidJSON,
		})
		return
	}

	res := s.CompileAggregations(req.Aggregations, true)
	c.JSON(http.StatusOK, v1.ValidationResponse{
		IsValid:             !res.Failed(),
		Message:             res.Message,
		UsesPremiumFeatures: res.UsesPremiumFeatures,
	})
}
