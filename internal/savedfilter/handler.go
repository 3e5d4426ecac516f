package savedfilter

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/aevon-lab/faultline/internal/api/v1"
	httperr "github.com/aevon-lab/faultline/internal/core/errors"
)

// CreateHandler handles POST /v1/tenants/:tenant_id/filters.
func (s *Service) CreateHandler(c *gin.Context) {
	var req v1.CreateFilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("Invalid JSON body received", "error", err)
		writeError(c, &filterError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidJsonError,
			message:    msgInvalidJSON,
		})
		return
	}

	f, ferr := s.create(c.Request.Context(), c.Param("tenant_id"), req)
	if ferr != nil {
		writeError(c, ferr)
		return
	}

	c.JSON(http.StatusCreated, f)
}

// ListHandler handles GET /v1/tenants/:tenant_id/filters[?kind=].
func (s *Service) ListHandler(c *gin.Context) {
	filters, ferr := s.list(c.Request.Context(), c.Param("tenant_id"), v1.FilterKind(c.Query("kind")))
	if ferr != nil {
		writeError(c, ferr)
		return
	}

	c.JSON(http.StatusOK, filters)
}

// GetHandler handles GET /v1/tenants/:tenant_id/filters/:id.
func (s *Service) GetHandler(c *gin.Context) {
	f, ferr := s.get(c.Request.Context(), c.Param("tenant_id"), c.Param("id"))
	if ferr != nil {
		writeError(c, ferr)
		return
	}

	c.JSON(http.StatusOK, f)
}

// DeleteHandler handles DELETE /v1/tenants/:tenant_id/filters/:id.
func (s *Service) DeleteHandler(c *gin.Context) {
	if ferr := s.delete(c.Request.Context(), c.Param("tenant_id"), c.Param("id")); ferr != nil {
		writeError(c, ferr)
		return
	}

	c.Status(http.StatusNoContent)
}

// PlanHandler handles GET /v1/tenants/:tenant_id/filters/:id/plan.
func (s *Service) PlanHandler(c *gin.Context) {
	plan, ferr := s.plan(c.Request.Context(), c.Param("tenant_id"), c.Param("id"))
	if ferr != nil {
		writeError(c, ferr)
		return
	}

	c.JSON(http.StatusOK, plan)
}

// writeError serializes a filterError as the JSON HTTP response.
func writeError(c *gin.Context, err *filterError) {
	c.JSON(err.statusCode, httperr.ErrorResponse{
		ErrorType: err.errorType,
		Message:   err.message,
		Details:   err.details,
	})
}
