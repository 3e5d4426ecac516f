package search

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	v1 "github.com/aevon-lab/faultline/internal/api/v1"
	"github.com/aevon-lab/faultline/internal/core/aggregation"
	httperr "github.com/aevon-lab/faultline/internal/core/errors"
	"github.com/aevon-lab/faultline/internal/core/policy"
	"github.com/aevon-lab/faultline/internal/telemetry"
)

func newTestRouter(t *testing.T) (*gin.Engine, *Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc, err := NewService(policy.Default(), 64, nil)
	require.NoError(t, err)

	r := gin.New()
	svc.RegisterRoutes(r)
	return r, svc
}

func postJSON(t *testing.T, r http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var payload []byte
	switch b := body.(type) {
	case string:
		payload = []byte(b)
	default:
		var err error
		payload, err = json.Marshal(b)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestPlanHandler_Success(t *testing.T) {
	r, _ := newTestRouter(t)

	resp := postJSON(t, r, "/v1/search/plan", v1.PlanRequest{
		Query:        "hidden:false AND data.retries:5",
		Aggregations: "avg:value:0,term:is_first_occurrence:-f",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	var plan v1.PlanResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &plan))
	require.Equal(t, "hidden:false AND idx.retries-n:5", plan.ExpandedQuery)
	require.True(t, plan.UsesDynamicFields)
	require.True(t, plan.UsesPremiumFeatures)
	require.Len(t, plan.Aggregations, 2)

	avg := plan.Aggregations[0]
	require.Equal(t, "avg", avg.Type)
	require.Equal(t, "avg_value", avg.Key)
	require.NotNil(t, avg.DefaultValue)
	require.Equal(t, 0, *avg.DefaultValue)
	require.Equal(t, "doc['value'].empty ? 0 : doc['value'].value", avg.DefaultValueScript)

	term := plan.Aggregations[1]
	require.Equal(t, "term_is_first_occurrence", term.Key)
	require.Equal(t, "f", term.Exclude)
	require.Empty(t, term.Include)
}

func TestPlanHandler_FreeQueryUnchanged(t *testing.T) {
	r, _ := newTestRouter(t)

	resp := postJSON(t, r, "/v1/search/plan", v1.PlanRequest{Query: "type:error   stack:abc"})
	require.Equal(t, http.StatusOK, resp.Code)

	var plan v1.PlanResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &plan))
	require.Equal(t, "type:error   stack:abc", plan.ExpandedQuery)
	require.False(t, plan.UsesPremiumFeatures)
	require.False(t, plan.UsesDynamicFields)
	require.Empty(t, plan.Aggregations)
}

func TestPlanHandler_Rejections(t *testing.T) {
	tests := []struct {
		name      string
		req       v1.PlanRequest
		errorType string
		message   string
	}{
		{
			name:      "query syntax",
			req:       v1.PlanRequest{Query: "(type:error", Aggregations: "avg:value"},
			errorType: httperr.HttpInvalidQueryError,
		},
		{
			name:      "duplicate aggregation",
			req:       v1.PlanRequest{Query: "type:error", Aggregations: "avg:value,avg:value"},
			errorType: httperr.HttpInvalidAggregationError,
			message:   aggregation.MsgDuplicate,
		},
		{
			name:      "disallowed field",
			req:       v1.PlanRequest{Aggregations: "avg:data.duration"},
			errorType: httperr.HttpInvalidAggregationError,
			message:   aggregation.MsgDisallowedField,
		},
		{
			name:      "malformed aggregation",
			req:       v1.PlanRequest{Aggregations: "avg"},
			errorType: httperr.HttpInvalidAggregationError,
			message:   "Invalid aggregation: avg",
		},
	}

	r, _ := newTestRouter(t)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := postJSON(t, r, "/v1/search/plan", tc.req)
			require.Equal(t, http.StatusBadRequest, resp.Code)

			var errResp httperr.ErrorResponse
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &errResp))
			require.Equal(t, tc.errorType, errResp.ErrorType)
			require.NotEmpty(t, errResp.Message)
			if tc.message != "" {
				require.Equal(t, tc.message, errResp.Message)
			}
		})
	}
}

func TestPlanHandler_InvalidJSON(t *testing.T) {
	r, _ := newTestRouter(t)

	resp := postJSON(t, r, "/v1/search/plan", "not json")
	require.Equal(t, http.StatusBadRequest, resp.Code)

	var errResp httperr.ErrorResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &errResp))
	require.Equal(t, httperr.HttpInvalidJsonError, errResp.ErrorType)
}

func TestValidateQueryHandler(t *testing.T) {
	tests := []struct {
		query   string
		valid   bool
		premium bool
	}{
		{query: "", valid: true},
		{query: "project:alpha", valid: true},
		{query: "data.count:>5", valid: true, premium: true},
		{query: `name:"unterminated`, valid: false},
	}

	r, _ := newTestRouter(t)
	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/search/validate?query="+url.QueryEscape(tc.query), nil)
			resp := httptest.NewRecorder()
			r.ServeHTTP(resp, req)
			require.Equal(t, http.StatusOK, resp.Code)

			var body v1.ValidationResponse
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
			require.Equal(t, tc.valid, body.IsValid)
			require.Equal(t, tc.premium, body.UsesPremiumFeatures)
			if !tc.valid {
				require.NotEmpty(t, body.Message)
			}
		})
	}
}

func TestValidateAggregationsHandler(t *testing.T) {
	r, _ := newTestRouter(t)

	resp := postJSON(t, r, "/v1/aggregations/validate", v1.AggregationValidationRequest{Aggregations: "distinct:stack_id,distinct:value"})
	require.Equal(t, http.StatusOK, resp.Code)

	var body v1.ValidationResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.False(t, body.IsValid)
	require.Equal(t, aggregation.MsgDistinctCountExceeded, body.Message)

	resp = postJSON(t, r, "/v1/aggregations/validate", v1.AggregationValidationRequest{Aggregations: "max:user.keyword"})
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.True(t, body.IsValid)
	require.True(t, body.UsesPremiumFeatures)
}

func TestService_RecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	svc, err := NewService(policy.Default(), 8, telemetry.NewMetrics(reg))
	require.NoError(t, err)

	svc.ProcessQuery("data.retries:5")
	svc.ProcessQuery("data.retries:5")
	svc.CompileAggregations("avg:value,avg:value", true)

	queries, err := testutil.GatherAndCount(reg, "faultline_queries_processed_total")
	require.NoError(t, err)
	require.Equal(t, 1, queries)

	require.NoError(t, testutil.GatherAndCompare(reg, bytes.NewBufferString(`
# HELP faultline_plan_cache_lookups_total Total number of plan cache lookups, by result.
# TYPE faultline_plan_cache_lookups_total counter
faultline_plan_cache_lookups_total{result="hit"} 1
faultline_plan_cache_lookups_total{result="miss"} 2
`), "faultline_plan_cache_lookups_total"))
}

func TestService_CacheKeyIncludesPolicyFlag(t *testing.T) {
	svc, err := NewService(policy.Default(), 8, nil)
	require.NoError(t, err)

	checked := svc.CompileAggregations("avg:data.duration", true)
	require.Equal(t, aggregation.MsgDisallowedField, checked.Message)

	unchecked := svc.CompileAggregations("avg:data.duration", false)
	require.True(t, unchecked.IsValid)
	require.Empty(t, unchecked.Message)
	require.Equal(t, "idx.duration-n", unchecked.Aggregations[0].Field)
}
