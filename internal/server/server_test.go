package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

type fakeHealth struct{ err error }

func (f fakeHealth) PingContext(ctx context.Context) error { return f.err }

type pingRoutes struct{}

func (pingRoutes) RegisterRoutes(r gin.IRouter) {
	r.GET("/v1/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.POST("/v1/echo", func(c *gin.Context) {
		var body map[string]interface{}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		c.Status(http.StatusOK)
	})
}

func get(s *Server, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp := httptest.NewRecorder()
	s.Engine.ServeHTTP(resp, req)
	return resp
}

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name     string
		health   HealthChecker
		status   int
		database string
	}{
		{name: "no database", health: nil, status: http.StatusOK, database: "none"},
		{name: "database up", health: fakeHealth{}, status: http.StatusOK, database: "connected"},
		{name: "database down", health: fakeHealth{err: errors.New("dial tcp: refused")}, status: http.StatusServiceUnavailable},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := New(Options{Addr: ":0", Mode: "release", Health: tc.health})
			resp := get(s, "/health")
			require.Equal(t, tc.status, resp.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
			if tc.database != "" {
				require.Equal(t, tc.database, body["database"])
			} else {
				require.Equal(t, "unhealthy", body["status"])
			}
		})
	}
}

func TestNew_RegistersServicesAndMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "faultline_test_total", Help: "test"})
	reg.MustRegister(counter)
	counter.Inc()

	s := New(Options{Addr: ":0", Mode: "release", Gatherer: reg}, pingRoutes{})

	resp := get(s, "/v1/ping")
	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, "pong", resp.Body.String())

	resp = get(s, "/metrics")
	require.Equal(t, http.StatusOK, resp.Code)
	require.True(t, strings.Contains(resp.Body.String(), "faultline_test_total 1"))
}

func TestNew_WithoutGathererHasNoMetrics(t *testing.T) {
	s := New(Options{Addr: ":0", Mode: "release"})
	require.Equal(t, http.StatusNotFound, get(s, "/metrics").Code)
}

func TestRun_StopsOnCancel(t *testing.T) {
	s := New(Options{Addr: "127.0.0.1:0", Mode: "release"})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	cancel()

	require.NoError(t, <-done)
}

func TestNew_LimitsBodySize(t *testing.T) {
	s := New(Options{Addr: ":0", Mode: "release", MaxBodyBytes: 16}, pingRoutes{})

	small := httptest.NewRequest(http.MethodPost, "/v1/echo", strings.NewReader(`{"a":1}`))
	resp := httptest.NewRecorder()
	s.Engine.ServeHTTP(resp, small)
	require.Equal(t, http.StatusOK, resp.Code)

	large := httptest.NewRequest(http.MethodPost, "/v1/echo", strings.NewReader(`{"query":"`+strings.Repeat("x", 64)+`"}`))
	resp = httptest.NewRecorder()
	s.Engine.ServeHTTP(resp, large)
	require.Equal(t, http.StatusBadRequest, resp.Code)
}
