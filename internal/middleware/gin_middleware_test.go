package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/dalfonso89/multitool-api/internal/logger"
	"github.com/dalfonso89/multitool-api/internal/metrics"
)

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(handlers...)
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return router
}

func TestRequestID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
	}{
		{name: "generated", incoming: ""},
		{name: "propagated", incoming: "client-supplied-id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newRouter(RequestID())

			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tt.incoming != "" {
				req.Header.Set("X-Request-ID", tt.incoming)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			requestID := w.Header().Get("X-Request-ID")
			if tt.incoming != "" {
				if requestID != tt.incoming {
					t.Errorf("X-Request-ID = %q, want %q", requestID, tt.incoming)
				}
				return
			}
			if _, err := uuid.Parse(requestID); err != nil {
				t.Errorf("X-Request-ID = %q is not a UUID: %v", requestID, err)
			}
		})
	}
}

func TestSecurityHeadersAndCORS(t *testing.T) {
	router := newRouter(SecurityHeaders(), CORS())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	expected := map[string]string{
		"X-Content-Type-Options":      "nosniff",
		"X-Frame-Options":             "DENY",
		"Access-Control-Allow-Origin": "*",
	}
	for header, value := range expected {
		if got := w.Header().Get(header); got != value {
			t.Errorf("%s = %q, want %q", header, got, value)
		}
	}

	preflight := httptest.NewRecorder()
	router.ServeHTTP(preflight, httptest.NewRequest(http.MethodOptions, "/ping", nil))
	if preflight.Code != http.StatusNoContent {
		t.Errorf("OPTIONS status = %d, want %d", preflight.Code, http.StatusNoContent)
	}
}

func TestRequestLogger(t *testing.T) {
	var output bytes.Buffer
	router := newRouter(RequestID(), RequestLogger(logger.NewWithOutput("info", &output)))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	line := output.String()
	for _, fragment := range []string{`"msg":"HTTP Request"`, `"path":"/ping"`, `"status":200`, `"request_id":`} {
		if !strings.Contains(line, fragment) {
			t.Errorf("log line %s is missing %s", line, fragment)
		}
	}
}

func TestMetricsMiddleware(t *testing.T) {
	registry := prometheus.NewRegistry()
	manager := metrics.NewManager(metrics.WithRegistry(registry))
	router := newRouter(Metrics(manager))

	for _, path := range []string{"/ping", "/ping", "/missing"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	count, err := testutil.GatherAndCount(registry, "multitool_http_requests_total")
	if err != nil {
		t.Fatalf("GatherAndCount() error = %v", err)
	}
	// /ping 200 and unmatched 404
	if count != 2 {
		t.Errorf("request series = %d, want 2", count)
	}
}
