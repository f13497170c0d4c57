// cmd/worker-manager/main_test.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okCheck(context.Context) error { return nil }

func serve(t *testing.T, mux *http.ServeMux, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

// ==========================
// Readiness Tests
// ==========================

func TestReadinessChecks_CoverEveryBackend(t *testing.T) {
	var names []string
	for _, c := range readinessChecks(nil, &dependencies{}) {
		names = append(names, c.name)
	}
	assert.Equal(t, []string{"zeebe", "postgres", "redis", "elasticsearch"}, names)
}

func TestReady_AllHealthy(t *testing.T) {
	mux := newServeMux([]readinessCheck{
		{"zeebe", okCheck},
		{"elasticsearch", okCheck},
	})

	rec, body := serve(t, mux, "/ready")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ready", body["status"])
	assert.Equal(t, map[string]interface{}{"zeebe": "ok", "elasticsearch": "ok"}, body["checks"])
}

func TestReady_ElasticsearchDown(t *testing.T) {
	mux := newServeMux([]readinessCheck{
		{"zeebe", okCheck},
		{"elasticsearch", func(context.Context) error {
			return errors.New("elasticsearch ping failed: connection refused")
		}},
	})

	rec, body := serve(t, mux, "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "not_ready", body["status"])

	checks := body["checks"].(map[string]interface{})
	assert.Equal(t, "ok", checks["zeebe"])
	assert.Equal(t, "elasticsearch ping failed: connection refused", checks["elasticsearch"])
}

func TestHealth(t *testing.T) {
	rec, body := serve(t, newServeMux(nil), "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", body["status"])
}
