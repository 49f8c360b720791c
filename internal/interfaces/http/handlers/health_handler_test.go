package handlers

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/bgc-scaffold/pkg/types/common"
)

func probe(t *testing.T, h *HealthHandler, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	r := gin.New()
	r.GET("/healthz", h.Liveness)
	r.GET("/readyz", h.Readiness)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func ok(name string) HealthChecker {
	return CheckerFunc{ComponentName: name, Fn: func(context.Context) error { return nil }}
}

func TestLiveness_IgnoresCheckers(t *testing.T) {
	failing := CheckerFunc{ComponentName: "cache", Fn: func(context.Context) error { return stderrors.New("down") }}
	w, body := probe(t, NewHealthHandler("1.2.3", failing), "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, string(common.HealthUp), body["status"])
	assert.Equal(t, "1.2.3", body["version"])
}

func TestReadiness(t *testing.T) {
	t.Run("no checkers", func(t *testing.T) {
		w, body := probe(t, NewHealthHandler("dev"), "/readyz")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "up", body["status"])
	})

	t.Run("all healthy", func(t *testing.T) {
		w, body := probe(t, NewHealthHandler("dev", ok("cache"), ok("engine")), "/readyz")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, body["components"], 2)
	})

	t.Run("one failing", func(t *testing.T) {
		failing := CheckerFunc{ComponentName: "cache", Fn: func(context.Context) error { return stderrors.New("connection refused") }}
		w, body := probe(t, NewHealthHandler("dev", ok("engine"), failing), "/readyz")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "down", body["status"])
		comps := body["components"].(map[string]interface{})
		cache := comps["cache"].(map[string]interface{})
		assert.Equal(t, "down", cache["status"])
		assert.Equal(t, "connection refused", cache["message"])
		assert.Equal(t, "up", comps["engine"].(map[string]interface{})["status"])
	})
}

//Personal.AI order the ending
