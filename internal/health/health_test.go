package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"sportsclub/pkg/logger"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(checks map[string]Check, path string) *httptest.ResponseRecorder {
	router := httprouter.New()
	NewHealthHandler(checks, logger.Nop()).RegisterRoutes(router)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func ok(context.Context) error { return nil }

func TestHealth(t *testing.T) {
	rr := serve(nil, "/health")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"status":"ok"`)
}

func TestReady(t *testing.T) {
	rr := serve(map[string]Check{"mongo": ok, "redis": ok}, "/ready")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ready", resp.Status)
	assert.Equal(t, map[string]string{"mongo": "ok", "redis": "ok"}, resp.Checks)
}

func TestReady_DependencyDown(t *testing.T) {
	down := func(context.Context) error { return errors.New("connection refused") }

	rr := serve(map[string]Check{"mongo": ok, "redis": down}, "/ready")
	require.Equal(t, http.StatusServiceUnavailable, rr.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "unavailable", resp.Status)
	assert.Equal(t, "error", resp.Checks["redis"])
	assert.Equal(t, "ok", resp.Checks["mongo"])
}
