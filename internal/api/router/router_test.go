package router_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netooze/jobapi/internal/api/dto"
	"github.com/netooze/jobapi/internal/api/handler"
	"github.com/netooze/jobapi/internal/api/router"
)

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return router.SetupRouter(&handler.Dependencies{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func TestUnknownRouteEnvelope(t *testing.T) {
	r := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/v2/nothing", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusNotFound, resp.Error.Code)
	assert.Equal(t, "No endpoint resource found", resp.Error.Message)
}

func TestMethodNotAllowedEnvelope(t *testing.T) {
	r := testRouter()

	req := httptest.NewRequest(http.MethodPut, "/v1/jobs/alice", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusMethodNotAllowed, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusMethodNotAllowed, resp.Error.Code)
	assert.Equal(t, "Method not allowed", resp.Error.Message)
}

func TestHealth(t *testing.T) {
	r := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}
