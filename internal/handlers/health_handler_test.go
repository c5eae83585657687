package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/casacomune/community-api/internal/handlers"
)

func TestHealthcheck_OfflineMode(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/api/healthcheck", handlers.NewHealthHandler(nil).Healthcheck)

	req := httptest.NewRequest(http.MethodGet, "/api/healthcheck", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status": "ok"}`, w.Body.String())
	assert.Contains(t, w.Header().Get("Cache-Control"), "no-cache")
}
