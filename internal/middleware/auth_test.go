package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/casacomune/community-api/internal/middleware"
)

func setupAuthRouter(validToken string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/admin/inquiries",
		middleware.AdminAuthMiddleware(validToken),
		func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) },
	)
	return router
}

func getWithToken(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/admin/inquiries", nil)
	if token != "" {
		req.Header.Set("X-Admin-Auth-Token", token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAdminAuth_ValidToken(t *testing.T) {
	router := setupAuthRouter("secret-token")

	w := getWithToken(router, "secret-token")

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminAuth_MissingToken(t *testing.T) {
	router := setupAuthRouter("secret-token")

	w := getWithToken(router, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminAuth_WrongToken(t *testing.T) {
	router := setupAuthRouter("secret-token")

	w := getWithToken(router, "wrong-token")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminAuth_UnconfiguredTokenHidesSurface(t *testing.T) {
	router := setupAuthRouter("")

	w := getWithToken(router, "anything")

	assert.Equal(t, http.StatusNotFound, w.Code)
}
