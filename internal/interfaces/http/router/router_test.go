package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type pingRegistrar struct{}

func (pingRegistrar) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
}

type echoRegistrar struct{}

func (echoRegistrar) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/echo", func(c *gin.Context) {
		c.String(http.StatusOK, c.Query("msg"))
	})
}

func TestRouter_DefaultVersion(t *testing.T) {
	engine := gin.New()
	NewRouter(engine).Register(pingRegistrar{}).Setup()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func TestRouter_CustomVersion(t *testing.T) {
	engine := gin.New()
	NewRouter(engine, WithAPIVersion("v2")).Register(pingRegistrar{}).Setup()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v2/ping", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_MiddlewareAppliesToAPIRoutes(t *testing.T) {
	engine := gin.New()
	engine.GET("/outside", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	NewRouter(engine).
		Use(func(c *gin.Context) {
			c.Header("X-Api-Middleware", "applied")
			c.Next()
		}).
		Register(pingRegistrar{}).
		Setup()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil)
	engine.ServeHTTP(w, req)
	assert.Equal(t, "applied", w.Header().Get("X-Api-Middleware"))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/outside", nil)
	engine.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("X-Api-Middleware"))
}

func TestRouter_MultipleRegistrars(t *testing.T) {
	engine := gin.New()
	NewRouter(engine).
		Register(pingRegistrar{}).
		Register(echoRegistrar{}).
		Setup()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/echo?msg=hello", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hello", w.Body.String())
}
