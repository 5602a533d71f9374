package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newSwaggerRouter(cfg SwaggerConfig, jwtMiddleware gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.GET("/swagger/index.html", SwaggerProtection(cfg, jwtMiddleware), func(c *gin.Context) {
		c.String(http.StatusOK, "docs")
	})
	return r
}

func TestSwaggerProtection_Disabled(t *testing.T) {
	r := newSwaggerRouter(SwaggerConfig{Enabled: false}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSwaggerProtection_EnabledOpen(t *testing.T) {
	r := newSwaggerRouter(SwaggerConfig{Enabled: true}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "docs", w.Body.String())
}

func TestSwaggerProtection_IPWhitelist(t *testing.T) {
	cfg := SwaggerConfig{Enabled: true, AllowedIPs: []string{"10.1.0.0/16", "192.0.2.7"}}
	r := newSwaggerRouter(cfg, nil)

	tests := []struct {
		remoteAddr string
		wantCode   int
	}{
		{"10.1.44.3:1234", http.StatusOK},
		{"192.0.2.7:1234", http.StatusOK},
		{"203.0.113.9:1234", http.StatusForbidden},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
		req.RemoteAddr = tt.remoteAddr
		r.ServeHTTP(w, req)
		assert.Equal(t, tt.wantCode, w.Code, "remote %s", tt.remoteAddr)
	}
}

func TestSwaggerProtection_RequireAuth(t *testing.T) {
	deny := func(c *gin.Context) {
		c.AbortWithStatus(http.StatusUnauthorized)
	}
	r := newSwaggerRouter(SwaggerConfig{Enabled: true, RequireAuth: true}, deny)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
