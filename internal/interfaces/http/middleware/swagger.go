package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/foodbridge/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// SwaggerConfig controls access to the API documentation endpoint.
type SwaggerConfig struct {
	Enabled     bool
	RequireAuth bool
	AllowedIPs  []string // single IPs or CIDR ranges, empty allows all
}

// SwaggerProtection gates the swagger routes. Disabled docs answer 404,
// an IP whitelist answers 403 for outsiders, and RequireAuth runs the
// given JWT middleware before serving.
func SwaggerProtection(cfg SwaggerConfig, jwtMiddleware gin.HandlerFunc) gin.HandlerFunc {
	var allowedNets []*net.IPNet
	var allowedIPs []net.IP
	for _, entry := range cfg.AllowedIPs {
		if strings.Contains(entry, "/") {
			if _, network, err := net.ParseCIDR(entry); err == nil {
				allowedNets = append(allowedNets, network)
			}
		} else if ip := net.ParseIP(entry); ip != nil {
			allowedIPs = append(allowedIPs, ip)
		}
	}

	return func(c *gin.Context) {
		if !cfg.Enabled {
			c.AbortWithStatusJSON(http.StatusNotFound, dto.NewErrorResponse(
				dto.ErrCodeNotFound,
				"API documentation is not available",
			))
			return
		}

		if len(cfg.AllowedIPs) > 0 {
			if !isIPAllowed(clientIP(c), allowedIPs, allowedNets) {
				c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(
					dto.ErrCodeForbidden,
					"Access to API documentation is restricted",
				))
				return
			}
		}

		if cfg.RequireAuth && jwtMiddleware != nil {
			jwtMiddleware(c)
			if c.IsAborted() {
				return
			}
		}

		c.Next()
	}
}

func clientIP(c *gin.Context) net.IP {
	if ip := net.ParseIP(c.ClientIP()); ip != nil {
		return ip
	}

	host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		host = c.Request.RemoteAddr
	}
	return net.ParseIP(host)
}

func isIPAllowed(ip net.IP, allowedIPs []net.IP, allowedNets []*net.IPNet) bool {
	if ip == nil {
		return false
	}
	for _, allowed := range allowedIPs {
		if allowed.Equal(ip) {
			return true
		}
	}
	for _, network := range allowedNets {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}
