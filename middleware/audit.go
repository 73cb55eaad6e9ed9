package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuditMiddleware extracts and stores the client IP for audit logging.
func AuditMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("client_ip", getClientIP(c))
		c.Next()
	}
}

// GetIPFromContext returns the IP stored by AuditMiddleware.
func GetIPFromContext(c *gin.Context) string {
	if ip, exists := c.Get("client_ip"); exists {
		if s, ok := ip.(string); ok {
			return s
		}
	}
	return getClientIP(c)
}

// getClientIP extracts the real client IP from proxy headers, falling back
// to the connection's remote address.
func getClientIP(c *gin.Context) string {
	xff := c.GetHeader("X-Forwarded-For")
	if xff != "" {
		// X-Forwarded-For can contain multiple IPs, take the first one
		ips := strings.Split(xff, ",")
		if len(ips) > 0 {
			ip := strings.TrimSpace(ips[0])
			if isValidIP(ip) {
				return ip
			}
		}
	}

	xri := c.GetHeader("X-Real-Ip")
	if xri != "" && isValidIP(xri) {
		return xri
	}

	ip, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}
	return ip
}

func isValidIP(s string) bool {
	return net.ParseIP(s) != nil
}
