package httpserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Aqsariasat123/catalyst-dashboard-sub000/internal/model"
	"github.com/Aqsariasat123/catalyst-dashboard-sub000/internal/rbac"
	"github.com/Aqsariasat123/catalyst-dashboard-sub000/internal/util"
	"github.com/Aqsariasat123/catalyst-dashboard-sub000/pkg/metrics"
)

// AuthMiddleware validates the bearer token and stores the worker identity
// in the request context.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := util.ExtractToken(c.Request)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			c.Abort()
			return
		}

		workerID, role, err := util.ParseJWT(token, jwtSecret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set("worker_id", workerID)
		c.Set("role", role)

		c.Next()
	}
}

// RequirePermission gates a route on the caller's role.
func RequirePermission(permission rbac.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleRaw, exists := c.Get("role")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "worker not authenticated"})
			c.Abort()
			return
		}

		role, ok := roleRaw.(string)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "invalid role"})
			c.Abort()
			return
		}

		if err := rbac.CheckPermission(model.Role(role), permission); err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequestLogger logs every request with its latency in the access-log style
// the rest of the services use.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// MetricsMiddleware records request duration per method, route and status.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.RecordHTTPRequestDuration(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start),
		)
	}
}
