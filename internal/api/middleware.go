package api

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/postline/postline/internal/models"
)

// identityHeader carries the caller's username, set by the fronting auth
// provider. The core treats it as trusted.
const identityHeader = "X-Auth-User"

const ctxUserKey = "current_user"

// identity resolves the caller identity header to a User and stores it on
// the request context. Absent or unknown identities leave the request
// anonymous; read endpoints stay available either way.
func (r *Router) identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if username := c.GetHeader(identityHeader); username != "" {
			user, err := r.users.GetByUsername(c.Request.Context(), username)
			if err == nil && user != nil {
				c.Set(ctxUserKey, user)
			}
		}
		c.Next()
	}
}

// requireAuth redirects anonymous callers to the login flow, preserving
// the original destination
func requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentUser(c) == nil {
			loginRedirect(c)
			return
		}
		c.Next()
	}
}

// currentUser returns the authenticated caller, or nil
func currentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(ctxUserKey); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status", "service"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "service"},
	)
)

// PrometheusMiddleware records per-route request counters and latency
func PrometheusMiddleware(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		httpRequestsTotal.WithLabelValues(c.Request.Method, path, status, serviceName).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, path, serviceName).
			Observe(time.Since(start).Seconds())
	}
}
