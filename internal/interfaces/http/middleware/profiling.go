package middleware

import (
	"context"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopfront/backend/internal/infrastructure/telemetry"
)

// ProfilingConfig holds configuration for the profiling middleware.
type ProfilingConfig struct {
	Enabled          bool
	SkipPaths        []string // exact paths served without labels
	SkipPathPrefixes []string
}

// DefaultProfilingConfig skips health checks, API docs and media downloads.
func DefaultProfilingConfig() ProfilingConfig {
	return ProfilingConfig{
		Enabled:          true,
		SkipPaths:        []string{"/health"},
		SkipPathPrefixes: []string{"/swagger", "/media"},
	}
}

// Profiling returns profiling middleware with default configuration.
func Profiling() gin.HandlerFunc {
	return ProfilingWithConfig(DefaultProfilingConfig())
}

// ProfilingWithConfig tags CPU samples taken while a request is served with
// Pyroscope labels:
//   - service: the resource (e.g. "produits")
//   - operation: the HTTP method
//   - route: the route pattern (e.g. "/api/v1/produits/:id")
func ProfilingWithConfig(cfg ProfilingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return passthrough
	}

	skip := func(path string) bool {
		if slices.Contains(cfg.SkipPaths, path) {
			return true
		}
		return slices.ContainsFunc(cfg.SkipPathPrefixes, func(prefix string) bool {
			return strings.HasPrefix(path, prefix)
		})
	}

	return func(c *gin.Context) {
		if skip(c.Request.URL.Path) {
			c.Next()
			return
		}
		telemetry.WithProfilingLabels(c.Request.Context(), extractProfilingLabels(c), func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}

func extractProfilingLabels(c *gin.Context) map[string]string {
	route := c.FullPath()
	return map[string]string{
		telemetry.ProfilingLabelService:   extractControllerFromRoute(route),
		telemetry.ProfilingLabelOperation: c.Request.Method,
		telemetry.ProfilingLabelRoute:     route,
	}
}

// extractControllerFromRoute returns the first static segment after the
// /api/vN prefix: "/api/v1/orders/:id" -> "orders".
func extractControllerFromRoute(route string) string {
	for part := range strings.SplitSeq(route, "/") {
		if part == "" || part == "api" || isVersionSegment(part) || strings.HasPrefix(part, ":") {
			continue
		}
		return part
	}
	return ""
}

func isVersionSegment(segment string) bool {
	if len(segment) < 2 || (segment[0] != 'v' && segment[0] != 'V') {
		return false
	}
	for _, r := range segment[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
