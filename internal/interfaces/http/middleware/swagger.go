package middleware

import (
	"net/http"
	"net/netip"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopfront/backend/internal/interfaces/http/dto"
)

// SwaggerConfig holds configuration for Swagger endpoint protection
type SwaggerConfig struct {
	Enabled     bool
	RequireAuth bool     // run the auth chain before serving the docs
	AllowedIPs  []string // single addresses or CIDR ranges, empty allows all
}

// SwaggerProtection guards the API docs. A disabled endpoint answers 404.
// The IP allow list is checked before authChain, which usually is
// RequireAuth followed by RequireAdmin.
func SwaggerProtection(cfg SwaggerConfig, authChain ...gin.HandlerFunc) gin.HandlerFunc {
	allowList := parseAllowList(cfg.AllowedIPs)

	return func(c *gin.Context) {
		if !cfg.Enabled {
			c.AbortWithStatusJSON(http.StatusNotFound,
				dto.NewErrorResponse(dto.ErrCodeNotFound, "API documentation is not available"))
			return
		}

		if len(cfg.AllowedIPs) > 0 && !ipAllowed(clientAddr(c), allowList) {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "Access to API documentation is restricted"))
			return
		}

		if cfg.RequireAuth {
			for _, h := range authChain {
				h(c)
				if c.IsAborted() {
					return
				}
			}
		}

		c.Next()
	}
}

// parseAllowList turns addresses and CIDR ranges into prefixes. Invalid
// entries are skipped.
func parseAllowList(entries []string) []netip.Prefix {
	prefixes := make([]netip.Prefix, 0, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if strings.Contains(entry, "/") {
			if p, err := netip.ParsePrefix(entry); err == nil {
				prefixes = append(prefixes, p.Masked())
			}
			continue
		}
		if addr, err := netip.ParseAddr(entry); err == nil {
			prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
		}
	}
	return prefixes
}

// clientAddr prefers gin's proxy-aware ClientIP and falls back to RemoteAddr
func clientAddr(c *gin.Context) netip.Addr {
	if addr, err := netip.ParseAddr(c.ClientIP()); err == nil {
		return addr.Unmap()
	}
	if ap, err := netip.ParseAddrPort(c.Request.RemoteAddr); err == nil {
		return ap.Addr().Unmap()
	}
	return netip.Addr{}
}

func ipAllowed(addr netip.Addr, allowList []netip.Prefix) bool {
	if !addr.IsValid() {
		return false
	}
	for _, p := range allowList {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}
