package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	identityapp "github.com/shopfront/backend/internal/application/identity"
	"github.com/shopfront/backend/internal/domain/identity"
	"github.com/shopfront/backend/internal/domain/shared"
	"github.com/shopfront/backend/internal/infrastructure/logger"
	"github.com/shopfront/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// Auth context keys
const (
	SessionKey    = "auth_session"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// Authenticator resolves an access token into the session it belongs to
type Authenticator interface {
	CurrentPrincipal(ctx context.Context, accessToken string) (*identityapp.Session, error)
}

// AuthConfig holds configuration for the auth middleware
type AuthConfig struct {
	Authenticator Authenticator
	// Optional lets anonymous callers through. An invalid token still
	// degrades to anonymous rather than failing the request.
	Optional bool
	Logger   *zap.Logger
}

// RequireAuth rejects requests without a valid bearer token
func RequireAuth(a Authenticator, log *zap.Logger) gin.HandlerFunc {
	return AuthWithConfig(AuthConfig{Authenticator: a, Logger: log})
}

// OptionalAuth attaches the caller's session when a valid token is sent and
// treats everyone else as anonymous
func OptionalAuth(a Authenticator, log *zap.Logger) gin.HandlerFunc {
	return AuthWithConfig(AuthConfig{Authenticator: a, Optional: true, Logger: log})
}

// AuthWithConfig creates the bearer token middleware
func AuthWithConfig(cfg AuthConfig) gin.HandlerFunc {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader(AuthHeaderKey))
		if !ok {
			if cfg.Optional {
				c.Next()
				return
			}
			abortAuth(c, identity.ErrTokenInvalid)
			return
		}

		session, err := cfg.Authenticator.CurrentPrincipal(c.Request.Context(), token)
		if err != nil {
			if cfg.Optional {
				c.Next()
				return
			}
			cfg.Logger.Debug("Authentication failed",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err))
			abortAuth(c, err)
			return
		}

		c.Set(SessionKey, session)

		ctx := c.Request.Context()
		ctx, _ = logger.WithUserID(ctx, logger.FromContextOr(ctx, cfg.Logger), session.Principal.UserID.String())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireAdmin must run after RequireAuth. Non-admin callers get 403.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := GetPrincipal(c).RequireAdmin(); err != nil {
			status := http.StatusForbidden
			code := dto.ErrCodeForbidden
			message := "Admin role required"
			if errors.Is(err, shared.ErrUnauthorized) {
				status = http.StatusUnauthorized
				code = dto.ErrCodeUnauthorized
				message = "Authentication required"
			}
			c.AbortWithStatusJSON(status, dto.NewErrorResponseWithRequestID(code, message, c.GetString(RequestIDKey)))
			return
		}
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	if !strings.HasPrefix(header, BearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
	return token, token != ""
}

func abortAuth(c *gin.Context, err error) {
	code := dto.ErrCodeTokenInvalid
	message := "Invalid token"
	if domainErr, ok := shared.AsDomainError(err); ok && domainErr.Code == dto.ErrCodeTokenExpired {
		code = dto.ErrCodeTokenExpired
		message = domainErr.Message
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(code, message, c.GetString(RequestIDKey)))
}

// GetSession returns the authenticated session, or nil for anonymous callers
func GetSession(c *gin.Context) *identityapp.Session {
	if v, exists := c.Get(SessionKey); exists {
		if session, ok := v.(*identityapp.Session); ok {
			return session
		}
	}
	return nil
}

// GetPrincipal returns the caller, anonymous when no session is attached
func GetPrincipal(c *gin.Context) identity.Principal {
	if session := GetSession(c); session != nil {
		return session.Principal
	}
	return identity.Anonymous()
}
