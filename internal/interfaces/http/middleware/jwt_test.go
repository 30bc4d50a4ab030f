package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	identityapp "github.com/shopfront/backend/internal/application/identity"
	"github.com/shopfront/backend/internal/domain/identity"
	"github.com/shopfront/backend/internal/infrastructure/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAuthenticator maps tokens to sessions; unknown tokens fail with err
type fakeAuthenticator struct {
	sessions map[string]*identityapp.Session
	err      error
}

func (f *fakeAuthenticator) CurrentPrincipal(_ context.Context, token string) (*identityapp.Session, error) {
	if s, ok := f.sessions[token]; ok {
		return s, nil
	}
	if f.err != nil {
		return nil, f.err
	}
	return nil, identity.ErrTokenInvalid
}

var (
	adminID    = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	customerID = uuid.MustParse("22222222-2222-2222-2222-222222222222")
)

func newFakeAuthenticator() *fakeAuthenticator {
	return &fakeAuthenticator{sessions: map[string]*identityapp.Session{
		"admin-token": {
			Principal: identity.Principal{UserID: adminID, Username: "admin", Role: identity.RoleAdmin},
			TokenID:   "jti-admin",
			ExpiresAt: time.Now().Add(time.Hour),
		},
		"customer-token": {
			Principal: identity.Principal{UserID: customerID, Username: "alice", Role: identity.RoleCustomer},
			TokenID:   "jti-customer",
			ExpiresAt: time.Now().Add(time.Hour),
		},
	}}
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	return body.Error.Code
}

func serve(router *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set(AuthHeaderKey, BearerPrefix+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth := newFakeAuthenticator()

	router := gin.New()
	router.GET("/me", RequireAuth(auth, nil), func(c *gin.Context) {
		p := GetPrincipal(c)
		assert.Equal(t, customerID.String(), logger.GetUserID(c.Request.Context()))
		c.String(http.StatusOK, p.Username)
	})

	t.Run("valid token", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/me", "customer-token")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "alice", w.Body.String())
	})

	t.Run("missing header", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/me", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "TOKEN_INVALID", errorCode(t, w))
	})

	t.Run("not a bearer header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set(AuthHeaderKey, "Basic YWRtaW46YWRtaW4=")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown token", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/me", "forged")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "TOKEN_INVALID", errorCode(t, w))
	})
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth := &fakeAuthenticator{err: identity.ErrTokenExpired}

	router := gin.New()
	router.GET("/me", RequireAuth(auth, nil), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := serve(router, http.MethodGet, "/me", "stale")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "TOKEN_EXPIRED", errorCode(t, w))
}

func TestOptionalAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth := newFakeAuthenticator()

	router := gin.New()
	router.POST("/orders", OptionalAuth(auth, nil), func(c *gin.Context) {
		if GetPrincipal(c).IsAnonymous() {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, GetPrincipal(c).Username)
	})

	tests := []struct {
		name  string
		token string
		want  string
	}{
		{"no token", "", "anonymous"},
		{"invalid token degrades", "forged", "anonymous"},
		{"valid token", "admin-token", "admin"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(router, http.MethodPost, "/orders", tt.token)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.want, w.Body.String())
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth := newFakeAuthenticator()

	router := gin.New()
	router.DELETE("/produits/:id", RequireAuth(auth, nil), RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	router.GET("/open", RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	t.Run("admin passes", func(t *testing.T) {
		w := serve(router, http.MethodDelete, "/produits/1", "admin-token")
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("customer is forbidden", func(t *testing.T) {
		w := serve(router, http.MethodDelete, "/produits/1", "customer-token")
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "FORBIDDEN", errorCode(t, w))
	})

	t.Run("anonymous is unauthorized", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/open", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "UNAUTHORIZED", errorCode(t, w))
	})
}

func TestGetSession_Anonymous(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Nil(t, GetSession(c))
	assert.True(t, GetPrincipal(c).IsAnonymous())
}
