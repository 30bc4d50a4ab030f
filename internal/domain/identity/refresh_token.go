package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/shared"
)

// IssuedToken is the registry record of a refresh token. Only the jti is
// stored, never the signed token.
type IssuedToken struct {
	JTI       string
	UserID    uuid.UUID
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}

// NewIssuedToken registers a freshly signed refresh token
func NewIssuedToken(jti string, userID uuid.UUID, expiresAt time.Time) *IssuedToken {
	return &IssuedToken{
		JTI:       jti,
		UserID:    userID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
}

// IsRevoked reports whether the token was revoked
func (t *IssuedToken) IsRevoked() bool {
	return t.RevokedAt != nil
}

// IsUsable reports whether the token can still be exchanged at now
func (t *IssuedToken) IsUsable(now time.Time) bool {
	return !t.IsRevoked() && now.Before(t.ExpiresAt)
}

// Revoke marks the token revoked. Revoking twice fails with ErrTokenAlreadyRevoked.
func (t *IssuedToken) Revoke(now time.Time) error {
	if t.IsRevoked() {
		return ErrTokenAlreadyRevoked
	}
	t.RevokedAt = &now
	return nil
}

var (
	// ErrTokenNotFound is returned when a jti is not in the registry
	ErrTokenNotFound = shared.NewDomainError("TOKEN_NOT_FOUND", "Refresh token is not registered")
	// ErrTokenAlreadyRevoked is returned when revoking a revoked token
	ErrTokenAlreadyRevoked = shared.NewDomainError("TOKEN_ALREADY_REVOKED", "Refresh token has already been revoked")
	// ErrTokenInvalid is returned for unparsable, expired or mistyped tokens
	ErrTokenInvalid = shared.NewDomainError("TOKEN_INVALID", "Invalid token")
	// ErrTokenExpired is returned for a well-formed access token past its expiry
	ErrTokenExpired = shared.NewDomainError("TOKEN_EXPIRED", "Token has expired")
)
