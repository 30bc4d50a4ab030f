package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/shared"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByUsername matches the normalized (lowercase) username
	FindByUsername(ctx context.Context, username string) (*User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// FindAll supports Filter.Search on username, email and full name, and the "role" filter key
	FindAll(ctx context.Context, filter shared.Filter) ([]User, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// TokenRepository is the refresh token registry
type TokenRepository interface {
	Create(ctx context.Context, token *IssuedToken) error
	FindByJTI(ctx context.Context, jti string) (*IssuedToken, error)

	// MarkRevoked persists RevokedAt unless the stored token is already
	// revoked, in which case it returns ErrTokenAlreadyRevoked
	MarkRevoked(ctx context.Context, token *IssuedToken) error

	// DeleteExpired removes records that expired before cutoff and returns how many were removed
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)
}
