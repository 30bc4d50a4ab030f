package identity

import (
	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/shared"
)

// Principal is the caller an operation runs on behalf of. The zero value is
// the anonymous principal.
type Principal struct {
	UserID   uuid.UUID
	Username string
	Role     Role
}

// Anonymous returns the unauthenticated principal
func Anonymous() Principal {
	return Principal{}
}

// IsAnonymous reports whether no user is attached
func (p Principal) IsAnonymous() bool {
	return p.UserID == uuid.Nil
}

// IsAdmin reports whether the principal has the admin role
func (p Principal) IsAdmin() bool {
	return !p.IsAnonymous() && p.Role == RoleAdmin
}

// UserRef returns a pointer to the user id, or nil for anonymous callers
func (p Principal) UserRef() *uuid.UUID {
	if p.IsAnonymous() {
		return nil
	}
	id := p.UserID
	return &id
}

// RequireAuthenticated fails for anonymous principals
func (p Principal) RequireAuthenticated() error {
	if p.IsAnonymous() {
		return shared.ErrUnauthorized
	}
	return nil
}

// RequireAdmin fails unless the principal is an admin
func (p Principal) RequireAdmin() error {
	if err := p.RequireAuthenticated(); err != nil {
		return err
	}
	if p.Role != RoleAdmin {
		return shared.ErrForbidden
	}
	return nil
}
