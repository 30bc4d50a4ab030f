package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/identity"
	"github.com/shopfront/backend/internal/infrastructure/auth"
)

// LoginRequest is the body of POST /login
type LoginRequest struct {
	Username string `json:"username" binding:"required,max=150"`
	Password string `json:"password" binding:"required,max=128"`
}

// RefreshRequest is the body of POST /token/refresh and POST /logout
type RefreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

// SignupRequest is the body of POST /signup. Role defaults to customer;
// only an admin caller may ask for admin.
type SignupRequest struct {
	Username    string `json:"username" binding:"required,min=3,max=150"`
	Password    string `json:"password" binding:"required,min=8,max=128"`
	Email       string `json:"email" binding:"omitempty,email,max=254"`
	FullName    string `json:"full_name" binding:"max=150"`
	PhoneNumber string `json:"phone_number" binding:"max=20"`
	Address     string `json:"address" binding:"max=255"`
	Role        string `json:"role" binding:"omitempty,oneof=admin customer"`
}

// TokenResponse is returned by login and refresh
type TokenResponse struct {
	Access           string        `json:"access"`
	Refresh          string        `json:"refresh"`
	TokenType        string        `json:"token_type"`
	AccessExpiresAt  time.Time     `json:"access_expires_at"`
	RefreshExpiresAt time.Time     `json:"refresh_expires_at"`
	User             *UserResponse `json:"user,omitempty"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	FullName    string     `json:"full_name"`
	PhoneNumber string     `json:"phone_number"`
	Address     string     `json:"address"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Session is a verified access token: who is calling and which token they
// used, so that logout can blacklist it.
type Session struct {
	Principal identity.Principal
	TokenID   string
	ExpiresAt time.Time
}

// ToUserResponse converts a domain User to UserResponse
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Role:        string(u.Role),
		FullName:    u.FullName,
		PhoneNumber: u.PhoneNumber,
		Address:     u.Address,
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}

func toTokenResponse(pair *auth.TokenPair, user *identity.User) *TokenResponse {
	resp := &TokenResponse{
		Access:           pair.AccessToken,
		Refresh:          pair.RefreshToken,
		TokenType:        pair.TokenType,
		AccessExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshExpiresAt: pair.RefreshTokenExpiresAt,
	}
	if user != nil {
		u := ToUserResponse(user)
		resp.User = &u
	}
	return resp
}
