package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/identity"
	"github.com/shopfront/backend/internal/infrastructure/config"
)

// TokenType tells access and refresh tokens apart inside the claims
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInvalidTokenType = errors.New("invalid token type")
	ErrInvalidClaims    = errors.New("invalid token claims")
	ErrMissingUserID    = errors.New("missing user_id in claims")
)

// Claims is the payload of both token kinds. RegisteredClaims.ID is the jti
// the refresh-token registry and the access blacklist key on.
type Claims struct {
	jwt.RegisteredClaims
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	TokenType TokenType `json:"token_type"`
}

// TokenPair is returned by login and refresh. The jtis stay server-side.
type TokenPair struct {
	AccessToken           string    `json:"access"`
	RefreshToken          string    `json:"refresh"`
	AccessTokenExpiresAt  time.Time `json:"access_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_expires_at"`
	TokenType             string    `json:"token_type"`
	AccessJTI             string    `json:"-"`
	RefreshJTI            string    `json:"-"`
}

// tokenKind is the signing material for one token type
type tokenKind struct {
	typ    TokenType
	secret []byte
	ttl    time.Duration
}

// JWTService signs and verifies HS256 tokens. Refresh tokens use their own
// secret when one is configured.
type JWTService struct {
	access  tokenKind
	refresh tokenKind
	issuer  string
	now     func() time.Time
}

func NewJWTService(cfg config.JWTConfig) *JWTService {
	refreshSecret := cfg.RefreshSecret
	if refreshSecret == "" {
		refreshSecret = cfg.Secret
	}
	return &JWTService{
		access:  tokenKind{typ: TokenTypeAccess, secret: []byte(cfg.Secret), ttl: cfg.AccessTokenExpiration},
		refresh: tokenKind{typ: TokenTypeRefresh, secret: []byte(refreshSecret), ttl: cfg.RefreshTokenExpiration},
		issuer:  cfg.Issuer,
		now:     time.Now,
	}
}

// GenerateTokenPair signs a fresh access and refresh token for principal.
// Anonymous principals cannot hold tokens.
func (s *JWTService) GenerateTokenPair(principal identity.Principal) (*TokenPair, error) {
	if principal.IsAnonymous() {
		return nil, ErrMissingUserID
	}
	now := s.now()

	access, accessClaims, err := s.sign(principal, s.access, now)
	if err != nil {
		return nil, err
	}
	refresh, refreshClaims, err := s.sign(principal, s.refresh, now)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:           access,
		RefreshToken:          refresh,
		AccessTokenExpiresAt:  accessClaims.ExpiresAt.Time,
		RefreshTokenExpiresAt: refreshClaims.ExpiresAt.Time,
		TokenType:             "Bearer",
		AccessJTI:             accessClaims.ID,
		RefreshJTI:            refreshClaims.ID,
	}, nil
}

func (s *JWTService) sign(p identity.Principal, kind tokenKind, now time.Time) (string, *Claims, error) {
	claims := s.claimsFor(p, kind.typ, now, kind.ttl)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(kind.secret)
	if err != nil {
		return "", nil, err
	}
	return signed, claims, nil
}

func (s *JWTService) claimsFor(p identity.Principal, typ TokenType, now time.Time, ttl time.Duration) *Claims {
	return &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   p.UserID.String(),
			Audience:  jwt.ClaimStrings{s.issuer},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:    p.UserID.String(),
		Username:  p.Username,
		Role:      string(p.Role),
		TokenType: typ,
	}
}

func (s *JWTService) ValidateAccessToken(raw string) (*Claims, error) {
	return s.verify(raw, s.access)
}

func (s *JWTService) ValidateRefreshToken(raw string) (*Claims, error) {
	return s.verify(raw, s.refresh)
}

func (s *JWTService) verify(raw string, kind tokenKind) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return kind.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.now),
	)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpiredToken
	case err != nil:
		return nil, ErrInvalidToken
	}

	switch {
	case claims.TokenType != kind.typ:
		return nil, ErrInvalidTokenType
	case claims.UserID == "":
		return nil, ErrMissingUserID
	case claims.ID == "":
		return nil, ErrInvalidClaims
	}
	return claims, nil
}

// Principal rebuilds the caller identity carried by the claims
func (c *Claims) Principal() (identity.Principal, error) {
	userID, err := uuid.Parse(c.UserID)
	if err != nil {
		return identity.Principal{}, ErrInvalidClaims
	}
	role := identity.Role(c.Role)
	if !role.IsValid() {
		return identity.Principal{}, ErrInvalidClaims
	}
	return identity.Principal{UserID: userID, Username: c.Username, Role: role}, nil
}

// GetExpiresAtTime returns the exp claim, or the zero time when absent
func (c *Claims) GetExpiresAtTime() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

// GetRemainingTTL is how long the token stays valid, never negative
func (c *Claims) GetRemainingTTL() time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	return max(time.Until(c.ExpiresAt.Time), 0)
}
