package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopfront/backend/internal/domain/identity"
	"github.com/shopfront/backend/internal/domain/shared"
	"github.com/shopfront/backend/internal/infrastructure/auth"
	"github.com/shopfront/backend/internal/infrastructure/logger"
	"github.com/shopfront/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// AuthService handles login, token rotation, logout and signup
type AuthService struct {
	userRepo        identity.UserRepository
	tokenRepo       identity.TokenRepository
	jwtService      *auth.JWTService
	blacklist       auth.TokenBlacklist
	logger          *zap.Logger
	businessMetrics *telemetry.BusinessMetrics
	now             func() time.Time
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	tokenRepo identity.TokenRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		logger:     logger,
		now:        time.Now,
	}
}

// SetBusinessMetrics sets the business metrics recorder
func (s *AuthService) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.businessMetrics = bm
}

// Authenticate checks credentials and returns the matching principal. Every
// failure is reported as INVALID_CREDENTIALS.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (identity.Principal, error) {
	user, err := s.authenticate(ctx, username, password)
	if err != nil {
		return identity.Anonymous(), err
	}
	return user.Principal(), nil
}

func (s *AuthService) authenticate(ctx context.Context, username, password string) (*identity.User, error) {
	log := logger.FromContextOr(ctx, s.logger)
	username = strings.ToLower(strings.TrimSpace(username))

	user, err := s.userRepo.FindByUsername(ctx, username)
	if errors.Is(err, shared.ErrNotFound) {
		log.Warn("Login for unknown user", zap.String("username", username))
		return nil, identity.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if !user.IsActive {
		log.Warn("Login for inactive user", zap.String("username", username))
		return nil, identity.ErrInvalidCredentials
	}
	if !user.VerifyPassword(password) {
		log.Warn("Invalid password", zap.String("username", username))
		return nil, identity.ErrInvalidCredentials
	}
	return user, nil
}

// Login authenticates the user and issues an access/refresh pair. The
// refresh token is registered so it can later be revoked.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "auth", "login")
	defer span.End()

	user, err := s.authenticate(ctx, req.Username, req.Password)
	if err != nil {
		s.businessMetrics.RecordLogin(ctx, telemetry.LoginFailure)
		telemetry.RecordError(span, err)
		return nil, err
	}

	pair, err := s.issue(ctx, user.Principal())
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	user.RecordLogin()
	if err := s.userRepo.Update(ctx, user); err != nil {
		logger.FromContextOr(ctx, s.logger).Error("Failed to record last login", zap.Error(err))
	}

	s.businessMetrics.RecordLogin(ctx, telemetry.LoginSuccess)
	telemetry.SetAttributes(span, telemetry.SpanAttrUserID, user.ID.String())
	logger.FromContextOr(ctx, s.logger).Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)))

	return toTokenResponse(pair, user), nil
}

// Refresh rotates a refresh token: the presented one is revoked and a new
// pair is issued.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, identity.ErrTokenInvalid
	}

	token, err := s.tokenRepo.FindByJTI(ctx, claims.ID)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, identity.ErrTokenNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load refresh token: %w", err)
	}
	if !token.IsUsable(s.now()) {
		logger.FromContextOr(ctx, s.logger).Warn("Revoked refresh token presented",
			zap.String("jti", token.JTI),
			zap.String("user_id", token.UserID.String()))
		return nil, identity.ErrTokenInvalid
	}

	user, err := s.userRepo.FindByID(ctx, token.UserID)
	if err != nil || !user.IsActive {
		return nil, identity.ErrTokenInvalid
	}

	if err := token.Revoke(s.now()); err != nil {
		return nil, err
	}
	if err := s.tokenRepo.MarkRevoked(ctx, token); err != nil {
		if errors.Is(err, identity.ErrTokenAlreadyRevoked) {
			// a concurrent refresh rotated it first
			return nil, identity.ErrTokenInvalid
		}
		return nil, fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	pair, err := s.issue(ctx, user.Principal())
	if err != nil {
		return nil, err
	}
	return toTokenResponse(pair, nil), nil
}

// Revoke marks a refresh token revoked. It fails with TOKEN_INVALID for an
// unparsable or expired token, TOKEN_NOT_FOUND when the jti was never
// issued and TOKEN_ALREADY_REVOKED on a second call.
func (s *AuthService) Revoke(ctx context.Context, principal identity.Principal, refreshToken string) error {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return identity.ErrTokenInvalid
	}

	token, err := s.tokenRepo.FindByJTI(ctx, claims.ID)
	if errors.Is(err, shared.ErrNotFound) {
		return identity.ErrTokenNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load refresh token: %w", err)
	}
	if !principal.IsAnonymous() && !principal.IsAdmin() && token.UserID != principal.UserID {
		return shared.ErrForbidden
	}

	if err := token.Revoke(s.now()); err != nil {
		return err
	}
	err = s.tokenRepo.MarkRevoked(ctx, token)
	switch {
	case err == nil, errors.Is(err, identity.ErrTokenAlreadyRevoked):
		return err
	case errors.Is(err, shared.ErrNotFound):
		return identity.ErrTokenNotFound
	}
	return fmt.Errorf("failed to revoke refresh token: %w", err)
}

// Logout revokes the refresh token and blacklists the access token the
// caller authenticated with until it expires.
func (s *AuthService) Logout(ctx context.Context, session Session, refreshToken string) error {
	if err := s.Revoke(ctx, session.Principal, refreshToken); err != nil {
		return err
	}

	if session.TokenID != "" {
		ttl := session.ExpiresAt.Sub(s.now())
		if err := s.blacklist.AddToBlacklist(ctx, session.TokenID, ttl); err != nil {
			// the refresh token is already revoked, the access token just lives out its TTL
			logger.FromContextOr(ctx, s.logger).Error("Failed to blacklist access token", zap.Error(err))
		}
	}

	logger.FromContextOr(ctx, s.logger).Info("User logged out",
		zap.String("user_id", session.Principal.UserID.String()))
	return nil
}

// CurrentPrincipal verifies an access token and returns the session it
// belongs to. Blacklisted tokens are rejected.
func (s *AuthService) CurrentPrincipal(ctx context.Context, accessToken string) (*Session, error) {
	claims, err := s.jwtService.ValidateAccessToken(accessToken)
	if errors.Is(err, auth.ErrExpiredToken) {
		return nil, identity.ErrTokenExpired
	}
	if err != nil {
		return nil, identity.ErrTokenInvalid
	}

	blocked, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	if blocked {
		return nil, identity.ErrTokenInvalid
	}

	principal, err := claims.Principal()
	if err != nil {
		return nil, identity.ErrTokenInvalid
	}
	return &Session{
		Principal: principal,
		TokenID:   claims.ID,
		ExpiresAt: claims.GetExpiresAtTime(),
	}, nil
}

// Signup creates a user. Anonymous and customer callers always get a
// customer account; asking for admin requires an admin principal.
func (s *AuthService) Signup(ctx context.Context, principal identity.Principal, req SignupRequest) (*UserResponse, error) {
	role := identity.RoleCustomer
	if req.Role != "" {
		role = identity.Role(req.Role)
	}
	if role == identity.RoleAdmin {
		if err := principal.RequireAdmin(); err != nil {
			return nil, shared.ErrForbidden
		}
	}

	user, err := s.createUser(ctx, req, role)
	if err != nil {
		return nil, err
	}

	logger.FromContextOr(ctx, s.logger).Info("User signed up",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)))

	response := ToUserResponse(user)
	return &response, nil
}

func (s *AuthService) createUser(ctx context.Context, req SignupRequest, role identity.Role) (*identity.User, error) {
	user, err := identity.NewUser(req.Username, req.Password, role)
	if err != nil {
		return nil, err
	}
	if err := user.SetProfile(identity.Profile{
		Email:       req.Email,
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
	}); err != nil {
		return nil, err
	}

	exists, err := s.userRepo.ExistsByUsername(ctx, user.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, identity.ErrUsernameTaken
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// EnsureAdmin creates an admin account named username unless a user with
// that name already exists. It reports whether an account was created.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	user, err := s.createUser(ctx, SignupRequest{Username: username, Password: password}, identity.RoleAdmin)
	if errors.Is(err, identity.ErrUsernameTaken) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	logger.FromContextOr(ctx, s.logger).Info("Admin account created",
		zap.String("user_id", user.ID.String()))
	return true, nil
}

// Me returns the profile of the calling user
func (s *AuthService) Me(ctx context.Context, principal identity.Principal) (*UserResponse, error) {
	if err := principal.RequireAuthenticated(); err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	response := ToUserResponse(user)
	return &response, nil
}

// PurgeExpiredTokens drops registry rows that expired more than a day ago
func (s *AuthService) PurgeExpiredTokens(ctx context.Context) (int64, error) {
	return s.tokenRepo.DeleteExpired(ctx, s.now().Add(-24*time.Hour))
}

func (s *AuthService) issue(ctx context.Context, principal identity.Principal) (*auth.TokenPair, error) {
	pair, err := s.jwtService.GenerateTokenPair(principal)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}
	issued := identity.NewIssuedToken(pair.RefreshJTI, principal.UserID, pair.RefreshTokenExpiresAt)
	if err := s.tokenRepo.Create(ctx, issued); err != nil {
		return nil, fmt.Errorf("failed to register refresh token: %w", err)
	}
	return pair, nil
}
