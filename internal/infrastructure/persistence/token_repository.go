package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/shopfront/backend/internal/domain/identity"
	"github.com/shopfront/backend/internal/domain/shared"
	"github.com/shopfront/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormTokenRepository is the refresh token registry backed by the refresh_tokens table
type GormTokenRepository struct {
	db *gorm.DB
}

// NewGormTokenRepository creates a new GormTokenRepository
func NewGormTokenRepository(db *gorm.DB) *GormTokenRepository {
	return &GormTokenRepository{db: db}
}

// Create registers an issued refresh token
func (r *GormTokenRepository) Create(ctx context.Context, token *identity.IssuedToken) error {
	return r.db.WithContext(ctx).Create(models.RefreshTokenModelFromDomain(token)).Error
}

// FindByJTI loads a registry entry
func (r *GormTokenRepository) FindByJTI(ctx context.Context, jti string) (*identity.IssuedToken, error) {
	var model models.RefreshTokenModel
	if err := r.db.WithContext(ctx).First(&model, "jti = ?", jti).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// MarkRevoked stores RevokedAt on a row that is still live. The check and
// the write are one statement, so of two concurrent callers exactly one wins.
func (r *GormTokenRepository) MarkRevoked(ctx context.Context, token *identity.IssuedToken) error {
	db := r.db.WithContext(ctx)
	result := db.Model(&models.RefreshTokenModel{}).
		Where("jti = ? AND revoked_at IS NULL", token.JTI).
		Update("revoked_at", token.RevokedAt)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var exists int64
	if err := db.Model(&models.RefreshTokenModel{}).Where("jti = ?", token.JTI).Count(&exists).Error; err != nil {
		return err
	}
	if exists == 0 {
		return shared.ErrNotFound
	}
	return identity.ErrTokenAlreadyRevoked
}

// DeleteExpired removes entries that expired before cutoff
func (r *GormTokenRepository) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("expires_at < ?", cutoff).Delete(&models.RefreshTokenModel{})
	return result.RowsAffected, result.Error
}

// Ensure GormTokenRepository implements TokenRepository
var _ identity.TokenRepository = (*GormTokenRepository)(nil)
