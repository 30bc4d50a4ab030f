package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/identity"
)

// UserModel is the persistence model for the User aggregate root
type UserModel struct {
	AggregateModel
	Username     string     `gorm:"type:varchar(150);not null;uniqueIndex"`
	Email        string     `gorm:"type:varchar(254);index"`
	PasswordHash string     `gorm:"type:varchar(255);not null"`
	Role         string     `gorm:"type:varchar(20);not null;default:'customer';index"`
	FullName     string     `gorm:"type:varchar(150)"`
	PhoneNumber  string     `gorm:"type:varchar(20)"`
	Address      string     `gorm:"type:varchar(255)"`
	IsActive     bool       `gorm:"not null;default:true"`
	LastLoginAt  *time.Time `gorm:"type:timestamptz"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Username:          m.Username,
		Email:             m.Email,
		PasswordHash:      m.PasswordHash,
		Role:              identity.Role(m.Role),
		FullName:          m.FullName,
		PhoneNumber:       m.PhoneNumber,
		Address:           m.Address,
		IsActive:          m.IsActive,
		LastLoginAt:       m.LastLoginAt,
	}
}

// UserModelFromDomain creates a persistence model from a domain User
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		FullName:     u.FullName,
		PhoneNumber:  u.PhoneNumber,
		Address:      u.Address,
		IsActive:     u.IsActive,
		LastLoginAt:  u.LastLoginAt,
	}
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	return m
}

// RefreshTokenModel is a row of the refresh token registry
type RefreshTokenModel struct {
	JTI       string     `gorm:"column:jti;type:varchar(64);primaryKey"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	ExpiresAt time.Time  `gorm:"not null;index"`
	RevokedAt *time.Time `gorm:"type:timestamptz"`
	CreatedAt time.Time  `gorm:"not null"`
}

// TableName returns the table name for GORM
func (RefreshTokenModel) TableName() string {
	return "refresh_tokens"
}

// ToDomain converts the row to a domain IssuedToken
func (m *RefreshTokenModel) ToDomain() *identity.IssuedToken {
	return &identity.IssuedToken{
		JTI:       m.JTI,
		UserID:    m.UserID,
		ExpiresAt: m.ExpiresAt,
		RevokedAt: m.RevokedAt,
		CreatedAt: m.CreatedAt,
	}
}

// RefreshTokenModelFromDomain creates a row from a domain IssuedToken
func RefreshTokenModelFromDomain(t *identity.IssuedToken) *RefreshTokenModel {
	return &RefreshTokenModel{
		JTI:       t.JTI,
		UserID:    t.UserID,
		ExpiresAt: t.ExpiresAt,
		RevokedAt: t.RevokedAt,
		CreatedAt: t.CreatedAt,
	}
}
