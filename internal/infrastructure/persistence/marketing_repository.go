package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/marketing"
	"github.com/shopfront/backend/internal/domain/shared"
	"github.com/shopfront/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSubscriptionRepository implements SubscriptionRepository using GORM
type GormSubscriptionRepository struct {
	db *gorm.DB
}

// NewGormSubscriptionRepository creates a new GormSubscriptionRepository
func NewGormSubscriptionRepository(db *gorm.DB) *GormSubscriptionRepository {
	return &GormSubscriptionRepository{db: db}
}

// ExistsByEmail checks if the email is already subscribed
func (r *GormSubscriptionRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.SubscriptionModel{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindAll lists subscriptions
func (r *GormSubscriptionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]marketing.Subscription, error) {
	var rows []models.SubscriptionModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.SubscriptionModel{}), filter)
	query = applySortAndPage(query, filter, MarketingSortFields)

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	subs := make([]marketing.Subscription, len(rows))
	for i := range rows {
		subs[i] = *rows[i].ToDomain()
	}
	return subs, nil
}

// Count counts subscriptions
func (r *GormSubscriptionRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.SubscriptionModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create inserts a subscription
func (r *GormSubscriptionRepository) Create(ctx context.Context, sub *marketing.Subscription) error {
	err := r.db.WithContext(ctx).Create(models.SubscriptionModelFromDomain(sub)).Error
	return conflictOn(err, marketing.ErrAlreadySubscribed)
}

// Delete removes a subscription
func (r *GormSubscriptionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.SubscriptionModel{}, id)
}

func (r *GormSubscriptionRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("LOWER(email) LIKE ?", likePattern(filter.Search))
	}
	return query
}

// GormContactRepository implements ContactRepository using GORM
type GormContactRepository struct {
	db *gorm.DB
}

// NewGormContactRepository creates a new GormContactRepository
func NewGormContactRepository(db *gorm.DB) *GormContactRepository {
	return &GormContactRepository{db: db}
}

// FindByID finds a contact message by ID
func (r *GormContactRepository) FindByID(ctx context.Context, id uuid.UUID) (*marketing.ContactMessage, error) {
	var model models.ContactMessageModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists contact messages
func (r *GormContactRepository) FindAll(ctx context.Context, filter shared.Filter) ([]marketing.ContactMessage, error) {
	var rows []models.ContactMessageModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ContactMessageModel{}), filter)
	query = applySortAndPage(query, filter, MarketingSortFields)

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	msgs := make([]marketing.ContactMessage, len(rows))
	for i := range rows {
		msgs[i] = *rows[i].ToDomain()
	}
	return msgs, nil
}

// Count counts contact messages
func (r *GormContactRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ContactMessageModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a contact message
func (r *GormContactRepository) Save(ctx context.Context, msg *marketing.ContactMessage) error {
	return r.db.WithContext(ctx).Save(models.ContactMessageModelFromDomain(msg)).Error
}

// Delete removes a contact message
func (r *GormContactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.ContactMessageModel{}, id)
}

func (r *GormContactRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern)
	}
	if etat, ok := filter.Filters["etat"]; ok {
		query = query.Where("etat = ?", etat)
	}
	return query
}

// GormBannerRepository implements BannerRepository using GORM
type GormBannerRepository struct {
	db *gorm.DB
}

// NewGormBannerRepository creates a new GormBannerRepository
func NewGormBannerRepository(db *gorm.DB) *GormBannerRepository {
	return &GormBannerRepository{db: db}
}

// FindByID finds a banner by ID
func (r *GormBannerRepository) FindByID(ctx context.Context, id uuid.UUID) (*marketing.Banner, error) {
	var model models.BannerModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists banners
func (r *GormBannerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]marketing.Banner, error) {
	var rows []models.BannerModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.BannerModel{}), filter)
	query = applySortAndPage(query, filter, MarketingSortFields)

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	banners := make([]marketing.Banner, len(rows))
	for i := range rows {
		banners[i] = *rows[i].ToDomain()
	}
	return banners, nil
}

// Count counts banners
func (r *GormBannerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.BannerModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a banner
func (r *GormBannerRepository) Save(ctx context.Context, banner *marketing.Banner) error {
	return r.db.WithContext(ctx).Save(models.BannerModelFromDomain(banner)).Error
}

// Delete removes a banner row
func (r *GormBannerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.BannerModel{}, id)
}

func (r *GormBannerRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if show, ok := filter.Filters["show"]; ok {
		query = query.Where("show = ?", show)
	}
	return query
}

func deleteByID(ctx context.Context, db *gorm.DB, model any, id uuid.UUID) error {
	result := db.WithContext(ctx).Delete(model, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var (
	_ marketing.SubscriptionRepository = (*GormSubscriptionRepository)(nil)
	_ marketing.ContactRepository      = (*GormContactRepository)(nil)
	_ marketing.BannerRepository       = (*GormBannerRepository)(nil)
)
