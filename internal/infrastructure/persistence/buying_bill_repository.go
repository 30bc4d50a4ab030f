package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/shared"
	"github.com/shopfront/backend/internal/domain/trade"
	"github.com/shopfront/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBuyingBillRepository implements BuyingBillRepository using GORM
type GormBuyingBillRepository struct {
	db *gorm.DB
}

// NewGormBuyingBillRepository creates a new GormBuyingBillRepository
func NewGormBuyingBillRepository(db *gorm.DB) *GormBuyingBillRepository {
	return &GormBuyingBillRepository{db: db}
}

func (r *GormBuyingBillRepository) withItems(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC").Order("id ASC")
	})
}

// FindByID finds a buying bill by its ID with its items
func (r *GormBuyingBillRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.BuyingBill, error) {
	var model models.BuyingBillModel
	if err := r.withItems(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all buying bills matching the filter
func (r *GormBuyingBillRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.BuyingBill, error) {
	var rows []models.BuyingBillModel
	query := r.applyFilter(r.withItems(ctx).Model(&models.BuyingBillModel{}), filter)
	query = applySortAndPage(query, filter, BuyingBillSortFields)

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	bills := make([]trade.BuyingBill, len(rows))
	for i := range rows {
		bills[i] = *rows[i].ToDomain()
	}
	return bills, nil
}

// Count counts buying bills matching the filter
func (r *GormBuyingBillRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.BuyingBillModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByBillNumber checks if another bill uses the business number
func (r *GormBuyingBillRepository) ExistsByBillNumber(ctx context.Context, number string, excludeID *uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.BuyingBillModel{}).Where("bill_number = ?", number)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save upserts the bill, deletes every ProductInBill row it owns and inserts
// the current ones
func (r *GormBuyingBillRepository) Save(ctx context.Context, bill *trade.BuyingBill) error {
	model, items := models.BuyingBillModelFromDomain(bill)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(model).Error; err != nil {
			return conflictOn(err, trade.ErrBillNumberTaken)
		}
		if err := tx.Where("bill_id = ?", model.ID).Delete(&models.BillItemModel{}).Error; err != nil {
			return err
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes the bill's items, then the bill
func (r *GormBuyingBillRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("bill_id = ?", id).Delete(&models.BillItemModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.BuyingBillModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

func (r *GormBuyingBillRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("LOWER(bill_number) LIKE ?", likePattern(filter.Search))
	}

	for key, value := range filter.Filters {
		switch key {
		case "supplier_id":
			query = query.Where("supplier_id = ?", value)
		case "is_paid":
			query = query.Where("is_paid = ?", value)
		}
	}
	return query
}

// Ensure GormBuyingBillRepository implements BuyingBillRepository
var _ trade.BuyingBillRepository = (*GormBuyingBillRepository)(nil)
