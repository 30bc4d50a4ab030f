package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/inventory"
	"github.com/shopfront/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormLedgerReader derives stock figures from the order_items and bill_items tables
type GormLedgerReader struct {
	db *gorm.DB
}

// NewGormLedgerReader creates a new GormLedgerReader
func NewGormLedgerReader(db *gorm.DB) *GormLedgerReader {
	return &GormLedgerReader{db: db}
}

type productQuantity struct {
	ProductID uuid.UUID
	Total     int64
}

// Totals sums both ledgers for one product
func (r *GormLedgerReader) Totals(ctx context.Context, productID uuid.UUID) (inventory.StockTotals, error) {
	var totals inventory.StockTotals

	if err := r.db.WithContext(ctx).Model(&models.BillItemModel{}).
		Select("COALESCE(SUM(quantity), 0)").
		Where("product_id = ?", productID).
		Scan(&totals.Received).Error; err != nil {
		return inventory.StockTotals{}, err
	}
	if err := r.db.WithContext(ctx).Model(&models.OrderItemModel{}).
		Select("COALESCE(SUM(quantity), 0)").
		Where("product_id = ?", productID).
		Scan(&totals.Sold).Error; err != nil {
		return inventory.StockTotals{}, err
	}
	return totals, nil
}

// TotalsFor sums both ledgers for many products, one grouped query per table
func (r *GormLedgerReader) TotalsFor(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]inventory.StockTotals, error) {
	result := make(map[uuid.UUID]inventory.StockTotals, len(productIDs))
	if len(productIDs) == 0 {
		return result, nil
	}
	for _, id := range productIDs {
		result[id] = inventory.StockTotals{}
	}

	received, err := r.groupedSums(ctx, &models.BillItemModel{}, productIDs)
	if err != nil {
		return nil, err
	}
	sold, err := r.groupedSums(ctx, &models.OrderItemModel{}, productIDs)
	if err != nil {
		return nil, err
	}

	for _, row := range received {
		t := result[row.ProductID]
		t.Received = row.Total
		result[row.ProductID] = t
	}
	for _, row := range sold {
		t := result[row.ProductID]
		t.Sold = row.Total
		result[row.ProductID] = t
	}
	return result, nil
}

func (r *GormLedgerReader) groupedSums(ctx context.Context, model any, productIDs []uuid.UUID) ([]productQuantity, error) {
	var rows []productQuantity
	err := r.db.WithContext(ctx).Model(model).
		Select("product_id, COALESCE(SUM(quantity), 0) AS total").
		Where("product_id IN ?", productIDs).
		Group("product_id").
		Scan(&rows).Error
	return rows, err
}

// HasEntries reports whether any ledger row references the product
func (r *GormLedgerReader) HasEntries(ctx context.Context, productID uuid.UUID) (bool, error) {
	for _, model := range []any{&models.BillItemModel{}, &models.OrderItemModel{}} {
		var count int64
		if err := r.db.WithContext(ctx).Model(model).
			Where("product_id = ?", productID).
			Count(&count).Error; err != nil {
			return false, err
		}
		if count > 0 {
			return true, nil
		}
	}
	return false, nil
}

// Ensure GormLedgerReader implements LedgerReader
var _ inventory.LedgerReader = (*GormLedgerReader)(nil)
