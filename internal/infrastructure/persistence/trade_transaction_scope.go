package persistence

import (
	"context"

	apptrade "github.com/shopfront/backend/internal/application/trade"
	"github.com/shopfront/backend/internal/domain/partner"
	"github.com/shopfront/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormTransactionScope runs order and bill assemblies in one GORM transaction.
// Returning an error from fn rolls back every write made through its repos.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn inside a database transaction.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos apptrade.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTradeRepositories{tx: tx})
	})
}

// gormTradeRepositories hands out repositories bound to the open transaction.
type gormTradeRepositories struct {
	tx *gorm.DB
}

func (r *gormTradeRepositories) OrderRepo() trade.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

func (r *gormTradeRepositories) BillRepo() trade.BuyingBillRepository {
	return NewGormBuyingBillRepository(r.tx)
}

func (r *gormTradeRepositories) ClientRepo() partner.ClientRepository {
	return NewGormClientRepository(r.tx)
}

var (
	_ apptrade.TransactionScope          = (*GormTransactionScope)(nil)
	_ apptrade.TransactionalRepositories = (*gormTradeRepositories)(nil)
)
