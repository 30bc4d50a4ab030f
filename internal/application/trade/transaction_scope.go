package trade

import (
	"context"

	"github.com/shopfront/backend/internal/domain/partner"
	"github.com/shopfront/backend/internal/domain/trade"
)

// TransactionScope runs an assembly as one unit of work. If fn returns an
// error every write made through repos is rolled back.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the repositories an assembly writes
// through. All of them share the scope's transaction.
type TransactionalRepositories interface {
	OrderRepo() trade.OrderRepository
	BillRepo() trade.BuyingBillRepository
	ClientRepo() partner.ClientRepository
}

// NoOpTransactionScope runs fn against plain repositories, without a
// transaction. Used in tests.
type NoOpTransactionScope struct {
	orderRepo  trade.OrderRepository
	billRepo   trade.BuyingBillRepository
	clientRepo partner.ClientRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope
func NewNoOpTransactionScope(
	orderRepo trade.OrderRepository,
	billRepo trade.BuyingBillRepository,
	clientRepo partner.ClientRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		orderRepo:  orderRepo,
		billRepo:   billRepo,
		clientRepo: clientRepo,
	}
}

// Execute calls fn directly
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *NoOpTransactionScope) OrderRepo() trade.OrderRepository     { return s.orderRepo }
func (s *NoOpTransactionScope) BillRepo() trade.BuyingBillRepository { return s.billRepo }
func (s *NoOpTransactionScope) ClientRepo() partner.ClientRepository { return s.clientRepo }

var (
	_ TransactionScope          = (*NoOpTransactionScope)(nil)
	_ TransactionalRepositories = (*NoOpTransactionScope)(nil)
)
