package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/shared"
)

// OrderRepository defines persistence for orders and their ProductInOrder rows.
//
// Filter keys understood by FindAll/Count: status, client_id, user_id.
type OrderRepository interface {
	// FindByID loads the order with its items
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save upserts the order row, deletes all of its items and inserts the current ones
	Save(ctx context.Context, order *Order) error

	// Delete removes the order's items first, then the order
	Delete(ctx context.Context, id uuid.UUID) error
}

// BuyingBillRepository defines persistence for buying bills and their ProductInBill rows.
//
// Filter keys understood by FindAll/Count: supplier_id, is_paid.
type BuyingBillRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BuyingBill, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]BuyingBill, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByBillNumber reports whether another bill uses number. excludeID is ignored when nil.
	ExistsByBillNumber(ctx context.Context, number string, excludeID *uuid.UUID) (bool, error)

	// Save upserts the bill row, deletes all of its items and inserts the current ones
	Save(ctx context.Context, bill *BuyingBill) error

	// Delete removes the bill's items first, then the bill
	Delete(ctx context.Context, id uuid.UUID) error
}
