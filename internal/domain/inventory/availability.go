package inventory

import (
	"context"

	"github.com/google/uuid"
)

// StockTotals holds the ledger sums for one product
type StockTotals struct {
	Received int64 // sum of ProductInBill.quantity
	Sold     int64 // sum of ProductInOrder.quantity
}

// Available returns received minus sold, clamped at zero. Negative stock is
// never reported even when the ledger has oversold the product.
func (t StockTotals) Available() int64 {
	if t.Sold >= t.Received {
		return 0
	}
	return t.Received - t.Sold
}

// Oversold reports whether more units were sold than received
func (t StockTotals) Oversold() bool {
	return t.Sold > t.Received
}

// LedgerReader aggregates the two ledger tables. Quantities are derived on
// every call and never cached.
type LedgerReader interface {
	// Totals returns the sums for one product. A product without ledger rows has zero totals.
	Totals(ctx context.Context, productID uuid.UUID) (StockTotals, error)

	// TotalsFor returns the sums for many products with one grouped query per
	// ledger table. Every requested id is present in the result.
	TotalsFor(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]StockTotals, error)

	// HasEntries reports whether any ProductInBill or ProductInOrder row references the product
	HasEntries(ctx context.Context, productID uuid.UUID) (bool, error)
}
