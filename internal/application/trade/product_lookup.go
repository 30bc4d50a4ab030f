package trade

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/catalog"
	"github.com/shopfront/backend/internal/domain/trade"
)

// ProductFinder resolves the products referenced by ledger lines
type ProductFinder interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error)
}

// bindProducts checks that every line's product exists and copies its name
// and reference onto the line. It runs before any write.
func bindProducts(ctx context.Context, finder ProductFinder, lines []trade.Line) error {
	ids := trade.ProductIDs(lines)
	if len(ids) == 0 {
		return nil
	}
	products, err := finder.FindByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to load products: %w", err)
	}
	refs := make(map[uuid.UUID]trade.ProductRef, len(products))
	for _, p := range products {
		refs[p.ID] = trade.ProductRef{Name: p.Name, Reference: p.Reference}
	}
	return trade.BindProducts(lines, refs)
}
