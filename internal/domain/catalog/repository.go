package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/shared"
)

// CategoryRepository defines persistence for categories
type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	FindBySlug(ctx context.Context, slug string) (*Category, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Category, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByName reports whether another category already uses name.
	// excludeID is ignored when nil.
	ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error)

	// CountProducts counts products that reference the category
	CountProducts(ctx context.Context, categoryID uuid.UUID) (int64, error)

	Save(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductRepository defines persistence for products and their owned rows.
//
// Filter keys understood by FindAll/Count: category_id, is_active, in_stock, promo.
// Filter.Search matches name or reference.
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save upserts the product and rewrites its variants and gallery
	Save(ctx context.Context, product *Product) error

	// Delete removes gallery and variants first, then the product row
	Delete(ctx context.Context, id uuid.UUID) error
}
