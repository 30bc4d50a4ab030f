package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/shared"
)

// ClientRepository defines persistence for clients
type ClientRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Client, error)

	// FindByExactName returns the first client whose name equals name exactly,
	// or shared.ErrNotFound.
	FindByExactName(ctx context.Context, name string) (*Client, error)

	FindAll(ctx context.Context, filter shared.Filter) ([]Client, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	ExistsByEmail(ctx context.Context, email string, excludeID *uuid.UUID) (bool, error)
	Save(ctx context.Context, client *Client) error

	// Delete detaches the client from its orders, then removes it
	Delete(ctx context.Context, id uuid.UUID) error
}

// SupplierRepository defines persistence for suppliers
type SupplierRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Supplier, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Supplier, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	ExistsByEmail(ctx context.Context, email string, excludeID *uuid.UUID) (bool, error)
	Save(ctx context.Context, supplier *Supplier) error

	// Delete detaches the supplier from its buying bills, then removes it
	Delete(ctx context.Context, id uuid.UUID) error
}
