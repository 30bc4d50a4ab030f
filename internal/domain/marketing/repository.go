package marketing

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/shared"
)

// SubscriptionRepository persists newsletter subscriptions
type SubscriptionRepository interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Subscription, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Create(ctx context.Context, sub *Subscription) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ContactRepository persists contact messages.
//
// Filter keys understood by FindAll/Count: etat.
type ContactRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ContactMessage, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]ContactMessage, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, msg *ContactMessage) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// BannerRepository persists carousel banners.
//
// Filter keys understood by FindAll/Count: show.
type BannerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Banner, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Banner, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, banner *Banner) error
	Delete(ctx context.Context, id uuid.UUID) error
}
