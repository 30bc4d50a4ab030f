package marketing

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/marketing"
	"github.com/shopfront/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// NewsletterService manages newsletter subscriptions
type NewsletterService struct {
	repo   marketing.SubscriptionRepository
	logger *zap.Logger
}

// NewNewsletterService creates a new NewsletterService
func NewNewsletterService(repo marketing.SubscriptionRepository, logger *zap.Logger) *NewsletterService {
	return &NewsletterService{repo: repo, logger: logger}
}

// Subscribe adds email to the list
func (s *NewsletterService) Subscribe(ctx context.Context, req SubscribeRequest) (*SubscriptionResponse, error) {
	sub, err := marketing.NewSubscription(req.Email)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByEmail(ctx, sub.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, marketing.ErrAlreadySubscribed
	}

	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, err
	}

	logger.FromContextOr(ctx, s.logger).Info("Newsletter subscription added",
		zap.String("subscription_id", sub.ID.String()))

	response := ToSubscriptionResponse(sub)
	return &response, nil
}

// List returns a page of subscriptions, newest first by default
func (s *NewsletterService) List(ctx context.Context, filter PageFilter) ([]SubscriptionResponse, int64, error) {
	domainFilter := filter.toDomain()

	subs, err := s.repo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	out := make([]SubscriptionResponse, len(subs))
	for i := range subs {
		out[i] = ToSubscriptionResponse(&subs[i])
	}
	return out, total, nil
}

// Delete removes a subscription
func (s *NewsletterService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
