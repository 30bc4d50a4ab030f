package marketing

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/marketing"
	"github.com/shopfront/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// ContactService stores messages from the public contact form
type ContactService struct {
	repo   marketing.ContactRepository
	logger *zap.Logger
}

// NewContactService creates a new ContactService
func NewContactService(repo marketing.ContactRepository, logger *zap.Logger) *ContactService {
	return &ContactService{repo: repo, logger: logger}
}

// Create records a new open message
func (s *ContactService) Create(ctx context.Context, req ContactRequest) (*ContactResponse, error) {
	msg, err := marketing.NewContactMessage(req.Name, req.Email, req.Message)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, msg); err != nil {
		return nil, err
	}

	logger.FromContextOr(ctx, s.logger).Info("Contact message received",
		zap.String("contact_id", msg.ID.String()))

	response := ToContactResponse(msg)
	return &response, nil
}

// GetByID returns one message
func (s *ContactService) GetByID(ctx context.Context, id uuid.UUID) (*ContactResponse, error) {
	msg, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToContactResponse(msg)
	return &response, nil
}

// List returns a page of messages, optionally restricted to one state
func (s *ContactService) List(ctx context.Context, filter ContactListFilter) ([]ContactResponse, int64, error) {
	domainFilter := PageFilter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
	}.toDomain()
	if filter.State != "" {
		domainFilter.Filters["etat"] = filter.State
	}

	msgs, err := s.repo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	out := make([]ContactResponse, len(msgs))
	for i := range msgs {
		out[i] = ToContactResponse(&msgs[i])
	}
	return out, total, nil
}

// SetState closes or reopens a message
func (s *ContactService) SetState(ctx context.Context, id uuid.UUID, req ContactStateRequest) (*ContactResponse, error) {
	msg, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := msg.SetState(marketing.ContactState(req.State)); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, msg); err != nil {
		return nil, err
	}

	logger.FromContextOr(ctx, s.logger).Info("Contact message state changed",
		zap.String("contact_id", msg.ID.String()),
		zap.String("etat", string(msg.State)))

	response := ToContactResponse(msg)
	return &response, nil
}

// Delete removes a message
func (s *ContactService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
