package partner

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/partner"
	"github.com/shopfront/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// ClientService handles client-related business operations
type ClientService struct {
	clientRepo partner.ClientRepository
	logger     *zap.Logger
}

// NewClientService creates a new ClientService
func NewClientService(clientRepo partner.ClientRepository, logger *zap.Logger) *ClientService {
	return &ClientService{
		clientRepo: clientRepo,
		logger:     logger,
	}
}

// Create creates a new client. Emails are unique among clients.
func (s *ClientService) Create(ctx context.Context, req PartnerRequest) (*PartnerResponse, error) {
	client, err := partner.NewClient(req.profile())
	if err != nil {
		return nil, err
	}
	if err := ensureEmailFree(ctx, s.clientRepo.ExistsByEmail, client.Email, nil); err != nil {
		return nil, err
	}

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}

	response := ToClientResponse(client)
	return &response, nil
}

// GetByID retrieves a client by ID
func (s *ClientService) GetByID(ctx context.Context, id uuid.UUID) (*PartnerResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToClientResponse(client)
	return &response, nil
}

// List retrieves clients with search and pagination
func (s *ClientService) List(ctx context.Context, filter PartnerListFilter) ([]PartnerResponse, int64, error) {
	domainFilter := filter.toDomain()

	clients, err := s.clientRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.clientRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	out := make([]PartnerResponse, len(clients))
	for i := range clients {
		out[i] = ToClientResponse(&clients[i])
	}
	return out, total, nil
}

// Update replaces a client's profile. Orders already linked keep the link
// even when the name changes.
func (s *ClientService) Update(ctx context.Context, id uuid.UUID, req PartnerRequest) (*PartnerResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := client.Update(req.profile()); err != nil {
		return nil, err
	}
	if err := ensureEmailFree(ctx, s.clientRepo.ExistsByEmail, client.Email, &client.ID); err != nil {
		return nil, err
	}

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}

	response := ToClientResponse(client)
	return &response, nil
}

// Delete detaches the client from its orders and removes it
func (s *ClientService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.clientRepo.Delete(ctx, id); err != nil {
		return err
	}
	logger.FromContextOr(ctx, s.logger).Info("Client deleted", zap.String("client_id", id.String()))
	return nil
}

type emailExistsFunc func(ctx context.Context, email string, excludeID *uuid.UUID) (bool, error)

func ensureEmailFree(ctx context.Context, exists emailExistsFunc, email string, excludeID *uuid.UUID) error {
	taken, err := exists(ctx, strings.ToLower(email), excludeID)
	if err != nil {
		return err
	}
	if taken {
		return partner.ErrEmailTaken
	}
	return nil
}
