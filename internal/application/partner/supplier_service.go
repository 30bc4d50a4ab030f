package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/partner"
	"github.com/shopfront/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// SupplierService handles supplier (fournisseur) operations
type SupplierService struct {
	supplierRepo partner.SupplierRepository
	logger       *zap.Logger
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(supplierRepo partner.SupplierRepository, logger *zap.Logger) *SupplierService {
	return &SupplierService{
		supplierRepo: supplierRepo,
		logger:       logger,
	}
}

// Create creates a new supplier. Emails are unique among suppliers.
func (s *SupplierService) Create(ctx context.Context, req PartnerRequest) (*PartnerResponse, error) {
	supplier, err := partner.NewSupplier(req.profile())
	if err != nil {
		return nil, err
	}
	if err := ensureEmailFree(ctx, s.supplierRepo.ExistsByEmail, supplier.Email, nil); err != nil {
		return nil, err
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	response := ToSupplierResponse(supplier)
	return &response, nil
}

// FindByID returns the domain supplier; bills use it to check references
func (s *SupplierService) FindByID(ctx context.Context, id uuid.UUID) (*partner.Supplier, error) {
	return s.supplierRepo.FindByID(ctx, id)
}

// GetByID retrieves a supplier by ID
func (s *SupplierService) GetByID(ctx context.Context, id uuid.UUID) (*PartnerResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToSupplierResponse(supplier)
	return &response, nil
}

// List retrieves suppliers with search and pagination
func (s *SupplierService) List(ctx context.Context, filter PartnerListFilter) ([]PartnerResponse, int64, error) {
	domainFilter := filter.toDomain()

	suppliers, err := s.supplierRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.supplierRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	out := make([]PartnerResponse, len(suppliers))
	for i := range suppliers {
		out[i] = ToSupplierResponse(&suppliers[i])
	}
	return out, total, nil
}

// Update replaces a supplier's profile
func (s *SupplierService) Update(ctx context.Context, id uuid.UUID, req PartnerRequest) (*PartnerResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := supplier.Update(req.profile()); err != nil {
		return nil, err
	}
	if err := ensureEmailFree(ctx, s.supplierRepo.ExistsByEmail, supplier.Email, &supplier.ID); err != nil {
		return nil, err
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	response := ToSupplierResponse(supplier)
	return &response, nil
}

// Delete detaches the supplier from its buying bills and removes it
func (s *SupplierService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.supplierRepo.Delete(ctx, id); err != nil {
		return err
	}
	logger.FromContextOr(ctx, s.logger).Info("Supplier deleted", zap.String("supplier_id", id.String()))
	return nil
}
