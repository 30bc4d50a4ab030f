package partner

import (
	"github.com/shopfront/backend/internal/domain/shared"
)

// Supplier (fournisseur) delivers stock recorded on buying bills
type Supplier struct {
	shared.BaseAggregateRoot
	Profile
}

// NewSupplier validates the profile and builds a supplier
func NewSupplier(profile Profile) (*Supplier, error) {
	profile = profile.Normalize()
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	return &Supplier{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Profile:           profile,
	}, nil
}

// Update replaces the supplier's profile
func (s *Supplier) Update(profile Profile) error {
	profile = profile.Normalize()
	if err := profile.Validate(); err != nil {
		return err
	}
	s.Profile = profile
	s.IncrementVersion()
	return nil
}
