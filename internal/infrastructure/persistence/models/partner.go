package models

import (
	"github.com/shopfront/backend/internal/domain/partner"
)

// PartnerFields holds the contact columns shared by clients and suppliers
type PartnerFields struct {
	Name    string `gorm:"type:varchar(100);not null;index"`
	Email   string `gorm:"type:varchar(254);not null;uniqueIndex"`
	Phone   string `gorm:"type:varchar(15)"`
	Address string `gorm:"type:varchar(255)"`
}

func partnerFieldsFromProfile(p partner.Profile) PartnerFields {
	return PartnerFields{
		Name:    p.Name,
		Email:   p.Email,
		Phone:   p.Phone,
		Address: p.Address,
	}
}

func (f PartnerFields) toProfile() partner.Profile {
	return partner.Profile{
		Name:    f.Name,
		Email:   f.Email,
		Phone:   f.Phone,
		Address: f.Address,
	}
}

// ClientModel is the persistence model for the Client aggregate root
type ClientModel struct {
	AggregateModel
	PartnerFields
}

// TableName returns the table name for GORM
func (ClientModel) TableName() string {
	return "clients"
}

// ToDomain converts the persistence model to a domain Client
func (m *ClientModel) ToDomain() *partner.Client {
	return &partner.Client{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Profile:           m.toProfile(),
	}
}

// ClientModelFromDomain creates a persistence model from a domain Client
func ClientModelFromDomain(c *partner.Client) *ClientModel {
	m := &ClientModel{PartnerFields: partnerFieldsFromProfile(c.Profile)}
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	return m
}

// SupplierModel is the persistence model for the Supplier aggregate root
type SupplierModel struct {
	AggregateModel
	PartnerFields
}

// TableName returns the table name for GORM
func (SupplierModel) TableName() string {
	return "suppliers"
}

// ToDomain converts the persistence model to a domain Supplier
func (m *SupplierModel) ToDomain() *partner.Supplier {
	return &partner.Supplier{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Profile:           m.toProfile(),
	}
}

// SupplierModelFromDomain creates a persistence model from a domain Supplier
func SupplierModelFromDomain(s *partner.Supplier) *SupplierModel {
	m := &SupplierModel{PartnerFields: partnerFieldsFromProfile(s.Profile)}
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	return m
}
