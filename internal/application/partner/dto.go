package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/partner"
	"github.com/shopfront/backend/internal/domain/shared"
)

// PartnerRequest is the body of POST and PUT for /clients and /fournisseurs
type PartnerRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=100"`
	Email   string `json:"email" binding:"required,email,max=254"`
	Phone   string `json:"phone" binding:"max=15"`
	Address string `json:"address" binding:"max=255"`
}

// PartnerListFilter represents filter options for client and supplier lists
type PartnerListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// PartnerResponse represents a client or supplier in API responses
type PartnerResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

func (r PartnerRequest) profile() partner.Profile {
	return partner.Profile{
		Name:    r.Name,
		Email:   r.Email,
		Phone:   r.Phone,
		Address: r.Address,
	}
}

func (f PartnerListFilter) toDomain() shared.Filter {
	filter := shared.Filter{
		Page:     f.Page,
		PageSize: f.PageSize,
		OrderBy:  f.OrderBy,
		OrderDir: f.OrderDir,
		Search:   f.Search,
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "name"
		filter.OrderDir = "asc"
	}
	return filter.Normalize()
}

func toPartnerResponse(id uuid.UUID, p partner.Profile, createdAt time.Time) PartnerResponse {
	return PartnerResponse{
		ID:        id,
		Name:      p.Name,
		Email:     p.Email,
		Phone:     p.Phone,
		Address:   p.Address,
		CreatedAt: createdAt,
	}
}

// ToClientResponse converts a domain Client to PartnerResponse
func ToClientResponse(c *partner.Client) PartnerResponse {
	return toPartnerResponse(c.ID, c.Profile, c.CreatedAt)
}

// ToSupplierResponse converts a domain Supplier to PartnerResponse
func ToSupplierResponse(s *partner.Supplier) PartnerResponse {
	return toPartnerResponse(s.ID, s.Profile, s.CreatedAt)
}
