package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/catalog"
	"github.com/shopfront/backend/internal/domain/inventory"
	"github.com/shopfront/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// CategoryRequest is the body of POST and PUT /categories
type CategoryRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=255"`
	Description string `json:"description" binding:"max=2000"`
}

// CategoryListFilter represents filter options for the category list
type CategoryListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// VariantRequest is one entry of a product's variants
type VariantRequest struct {
	Dimension    string          `json:"dimension" binding:"max=50"`
	Color        string          `json:"color" binding:"max=50"`
	VariantPrice decimal.Decimal `json:"variant_price" binding:"money"`
}

// ProductRequest is the body of POST and PUT /produits. PUT replaces every
// field, variants included.
type ProductRequest struct {
	Category    uuid.UUID        `json:"category" binding:"required"`
	Name        string           `json:"name" binding:"required,min=1,max=255"`
	Description string           `json:"description"`
	Reference   string           `json:"reference" binding:"max=100"`
	Price       decimal.Decimal  `json:"price" binding:"money"`
	CostPrice   decimal.Decimal  `json:"cost_price" binding:"money"`
	Margin      decimal.Decimal  `json:"margin" binding:"money"`
	TVA         decimal.Decimal  `json:"tva" binding:"decimal_gte0"`
	InStock     *bool            `json:"in_stock"`
	IsActive    *bool            `json:"is_active"`
	Promo       bool             `json:"promo"`
	Variants    []VariantRequest `json:"variants" binding:"dive"`
}

// ProductListFilter represents filter options for the product list
type ProductListFilter struct {
	Search     string     `form:"search"`
	CategoryID *uuid.UUID `form:"category"`
	IsActive   *bool      `form:"is_active"`
	InStock    *bool      `form:"in_stock"`
	Promo      *bool      `form:"promo"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// VariantResponse is a product variant in API responses
type VariantResponse struct {
	ID           uuid.UUID         `json:"id"`
	Dimension    string            `json:"dimension"`
	Color        string            `json:"color"`
	VariantPrice valueobject.Money `json:"variant_price"`
}

// ProductResponse represents a product in API responses. AvailableQuantity
// is derived from the ledger on every read.
type ProductResponse struct {
	ID                uuid.UUID         `json:"id"`
	Category          uuid.UUID         `json:"category"`
	Name              string            `json:"name"`
	Slug              string            `json:"slug"`
	Description       string            `json:"description"`
	Reference         string            `json:"reference"`
	Price             valueobject.Money `json:"price"`
	CostPrice         valueobject.Money `json:"cost_price"`
	Margin            valueobject.Money `json:"margin"`
	TVA               decimal.Decimal   `json:"tva"`
	Image             string            `json:"image"`
	PromoVideo        string            `json:"promo_video"`
	InStock           bool              `json:"in_stock"`
	IsActive          bool              `json:"is_active"`
	Promo             bool              `json:"promo"`
	AvailableQuantity int64             `json:"available_quantity"`
	Variants          []VariantResponse `json:"variants"`
	GalleryImages     []string          `json:"gallery_images"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

func (r ProductRequest) toDetails() catalog.ProductDetails {
	variants := make([]catalog.VariantDetails, 0, len(r.Variants))
	for _, v := range r.Variants {
		variants = append(variants, catalog.VariantDetails{
			Dimension:    v.Dimension,
			Color:        v.Color,
			VariantPrice: v.VariantPrice,
		})
	}
	return catalog.ProductDetails{
		CategoryID:  r.Category,
		Name:        r.Name,
		Description: r.Description,
		Reference:   r.Reference,
		Price:       r.Price,
		CostPrice:   r.CostPrice,
		Margin:      r.Margin,
		TVA:         r.TVA,
		InStock:     boolOr(r.InStock, true),
		IsActive:    boolOr(r.IsActive, true),
		Promo:       r.Promo,
		Variants:    variants,
	}
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

// ToCategoryResponse converts a domain Category to CategoryResponse
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
	}
}

// ToProductResponse converts a domain Product and its ledger totals
func ToProductResponse(p *catalog.Product, totals inventory.StockTotals) ProductResponse {
	variants := make([]VariantResponse, 0, len(p.Variants))
	for _, v := range p.Variants {
		variants = append(variants, VariantResponse{
			ID:           v.ID,
			Dimension:    v.Dimension,
			Color:        v.Color,
			VariantPrice: v.VariantPrice,
		})
	}
	gallery := make([]string, 0, len(p.Gallery))
	for _, g := range p.Gallery {
		gallery = append(gallery, g.URL)
	}
	return ProductResponse{
		ID:                p.ID,
		Category:          p.CategoryID,
		Name:              p.Name,
		Slug:              p.Slug,
		Description:       p.Description,
		Reference:         p.Reference,
		Price:             p.Price,
		CostPrice:         p.CostPrice,
		Margin:            p.Margin,
		TVA:               p.TVA,
		Image:             p.ImageURL,
		PromoVideo:        p.PromoVideoURL,
		InStock:           p.InStock,
		IsActive:          p.IsActive,
		Promo:             p.Promo,
		AvailableQuantity: totals.Available(),
		Variants:          variants,
		GalleryImages:     gallery,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}
