package models

import (
	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CategoryModel is the persistence model for the Category aggregate root
type CategoryModel struct {
	AggregateModel
	Name        string `gorm:"type:varchar(255);not null;uniqueIndex"`
	Slug        string `gorm:"type:varchar(255);not null;index"`
	Description string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "categories"
}

// ToDomain converts the persistence model to a domain Category
func (m *CategoryModel) ToDomain() *catalog.Category {
	return &catalog.Category{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Name:              m.Name,
		Slug:              m.Slug,
		Description:       m.Description,
	}
}

// CategoryModelFromDomain creates a persistence model from a domain Category
func CategoryModelFromDomain(c *catalog.Category) *CategoryModel {
	m := &CategoryModel{
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
	}
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	return m
}

// ProductModel is the persistence model for the Product aggregate root
type ProductModel struct {
	AggregateModel
	CategoryID    uuid.UUID             `gorm:"type:uuid;not null;index"`
	Name          string                `gorm:"type:varchar(255);not null"`
	Slug          string                `gorm:"type:varchar(255);not null;index"`
	Description   string                `gorm:"type:text"`
	Reference     string                `gorm:"type:varchar(100);index"`
	Price         decimal.Decimal       `gorm:"type:numeric(12,2);not null;default:0"`
	CostPrice     decimal.Decimal       `gorm:"type:numeric(12,2);not null;default:0"`
	Margin        decimal.Decimal       `gorm:"type:numeric(12,2);not null;default:0"`
	TVA           decimal.Decimal       `gorm:"column:tva;type:numeric(5,2);not null;default:0"`
	ImageURL      string                `gorm:"type:varchar(1024)"`
	PromoVideoURL string                `gorm:"type:varchar(1024)"`
	InStock       bool                  `gorm:"not null;default:true"`
	IsActive      bool                  `gorm:"not null;default:true"`
	Promo         bool                  `gorm:"not null;default:false"`
	Variants      []ProductVariantModel `gorm:"foreignKey:ProductID;references:ID"`
	Gallery       []GalleryImageModel   `gorm:"foreignKey:ProductID;references:ID"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product
func (m *ProductModel) ToDomain() *catalog.Product {
	p := &catalog.Product{
		BaseAggregateRoot: m.ToAggregateRoot(),
		CategoryID:        m.CategoryID,
		Name:              m.Name,
		Slug:              m.Slug,
		Description:       m.Description,
		Reference:         m.Reference,
		Price:             money(m.Price),
		CostPrice:         money(m.CostPrice),
		Margin:            money(m.Margin),
		TVA:               m.TVA,
		ImageURL:          m.ImageURL,
		PromoVideoURL:     m.PromoVideoURL,
		InStock:           m.InStock,
		IsActive:          m.IsActive,
		Promo:             m.Promo,
		Variants:          make([]catalog.ProductVariant, len(m.Variants)),
		Gallery:           make([]catalog.GalleryImage, len(m.Gallery)),
	}
	for i, v := range m.Variants {
		p.Variants[i] = catalog.ProductVariant{
			ID:           v.ID,
			ProductID:    v.ProductID,
			Dimension:    v.Dimension,
			Color:        v.Color,
			VariantPrice: money(v.VariantPrice),
		}
	}
	for i, g := range m.Gallery {
		p.Gallery[i] = catalog.GalleryImage{
			ID:        g.ID,
			ProductID: g.ProductID,
			URL:       g.URL,
			Position:  g.Position,
		}
	}
	return p
}

// ProductModelFromDomain creates a persistence model from a domain Product.
// Variants and gallery rows are returned separately so repositories can
// rewrite them explicitly.
func ProductModelFromDomain(p *catalog.Product) (*ProductModel, []ProductVariantModel, []GalleryImageModel) {
	m := &ProductModel{
		CategoryID:    p.CategoryID,
		Name:          p.Name,
		Slug:          p.Slug,
		Description:   p.Description,
		Reference:     p.Reference,
		Price:         p.Price.Amount(),
		CostPrice:     p.CostPrice.Amount(),
		Margin:        p.Margin.Amount(),
		TVA:           p.TVA,
		ImageURL:      p.ImageURL,
		PromoVideoURL: p.PromoVideoURL,
		InStock:       p.InStock,
		IsActive:      p.IsActive,
		Promo:         p.Promo,
	}
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)

	variants := make([]ProductVariantModel, len(p.Variants))
	for i, v := range p.Variants {
		variants[i] = ProductVariantModel{
			ID:           v.ID,
			ProductID:    p.ID,
			Dimension:    v.Dimension,
			Color:        v.Color,
			VariantPrice: v.VariantPrice.Amount(),
		}
	}
	gallery := make([]GalleryImageModel, len(p.Gallery))
	for i, g := range p.Gallery {
		gallery[i] = GalleryImageModel{
			ID:        g.ID,
			ProductID: p.ID,
			URL:       g.URL,
			Position:  g.Position,
		}
	}
	return m, variants, gallery
}

// ProductVariantModel is the persistence model for a product variant
type ProductVariantModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProductID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Dimension    string          `gorm:"type:varchar(50)"`
	Color        string          `gorm:"type:varchar(50)"`
	VariantPrice decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (ProductVariantModel) TableName() string {
	return "product_variants"
}

// GalleryImageModel is the persistence model for a gallery picture
type GalleryImageModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	URL       string    `gorm:"type:varchar(1024);not null"`
	Position  int       `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (GalleryImageModel) TableName() string {
	return "product_gallery_images"
}
