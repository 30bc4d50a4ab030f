package catalog

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/shopfront/backend/internal/domain/shared"
	"github.com/shopfront/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Product is a sellable catalog entry. It owns its variants and gallery.
type Product struct {
	shared.BaseAggregateRoot
	CategoryID    uuid.UUID
	Name          string
	Slug          string
	Description   string
	Reference     string
	Price         valueobject.Money
	CostPrice     valueobject.Money
	Margin        valueobject.Money
	TVA           decimal.Decimal // tax rate in percent
	ImageURL      string
	PromoVideoURL string
	InStock       bool
	IsActive      bool
	Promo         bool
	Variants      []ProductVariant
	Gallery       []GalleryImage
}

// ProductVariant is a priced dimension or color option of a product
type ProductVariant struct {
	ID           uuid.UUID
	ProductID    uuid.UUID
	Dimension    string
	Color        string
	VariantPrice valueobject.Money
}

// GalleryImage is one extra product picture, ordered by Position
type GalleryImage struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	URL       string
	Position  int
}

// VariantDetails is the caller-supplied shape of a variant
type VariantDetails struct {
	Dimension    string
	Color        string
	VariantPrice decimal.Decimal
}

// ProductDetails carries every caller-editable product field
type ProductDetails struct {
	CategoryID  uuid.UUID
	Name        string
	Description string
	Reference   string
	Price       decimal.Decimal
	CostPrice   decimal.Decimal
	Margin      decimal.Decimal
	TVA         decimal.Decimal
	InStock     bool
	IsActive    bool
	Promo       bool
	Variants    []VariantDetails
}

// NewProduct validates details and builds a product ready to persist.
// It performs no I/O; the category reference is checked by the caller.
func NewProduct(details ProductDetails) (*Product, error) {
	p := &Product{BaseAggregateRoot: shared.NewBaseAggregateRoot()}
	if err := p.apply(details); err != nil {
		return nil, err
	}
	return p, nil
}

// Update replaces every editable field; variants are rebuilt from scratch
func (p *Product) Update(details ProductDetails) error {
	if err := p.apply(details); err != nil {
		return err
	}
	p.IncrementVersion()
	return nil
}

func (p *Product) apply(d ProductDetails) error {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if utf8.RuneCountInString(name) > 255 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 255 characters")
	}
	if d.CategoryID == uuid.Nil {
		return shared.NewDomainError("INVALID_CATEGORY", "Product must belong to a category")
	}

	price, err := valueobject.NewPrice(d.Price)
	if err != nil {
		return shared.NewDomainError("INVALID_PRICE", "Price "+err.Error())
	}
	costPrice, err := valueobject.NewPrice(d.CostPrice)
	if err != nil {
		return shared.NewDomainError("INVALID_PRICE", "Cost price "+err.Error())
	}
	margin, err := valueobject.NewPrice(d.Margin)
	if err != nil {
		return shared.NewDomainError("INVALID_MARGIN", "Margin "+err.Error())
	}
	if d.TVA.IsNegative() || d.TVA.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_TVA", "TVA must be between 0 and 100")
	}
	if !d.TVA.Equal(d.TVA.Round(valueobject.MoneyScale)) {
		return shared.NewDomainError("INVALID_TVA", "TVA "+valueobject.ErrAmountPrecision.Error())
	}

	variants := make([]ProductVariant, 0, len(d.Variants))
	for _, vd := range d.Variants {
		v, err := newVariant(p.ID, vd)
		if err != nil {
			return err
		}
		variants = append(variants, *v)
	}

	p.CategoryID = d.CategoryID
	p.Name = name
	p.Slug = slug.Make(name)
	p.Description = d.Description
	p.Reference = strings.TrimSpace(d.Reference)
	p.Price = price
	p.CostPrice = costPrice
	p.Margin = margin
	p.TVA = d.TVA
	p.InStock = d.InStock
	p.IsActive = d.IsActive
	p.Promo = d.Promo
	p.Variants = variants
	return nil
}

func newVariant(productID uuid.UUID, d VariantDetails) (*ProductVariant, error) {
	dimension := strings.TrimSpace(d.Dimension)
	color := strings.TrimSpace(d.Color)
	if dimension == "" && color == "" {
		return nil, shared.NewDomainError("INVALID_VARIANT", "Variant needs a dimension or a color")
	}
	if len(dimension) > 50 || len(color) > 50 {
		return nil, shared.NewDomainError("INVALID_VARIANT", "Variant dimension and color cannot exceed 50 characters")
	}
	price, err := valueobject.NewPrice(d.VariantPrice)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_PRICE", "Variant price "+err.Error())
	}
	return &ProductVariant{
		ID:           uuid.New(),
		ProductID:    productID,
		Dimension:    dimension,
		Color:        color,
		VariantPrice: price,
	}, nil
}

// SetImage records the main image URL
func (p *Product) SetImage(url string) {
	p.ImageURL = url
	p.Touch()
}

// SetPromoVideo records the promotional video URL
func (p *Product) SetPromoVideo(url string) {
	p.PromoVideoURL = url
	p.Touch()
}

// ReplaceGallery swaps the whole gallery for the given URLs, keeping their order
func (p *Product) ReplaceGallery(urls []string) {
	gallery := make([]GalleryImage, 0, len(urls))
	for i, u := range urls {
		gallery = append(gallery, GalleryImage{
			ID:        uuid.New(),
			ProductID: p.ID,
			URL:       u,
			Position:  i,
		})
	}
	p.Gallery = gallery
	p.IncrementVersion()
}

// ErrProductInUse is returned when deleting a product that has ledger lines
var ErrProductInUse = shared.NewDomainError("PRODUCT_IN_USE", "Product is referenced by orders or buying bills")
