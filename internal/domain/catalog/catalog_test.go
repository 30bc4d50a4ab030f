package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDetails() ProductDetails {
	return ProductDetails{
		CategoryID: uuid.New(),
		Name:       "Vase Céramique",
		Reference:  " REF-01 ",
		Price:      decimal.RequireFromString("19.9"),
		CostPrice:  decimal.RequireFromString("10"),
		Margin:     decimal.RequireFromString("9.99"),
		TVA:        decimal.RequireFromString("19"),
		InStock:    true,
		IsActive:   true,
	}
}

func TestNewCategory(t *testing.T) {
	t.Run("trims and slugs the name", func(t *testing.T) {
		c, err := NewCategory("  Home Decor ", "desc")
		require.NoError(t, err)
		assert.Equal(t, "Home Decor", c.Name)
		assert.Equal(t, "home-decor", c.Slug)
		assert.Equal(t, 1, c.Version)
	})

	t.Run("rejects an empty name", func(t *testing.T) {
		_, err := NewCategory("   ", "")
		require.Error(t, err)
		de, ok := shared.AsDomainError(err)
		require.True(t, ok)
		assert.Equal(t, "INVALID_NAME", de.Code)
	})

	t.Run("update bumps version", func(t *testing.T) {
		c, err := NewCategory("Lamps", "")
		require.NoError(t, err)
		require.NoError(t, c.Update("Floor Lamps", "tall"))
		assert.Equal(t, "floor-lamps", c.Slug)
		assert.Equal(t, 2, c.Version)
	})
}

func TestNewProduct(t *testing.T) {
	t.Run("normalizes money and text", func(t *testing.T) {
		p, err := NewProduct(validDetails())
		require.NoError(t, err)

		assert.Equal(t, "19.90", p.Price.String())
		assert.Equal(t, "10.00", p.CostPrice.String())
		assert.Equal(t, "REF-01", p.Reference)
		assert.Equal(t, "vase-ceramique", p.Slug)
		assert.Empty(t, p.Variants)
	})

	t.Run("rejects negative prices", func(t *testing.T) {
		d := validDetails()
		d.CostPrice = decimal.NewFromInt(-1)
		_, err := NewProduct(d)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Cost price")
	})

	t.Run("rejects prices it would have to round", func(t *testing.T) {
		d := validDetails()
		d.Price = decimal.RequireFromString("19.999")
		_, err := NewProduct(d)
		require.Error(t, err)
		de, ok := shared.AsDomainError(err)
		require.True(t, ok)
		assert.Equal(t, "INVALID_PRICE", de.Code)

		d = validDetails()
		d.Variants = []VariantDetails{{Color: "red", VariantPrice: decimal.RequireFromString("0.001")}}
		_, err = NewProduct(d)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Variant price")
	})

	t.Run("rejects amounts past ten digits", func(t *testing.T) {
		d := validDetails()
		d.Margin = decimal.RequireFromString("100000000")
		_, err := NewProduct(d)
		require.Error(t, err)
		de, ok := shared.AsDomainError(err)
		require.True(t, ok)
		assert.Equal(t, "INVALID_MARGIN", de.Code)

		d.Margin = decimal.RequireFromString("99999999.99")
		_, err = NewProduct(d)
		assert.NoError(t, err)
	})

	t.Run("rejects tva out of range", func(t *testing.T) {
		d := validDetails()
		d.TVA = decimal.NewFromInt(101)
		_, err := NewProduct(d)
		require.Error(t, err)
	})

	t.Run("requires a category", func(t *testing.T) {
		d := validDetails()
		d.CategoryID = uuid.Nil
		_, err := NewProduct(d)
		require.Error(t, err)
	})

	t.Run("builds variants owned by the product", func(t *testing.T) {
		d := validDetails()
		d.Variants = []VariantDetails{
			{Color: "red", VariantPrice: decimal.RequireFromString("21")},
			{Dimension: "30cm", VariantPrice: decimal.RequireFromString("25.5")},
		}
		p, err := NewProduct(d)
		require.NoError(t, err)
		require.Len(t, p.Variants, 2)
		assert.Equal(t, p.ID, p.Variants[0].ProductID)
		assert.Equal(t, "25.50", p.Variants[1].VariantPrice.String())
	})

	t.Run("rejects a variant with neither color nor dimension", func(t *testing.T) {
		d := validDetails()
		d.Variants = []VariantDetails{{VariantPrice: decimal.NewFromInt(1)}}
		_, err := NewProduct(d)
		require.Error(t, err)
	})
}

func TestProduct_Update(t *testing.T) {
	p, err := NewProduct(validDetails())
	require.NoError(t, err)

	d := validDetails()
	d.Name = "Big Vase"
	d.Price = decimal.NewFromInt(30)
	require.NoError(t, p.Update(d))
	assert.Equal(t, "Big Vase", p.Name)
	assert.Equal(t, "30.00", p.Price.String())
	assert.Equal(t, 2, p.Version)

	d.Name = ""
	require.Error(t, p.Update(d))
	assert.Equal(t, "Big Vase", p.Name, "failed update leaves the product untouched")
}

func TestProduct_ReplaceGallery(t *testing.T) {
	p, err := NewProduct(validDetails())
	require.NoError(t, err)

	p.ReplaceGallery([]string{"a.jpg", "b.jpg"})
	require.Len(t, p.Gallery, 2)
	assert.Equal(t, 1, p.Gallery[1].Position)

	p.ReplaceGallery([]string{"c.jpg"})
	require.Len(t, p.Gallery, 1)
	assert.Equal(t, "c.jpg", p.Gallery[0].URL)
}
