package catalog

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/catalog"
	"github.com/shopfront/backend/internal/domain/inventory"
	"github.com/shopfront/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type productFixture struct {
	products   *MockProductRepository
	categories *MockCategoryRepository
	ledger     *MockLedgerReader
	storage    *MockFileStorage
	svc        *ProductService
}

func newProductFixture() *productFixture {
	f := &productFixture{
		products:   new(MockProductRepository),
		categories: new(MockCategoryRepository),
		ledger:     new(MockLedgerReader),
		storage:    new(MockFileStorage),
	}
	f.svc = NewProductService(f.products, f.categories, f.ledger, f.storage, zap.NewNop())
	return f
}

func newTestProduct(t *testing.T) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(catalog.ProductDetails{
		CategoryID: uuid.New(),
		Name:       "Lamp",
		Reference:  "LMP-1",
		Price:      decimal.RequireFromString("9.99"),
		IsActive:   true,
	})
	require.NoError(t, err)
	return p
}

func productRequest(category uuid.UUID) ProductRequest {
	return ProductRequest{
		Category:  category,
		Name:      "Vase",
		Reference: "VS-1",
		Price:     decimal.RequireFromString("19.99"),
		CostPrice: decimal.RequireFromString("10"),
		TVA:       decimal.RequireFromString("19"),
		Variants: []VariantRequest{
			{Color: "blue", VariantPrice: decimal.RequireFromString("21")},
		},
	}
}

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a product with variants and zero availability", func(t *testing.T) {
		f := newProductFixture()
		category := uuid.New()
		f.categories.On("FindByID", mock.Anything, category).Return(&catalog.Category{}, nil)
		f.products.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)

		resp, err := f.svc.Create(ctx, productRequest(category))
		require.NoError(t, err)
		assert.Equal(t, "19.99", resp.Price.String())
		assert.True(t, resp.IsActive, "is_active defaults to true")
		assert.True(t, resp.InStock)
		assert.Equal(t, int64(0), resp.AvailableQuantity)
		require.Len(t, resp.Variants, 1)
		assert.Equal(t, "blue", resp.Variants[0].Color)
	})

	t.Run("unknown category", func(t *testing.T) {
		f := newProductFixture()
		category := uuid.New()
		f.categories.On("FindByID", mock.Anything, category).Return(nil, shared.ErrNotFound)

		_, err := f.svc.Create(ctx, productRequest(category))
		assert.ErrorIs(t, err, catalog.ErrCategoryNotFound)
		f.products.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestProductService_GetByIDComputesAvailability(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		totals   inventory.StockTotals
		expected int64
	}{
		{"received minus sold", inventory.StockTotals{Received: 10, Sold: 3}, 7},
		{"clamped at zero when oversold", inventory.StockTotals{Received: 1, Sold: 2}, 0},
		{"no ledger rows", inventory.StockTotals{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newProductFixture()
			p := newTestProduct(t)
			f.products.On("FindByID", mock.Anything, p.ID).Return(p, nil)
			f.ledger.On("Totals", mock.Anything, p.ID).Return(tt.totals, nil)

			resp, err := f.svc.GetByID(ctx, p.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, resp.AvailableQuantity)
		})
	}
}

func TestProductService_ListUsesBatchedTotals(t *testing.T) {
	f := newProductFixture()
	a, b := newTestProduct(t), newTestProduct(t)
	category := uuid.New()

	withCategory := mock.MatchedBy(func(filter shared.Filter) bool {
		return filter.Filters["category_id"] == category && filter.Filters["promo"] == true
	})
	f.products.On("FindAll", mock.Anything, withCategory).Return([]catalog.Product{*a, *b}, nil)
	f.products.On("Count", mock.Anything, withCategory).Return(int64(2), nil)
	f.ledger.On("TotalsFor", mock.Anything, []uuid.UUID{a.ID, b.ID}).Return(map[uuid.UUID]inventory.StockTotals{
		a.ID: {Received: 5, Sold: 1},
		b.ID: {},
	}, nil)

	promo := true
	items, total, err := f.svc.List(context.Background(), ProductListFilter{CategoryID: &category, Promo: &promo})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, items, 2)
	assert.Equal(t, int64(4), items[0].AvailableQuantity)
	assert.Equal(t, int64(0), items[1].AvailableQuantity)
	f.ledger.AssertNumberOfCalls(t, "TotalsFor", 1)
	f.ledger.AssertNotCalled(t, "Totals", mock.Anything, mock.Anything)
}

func TestProductService_Update(t *testing.T) {
	f := newProductFixture()
	p := newTestProduct(t)
	req := productRequest(p.CategoryID)
	req.Variants = nil

	f.products.On("FindByID", mock.Anything, p.ID).Return(p, nil)
	f.categories.On("FindByID", mock.Anything, p.CategoryID).Return(&catalog.Category{}, nil)
	f.products.On("Save", mock.Anything, p).Return(nil)
	f.ledger.On("Totals", mock.Anything, p.ID).Return(inventory.StockTotals{Received: 2}, nil)

	resp, err := f.svc.Update(context.Background(), p.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "Vase", resp.Name)
	assert.Empty(t, resp.Variants, "variants are replaced wholesale")
	assert.Equal(t, int64(2), resp.AvailableQuantity)
}

func TestProductService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("refuses when ledger lines reference it", func(t *testing.T) {
		f := newProductFixture()
		p := newTestProduct(t)
		f.products.On("FindByID", mock.Anything, p.ID).Return(p, nil)
		f.ledger.On("HasEntries", mock.Anything, p.ID).Return(true, nil)

		err := f.svc.Delete(ctx, p.ID)
		assert.ErrorIs(t, err, catalog.ErrProductInUse)
		f.products.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("deletes an unused product", func(t *testing.T) {
		f := newProductFixture()
		p := newTestProduct(t)
		f.products.On("FindByID", mock.Anything, p.ID).Return(p, nil)
		f.ledger.On("HasEntries", mock.Anything, p.ID).Return(false, nil)
		f.products.On("Delete", mock.Anything, p.ID).Return(nil)

		require.NoError(t, f.svc.Delete(ctx, p.ID))
		f.products.AssertExpectations(t)
	})
}

func upload(name, contentType, body string) Upload {
	return Upload{Filename: name, ContentType: contentType, Size: int64(len(body)), Body: strings.NewReader(body)}
}

func TestProductService_UploadMedia(t *testing.T) {
	ctx := context.Background()

	t.Run("stores files and replaces the gallery", func(t *testing.T) {
		f := newProductFixture()
		p := newTestProduct(t)
		p.ReplaceGallery([]string{"https://cdn.example.com/old.jpg"})

		f.products.On("FindByID", mock.Anything, p.ID).Return(p, nil)
		f.storage.On("Put", mock.Anything, mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "products/"+p.ID.String()+"/image/") && strings.HasSuffix(key, ".png")
		}), mock.Anything, int64(3), "image/png").Return("https://cdn.example.com/main.png", nil)
		f.storage.On("Put", mock.Anything, mock.MatchedBy(func(key string) bool {
			return strings.Contains(key, "/gallery/")
		}), mock.Anything, mock.Anything, "image/jpeg").Return("https://cdn.example.com/g.jpg", nil).Twice()
		f.products.On("Save", mock.Anything, p).Return(nil)
		f.ledger.On("Totals", mock.Anything, p.ID).Return(inventory.StockTotals{}, nil)

		img := upload("Main.PNG", "image/png", "png")
		resp, err := f.svc.UploadMedia(ctx, p.ID, MediaUpload{
			Image:   &img,
			Gallery: []Upload{upload("a.jpg", "image/jpeg", "a"), upload("b.jpg", "image/jpeg", "b")},
		})
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/main.png", resp.Image)
		assert.Equal(t, []string{"https://cdn.example.com/g.jpg", "https://cdn.example.com/g.jpg"}, resp.GalleryImages)
		f.storage.AssertExpectations(t)
	})

	t.Run("rejects a video sent as image", func(t *testing.T) {
		f := newProductFixture()
		clip := upload("clip.mp4", "video/mp4", "x")

		_, err := f.svc.UploadMedia(ctx, uuid.New(), MediaUpload{Image: &clip})
		assert.ErrorIs(t, err, ErrInvalidFile)
		f.products.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("requires at least one file", func(t *testing.T) {
		f := newProductFixture()
		_, err := f.svc.UploadMedia(ctx, uuid.New(), MediaUpload{})
		require.Error(t, err)
	})

	t.Run("removes stored objects when saving fails", func(t *testing.T) {
		f := newProductFixture()
		p := newTestProduct(t)
		f.products.On("FindByID", mock.Anything, p.ID).Return(p, nil)
		f.storage.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, "video/mp4").
			Return("https://cdn.example.com/v.mp4", nil)
		f.products.On("Save", mock.Anything, p).Return(errors.New("db down"))
		f.storage.On("Delete", mock.Anything, mock.MatchedBy(func(key string) bool {
			return strings.Contains(key, "/video/")
		})).Return(nil)

		clip := upload("clip.mp4", "video/mp4", "x")
		_, err := f.svc.UploadMedia(ctx, p.ID, MediaUpload{PromoVideo: &clip})
		require.Error(t, err)
		f.storage.AssertCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestObjectKeyKeepsExtension(t *testing.T) {
	key := ObjectKey("banners", "Slide.JPG")
	assert.True(t, strings.HasPrefix(key, "banners/"))
	assert.True(t, strings.HasSuffix(key, ".jpg"))
	assert.NotEqual(t, key, ObjectKey("banners", "Slide.JPG"))
}
