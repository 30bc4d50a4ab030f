package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/catalog"
	"github.com/shopfront/backend/internal/domain/inventory"
	"github.com/shopfront/backend/internal/domain/shared"
	"github.com/shopfront/backend/internal/infrastructure/logger"
	"github.com/shopfront/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// ProductService handles product-related business operations
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	ledger       inventory.LedgerReader
	storage      FileStorage
	logger       *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	ledger inventory.LedgerReader,
	storage FileStorage,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		ledger:       ledger,
		storage:      storage,
		logger:       logger,
	}
}

// Create creates a new product in an existing category
func (s *ProductService) Create(ctx context.Context, req ProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(req.toDetails())
	if err != nil {
		return nil, err
	}
	if err := checkCategory(ctx, s.categoryRepo, product.CategoryID); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	logger.FromContextOr(ctx, s.logger).Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("name", product.Name))

	response := ToProductResponse(product, inventory.StockTotals{})
	return &response, nil
}

// GetByID retrieves a product with its variants, gallery and available quantity
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "product", "get")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrProductID, id.String())

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	totals, err := s.ledger.Totals(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to compute available quantity: %w", err)
	}
	if totals.Oversold() {
		logger.FromContextOr(ctx, s.logger).Warn("Product is oversold, reporting zero availability",
			zap.String("product_id", id.String()),
			zap.Int64("received", totals.Received),
			zap.Int64("sold", totals.Sold))
	}

	response := ToProductResponse(product, totals)
	return &response, nil
}

// List retrieves products with filtering and pagination. Availability for
// the page is computed with one grouped query per ledger table.
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
	}.Normalize()

	if filter.CategoryID != nil {
		domainFilter.Filters["category_id"] = *filter.CategoryID
	}
	if filter.IsActive != nil {
		domainFilter.Filters["is_active"] = *filter.IsActive
	}
	if filter.InStock != nil {
		domainFilter.Filters["in_stock"] = *filter.InStock
	}
	if filter.Promo != nil {
		domainFilter.Filters["promo"] = *filter.Promo
	}

	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]uuid.UUID, len(products))
	for i := range products {
		ids[i] = products[i].ID
	}
	totals, err := s.ledger.TotalsFor(ctx, ids)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to compute available quantities: %w", err)
	}

	out := make([]ProductResponse, len(products))
	for i := range products {
		out[i] = ToProductResponse(&products[i], totals[products[i].ID])
	}
	return out, total, nil
}

// Update replaces every editable field of a product, variants included.
// Media URLs are left alone.
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req ProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := product.Update(req.toDetails()); err != nil {
		return nil, err
	}
	if err := checkCategory(ctx, s.categoryRepo, product.CategoryID); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	totals, err := s.ledger.Totals(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to compute available quantity: %w", err)
	}
	response := ToProductResponse(product, totals)
	return &response, nil
}

// Delete removes a product that no ledger line references
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.productRepo.FindByID(ctx, id); err != nil {
		return err
	}

	used, err := s.ledger.HasEntries(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check ledger entries: %w", err)
	}
	if used {
		return catalog.ErrProductInUse
	}

	return s.productRepo.Delete(ctx, id)
}

// MediaUpload carries the files of POST /produits/{id}/media. Any field may
// be empty but at least one file is required.
type MediaUpload struct {
	Image      *Upload
	PromoVideo *Upload
	Gallery    []Upload
}

// UploadMedia stores the given files and records their URLs on the product.
// A non-empty gallery replaces the previous one. Objects written before a
// failure are removed again.
func (s *ProductService) UploadMedia(ctx context.Context, id uuid.UUID, media MediaUpload) (*ProductResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "product", "upload_media")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrProductID, id.String())

	if media.Image == nil && media.PromoVideo == nil && len(media.Gallery) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "At least one file is required")
	}
	if media.Image != nil {
		if err := media.Image.Validate(MediaImage); err != nil {
			return nil, err
		}
	}
	if media.PromoVideo != nil {
		if err := media.PromoVideo.Validate(MediaVideo); err != nil {
			return nil, err
		}
	}
	for _, g := range media.Gallery {
		if err := g.Validate(MediaImage); err != nil {
			return nil, err
		}
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	prefix := "products/" + product.ID.String()
	var written []string
	put := func(u Upload, dir string) (string, error) {
		key := ObjectKey(prefix+"/"+dir, u.Filename)
		url, err := s.storage.Put(ctx, key, u.Body, u.Size, u.ContentType)
		if err != nil {
			return "", fmt.Errorf("failed to store %s: %w", u.Filename, err)
		}
		written = append(written, key)
		return url, nil
	}

	err = func() error {
		if media.Image != nil {
			url, err := put(*media.Image, "image")
			if err != nil {
				return err
			}
			product.SetImage(url)
		}
		if media.PromoVideo != nil {
			url, err := put(*media.PromoVideo, "video")
			if err != nil {
				return err
			}
			product.SetPromoVideo(url)
		}
		if len(media.Gallery) > 0 {
			urls := make([]string, 0, len(media.Gallery))
			for _, g := range media.Gallery {
				url, err := put(g, "gallery")
				if err != nil {
					return err
				}
				urls = append(urls, url)
			}
			product.ReplaceGallery(urls)
		}
		return s.productRepo.Save(ctx, product)
	}()
	if err != nil {
		telemetry.RecordError(span, err)
		s.discard(ctx, written)
		return nil, err
	}

	logger.FromContextOr(ctx, s.logger).Info("Product media uploaded",
		zap.String("product_id", product.ID.String()),
		zap.Int("files", len(written)))

	return s.GetByID(ctx, id)
}

func (s *ProductService) discard(ctx context.Context, keys []string) {
	for _, key := range keys {
		if err := s.storage.Delete(ctx, key); err != nil {
			logger.FromContextOr(ctx, s.logger).Warn("Failed to remove orphaned upload",
				zap.String("key", key), zap.Error(err))
		}
	}
}
