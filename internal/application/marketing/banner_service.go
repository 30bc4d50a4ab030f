package marketing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	catalogapp "github.com/shopfront/backend/internal/application/catalog"
	"github.com/shopfront/backend/internal/domain/marketing"
	"github.com/shopfront/backend/internal/infrastructure/logger"
	"github.com/shopfront/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

const bannerKeyPrefix = "banners"

// BannerService manages the home page carousel. Banner files live in the
// shared file storage; the row only keeps the URL and object key.
type BannerService struct {
	repo    marketing.BannerRepository
	storage catalogapp.FileStorage
	logger  *zap.Logger
}

// NewBannerService creates a new BannerService
func NewBannerService(repo marketing.BannerRepository, storage catalogapp.FileStorage, logger *zap.Logger) *BannerService {
	return &BannerService{repo: repo, storage: storage, logger: logger}
}

// Create uploads file and records a banner for it. Banners are shown unless
// req.Show says otherwise.
func (s *BannerService) Create(ctx context.Context, req BannerRequest, file catalogapp.Upload) (*BannerResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "banner", "create")
	defer span.End()

	if err := file.Validate(catalogapp.MediaImageOrVideo); err != nil {
		return nil, err
	}

	key, url, err := s.put(ctx, file)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	show := true
	if req.Show != nil {
		show = *req.Show
	}
	banner, err := marketing.NewBanner(req.Title, url, key, show)
	if err == nil {
		err = s.repo.Save(ctx, banner)
	}
	if err != nil {
		telemetry.RecordError(span, err)
		s.remove(ctx, key)
		return nil, err
	}

	logger.FromContextOr(ctx, s.logger).Info("Banner created",
		zap.String("banner_id", banner.ID.String()),
		zap.String("key", key))

	response := ToBannerResponse(banner)
	return &response, nil
}

// GetByID returns one banner
func (s *BannerService) GetByID(ctx context.Context, id uuid.UUID) (*BannerResponse, error) {
	banner, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToBannerResponse(banner)
	return &response, nil
}

// ListVisible returns the banners shown on the public home page
func (s *BannerService) ListVisible(ctx context.Context, filter PageFilter) ([]BannerResponse, int64, error) {
	visible := true
	return s.List(ctx, filter, &visible)
}

// List returns a page of banners, optionally restricted by the show flag
func (s *BannerService) List(ctx context.Context, filter PageFilter, show *bool) ([]BannerResponse, int64, error) {
	domainFilter := filter.toDomain()
	if show != nil {
		domainFilter.Filters["show"] = *show
	}

	banners, err := s.repo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	out := make([]BannerResponse, len(banners))
	for i := range banners {
		out[i] = ToBannerResponse(&banners[i])
	}
	return out, total, nil
}

// Update changes the title and show flag and, when file is given, replaces
// the stored object. The previous object is removed once the row is saved.
func (s *BannerService) Update(ctx context.Context, id uuid.UUID, req BannerRequest, file *catalogapp.Upload) (*BannerResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "banner", "update")
	defer span.End()

	if file != nil {
		if err := file.Validate(catalogapp.MediaImageOrVideo); err != nil {
			return nil, err
		}
	}

	banner, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := banner.SetTitle(req.Title); err != nil {
		return nil, err
	}
	if req.Show != nil {
		banner.SetVisible(*req.Show)
	}

	oldKey := banner.FileKey
	var newKey string
	if file != nil {
		key, url, err := s.put(ctx, *file)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
		newKey = key
		if err := banner.SetFile(url, key); err != nil {
			s.remove(ctx, newKey)
			return nil, err
		}
	}

	if err := s.repo.Save(ctx, banner); err != nil {
		telemetry.RecordError(span, err)
		if newKey != "" {
			s.remove(ctx, newKey)
		}
		return nil, err
	}
	if newKey != "" && oldKey != "" {
		s.remove(ctx, oldKey)
	}

	logger.FromContextOr(ctx, s.logger).Info("Banner updated",
		zap.String("banner_id", banner.ID.String()),
		zap.Bool("file_replaced", newKey != ""))

	response := ToBannerResponse(banner)
	return &response, nil
}

// Delete removes the banner row and its stored object
func (s *BannerService) Delete(ctx context.Context, id uuid.UUID) error {
	banner, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if banner.FileKey != "" {
		s.remove(ctx, banner.FileKey)
	}

	logger.FromContextOr(ctx, s.logger).Info("Banner deleted",
		zap.String("banner_id", id.String()))
	return nil
}

func (s *BannerService) put(ctx context.Context, file catalogapp.Upload) (key, url string, err error) {
	key = catalogapp.ObjectKey(bannerKeyPrefix, file.Filename)
	url, err = s.storage.Put(ctx, key, file.Body, file.Size, file.ContentType)
	if err != nil {
		return "", "", fmt.Errorf("failed to store %s: %w", file.Filename, err)
	}
	return key, url, nil
}

func (s *BannerService) remove(ctx context.Context, key string) {
	if err := s.storage.Delete(ctx, key); err != nil {
		logger.FromContextOr(ctx, s.logger).Warn("Failed to remove banner file",
			zap.String("key", key), zap.Error(err))
	}
}
