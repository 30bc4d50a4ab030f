package marketing

import (
	"strings"
	"unicode/utf8"

	"github.com/shopfront/backend/internal/domain/shared"
)

// Banner is one slide of the home page carousel
type Banner struct {
	shared.BaseEntity
	FileURL string
	FileKey string // storage object key, used to delete the upload
	Title   string
	Show    bool
}

// NewBanner creates a banner pointing at an uploaded file
func NewBanner(title, fileURL, fileKey string, show bool) (*Banner, error) {
	b := &Banner{BaseEntity: shared.NewBaseEntity(), Show: show}
	if err := b.SetTitle(title); err != nil {
		return nil, err
	}
	if err := b.SetFile(fileURL, fileKey); err != nil {
		return nil, err
	}
	return b, nil
}

// SetTitle validates and sets the title
func (b *Banner) SetTitle(title string) error {
	title = strings.TrimSpace(title)
	if utf8.RuneCountInString(title) > 25 {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot exceed 25 characters")
	}
	b.Title = title
	b.Touch()
	return nil
}

// SetFile replaces the uploaded file reference
func (b *Banner) SetFile(fileURL, fileKey string) error {
	if fileURL == "" {
		return shared.NewDomainError("INVALID_FILE", "Banner file is required")
	}
	b.FileURL = fileURL
	b.FileKey = fileKey
	b.Touch()
	return nil
}

// SetVisible toggles whether the banner is shown publicly
func (b *Banner) SetVisible(show bool) {
	b.Show = show
	b.Touch()
}
