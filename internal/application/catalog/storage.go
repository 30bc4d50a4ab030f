package catalog

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/shared"
)

// FileStorage stores uploaded media. Implemented by the S3 and in-memory
// backends in infrastructure/storage.
type FileStorage interface {
	// Put writes body under key and returns the public URL of the object
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)

	// Delete removes the object. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// Upload is one file received in a multipart form
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// MediaKind restricts which content types an upload may carry
type MediaKind string

const (
	MediaImage        MediaKind = "image"
	MediaVideo        MediaKind = "video"
	MediaImageOrVideo MediaKind = "image_or_video"
)

// ErrInvalidFile is returned for empty uploads or unexpected content types
var ErrInvalidFile = shared.NewDomainError("INVALID_FILE", "Uploaded file is empty or has an unsupported type")

// Validate checks the upload against kind
func (u Upload) Validate(kind MediaKind) error {
	if u.Body == nil || u.Size <= 0 {
		return ErrInvalidFile
	}
	ct := strings.ToLower(u.ContentType)
	isImage := strings.HasPrefix(ct, "image/")
	isVideo := strings.HasPrefix(ct, "video/")
	switch kind {
	case MediaImage:
		if !isImage {
			return ErrInvalidFile
		}
	case MediaVideo:
		if !isVideo {
			return ErrInvalidFile
		}
	default:
		if !isImage && !isVideo {
			return ErrInvalidFile
		}
	}
	return nil
}

// ObjectKey builds a collision-free storage key under prefix that keeps the
// original file extension.
func ObjectKey(prefix, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return path.Join(prefix, uuid.NewString()+ext)
}
