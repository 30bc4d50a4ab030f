package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopfront/backend/internal/infrastructure/storage"
	"github.com/shopfront/backend/internal/interfaces/http/dto"
)

// MediaSource looks up stored upload bytes by key
type MediaSource interface {
	Get(key string) (storage.StoredObject, bool)
}

// MediaHandler serves uploads kept by the in-memory storage driver.
// With the s3 driver the public URLs point at the bucket instead.
type MediaHandler struct {
	BaseHandler
	source MediaSource
}

// NewMediaHandler creates a new MediaHandler
func NewMediaHandler(source MediaSource) *MediaHandler {
	return &MediaHandler{source: source}
}

// Serve godoc
// @Summary      Download an uploaded file
// @Tags         system
// @Param        key path string true "Object key"
// @Success      200
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /media/{key} [get]
func (h *MediaHandler) Serve(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	obj, ok := h.source.Get(key)
	if !ok {
		h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, "File not found")
		return
	}
	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, obj.ContentType, obj.Data)
}
