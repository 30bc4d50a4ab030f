package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/shopfront/backend/internal/application/catalog"
	marketingapp "github.com/shopfront/backend/internal/application/marketing"
)

// NewsletterHandler handles newsletter subscriptions
type NewsletterHandler struct {
	BaseHandler
	newsletterService *marketingapp.NewsletterService
}

// NewNewsletterHandler creates a new NewsletterHandler
func NewNewsletterHandler(newsletterService *marketingapp.NewsletterService) *NewsletterHandler {
	return &NewsletterHandler{newsletterService: newsletterService}
}

// Subscribe godoc
// @Summary      Subscribe to the newsletter
// @Tags         newsletters
// @Accept       json
// @Produce      json
// @Param        request body marketingapp.SubscribeRequest true "Subscription"
// @Success      201 {object} dto.Response{data=marketingapp.SubscriptionResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /newsletters [post]
func (h *NewsletterHandler) Subscribe(c *gin.Context) {
	var req marketingapp.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	sub, err := h.newsletterService.Subscribe(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, sub)
}

// List godoc
// @Summary      List newsletter subscriptions
// @Tags         newsletters
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20)
// @Success      200 {object} dto.Response{data=[]marketingapp.SubscriptionResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /newsletters [get]
func (h *NewsletterHandler) List(c *gin.Context) {
	var filter marketingapp.PageFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	subs, total, err := h.newsletterService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	p, size := page(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, subs, total, p, size)
}

// Delete godoc
// @Summary      Remove a newsletter subscription
// @Tags         newsletters
// @Param        id path string true "Subscription ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /newsletters/{id} [delete]
func (h *NewsletterHandler) Delete(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}

	if err := h.newsletterService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ContactHandler handles contact form messages
type ContactHandler struct {
	BaseHandler
	contactService *marketingapp.ContactService
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(contactService *marketingapp.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// Create godoc
// @Summary      Send a contact message
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        request body marketingapp.ContactRequest true "Message"
// @Success      201 {object} dto.Response{data=marketingapp.ContactResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /contact [post]
func (h *ContactHandler) Create(c *gin.Context) {
	var req marketingapp.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	msg, err := h.contactService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, msg)
}

// GetByID godoc
// @Summary      Get a contact message
// @Tags         contact
// @Produce      json
// @Param        id path string true "Message ID" format(uuid)
// @Success      200 {object} dto.Response{data=marketingapp.ContactResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /contact/{id} [get]
func (h *ContactHandler) GetByID(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}

	msg, err := h.contactService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, msg)
}

// List godoc
// @Summary      List contact messages
// @Tags         contact
// @Produce      json
// @Param        etat query string false "State" Enums(ouvert, ferme)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20)
// @Success      200 {object} dto.Response{data=[]marketingapp.ContactResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /contact [get]
func (h *ContactHandler) List(c *gin.Context) {
	var filter marketingapp.ContactListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	msgs, total, err := h.contactService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	p, size := page(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, msgs, total, p, size)
}

// SetState godoc
// @Summary      Close or reopen a contact message
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        id path string true "Message ID" format(uuid)
// @Param        request body marketingapp.ContactStateRequest true "State"
// @Success      200 {object} dto.Response{data=marketingapp.ContactResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /contact/{id} [patch]
func (h *ContactHandler) SetState(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req marketingapp.ContactStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	msg, err := h.contactService.SetState(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, msg)
}

// Delete godoc
// @Summary      Delete a contact message
// @Tags         contact
// @Param        id path string true "Message ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /contact/{id} [delete]
func (h *ContactHandler) Delete(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}

	if err := h.contactService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// BannerHandler handles the home page carousel
type BannerHandler struct {
	BaseHandler
	bannerService *marketingapp.BannerService
}

// NewBannerHandler creates a new BannerHandler
func NewBannerHandler(bannerService *marketingapp.BannerService) *BannerHandler {
	return &BannerHandler{bannerService: bannerService}
}

// Create godoc
// @Summary      Upload a banner
// @Tags         banners
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "Image or video"
// @Param        title formData string false "Title"
// @Param        show formData bool false "Shown on the home page" default(true)
// @Success      201 {object} dto.Response{data=marketingapp.BannerResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /banners [post]
func (h *BannerHandler) Create(c *gin.Context) {
	var req marketingapp.BannerRequest
	if err := c.ShouldBind(&req); err != nil {
		h.BindError(c, err)
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			h.BadRequest(c, "file is required")
			return
		}
		h.BadRequest(c, "Invalid multipart form")
		return
	}

	var files uploadSet
	defer files.Close()
	upload, err := files.open(fh)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	banner, err := h.bannerService.Create(c.Request.Context(), req, upload)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, banner)
}

// GetByID godoc
// @Summary      Get a banner
// @Tags         banners
// @Produce      json
// @Param        id path string true "Banner ID" format(uuid)
// @Success      200 {object} dto.Response{data=marketingapp.BannerResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /banners/{id} [get]
func (h *BannerHandler) GetByID(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}

	banner, err := h.bannerService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, banner)
}

// List godoc
// @Summary      List banners
// @Description  Anonymous and customer callers see the visible banners only. Admins see every banner and may filter on show.
// @Tags         banners
// @Produce      json
// @Param        show query bool false "Show flag filter (admin only)"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20)
// @Success      200 {object} dto.Response{data=[]marketingapp.BannerResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /banners [get]
func (h *BannerHandler) List(c *gin.Context) {
	var filter marketingapp.PageFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	var (
		banners []marketingapp.BannerResponse
		total   int64
		err     error
	)
	if principal(c).IsAdmin() {
		var show *bool
		if raw, ok := c.GetQuery("show"); ok {
			v, perr := strconv.ParseBool(raw)
			if perr != nil {
				h.BadRequest(c, "show must be a boolean")
				return
			}
			show = &v
		}
		banners, total, err = h.bannerService.List(c.Request.Context(), filter, show)
	} else {
		banners, total, err = h.bannerService.ListVisible(c.Request.Context(), filter)
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}

	p, size := page(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, banners, total, p, size)
}

// Update godoc
// @Summary      Update a banner
// @Description  Title and show are always replaced. Sending a file replaces the stored object.
// @Tags         banners
// @Accept       multipart/form-data
// @Produce      json
// @Param        id path string true "Banner ID" format(uuid)
// @Param        file formData file false "Image or video"
// @Param        title formData string false "Title"
// @Param        show formData bool false "Shown on the home page"
// @Success      200 {object} dto.Response{data=marketingapp.BannerResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /banners/{id} [put]
func (h *BannerHandler) Update(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req marketingapp.BannerRequest
	if err := c.ShouldBind(&req); err != nil {
		h.BindError(c, err)
		return
	}

	var files uploadSet
	defer files.Close()

	var upload *catalogapp.Upload
	if fh, err := c.FormFile("file"); err == nil {
		u, err := files.open(fh)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		upload = &u
	}

	banner, err := h.bannerService.Update(c.Request.Context(), id, req, upload)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, banner)
}

// Delete godoc
// @Summary      Delete a banner
// @Description  The stored object is removed as well
// @Tags         banners
// @Param        id path string true "Banner ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /banners/{id} [delete]
func (h *BannerHandler) Delete(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}

	if err := h.bannerService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
