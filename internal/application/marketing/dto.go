package marketing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/marketing"
	"github.com/shopfront/backend/internal/domain/shared"
)

// SubscribeRequest is the body of POST /newsletters
type SubscribeRequest struct {
	Email string `json:"email" binding:"required,email,max=254"`
}

// SubscriptionResponse represents a newsletter subscription in API responses
type SubscriptionResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// ContactRequest is the body of POST /contact
type ContactRequest struct {
	Name    string `json:"nom" binding:"required,max=100"`
	Email   string `json:"email" binding:"required,email,max=254"`
	Message string `json:"message" binding:"required,max=5000"`
}

// ContactStateRequest is the body of PATCH /contact/{id}
type ContactStateRequest struct {
	State string `json:"etat" binding:"required,oneof=ouvert ferme"`
}

// ContactResponse represents a contact message in API responses
type ContactResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"nom"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	State     string    `json:"etat"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ContactListFilter represents filter options for the contact list
type ContactListFilter struct {
	State    string `form:"etat" binding:"omitempty,oneof=ouvert ferme"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// BannerRequest carries the form fields of a banner upload or update
type BannerRequest struct {
	Title string `form:"title" binding:"max=25"`
	Show  *bool  `form:"show"`
}

// BannerResponse represents a carousel banner in API responses
type BannerResponse struct {
	ID        uuid.UUID `json:"id"`
	File      string    `json:"file"`
	Title     string    `json:"title"`
	Show      bool      `json:"show"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PageFilter is the paging part shared by the newsletter and banner lists
type PageFilter struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

func (p PageFilter) toDomain() shared.Filter {
	f := shared.Filter{
		Page:     p.Page,
		PageSize: p.PageSize,
		OrderBy:  p.OrderBy,
		OrderDir: p.OrderDir,
		Filters:  map[string]any{},
	}
	if f.OrderBy == "" {
		f.OrderBy = "created_at"
		f.OrderDir = "desc"
	}
	return f.Normalize()
}

// ToSubscriptionResponse converts a domain Subscription
func ToSubscriptionResponse(s *marketing.Subscription) SubscriptionResponse {
	return SubscriptionResponse{ID: s.ID, Email: s.Email, CreatedAt: s.CreatedAt}
}

// ToContactResponse converts a domain ContactMessage
func ToContactResponse(m *marketing.ContactMessage) ContactResponse {
	return ContactResponse{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Message:   m.Message,
		State:     string(m.State),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// ToBannerResponse converts a domain Banner
func ToBannerResponse(b *marketing.Banner) BannerResponse {
	return BannerResponse{
		ID:        b.ID,
		File:      b.FileURL,
		Title:     b.Title,
		Show:      b.Show,
		UpdatedAt: b.UpdatedAt,
	}
}
