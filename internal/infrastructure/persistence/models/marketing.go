package models

import (
	"github.com/shopfront/backend/internal/domain/marketing"
)

// SubscriptionModel is a newsletter signup row
type SubscriptionModel struct {
	BaseModel
	Email string `gorm:"type:varchar(254);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (SubscriptionModel) TableName() string {
	return "newsletter_subscriptions"
}

// ToDomain converts the row to a domain Subscription
func (m *SubscriptionModel) ToDomain() *marketing.Subscription {
	return &marketing.Subscription{BaseEntity: m.BaseModel.ToDomain(), Email: m.Email}
}

// SubscriptionModelFromDomain creates a row from a domain Subscription
func SubscriptionModelFromDomain(s *marketing.Subscription) *SubscriptionModel {
	m := &SubscriptionModel{Email: s.Email}
	m.FromDomainBaseEntity(s.BaseEntity)
	return m
}

// ContactMessageModel is a contact form row
type ContactMessageModel struct {
	BaseModel
	Name    string `gorm:"type:varchar(100);not null"`
	Email   string `gorm:"type:varchar(254);not null"`
	Message string `gorm:"type:text;not null"`
	Etat    string `gorm:"column:etat;type:varchar(10);not null;default:'ouvert';index"`
}

// TableName returns the table name for GORM
func (ContactMessageModel) TableName() string {
	return "contact_messages"
}

// ToDomain converts the row to a domain ContactMessage
func (m *ContactMessageModel) ToDomain() *marketing.ContactMessage {
	return &marketing.ContactMessage{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Email:      m.Email,
		Message:    m.Message,
		State:      marketing.ContactState(m.Etat),
	}
}

// ContactMessageModelFromDomain creates a row from a domain ContactMessage
func ContactMessageModelFromDomain(c *marketing.ContactMessage) *ContactMessageModel {
	m := &ContactMessageModel{
		Name:    c.Name,
		Email:   c.Email,
		Message: c.Message,
		Etat:    string(c.State),
	}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}

// BannerModel is a carousel banner row
type BannerModel struct {
	BaseModel
	FileURL string `gorm:"type:varchar(1024);not null"`
	FileKey string `gorm:"type:varchar(512)"`
	Title   string `gorm:"type:varchar(25)"`
	Show    bool   `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (BannerModel) TableName() string {
	return "banners"
}

// ToDomain converts the row to a domain Banner
func (m *BannerModel) ToDomain() *marketing.Banner {
	return &marketing.Banner{
		BaseEntity: m.BaseModel.ToDomain(),
		FileURL:    m.FileURL,
		FileKey:    m.FileKey,
		Title:      m.Title,
		Show:       m.Show,
	}
}

// BannerModelFromDomain creates a row from a domain Banner
func BannerModelFromDomain(b *marketing.Banner) *BannerModel {
	m := &BannerModel{
		FileURL: b.FileURL,
		FileKey: b.FileKey,
		Title:   b.Title,
		Show:    b.Show,
	}
	m.FromDomainBaseEntity(b.BaseEntity)
	return m
}
