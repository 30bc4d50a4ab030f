package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for the Order aggregate root
type OrderModel struct {
	AggregateModel
	UserID              *uuid.UUID       `gorm:"type:uuid;index"`
	ClientID            *uuid.UUID       `gorm:"type:uuid;index"`
	CustomerFullname    string           `gorm:"type:varchar(255)"`
	CustomerPhonenumber string           `gorm:"type:varchar(255)"`
	ShippingAddress     string           `gorm:"type:varchar(255)"`
	BillingAddress      string           `gorm:"type:varchar(255)"`
	Status              string           `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	PaymentStatus       bool             `gorm:"not null;default:false"`
	TotalPrice          decimal.Decimal  `gorm:"type:numeric(12,2);not null;default:0"`
	Items               []OrderItemModel `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order
func (m *OrderModel) ToDomain() *trade.Order {
	o := &trade.Order{
		BaseAggregateRoot:   m.ToAggregateRoot(),
		UserID:              m.UserID,
		ClientID:            m.ClientID,
		CustomerFullname:    m.CustomerFullname,
		CustomerPhonenumber: m.CustomerPhonenumber,
		ShippingAddress:     m.ShippingAddress,
		BillingAddress:      m.BillingAddress,
		Status:              trade.OrderStatus(m.Status),
		PaymentStatus:       m.PaymentStatus,
		TotalPrice:          money(m.TotalPrice),
		Items:               make([]trade.OrderItem, len(m.Items)),
	}
	for i := range m.Items {
		o.Items[i] = m.Items[i].ToDomain()
	}
	return o
}

// OrderModelFromDomain creates a persistence model from a domain Order.
// Items are returned separately so the repository can rewrite them.
func OrderModelFromDomain(o *trade.Order) (*OrderModel, []OrderItemModel) {
	m := &OrderModel{
		UserID:              o.UserID,
		ClientID:            o.ClientID,
		CustomerFullname:    o.CustomerFullname,
		CustomerPhonenumber: o.CustomerPhonenumber,
		ShippingAddress:     o.ShippingAddress,
		BillingAddress:      o.BillingAddress,
		Status:              string(o.Status),
		PaymentStatus:       o.PaymentStatus,
		TotalPrice:          o.TotalPrice.Amount(),
	}
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)

	items := make([]OrderItemModel, len(o.Items))
	for i, it := range o.Items {
		items[i] = OrderItemModel{
			ID:               it.ID,
			OrderID:          o.ID,
			ProductID:        it.ProductID,
			ProductName:      it.ProductName,
			ProductReference: it.ProductReference,
			Quantity:         it.Quantity,
			UnitPrice:        it.UnitPrice.Amount(),
			TotalPrice:       it.TotalPrice.Amount(),
			Position:         i,
			CreatedAt:        it.CreatedAt,
		}
	}
	return m, items
}

// OrderItemModel is a ProductInOrder ledger row
type OrderItemModel struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName      string          `gorm:"type:varchar(255)"`
	ProductReference string          `gorm:"type:varchar(100)"`
	Quantity         int             `gorm:"not null"`
	UnitPrice        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	TotalPrice       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Position         int             `gorm:"not null;default:0"` // index in the submitted list
	CreatedAt        time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the row to a domain OrderItem
func (m *OrderItemModel) ToDomain() trade.OrderItem {
	return trade.OrderItem{
		ID:               m.ID,
		OrderID:          m.OrderID,
		ProductID:        m.ProductID,
		ProductName:      m.ProductName,
		ProductReference: m.ProductReference,
		Quantity:         m.Quantity,
		UnitPrice:        money(m.UnitPrice),
		TotalPrice:       money(m.TotalPrice),
		CreatedAt:        m.CreatedAt,
	}
}

// BuyingBillModel is the persistence model for the BuyingBill aggregate root
type BuyingBillModel struct {
	AggregateModel
	BillNumber    string          `gorm:"column:bill_number;type:varchar(50);not null;uniqueIndex"`
	SupplierID    *uuid.UUID      `gorm:"type:uuid;index"`
	PaymentMethod string          `gorm:"type:varchar(50)"`
	IsPaid        bool            `gorm:"not null;default:false"`
	Date          time.Time       `gorm:"not null"`
	TotalAmount   decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	Items         []BillItemModel `gorm:"foreignKey:BillID;references:ID"`
}

// TableName returns the table name for GORM
func (BuyingBillModel) TableName() string {
	return "buying_bills"
}

// ToDomain converts the persistence model to a domain BuyingBill
func (m *BuyingBillModel) ToDomain() *trade.BuyingBill {
	b := &trade.BuyingBill{
		BaseAggregateRoot: m.ToAggregateRoot(),
		BillNumber:        m.BillNumber,
		SupplierID:        m.SupplierID,
		PaymentMethod:     m.PaymentMethod,
		IsPaid:            m.IsPaid,
		Date:              m.Date,
		TotalAmount:       money(m.TotalAmount),
		Items:             make([]trade.BillItem, len(m.Items)),
	}
	for i := range m.Items {
		b.Items[i] = m.Items[i].ToDomain()
	}
	return b
}

// BuyingBillModelFromDomain creates a persistence model from a domain BuyingBill
func BuyingBillModelFromDomain(b *trade.BuyingBill) (*BuyingBillModel, []BillItemModel) {
	m := &BuyingBillModel{
		BillNumber:    b.BillNumber,
		SupplierID:    b.SupplierID,
		PaymentMethod: b.PaymentMethod,
		IsPaid:        b.IsPaid,
		Date:          b.Date,
		TotalAmount:   b.TotalAmount.Amount(),
	}
	m.FromDomainAggregateRoot(b.BaseAggregateRoot)

	items := make([]BillItemModel, len(b.Items))
	for i, it := range b.Items {
		items[i] = BillItemModel{
			ID:               it.ID,
			BillID:           b.ID,
			ProductID:        it.ProductID,
			ProductName:      it.ProductName,
			ProductReference: it.ProductReference,
			Quantity:         it.Quantity,
			UnitPrice:        it.UnitPrice.Amount(),
			TotalPrice:       it.TotalPrice.Amount(),
			Position:         i,
			CreatedAt:        it.CreatedAt,
		}
	}
	return m, items
}

// BillItemModel is a ProductInBill ledger row
type BillItemModel struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	BillID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName      string          `gorm:"type:varchar(255)"`
	ProductReference string          `gorm:"type:varchar(100)"`
	Quantity         int             `gorm:"not null"`
	UnitPrice        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	TotalPrice       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Position         int             `gorm:"not null;default:0"` // index in the submitted list
	CreatedAt        time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (BillItemModel) TableName() string {
	return "bill_items"
}

// ToDomain converts the row to a domain BillItem
func (m *BillItemModel) ToDomain() trade.BillItem {
	return trade.BillItem{
		ID:               m.ID,
		BillID:           m.BillID,
		ProductID:        m.ProductID,
		ProductName:      m.ProductName,
		ProductReference: m.ProductReference,
		Quantity:         m.Quantity,
		UnitPrice:        money(m.UnitPrice),
		TotalPrice:       money(m.TotalPrice),
		CreatedAt:        m.CreatedAt,
	}
}
