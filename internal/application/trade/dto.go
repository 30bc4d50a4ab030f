package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/shared/valueobject"
	"github.com/shopfront/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// LineItemRequest is one (product, quantity, unit_price) entry of an order or bill
type LineItemRequest struct {
	Product   uuid.UUID       `json:"product" binding:"required"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateOrderRequest is the body of POST /orders
type CreateOrderRequest struct {
	CustomerFullname    string            `json:"customer_fullname" binding:"max=255"`
	CustomerPhonenumber string            `json:"customer_phonenumber" binding:"max=255"`
	ShippingAddress     string            `json:"shipping_address" binding:"max=255"`
	BillingAddress      string            `json:"billing_address" binding:"max=255"`
	Status              string            `json:"status" binding:"omitempty,oneof=PENDING CONFIRMED CANCELLED"`
	PaymentStatus       bool              `json:"payment_status"`
	Items               []LineItemRequest `json:"items" binding:"dive"`
}

// UpdateOrderRequest is the body of PUT /orders/{id}. Scalar fields are
// replaced; items are replaced only when present.
type UpdateOrderRequest struct {
	CustomerFullname    string             `json:"customer_fullname" binding:"max=255"`
	CustomerPhonenumber string             `json:"customer_phonenumber" binding:"max=255"`
	ShippingAddress     string             `json:"shipping_address" binding:"max=255"`
	BillingAddress      string             `json:"billing_address" binding:"max=255"`
	Status              string             `json:"status" binding:"omitempty,oneof=PENDING CONFIRMED CANCELLED"`
	PaymentStatus       bool               `json:"payment_status"`
	Items               *[]LineItemRequest `json:"items" binding:"omitempty,dive"`
}

// OrderListFilter represents filter options for the order list
type OrderListFilter struct {
	Search        string     `form:"search"`
	Status        string     `form:"status" binding:"omitempty,oneof=PENDING CONFIRMED CANCELLED"`
	ClientID      *uuid.UUID `form:"client_id"`
	UserID        *uuid.UUID `form:"user_id"`
	PaymentStatus *bool      `form:"payment_status"`
	Page          int        `form:"page" binding:"omitempty,min=1"`
	PageSize      int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy       string     `form:"order_by"`
	OrderDir      string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// OrderItemResponse is one ProductInOrder line
type OrderItemResponse struct {
	Product          uuid.UUID         `json:"product"`
	ProductReference string            `json:"product_reference"`
	ProductName      string            `json:"product_name"`
	Quantity         int               `json:"quantity"`
	UnitPrice        valueobject.Money `json:"unit_price"`
	TotalPrice       valueobject.Money `json:"total_price"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID                  uuid.UUID           `json:"id"`
	User                *uuid.UUID          `json:"user"`
	Client              *uuid.UUID          `json:"client"`
	CustomerFullname    string              `json:"customer_fullname"`
	CustomerPhonenumber string              `json:"customer_phonenumber"`
	ShippingAddress     string              `json:"shipping_address"`
	BillingAddress      string              `json:"billing_address"`
	Status              string              `json:"status"`
	PaymentStatus       bool                `json:"payment_status"`
	TotalPrice          valueobject.Money   `json:"total_price"`
	Items               []OrderItemResponse `json:"items"`
	CreatedAt           time.Time           `json:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at"`
}

// CreateBillRequest is the body of POST /buyingBills
type CreateBillRequest struct {
	BillID        string            `json:"bill_id" binding:"required,max=50"`
	Fournisseur   *uuid.UUID        `json:"fournisseur"`
	PaymentMethod string            `json:"payment_method" binding:"max=50"`
	IsPaid        bool              `json:"is_paid"`
	Products      []LineItemRequest `json:"products" binding:"dive"`
}

// UpdateBillRequest is the body of PUT /buyingBills/{id}
type UpdateBillRequest struct {
	BillID        string             `json:"bill_id" binding:"required,max=50"`
	Fournisseur   *uuid.UUID         `json:"fournisseur"`
	PaymentMethod string             `json:"payment_method" binding:"max=50"`
	IsPaid        bool               `json:"is_paid"`
	Products      *[]LineItemRequest `json:"products" binding:"omitempty,dive"`
}

// BillListFilter represents filter options for the buying bill list
type BillListFilter struct {
	Search     string     `form:"search"`
	SupplierID *uuid.UUID `form:"fournisseur"`
	IsPaid     *bool      `form:"is_paid"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// BillItemResponse is one ProductInBill line
type BillItemResponse struct {
	Product    uuid.UUID         `json:"product"`
	Reference  string            `json:"reference"`
	Name       string            `json:"name"`
	Quantity   int               `json:"quantity"`
	UnitPrice  valueobject.Money `json:"unit_price"`
	TotalPrice valueobject.Money `json:"total_price"`
}

// BillResponse represents a buying bill in API responses
type BillResponse struct {
	ID            uuid.UUID          `json:"id"`
	BillID        string             `json:"bill_id"`
	Date          time.Time          `json:"date"`
	PaymentMethod string             `json:"payment_method"`
	IsPaid        bool               `json:"is_paid"`
	TotalAmount   valueobject.Money  `json:"total_amount"`
	Fournisseur   *uuid.UUID         `json:"fournisseur"`
	Products      []BillItemResponse `json:"products"`
}

func toLineRequests(items []LineItemRequest) []trade.LineRequest {
	reqs := make([]trade.LineRequest, 0, len(items))
	for _, it := range items {
		reqs = append(reqs, trade.LineRequest{
			ProductID: it.Product,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	return reqs
}

func (r CreateOrderRequest) toInput() trade.OrderInput {
	return trade.OrderInput{
		OrderHeader: trade.OrderHeader{
			CustomerFullname:    r.CustomerFullname,
			CustomerPhonenumber: r.CustomerPhonenumber,
			ShippingAddress:     r.ShippingAddress,
			BillingAddress:      r.BillingAddress,
			Status:              trade.OrderStatus(r.Status),
			PaymentStatus:       r.PaymentStatus,
		},
		Items: toLineRequests(r.Items),
	}
}

func (r UpdateOrderRequest) header() trade.OrderHeader {
	return trade.OrderHeader{
		CustomerFullname:    r.CustomerFullname,
		CustomerPhonenumber: r.CustomerPhonenumber,
		ShippingAddress:     r.ShippingAddress,
		BillingAddress:      r.BillingAddress,
		Status:              trade.OrderStatus(r.Status),
		PaymentStatus:       r.PaymentStatus,
	}
}

func (r CreateBillRequest) toInput() trade.BillInput {
	return trade.BillInput{
		BillHeader: trade.BillHeader{
			BillNumber:    r.BillID,
			SupplierID:    r.Fournisseur,
			PaymentMethod: r.PaymentMethod,
			IsPaid:        r.IsPaid,
		},
		Items: toLineRequests(r.Products),
	}
}

func (r UpdateBillRequest) header() trade.BillHeader {
	return trade.BillHeader{
		BillNumber:    r.BillID,
		SupplierID:    r.Fournisseur,
		PaymentMethod: r.PaymentMethod,
		IsPaid:        r.IsPaid,
	}
}

// ToOrderResponse converts a domain Order to OrderResponse
func ToOrderResponse(o *trade.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemResponse{
			Product:          it.ProductID,
			ProductReference: it.ProductReference,
			ProductName:      it.ProductName,
			Quantity:         it.Quantity,
			UnitPrice:        it.UnitPrice,
			TotalPrice:       it.TotalPrice,
		})
	}
	return OrderResponse{
		ID:                  o.ID,
		User:                o.UserID,
		Client:              o.ClientID,
		CustomerFullname:    o.CustomerFullname,
		CustomerPhonenumber: o.CustomerPhonenumber,
		ShippingAddress:     o.ShippingAddress,
		BillingAddress:      o.BillingAddress,
		Status:              o.Status.String(),
		PaymentStatus:       o.PaymentStatus,
		TotalPrice:          o.TotalPrice,
		Items:               items,
		CreatedAt:           o.CreatedAt,
		UpdatedAt:           o.UpdatedAt,
	}
}

// ToOrderResponses converts a slice of orders
func ToOrderResponses(orders []trade.Order) []OrderResponse {
	out := make([]OrderResponse, len(orders))
	for i := range orders {
		out[i] = ToOrderResponse(&orders[i])
	}
	return out
}

// ToBillResponse converts a domain BuyingBill to BillResponse
func ToBillResponse(b *trade.BuyingBill) BillResponse {
	items := make([]BillItemResponse, 0, len(b.Items))
	for _, it := range b.Items {
		items = append(items, BillItemResponse{
			Product:    it.ProductID,
			Reference:  it.ProductReference,
			Name:       it.ProductName,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			TotalPrice: it.TotalPrice,
		})
	}
	return BillResponse{
		ID:            b.ID,
		BillID:        b.BillNumber,
		Date:          b.Date,
		PaymentMethod: b.PaymentMethod,
		IsPaid:        b.IsPaid,
		TotalAmount:   b.TotalAmount,
		Fournisseur:   b.SupplierID,
		Products:      items,
	}
}

// ToBillResponses converts a slice of bills
func ToBillResponses(bills []trade.BuyingBill) []BillResponse {
	out := make([]BillResponse, len(bills))
	for i := range bills {
		out[i] = ToBillResponse(&bills[i])
	}
	return out
}
