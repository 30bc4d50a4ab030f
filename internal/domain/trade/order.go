package trade

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/shared"
	"github.com/shopfront/backend/internal/domain/shared/valueobject"
	"golang.org/x/text/unicode/norm"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// Staying in the same status is always allowed.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	if s == target {
		return true
	}
	switch s {
	case OrderStatusPending:
		return target == OrderStatusConfirmed || target == OrderStatusCancelled
	case OrderStatusConfirmed:
		return target == OrderStatusCancelled
	}
	return false
}

// OrderItem is a ProductInOrder ledger row: stock sold through an order
type OrderItem struct {
	ID               uuid.UUID
	OrderID          uuid.UUID
	ProductID        uuid.UUID
	ProductName      string
	ProductReference string
	Quantity         int
	UnitPrice        valueobject.Money
	TotalPrice       valueobject.Money // Quantity * UnitPrice
	CreatedAt        time.Time
}

// OrderHeader carries the caller-editable scalar fields of an order
type OrderHeader struct {
	CustomerFullname    string
	CustomerPhonenumber string
	ShippingAddress     string
	BillingAddress      string
	Status              OrderStatus // empty means "keep" on update and PENDING on create
	PaymentStatus       bool
}

// OrderInput is a full order submission
type OrderInput struct {
	OrderHeader
	Items []LineRequest
}

// OrderDraft is a validated order submission, not yet bound to storage
type OrderDraft struct {
	Header  OrderHeader
	Lines   []Line
	Dropped []uuid.UUID // product ids of duplicate lines that were skipped
}

// Total returns the sum of the accepted lines
func (d *OrderDraft) Total() valueobject.Money {
	return SumLines(d.Lines)
}

// ValidateOrder checks an order submission without touching storage. Every
// item is validated; duplicates of an already seen product are then dropped,
// first occurrence wins. An empty item list is accepted.
func ValidateOrder(in OrderInput) (*OrderDraft, error) {
	header, err := normalizeOrderHeader(in.OrderHeader)
	if err != nil {
		return nil, err
	}

	lines, err := buildLines(in.Items)
	if err != nil {
		return nil, err
	}
	kept, dropped := DedupByProduct(lines)
	if err := checkTotal(kept); err != nil {
		return nil, err
	}

	return &OrderDraft{
		Header:  header,
		Lines:   kept,
		Dropped: dropped,
	}, nil
}

// ValidateOrderItems validates and dedups a replacement item list
func ValidateOrderItems(items []LineRequest) ([]Line, []uuid.UUID, error) {
	lines, err := buildLines(items)
	if err != nil {
		return nil, nil, err
	}
	kept, dropped := DedupByProduct(lines)
	if err := checkTotal(kept); err != nil {
		return nil, nil, err
	}
	return kept, dropped, nil
}

func normalizeOrderHeader(h OrderHeader) (OrderHeader, error) {
	// NFC so the name matches clients stored through partner.Profile
	h.CustomerFullname = norm.NFC.String(strings.TrimSpace(h.CustomerFullname))
	h.CustomerPhonenumber = strings.TrimSpace(h.CustomerPhonenumber)
	h.ShippingAddress = strings.TrimSpace(h.ShippingAddress)
	h.BillingAddress = strings.TrimSpace(h.BillingAddress)

	if len(h.CustomerFullname) > 255 || len(h.CustomerPhonenumber) > 255 {
		return h, shared.NewDomainError("INVALID_CUSTOMER", "Customer name and phone cannot exceed 255 characters")
	}
	if len(h.ShippingAddress) > 255 || len(h.BillingAddress) > 255 {
		return h, shared.NewDomainError("INVALID_ADDRESS", "Addresses cannot exceed 255 characters")
	}
	if h.Status != "" && !h.Status.IsValid() {
		return h, shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown order status %q", h.Status))
	}
	return h, nil
}

// Order is the aggregate root for a customer order. It exclusively owns its items.
type Order struct {
	shared.BaseAggregateRoot
	UserID              *uuid.UUID // registered buyer, nil for guest checkout
	ClientID            *uuid.UUID // client matched by name, if any
	CustomerFullname    string
	CustomerPhonenumber string
	ShippingAddress     string
	BillingAddress      string
	Status              OrderStatus
	PaymentStatus       bool
	TotalPrice          valueobject.Money
	Items               []OrderItem
}

// NewOrder builds an order from a validated draft. A draft status other than
// PENDING must be reachable from PENDING.
func NewOrder(draft *OrderDraft, userID *uuid.UUID) (*Order, error) {
	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Status:            OrderStatusPending,
	}
	o.setHeaderFields(draft.Header)
	if err := o.ChangeStatus(draft.Header.Status); err != nil {
		return nil, err
	}
	o.setItems(draft.Lines)
	return o, nil
}

// AttachClient links the order to a known client
func (o *Order) AttachClient(clientID uuid.UUID) {
	o.ClientID = &clientID
}

// UpdateHeader replaces the scalar fields and applies a status change if requested
func (o *Order) UpdateHeader(h OrderHeader) error {
	h, err := normalizeOrderHeader(h)
	if err != nil {
		return err
	}
	if err := o.ChangeStatus(h.Status); err != nil {
		return err
	}
	o.setHeaderFields(h)
	o.IncrementVersion()
	return nil
}

// ChangeStatus moves the order to target following the status machine.
// An empty target is a no-op.
func (o *Order) ChangeStatus(target OrderStatus) error {
	if target == "" {
		return nil
	}
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown order status %q", target))
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATUS_TRANSITION",
			fmt.Sprintf("Cannot move order from %s to %s", o.Status, target))
	}
	o.Status = target
	return nil
}

// ReplaceItems drops every current item and recreates them from lines,
// then recomputes the total.
func (o *Order) ReplaceItems(lines []Line) {
	o.setItems(lines)
	o.IncrementVersion()
}

func (o *Order) setHeaderFields(h OrderHeader) {
	o.CustomerFullname = h.CustomerFullname
	o.CustomerPhonenumber = h.CustomerPhonenumber
	o.ShippingAddress = h.ShippingAddress
	o.BillingAddress = h.BillingAddress
	o.PaymentStatus = h.PaymentStatus
}

func (o *Order) setItems(lines []Line) {
	now := time.Now()
	items := make([]OrderItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, OrderItem{
			ID:               uuid.New(),
			OrderID:          o.ID,
			ProductID:        l.ProductID,
			ProductName:      l.ProductName,
			ProductReference: l.ProductReference,
			Quantity:         l.Quantity,
			UnitPrice:        l.UnitPrice,
			TotalPrice:       l.TotalPrice,
			CreatedAt:        now,
		})
	}
	o.Items = items
	o.recalculateTotal()
}

func (o *Order) recalculateTotal() {
	total := valueobject.Zero()
	for _, item := range o.Items {
		total = total.Add(item.TotalPrice)
	}
	o.TotalPrice = total
}

// IsGuest reports whether the order was placed without a registered user
func (o *Order) IsGuest() bool {
	return o.UserID == nil
}

// ItemCount returns the number of lines
func (o *Order) ItemCount() int {
	return len(o.Items)
}

// ErrOrderNotFound is returned when an order id does not resolve
var ErrOrderNotFound = shared.NewDomainError("ORDER_NOT_FOUND", "Order not found")
