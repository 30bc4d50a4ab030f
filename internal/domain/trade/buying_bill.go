package trade

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/shared"
	"github.com/shopfront/backend/internal/domain/shared/valueobject"
)

// BillItem is a ProductInBill ledger row: stock received through a buying bill
type BillItem struct {
	ID               uuid.UUID
	BillID           uuid.UUID
	ProductID        uuid.UUID
	ProductName      string
	ProductReference string
	Quantity         int
	UnitPrice        valueobject.Money
	TotalPrice       valueobject.Money // Quantity * UnitPrice
	CreatedAt        time.Time
}

// BillHeader carries the caller-editable scalar fields of a buying bill
type BillHeader struct {
	BillNumber    string
	SupplierID    *uuid.UUID
	PaymentMethod string
	IsPaid        bool
}

// BillInput is a full buying bill submission
type BillInput struct {
	BillHeader
	Items []LineRequest
}

// BillDraft is a validated buying bill submission
type BillDraft struct {
	Header BillHeader
	Lines  []Line
}

// ValidateBill checks a buying bill submission without touching storage.
// Lines are kept as submitted; the same product may appear more than once.
func ValidateBill(in BillInput) (*BillDraft, error) {
	header, err := normalizeBillHeader(in.BillHeader)
	if err != nil {
		return nil, err
	}
	lines, err := ValidateBillItems(in.Items)
	if err != nil {
		return nil, err
	}
	return &BillDraft{Header: header, Lines: lines}, nil
}

// ValidateBillItems validates a replacement item list
func ValidateBillItems(items []LineRequest) ([]Line, error) {
	lines, err := buildLines(items)
	if err != nil {
		return nil, err
	}
	if err := checkTotal(lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func normalizeBillHeader(h BillHeader) (BillHeader, error) {
	h.BillNumber = strings.TrimSpace(h.BillNumber)
	h.PaymentMethod = strings.TrimSpace(h.PaymentMethod)

	if h.BillNumber == "" {
		return h, shared.NewDomainError("INVALID_BILL_ID", "Bill number cannot be empty")
	}
	if len(h.BillNumber) > 50 {
		return h, shared.NewDomainError("INVALID_BILL_ID", "Bill number cannot exceed 50 characters")
	}
	if len(h.PaymentMethod) > 50 {
		return h, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method cannot exceed 50 characters")
	}
	if h.SupplierID != nil && *h.SupplierID == uuid.Nil {
		h.SupplierID = nil
	}
	return h, nil
}

// BuyingBill is the aggregate root for a supplier purchase. It exclusively owns its items.
type BuyingBill struct {
	shared.BaseAggregateRoot
	BillNumber    string
	SupplierID    *uuid.UUID
	PaymentMethod string
	IsPaid        bool
	Date          time.Time
	TotalAmount   valueobject.Money // always the sum of Items[].TotalPrice
	Items         []BillItem
}

// NewBuyingBill builds a bill from a validated draft
func NewBuyingBill(draft *BillDraft) *BuyingBill {
	b := &BuyingBill{BaseAggregateRoot: shared.NewBaseAggregateRoot()}
	b.Date = b.CreatedAt
	b.setHeaderFields(draft.Header)
	b.setItems(draft.Lines)
	return b
}

// UpdateHeader replaces the scalar fields
func (b *BuyingBill) UpdateHeader(h BillHeader) error {
	h, err := normalizeBillHeader(h)
	if err != nil {
		return err
	}
	b.setHeaderFields(h)
	b.IncrementVersion()
	return nil
}

// ReplaceItems drops every current item, recreates them from lines and
// recomputes TotalAmount.
func (b *BuyingBill) ReplaceItems(lines []Line) {
	b.setItems(lines)
	b.IncrementVersion()
}

func (b *BuyingBill) setHeaderFields(h BillHeader) {
	b.BillNumber = h.BillNumber
	b.SupplierID = h.SupplierID
	b.PaymentMethod = h.PaymentMethod
	b.IsPaid = h.IsPaid
}

func (b *BuyingBill) setItems(lines []Line) {
	now := time.Now()
	items := make([]BillItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, BillItem{
			ID:               uuid.New(),
			BillID:           b.ID,
			ProductID:        l.ProductID,
			ProductName:      l.ProductName,
			ProductReference: l.ProductReference,
			Quantity:         l.Quantity,
			UnitPrice:        l.UnitPrice,
			TotalPrice:       l.TotalPrice,
			CreatedAt:        now,
		})
	}
	b.Items = items
	b.recalculateTotal()
}

func (b *BuyingBill) recalculateTotal() {
	total := valueobject.Zero()
	for _, item := range b.Items {
		total = total.Add(item.TotalPrice)
	}
	b.TotalAmount = total
}

var (
	// ErrBillNotFound is returned when a buying bill id does not resolve
	ErrBillNotFound = shared.NewDomainError("BILL_NOT_FOUND", "Buying bill not found")
	// ErrBillNumberTaken is returned when bill_id is already used
	ErrBillNumberTaken = shared.NewDomainError("BILL_ID_EXISTS", "A buying bill with this bill_id already exists")
	// ErrSupplierNotFound is returned when a bill references an unknown supplier
	ErrSupplierNotFound = shared.NewDomainError("SUPPLIER_NOT_FOUND", "Referenced supplier does not exist")
)
