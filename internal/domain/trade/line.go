package trade

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/shared"
	"github.com/shopfront/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// LineRequest is one requested (product, quantity, unit price) entry of an
// order or buying bill, as submitted by the caller.
type LineRequest struct {
	ProductID uuid.UUID
	Quantity  int
	UnitPrice decimal.Decimal
}

// Line is a validated ledger line. TotalPrice is always Quantity * UnitPrice.
type Line struct {
	ProductID        uuid.UUID
	ProductName      string
	ProductReference string
	Quantity         int
	UnitPrice        valueobject.Money
	TotalPrice       valueobject.Money
}

// ProductRef is the catalog data a line needs to describe its product
type ProductRef struct {
	Name      string
	Reference string
}

// ErrProductNotFound is returned when a line references an unknown product
var ErrProductNotFound = shared.NewDomainError("PRODUCT_NOT_FOUND", "Referenced product does not exist")

// NewLine validates a single request and computes its total
func NewLine(req LineRequest) (Line, error) {
	if req.ProductID == uuid.Nil {
		return Line{}, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if req.Quantity < 1 {
		return Line{}, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be a positive integer")
	}
	unitPrice, err := valueobject.NewPrice(req.UnitPrice)
	if err != nil {
		return Line{}, shared.NewDomainError("INVALID_PRICE", "Unit price "+err.Error())
	}
	total := unitPrice.Times(req.Quantity)
	if total.Amount().GreaterThanOrEqual(valueobject.MaxAmount) {
		return Line{}, shared.NewDomainError("INVALID_PRICE", "Line total "+valueobject.ErrAmountTooLarge.Error())
	}

	return Line{
		ProductID:  req.ProductID,
		Quantity:   req.Quantity,
		UnitPrice:  unitPrice,
		TotalPrice: total,
	}, nil
}

// DedupByProduct keeps the first line for each product and reports the
// product ids of the lines it dropped, in input order.
func DedupByProduct(lines []Line) (kept []Line, dropped []uuid.UUID) {
	seen := make(map[uuid.UUID]struct{}, len(lines))
	kept = make([]Line, 0, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.ProductID]; ok {
			dropped = append(dropped, l.ProductID)
			continue
		}
		seen[l.ProductID] = struct{}{}
		kept = append(kept, l)
	}
	return kept, dropped
}

// ProductIDs returns the distinct product ids referenced by lines
func ProductIDs(lines []Line) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(lines))
	ids := make([]uuid.UUID, 0, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.ProductID]; ok {
			continue
		}
		seen[l.ProductID] = struct{}{}
		ids = append(ids, l.ProductID)
	}
	return ids
}

// BindProducts fills product name and reference on every line. It fails with
// ErrProductNotFound if any product is missing from refs.
func BindProducts(lines []Line, refs map[uuid.UUID]ProductRef) error {
	for i := range lines {
		ref, ok := refs[lines[i].ProductID]
		if !ok {
			return shared.NewDomainError(ErrProductNotFound.Code,
				fmt.Sprintf("Product %s does not exist", lines[i].ProductID))
		}
		lines[i].ProductName = ref.Name
		lines[i].ProductReference = ref.Reference
	}
	return nil
}

// SumLines adds up the line totals
func SumLines(lines []Line) valueobject.Money {
	total := valueobject.Zero()
	for _, l := range lines {
		total = total.Add(l.TotalPrice)
	}
	return total
}

// ErrTotalTooLarge is returned when the lines of one order or bill add up
// past valueobject.MaxAmount
var ErrTotalTooLarge = shared.NewDomainError("INVALID_PRICE", "Total "+valueobject.ErrAmountTooLarge.Error())

func checkTotal(lines []Line) error {
	if SumLines(lines).Amount().GreaterThanOrEqual(valueobject.MaxAmount) {
		return ErrTotalTooLarge
	}
	return nil
}

func buildLines(reqs []LineRequest) ([]Line, error) {
	lines := make([]Line, 0, len(reqs))
	for i, r := range reqs {
		line, err := NewLine(r)
		if err != nil {
			de, _ := shared.AsDomainError(err)
			return nil, shared.NewDomainError(de.Code, fmt.Sprintf("items[%d]: %s", i, de.Message))
		}
		lines = append(lines, line)
	}
	return lines, nil
}
