package trade

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func req(id uuid.UUID, qty int, price string) LineRequest {
	return LineRequest{ProductID: id, Quantity: qty, UnitPrice: decimal.RequireFromString(price)}
}

func domainCode(t *testing.T, err error) string {
	t.Helper()
	de, ok := shared.AsDomainError(err)
	require.True(t, ok, "expected a domain error, got %v", err)
	return de.Code
}

func TestNewLine(t *testing.T) {
	p := uuid.New()

	t.Run("computes total", func(t *testing.T) {
		l, err := NewLine(req(p, 2, "9.99"))
		require.NoError(t, err)
		assert.Equal(t, "19.98", l.TotalPrice.String())
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		_, err := NewLine(req(p, 0, "1"))
		assert.Equal(t, "INVALID_QUANTITY", domainCode(t, err))
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := NewLine(req(p, 1, "-0.01"))
		assert.Equal(t, "INVALID_PRICE", domainCode(t, err))
	})

	t.Run("rejects missing product", func(t *testing.T) {
		_, err := NewLine(req(uuid.Nil, 1, "1"))
		assert.Equal(t, "INVALID_PRODUCT", domainCode(t, err))
	})

	t.Run("rejects a unit price with a third decimal", func(t *testing.T) {
		_, err := NewLine(req(p, 3, "3.335"))
		assert.Equal(t, "INVALID_PRICE", domainCode(t, err))
		assert.Contains(t, err.Error(), "decimal places")
	})

	t.Run("rejects a line total past ten digits", func(t *testing.T) {
		_, err := NewLine(req(p, 2, "50000000"))
		assert.Equal(t, "INVALID_PRICE", domainCode(t, err))

		l, err := NewLine(req(p, 2, "49999999.99"))
		require.NoError(t, err)
		assert.Equal(t, "99999999.98", l.TotalPrice.String())
	})
}

func TestOversizedTotals(t *testing.T) {
	p1, p2 := uuid.New(), uuid.New()
	items := []LineRequest{req(p1, 1, "60000000"), req(p2, 1, "40000000")}

	_, err := ValidateOrder(OrderInput{Items: items})
	assert.Equal(t, "INVALID_PRICE", domainCode(t, err))

	_, _, err = ValidateOrderItems(items)
	assert.Equal(t, "INVALID_PRICE", domainCode(t, err))

	_, err = ValidateBill(BillInput{BillHeader: BillHeader{BillNumber: "B-9"}, Items: items})
	assert.Equal(t, "INVALID_PRICE", domainCode(t, err))

	draft, err := ValidateOrder(OrderInput{Items: []LineRequest{req(p1, 1, "60000000"), req(p1, 1, "40000000")}})
	require.NoError(t, err, "dropped duplicates do not count toward the total")
	assert.Equal(t, "60000000.00", draft.Total().String())
}

func TestValidateOrder(t *testing.T) {
	p1, p2 := uuid.New(), uuid.New()

	t.Run("keeps the first line per product", func(t *testing.T) {
		draft, err := ValidateOrder(OrderInput{
			Items: []LineRequest{req(p1, 2, "10"), req(p1, 3, "10")},
		})
		require.NoError(t, err)
		require.Len(t, draft.Lines, 1)
		assert.Equal(t, 2, draft.Lines[0].Quantity)
		assert.Equal(t, []uuid.UUID{p1}, draft.Dropped)
		assert.Equal(t, "20.00", draft.Total().String())
	})

	t.Run("validates every item before dedup", func(t *testing.T) {
		_, err := ValidateOrder(OrderInput{
			Items: []LineRequest{req(p1, 2, "10"), req(p1, 0, "10")},
		})
		require.Error(t, err)
		assert.Equal(t, "INVALID_QUANTITY", domainCode(t, err))
		assert.Contains(t, err.Error(), "items[1]")
	})

	t.Run("accepts an empty item list", func(t *testing.T) {
		draft, err := ValidateOrder(OrderInput{OrderHeader: OrderHeader{CustomerFullname: "Jane Doe"}})
		require.NoError(t, err)
		assert.Empty(t, draft.Lines)
		assert.True(t, draft.Total().IsZero())
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		_, err := ValidateOrder(OrderInput{OrderHeader: OrderHeader{Status: "SHIPPED"}})
		assert.Equal(t, "INVALID_STATUS", domainCode(t, err))
	})

	t.Run("distinct products are all kept", func(t *testing.T) {
		draft, err := ValidateOrder(OrderInput{
			Items: []LineRequest{req(p1, 1, "5"), req(p2, 4, "2.50")},
		})
		require.NoError(t, err)
		assert.Len(t, draft.Lines, 2)
		assert.Empty(t, draft.Dropped)
		assert.Equal(t, "15.00", draft.Total().String())
	})
}

func TestNewOrder(t *testing.T) {
	p1 := uuid.New()

	t.Run("guest order totals its lines", func(t *testing.T) {
		draft, err := ValidateOrder(OrderInput{
			OrderHeader: OrderHeader{CustomerFullname: " Jane Doe "},
			Items:       []LineRequest{req(p1, 2, "9.99")},
		})
		require.NoError(t, err)
		require.NoError(t, BindProducts(draft.Lines, map[uuid.UUID]ProductRef{p1: {Name: "Lamp", Reference: "L-1"}}))

		order, err := NewOrder(draft, nil)
		require.NoError(t, err)
		assert.True(t, order.IsGuest())
		assert.Equal(t, "Jane Doe", order.CustomerFullname)
		assert.Equal(t, OrderStatusPending, order.Status)
		assert.Equal(t, "19.98", order.TotalPrice.String())
		require.Equal(t, 1, order.ItemCount())
		assert.Equal(t, order.ID, order.Items[0].OrderID)
		assert.Equal(t, "Lamp", order.Items[0].ProductName)
		assert.Equal(t, "19.98", order.Items[0].TotalPrice.String())
	})

	t.Run("registered buyer", func(t *testing.T) {
		uid := uuid.New()
		draft, err := ValidateOrder(OrderInput{})
		require.NoError(t, err)
		order, err := NewOrder(draft, &uid)
		require.NoError(t, err)
		assert.False(t, order.IsGuest())
	})

	t.Run("initial status may be confirmed", func(t *testing.T) {
		draft, err := ValidateOrder(OrderInput{OrderHeader: OrderHeader{Status: OrderStatusConfirmed}})
		require.NoError(t, err)
		order, err := NewOrder(draft, nil)
		require.NoError(t, err)
		assert.Equal(t, OrderStatusConfirmed, order.Status)
	})
}

func TestOrderStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to OrderStatus
		ok       bool
	}{
		{OrderStatusPending, OrderStatusConfirmed, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusConfirmed, OrderStatusCancelled, true},
		{OrderStatusConfirmed, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusConfirmed, false},
		{OrderStatusCancelled, OrderStatusCancelled, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			o := &Order{Status: tt.from}
			err := o.ChangeStatus(tt.to)
			if tt.ok {
				require.NoError(t, err)
				assert.Equal(t, tt.to, o.Status)
				return
			}
			assert.Equal(t, "INVALID_STATUS_TRANSITION", domainCode(t, err))
			assert.Equal(t, tt.from, o.Status)
		})
	}
}

func TestOrderUpdate(t *testing.T) {
	p1, p2 := uuid.New(), uuid.New()
	draft, err := ValidateOrder(OrderInput{Items: []LineRequest{req(p1, 1, "3")}})
	require.NoError(t, err)
	order, err := NewOrder(draft, nil)
	require.NoError(t, err)

	t.Run("replacing items is idempotent", func(t *testing.T) {
		lines, dropped, err := ValidateOrderItems([]LineRequest{req(p2, 2, "4"), req(p1, 1, "1")})
		require.NoError(t, err)
		assert.Empty(t, dropped)

		order.ReplaceItems(lines)
		first := order.TotalPrice.String()
		order.ReplaceItems(lines)

		assert.Equal(t, "9.00", first)
		assert.Equal(t, first, order.TotalPrice.String())
		assert.Len(t, order.Items, 2)
	})

	t.Run("failed status change leaves header untouched", func(t *testing.T) {
		require.NoError(t, order.UpdateHeader(OrderHeader{CustomerFullname: "A", Status: OrderStatusCancelled}))
		err := order.UpdateHeader(OrderHeader{CustomerFullname: "B", Status: OrderStatusPending})
		require.Error(t, err)
		assert.Equal(t, "A", order.CustomerFullname)
		assert.Equal(t, OrderStatusCancelled, order.Status)
	})
}

func TestBindProducts(t *testing.T) {
	p1, p2 := uuid.New(), uuid.New()
	lines := []Line{{ProductID: p1}, {ProductID: p2}}

	err := BindProducts(lines, map[uuid.UUID]ProductRef{p1: {Name: "One"}})
	require.Error(t, err)
	assert.Equal(t, "PRODUCT_NOT_FOUND", domainCode(t, err))
	assert.Contains(t, err.Error(), p2.String())
	assert.Equal(t, []uuid.UUID{p1, p2}, ProductIDs(append(lines, Line{ProductID: p1})))
}

func TestBuyingBill(t *testing.T) {
	p1 := uuid.New()

	t.Run("sums lines without dedup", func(t *testing.T) {
		draft, err := ValidateBill(BillInput{
			BillHeader: BillHeader{BillNumber: "B-001"},
			Items:      []LineRequest{req(p1, 1, "30"), req(p1, 3, "15")},
		})
		require.NoError(t, err)
		bill := NewBuyingBill(draft)
		assert.Equal(t, "75.00", bill.TotalAmount.String())
		assert.Len(t, bill.Items, 2)
		assert.Equal(t, bill.CreatedAt, bill.Date)
	})

	t.Run("requires a bill number", func(t *testing.T) {
		_, err := ValidateBill(BillInput{BillHeader: BillHeader{BillNumber: "  "}})
		assert.Equal(t, "INVALID_BILL_ID", domainCode(t, err))
	})

	t.Run("replacing items recomputes the total", func(t *testing.T) {
		draft, err := ValidateBill(BillInput{BillHeader: BillHeader{BillNumber: "B-002"}})
		require.NoError(t, err)
		bill := NewBuyingBill(draft)
		assert.True(t, bill.TotalAmount.IsZero())

		lines, err := ValidateBillItems([]LineRequest{req(p1, 2, "1.25")})
		require.NoError(t, err)
		bill.ReplaceItems(lines)
		assert.Equal(t, "2.50", bill.TotalAmount.String())
		assert.Equal(t, 2, bill.Version)
	})
}
