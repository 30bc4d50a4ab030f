package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	apptrade "github.com/shopfront/backend/internal/application/trade"
	"github.com/shopfront/backend/internal/domain/catalog"
	"github.com/shopfront/backend/internal/domain/identity"
	"github.com/shopfront/backend/internal/domain/marketing"
	"github.com/shopfront/backend/internal/domain/partner"
	"github.com/shopfront/backend/internal/domain/shared"
	"github.com/shopfront/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedProduct(t *testing.T, db *gorm.DB, name string) *catalog.Product {
	t.Helper()
	ctx := context.Background()
	category, err := catalog.NewCategory(name+" category", "")
	require.NoError(t, err)
	require.NoError(t, NewGormCategoryRepository(db).Save(ctx, category))

	product, err := catalog.NewProduct(catalog.ProductDetails{
		CategoryID: category.ID,
		Name:       name,
		Reference:  "REF-" + name,
		Price:      decimal.RequireFromString("9.99"),
		IsActive:   true,
		Variants: []catalog.VariantDetails{
			{Color: "red", VariantPrice: decimal.RequireFromString("10.50")},
		},
	})
	require.NoError(t, err)
	product.ReplaceGallery([]string{"https://cdn.example/a.png", "https://cdn.example/b.png"})
	require.NoError(t, NewGormProductRepository(db).Save(ctx, product))
	return product
}

func newOrder(t *testing.T, name string, lines ...trade.LineRequest) *trade.Order {
	t.Helper()
	draft, err := trade.ValidateOrder(trade.OrderInput{
		OrderHeader: trade.OrderHeader{CustomerFullname: name},
		Items:       lines,
	})
	require.NoError(t, err)
	order, err := trade.NewOrder(draft, nil)
	require.NoError(t, err)
	return order
}

func newBill(t *testing.T, number string, lines ...trade.LineRequest) *trade.BuyingBill {
	t.Helper()
	draft, err := trade.ValidateBill(trade.BillInput{
		BillHeader: trade.BillHeader{BillNumber: number},
		Items:      lines,
	})
	require.NoError(t, err)
	return trade.NewBuyingBill(draft)
}

func line(productID uuid.UUID, qty int, price string) trade.LineRequest {
	return trade.LineRequest{ProductID: productID, Quantity: qty, UnitPrice: decimal.RequireFromString(price)}
}

func TestProductRepository_SavesChildren(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, "Lamp")
	repo := NewGormProductRepository(db)

	found, err := repo.FindByID(context.Background(), product.ID)
	require.NoError(t, err)
	require.Len(t, found.Variants, 1)
	assert.Equal(t, "red", found.Variants[0].Color)
	require.Len(t, found.Gallery, 2)
	assert.Equal(t, "https://cdn.example/a.png", found.Gallery[0].URL)

	products, err := repo.FindByIDs(context.Background(), []uuid.UUID{product.ID, uuid.New()})
	require.NoError(t, err)
	assert.Len(t, products, 1)

	require.NoError(t, repo.Delete(context.Background(), product.ID))
	_, err = repo.FindByID(context.Background(), product.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestOrderRepository_SaveReplacesItems(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	lamp := seedProduct(t, db, "Lamp")
	chair := seedProduct(t, db, "Chair")
	repo := NewGormOrderRepository(db)

	order := newOrder(t, "Jane Doe", line(lamp.ID, 2, "9.99"))
	require.NoError(t, repo.Save(ctx, order))

	found, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, found.Items, 1)
	assert.True(t, found.TotalPrice.Amount().Equal(decimal.RequireFromString("19.98")))

	lines, _, err := trade.ValidateOrderItems([]trade.LineRequest{line(chair.ID, 1, "40")})
	require.NoError(t, err)
	found.ReplaceItems(lines)
	require.NoError(t, repo.Save(ctx, found))

	reloaded, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Items, 1)
	assert.Equal(t, chair.ID, reloaded.Items[0].ProductID)
	assert.True(t, reloaded.TotalPrice.Amount().Equal(decimal.NewFromInt(40)))

	var itemRows int64
	require.NoError(t, db.Table("order_items").Where("order_id = ?", order.ID).Count(&itemRows).Error)
	assert.Equal(t, int64(1), itemRows)
}

func TestOrderRepository_FilterAndDelete(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewGormOrderRepository(db)

	confirmed := newOrder(t, "Jane Doe")
	require.NoError(t, confirmed.ChangeStatus(trade.OrderStatusConfirmed))
	require.NoError(t, repo.Save(ctx, confirmed))
	require.NoError(t, repo.Save(ctx, newOrder(t, "John Roe")))

	filter := shared.DefaultFilter().With("status", "CONFIRMED")
	orders, err := repo.FindAll(ctx, filter)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, confirmed.ID, orders[0].ID)

	total, err := repo.Count(ctx, shared.Filter{Search: "john"}.Normalize())
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	withPhone := newOrder(t, "Ann Poe")
	withPhone.CustomerPhonenumber = "0612345678"
	require.NoError(t, repo.Save(ctx, withPhone))
	total, err = repo.Count(ctx, shared.Filter{Search: "0612"}.Normalize())
	require.NoError(t, err)
	assert.Zero(t, total, "search covers the customer name only")

	require.NoError(t, repo.Delete(ctx, confirmed.ID))
	assert.ErrorIs(t, repo.Delete(ctx, confirmed.ID), shared.ErrNotFound)
}

func TestTradeRepositories_KeepLineOrder(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	var lines []trade.LineRequest
	var want []uuid.UUID
	for _, name := range []string{"Lamp", "Chair", "Table", "Rug"} {
		p := seedProduct(t, db, name)
		lines = append(lines, line(p.ID, 1, "5"))
		want = append(want, p.ID)
	}
	reversed := make([]uuid.UUID, len(want))
	for i, id := range want {
		reversed[len(want)-1-i] = id
	}

	productIDs := func(n int, at func(int) uuid.UUID) []uuid.UUID {
		ids := make([]uuid.UUID, n)
		for i := range ids {
			ids[i] = at(i)
		}
		return ids
	}

	t.Run("orders", func(t *testing.T) {
		repo := NewGormOrderRepository(db)
		order := newOrder(t, "Jane Doe", lines...)
		require.NoError(t, repo.Save(ctx, order))

		var positions []int
		require.NoError(t, db.Table("order_items").Where("order_id = ?", order.ID).
			Order("position").Pluck("position", &positions).Error)
		assert.Equal(t, []int{0, 1, 2, 3}, positions)

		found, err := repo.FindByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, want, productIDs(len(found.Items), func(i int) uuid.UUID { return found.Items[i].ProductID }))

		// reads follow position, not row storage order
		require.NoError(t, db.Table("order_items").Where("order_id = ?", order.ID).
			Update("position", gorm.Expr("3 - position")).Error)
		found, err = repo.FindByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, reversed, productIDs(len(found.Items), func(i int) uuid.UUID { return found.Items[i].ProductID }))
	})

	t.Run("bills", func(t *testing.T) {
		repo := NewGormBuyingBillRepository(db)
		bill := newBill(t, "B-ORDER", lines...)
		require.NoError(t, repo.Save(ctx, bill))

		found, err := repo.FindByID(ctx, bill.ID)
		require.NoError(t, err)
		assert.Equal(t, want, productIDs(len(found.Items), func(i int) uuid.UUID { return found.Items[i].ProductID }))

		require.NoError(t, db.Table("bill_items").Where("bill_id = ?", bill.ID).
			Update("position", gorm.Expr("3 - position")).Error)
		found, err = repo.FindByID(ctx, bill.ID)
		require.NoError(t, err)
		assert.Equal(t, reversed, productIDs(len(found.Items), func(i int) uuid.UUID { return found.Items[i].ProductID }))
	})
}

func TestBuyingBillRepository_BillNumberUniqueness(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	lamp := seedProduct(t, db, "Lamp")
	chair := seedProduct(t, db, "Chair")
	repo := NewGormBuyingBillRepository(db)

	bill := newBill(t, "B-1", line(lamp.ID, 3, "10"), line(chair.ID, 1, "45"))
	require.NoError(t, repo.Save(ctx, bill))

	found, err := repo.FindByID(ctx, bill.ID)
	require.NoError(t, err)
	assert.Len(t, found.Items, 2)
	assert.True(t, found.TotalAmount.Amount().Equal(decimal.NewFromInt(75)))

	taken, err := repo.ExistsByBillNumber(ctx, "B-1", nil)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.ExistsByBillNumber(ctx, "B-1", &bill.ID)
	require.NoError(t, err)
	assert.False(t, taken)
}

// Saves that skip the service-level existence check still end in the
// matching conflict once the unique index fires.
func TestRepositories_UniqueIndexIsConflict(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	t.Run("bill number", func(t *testing.T) {
		repo := NewGormBuyingBillRepository(db)
		require.NoError(t, repo.Save(ctx, newBill(t, "B-DUP")))
		err := repo.Save(ctx, newBill(t, "B-DUP"))
		assert.ErrorIs(t, err, trade.ErrBillNumberTaken)
	})

	t.Run("category name", func(t *testing.T) {
		repo := NewGormCategoryRepository(db)
		first, err := catalog.NewCategory("Lighting", "")
		require.NoError(t, err)
		second, err := catalog.NewCategory("Lighting", "again")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, first))
		assert.ErrorIs(t, repo.Save(ctx, second), catalog.ErrCategoryNameTaken)
	})

	t.Run("username", func(t *testing.T) {
		repo := NewGormUserRepository(db)
		first, err := identity.NewUser("jane", "s3cret-pass", identity.RoleCustomer)
		require.NoError(t, err)
		second, err := identity.NewUser("jane", "0ther-pass", identity.RoleCustomer)
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, first))
		assert.ErrorIs(t, repo.Create(ctx, second), identity.ErrUsernameTaken)
	})

	t.Run("client and supplier email", func(t *testing.T) {
		profile := partner.Profile{Name: "Jane Doe", Email: "jane@example.com"}
		c1, err := partner.NewClient(profile)
		require.NoError(t, err)
		c2, err := partner.NewClient(profile)
		require.NoError(t, err)
		clients := NewGormClientRepository(db)
		require.NoError(t, clients.Save(ctx, c1))
		assert.ErrorIs(t, clients.Save(ctx, c2), partner.ErrEmailTaken)

		s1, err := partner.NewSupplier(profile)
		require.NoError(t, err)
		s2, err := partner.NewSupplier(profile)
		require.NoError(t, err)
		suppliers := NewGormSupplierRepository(db)
		require.NoError(t, suppliers.Save(ctx, s1), "clients and suppliers are separate tables")
		assert.ErrorIs(t, suppliers.Save(ctx, s2), partner.ErrEmailTaken)
	})

	t.Run("newsletter email", func(t *testing.T) {
		repo := NewGormSubscriptionRepository(db)
		first, err := marketing.NewSubscription("news@example.com")
		require.NoError(t, err)
		second, err := marketing.NewSubscription("news@example.com")
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, first))
		assert.ErrorIs(t, repo.Create(ctx, second), marketing.ErrAlreadySubscribed)
	})
}

func TestLedgerReader_DerivesAvailability(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	lamp := seedProduct(t, db, "Lamp")
	chair := seedProduct(t, db, "Chair")
	idle := seedProduct(t, db, "Idle")

	require.NoError(t, NewGormBuyingBillRepository(db).Save(ctx, newBill(t, "B-1", line(lamp.ID, 3, "10"), line(chair.ID, 1, "45"))))
	require.NoError(t, NewGormOrderRepository(db).Save(ctx, newOrder(t, "Jane Doe", line(lamp.ID, 2, "9.99"))))

	reader := NewGormLedgerReader(db)
	totals, err := reader.TotalsFor(ctx, []uuid.UUID{lamp.ID, chair.ID, idle.ID})
	require.NoError(t, err)

	assert.Equal(t, int64(3), totals[lamp.ID].Received)
	assert.Equal(t, int64(2), totals[lamp.ID].Sold)
	assert.Equal(t, int64(1), totals[lamp.ID].Available())
	assert.Equal(t, int64(1), totals[chair.ID].Available())
	assert.Equal(t, int64(0), totals[idle.ID].Available())

	single, err := reader.Totals(ctx, lamp.ID)
	require.NoError(t, err)
	assert.Equal(t, totals[lamp.ID], single)

	used, err := reader.HasEntries(ctx, lamp.ID)
	require.NoError(t, err)
	assert.True(t, used)
	used, err = reader.HasEntries(ctx, idle.ID)
	require.NoError(t, err)
	assert.False(t, used)
}

// Orders are not checked against stock, so two orders can sell the last unit.
func TestLedgerReader_OversellIsClampedToZero(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	lamp := seedProduct(t, db, "Lamp")

	require.NoError(t, NewGormBuyingBillRepository(db).Save(ctx, newBill(t, "B-1", line(lamp.ID, 1, "10"))))
	orders := NewGormOrderRepository(db)
	require.NoError(t, orders.Save(ctx, newOrder(t, "Jane Doe", line(lamp.ID, 1, "9.99"))))
	require.NoError(t, orders.Save(ctx, newOrder(t, "John Roe", line(lamp.ID, 1, "9.99"))))

	totals, err := NewGormLedgerReader(db).Totals(ctx, lamp.ID)
	require.NoError(t, err)
	assert.True(t, totals.Oversold())
	assert.Equal(t, int64(0), totals.Available())
}

func TestClientRepository_DeleteDetachesOrders(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	clients := NewGormClientRepository(db)
	orders := NewGormOrderRepository(db)

	client, err := partner.NewClient(partner.Profile{Name: "Jane Doe", Email: "jane@example.com"})
	require.NoError(t, err)
	require.NoError(t, clients.Save(ctx, client))

	byName, err := clients.FindByExactName(ctx, "Jane Doe")
	require.NoError(t, err)
	assert.Equal(t, client.ID, byName.ID)
	_, err = clients.FindByExactName(ctx, "jane doe")
	assert.ErrorIs(t, err, shared.ErrNotFound)

	order := newOrder(t, "Jane Doe")
	order.AttachClient(client.ID)
	require.NoError(t, orders.Save(ctx, order))

	require.NoError(t, clients.Delete(ctx, client.ID))

	reloaded, err := orders.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.ClientID)
	assert.Equal(t, "Jane Doe", reloaded.CustomerFullname)
}

func TestTokenRepository_RevokeAndPurge(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewGormTokenRepository(db)
	now := time.Now()
	userID := uuid.New()

	live := identity.NewIssuedToken("jti-live", userID, now.Add(time.Hour))
	stale := identity.NewIssuedToken("jti-stale", userID, now.Add(-time.Hour))
	require.NoError(t, repo.Create(ctx, live))
	require.NoError(t, repo.Create(ctx, stale))

	require.NoError(t, live.Revoke(now))
	require.NoError(t, repo.MarkRevoked(ctx, live))

	found, err := repo.FindByJTI(ctx, "jti-live")
	require.NoError(t, err)
	assert.True(t, found.IsRevoked())
	assert.False(t, found.IsUsable(now))

	purged, err := repo.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	_, err = repo.FindByJTI(ctx, "jti-stale")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestTokenRepository_MarkRevokedOnlyOnce(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewGormTokenRepository(db)
	now := time.Now()
	require.NoError(t, repo.Create(ctx, identity.NewIssuedToken("jti-1", uuid.New(), now.Add(time.Hour))))

	// two callers read the live row before either writes
	first, err := repo.FindByJTI(ctx, "jti-1")
	require.NoError(t, err)
	second, err := repo.FindByJTI(ctx, "jti-1")
	require.NoError(t, err)

	require.NoError(t, first.Revoke(now))
	require.NoError(t, second.Revoke(now.Add(time.Second)))

	require.NoError(t, repo.MarkRevoked(ctx, first))
	assert.ErrorIs(t, repo.MarkRevoked(ctx, second), identity.ErrTokenAlreadyRevoked)

	stored, err := repo.FindByJTI(ctx, "jti-1")
	require.NoError(t, err)
	require.NotNil(t, stored.RevokedAt)
	assert.WithinDuration(t, now, *stored.RevokedAt, time.Millisecond, "the losing write must not move revoked_at")

	ghost := identity.NewIssuedToken("jti-ghost", uuid.New(), now.Add(time.Hour))
	require.NoError(t, ghost.Revoke(now))
	assert.ErrorIs(t, repo.MarkRevoked(ctx, ghost), shared.ErrNotFound)
}

func TestGormTransactionScope_RollsBack(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	scope := NewGormTransactionScope(db)
	order := newOrder(t, "Jane Doe")

	err := scope.Execute(ctx, func(repos apptrade.TransactionalRepositories) error {
		if err := repos.OrderRepo().Save(ctx, order); err != nil {
			return err
		}
		return errors.New("boom")
	})
	require.Error(t, err)

	_, err = NewGormOrderRepository(db).FindByID(ctx, order.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	err = scope.Execute(ctx, func(repos apptrade.TransactionalRepositories) error {
		return repos.OrderRepo().Save(ctx, order)
	})
	require.NoError(t, err)
	_, err = NewGormOrderRepository(db).FindByID(ctx, order.ID)
	assert.NoError(t, err)
}
