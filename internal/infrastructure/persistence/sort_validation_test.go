package persistence

import (
	"testing"

	"github.com/shopfront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestValidateSortOrder(t *testing.T) {
	tests := map[string]string{
		"":                         "DESC",
		"asc":                      "ASC",
		"  ASC ":                   "ASC",
		"desc":                     "DESC",
		"ASC; DROP TABLE users;--": "DESC",
	}
	for in, want := range tests {
		assert.Equal(t, want, ValidateSortOrder(in), "%q", in)
	}
}

func TestSortColumns_Column(t *testing.T) {
	tests := []struct {
		columns SortColumns
		key     string
		want    string
	}{
		{BuyingBillSortFields, "bill_id", "bill_number"},
		{BuyingBillSortFields, " date ", "date"},
		{ProductSortFields, "prixAchat", "cost_price"},
		{OrderSortFields, "total_price", "total_price"},
		{OrderSortFields, "", "created_at"},
		{PartnerSortFields, "NAME", "created_at"},
		{UserSortFields, "password_hash", "created_at"},
		{CategorySortFields, "name; DROP TABLE categories", "created_at"},
		{CategorySortFields, "name'--", "created_at"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.columns.Column(tt.key, "created_at"), "%q", tt.key)
	}
}

func TestSortColumns_EveryListHasTimestamps(t *testing.T) {
	for name, cols := range map[string]SortColumns{
		"category": CategorySortFields, "product": ProductSortFields, "partner": PartnerSortFields,
		"order": OrderSortFields, "bill": BuyingBillSortFields, "user": UserSortFields, "marketing": MarketingSortFields,
	} {
		assert.Equal(t, "created_at", cols["created_at"], name)
		assert.Equal(t, "updated_at", cols["updated_at"], name)
	}
}

func TestApplySortAndPage(t *testing.T) {
	db := newDryRunDB(t)

	stmt := applySortAndPage(db.Table("buying_bills"), shared.Filter{
		OrderBy: "bill_id", OrderDir: "asc", Page: 3, PageSize: 20,
	}, BuyingBillSortFields).Find(&[]map[string]any{}).Statement

	sql := stmt.SQL.String()
	assert.Contains(t, sql, "ORDER BY bill_number ASC")
	assert.Contains(t, sql, "LIMIT")
	assert.Contains(t, sql, "OFFSET")

	stmt = applySortAndPage(db.Table("orders"), shared.Filter{OrderBy: "password"}, OrderSortFields).
		Find(&[]map[string]any{}).Statement
	assert.Contains(t, stmt.SQL.String(), "ORDER BY created_at DESC")
	assert.NotContains(t, stmt.SQL.String(), "LIMIT")
}

func newDryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := newTestDB(t)
	return db.Session(&gorm.Session{DryRun: true})
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%jane doe%", likePattern("  Jane Doe "))
	require.Equal(t, "%%", likePattern(""))
}
