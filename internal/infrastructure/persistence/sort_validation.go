package persistence

import (
	"strings"

	"github.com/shopfront/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// SortColumns maps the order_by values a list endpoint accepts to table
// columns. Anything else falls back to created_at, so caller input never
// reaches the ORDER BY clause.
type SortColumns map[string]string

// Column returns the column for key, or fallback when key is unknown
func (s SortColumns) Column(key, fallback string) string {
	if col, ok := s[strings.TrimSpace(key)]; ok {
		return col
	}
	return fallback
}

// ValidateSortOrder normalizes dir to ASC or DESC. Anything but "asc" sorts
// newest first.
func ValidateSortOrder(dir string) string {
	if strings.EqualFold(strings.TrimSpace(dir), "asc") {
		return "ASC"
	}
	return "DESC"
}

// applySortAndPage orders by a whitelisted column and applies offset/limit
func applySortAndPage(query *gorm.DB, filter shared.Filter, columns SortColumns) *gorm.DB {
	query = query.Order(columns.Column(filter.OrderBy, "created_at") + " " + ValidateSortOrder(filter.OrderDir))
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}
	return query
}

// likePattern builds a case-insensitive LIKE pattern; callers compare against LOWER(column)
func likePattern(search string) string {
	return "%" + strings.ToLower(strings.TrimSpace(search)) + "%"
}

func withTimestamps(cols map[string]string) SortColumns {
	out := SortColumns{"created_at": "created_at", "updated_at": "updated_at"}
	for k, v := range cols {
		out[k] = v
	}
	return out
}

var (
	CategorySortFields = withTimestamps(map[string]string{"name": "name", "slug": "slug"})

	ProductSortFields = withTimestamps(map[string]string{
		"name":      "name",
		"reference": "reference",
		"price":     "price",
		"prixVente": "price",
		"prixAchat": "cost_price",
	})

	// PartnerSortFields serves clients and suppliers
	PartnerSortFields = withTimestamps(map[string]string{"name": "name", "email": "email"})

	OrderSortFields = withTimestamps(map[string]string{
		"status":            "status",
		"total_price":       "total_price",
		"customer_fullname": "customer_fullname",
	})

	BuyingBillSortFields = withTimestamps(map[string]string{
		"bill_id":      "bill_number",
		"date":         "date",
		"total_amount": "total_amount",
	})

	UserSortFields = withTimestamps(map[string]string{"username": "username", "email": "email", "role": "role"})

	// MarketingSortFields serves newsletter, contact and banner listings
	MarketingSortFields = withTimestamps(map[string]string{"email": "email", "title": "title"})
)
