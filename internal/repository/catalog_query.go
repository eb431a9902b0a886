package repository

import (
	"strings"

	"github.com/deelaka-ransilu/bridal-shop-backend/internal/dto"
	"github.com/deelaka-ransilu/bridal-shop-backend/internal/model"
)

// Condition is one WHERE fragment with its bind arguments
type Condition struct {
	Query string
	Args  []interface{}
}

// DressConditions builds the browse predicate. Inactive dresses are always excluded.
// A price bound matches when either the sale or the rental price satisfies it.
func DressConditions(f dto.CatalogFilter) []Condition {
	conds := []Condition{{Query: "dresses.is_active = ?", Args: []interface{}{true}}}

	if f.CategoryID != nil {
		conds = append(conds, Condition{Query: "dresses.category_id = ?", Args: []interface{}{*f.CategoryID}})
	}

	switch {
	case f.MinPrice != nil && f.MaxPrice != nil:
		conds = append(conds, Condition{
			Query: "(dresses.base_sale_price BETWEEN ? AND ? OR dresses.base_rental_price BETWEEN ? AND ?)",
			Args:  []interface{}{*f.MinPrice, *f.MaxPrice, *f.MinPrice, *f.MaxPrice},
		})
	case f.MinPrice != nil:
		conds = append(conds, Condition{
			Query: "(dresses.base_sale_price >= ? OR dresses.base_rental_price >= ?)",
			Args:  []interface{}{*f.MinPrice, *f.MinPrice},
		})
	case f.MaxPrice != nil:
		conds = append(conds, Condition{
			Query: "(dresses.base_sale_price <= ? OR dresses.base_rental_price <= ?)",
			Args:  []interface{}{*f.MaxPrice, *f.MaxPrice},
		})
	}

	// false means "don't care", not "only unavailable"
	if f.AvailableForSale != nil && *f.AvailableForSale {
		conds = append(conds, Condition{Query: "dresses.available_for_sale = ?", Args: []interface{}{true}})
	}
	if f.AvailableForRental != nil && *f.AvailableForRental {
		conds = append(conds, Condition{Query: "dresses.available_for_rental = ?", Args: []interface{}{true}})
	}

	if search := strings.TrimSpace(f.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		conds = append(conds, Condition{
			Query: "(LOWER(dresses.name) LIKE ? OR LOWER(dresses.description) LIKE ?)",
			Args:  []interface{}{pattern, pattern},
		})
	}

	if colors := lowerAll(f.Colors); len(colors) > 0 {
		conds = append(conds, variantExists("color", colors))
	}
	if sizes := lowerAll(f.Sizes); len(sizes) > 0 {
		conds = append(conds, variantExists("size", sizes))
	}

	return conds
}

func variantExists(column string, values []string) Condition {
	return Condition{
		Query: "EXISTS (SELECT 1 FROM dress_variants dv WHERE dv.dress_id = dresses.dress_id" +
			" AND dv.status = ? AND LOWER(dv." + column + ") IN ?)",
		Args: []interface{}{string(model.VariantActive), values},
	}
}

func lowerAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.ToLower(strings.TrimSpace(v)); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// DressOrder maps a sort key to an ORDER BY clause; unknown keys sort newest first
func DressOrder(sortBy model.SortBy) string {
	switch sortBy {
	case model.SortPriceLowToHigh:
		return "dresses.base_sale_price ASC, dresses.dress_id ASC"
	case model.SortPriceHighToLow:
		return "dresses.base_sale_price DESC NULLS LAST, dresses.dress_id DESC"
	case model.SortPopularity:
		return "dresses.order_count DESC, dresses.dress_id DESC"
	default:
		return "dresses.created_at DESC, dresses.dress_id DESC"
	}
}
