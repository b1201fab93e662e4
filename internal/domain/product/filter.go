package product

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// SortOrder enumerates the catalog sort options.
type SortOrder string

const (
	SortDefault   SortOrder = "default"
	SortPriceLow  SortOrder = "price-low"
	SortPriceHigh SortOrder = "price-high"
	SortName      SortOrder = "name"
	SortRating    SortOrder = "rating"
	SortPopular   SortOrder = "popular"
	SortTrending  SortOrder = "trending"
)

// Filter describes the catalog filtering criteria. Zero values disable the
// corresponding criterion, except MaxPrice which is ignored when not positive.
type Filter struct {
	Query       string
	Category    string
	MinPrice    decimal.Decimal
	MaxPrice    decimal.Decimal
	InStockOnly bool
}

// Apply returns the products matching the filter, preserving order.
func (f Filter) Apply(products []Product) []Product {
	query := strings.ToLower(f.Query)
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if query != "" && !strings.Contains(strings.ToLower(p.Name), query) {
			continue
		}
		if f.Category != "" && f.Category != "All" && p.Category != f.Category {
			continue
		}
		if p.Price.LessThan(f.MinPrice) {
			continue
		}
		if f.MaxPrice.IsPositive() && p.Price.GreaterThan(f.MaxPrice) {
			continue
		}
		if f.InStockOnly && !p.InStock {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Sorted returns a copy of products ordered by the given sort option.
// SortDefault and unknown options return the copy unchanged.
func Sorted(products []Product, order SortOrder) []Product {
	out := make([]Product, len(products))
	copy(out, products)

	switch order {
	case SortPriceLow:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price.LessThan(out[j].Price) })
	case SortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool { return out[j].Price.LessThan(out[i].Price) })
	case SortName:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	case SortRating:
		sort.SliceStable(out, func(i, j int) bool { return out[i].AverageRating > out[j].AverageRating })
	case SortPopular:
		sort.SliceStable(out, func(i, j int) bool { return out[i].ViewsCount > out[j].ViewsCount })
	case SortTrending:
		sort.SliceStable(out, func(i, j int) bool { return out[i].LikesCount > out[j].LikesCount })
	}
	return out
}
