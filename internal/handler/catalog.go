package handler

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/xenking/shophub/internal/domain/product"
)

// listProducts serves the catalog with query-side filtering and sorting.
func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := product.Filter{
		Query:       q.Get("query"),
		Category:    q.Get("category"),
		InStockOnly: q.Get("in_stock") == "true",
	}
	if v := q.Get("min_price"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			filter.MinPrice = d
		}
	}
	if v := q.Get("max_price"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			filter.MaxPrice = d
		}
	}

	order := product.SortOrder(q.Get("sort"))
	if order == "" {
		order = product.SortDefault
	}

	respondJSON(w, http.StatusOK, h.catalog.List(filter, order))
}
