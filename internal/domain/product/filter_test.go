package product

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func sampleCatalog() []Product {
	return []Product{
		{ID: 1, Name: "Bamboo Chair", Category: "furniture", Price: decimal.NewFromInt(120), InStock: true, AverageRating: 4.2, ViewsCount: 30, LikesCount: 5},
		{ID: 2, Name: "Oak Table", Category: "furniture", Price: decimal.NewFromInt(300), InStock: false, AverageRating: 4.8, ViewsCount: 90, LikesCount: 40},
		{ID: 3, Name: "Desk Lamp", Category: "lighting", Price: decimal.NewFromInt(45), InStock: true, AverageRating: 3.9, ViewsCount: 120, LikesCount: 12},
		{ID: 4, Name: "Floor Lamp", Category: "lighting", Price: decimal.NewFromInt(80), InStock: true, AverageRating: 4.5, ViewsCount: 60, LikesCount: 25},
	}
}

func ids(products []Product) []int64 {
	out := make([]int64, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestFilterApply(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   []int64
	}{
		{name: "empty filter keeps all", filter: Filter{}, want: []int64{1, 2, 3, 4}},
		{name: "query is case insensitive", filter: Filter{Query: "lamp"}, want: []int64{3, 4}},
		{name: "category", filter: Filter{Category: "furniture"}, want: []int64{1, 2}},
		{name: "category All keeps all", filter: Filter{Category: "All"}, want: []int64{1, 2, 3, 4}},
		{name: "min price", filter: Filter{MinPrice: decimal.NewFromInt(100)}, want: []int64{1, 2}},
		{name: "max price", filter: Filter{MaxPrice: decimal.NewFromInt(100)}, want: []int64{3, 4}},
		{
			name:   "price band",
			filter: Filter{MinPrice: decimal.NewFromInt(50), MaxPrice: decimal.NewFromInt(150)},
			want:   []int64{1, 4},
		},
		{name: "in stock only", filter: Filter{InStockOnly: true}, want: []int64{1, 3, 4}},
		{
			name:   "combined",
			filter: Filter{Query: "lamp", InStockOnly: true, MaxPrice: decimal.NewFromInt(50)},
			want:   []int64{3},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.filter.Apply(sampleCatalog())
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestSorted(t *testing.T) {
	tests := []struct {
		name  string
		order SortOrder
		want  []int64
	}{
		{name: "default keeps order", order: SortDefault, want: []int64{1, 2, 3, 4}},
		{name: "unknown keeps order", order: SortOrder("bogus"), want: []int64{1, 2, 3, 4}},
		{name: "price low", order: SortPriceLow, want: []int64{3, 4, 1, 2}},
		{name: "price high", order: SortPriceHigh, want: []int64{2, 1, 4, 3}},
		{name: "name", order: SortName, want: []int64{1, 3, 4, 2}},
		{name: "rating", order: SortRating, want: []int64{2, 4, 1, 3}},
		{name: "popular by views", order: SortPopular, want: []int64{3, 2, 4, 1}},
		{name: "trending by likes", order: SortTrending, want: []int64{2, 4, 3, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sorted(sampleCatalog(), tt.order)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestSorted_DoesNotMutateInput(t *testing.T) {
	catalog := sampleCatalog()
	_ = Sorted(catalog, SortPriceLow)
	assert.Equal(t, []int64{1, 2, 3, 4}, ids(catalog))
}
