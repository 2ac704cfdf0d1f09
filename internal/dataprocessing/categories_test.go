package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"storydash/pkg/contracts/domain"
)

func TestAggregateCategorySales(t *testing.T) {
	tests := []struct {
		name     string
		products []domain.Product
		items    []domain.OrderItem
		want     []domain.CategorySales
	}{
		{
			name: "unsold category reports zero",
			products: []domain.Product{
				{ProductID: "p1", Category: "toys"},
				{ProductID: "p2", Category: "books"},
			},
			items: []domain.OrderItem{
				{OrderID: "o1", ProductID: "p1"},
				{OrderID: "o2", ProductID: "p1"},
			},
			want: []domain.CategorySales{
				{Category: "toys", OrderCount: 2},
				{Category: "books", OrderCount: 0},
			},
		},
		{
			name:     "items of one order count separately",
			products: []domain.Product{{ProductID: "p1", Category: "toys"}},
			items: []domain.OrderItem{
				{OrderID: "o1", ProductID: "p1"},
				{OrderID: "o1", ProductID: "p1"},
				{OrderID: "o1", ProductID: "p1"},
			},
			want: []domain.CategorySales{{Category: "toys", OrderCount: 3}},
		},
		{
			name: "categories keep first appearance order",
			products: []domain.Product{
				{ProductID: "p1", Category: "moveis_decoracao"},
				{ProductID: "p2", Category: "beleza_saude"},
				{ProductID: "p3", Category: "moveis_decoracao"},
			},
			items: []domain.OrderItem{
				{OrderID: "o1", ProductID: "p2"},
				{OrderID: "o2", ProductID: "p3"},
				{OrderID: "o3", ProductID: "p1"},
			},
			want: []domain.CategorySales{
				{Category: "moveis_decoracao", OrderCount: 2},
				{Category: "beleza_saude", OrderCount: 1},
			},
		},
		{
			name: "blank categories and unknown products are ignored",
			products: []domain.Product{
				{ProductID: "p1", Category: ""},
				{ProductID: "p2", Category: "toys"},
			},
			items: []domain.OrderItem{
				{OrderID: "o1", ProductID: "p1"},
				{OrderID: "o2", ProductID: "p9"},
				{OrderID: "o3", ProductID: "p2"},
			},
			want: []domain.CategorySales{{Category: "toys", OrderCount: 1}},
		},
		{
			name:  "no products",
			items: []domain.OrderItem{{OrderID: "o1", ProductID: "p1"}},
			want:  []domain.CategorySales{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AggregateCategorySales(tt.products, tt.items))
		})
	}
}

func TestCategoryCountsMatchJoinedItems(t *testing.T) {
	products := []domain.Product{
		{ProductID: "p1", Category: "toys"},
		{ProductID: "p2", Category: "books"},
		{ProductID: "p3", Category: "garden"},
	}
	items := []domain.OrderItem{
		{OrderID: "o1", ProductID: "p1"},
		{OrderID: "o1", ProductID: "p2"},
		{OrderID: "o2", ProductID: "p2"},
		{OrderID: "o3", ProductID: "p4"},
	}

	total := 0
	for _, row := range AggregateCategorySales(products, items) {
		total += row.OrderCount
	}
	assert.Equal(t, len(joinItemsToProducts(products, items)), total)
}
