package dataprocessing

import (
	"strings"

	"storydash/pkg/contracts/domain"
)

// categorizedItem is an order-item row joined to its product's category
type categorizedItem struct {
	OrderID   string
	ProductID string
	Category  string
}

// joinItemsToProducts inner-joins order items to products on product id.
// Items whose product is unknown are dropped; a product id listed twice yields
// one row per listing.
func joinItemsToProducts(products []domain.Product, items []domain.OrderItem) []categorizedItem {
	categories := make(map[string][]string, len(products))
	for _, p := range products {
		categories[p.ProductID] = append(categories[p.ProductID], p.Category)
	}

	joined := make([]categorizedItem, 0, len(items))
	for _, item := range items {
		for _, category := range categories[item.ProductID] {
			joined = append(joined, categorizedItem{OrderID: item.OrderID, ProductID: item.ProductID, Category: category})
		}
	}
	return joined
}

// countByCategory counts joined item rows per category. Items of the same order
// are counted once each, so this is an order-item count, not a distinct-order count.
func countByCategory(joined []categorizedItem) map[string]int {
	counts := make(map[string]int)
	for _, item := range joined {
		if isBlankCategory(item.Category) {
			continue
		}
		counts[item.Category]++
	}
	return counts
}

// distinctCategories lists product categories in order of first appearance
func distinctCategories(products []domain.Product) []string {
	seen := make(map[string]bool)
	var categories []string
	for _, p := range products {
		if isBlankCategory(p.Category) || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		categories = append(categories, p.Category)
	}
	return categories
}

// AggregateCategorySales counts order-item rows per product category. Every
// category of the product list appears, with 0 when no item matched it.
func AggregateCategorySales(products []domain.Product, items []domain.OrderItem) []domain.CategorySales {
	counts := countByCategory(joinItemsToProducts(products, items))
	return leftJoinCounts(distinctCategories(products), counts)
}

// leftJoinCounts attaches counts to the category list; missing counts are 0
func leftJoinCounts(categories []string, counts map[string]int) []domain.CategorySales {
	result := make([]domain.CategorySales, 0, len(categories))
	for _, category := range categories {
		result = append(result, domain.CategorySales{
			Category:   category,
			OrderCount: counts[category],
		})
	}
	return result
}

func isBlankCategory(category string) bool {
	return strings.TrimSpace(category) == ""
}
