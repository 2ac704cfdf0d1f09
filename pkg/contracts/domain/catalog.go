package domain

// Product represents one row of the products source
type Product struct {
	ProductID string `json:"product_id"`
	Category  string `json:"product_category_name"`
}

// OrderItem represents one row of the order-items source
type OrderItem struct {
	OrderID   string `json:"order_id"`
	ProductID string `json:"product_id"`
}

// CategorySales holds the number of order-item rows per product category.
// Categories without any matched item carry OrderCount 0.
type CategorySales struct {
	Category   string `json:"category"`
	OrderCount int    `json:"order_count"`
}
