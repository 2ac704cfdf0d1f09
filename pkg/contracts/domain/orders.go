package domain

import "time"

// DateLayout is the day format used for chart axes and exports
const DateLayout = "2006-01-02"

// Order represents one row of the orders source. Timestamps are kept as the raw
// free-text values; parsing happens in the delivery-time derivation.
type Order struct {
	OrderID     string `json:"order_id"`
	PurchasedAt string `json:"order_purchase_timestamp"`
	DeliveredAt string `json:"order_delivered_customer_date"`
}

// DeliveryTime is a (purchase date, lag) pair ready for the scatter chart.
// LagDays may be negative when the delivery date precedes the purchase date.
type DeliveryTime struct {
	OrderID     string    `json:"order_id"`
	PurchasedAt time.Time `json:"purchased_at"`
	LagDays     int       `json:"lag_days"`
}

// Date returns the purchase day formatted as YYYY-MM-DD
func (d DeliveryTime) Date() string {
	return d.PurchasedAt.Format(DateLayout)
}
