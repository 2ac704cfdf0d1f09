package dataprocessing

import (
	"time"

	"storydash/pkg/contracts/domain"
)

const day = 24 * time.Hour

// DeriveDeliveryTimes turns order rows into (purchase date, lag) pairs.
// Rows whose purchase or delivery timestamp is missing or unparseable are
// dropped without notice. Input order is preserved.
func DeriveDeliveryTimes(orders []domain.Order) []domain.DeliveryTime {
	result := make([]domain.DeliveryTime, 0, len(orders))

	for _, order := range orders {
		purchased, ok := ParseTimestamp(order.PurchasedAt)
		if !ok {
			continue
		}
		delivered, ok := ParseTimestamp(order.DeliveredAt)
		if !ok {
			continue
		}

		result = append(result, domain.DeliveryTime{
			OrderID:     order.OrderID,
			PurchasedAt: purchased,
			LagDays:     LagDays(purchased, delivered),
		})
	}

	return result
}

// LagDays returns the whole days from purchased to delivered, rounded toward
// negative infinity. A delivery before the purchase yields a negative lag.
func LagDays(purchased, delivered time.Time) int {
	elapsed := delivered.Sub(purchased)
	days := int(elapsed / day)
	if elapsed%day < 0 {
		days--
	}
	return days
}
