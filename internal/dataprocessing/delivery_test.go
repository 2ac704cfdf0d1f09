package dataprocessing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storydash/pkg/contracts/domain"
)

func TestDeriveDeliveryTimes(t *testing.T) {
	t.Run("four day lag", func(t *testing.T) {
		got := DeriveDeliveryTimes([]domain.Order{
			{OrderID: "1", PurchasedAt: "2023-01-01", DeliveredAt: "2023-01-05"},
		})
		require.Len(t, got, 1)
		assert.Equal(t, "2023-01-01", got[0].Date())
		assert.Equal(t, 4, got[0].LagDays)
	})

	t.Run("missing delivery date drops the row", func(t *testing.T) {
		got := DeriveDeliveryTimes([]domain.Order{
			{OrderID: "1", PurchasedAt: "2023-01-01", DeliveredAt: ""},
		})
		assert.Empty(t, got)
	})

	t.Run("unparseable purchase date drops the row", func(t *testing.T) {
		got := DeriveDeliveryTimes([]domain.Order{
			{OrderID: "1", PurchasedAt: "yesterday", DeliveredAt: "2023-01-05"},
			{OrderID: "2", PurchasedAt: "2023-01-02", DeliveredAt: "2023-01-03"},
		})
		require.Len(t, got, 1)
		assert.Equal(t, "2", got[0].OrderID)
	})

	t.Run("negative lag is preserved", func(t *testing.T) {
		got := DeriveDeliveryTimes([]domain.Order{
			{OrderID: "1", PurchasedAt: "2023-01-10", DeliveredAt: "2023-01-07"},
		})
		require.Len(t, got, 1)
		assert.Equal(t, -3, got[0].LagDays)
	})

	t.Run("input order is preserved", func(t *testing.T) {
		got := DeriveDeliveryTimes([]domain.Order{
			{OrderID: "c", PurchasedAt: "2023-03-01", DeliveredAt: "2023-03-02"},
			{OrderID: "a", PurchasedAt: "2023-01-01", DeliveredAt: "2023-01-09"},
			{OrderID: "b", PurchasedAt: "2023-02-01", DeliveredAt: "2023-02-03"},
		})
		ids := make([]string, 0, len(got))
		for _, r := range got {
			ids = append(ids, r.OrderID)
		}
		assert.Equal(t, []string{"c", "a", "b"}, ids)
	})

	t.Run("olist timestamps", func(t *testing.T) {
		got := DeriveDeliveryTimes([]domain.Order{
			{OrderID: "e481f51cbdc54678b7cc49136f2d6af7", PurchasedAt: "2017-10-02 10:56:33", DeliveredAt: "2017-10-10 21:25:13"},
		})
		require.Len(t, got, 1)
		assert.Equal(t, 8, got[0].LagDays)
		assert.Equal(t, "2017-10-02", got[0].Date())
	})
}

func TestLagDays(t *testing.T) {
	base := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		delivered time.Time
		want      int
	}{
		{"same instant", base, 0},
		{"23 hours later", base.Add(23 * time.Hour), 0},
		{"exactly one day", base.Add(24 * time.Hour), 1},
		{"36 hours later", base.Add(36 * time.Hour), 1},
		{"one hour earlier floors to minus one", base.Add(-time.Hour), -1},
		{"exactly one day earlier", base.Add(-24 * time.Hour), -1},
		{"25 hours earlier", base.Add(-25 * time.Hour), -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LagDays(base, tt.delivered))
		})
	}
}
