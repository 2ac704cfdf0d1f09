package charts

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"

	"storydash/pkg/contracts/domain"
)

func decodePNG(t *testing.T, buf *bytes.Buffer) (int, int) {
	t.Helper()
	img, err := png.Decode(buf)
	require.NoError(t, err)
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

func TestRendererDeliveryTimes(t *testing.T) {
	r := NewRenderer(Size{Width: 4 * vg.Inch, Height: 3 * vg.Inch})
	rows := []domain.DeliveryTime{
		{OrderID: "1", PurchasedAt: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), LagDays: 4},
		{OrderID: "2", PurchasedAt: time.Date(2023, 1, 8, 0, 0, 0, 0, time.UTC), LagDays: -1},
	}

	var buf bytes.Buffer
	require.NoError(t, r.DeliveryTimes(&buf, rows))

	w, h := decodePNG(t, &buf)
	assert.Greater(t, w, h)
}

func TestRendererBarCharts(t *testing.T) {
	r := NewRenderer(Size{})

	t.Run("city customers", func(t *testing.T) {
		rows := []domain.CityCustomers{
			{City: "sao paulo", Municipality: "São Paulo", IBGECode: "3550308", CustomerCount: 2},
			{City: "sao paulo", Municipality: "São Paulo", IBGECode: "3550308", CustomerCount: 2},
			{City: "campinas", Municipality: "Campinas", IBGECode: "3509502", CustomerCount: 1},
		}
		var buf bytes.Buffer
		require.NoError(t, r.CityCustomers(&buf, rows))
		decodePNG(t, &buf)
	})

	t.Run("category sales", func(t *testing.T) {
		rows := []domain.CategorySales{{Category: "toys", OrderCount: 2}, {Category: "books", OrderCount: 0}}
		var buf bytes.Buffer
		require.NoError(t, r.CategorySales(&buf, rows))
		decodePNG(t, &buf)
	})
}

func TestRendererEmptyTables(t *testing.T) {
	r := NewRenderer(DefaultSize)

	var buf bytes.Buffer
	require.NoError(t, r.DeliveryTimes(&buf, nil))
	decodePNG(t, &buf)

	buf.Reset()
	require.NoError(t, r.CategorySales(&buf, nil))
	decodePNG(t, &buf)
}

func TestDrawBarsCapsAndSorts(t *testing.T) {
	r := &Renderer{size: DefaultSize, maxBars: 2}
	bars := []bar{{"a", 1}, {"b", 5}, {"c", 3}}

	var buf bytes.Buffer
	require.NoError(t, r.drawBars(&buf, newPlot("t"), bars))
	assert.Equal(t, "b", bars[0].label, "bars are sorted in place, largest first")
	assert.Equal(t, "c", bars[1].label)
}
