package charts

import (
	"fmt"
	"io"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"storydash/pkg/contracts/domain"
)

// Chart titles and axis labels shown to the user
const (
	DeliveryTimesTitle = "Tempo entre pedido e entrega"
	DeliveryTimesX     = "Data do pedido"
	DeliveryTimesY     = "Tempo de entrega (dias)"

	CityCustomersTitle = "Clientes por cidade"
	CityCustomersY     = "Clientes"

	CategorySalesTitle = "Vendas por categoria"
	CategorySalesY     = "Itens vendidos"
)

// Size is the width and height of a rendered image
type Size struct {
	Width  vg.Length
	Height vg.Length
}

// DefaultSize matches the wide layout of the dashboard page
var DefaultSize = Size{Width: 12 * vg.Inch, Height: 6 * vg.Inch}

// MaxBars caps the number of bars in the city and category charts
const MaxBars = 20

// Renderer draws chart tables as PNG images
type Renderer struct {
	size    Size
	maxBars int
}

// NewRenderer creates a renderer drawing images of the given size
func NewRenderer(size Size) *Renderer {
	if size.Width <= 0 || size.Height <= 0 {
		size = DefaultSize
	}
	return &Renderer{size: size, maxBars: MaxBars}
}

// DeliveryTimes draws a scatter of purchase date against delivery lag
func (r *Renderer) DeliveryTimes(w io.Writer, rows []domain.DeliveryTime) error {
	p := newPlot(DeliveryTimesTitle)
	p.X.Label.Text = DeliveryTimesX
	p.Y.Label.Text = DeliveryTimesY
	p.X.Tick.Marker = plot.TimeTicks{Format: domain.DateLayout}

	if len(rows) > 0 {
		points := make(plotter.XYs, len(rows))
		for i, row := range rows {
			points[i].X = float64(row.PurchasedAt.Unix())
			points[i].Y = float64(row.LagDays)
		}

		scatter, err := plotter.NewScatter(points)
		if err != nil {
			return fmt.Errorf("failed to build delivery scatter: %w", err)
		}
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		scatter.GlyphStyle.Radius = vg.Points(2)
		p.Add(scatter)
	}

	return r.write(w, p)
}

// CityCustomers draws one bar per city with its customer count, largest first
func (r *Renderer) CityCustomers(w io.Writer, rows []domain.CityCustomers) error {
	seen := make(map[string]bool)
	var bars []bar
	for _, row := range rows {
		if seen[row.City] {
			continue
		}
		seen[row.City] = true
		bars = append(bars, bar{label: row.Municipality, value: row.CustomerCount})
	}

	p := newPlot(CityCustomersTitle)
	p.Y.Label.Text = CityCustomersY
	return r.drawBars(w, p, bars)
}

// CategorySales draws one bar per product category, largest first
func (r *Renderer) CategorySales(w io.Writer, rows []domain.CategorySales) error {
	bars := make([]bar, 0, len(rows))
	for _, row := range rows {
		bars = append(bars, bar{label: row.Category, value: row.OrderCount})
	}

	p := newPlot(CategorySalesTitle)
	p.Y.Label.Text = CategorySalesY
	return r.drawBars(w, p, bars)
}

type bar struct {
	label string
	value int
}

func (r *Renderer) drawBars(w io.Writer, p *plot.Plot, bars []bar) error {
	sort.SliceStable(bars, func(i, j int) bool { return bars[i].value > bars[j].value })
	if len(bars) > r.maxBars {
		bars = bars[:r.maxBars]
	}

	if len(bars) > 0 {
		values := make(plotter.Values, len(bars))
		labels := make([]string, len(bars))
		for i, b := range bars {
			values[i] = float64(b.value)
			labels[i] = b.label
		}

		chart, err := plotter.NewBarChart(values, vg.Points(20))
		if err != nil {
			return fmt.Errorf("failed to build bar chart: %w", err)
		}
		chart.LineStyle.Width = vg.Length(0)
		p.Add(chart)
		p.NominalX(labels...)
		p.X.Tick.Label.Rotation = 0.8
		p.X.Tick.Label.XAlign = draw.XRight
		p.X.Tick.Label.YAlign = draw.YCenter
	}

	return r.write(w, p)
}

func newPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.Add(plotter.NewGrid())
	return p
}

func (r *Renderer) write(w io.Writer, p *plot.Plot) error {
	wt, err := p.WriterTo(r.size.Width, r.size.Height, "png")
	if err != nil {
		return fmt.Errorf("failed to create png canvas: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write png: %w", err)
	}
	return nil
}
