package dataprocessing

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"storydash/internal/config"
	"storydash/pkg/contracts/domain"
)

// Source provides the raw rows of every input dataset
type Source interface {
	Orders(limit int) ([]domain.Order, error)
	Customers() ([]domain.Customer, error)
	Municipalities() ([]domain.Municipality, error)
	Products() ([]domain.Product, error)
	OrderItems() ([]domain.OrderItem, error)
}

// CSVSource reads the datasets as header-keyed CSV files
type CSVSource struct {
	paths   *config.Paths
	columns config.ColumnsConfig
}

// NewCSVSource creates a source reading from the resolved paths
func NewCSVSource(paths *config.Paths, columns config.ColumnsConfig) *CSVSource {
	return &CSVSource{paths: paths, columns: columns}
}

// Orders reads at most limit rows of the orders source; limit <= 0 reads all
func (s *CSVSource) Orders(limit int) ([]domain.Order, error) {
	c := s.columns
	rows, err := readColumns("orders", s.paths.Orders, []string{c.OrderID, c.OrderPurchased, c.OrderDelivered})
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}

	orders := make([]domain.Order, 0, len(rows))
	for _, r := range rows {
		orders = append(orders, domain.Order{OrderID: r[0], PurchasedAt: r[1], DeliveredAt: r[2]})
	}
	return orders, nil
}

// Customers reads the customers source
func (s *CSVSource) Customers() ([]domain.Customer, error) {
	c := s.columns
	rows, err := readColumns("customers", s.paths.Customers, []string{c.CustomerID, c.CustomerCity, c.CustomerAreaCode})
	if err != nil {
		return nil, err
	}

	customers := make([]domain.Customer, 0, len(rows))
	for _, r := range rows {
		customers = append(customers, domain.Customer{CustomerID: r[0], City: r[1], AreaCode: r[2]})
	}
	return customers, nil
}

// Municipalities reads the municipalities source
func (s *CSVSource) Municipalities() ([]domain.Municipality, error) {
	c := s.columns
	rows, err := readColumns("municipalities", s.paths.Municipalities, []string{c.MunicipalityName, c.MunicipalityAreaCode, c.MunicipalityIBGE})
	if err != nil {
		return nil, err
	}

	municipalities := make([]domain.Municipality, 0, len(rows))
	for _, r := range rows {
		municipalities = append(municipalities, domain.Municipality{Name: r[0], AreaCode: r[1], IBGECode: r[2]})
	}
	return municipalities, nil
}

// Products reads the products source
func (s *CSVSource) Products() ([]domain.Product, error) {
	c := s.columns
	rows, err := readColumns("products", s.paths.Products, []string{c.ProductID, c.ProductCategory})
	if err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(rows))
	for _, r := range rows {
		products = append(products, domain.Product{ProductID: r[0], Category: r[1]})
	}
	return products, nil
}

// OrderItems reads the order-items source
func (s *CSVSource) OrderItems() ([]domain.OrderItem, error) {
	c := s.columns
	rows, err := readColumns("order_items", s.paths.OrderItems, []string{c.ItemOrderID, c.ItemProductID})
	if err != nil {
		return nil, err
	}

	items := make([]domain.OrderItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, domain.OrderItem{OrderID: r[0], ProductID: r[1]})
	}
	return items, nil
}

// readColumns loads a CSV file and returns the data rows of the requested
// columns, in the requested order. All values are read as strings.
func readColumns(source, path string, columns []string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &SourceError{Source: source, Path: path, Err: err}
	}
	defer f.Close()

	records, err := readRecords(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s source %s: %w", source, path, err)
	}
	// a header without data rows is an empty table, not a broken file
	if len(records) < 2 {
		return nil, nil
	}

	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("failed to parse %s source %s: %w", source, path, df.Err)
	}

	names := make(map[string]bool, df.Ncol())
	for _, name := range df.Names() {
		names[name] = true
	}
	for _, col := range columns {
		if !names[col] {
			return nil, &ColumnError{Source: source, Path: path, Column: col}
		}
	}

	rows := df.Select(columns).Records()[1:] // first record is the header
	for _, row := range rows {
		for i, v := range row {
			// gota renders missing cells as NaN
			if v == missingCell {
				row[i] = ""
			}
		}
	}
	return rows, nil
}

// readRecords decodes a CSV stream, dropping a leading UTF-8 BOM. Rows shorter
// than the header are padded with empty cells; longer rows are an error.
func readRecords(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	width := len(records[0])
	for i := 1; i < len(records); i++ {
		switch n := len(records[i]); {
		case n > width:
			return nil, fmt.Errorf("record %d has %d fields, header has %d", i, n, width)
		case n < width:
			records[i] = append(records[i], make([]string, width-n)...)
		}
	}
	return records, nil
}

const missingCell = "NaN"
