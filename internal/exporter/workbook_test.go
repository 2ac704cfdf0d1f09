package exporter

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"storydash/internal/dataprocessing"
)

func TestWriteWorkbook(t *testing.T) {
	tables := []dataprocessing.Table{
		{Name: "delivery_times", Columns: []string{"order_id", "purchase_date", "lag_days"}, Rows: [][]string{
			{"e481f51c", "2017-10-02", "8"},
			{"53cdb2fc", "2018-07-24", "-1"},
		}},
		{Name: "city_customers", Columns: []string{"city", "municipality", "codigo_ibge", "ddd", "customer_id", "customer_count"}, Rows: [][]string{
			{"sao paulo", "São Paulo", "3550308", "11", "c1", "2"},
		}},
		{Name: "category_sales", Columns: []string{"product_category_name", "order_count"}, Rows: [][]string{
			{"toys", "2"},
			{"books", "0"},
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, tables))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"delivery_times", "city_customers", "category_sales"}, f.GetSheetList())

	rows, err := f.GetRows("category_sales")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"product_category_name", "order_count"}, {"toys", "2"}, {"books", "0"}}, rows)

	rows, err = f.GetRows("city_customers")
	require.NoError(t, err)
	assert.Equal(t, "São Paulo", rows[1][1])

	lag, err := f.GetCellValue("delivery_times", "C3")
	require.NoError(t, err)
	assert.Equal(t, "-1", lag)

	cellType, err := f.GetCellType("delivery_times", "C2")
	require.NoError(t, err)
	assert.NotEqual(t, excelize.CellTypeSharedString, cellType, "lag_days is stored as a number")
}

func TestWriteWorkbookEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	assert.Len(t, f.GetSheetList(), 1)
}

func TestCellValue(t *testing.T) {
	columns := []string{"codigo_ibge", "order_count"}
	assert.Equal(t, "3550308", cellValue(columns, 0, "3550308"))
	assert.Equal(t, 12, cellValue(columns, 1, "12"))
	assert.Equal(t, "n/a", cellValue(columns, 1, "n/a"))
}
