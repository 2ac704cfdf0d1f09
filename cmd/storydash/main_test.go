package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storydash/internal/config"
)

// writeDataset lays out orders, customers and municipalities in a fresh
// working directory. Product files are left out on purpose.
func writeDataset(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)

	for name, content := range map[string]string{
		config.DefaultOrdersFile: "order_id,order_purchase_timestamp,order_delivered_customer_date\n" +
			"o1,2023-01-01 10:00:00,2023-01-05 12:00:00\n" +
			"o2,2023-01-02 09:00:00,2023-01-03 09:00:00\n",
		config.DefaultCustomersFile:      "customer_id,customer_city,customer_state\nc1,sao paulo,SP\n",
		config.DefaultMunicipalitiesFile: "codigo_ibge,nome,ddd\n3550308,São Paulo,11\n",
	} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func TestRunCommand(t *testing.T) {
	writeDataset(t)

	out, err := execute(t, "run", "--rows", "1")
	require.NoError(t, err)

	assert.Contains(t, out, "Tempo entre pedido e entrega")
	assert.Contains(t, out, "lag_days")
	assert.Contains(t, out, "2023-01-01")
	assert.NotContains(t, out, "2023-01-02", "--rows 1 loads a single order")
	assert.Contains(t, out, "São Paulo")
	assert.Contains(t, out, "category-sales: source unavailable: products")
}

func TestRunCommandExplain(t *testing.T) {
	writeDataset(t)

	out, err := execute(t, "run", "--explain")
	require.NoError(t, err)

	assert.Contains(t, out, "### orders")
	assert.Contains(t, out, "### municipalities_in_range")
	assert.Contains(t, out, "order_purchase_timestamp")
}

func TestRunCommandRejectsRowLimit(t *testing.T) {
	writeDataset(t)

	_, err := execute(t, "run", "--rows", "10001")
	assert.Error(t, err)

	_, err = execute(t, "run", "--rows", "0")
	assert.Error(t, err)
}

func TestExportCommand(t *testing.T) {
	dir := writeDataset(t)
	out := filepath.Join(dir, "out")

	stdout, err := execute(t, "export", "--out", out)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(out, workbookName))
	assert.FileExists(t, filepath.Join(out, "delivery_times.csv"))
	assert.FileExists(t, filepath.Join(out, "city_customers.csv"))
	assert.NoFileExists(t, filepath.Join(out, "category_sales.csv"))
	assert.Contains(t, stdout, "source unavailable")
}

func TestExportCommandNothingToExport(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := execute(t, "export", "--out", "out")
	assert.Error(t, err)
}
