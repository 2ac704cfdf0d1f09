package dataprocessing

import (
	"fmt"
	"sort"
	"strconv"

	"storydash/pkg/contracts/domain"
)

// Table is a named intermediate table exposed in explain mode
type Table struct {
	Name    string     `json:"name"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

func ordersTable(orders []domain.Order) Table {
	t := Table{Name: "orders", Columns: []string{"order_id", "order_purchase_timestamp", "order_delivered_customer_date"}}
	for _, o := range orders {
		t.Rows = append(t.Rows, []string{o.OrderID, o.PurchasedAt, o.DeliveredAt})
	}
	return t
}

func deliveryTimesTable(rows []domain.DeliveryTime) Table {
	t := Table{Name: "delivery_times", Columns: []string{"order_id", "purchase_date", "lag_days"}}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{r.OrderID, r.Date(), strconv.Itoa(r.LagDays)})
	}
	return t
}

func municipalitiesTable(rows []cityMunicipality) Table {
	t := Table{Name: "municipalities_in_range", Columns: []string{"city", "name", "ddd", "codigo_ibge"}}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{r.City, r.Municipality.Name, strconv.Itoa(r.AreaCode), r.Municipality.IBGECode})
	}
	return t
}

func customersTable(rows []cityCustomer) Table {
	t := Table{Name: "customers_in_range", Columns: []string{"city", "customer_id", "ddd"}}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{r.City, r.Customer.CustomerID, strconv.Itoa(r.AreaCode)})
	}
	return t
}

func cityCountsTable(counts map[string]int) Table {
	cities := make([]string, 0, len(counts))
	for city := range counts {
		cities = append(cities, city)
	}
	sort.Strings(cities)

	t := Table{Name: "customers_per_city", Columns: []string{"city", "customer_count"}}
	for _, city := range cities {
		t.Rows = append(t.Rows, []string{city, strconv.Itoa(counts[city])})
	}
	return t
}

func cityCustomersTable(rows []domain.CityCustomers) Table {
	t := Table{Name: "city_customers", Columns: []string{"city", "municipality", "codigo_ibge", "ddd", "customer_id", "customer_count"}}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{r.City, r.Municipality, r.IBGECode, strconv.Itoa(r.AreaCode), r.CustomerID, strconv.Itoa(r.CustomerCount)})
	}
	return t
}

func categorizedItemsTable(rows []categorizedItem) Table {
	t := Table{Name: "items_with_category", Columns: []string{"order_id", "product_id", "product_category_name"}}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{r.OrderID, r.ProductID, r.Category})
	}
	return t
}

func categorySalesTable(rows []domain.CategorySales) Table {
	t := Table{Name: "category_sales", Columns: []string{"product_category_name", "order_count"}}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{r.Category, strconv.Itoa(r.OrderCount)})
	}
	return t
}

// ChartTable returns the output table of one chart, or the error that halted it
func (r *Result) ChartTable(id ChartID) (Table, error) {
	if err := r.ChartErr(id); err != nil {
		return Table{}, err
	}
	switch id {
	case ChartDeliveryTimes:
		return deliveryTimesTable(r.DeliveryTimes.Rows), nil
	case ChartCityCustomers:
		return cityCustomersTable(r.CityCustomers.Rows), nil
	case ChartCategorySales:
		return categorySalesTable(r.CategorySales.Rows), nil
	}
	return Table{}, fmt.Errorf("unknown chart %q", id)
}

// ChartSteps returns the intermediate tables of one chart
func (r *Result) ChartSteps(id ChartID) []Table {
	switch id {
	case ChartDeliveryTimes:
		return r.DeliveryTimes.Steps
	case ChartCityCustomers:
		return r.CityCustomers.Steps
	case ChartCategorySales:
		return r.CategorySales.Steps
	}
	return nil
}

// Tables returns the output table of every chart that was computed, in chart
// order. Failed charts are skipped.
func (r *Result) Tables() []Table {
	var tables []Table
	for _, id := range Charts {
		if t, err := r.ChartTable(id); err == nil {
			tables = append(tables, t)
		}
	}
	return tables
}
