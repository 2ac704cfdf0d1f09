package domain

// Municipality represents one row of the municipalities source
type Municipality struct {
	Name     string `json:"name"`
	AreaCode string `json:"ddd"`
	IBGECode string `json:"codigo_ibge"`
}

// Customer represents one row of the customers source. AreaCode holds either a
// numeric dialing code or a state token such as "SP".
type Customer struct {
	CustomerID string `json:"customer_id"`
	City       string `json:"customer_city"`
	AreaCode   string `json:"customer_state"`
}

// CityCustomers is one matched municipality/customer pair. CustomerCount is the
// total for City and is repeated on every row sharing that city.
type CityCustomers struct {
	City          string `json:"city"`
	Municipality  string `json:"municipality"`
	IBGECode      string `json:"ibge_code"`
	AreaCode      int    `json:"ddd"`
	CustomerID    string `json:"customer_id"`
	CustomerCount int    `json:"customer_count"`
}
