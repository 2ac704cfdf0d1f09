package dataprocessing

import (
	"math"
	"strconv"
	"strings"

	"storydash/internal/config"
	"storydash/pkg/contracts/domain"
)

// AreaCodeRange is an inclusive range of telephone dialing codes (DDD)
type AreaCodeRange struct {
	Low  int
	High int
}

// SaoPauloAreaCodes approximates the municipalities of São Paulo state by their
// dialing codes. It is a stand-in, not an authoritative state boundary.
var SaoPauloAreaCodes = AreaCodeRange{
	Low:  config.SaoPauloAreaCodeLow,
	High: config.SaoPauloAreaCodeHigh,
}

// Contains reports whether code lies in the range
func (r AreaCodeRange) Contains(code int) bool {
	return code >= r.Low && code <= r.High
}

// stateSentinel is the legacy data-entry token customers carry instead of a
// dialing code; it stands for the São Paulo capital code.
const (
	stateSentinel     = "SP"
	stateSentinelCode = 11
)

// CoerceAreaCode turns a raw area-code field into a dialing code. The token
// "SP" maps to 11. Values that are not whole numbers are not coercible.
func CoerceAreaCode(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	if strings.EqualFold(s, stateSentinel) {
		return stateSentinelCode, true
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	// numeric columns exported as floats, e.g. "11.0"
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == math.Trunc(f) && !math.IsInf(f, 0) {
		return int(f), true
	}
	return 0, false
}

// cityMunicipality is a municipality row that survived the area-code filter
type cityMunicipality struct {
	City         string
	Municipality domain.Municipality
	AreaCode     int
}

// cityCustomer is a customer row that survived the area-code filter
type cityCustomer struct {
	City     string
	Customer domain.Customer
	AreaCode int
}

// filterMunicipalities normalizes names and keeps rows whose area code is in codes
func filterMunicipalities(municipalities []domain.Municipality, codes AreaCodeRange) []cityMunicipality {
	kept := make([]cityMunicipality, 0, len(municipalities))
	for _, m := range municipalities {
		code, ok := CoerceAreaCode(m.AreaCode)
		if !ok || !codes.Contains(code) {
			continue
		}
		kept = append(kept, cityMunicipality{City: NormalizeText(m.Name), Municipality: m, AreaCode: code})
	}
	return kept
}

// filterCustomers normalizes cities and keeps rows whose coerced area code is in codes
func filterCustomers(customers []domain.Customer, codes AreaCodeRange) []cityCustomer {
	kept := make([]cityCustomer, 0, len(customers))
	for _, c := range customers {
		code, ok := CoerceAreaCode(c.AreaCode)
		if !ok || !codes.Contains(code) {
			continue
		}
		kept = append(kept, cityCustomer{City: NormalizeText(c.City), Customer: c, AreaCode: code})
	}
	return kept
}

// innerJoinCities pairs every municipality with every customer of the same
// normalized city. Output follows municipality order, then customer order.
// Unmatched rows on either side are dropped.
func innerJoinCities(municipalities []cityMunicipality, customers []cityCustomer) []domain.CityCustomers {
	byCity := make(map[string][]cityCustomer)
	for _, c := range customers {
		byCity[c.City] = append(byCity[c.City], c)
	}

	var joined []domain.CityCustomers
	for _, m := range municipalities {
		for _, c := range byCity[m.City] {
			joined = append(joined, domain.CityCustomers{
				City:         m.City,
				Municipality: m.Municipality.Name,
				IBGECode:     m.Municipality.IBGECode,
				AreaCode:     m.AreaCode,
				CustomerID:   c.Customer.CustomerID,
			})
		}
	}
	return joined
}

// countByCity counts joined rows per normalized city
func countByCity(joined []domain.CityCustomers) map[string]int {
	counts := make(map[string]int)
	for _, row := range joined {
		counts[row.City]++
	}
	return counts
}

// JoinCityCustomers joins municipalities to customers on normalized city name
// within codes and stamps each joined row with its city's total. Every matched
// pair stays in the output; the count repeats across rows of the same city.
func JoinCityCustomers(municipalities []domain.Municipality, customers []domain.Customer, codes AreaCodeRange) []domain.CityCustomers {
	joined := innerJoinCities(filterMunicipalities(municipalities, codes), filterCustomers(customers, codes))
	stampCityCounts(joined, countByCity(joined))
	return joined
}

// stampCityCounts copies each city's total onto all of its joined rows
func stampCityCounts(joined []domain.CityCustomers, counts map[string]int) {
	for i := range joined {
		joined[i].CustomerCount = counts[joined[i].City]
	}
}
