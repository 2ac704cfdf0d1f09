package charts

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"storydash/pkg/contracts/domain"
)

// DefaultCodeProperty is the feature property holding the IBGE code in the
// municipality boundary file
const DefaultCodeProperty = "id"

// FeatureCollection is a GeoJSON feature collection. Geometries are kept as
// raw JSON and never decoded.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature is a GeoJSON feature with free-form properties
type Feature struct {
	Type       string          `json:"type"`
	ID         json.RawMessage `json:"id,omitempty"`
	Properties map[string]any  `json:"properties"`
	Geometry   json.RawMessage `json:"geometry"`
}

// Choropleth is the data of a municipality choropleth: the boundary layer plus
// one location/value pair per municipality with customers.
type Choropleth struct {
	GeoJSON      *FeatureCollection `json:"geojson"`
	FeatureIDKey string             `json:"featureidkey"`
	Locations    []string           `json:"locations"`
	Values       []int              `json:"z"`
	Names        []string           `json:"text"`
}

// LoadBoundaries reads a GeoJSON FeatureCollection from path
func LoadBoundaries(path string) (*FeatureCollection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open boundaries %s: %w", path, err)
	}
	defer f.Close()

	var fc FeatureCollection
	if err := json.NewDecoder(f).Decode(&fc); err != nil {
		return nil, fmt.Errorf("failed to decode boundaries %s: %w", path, err)
	}
	if fc.Type != "FeatureCollection" {
		return nil, fmt.Errorf("boundaries %s: expected FeatureCollection, got %q", path, fc.Type)
	}
	return &fc, nil
}

// BuildChoropleth attaches customer counts to the boundary features keyed by
// IBGE code. Every feature whose code has customers gets a customer_count
// property; features without customers are kept with a count of 0. Locations
// follow the order of first appearance in rows.
func BuildChoropleth(fc *FeatureCollection, rows []domain.CityCustomers, codeProperty string) *Choropleth {
	if codeProperty == "" {
		codeProperty = DefaultCodeProperty
	}

	counts := make(map[string]int)
	out := &Choropleth{FeatureIDKey: "properties." + codeProperty}
	for _, row := range rows {
		if _, ok := counts[row.IBGECode]; ok {
			continue
		}
		counts[row.IBGECode] = row.CustomerCount
		out.Locations = append(out.Locations, row.IBGECode)
		out.Values = append(out.Values, row.CustomerCount)
		out.Names = append(out.Names, row.Municipality)
	}

	if fc == nil {
		return out
	}

	merged := &FeatureCollection{Type: fc.Type, Features: make([]Feature, len(fc.Features))}
	for i, feature := range fc.Features {
		props := make(map[string]any, len(feature.Properties)+1)
		for k, v := range feature.Properties {
			props[k] = v
		}
		props["customer_count"] = counts[propertyString(props[codeProperty])]

		feature.Properties = props
		merged.Features[i] = feature
	}
	out.GeoJSON = merged
	return out
}

// propertyString renders a code property that may be encoded as string or number
func propertyString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case json.Number:
		return val.String()
	case nil:
		return ""
	default:
		return fmt.Sprint(val)
	}
}
