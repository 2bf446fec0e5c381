// Package schema holds the fixed column mapping used to normalize
// spreadsheet exports, and the canonical columns that get typed handling.
package schema

import "sort"

// Metadata columns appended to every normalized dataset.
const (
	FileName     = "file_name"
	FileDate     = "file_date"
	DateCreated  = "date_created"
	DateModified = "date_modified"
)

// columnMapping maps raw spreadsheet headers to canonical field names.
// Matching is exact and case-sensitive; trailing numerals are significant.
var columnMapping = map[string]string{
	"Date Pulled":                 "date_pulled",
	"Date":                        "date",
	"South Demand level":          "south_demand_level",
	"OPAL Price":                  "opal_price",
	"OPAL Price Level":            "opal_price_level",
	"South price level":           "south_price_level",
	"Central Demand level":        "central_demand_level",
	"Hilton Price":                "hilton_price",
	"Hilton Price Level":          "hilton_price_level",
	"Central price level":         "central_price_level",
	"Central Flight level":        "central_flight_level",
	"South META Search Level":     "south_meta_search_level",
	"Central META Search Level":   "central_meta_search_level",
	"South GDS Search Level":      "south_gds_search_level",
	"Central GDS Search Level":    "central_gds_search_level",
	"South Unavailable Hotels":    "south_unavailable_hotels",
	"Central Unavailable Hotels":  "central_unavailable_hotels",
	"South Demand level2":         "south_demand_level2",
	"South price level3":          "south_price_level3",
	"Central Demand level4":       "central_demand_level4",
	"Central price level5":        "central_price_level5",
	"South META Search Level2":    "south_meta_search_level2",
	"Central META Search Level3":  "central_meta_search_level3",
	"South GDS Search Level2":     "south_gds_search_level2",
	"Central GDS Search Level3":   "central_gds_search_level3",
	"SOUTH Search Level":          "south_search_level",
	"CENTRAL Search Level":        "central_search_level",
	"Demand level":                "demand_level",
	"price level":                 "price_level",
	"Central Flight level 6":      "central_flight_level6",
	"META Search Demand Level":    "meta_search_demand_level",
	"Unavailable Hotels":          "unavailable_hotels",
	"Overall Search Demand Level": "overall_search_demand_level",
}

var (
	percentageFields = []string{"south_unavailable_hotels", "central_unavailable_hotels"}
	priceFields      = []string{"opal_price", "hilton_price"}
	dateFields       = []string{"date_pulled", "date"}
)

// Canonical returns the canonical name for a raw header.
func Canonical(raw string) (string, bool) {
	name, ok := columnMapping[raw]
	return name, ok
}

// Rename returns the canonical name for header, or header itself when it
// is not a known raw header.
func Rename(header string) string {
	if name, ok := columnMapping[header]; ok {
		return name
	}

	return header
}

// RawHeaders returns every known raw header in sorted order.
func RawHeaders() []string {
	headers := make([]string, 0, len(columnMapping))
	for raw := range columnMapping {
		headers = append(headers, raw)
	}

	sort.Strings(headers)

	return headers
}

// Len returns the number of entries in the mapping table.
func Len() int {
	return len(columnMapping)
}

// PercentageFields returns the canonical columns holding "NN%" values.
func PercentageFields() []string {
	return append([]string(nil), percentageFields...)
}

// PriceFields returns the canonical columns holding prices.
func PriceFields() []string {
	return append([]string(nil), priceFields...)
}

// DateFields returns the canonical columns holding calendar dates.
func DateFields() []string {
	return append([]string(nil), dateFields...)
}
