package services

import "strings"

// Rough per-item impact estimates used for the monthly aggregates.
// Values are kg of waste diverted and kg of CO2 avoided per scanned item.
var impactByCategory = map[string]struct{ WasteKg, CarbonKg float64 }{
	"organic":    {0.5, 0.25},
	"plastic":    {0.2, 0.5},
	"electronic": {1.5, 4.0},
	"hazardous":  {0.8, 1.2},
	"paper":      {0.3, 0.35},
	"glass":      {0.4, 0.3},
	"metal":      {0.3, 1.0},
	"textile":    {0.6, 2.0},
	"general":    {0.2, 0.1},
}

// EstimateImpact maps a classified category to its monthly-stats deltas.
// Unknown categories fall back to the "general" estimate.
func EstimateImpact(category string) (wasteKg, carbonKg float64) {
	impact, ok := impactByCategory[strings.ToLower(category)]
	if !ok {
		impact = impactByCategory["general"]
	}
	return impact.WasteKg, impact.CarbonKg
}
