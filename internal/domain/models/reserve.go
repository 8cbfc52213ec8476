package models

// Region groups reserve holders geographically.
type Region string

const (
	RegionNorthAmerica Region = "North America"
	RegionEurope       Region = "Europe"
	RegionAsia         Region = "Asia"
	RegionOthers       Region = "Others"

	// RegionAll is the filter value that selects every entry.
	RegionAll Region = "all"
)

// Regions lists every concrete region.
var Regions = []Region{RegionNorthAmerica, RegionEurope, RegionAsia, RegionOthers}

// BreakdownRegions are the regions shown in the regional breakdown card.
var BreakdownRegions = []Region{RegionEurope, RegionAsia, RegionNorthAmerica}

// IsValidRegion reports whether r is a concrete region or the "all" filter.
func IsValidRegion(r Region) bool {
	if r == RegionAll {
		return true
	}
	for _, x := range Regions {
		if x == r {
			return true
		}
	}
	return false
}

// ReserveEntry is a country's official gold holding.
type ReserveEntry struct {
	Country    string  `json:"country"`
	Code       string  `json:"code"`
	Reserves   float64 `json:"reserves"` // tonnes
	Percentage float64 `json:"percentage"`
	Change     float64 `json:"change"`
	Rank       int     `json:"rank"`
	Region     Region  `json:"region"`
	Flag       string  `json:"flag"`
}

// ReserveEntries returns a fresh copy of the twelve reserve holdings.
func ReserveEntries() []ReserveEntry {
	return []ReserveEntry{
		{Country: "United States", Code: "US", Reserves: 8133.5, Percentage: 19.8, Change: 0.0, Rank: 1, Region: RegionNorthAmerica, Flag: "🇺🇸"},
		{Country: "Germany", Code: "DE", Reserves: 3362.4, Percentage: 8.2, Change: 0.0, Rank: 2, Region: RegionEurope, Flag: "🇩🇪"},
		{Country: "Italy", Code: "IT", Reserves: 2451.8, Percentage: 6.0, Change: 0.0, Rank: 3, Region: RegionEurope, Flag: "🇮🇹"},
		{Country: "France", Code: "FR", Reserves: 2436.0, Percentage: 5.9, Change: 0.0, Rank: 4, Region: RegionEurope, Flag: "🇫🇷"},
		{Country: "Russia", Code: "RU", Reserves: 2298.5, Percentage: 5.6, Change: 156.2, Rank: 5, Region: RegionEurope, Flag: "🇷🇺"},
		{Country: "China", Code: "CN", Reserves: 2068.4, Percentage: 5.0, Change: 188.9, Rank: 6, Region: RegionAsia, Flag: "🇨🇳"},
		{Country: "Switzerland", Code: "CH", Reserves: 1040.0, Percentage: 2.5, Change: 0.0, Rank: 7, Region: RegionEurope, Flag: "🇨🇭"},
		{Country: "Japan", Code: "JP", Reserves: 765.2, Percentage: 1.9, Change: 0.0, Rank: 8, Region: RegionAsia, Flag: "🇯🇵"},
		{Country: "India", Code: "IN", Reserves: 760.4, Percentage: 1.9, Change: 42.3, Rank: 9, Region: RegionAsia, Flag: "🇮🇳"},
		{Country: "Netherlands", Code: "NL", Reserves: 612.5, Percentage: 1.5, Change: 0.0, Rank: 10, Region: RegionEurope, Flag: "🇳🇱"},
		{Country: "Turkey", Code: "TR", Reserves: 588.9, Percentage: 1.4, Change: 89.1, Rank: 11, Region: RegionEurope, Flag: "🇹🇷"},
		{Country: "Taiwan", Code: "TW", Reserves: 423.6, Percentage: 1.0, Change: 0.0, Rank: 12, Region: RegionAsia, Flag: "🇹🇼"},
	}
}

// RegionSummary aggregates the entries of one region against the global total.
type RegionSummary struct {
	Region     Region  `json:"region"`
	Countries  int     `json:"countries"`
	Subtotal   float64 `json:"subtotal"`
	Total      float64 `json:"total"`
	Percentage float64 `json:"percentage"`
}
