package models

import "time"

// MarketStatus is the trading state of a venue.
type MarketStatus string

const (
	StatusOpen      MarketStatus = "open"
	StatusClosed    MarketStatus = "closed"
	StatusPreMarket MarketStatus = "pre-market"
)

// MarketQuote is a gold price record for one trading venue.
type MarketQuote struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	City          string       `json:"city"`
	Country       string       `json:"country"`
	Price         float64      `json:"price"`
	Change        float64      `json:"change"`
	ChangePercent float64      `json:"changePercent"`
	Volume        string       `json:"volume"`
	High24h       float64      `json:"high24h"`
	Low24h        float64      `json:"low24h"`
	Status        MarketStatus `json:"status"`
	Timezone      string       `json:"timezone"`
	LastUpdate    string       `json:"lastUpdate"`
}

// TickSnapshot is one session's quote grid right after a simulator tick.
// Every session runs its own random walk, so consumers key by Session and quote ID.
type TickSnapshot struct {
	Session string
	At      time.Time
	Quotes  []MarketQuote
}

// SeedQuotes returns a fresh copy of the initial market grid.
func SeedQuotes() []MarketQuote {
	return []MarketQuote{
		{ID: "lbma", Name: "LBMA", City: "London", Country: "UK", Price: 2034.50, Change: 12.30, ChangePercent: 0.61,
			Volume: "145.2M", High24h: 2041.20, Low24h: 2018.90, Status: StatusOpen, Timezone: "GMT", LastUpdate: "2 mins ago"},
		{ID: "comex", Name: "COMEX", City: "New York", Country: "USA", Price: 2031.80, Change: -5.20, ChangePercent: -0.26,
			Volume: "198.7M", High24h: 2039.50, Low24h: 2025.10, Status: StatusOpen, Timezone: "EST", LastUpdate: "1 min ago"},
		{ID: "sge", Name: "SGE", City: "Shanghai", Country: "China", Price: 2038.90, Change: 18.70, ChangePercent: 0.93,
			Volume: "89.3M", High24h: 2042.80, Low24h: 2019.40, Status: StatusClosed, Timezone: "CST", LastUpdate: "4 hours ago"},
		{ID: "mcx", Name: "MCX", City: "Mumbai", Country: "India", Price: 2029.40, Change: 8.90, ChangePercent: 0.44,
			Volume: "67.8M", High24h: 2035.60, Low24h: 2021.30, Status: StatusClosed, Timezone: "IST", LastUpdate: "6 hours ago"},
		{ID: "tocom", Name: "TOCOM", City: "Tokyo", Country: "Japan", Price: 2035.60, Change: 15.20, ChangePercent: 0.75,
			Volume: "52.1M", High24h: 2040.90, Low24h: 2022.80, Status: StatusPreMarket, Timezone: "JST", LastUpdate: "30 mins ago"},
		{ID: "lme", Name: "LME", City: "London", Country: "UK", Price: 2033.10, Change: -2.40, ChangePercent: -0.12,
			Volume: "78.9M", High24h: 2037.70, Low24h: 2028.50, Status: StatusOpen, Timezone: "GMT", LastUpdate: "3 mins ago"},
	}
}

// TickerEntry is one row of the header price ticker.
type TickerEntry struct {
	Market        string  `json:"market"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
}

// HeaderTicker returns the static header ticker rows.
func HeaderTicker() []TickerEntry {
	return []TickerEntry{
		{Market: "LONDON", Price: 2034.50, Change: 12.30, ChangePercent: 0.61},
		{Market: "NEW YORK", Price: 2031.80, Change: -5.20, ChangePercent: -0.26},
		{Market: "SHANGHAI", Price: 2038.90, Change: 18.70, ChangePercent: 0.93},
		{Market: "MUMBAI", Price: 2029.40, Change: 8.90, ChangePercent: 0.44},
		{Market: "TOKYO", Price: 2035.60, Change: 15.20, ChangePercent: 0.75},
		{Market: "ZURICH", Price: 2033.10, Change: -2.40, ChangePercent: -0.12},
	}
}

// SpotGold is the header headline quote.
var SpotGold = TickerEntry{Market: "Spot Gold", Price: 2034.50, Change: 12.30, ChangePercent: 0.61}
