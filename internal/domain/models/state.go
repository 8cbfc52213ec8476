package models

// DashboardState is a consolidated view of one dashboard session.
// Panel sections are nil unless that panel is mounted.
type DashboardState struct {
	SessionID string        `json:"sessionId"`
	Clock     string        `json:"clock"`
	Ticker    []TickerEntry `json:"ticker"`
	SpotGold  TickerEntry   `json:"spotGold"`
	ActiveTab Tab           `json:"activeTab"`
	Tabs      []Tab         `json:"tabs"`
	Markets   []MarketQuote `json:"markets,omitempty"`
	Charts    *ChartView    `json:"charts,omitempty"`
	Reserves  *ReservesView `json:"reserves,omitempty"`
}

// ChartView is the price chart panel's readable state.
type ChartView struct {
	Range      TimeRange        `json:"range"`
	Ranges     []TimeRange      `json:"ranges"`
	Series     []ChartPoint     `json:"series"`
	Widgets    []WidgetConfig   `json:"widgets"`
	Statistics []ChartStatGroup `json:"statistics"`
}

// ReservesView is the reserves panel's readable state.
type ReservesView struct {
	Region    Region          `json:"region"`
	Regions   []Region        `json:"regions"`
	Entries   []ReserveEntry  `json:"entries"`
	Summary   RegionSummary   `json:"summary"`
	Breakdown []RegionSummary `json:"breakdown"`
}

// StreamFrame is one live update pushed to a connected browser.
type StreamFrame struct {
	Clock     string        `json:"clock"`
	ActiveTab Tab           `json:"activeTab"`
	Markets   []MarketQuote `json:"markets,omitempty"`
}
