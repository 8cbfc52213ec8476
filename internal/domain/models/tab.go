package models

// Tab is a top-level dashboard view.
type Tab string

const (
	TabMarkets  Tab = "markets"
	TabCharts   Tab = "charts"
	TabReserves Tab = "reserves"
)

// Tabs lists the views in navigation order.
var Tabs = []Tab{TabMarkets, TabCharts, TabReserves}

// IsValidTab reports whether t names a known view.
func IsValidTab(t Tab) bool {
	switch t {
	case TabMarkets, TabCharts, TabReserves:
		return true
	default:
		return false
	}
}
