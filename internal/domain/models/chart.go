package models

// TimeRange is a chart range selector value.
type TimeRange string

const (
	Range1D TimeRange = "1D"
	Range1W TimeRange = "1W"
	Range1M TimeRange = "1M"
	Range3M TimeRange = "3M"
	Range1Y TimeRange = "1Y"
)

// TimeRanges lists the selectable ranges in display order.
var TimeRanges = []TimeRange{Range1D, Range1W, Range1M, Range3M, Range1Y}

// ChartPoint is one sample of a generated price series.
type ChartPoint struct {
	Time   string  `json:"time"`
	Price  float64 `json:"price"`
	Volume float64 `json:"volume"`
}

// ChartStat is a labelled figure in the chart panel's statistic cards.
type ChartStat struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Trend int    `json:"trend"` // 1 up, -1 down, 0 neutral
}

// ChartStatGroup is one statistics card.
type ChartStatGroup struct {
	Title string      `json:"title"`
	Stats []ChartStat `json:"stats"`
}

// MarketStatistics returns the static statistic cards shown under the charts.
func MarketStatistics() []ChartStatGroup {
	return []ChartStatGroup{
		{Title: "Market Overview", Stats: []ChartStat{
			{Label: "24h High", Value: "$2,087.50", Trend: 1},
			{Label: "24h Low", Value: "$2,045.20", Trend: -1},
			{Label: "Volume", Value: "142.5K oz"},
			{Label: "Market Cap", Value: "$12.8T"},
		}},
		{Title: "Support & Resistance", Stats: []ChartStat{
			{Label: "Resistance 1", Value: "$2,095.00", Trend: -1},
			{Label: "Resistance 2", Value: "$2,110.00", Trend: -1},
			{Label: "Support 1", Value: "$2,040.00", Trend: 1},
			{Label: "Support 2", Value: "$2,020.00", Trend: 1},
		}},
		{Title: "Performance", Stats: []ChartStat{
			{Label: "1 Day", Value: "+0.85%", Trend: 1},
			{Label: "1 Week", Value: "+2.14%", Trend: 1},
			{Label: "1 Month", Value: "-1.23%", Trend: -1},
			{Label: "YTD", Value: "+12.45%", Trend: 1},
		}},
	}
}
