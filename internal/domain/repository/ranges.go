package repository

import "GoldTracker/internal/domain/models"

// IsValidRange returns true if r is a supported chart range.
func IsValidRange(r models.TimeRange) bool {
	switch r {
	case models.Range1D, models.Range1W, models.Range1M, models.Range3M, models.Range1Y:
		return true
	default:
		return false
	}
}

// DefaultRange returns the range a freshly mounted chart starts with.
func DefaultRange() models.TimeRange { return models.Range1D }

// PointCount is the canonical series length for a range.
func PointCount(r models.TimeRange) int {
	switch r {
	case models.Range1D:
		return 24
	case models.Range1W:
		return 7
	case models.Range1M:
		return 30
	case models.Range3M:
		return 90
	case models.Range1Y:
		return 365
	default:
		return 24
	}
}

// WidgetInterval maps a range to the main chart widget's bar interval.
func WidgetInterval(r models.TimeRange) string {
	switch r {
	case models.Range1D:
		return "15"
	case models.Range1W:
		return "1H"
	case models.Range1M:
		return "4H"
	case models.Range3M:
		return "1D"
	case models.Range1Y:
		return "1W"
	default:
		return "15"
	}
}
