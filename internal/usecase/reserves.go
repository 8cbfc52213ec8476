package usecase

import (
	"fmt"

	"GoldTracker/internal/domain/models"

	"github.com/shopspring/decimal"
)

// FilterReserves returns the entries of one region, or all entries for "all".
// The input slice is never modified.
func FilterReserves(entries []models.ReserveEntry, region models.Region) ([]models.ReserveEntry, error) {
	if !models.IsValidRegion(region) {
		return nil, fmt.Errorf("filter reserves %q: %w", region, models.ErrInvalidRegion)
	}
	out := make([]models.ReserveEntry, 0, len(entries))
	for _, e := range entries {
		if region == models.RegionAll || e.Region == region {
			out = append(out, e)
		}
	}
	return out, nil
}

// TotalReserves sums reserve tonnage.
func TotalReserves(entries []models.ReserveEntry) float64 {
	return sumTonnes(entries).InexactFloat64()
}

// SummarizeRegion computes a region's subtotal and its share of the global total,
// rounded to two decimals.
func SummarizeRegion(all []models.ReserveEntry, region models.Region) (models.RegionSummary, error) {
	subset, err := FilterReserves(all, region)
	if err != nil {
		return models.RegionSummary{}, err
	}
	total := sumTonnes(all)
	sub := sumTonnes(subset)

	pct := decimal.Zero
	if !total.IsZero() {
		pct = sub.Div(total).Mul(decimal.NewFromInt(100)).Round(2)
	}
	return models.RegionSummary{
		Region:     region,
		Countries:  len(subset),
		Subtotal:   sub.InexactFloat64(),
		Total:      total.InexactFloat64(),
		Percentage: pct.InexactFloat64(),
	}, nil
}

// RegionalBreakdown summarizes the breakdown regions in display order.
func RegionalBreakdown(all []models.ReserveEntry) []models.RegionSummary {
	out := make([]models.RegionSummary, 0, len(models.BreakdownRegions))
	for _, r := range models.BreakdownRegions {
		s, err := SummarizeRegion(all, r)
		if err != nil {
			continue
		}
		out = append(out, s)
	}
	return out
}

func sumTonnes(entries []models.ReserveEntry) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range entries {
		sum = sum.Add(decimal.NewFromFloat(e.Reserves))
	}
	return sum
}
