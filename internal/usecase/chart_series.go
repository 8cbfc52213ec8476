package usecase

import (
	"math"
	"math/rand"
	"time"

	"GoldTracker/internal/domain/models"
	drepo "GoldTracker/internal/domain/repository"
)

const seriesBasePrice = 2034.50

// GenerateSeries builds a fresh random-walk series for r ending at end.
// The result length is the range's canonical point count.
func GenerateSeries(rng *rand.Rand, r models.TimeRange, end time.Time) []models.ChartPoint {
	n := drepo.PointCount(r)
	step, layout := seriesStep(r)

	points := make([]models.ChartPoint, n)
	price := seriesBasePrice
	for i := 0; i < n; i++ {
		price += (rng.Float64() - 0.5) * 10
		if price < 1 {
			price = 1
		}
		at := end.Add(-time.Duration(n-1-i) * step)
		points[i] = models.ChartPoint{
			Time:   at.UTC().Format(layout),
			Price:  math.Round(price*100) / 100,
			Volume: math.Round(50_000 + rng.Float64()*100_000),
		}
	}
	return points
}

func seriesStep(r models.TimeRange) (time.Duration, string) {
	switch r {
	case models.Range1D:
		return time.Hour, "15:04"
	case models.Range1W:
		return 24 * time.Hour, "Mon"
	default:
		return 24 * time.Hour, "Jan 02"
	}
}
