package api

import (
	"testing"

	"GoldTracker/internal/domain/models"
)

func TestCommaFormat(t *testing.T) {
	cases := map[string]string{
		"2034.50":  "2,034.50",
		"8133.5":   "8,133.5",
		"612.5":    "612.5",
		"-1234567": "-1,234,567",
		"24941.2":  "24,941.2",
	}
	for in, want := range cases {
		if got := commaFormat(in); got != want {
			t.Fatalf("commaFormat(%s)=%s want %s", in, got, want)
		}
	}
}

func TestSparkline(t *testing.T) {
	if sparkline(nil, 100, 50) != "" {
		t.Fatalf("empty series should render nothing")
	}
	pts := []models.ChartPoint{{Price: 10}, {Price: 20}, {Price: 15}}
	if got := sparkline(pts, 100, 50); got != "0.0,50.0 50.0,0.0 100.0,25.0" {
		t.Fatalf("sparkline=%q", got)
	}
	flat := []models.ChartPoint{{Price: 5}}
	if got := sparkline(flat, 100, 50); got != "0.0,50.0" {
		t.Fatalf("flat sparkline=%q", got)
	}
}
