package usecase

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"
	"time"

	"GoldTracker/internal/domain/models"
	"GoldTracker/internal/service/widget"
	"GoldTracker/pkg/timer"
)

func newTestChartPanel(doc *widget.Document) *ChartPanel {
	return NewChartPanel(ChartPanelConfig{}, doc, widget.NewScriptRenderer(doc, ""),
		rand.New(rand.NewSource(5)), func() time.Time { return time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC) },
		newFakeMetrics(), nil)
}

func TestMarketPanelLifecycle(t *testing.T) {
	src := timer.NewManual()
	p := NewMarketPanel(func() *QuoteSimulator {
		return NewQuoteSimulator(models.SeedQuotes(), newFakeMetrics(), nil, WithSimulatorSource(src))
	})

	if _, err := p.Quotes(); !errors.Is(err, models.ErrPanelNotMounted) {
		t.Fatalf("expected ErrPanelNotMounted, got %v", err)
	}
	if err := p.Mount(context.Background()); err != nil {
		t.Fatalf("mount: %v", err)
	}
	q, err := p.Quotes()
	if err != nil || len(q) != 6 || q[0].ID != "lbma" {
		t.Fatalf("quotes=%v err=%v", q, err)
	}
	tk := src.Next(time.Second)
	if tk == nil {
		t.Fatalf("simulator timer not acquired")
	}

	p.Unmount()
	if !tk.Stopped() {
		t.Fatalf("simulator timer not released")
	}
	if _, err := p.Quotes(); !errors.Is(err, models.ErrPanelNotMounted) {
		t.Fatalf("quotes survived unmount")
	}
	p.Unmount()

	// remount starts from the seed again
	if err := p.Mount(context.Background()); err != nil {
		t.Fatalf("remount: %v", err)
	}
	q, _ = p.Quotes()
	if q[0].Price != 2034.50 {
		t.Fatalf("remount did not reseed: %v", q[0].Price)
	}
	p.Unmount()
}

func TestChartPanelMountEmbedsWidgets(t *testing.T) {
	doc := widget.NewDocument()
	p := newTestChartPanel(doc)
	if err := p.Mount(context.Background()); err != nil {
		t.Fatalf("mount: %v", err)
	}
	v, err := p.View()
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if v.Range != models.Range1D || len(v.Series) != 24 || len(v.Widgets) != 4 || len(v.Statistics) != 3 {
		t.Fatalf("unexpected view: range=%s series=%d widgets=%d", v.Range, len(v.Series), len(v.Widgets))
	}

	wantSymbols := map[string]string{
		MainChartContainer:         "OANDA:XAUUSD",
		FuturesChartContainer:      "COMEX:GC1!",
		ETFChartContainer:          "AMEX:GLD",
		TechnicalAnalysisContainer: "OANDA:XAUUSD",
	}
	for id, sym := range wantSymbols {
		content, ok := doc.Content(id)
		if !ok || !strings.Contains(content, sym) {
			t.Fatalf("%s: content=%q", id, content)
		}
	}
	main, _ := doc.Content(MainChartContainer)
	if !strings.Contains(main, `"interval":"15"`) || !strings.Contains(main, `"height":500`) {
		t.Fatalf("main chart payload: %s", main)
	}
	ta, _ := doc.Content(TechnicalAnalysisContainer)
	if !strings.Contains(ta, "embed-widget-technical-analysis.js") {
		t.Fatalf("technical analysis script: %s", ta)
	}

	p.Unmount()
	if ids := doc.Containers(); len(ids) != 0 {
		t.Fatalf("containers left after unmount: %v", ids)
	}
	if _, err := p.View(); !errors.Is(err, models.ErrPanelNotMounted) {
		t.Fatalf("view after unmount: %v", err)
	}
}

func TestChartPanelSelectRange(t *testing.T) {
	doc := widget.NewDocument()
	p := newTestChartPanel(doc)
	if err := p.SelectRange(models.Range1W); !errors.Is(err, models.ErrPanelNotMounted) {
		t.Fatalf("expected ErrPanelNotMounted, got %v", err)
	}
	if err := p.Mount(context.Background()); err != nil {
		t.Fatalf("mount: %v", err)
	}
	before, _ := p.View()

	cases := []struct {
		r        models.TimeRange
		count    int
		interval string
	}{
		{models.Range1W, 7, "1H"},
		{models.Range1M, 30, "4H"},
		{models.Range3M, 90, "1D"},
		{models.Range1Y, 365, "1W"},
		{models.Range1D, 24, "15"},
	}
	for _, c := range cases {
		if err := p.SelectRange(c.r); err != nil {
			t.Fatalf("select %s: %v", c.r, err)
		}
		v, _ := p.View()
		if v.Range != c.r || len(v.Series) != c.count {
			t.Fatalf("%s: range=%s len=%d", c.r, v.Range, len(v.Series))
		}
		main, _ := doc.Content(MainChartContainer)
		if !strings.Contains(main, `"interval":"`+c.interval+`"`) {
			t.Fatalf("%s: main chart not re-embedded with %s: %s", c.r, c.interval, main)
		}
	}
	after, _ := p.View()
	if after.Series[0] == before.Series[0] && after.Series[1] == before.Series[1] {
		t.Fatalf("series not regenerated")
	}

	if err := p.SelectRange("2D"); !errors.Is(err, models.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
	if v, _ := p.View(); v.Range != models.Range1D {
		t.Fatalf("invalid range changed state to %s", v.Range)
	}
	p.Unmount()
}

func TestChartPanelUpdateWidget(t *testing.T) {
	doc := widget.NewDocument()
	p := newTestChartPanel(doc)
	if err := p.Mount(context.Background()); err != nil {
		t.Fatalf("mount: %v", err)
	}
	v, _ := p.View()
	cfg := v.Widgets[1]
	cfg.Symbol = "COMEX:SI1!"
	if err := p.UpdateWidget(cfg); err != nil {
		t.Fatalf("update: %v", err)
	}
	content, _ := doc.Content(FuturesChartContainer)
	if !strings.Contains(content, "COMEX:SI1!") {
		t.Fatalf("widget not re-embedded: %s", content)
	}

	cfg.ContainerID = "nowhere"
	if err := p.UpdateWidget(cfg); !errors.Is(err, models.ErrUnknownContainer) {
		t.Fatalf("expected ErrUnknownContainer, got %v", err)
	}
	p.Unmount()
}

func TestReservesPanel(t *testing.T) {
	p := NewReservesPanel()
	if _, err := p.View(); !errors.Is(err, models.ErrPanelNotMounted) {
		t.Fatalf("expected ErrPanelNotMounted, got %v", err)
	}
	_ = p.Mount(context.Background())

	v, err := p.View()
	if err != nil || v.Region != models.RegionAll || len(v.Entries) != 12 || v.Summary.Percentage != 100 {
		t.Fatalf("default view=%+v err=%v", v, err)
	}
	if err := p.SelectRegion(models.RegionEurope); err != nil {
		t.Fatalf("select: %v", err)
	}
	v, _ = p.View()
	if len(v.Entries) != 7 || v.Summary.Subtotal != 12790.1 || v.Summary.Percentage != 51.28 {
		t.Fatalf("europe view=%+v", v.Summary)
	}
	if err := p.SelectRegion("Mars"); !errors.Is(err, models.ErrInvalidRegion) {
		t.Fatalf("expected ErrInvalidRegion, got %v", err)
	}

	p.Unmount()
	_ = p.Mount(context.Background())
	v, _ = p.View()
	if v.Region != models.RegionAll {
		t.Fatalf("region not reset on remount: %s", v.Region)
	}
}
