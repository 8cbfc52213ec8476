package usecase

import (
	"errors"
	"testing"
	"time"

	"GoldTracker/internal/domain/models"
	"GoldTracker/pkg/timer"
)

func newTestDashboard(t *testing.T, src *timer.Manual, now func() time.Time, sink *recordingSink) *Dashboard {
	t.Helper()
	cfg := DashboardConfig{
		Source: src,
		Now:    now,
		Seed:   func() int64 { return 11 },
	}
	if sink != nil {
		cfg.Sink = sink
	}
	d, err := NewDashboard("test-session", cfg, newFakeMetrics(), nil)
	if err != nil {
		t.Fatalf("new dashboard: %v", err)
	}
	return d
}

func fixedNow() time.Time { return time.Date(2024, 3, 1, 8, 15, 30, 0, time.UTC) }

func TestDashboardOpensOnMarkets(t *testing.T) {
	src := timer.NewManual()
	sink := &recordingSink{}
	d := newTestDashboard(t, src, fixedNow, sink)
	defer d.Close()

	s := d.State()
	if s.ActiveTab != models.TabMarkets || len(s.Markets) != 6 {
		t.Fatalf("state=%+v", s)
	}
	if s.Charts != nil || s.Reserves != nil {
		t.Fatalf("unmounted panels exposed in state")
	}
	if s.Clock != "08:15:30" || len(s.Ticker) != 6 || s.SpotGold.Price != 2034.50 {
		t.Fatalf("header=%s %v %+v", s.Clock, s.Ticker, s.SpotGold)
	}

	// clock and simulator each own one timer
	tickers := src.Tickers()
	if len(tickers) != 2 {
		t.Fatalf("timers=%d want 2", len(tickers))
	}
	for _, tk := range tickers {
		if tk.Period == DefaultQuoteInterval {
			if !tk.Fire(time.Now()) {
				t.Fatalf("simulator tick not delivered")
			}
		}
	}
	if sink.count() != 1 {
		t.Fatalf("sink got %d ticks want 1", sink.count())
	}
	if snap := sink.last(); snap.Session != "test-session" || len(snap.Quotes) != 6 {
		t.Fatalf("snapshot session=%q quotes=%d", snap.Session, len(snap.Quotes))
	}
}

func TestDashboardTabSwitchReleasesSimulator(t *testing.T) {
	src := timer.NewManual()
	d := newTestDashboard(t, src, fixedNow, nil)
	defer d.Close()

	var sim *timer.ManualTicker
	for _, tk := range src.Tickers() {
		if tk.Period == DefaultQuoteInterval {
			sim = tk
		}
	}
	if sim == nil {
		t.Fatalf("simulator timer missing")
	}

	if err := d.SelectTab(models.TabCharts); err != nil {
		t.Fatalf("select charts: %v", err)
	}
	if !sim.Stopped() {
		t.Fatalf("simulator timer not released on tab switch")
	}
	if _, err := d.Quotes(); !errors.Is(err, models.ErrPanelNotMounted) {
		t.Fatalf("quotes available after switch: %v", err)
	}
	if len(d.Document().Containers()) != 4 {
		t.Fatalf("chart containers=%v", d.Document().Containers())
	}
	if err := d.SelectRange(models.Range1Y); err != nil {
		t.Fatalf("select range: %v", err)
	}
	c, _ := d.Charts()
	if len(c.Series) != 365 {
		t.Fatalf("series len=%d", len(c.Series))
	}

	if err := d.SelectTab(models.TabReserves); err != nil {
		t.Fatalf("select reserves: %v", err)
	}
	if len(d.Document().Containers()) != 0 {
		t.Fatalf("widgets not torn down: %v", d.Document().Containers())
	}
	if err := d.SelectRegion(models.RegionAsia); err != nil {
		t.Fatalf("select region: %v", err)
	}
	r, _ := d.Reserves()
	if len(r.Entries) != 4 {
		t.Fatalf("asia entries=%d", len(r.Entries))
	}

	if err := d.SelectTab("bogus"); !errors.Is(err, models.ErrInvalidTab) {
		t.Fatalf("expected ErrInvalidTab, got %v", err)
	}
	if d.ActiveTab() != models.TabReserves {
		t.Fatalf("active=%s", d.ActiveTab())
	}
}

func TestDashboardCloseReleasesEverything(t *testing.T) {
	src := timer.NewManual()
	d := newTestDashboard(t, src, fixedNow, nil)
	d.Close()
	d.Close()

	if !d.Closed() {
		t.Fatalf("dashboard not marked closed")
	}
	for _, tk := range src.Tickers() {
		if !tk.Stopped() {
			t.Fatalf("timer with period %v still running", tk.Period)
		}
	}
	if err := d.SelectTab(models.TabCharts); !errors.Is(err, models.ErrSessionClosed) {
		t.Fatalf("expected ErrSessionClosed, got %v", err)
	}
}

func TestDashboardFrame(t *testing.T) {
	d := newTestDashboard(t, timer.NewManual(), fixedNow, nil)
	defer d.Close()
	f := d.Frame()
	if f.Clock != "08:15:30" || f.ActiveTab != models.TabMarkets || len(f.Markets) != 6 {
		t.Fatalf("frame=%+v", f)
	}
	_ = d.SelectTab(models.TabReserves)
	if f = d.Frame(); f.Markets != nil {
		t.Fatalf("frame carries quotes while grid unmounted")
	}
}
