package usecase

import (
	"context"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"GoldTracker/internal/domain/models"
	drepo "GoldTracker/internal/domain/repository"
	dsvc "GoldTracker/internal/domain/service"
	"GoldTracker/internal/service/widget"
	applogger "GoldTracker/pkg/logger"
	"GoldTracker/pkg/timer"
)

// DashboardConfig holds the settings shared by every dashboard session.
type DashboardConfig struct {
	QuoteInterval time.Duration
	ClockInterval time.Duration
	ScriptBaseURL string
	Theme         string
	Locale        string

	// Source drives every timer; nil means the runtime timer.
	Source timer.Source
	// Now is the wall clock; nil means time.Now.
	Now func() time.Time
	// Seed returns the seed for a new random source; nil seeds from the clock.
	Seed func() int64
	// Sink receives simulator snapshots; nil disables fan-out.
	Sink drepo.TickSink
}

// Dashboard is one browser session: header clock, tab container and the
// widget document its chart panel renders into.
type Dashboard struct {
	id       string
	cancel   context.CancelFunc
	clock    *Clock
	header   *Header
	tabs     *TabContainer
	markets  *MarketPanel
	charts   *ChartPanel
	reserves *ReservesPanel
	doc      *widget.Document
	now      func() time.Time
	lastSeen atomic.Int64
	closed   atomic.Bool
	once     sync.Once
	l        *applogger.Logger
}

// NewDashboard builds a dashboard, starts its clock and mounts the markets view.
// The dashboard owns its timers until Close.
func NewDashboard(id string, cfg DashboardConfig, metrics drepo.Metrics, l *applogger.Logger) (*Dashboard, error) {
	if l == nil {
		l = applogger.Nop()
	}
	l = l.With(applogger.String("session", id))
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	src := cfg.Source
	if src == nil {
		src = timer.System
	}
	seed := cfg.Seed
	if seed == nil {
		seed = func() int64 { return time.Now().UnixNano() }
	}

	doc := widget.NewDocument()
	renderer := widget.NewScriptRenderer(doc, cfg.ScriptBaseURL)

	markets := NewMarketPanel(func() *QuoteSimulator {
		return NewQuoteSimulator(models.SeedQuotes(), metrics, l,
			WithSimulatorSource(src),
			WithSimulatorPeriod(cfg.QuoteInterval),
			WithSimulatorRand(rand.New(rand.NewSource(seed()))),
			WithTickSink(cfg.Sink),
			WithSimulatorSession(id),
		)
	})
	charts := NewChartPanel(ChartPanelConfig{Theme: cfg.Theme, Locale: cfg.Locale}, doc, renderer,
		rand.New(rand.NewSource(seed())), now, metrics, l)
	reserves := NewReservesPanel()

	clock := NewClock(metrics, WithClockSource(src), WithClockNow(now), WithClockPeriod(cfg.ClockInterval))
	tabs := NewTabContainer([]dsvc.Panel{markets, charts, reserves}, metrics, l)

	ctx, cancel := context.WithCancel(context.Background())
	d := &Dashboard{
		id:       id,
		cancel:   cancel,
		clock:    clock,
		header:   NewHeader(clock),
		tabs:     tabs,
		markets:  markets,
		charts:   charts,
		reserves: reserves,
		doc:      doc,
		now:      now,
		l:        l,
	}
	d.Touch()

	clock.Start(ctx)
	if err := tabs.Open(ctx); err != nil {
		d.Close()
		return nil, err
	}
	l.Debug("dashboard opened")
	return d, nil
}

func (d *Dashboard) ID() string { return d.id }

// Touch marks the session as used now.
func (d *Dashboard) Touch() { d.lastSeen.Store(d.now().UnixNano()) }

func (d *Dashboard) LastSeen() time.Time { return time.Unix(0, d.lastSeen.Load()) }

func (d *Dashboard) Closed() bool { return d.closed.Load() }

// Close releases every timer and widget. It is idempotent.
func (d *Dashboard) Close() {
	d.once.Do(func() {
		d.closed.Store(true)
		d.tabs.Close()
		d.clock.Stop()
		d.cancel()
		d.l.Debug("dashboard closed")
	})
}

func (d *Dashboard) SelectTab(tab models.Tab) error { return d.tabs.Select(tab) }

func (d *Dashboard) ActiveTab() models.Tab { return d.tabs.Active() }

func (d *Dashboard) Quotes() ([]models.MarketQuote, error) { return d.markets.Quotes() }

func (d *Dashboard) SelectRange(r models.TimeRange) error { return d.charts.SelectRange(r) }

func (d *Dashboard) UpdateWidget(cfg models.WidgetConfig) error { return d.charts.UpdateWidget(cfg) }

func (d *Dashboard) Charts() (*models.ChartView, error) { return d.charts.View() }

func (d *Dashboard) SelectRegion(r models.Region) error { return d.reserves.SelectRegion(r) }

func (d *Dashboard) Reserves() (*models.ReservesView, error) { return d.reserves.View() }

// Document exposes the widget render tree.
func (d *Dashboard) Document() *widget.Document { return d.doc }

// State snapshots the whole dashboard. Sections of unmounted panels are empty.
func (d *Dashboard) State() models.DashboardState {
	s := models.DashboardState{
		SessionID: d.id,
		Clock:     d.header.Clock(),
		Ticker:    d.header.Ticker(),
		SpotGold:  d.header.SpotGold(),
		ActiveTab: d.tabs.Active(),
		Tabs:      models.Tabs,
	}
	if q, err := d.markets.Quotes(); err == nil {
		s.Markets = q
	}
	if c, err := d.charts.View(); err == nil {
		s.Charts = c
	}
	if r, err := d.reserves.View(); err == nil {
		s.Reserves = r
	}
	return s
}

// Frame is the live update pushed over the stream.
func (d *Dashboard) Frame() models.StreamFrame {
	f := models.StreamFrame{Clock: d.header.Clock(), ActiveTab: d.tabs.Active()}
	if q, err := d.markets.Quotes(); err == nil {
		f.Markets = q
	}
	return f
}
