package usecase

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"GoldTracker/internal/domain/models"
	drepo "GoldTracker/internal/domain/repository"
	"GoldTracker/internal/service/widget"
	applogger "GoldTracker/pkg/logger"
)

// Widget containers owned by the chart panel.
const (
	MainChartContainer         = "main_gold_chart"
	FuturesChartContainer      = "gold_futures_chart"
	ETFChartContainer          = "gold_etf_chart"
	TechnicalAnalysisContainer = "technical_analysis"
)

var chartContainers = []string{MainChartContainer, FuturesChartContainer, ETFChartContainer, TechnicalAnalysisContainer}

// ChartPanelConfig carries the widget look shared by every chart.
type ChartPanelConfig struct {
	Theme  string
	Locale string
}

// ChartPanel is the price chart view: a range selector, a generated series and
// four embedded remote widgets.
type ChartPanel struct {
	mu        sync.Mutex
	cfg       ChartPanelConfig
	doc       *widget.Document
	renderer  drepo.Renderer
	metrics   drepo.Metrics
	l         *applogger.Logger
	rng       *rand.Rand
	now       func() time.Time
	mounted   bool
	selected  models.TimeRange
	series    []models.ChartPoint
	embedders map[string]*widget.Embedder
	configs   map[string]models.WidgetConfig
}

func NewChartPanel(cfg ChartPanelConfig, doc *widget.Document, renderer drepo.Renderer, rng *rand.Rand,
	now func() time.Time, metrics drepo.Metrics, l *applogger.Logger) *ChartPanel {
	if cfg.Theme == "" {
		cfg.Theme = "dark"
	}
	if cfg.Locale == "" {
		cfg.Locale = "en"
	}
	if now == nil {
		now = time.Now
	}
	if l == nil {
		l = applogger.Nop()
	}
	return &ChartPanel{
		cfg:      cfg,
		doc:      doc,
		renderer: renderer,
		metrics:  metrics,
		l:        l,
		rng:      rng,
		now:      now,
		selected: drepo.DefaultRange(),
	}
}

func (p *ChartPanel) Tab() models.Tab { return models.TabCharts }

// Mount renders the widget containers, generates the default series and embeds every widget.
func (p *ChartPanel) Mount(_ context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.mounted {
		return nil
	}

	p.selected = drepo.DefaultRange()
	p.series = GenerateSeries(p.rng, p.selected, p.now())
	p.embedders = make(map[string]*widget.Embedder, len(chartContainers))
	p.configs = p.defaultWidgets(p.selected)

	for _, id := range chartContainers {
		p.doc.Register(id)
		e := widget.NewEmbedder(p.renderer, p.metrics, p.l)
		p.embedders[id] = e
		if err := e.Embed(p.configs[id]); err != nil {
			p.unmountLocked()
			return fmt.Errorf("mount charts: %w", err)
		}
	}
	p.mounted = true
	return nil
}

func (p *ChartPanel) Unmount() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.unmountLocked()
}

func (p *ChartPanel) unmountLocked() {
	for _, id := range chartContainers {
		if e, ok := p.embedders[id]; ok {
			e.Teardown()
		}
		p.doc.Remove(id)
	}
	p.embedders = nil
	p.configs = nil
	p.series = nil
	p.mounted = false
}

// SelectRange regenerates the series for r and re-embeds the main chart with
// the mapped interval.
func (p *ChartPanel) SelectRange(r models.TimeRange) error {
	if !drepo.IsValidRange(r) {
		return fmt.Errorf("select range %q: %w", r, models.ErrInvalidRange)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.mounted {
		return models.ErrPanelNotMounted
	}

	p.selected = r
	p.series = GenerateSeries(p.rng, r, p.now())

	main := p.configs[MainChartContainer]
	main.Interval = drepo.WidgetInterval(r)
	p.configs[MainChartContainer] = main
	return p.embedders[MainChartContainer].Embed(main)
}

// UpdateWidget replaces the config of one of the panel's widgets.
func (p *ChartPanel) UpdateWidget(cfg models.WidgetConfig) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.mounted {
		return models.ErrPanelNotMounted
	}
	e, ok := p.embedders[cfg.ContainerID]
	if !ok {
		return fmt.Errorf("update widget %q: %w", cfg.ContainerID, models.ErrUnknownContainer)
	}
	if err := e.Embed(cfg); err != nil {
		return err
	}
	p.configs[cfg.ContainerID] = cfg.Effective()
	return nil
}

// View returns a copy of the panel state.
func (p *ChartPanel) View() (*models.ChartView, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.mounted {
		return nil, models.ErrPanelNotMounted
	}
	series := make([]models.ChartPoint, len(p.series))
	copy(series, p.series)
	widgets := make([]models.WidgetConfig, 0, len(chartContainers))
	for _, id := range chartContainers {
		widgets = append(widgets, p.configs[id])
	}
	return &models.ChartView{
		Range:      p.selected,
		Ranges:     models.TimeRanges,
		Series:     series,
		Widgets:    widgets,
		Statistics: models.MarketStatistics(),
	}, nil
}

func (p *ChartPanel) defaultWidgets(r models.TimeRange) map[string]models.WidgetConfig {
	base := models.WidgetConfig{
		Kind:      models.WidgetAdvancedChart,
		Interval:  "1H",
		Theme:     p.cfg.Theme,
		Style:     "1",
		Locale:    p.cfg.Locale,
		ToolbarBg: "#0A0A0B",
		Width:     "100%",
		Height:    "350",
	}

	main := base
	main.Symbol = "OANDA:XAUUSD"
	main.Interval = drepo.WidgetInterval(r)
	main.Height = "500"
	main.ContainerID = MainChartContainer

	futures := base
	futures.Symbol = "COMEX:GC1!"
	futures.HideTopToolbar = true
	futures.HideLegend = true
	futures.ContainerID = FuturesChartContainer

	etf := futures
	etf.Symbol = "AMEX:GLD"
	etf.ContainerID = ETFChartContainer

	ta := models.WidgetConfig{
		Kind:        models.WidgetTechnicalAnalysis,
		Symbol:      "OANDA:XAUUSD",
		Interval:    models.TechnicalAnalysisInterval,
		Theme:       p.cfg.Theme,
		Locale:      models.TechnicalAnalysisLocale,
		Width:       "100%",
		Height:      "400",
		ContainerID: TechnicalAnalysisContainer,
	}

	return map[string]models.WidgetConfig{
		MainChartContainer:         main,
		FuturesChartContainer:      futures,
		ETFChartContainer:          etf,
		TechnicalAnalysisContainer: ta,
	}
}
