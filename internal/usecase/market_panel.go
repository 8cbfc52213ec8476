package usecase

import (
	"context"
	"sync"

	"GoldTracker/internal/domain/models"
)

// MarketPanel is the market grid view. Mounting seeds the six quotes and starts
// the simulator; unmounting stops it and drops the quotes.
type MarketPanel struct {
	mu     sync.Mutex
	newSim func() *QuoteSimulator
	sim    *QuoteSimulator
}

// NewMarketPanel takes a factory invoked once per mount.
func NewMarketPanel(newSim func() *QuoteSimulator) *MarketPanel {
	return &MarketPanel{newSim: newSim}
}

func (p *MarketPanel) Tab() models.Tab { return models.TabMarkets }

func (p *MarketPanel) Mount(ctx context.Context) error {
	p.mu.Lock()
	if p.sim != nil {
		p.mu.Unlock()
		return nil
	}
	sim := p.newSim()
	p.sim = sim
	p.mu.Unlock()

	sim.Start(ctx)
	return nil
}

func (p *MarketPanel) Unmount() {
	p.mu.Lock()
	sim := p.sim
	p.sim = nil
	p.mu.Unlock()
	if sim != nil {
		sim.Stop()
	}
}

// Quotes returns the live grid, or ErrPanelNotMounted.
func (p *MarketPanel) Quotes() ([]models.MarketQuote, error) {
	p.mu.Lock()
	sim := p.sim
	p.mu.Unlock()
	if sim == nil {
		return nil, models.ErrPanelNotMounted
	}
	return sim.Quotes(), nil
}
