package usecase

import (
	"context"
	"fmt"
	"sync"

	"GoldTracker/internal/domain/models"
)

// ReservesPanel is the central-bank reserves table with a region filter.
type ReservesPanel struct {
	mu      sync.Mutex
	entries []models.ReserveEntry
	region  models.Region
	mounted bool
}

func NewReservesPanel() *ReservesPanel {
	return &ReservesPanel{region: models.RegionAll}
}

func (p *ReservesPanel) Tab() models.Tab { return models.TabReserves }

func (p *ReservesPanel) Mount(_ context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.mounted {
		return nil
	}
	p.entries = models.ReserveEntries()
	p.region = models.RegionAll
	p.mounted = true
	return nil
}

func (p *ReservesPanel) Unmount() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries = nil
	p.region = models.RegionAll
	p.mounted = false
}

func (p *ReservesPanel) SelectRegion(r models.Region) error {
	if !models.IsValidRegion(r) {
		return fmt.Errorf("select region %q: %w", r, models.ErrInvalidRegion)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.mounted {
		return models.ErrPanelNotMounted
	}
	p.region = r
	return nil
}

// View recomputes the filtered table, summary and breakdown on every call.
func (p *ReservesPanel) View() (*models.ReservesView, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.mounted {
		return nil, models.ErrPanelNotMounted
	}
	filtered, err := FilterReserves(p.entries, p.region)
	if err != nil {
		return nil, err
	}
	summary, err := SummarizeRegion(p.entries, p.region)
	if err != nil {
		return nil, err
	}
	return &models.ReservesView{
		Region:    p.region,
		Regions:   append([]models.Region{models.RegionAll}, models.Regions...),
		Entries:   filtered,
		Summary:   summary,
		Breakdown: RegionalBreakdown(p.entries),
	}, nil
}
