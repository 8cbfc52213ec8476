package usecase

import "GoldTracker/internal/domain/models"

// Header is the dashboard banner: live clock plus the static ticker.
type Header struct {
	clock *Clock
}

func NewHeader(clock *Clock) *Header { return &Header{clock: clock} }

func (h *Header) Clock() string { return h.clock.Display() }

func (h *Header) Ticker() []models.TickerEntry { return models.HeaderTicker() }

func (h *Header) SpotGold() models.TickerEntry { return models.SpotGold }
