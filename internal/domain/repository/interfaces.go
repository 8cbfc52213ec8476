package repository

import (
	"context"

	"GoldTracker/internal/domain/models"
)

// Publisher forwards one tick snapshot to an external transport.
type Publisher interface {
	PublishBatch(ctx context.Context, snap models.TickSnapshot) error
}

// TickSink receives a copy of a session's quote grid after every simulator tick.
// Implementations must not block the caller for long.
type TickSink interface {
	OnTick(ctx context.Context, snap models.TickSnapshot)
}

// Renderer hands a widget config to the remote charting service for a container.
type Renderer interface {
	Render(cfg models.WidgetConfig, container string) error
	Teardown(container string)
}

type Metrics interface {
	RecordTick(component string)
	RecordLastPrice(market string, price float64)
	RecordEmbed(kind string)
	RecordMissingContainer(container string)
	RecordPanelMount(tab string)
	RecordSessions(n int)
	RecordMessageSent(backend, market string)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
}
