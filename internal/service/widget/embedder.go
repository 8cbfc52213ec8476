package widget

import (
	"errors"
	"fmt"
	"sync"

	"GoldTracker/internal/domain/models"
	"GoldTracker/internal/domain/repository"
	applogger "GoldTracker/pkg/logger"
)

// Embedder keeps one widget embedded in its container. It re-renders only
// when the config (container included) changes.
type Embedder struct {
	mu       sync.Mutex
	renderer repository.Renderer
	metrics  repository.Metrics
	l        *applogger.Logger
	current  *models.WidgetConfig
}

func NewEmbedder(renderer repository.Renderer, metrics repository.Metrics, l *applogger.Logger) *Embedder {
	if l == nil {
		l = applogger.Nop()
	}
	return &Embedder{renderer: renderer, metrics: metrics, l: l}
}

// Embed renders cfg into cfg.ContainerID. A config that renders the same
// script as the current one is a no-op and a missing container is skipped
// with a warning.
func (e *Embedder) Embed(cfg models.WidgetConfig) error {
	cfg = cfg.Effective()
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.current != nil && *e.current == cfg {
		return nil
	}
	if e.current != nil && e.current.ContainerID != cfg.ContainerID {
		e.renderer.Teardown(e.current.ContainerID)
		e.current = nil
	}

	if err := e.renderer.Render(cfg, cfg.ContainerID); err != nil {
		if errors.Is(err, models.ErrUnknownContainer) {
			e.l.Warn("widget container missing, embed skipped",
				applogger.String("container", cfg.ContainerID),
				applogger.String("kind", string(cfg.Kind)),
			)
			e.metrics.RecordMissingContainer(cfg.ContainerID)
			return nil
		}
		e.metrics.RecordError("widget_render")
		return fmt.Errorf("embed %s: %w", cfg.ContainerID, err)
	}

	e.metrics.RecordEmbed(string(cfg.Kind))
	c := cfg
	e.current = &c
	return nil
}

// Teardown clears the embedded container, if any.
func (e *Embedder) Teardown() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.current == nil {
		return
	}
	e.renderer.Teardown(e.current.ContainerID)
	e.current = nil
}

// Config returns the config currently embedded.
func (e *Embedder) Config() (models.WidgetConfig, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.current == nil {
		return models.WidgetConfig{}, false
	}
	return *e.current, true
}
