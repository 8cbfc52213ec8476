package usecase

import (
	"context"
	"fmt"
	"sync"

	"GoldTracker/internal/domain/models"
	drepo "GoldTracker/internal/domain/repository"
	dsvc "GoldTracker/internal/domain/service"
	applogger "GoldTracker/pkg/logger"
)

// TabContainer is the state machine over the dashboard views. Exactly one
// panel is mounted between Open and Close.
type TabContainer struct {
	mu      sync.Mutex
	ctx     context.Context
	panels  map[models.Tab]dsvc.Panel
	active  models.Tab
	open    bool
	metrics drepo.Metrics
	l       *applogger.Logger
}

func NewTabContainer(panels []dsvc.Panel, metrics drepo.Metrics, l *applogger.Logger) *TabContainer {
	m := make(map[models.Tab]dsvc.Panel, len(panels))
	for _, p := range panels {
		m[p.Tab()] = p
	}
	if l == nil {
		l = applogger.Nop()
	}
	return &TabContainer{panels: m, active: models.TabMarkets, metrics: metrics, l: l}
}

// Open mounts the initial panel. Panel timers live until Close or ctx is done.
func (t *TabContainer) Open(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.open {
		return nil
	}
	t.ctx = ctx
	if err := t.mountLocked(t.active); err != nil {
		return err
	}
	t.open = true
	return nil
}

// Select switches the active view. Selecting the active tab is a no-op and an
// unknown tab leaves the state unchanged.
func (t *TabContainer) Select(tab models.Tab) error {
	if !models.IsValidTab(tab) {
		return fmt.Errorf("select tab %q: %w", tab, models.ErrInvalidTab)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.open {
		return models.ErrSessionClosed
	}
	if tab == t.active {
		return nil
	}
	next, ok := t.panels[tab]
	if !ok {
		return fmt.Errorf("select tab %q: %w", tab, models.ErrInvalidTab)
	}

	prev := t.active
	if p, ok := t.panels[prev]; ok {
		p.Unmount()
	}
	if err := next.Mount(t.ctx); err != nil {
		// fall back to the previous view so one panel stays mounted
		if rerr := t.mountLocked(prev); rerr != nil {
			t.l.Error("tab restore failed", applogger.String("tab", string(prev)), applogger.Error(rerr))
		}
		return fmt.Errorf("mount %s: %w", tab, err)
	}
	t.active = tab
	t.metrics.RecordPanelMount(string(tab))
	t.l.Debug("tab selected", applogger.String("from", string(prev)), applogger.String("to", string(tab)))
	return nil
}

func (t *TabContainer) Active() models.Tab {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// Close unmounts the active panel.
func (t *TabContainer) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.open {
		return
	}
	if p, ok := t.panels[t.active]; ok {
		p.Unmount()
	}
	t.open = false
}

func (t *TabContainer) mountLocked(tab models.Tab) error {
	p, ok := t.panels[tab]
	if !ok {
		return fmt.Errorf("no panel for tab %q", tab)
	}
	if err := p.Mount(t.ctx); err != nil {
		return err
	}
	t.metrics.RecordPanelMount(string(tab))
	return nil
}
