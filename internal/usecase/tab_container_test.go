package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"GoldTracker/internal/domain/models"
	dsvc "GoldTracker/internal/domain/service"
)

type stubPanel struct {
	mu       sync.Mutex
	tab      models.Tab
	mounted  bool
	mounts   int
	unmounts int
	failNext bool
}

func (s *stubPanel) Tab() models.Tab { return s.tab }

func (s *stubPanel) Mount(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failNext {
		s.failNext = false
		return errors.New("boom")
	}
	s.mounted = true
	s.mounts++
	return nil
}

func (s *stubPanel) Unmount() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mounted {
		s.unmounts++
	}
	s.mounted = false
}

func newStubTabs() (*TabContainer, map[models.Tab]*stubPanel) {
	stubs := map[models.Tab]*stubPanel{
		models.TabMarkets:  {tab: models.TabMarkets},
		models.TabCharts:   {tab: models.TabCharts},
		models.TabReserves: {tab: models.TabReserves},
	}
	panels := []dsvc.Panel{stubs[models.TabMarkets], stubs[models.TabCharts], stubs[models.TabReserves]}
	return NewTabContainer(panels, newFakeMetrics(), nil), stubs
}

func mountedCount(stubs map[models.Tab]*stubPanel) int {
	n := 0
	for _, s := range stubs {
		if s.mounted {
			n++
		}
	}
	return n
}

func TestTabContainerTransitions(t *testing.T) {
	all := []models.Tab{models.TabMarkets, models.TabCharts, models.TabReserves}
	for _, from := range all {
		for _, to := range all {
			tabs, stubs := newStubTabs()
			if err := tabs.Open(context.Background()); err != nil {
				t.Fatalf("open: %v", err)
			}
			if err := tabs.Select(from); err != nil {
				t.Fatalf("select start %s: %v", from, err)
			}
			if err := tabs.Select(to); err != nil {
				t.Fatalf("%s->%s: %v", from, to, err)
			}
			if tabs.Active() != to {
				t.Fatalf("%s->%s: active=%s", from, to, tabs.Active())
			}
			if n := mountedCount(stubs); n != 1 || !stubs[to].mounted {
				t.Fatalf("%s->%s: %d panels mounted", from, to, n)
			}
			if from != to && stubs[from].mounted {
				t.Fatalf("%s->%s: previous panel still mounted", from, to)
			}
		}
	}
}

func TestTabContainerSameTabIsNoop(t *testing.T) {
	tabs, stubs := newStubTabs()
	_ = tabs.Open(context.Background())
	if err := tabs.Select(models.TabMarkets); err != nil {
		t.Fatalf("select: %v", err)
	}
	m := stubs[models.TabMarkets]
	if m.mounts != 1 || m.unmounts != 0 {
		t.Fatalf("same tab remounted: mounts=%d unmounts=%d", m.mounts, m.unmounts)
	}
}

func TestTabContainerRejectsUnknownTab(t *testing.T) {
	tabs, stubs := newStubTabs()
	_ = tabs.Open(context.Background())
	_ = tabs.Select(models.TabCharts)

	for _, bad := range []models.Tab{"", "portfolio", "Markets"} {
		if err := tabs.Select(bad); !errors.Is(err, models.ErrInvalidTab) {
			t.Fatalf("select %q: expected ErrInvalidTab, got %v", bad, err)
		}
	}
	if tabs.Active() != models.TabCharts || !stubs[models.TabCharts].mounted {
		t.Fatalf("invalid tab changed state")
	}
}

func TestTabContainerMountFailureKeepsPrevious(t *testing.T) {
	tabs, stubs := newStubTabs()
	_ = tabs.Open(context.Background())
	stubs[models.TabReserves].failNext = true

	if err := tabs.Select(models.TabReserves); err == nil {
		t.Fatalf("expected mount error")
	}
	if tabs.Active() != models.TabMarkets || !stubs[models.TabMarkets].mounted {
		t.Fatalf("previous view not restored")
	}
	if mountedCount(stubs) != 1 {
		t.Fatalf("expected exactly one mounted panel")
	}
}

func TestTabContainerClose(t *testing.T) {
	tabs, stubs := newStubTabs()
	_ = tabs.Open(context.Background())
	tabs.Close()
	if mountedCount(stubs) != 0 {
		t.Fatalf("panel still mounted after close")
	}
	if err := tabs.Select(models.TabCharts); !errors.Is(err, models.ErrSessionClosed) {
		t.Fatalf("expected ErrSessionClosed, got %v", err)
	}
	tabs.Close()
}
