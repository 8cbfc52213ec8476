package service

import (
	"context"

	"GoldTracker/internal/domain/models"
)

// Panel is a dashboard view owned by the tab container. Mount acquires the
// panel's timers and state; Unmount releases them and must be safe to call twice.
type Panel interface {
	Tab() models.Tab
	Mount(ctx context.Context) error
	Unmount()
}
