package media

import (
	"context"
	"log/slog"
	"time"
)

// releaseTimeout bounds a release so it can never stall the mutation that
// triggered it.
const releaseTimeout = 10 * time.Second

// Remover deletes a stored object by key.
type Remover interface {
	Remove(ctx context.Context, key string) error
}

// Coordinator decides when a stored image has become orphaned and removes
// it. Removal is best-effort: a post delete or image replacement must
// succeed even when cleanup fails, so errors are logged, never returned.
type Coordinator struct {
	store Remover
}

// NewCoordinator creates a Coordinator over the given object store.
func NewCoordinator(store Remover) *Coordinator {
	return &Coordinator{store: store}
}

// Release removes the object at path. An empty path is a no-op. The parent
// context's cancellation is ignored so an abandoned request cannot leave the
// cleanup half-done.
func (c *Coordinator) Release(ctx context.Context, path string) {
	if path == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
	defer cancel()

	if err := c.store.Remove(ctx, path); err != nil {
		slog.Warn("image release failed", "path", path, "error", err)
	}
}
