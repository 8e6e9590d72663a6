// Package drag turns drag gestures on the dashboard into reorder calls.
package drag

import (
	"context"
	"sync"
)

// Reorderer is the store operation a completed drag invokes.
type Reorderer interface {
	ReorderWidgets(ctx context.Context, activeID, overID string) bool
}

// Controller tracks at most one drag gesture at a time. It holds no persisted
// state of its own.
type Controller struct {
	mu       sync.Mutex
	target   Reorderer
	activeID string
}

func NewController(target Reorderer) *Controller {
	return &Controller{target: target}
}

// Start begins a drag of id, replacing any gesture still in flight.
func (c *Controller) Start(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.activeID = id
}

// End completes the gesture over overID. The store is called exactly once
// when a drag is in flight and overID names a different widget; an empty
// overID is a drop outside any target. End always clears the gesture and
// reports whether a reorder was issued.
func (c *Controller) End(ctx context.Context, overID string) bool {
	c.mu.Lock()
	activeID := c.activeID
	c.activeID = ""
	c.mu.Unlock()

	if activeID == "" || overID == "" || overID == activeID {
		return false
	}
	c.target.ReorderWidgets(ctx, activeID, overID)
	return true
}

// Cancel abandons the gesture without touching the store.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.activeID = ""
}

// Active returns the id being dragged, if any.
func (c *Controller) Active() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeID, c.activeID != ""
}
