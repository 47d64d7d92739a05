package control

import (
	"context"
	"time"
)

// Run drives the controller at the poll rate until ctx is canceled.
func Run(ctx context.Context, c *Controller) error {
	ticker := time.NewTicker(PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			c.Step(now)
		}
	}
}
