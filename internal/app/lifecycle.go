package app

import (
	"context"
	"log/slog"
)

// Controller reloads and reconciles state whenever the app returns to
// the foreground. The platform adapter feeds foreground transitions
// into the events channel; the controller itself stays platform-free.
type Controller struct {
	app    *App
	events <-chan struct{}
	log    *slog.Logger
}

func NewController(app *App, events <-chan struct{}, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.Default()
	}
	return &Controller{
		app:    app,
		events: events,
		log:    log.With("component", "lifecycle"),
	}
}

// Run performs the initial load and then serves foreground events until
// the context is cancelled. Each event triggers a full reload from the
// store followed by a reconciliation pass.
func (c *Controller) Run(ctx context.Context) {
	c.refresh()

	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-c.events:
			if !ok {
				return
			}
			c.log.Debug("foreground transition")
			c.refresh()
		}
	}
}

func (c *Controller) refresh() {
	c.app.Load()
	c.app.Reconcile()
}
