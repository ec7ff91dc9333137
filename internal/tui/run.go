package tui

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"
)

// redraw keeps the clock ticking while the player is idle.
const redraw = 250 * time.Millisecond

// Run drives v on screen until the player quits or ctx is done. The screen
// must already be initialised; Run finalises it before returning.
func Run(ctx context.Context, screen tcell.Screen, v *GameView) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	screen.EnableMouse()
	screen.HideCursor()

	events := make(chan tcell.Event, 100)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		// PollEvent returns nil once the screen is finalised.
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return nil
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return nil
			}
		}
	})

	g.Go(func() error {
		defer screen.Fini()
		defer cancel()

		ticker := time.NewTicker(redraw)
		defer ticker.Stop()

		v.Draw(screen)
		for {
			select {
			case <-ctx.Done():
				return nil
			case ev := <-events:
				if _, ok := ev.(*tcell.EventResize); ok {
					screen.Sync()
				}
				if v.HandleEvent(ev) {
					Log.Info("quit requested")
					return nil
				}
				v.Draw(screen)
			case <-ticker.C:
				v.Draw(screen)
			}
		}
	})

	return g.Wait()
}
