package render

import (
	"context"
	"log/slog"

	"github.com/gdamore/tcell/v2"
)

// ActionFunc handles an action from the keyboard. It runs on the input
// goroutine.
type ActionFunc func(ctx context.Context, a Action) error

// Input polls the screen for events until the screen is finalized.
type Input struct {
	screen   tcell.Screen
	keys     *Keys
	onAction ActionFunc
}

func NewInput(screen tcell.Screen, keys *Keys, onAction ActionFunc) *Input {
	return &Input{screen: screen, keys: keys, onAction: onAction}
}

// Start owns the screen: it finalizes it when ctx is done or the player
// quits. A quit returns so the application shuts down.
func (in *Input) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		<-ctx.Done()
		in.screen.Fini()
	}()

	for {
		ev := in.screen.PollEvent()
		if ev == nil {
			return nil
		}

		switch ev := ev.(type) {
		case *tcell.EventKey:
			a := in.keys.HandleKey(ev.Key(), ev.Rune())
			if a == ActionQuit {
				slog.InfoContext(ctx, "quit requested from terminal")
				return nil
			}
			if a != ActionNone && in.onAction != nil {
				if err := in.onAction(ctx, a); err != nil {
					slog.WarnContext(ctx, "terminal action failed", "action", a, "error", err)
				}
			}
		case *tcell.EventResize:
			in.screen.Sync()
		}
	}
}
