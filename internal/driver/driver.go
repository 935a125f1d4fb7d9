package driver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/pixil98/go-sol/internal/game"
)

// DefaultTickLength runs one frame per game.RealTimeStep.
var DefaultTickLength = time.Duration(math.Round(game.RealTimeStep * float64(time.Second)))

var ErrStopped = errors.New("driver stopped")

// Simulation is the world a Driver advances.
type Simulation interface {
	Update(ctx context.Context) error
	Draw() error
	OnGameEnd(ctx context.Context) error
}

// Manager is ticked once per frame after the simulation has drawn.
type Manager interface {
	Tick(context.Context) error
}

type request[S Simulation] struct {
	fn   func(context.Context, S) error
	done chan error
}

// Driver owns the simulation goroutine. Everything that touches the
// simulation goes through Do.
type Driver[S Simulation] struct {
	sim        S
	tickLength time.Duration
	managers   []Manager

	requests chan request[S]
	pending  []request[S]
	stopped  chan struct{}
}

func NewDriver[S Simulation](sim S, opts ...DriverOpt) *Driver[S] {
	cfg := &driverConfig{tickLength: DefaultTickLength}
	for _, opt := range opts {
		opt(cfg)
	}

	return &Driver[S]{
		sim:        sim,
		tickLength: cfg.tickLength,
		managers:   cfg.managers,
		requests:   make(chan request[S]),
		stopped:    make(chan struct{}),
	}
}

// Start runs frames until ctx is canceled, then ends the game. A frame
// error stops the driver.
func (d *Driver[S]) Start(ctx context.Context) error {
	defer close(d.stopped)
	defer d.reject()

	ticker := time.NewTicker(d.tickLength)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "driver stopping")
			if err := d.sim.OnGameEnd(context.WithoutCancel(ctx)); err != nil {
				return fmt.Errorf("ending game: %w", err)
			}
			return nil
		case req := <-d.requests:
			d.pending = append(d.pending, req)
		case <-ticker.C:
			if err := d.Tick(ctx); err != nil {
				return err
			}
		}
	}
}

// Tick runs queued commands, then one simulation frame.
func (d *Driver[S]) Tick(ctx context.Context) error {
	for _, req := range d.pending {
		req.done <- req.fn(ctx, d.sim)
	}
	d.pending = d.pending[:0]

	if err := d.sim.Update(ctx); err != nil {
		return fmt.Errorf("updating game: %w", err)
	}
	if err := d.sim.Draw(); err != nil {
		return fmt.Errorf("drawing game: %w", err)
	}
	for _, m := range d.managers {
		if err := m.Tick(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Do runs fn on the driver goroutine before the next frame and returns
// its error.
func (d *Driver[S]) Do(ctx context.Context, fn func(context.Context, S) error) error {
	req := request[S]{fn: fn, done: make(chan error, 1)}

	select {
	case d.requests <- req:
	case <-d.stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-req.done:
		return err
	case <-d.stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Driver[S]) reject() {
	for _, req := range d.pending {
		req.done <- ErrStopped
	}
	d.pending = nil
}
