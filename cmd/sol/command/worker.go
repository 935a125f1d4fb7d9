package command

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"
	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-service"

	"github.com/pixil98/go-sol/internal/console"
	"github.com/pixil98/go-sol/internal/debug"
	"github.com/pixil98/go-sol/internal/driver"
	"github.com/pixil98/go-sol/internal/entity"
	"github.com/pixil98/go-sol/internal/game"
	"github.com/pixil98/go-sol/internal/item"
	"github.com/pixil98/go-sol/internal/listener"
	"github.com/pixil98/go-sol/internal/messaging"
	"github.com/pixil98/go-sol/internal/modules"
	"github.com/pixil98/go-sol/internal/registry"
	"github.com/pixil98/go-sol/internal/render"
	"github.com/pixil98/go-sol/internal/save"
	"github.com/pixil98/go-sol/internal/storage"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}
	ctx := context.Background()

	dbg, err := debug.Load(cfg.DebugFile)
	if err != nil {
		return nil, fmt.Errorf("loading debug options: %w", err)
	}

	st, err := cfg.Storage.buildStores()
	if err != nil {
		return nil, err
	}
	catalog := item.NewCatalog(st.items)

	reg := registry.New()
	entities := entity.NewManager()
	registry.Put(reg, entities)
	registry.Put(reg, catalog)
	registry.Put[storage.Storer[*game.HullConfig]](reg, st.hulls)

	var saveOpts []save.ManagerOpt
	if cfg.Storage.DefaultTemplate != "" {
		saveOpts = append(saveOpts, save.WithDefaultTemplate(cfg.Storage.DefaultTemplate))
	}
	var history *save.History
	if cfg.Storage.History != "" {
		history, err = save.OpenHistory(cfg.Storage.History)
		if err != nil {
			return nil, fmt.Errorf("opening history: %w", err)
		}
		reg.OnClose("history", history.Close)
		saveOpts = append(saveOpts, save.WithHistory(history))
	}
	saves := save.NewManager(st.saves, st.templates, st.hulls, saveOpts...)

	// Message bus
	bus, err := cfg.Nats.buildNatsServer()
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}

	// Modules
	mods := modules.NewManager(modules.CapEntities, modules.CapItems, modules.CapHulls, modules.CapMessaging)
	for _, m := range []modules.Module{
		modules.NewCore(),
		messaging.NewEventModule(bus),
	} {
		if err := mods.Register(m); err != nil {
			return nil, fmt.Errorf("registering module: %w", err)
		}
	}
	if err := mods.Init(ctx, reg); err != nil {
		return nil, fmt.Errorf("initializing modules: %w", err)
	}
	mods.LogAvailableModules(ctx)

	gameOpts := []game.Opt{
		game.WithEntities(entities),
		game.WithDebug(dbg),
	}
	if len(cfg.Systems) > 0 {
		gameOpts = append(gameOpts, game.WithSystems(buildSystems(cfg.Systems)...))
	}
	if cfg.Tutorial {
		gameOpts = append(gameOpts, game.WithTutorial())
	}

	var screen tcell.Screen
	var keys *render.Keys
	if cfg.Terminal {
		screen, err = tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("creating screen: %w", err)
		}
		if err := screen.Init(); err != nil {
			return nil, fmt.Errorf("initializing screen: %w", err)
		}
		keys = render.NewKeys(render.DefaultHoldFrames)
		gameOpts = append(gameOpts,
			game.WithControls(keys),
			game.WithDrawer(render.NewTerminal(screen, render.WithLanguage(cfg.languageTag()))),
		)
	}

	g, err := game.NewGame(ctx, saves, catalog, cfg.Ship, gameOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating game: %w", err)
	}

	var driverOpts []driver.DriverOpt
	if keys != nil {
		driverOpts = append(driverOpts, driver.WithManagers(keys))
	}
	drv := driver.NewDriver(g, driverOpts...)

	// Remote console
	consoleOpts := []console.ConsoleOpt{
		console.WithModules(mods),
		console.WithBus(bus),
		console.WithLanguage(cfg.languageTag()),
	}
	if cfg.Console.Width > 0 {
		consoleOpts = append(consoleOpts, console.WithWidth(cfg.Console.Width))
	}
	if history != nil {
		consoleOpts = append(consoleOpts, console.WithHistory(history))
	}
	cm := listener.NewConnectionManager(
		console.NewConsole(drv, consoleOpts...),
		listener.WithMaxSessions(cfg.Console.MaxSessions),
	)

	// Create Listeners
	listeners := make(service.WorkerList, len(cfg.Listeners))
	for i, l := range cfg.Listeners {
		listener, err := l.BuildListener(cm)
		if err != nil {
			return nil, fmt.Errorf("creating listener %d: %w", i, err)
		}
		listeners[fmt.Sprintf("listener-%d", i)] = listener
	}

	workers := service.WorkerList{
		"game":      &gameWorker{driver: drv, registry: reg},
		"nats":      bus,
		"listeners": &listeners,
	}
	if screen != nil {
		workers["terminal"] = render.NewInput(screen, keys, terminalActions(drv))
	}

	return workers, nil
}

// gameWorker runs the driver and releases registry resources once the
// final save has been written.
type gameWorker struct {
	driver   *driver.Driver[*game.Game]
	registry *registry.Registry
}

func (w *gameWorker) Start(ctx context.Context) error {
	el := errors.NewErrorList()
	el.Add(w.driver.Start(ctx))
	el.Add(w.registry.Close())
	return el.Err()
}

func terminalActions(drv *driver.Driver[*game.Game]) render.ActionFunc {
	return func(ctx context.Context, a render.Action) error {
		return drv.Do(ctx, func(ctx context.Context, g *game.Game) error {
			switch a {
			case render.ActionPause:
				g.SetPaused(ctx, !g.Paused())
			case render.ActionMap:
				g.Camera().SetMapOpen(!g.Camera().MapOpen())
			default:
				slog.DebugContext(ctx, "ignoring terminal action", "action", a)
			}
			return nil
		})
	}
}
