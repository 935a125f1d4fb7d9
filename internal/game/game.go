package game

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"

	"github.com/pixil98/go-sol/internal/debug"
	"github.com/pixil98/go-sol/internal/entity"
	"github.com/pixil98/go-sol/internal/item"
)

const (
	// RealTimeStep is the wall time covered by one frame, in seconds.
	RealTimeStep = 1.0 / 60

	// TutorialMoney replaces the saved money in tutorial mode.
	TutorialMoney = 200

	tutorialDraws  = 50
	debugPointSize = 0.05
)

type subsystem interface {
	Update(ctx context.Context, g *Game) error
}

type frameStep struct {
	name string
	sub  subsystem
}

// Stats counts frames for the debug overlay.
type Stats struct {
	Frames       uint64
	PausedFrames uint64
	Objects      int
}

// Game owns the simulation. It is not safe for concurrent use; the driver
// goroutine is its only caller.
type Game struct {
	debug    *debug.Options
	repo     ShipRepository
	catalog  ItemCatalog
	builder  *ShipBuilder
	entities *entity.Manager
	rng      item.Randomizer

	planets     *PlanetManager
	camera      *Camera
	chunks      *ChunkManager
	mountDetect *MountDetector
	objects     *ObjectManager
	drawMan     *DrawManager
	mapDrawer   *MapDrawer
	sound       *SoundManager
	beacon      *BeaconHandler
	tutorial    *TutorialManager
	frame       []frameStep

	controls     Controls
	mouseControl bool
	drawer       Drawer

	time       float32
	timeStep   float32
	timeFactor float32
	paused     bool
	spawnPos   Vec2
	respawn    RespawnState
	stats      Stats
}

// NewGame builds the world and spawns the hero from the named ship, or
// from the last save when shipName is empty.
func NewGame(ctx context.Context, repo ShipRepository, catalog ItemCatalog, shipName string, opts ...Opt) (*Game, error) {
	if repo == nil {
		return nil, ErrNoRepository
	}
	if catalog == nil {
		return nil, ErrNoCatalog
	}

	g := &Game{
		debug:       debug.Default(),
		repo:        repo,
		catalog:     catalog,
		builder:     NewShipBuilder(catalog),
		planets:     NewPlanetManager(),
		chunks:      NewChunkManager(),
		mountDetect: NewMountDetector(),
		objects:     NewObjectManager(),
		drawMan:     NewDrawManager(),
		mapDrawer:   NewMapDrawer(),
		beacon:      NewBeaconHandler(),
	}
	for _, opt := range opts {
		opt(g)
	}

	if g.rng == nil {
		g.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if g.entities == nil {
		g.entities = entity.NewManager()
	}
	g.entities.CreateEntity(HeroComponent{})

	g.camera = NewCamera(g.debug.ZoomOverride)
	g.sound = NewSoundManager(g.debug.NoSound)
	g.timeFactor = g.debug.GameSpeedMultiplier
	g.frame = []frameStep{
		{"planets", g.planets},
		{"camera", g.camera},
		{"chunks", g.chunks},
		{"mount detector", g.mountDetect},
		{"objects", g.objects},
		{"draw manager", g.drawMan},
		{"map drawer", g.mapDrawer},
		{"sound", g.sound},
		{"beacon", g.beacon},
	}

	if err := g.createPlayer(ctx, shipName); err != nil {
		return nil, fmt.Errorf("creating player: %w", err)
	}
	return g, nil
}

func (g *Game) Time() float32                 { return g.time }
func (g *Game) TimeStep() float32             { return g.timeStep }
func (g *Game) TimeFactor() float32           { return g.timeFactor }
func (g *Game) Paused() bool                  { return g.paused }
func (g *Game) Debug() *debug.Options         { return g.debug }
func (g *Game) Entities() *entity.Manager     { return g.entities }
func (g *Game) Camera() *Camera               { return g.camera }
func (g *Game) Objects() *ObjectManager       { return g.objects }
func (g *Game) Planets() *PlanetManager       { return g.planets }
func (g *Game) Chunks() *ChunkManager         { return g.chunks }
func (g *Game) MountDetector() *MountDetector { return g.mountDetect }
func (g *Game) DrawManager() *DrawManager     { return g.drawMan }
func (g *Game) MapDrawer() *MapDrawer         { return g.mapDrawer }
func (g *Game) Sound() *SoundManager          { return g.sound }
func (g *Game) Beacon() *BeaconHandler        { return g.beacon }
func (g *Game) SpawnPosition() Vec2           { return g.spawnPos }
func (g *Game) Stats() Stats                  { return g.stats }

// Tutorial returns nil outside tutorial mode.
func (g *Game) Tutorial() *TutorialManager { return g.tutorial }

// RespawnState returns the pending respawn snapshot.
func (g *Game) RespawnState() RespawnState { return g.respawn }

// Hero returns the live player ship, or nil.
func (g *Game) Hero() *Ship {
	h, _ := g.heroes()
	return h
}

// TranscendentHero returns the player ship in transit, or nil.
func (g *Game) TranscendentHero() *Transcendent {
	_, t := g.heroes()
	return t
}

// heroes scans live objects in order. The first player-piloted ship or
// transit wins, so at most one of the results is set.
func (g *Game) heroes() (hero *Ship, trans *Transcendent) {
	g.objects.Live(func(o Object) bool {
		switch v := o.(type) {
		case *Ship:
			if v.Pilot() != nil && v.Pilot().IsPlayer() {
				hero = v
				return false
			}
		case *Transcendent:
			if p := v.Ship().Pilot; p != nil && p.IsPlayer() {
				trans = v
				return false
			}
		}
		return true
	})
	return hero, trans
}

// Update advances the world one frame. While paused only the map zoom and
// map icons move.
func (g *Game) Update(ctx context.Context) error {
	g.collectStats()

	if g.paused {
		if err := g.camera.UpdateMap(ctx, g); err != nil {
			return fmt.Errorf("updating camera map: %w", err)
		}
		if err := g.mapDrawer.Update(ctx, g); err != nil {
			return fmt.Errorf("updating map drawer: %w", err)
		}
		return nil
	}

	g.timeFactor = g.debug.GameSpeedMultiplier
	if hero := g.Hero(); hero != nil {
		if sm, ok := hero.Ability().(*SloMo); ok {
			g.timeFactor *= sm.Factor()
		}
	}
	g.timeStep = RealTimeStep * g.timeFactor
	g.time += g.timeStep

	for _, s := range g.frame {
		if err := s.sub.Update(ctx, g); err != nil {
			return fmt.Errorf("updating %s: %w", s.name, err)
		}
	}

	if g.tutorial != nil {
		if err := g.tutorial.Update(ctx, g); err != nil {
			return fmt.Errorf("updating tutorial: %w", err)
		}
	}
	return nil
}

func (g *Game) collectStats() {
	g.stats.Frames++
	if g.paused {
		g.stats.PausedFrames++
	}
	g.stats.Objects = len(g.objects.Objects())
}

// Draw renders the frame through the configured drawer, if any.
func (g *Game) Draw() error {
	d := g.drawer
	if d == nil {
		return nil
	}

	d.Begin(View{Center: g.camera.Position(), Zoom: g.camera.Zoom()})
	g.drawMan.draw(d)
	g.DrawDebug(d)
	d.DrawHUD(g.HUD())
	return d.End()
}

// DrawDebug draws the grid and the marked debug points.
func (g *Game) DrawDebug(d Drawer) {
	if g.debug.GridSize > 0 {
		d.DrawGrid(g.debug.GridSize)
	}
	for _, p := range g.debug.DebugPoints {
		if p.IsZero() {
			continue
		}
		d.DrawPoint(Vec2{p.X, p.Y}, debugPointSize*g.camera.Zoom())
	}
}

func (g *Game) HUD() HUD {
	h := HUD{Paused: g.paused, Time: g.time}
	if hero := g.Hero(); hero != nil {
		h.Money = hero.Money()
		h.Life = hero.Life()
		h.MaxLife = hero.Hull().MaxLife
	} else if th := g.TranscendentHero(); th != nil {
		h.Money = th.Ship().Money
	}
	if g.tutorial != nil {
		h.Tutorial = g.tutorial.Current()
	}
	if t := g.mountDetect.Target(); t != nil && t.Pilot() != nil {
		h.Target = t.Pilot().Name()
	}
	return h
}

func (g *Game) SetPaused(ctx context.Context, paused bool) {
	g.paused = paused
	if paused {
		slog.WarnContext(ctx, "game paused")
	} else {
		slog.WarnContext(ctx, "game resumed")
	}
	g.emit(ctx, PauseChanged{Paused: paused})
}

// IsPlaceEmpty reports whether a ship could appear at pos.
func (g *Game) IsPlaceEmpty(pos Vec2, considerPlanets bool) bool {
	if considerPlanets {
		if np := g.planets.NearestPlanet(pos); np != nil && np.Position().Dst(pos) < np.FullHeight() {
			return false
		}
	}
	if ns := g.planets.NearestSystem(pos); ns != nil && ns.Pos.Dst(pos) < SunHotRadius {
		return false
	}
	for _, o := range g.objects.Objects() {
		if !o.HasBody() {
			continue
		}
		if pos.Dst(o.Position()) < o.Radius() {
			return false
		}
	}
	return true
}

func (g *Game) createPlayer(ctx context.Context, shipName string) error {
	pos := g.planets.SpawnPosition()
	g.spawnPos = pos
	g.camera.SetPosition(pos)

	var pilot Pilot
	if g.mouseControl {
		g.beacon.Init(pos)
		pilot = NewAIPilot(BeaconDestProvider{}, true, FactionLaani, "you", AIDetectDistance)
	} else {
		pilot = NewUIPilot(g.controls)
	}

	var cfg *ShipConfig
	var err error
	if shipName == "" {
		cfg, err = g.repo.ReadShip(ctx)
	} else {
		cfg, err = g.repo.LoadShip(ctx, shipName)
	}
	if err != nil {
		return fmt.Errorf("reading ship: %w", err)
	}

	money := cfg.Money
	switch {
	case g.respawn.Money != 0:
		money = g.respawn.Money
	case g.tutorial != nil:
		money = TutorialMoney
	}

	hull := cfg.Hull
	if g.respawn.Hull != nil {
		hull = g.respawn.Hull
	}

	items := cfg.Items
	if g.respawn.HasItems() {
		items = ""
	}

	far, err := g.builder.BuildFar(ShipParams{
		Pos:      pos,
		Pilot:    pilot,
		Items:    items,
		Hull:     hull,
		Money:    money,
		GiveAmmo: shipName != "" && !g.respawn.HasItems(),
	})
	if err != nil {
		return fmt.Errorf("building ship: %w", err)
	}
	hero := far.ToShip()

	ic := hero.Items()
	switch {
	case g.respawn.HasItems():
		for _, ri := range g.respawn.Items {
			ri.Item.SetEquipped(item.EquipNone)
			if err := ic.Add(ri.Item); err != nil {
				slog.WarnContext(ctx, "dropping respawn item", "item", ri.Item.Code(), "error", err)
				continue
			}
			if ri.Equipped != item.EquipNone {
				hero.MaybeEquip(ri.Item, ri.Equipped == item.EquipSecondary, true)
			}
		}
	case g.debug.GodMode:
		g.catalog.AddAllGuns(ic)
	case g.tutorial != nil:
		for range tutorialDraws {
			if float32(ic.GroupCount()) > 1.5*item.ItemGroupsPerPage {
				break
			}
			it := g.catalog.Random(g.rng)
			if it == nil {
				break
			}
			if !it.IsGun() && it.Icon() != "" && ic.CanAdd(it) {
				_ = ic.Add(it.Copy())
			}
		}
	}
	ic.SeenAll()

	g.objects.AddDelayed(hero)
	g.objects.ResetDelays()
	g.respawn.Clear()

	slog.InfoContext(ctx, "hero spawned", "hull", hull.Code(), "money", hero.Money(), "items", ic.Size())
	g.emit(ctx, HeroSpawned{Hull: hull.Code(), Money: hero.Money(), Items: ic.Size()})
	return nil
}

// BeforeHeroDeath moves part of the hero's money and some of its items
// into the respawn snapshot.
func (g *Game) BeforeHeroDeath(ctx context.Context) {
	hero := g.Hero()
	if hero == nil {
		return
	}

	money := hero.Money()
	g.captureRespawn(ctx, hero, money, hero.Items(), hero.Hull())
	hero.SetMoney(money - g.respawn.Money)
}

// captureRespawn fills the respawn snapshot and takes the kept items out
// of ic. With no live hero every item counts as equipped.
func (g *Game) captureRespawn(ctx context.Context, hero *Ship, money float32, ic *item.Container, hull *HullConfig) {
	g.respawn = RespawnState{
		Money: RespawnFraction * money,
		Hull:  hull,
	}

	for _, it := range ic.Items() {
		was := it.Equipped()
		unequipped := hero == nil || hero.MaybeUnequip(it, false)
		// The keep roll is drawn for every item, including ones already
		// kept because they were equipped.
		roll := g.rng.Float32() < RespawnFraction
		if unequipped || roll {
			g.respawn.Items = slices.Insert(g.respawn.Items, 0, RespawnItem{Item: it, Equipped: was})
		}
	}
	for _, ri := range g.respawn.Items {
		ic.Remove(ri.Item)
	}

	g.emit(ctx, HeroDied{CarriedMoney: g.respawn.Money, CarriedItems: len(g.respawn.Items)})
}

// Respawn ends the current life and spawns a new hero from the snapshot.
func (g *Game) Respawn(ctx context.Context) error {
	hero, trans := g.heroes()
	switch {
	case hero != nil:
		g.BeforeHeroDeath(ctx)
		g.objects.RemoveDelayed(hero)
	case trans != nil:
		far := trans.Ship()
		g.captureRespawn(ctx, nil, far.Money, far.Items, far.Hull)
		g.objects.RemoveDelayed(trans)
	}
	return g.createPlayer(ctx, "")
}

// SaveShip writes the hero, the hero in transit, or the respawn snapshot,
// whichever exists first. Tutorial games are never saved.
func (g *Game) SaveShip(ctx context.Context) error {
	if g.tutorial != nil {
		return nil
	}

	var hull *HullConfig
	var money float32
	var items []*item.Item

	hero, trans := g.heroes()
	switch {
	case hero != nil:
		hull, money = hero.Hull(), hero.Money()
		items = reversed(hero.Items().Items())
	case trans != nil:
		far := trans.Ship()
		hull, money = far.Hull, far.Money
		items = reversed(far.Items.Items())
	default:
		hull, money = g.respawn.Hull, g.respawn.Money
		for _, ri := range g.respawn.Items {
			ri.Item.SetEquipped(ri.Equipped)
			items = append(items, ri.Item)
		}
	}

	if hull == nil {
		slog.WarnContext(ctx, "no ship to save")
		return nil
	}

	if err := g.repo.WriteShip(ctx, hull, money, items); err != nil {
		return fmt.Errorf("writing ship: %w", err)
	}
	g.emit(ctx, ShipSaved{Hull: hull.Code(), Money: money, Items: len(items)})
	return nil
}

// OnGameEnd saves the ship and drops every object.
func (g *Game) OnGameEnd(ctx context.Context) error {
	err := g.SaveShip(ctx)
	g.objects.Dispose()
	return err
}

func (g *Game) emit(ctx context.Context, ev entity.Event) {
	err := g.entities.SendEvent(ctx, ev, HeroComponent{}.ComponentName())
	if err != nil {
		slog.WarnContext(ctx, "game event receiver failed", "event", ev.EventName(), "error", err)
	}
}

func reversed(items []*item.Item) []*item.Item {
	slices.Reverse(items)
	return items
}
