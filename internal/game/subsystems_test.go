package game

import (
	"context"
	"testing"

	"github.com/pixil98/go-sol/internal/item"
	"github.com/pixil98/go-testutil"
)

func TestPlanetManager(t *testing.T) {
	inner := &Planet{Name: "inner", Distance: 10, Speed: 60, GroundHeight: 1}
	outer := &Planet{Name: "outer", Distance: 30, Angle: 180}
	far := &System{Name: "far", Pos: Vec2{X: 500}}
	m := NewPlanetManager(&System{Name: "home", Planets: []*Planet{inner, outer}}, far)

	testutil.AssertEqual(t, "nearest planet", m.NearestPlanet(Vec2{X: -25}).Name, "outer")
	testutil.AssertEqual(t, "nearest system", m.NearestSystem(Vec2{X: 400}).Name, "far")
	testutil.AssertEqual(t, "planet system", inner.System().Name, "home")

	empty := NewPlanetManager()
	testutil.AssertEqual(t, "no planet", empty.NearestPlanet(Vec2{}) == nil, true)
	testutil.AssertEqual(t, "no system", empty.NearestSystem(Vec2{}) == nil, true)
	testutil.AssertEqual(t, "origin spawn", empty.SpawnPosition(), Vec2{})
}

func TestPlanetManager_Orbit(t *testing.T) {
	p := &Planet{Name: "terra", Distance: 10, Speed: 60}
	g, _ := newTestGame(t, 0, "", WithSystems(&System{Planets: []*Planet{p}}))

	if err := g.Update(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "angle", p.Angle, 60*g.TimeStep())
}

func TestCamera(t *testing.T) {
	tests := map[string]struct {
		override float32
		mapOpen  bool
		expZoom  float32
	}{
		"default":  {expZoom: DefaultZoom},
		"override": {override: 3, expZoom: 3},
		"map":      {mapOpen: true, expZoom: MapZoom},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			c := NewCamera(tt.override)
			c.SetMapOpen(tt.mapOpen)
			for range 600 {
				if err := c.UpdateMap(context.Background(), nil); err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			}
			testutil.AssertEqual(t, "zoom", c.Zoom(), tt.expZoom)
		})
	}
}

func TestCamera_FollowsHero(t *testing.T) {
	g, _ := newTestGame(t, 0, "", WithControls(&fakeControls{thrust: true}))
	ctx := context.Background()
	for range 5 {
		if err := g.Update(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	// The camera moves before the objects do.
	pos := g.Hero().Position()
	if err := g.Update(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "camera", g.Camera().Position(), pos)
}

func TestChunkManager(t *testing.T) {
	g, _ := newTestGame(t, 0, "")
	g.Camera().SetPosition(Vec2{X: -5, Y: 45})

	m := NewChunkManager()
	if err := m.Update(context.Background(), g); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "center", m.Center(), Chunk{X: -1, Y: 2})
	testutil.AssertEqual(t, "active", len(m.Active()), 9)
}

func TestMountDetector(t *testing.T) {
	g, _ := newTestGame(t, 0, "")
	near := newShip(Vec2{X: 2}, 0, testHull(), nil, nil, 0)
	nearer := newShip(Vec2{X: 1}, 0, testHull(), nil, nil, 0)
	far := newShip(Vec2{X: AIDetectDistance + 1}, 0, testHull(), nil, nil, 0)
	for _, s := range []*Ship{far, near, nearer} {
		g.Objects().AddDelayed(s)
	}

	ctx := context.Background()
	if err := g.Update(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Detection runs before objects commit, so targets show next frame.
	if err := g.Update(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "target", g.MountDetector().Target() == nearer, true)
}

func TestSoundManager(t *testing.T) {
	g, _ := newTestGame(t, 0, "")
	src := &countingObject{}
	g.Objects().AddDelayed(src)

	g.Sound().PlayLoop(src, "engine")
	g.Sound().PlayLoop(g.Hero(), "engine")
	testutil.AssertEqual(t, "loops", g.Sound().Loops(), 2)

	g.Objects().RemoveDelayed(src)
	if err := g.Update(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "loops after", g.Sound().Loops(), 1)

	muted := NewSoundManager(true)
	muted.PlayLoop(src, "engine")
	testutil.AssertEqual(t, "muted", muted.Loops(), 0)
}

func TestBeaconHandler(t *testing.T) {
	g, _ := newTestGame(t, 0, "")
	b := g.Beacon()
	testutil.AssertEqual(t, "inactive", b.Active(), false)

	target := &countingObject{pos: Vec2{X: 4, Y: 4}}
	g.Objects().AddDelayed(target)
	b.Follow(target)
	if err := g.Update(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "follows", b.Position(), Vec2{X: 4, Y: 4})

	g.Objects().RemoveDelayed(target)
	if err := g.Update(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "dropped target", b.Target() == nil, true)

	b.MoveTo(Vec2{X: -1})
	testutil.AssertEqual(t, "moved", b.Position(), Vec2{X: -1})
}

func TestMouseControlledHeroFliesToBeacon(t *testing.T) {
	g, _ := newTestGame(t, 0, "", WithMouseControl())
	g.Beacon().MoveTo(Vec2{X: 20})

	for range 120 {
		if err := g.Update(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if g.Hero().Position().X <= 0 {
		t.Errorf("hero should head for the beacon, at %v", g.Hero().Position())
	}
}

func TestTutorialManager(t *testing.T) {
	done := false
	m := NewTutorialManager(
		TutorialStep{Text: "first", Done: func(*Game) bool { return done }},
		TutorialStep{Text: "second", Done: func(*Game) bool { return true }},
	)

	ctx := context.Background()
	_ = m.Update(ctx, nil)
	testutil.AssertEqual(t, "waiting", m.Current(), "first")

	done = true
	_ = m.Update(ctx, nil)
	testutil.AssertEqual(t, "advanced", m.Current(), "second")

	_ = m.Update(ctx, nil)
	testutil.AssertEqual(t, "finished", m.Finished(), true)
	testutil.AssertEqual(t, "no text", m.Current(), "")
}

func TestTutorial_ShownInHUD(t *testing.T) {
	g, _ := newTestGame(t, 0, "", WithTutorial())
	testutil.AssertEqual(t, "hud", g.HUD().Tutorial, "Hold thrust to fly forward")
}

func TestSloMo(t *testing.T) {
	s := NewAbility(&AbilityConfig{Kind: AbilitySloMo, Factor: 0.5, RecoverRate: 6}).(*SloMo)
	testutil.AssertEqual(t, "idle", s.Factor(), float32(1))

	s.Update(true)
	testutil.AssertEqual(t, "active", s.Factor(), float32(0.5))

	s.Update(false)
	s.Update(false)
	testutil.AssertEqual(t, "recovering", s.Factor() > 0.5 && s.Factor() < 1, true)

	for range 60 {
		s.Update(false)
	}
	testutil.AssertEqual(t, "recovered", s.Factor(), float32(1))

	testutil.AssertEqual(t, "nil config", NewAbility(nil) == nil, true)
}

func TestTranscendent_Arrives(t *testing.T) {
	g, _ := newTestGame(t, 0, "")
	ctx := context.Background()

	items, err := testCatalog().Parse("blaster@1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ic := item.NewContainer()
	_ = ic.Add(items[0])
	far := &FarShip{Pos: Vec2{X: 1}, Hull: testHull(), Items: ic, Money: 7}
	tr := NewTranscendent(far, Vec2{X: 2})
	g.Objects().AddDelayed(tr)

	for range 10 {
		if err := g.Update(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	testutil.AssertEqual(t, "transit gone", g.Objects().Contains(tr), false)
	var arrived *Ship
	for _, o := range g.Objects().Objects() {
		if s, ok := o.(*Ship); ok && s.Money() == 7 {
			arrived = s
		}
	}
	if arrived == nil {
		t.Fatal("expected the ship to arrive")
	}
	testutil.AssertEqual(t, "position", arrived.Position(), Vec2{X: 2})
	testutil.AssertEqual(t, "gun mounted", arrived.Gun(false) == items[0], true)
}

func TestHullConfig_Validate(t *testing.T) {
	tests := map[string]struct {
		mutate func(h *HullConfig)
		expErr string
	}{
		"valid": {
			mutate: func(h *HullConfig) {},
		},
		"bad type": {
			mutate: func(h *HullConfig) { h.Type = "blimp" },
			expErr: `hull type "blimp" is invalid`,
		},
		"too many guns": {
			mutate: func(h *HullConfig) { h.GunSlots = make([]GunSlot, 3) },
			expErr: "at most 2 gun slots are allowed",
		},
		"no life": {
			mutate: func(h *HullConfig) { h.MaxLife = 0 },
			expErr: "max_life must be positive",
		},
		"bad ability": {
			mutate: func(h *HullConfig) { h.Ability = &AbilityConfig{Kind: "teleport"} },
			expErr: `ability kind "teleport" is invalid`,
		},
		"bad slo-mo": {
			mutate: func(h *HullConfig) { h.Ability = &AbilityConfig{Kind: AbilitySloMo, Factor: 2, RecoverRate: 1} },
			expErr: "slo-mo factor must be in (0, 1]",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			h := testHull()
			tt.mutate(h)
			err := h.Validate()
			if tt.expErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			testutil.AssertErrorContains(t, err, tt.expErr)
		})
	}
}

func TestVec2(t *testing.T) {
	testutil.AssertEqual(t, "len", Vec2{X: 3, Y: 4}.Len(), float32(5))
	testutil.AssertEqual(t, "dst", Vec2{X: 1}.Dst(Vec2{X: 4, Y: 4}), float32(5))
	testutil.AssertEqual(t, "norm negative", NormAngle(-90), float32(270))
	testutil.AssertEqual(t, "norm wrap", NormAngle(370), float32(10))
	testutil.AssertEqual(t, "approach up", approach(1, 2, 0.25), float32(1.25))
	testutil.AssertEqual(t, "approach clamp", approach(1, 0, 5), float32(0))
}
