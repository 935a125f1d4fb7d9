package game

import (
	"context"
	"testing"

	"github.com/pixil98/go-sol/internal/item"
)

type defStore map[string]*item.Def

func (m defStore) Save(id string, v *item.Def) error { m[id] = v; return nil }
func (m defStore) Get(id string) *item.Def           { return m[id] }
func (m defStore) GetAll() map[string]*item.Def      { return m }

func testCatalog() *item.Catalog {
	return item.NewCatalog(defStore{
		"blaster":      {Name: "Blaster", KindStr: "gun", Icon: "blaster", Clip: "blaster-clip"},
		"cannon":       {Name: "Cannon", KindStr: "gun", Icon: "cannon"},
		"blaster-clip": {Name: "Blaster Clip", KindStr: "clip", Icon: "clip"},
		"plate":        {Name: "Plate", KindStr: "armor", Icon: "plate"},
		"buckler":      {Name: "Buckler", KindStr: "shield", Icon: "buckler"},
		"repairer":     {Name: "Repair Kit", KindStr: "repair", Icon: "repairer"},
		"junk":         {Name: "Junk", KindStr: "other"},
	})
}

func testHull() *HullConfig {
	return &HullConfig{
		Name:          "Frigate",
		Type:          HullTypeStd,
		MaxLife:       10,
		Size:          1,
		Acceleration:  2,
		MaxSpeed:      5,
		RotationSpeed: 90,
		GunSlots:      []GunSlot{{}, {}},
		code:          "frigate",
	}
}

type writtenShip struct {
	hull  *HullConfig
	money float32
	items string
}

type fakeRepo struct {
	read   *ShipConfig
	loads  map[string]*ShipConfig
	writes []writtenShip
	err    error
}

func (r *fakeRepo) ReadShip(_ context.Context) (*ShipConfig, error) {
	return r.read, r.err
}

func (r *fakeRepo) LoadShip(_ context.Context, name string) (*ShipConfig, error) {
	return r.loads[name], r.err
}

func (r *fakeRepo) WriteShip(_ context.Context, hull *HullConfig, money float32, items []*item.Item) error {
	r.writes = append(r.writes, writtenShip{hull: hull, money: money, items: item.Format(items)})
	return r.err
}

// fakeRand returns queued values, then the fallbacks.
type fakeRand struct {
	floats []float32
	ints   []int
	draws  int

	fallbackFloat float32
}

func (r *fakeRand) Float32() float32 {
	r.draws++
	if len(r.floats) == 0 {
		return r.fallbackFloat
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *fakeRand) IntN(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0] % n
	r.ints = r.ints[1:]
	return v
}

type fakeControls struct {
	thrust, left, right, ability bool
}

func (c *fakeControls) Thrust() bool  { return c.thrust }
func (c *fakeControls) Left() bool    { return c.left }
func (c *fakeControls) Right() bool   { return c.right }
func (c *fakeControls) Ability() bool { return c.ability }

// failingObject errors on every update.
type failingObject struct {
	err error
}

func (o *failingObject) Position() Vec2                          { return Vec2{} }
func (o *failingObject) HasBody() bool                           { return false }
func (o *failingObject) Radius() float32                         { return 0 }
func (o *failingObject) Update(_ context.Context, _ *Game) error { return o.err }
func (o *failingObject) ShouldBeRemoved(_ *Game) bool            { return false }

// newTestGame starts a game from a saved ship holding items.
func newTestGame(t *testing.T, money float32, items string, opts ...Opt) (*Game, *fakeRepo) {
	t.Helper()
	repo := &fakeRepo{read: &ShipConfig{Hull: testHull(), Money: money, Items: items}}
	opts = append([]Opt{WithRand(&fakeRand{fallbackFloat: 0.9})}, opts...)
	g, err := NewGame(context.Background(), repo, testCatalog(), "", opts...)
	if err != nil {
		t.Fatalf("unexpected error creating game: %v", err)
	}
	return g, repo
}
