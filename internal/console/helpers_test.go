package console

import (
	"bytes"
	"context"
	"testing"

	"github.com/pixil98/go-sol/internal/game"
	"github.com/pixil98/go-sol/internal/item"
	"github.com/pixil98/go-sol/internal/modules"
	"github.com/pixil98/go-sol/internal/save"
)

type defStore map[string]*item.Def

func (m defStore) Save(id string, v *item.Def) error { m[id] = v; return nil }
func (m defStore) Get(id string) *item.Def           { return m[id] }
func (m defStore) GetAll() map[string]*item.Def      { return m }

type hullStore map[string]*game.HullConfig

func (m hullStore) Save(id string, v *game.HullConfig) error { m[id] = v; return nil }
func (m hullStore) Get(id string) *game.HullConfig           { return m[id] }
func (m hullStore) GetAll() map[string]*game.HullConfig      { return m }

type fakeRepo struct {
	read   *game.ShipConfig
	writes int
}

func (r *fakeRepo) ReadShip(_ context.Context) (*game.ShipConfig, error) { return r.read, nil }
func (r *fakeRepo) LoadShip(_ context.Context, _ string) (*game.ShipConfig, error) {
	return r.read, nil
}
func (r *fakeRepo) WriteShip(_ context.Context, _ *game.HullConfig, _ float32, _ []*item.Item) error {
	r.writes++
	return nil
}

// fixedRand keeps every item on respawn.
type fixedRand struct{}

func (fixedRand) Float32() float32 { return 0 }
func (fixedRand) IntN(int) int     { return 0 }

// fakeRunner runs commands inline on its game.
type fakeRunner struct {
	g   *game.Game
	err error
}

func (r *fakeRunner) Do(ctx context.Context, fn func(context.Context, *game.Game) error) error {
	if r.err != nil {
		return r.err
	}
	return fn(ctx, r.g)
}

type fakeHistory struct {
	entries []save.Entry
}

func (h *fakeHistory) Recent(_ context.Context, n int) ([]save.Entry, error) {
	return h.entries[:min(n, len(h.entries))], nil
}

type fakeModules []modules.Summary

func (m fakeModules) Summaries() []modules.Summary { return m }

type bufferRW struct {
	in  *bytes.Buffer
	out bytes.Buffer
}

func (b *bufferRW) Read(p []byte) (int, error)  { return b.in.Read(p) }
func (b *bufferRW) Write(p []byte) (int, error) { return b.out.Write(p) }

// newTestGame starts a game with a Frigate holding a blaster and a plate.
func newTestGame(t *testing.T, opts ...game.Opt) (*game.Game, *fakeRepo) {
	t.Helper()

	hulls := hullStore{"frigate": {Name: "frigate", Type: game.HullTypeStd, MaxLife: 10, Size: 1, GunSlots: []game.GunSlot{{}, {}}}}
	game.BindHullCodes(hulls)
	catalog := item.NewCatalog(defStore{
		"blaster": {Name: "Blaster", KindStr: "gun", Icon: "blaster"},
		"plate":   {Name: "Plate", KindStr: "armor", Icon: "plate"},
	})

	repo := &fakeRepo{read: &game.ShipConfig{Hull: hulls["frigate"], Money: 1250, Items: "blaster@1 plate"}}
	opts = append([]game.Opt{game.WithRand(fixedRand{})}, opts...)
	g, err := game.NewGame(context.Background(), repo, catalog, "", opts...)
	if err != nil {
		t.Fatalf("unexpected error creating game: %v", err)
	}
	return g, repo
}
