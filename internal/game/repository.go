package game

import (
	"context"

	"github.com/pixil98/go-sol/internal/item"
)

// ShipConfig is a saved or template ship.
type ShipConfig struct {
	Hull  *HullConfig
	Money float32
	Items string
}

// ShipRepository persists the player's ship between sessions.
type ShipRepository interface {
	// ReadShip returns the last saved ship, or the default ship when there
	// is no save.
	ReadShip(ctx context.Context) (*ShipConfig, error)
	LoadShip(ctx context.Context, name string) (*ShipConfig, error)
	WriteShip(ctx context.Context, hull *HullConfig, money float32, items []*item.Item) error
}

// ItemCatalog is the game's view of the item definitions.
type ItemCatalog interface {
	Get(code string) *item.Def
	Random(rng item.Randomizer) *item.Item
	AddAllGuns(ct *item.Container)
	Parse(s string) ([]*item.Item, error)
}
