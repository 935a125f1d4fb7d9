package modules

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pixil98/go-sol/internal/entity"
	"github.com/pixil98/go-sol/internal/game"
	"github.com/pixil98/go-sol/internal/item"
	"github.com/pixil98/go-sol/internal/registry"
	"github.com/pixil98/go-sol/internal/storage"
)

// Core is the built-in module. It logs game events and lists the stock
// items and hulls it finds in the registry.
type Core struct {
	catalog *item.Catalog
	hulls   storage.Storer[*game.HullConfig]
}

func NewCore() *Core {
	return &Core{}
}

func (c *Core) Key() string     { return "core" }
func (c *Core) Version() string { return "1.0.0" }

func (c *Core) Requires() []Capability {
	return []Capability{CapEntities, CapItems, CapHulls}
}

func (c *Core) Init(_ context.Context, reg *registry.Registry) error {
	em, ok := registry.Get[*entity.Manager](reg)
	if !ok {
		return fmt.Errorf("entity manager not registered")
	}
	catalog, ok := registry.Get[*item.Catalog](reg)
	if !ok {
		return fmt.Errorf("item catalog not registered")
	}
	hulls, ok := registry.Get[storage.Storer[*game.HullConfig]](reg)
	if !ok {
		return fmt.Errorf("hull store not registered")
	}

	c.catalog, c.hulls = catalog, hulls
	em.Register(entity.AnyEvent, []string{game.HeroComponent{}.ComponentName()}, logEvent)
	return nil
}

func logEvent(ctx context.Context, ev entity.Event, ref entity.Ref) error {
	slog.InfoContext(ctx, "game event", "event", ev.EventName(), "entity", ref, "data", ev)
	return nil
}

// Assets is empty until Init has run.
func (c *Core) Assets() []Asset {
	var out []Asset
	prefix := c.Key() + ":"

	if c.catalog != nil {
		for _, def := range c.catalog.Defs() {
			out = append(out, Asset{Kind: AssetJSON, Name: prefix + def.Code(), ItemKind: def.Kind()})
			if def.Icon != "" {
				out = append(out, Asset{Kind: AssetTexture, Name: prefix + def.Icon})
			}
		}
	}
	if c.hulls != nil {
		for code := range c.hulls.GetAll() {
			out = append(out, Asset{Kind: AssetJSON, Name: prefix + code})
		}
	}
	return out
}
