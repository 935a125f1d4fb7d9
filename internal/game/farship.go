package game

import (
	"fmt"
	"log/slog"

	"github.com/pixil98/go-sol/internal/item"
)

// ammoClips is how many clips a fresh ship gets per equipped gun.
const ammoClips = 2

// FarShip is a ship outside the simulation: freshly built, or in transit.
// ToShip brings it to life.
type FarShip struct {
	Pos   Vec2
	Angle float32
	Hull  *HullConfig
	Pilot Pilot
	Items *item.Container
	Money float32
}

// ToShip builds the live ship, equipping every item whose state says so.
func (f *FarShip) ToShip() *Ship {
	s := newShip(f.Pos, f.Angle, f.Hull, f.Pilot, f.Items, f.Money)
	for _, it := range f.Items.Items() {
		state := it.Equipped()
		if state == item.EquipNone {
			continue
		}
		it.SetEquipped(item.EquipNone)
		s.MaybeEquip(it, state == item.EquipSecondary, true)
	}
	return s
}

// ShipParams describes a ship to build.
type ShipParams struct {
	Pos      Vec2
	Angle    float32
	Pilot    Pilot
	Items    string
	Hull     *HullConfig
	Money    float32
	GiveAmmo bool
}

// ShipBuilder turns ship parameters into far ships.
type ShipBuilder struct {
	catalog ItemCatalog
}

func NewShipBuilder(c ItemCatalog) *ShipBuilder {
	return &ShipBuilder{catalog: c}
}

func (b *ShipBuilder) BuildFar(p ShipParams) (*FarShip, error) {
	if p.Hull == nil {
		return nil, ErrNoHull
	}

	items, err := b.catalog.Parse(p.Items)
	if err != nil {
		return nil, fmt.Errorf("parsing items: %w", err)
	}

	ic := item.NewContainer()
	for _, it := range items {
		if err := ic.Add(it); err != nil {
			return nil, fmt.Errorf("adding %s: %w", it.Code(), err)
		}
	}

	if p.GiveAmmo {
		b.addAmmo(ic, items)
	}

	return &FarShip{
		Pos:   p.Pos,
		Angle: p.Angle,
		Hull:  p.Hull,
		Pilot: p.Pilot,
		Items: ic,
		Money: p.Money,
	}, nil
}

func (b *ShipBuilder) addAmmo(ic *item.Container, items []*item.Item) {
	for _, it := range items {
		if !it.IsGun() || it.Equipped() == item.EquipNone || it.Def().Clip == "" {
			continue
		}
		def := b.catalog.Get(it.Def().Clip)
		if def == nil {
			slog.Warn("gun clip not in catalog", "gun", it.Code(), "clip", it.Def().Clip)
			continue
		}
		for range ammoClips {
			if err := ic.Add(item.New(def)); err != nil {
				break
			}
		}
	}
}
