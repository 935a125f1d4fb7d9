package game

import (
	"context"

	"github.com/google/uuid"
	"github.com/pixil98/go-sol/internal/item"
)

// Ship is a live, simulated ship.
type Ship struct {
	id      string
	pos     Vec2
	vel     Vec2
	angle   float32
	hull    *HullConfig
	pilot   Pilot
	ability Ability
	items   *item.Container
	money   float32
	life    float32

	guns   [MaxGunSlots]*item.Item
	armor  *item.Item
	shield *item.Item
	engine *item.Item
}

func newShip(pos Vec2, angle float32, hull *HullConfig, pilot Pilot, items *item.Container, money float32) *Ship {
	if items == nil {
		items = item.NewContainer()
	}
	s := &Ship{
		id:      uuid.New().String(),
		pos:     pos,
		angle:   angle,
		hull:    hull,
		pilot:   pilot,
		ability: NewAbility(hull.Ability),
		items:   items,
		life:    hull.MaxLife,
	}
	s.SetMoney(money)
	return s
}

func (s *Ship) ID() string             { return s.id }
func (s *Ship) Position() Vec2         { return s.pos }
func (s *Ship) Velocity() Vec2         { return s.vel }
func (s *Ship) Angle() float32         { return s.angle }
func (s *Ship) Hull() *HullConfig      { return s.hull }
func (s *Ship) Pilot() Pilot           { return s.pilot }
func (s *Ship) Ability() Ability       { return s.ability }
func (s *Ship) Items() *item.Container { return s.items }
func (s *Ship) Money() float32         { return s.money }
func (s *Ship) Life() float32          { return s.life }
func (s *Ship) HasBody() bool          { return true }
func (s *Ship) Radius() float32        { return s.hull.Size / 2 }
func (s *Ship) Gun(secondary bool) *item.Item {
	if secondary {
		return s.guns[1]
	}
	return s.guns[0]
}

// SetMoney sets the ship's money. Money never goes below zero.
func (s *Ship) SetMoney(m float32) {
	s.money = max(m, 0)
}

// Damage reduces life and reports whether the ship was destroyed.
func (s *Ship) Damage(amount float32) bool {
	s.life = max(s.life-amount, 0)
	return s.life == 0
}

// MaybeEquip equips or unequips it and reports whether anything changed.
// secondary picks the gun mount and is ignored for other kinds.
func (s *Ship) MaybeEquip(it *item.Item, secondary bool, equip bool) bool {
	if it == nil || !s.items.Contains(it) {
		return false
	}

	slot := s.slotFor(it, secondary)
	if slot == nil {
		return false
	}

	if !equip {
		if *slot != it {
			return false
		}
		*slot = nil
		it.SetEquipped(item.EquipNone)
		return true
	}

	if *slot == it {
		return false
	}
	// An item can only sit in one gun mount at a time.
	if it.IsGun() {
		other := s.slotFor(it, !secondary)
		if other != nil && *other == it {
			*other = nil
		}
	}
	if prev := *slot; prev != nil {
		prev.SetEquipped(item.EquipNone)
	}
	*slot = it

	state := item.EquipPrimary
	if it.IsGun() && secondary {
		state = item.EquipSecondary
	}
	it.SetEquipped(state)
	return true
}

// MaybeUnequip takes it off whichever slot holds it and reports whether
// that happened. Guns on a fixed mount only come off when forced.
func (s *Ship) MaybeUnequip(it *item.Item, force bool) bool {
	if it == nil {
		return false
	}
	if it.IsGun() {
		for i, g := range s.guns {
			if g != it {
				continue
			}
			if !force && s.hull.GunSlots[i].Fixed {
				return false
			}
			return s.MaybeEquip(it, i == 1, false)
		}
		return false
	}
	return s.MaybeEquip(it, false, false)
}

func (s *Ship) slotFor(it *item.Item, secondary bool) **item.Item {
	switch it.Kind() {
	case item.KindGun:
		if !s.hull.HasGunSlot(secondary) {
			return nil
		}
		if secondary {
			return &s.guns[1]
		}
		return &s.guns[0]
	case item.KindArmor:
		return &s.armor
	case item.KindShield:
		return &s.shield
	case item.KindEngine:
		return &s.engine
	default:
		return nil
	}
}

// Update flies the ship one step according to its pilot.
func (s *Ship) Update(_ context.Context, g *Game) error {
	var in Intent
	if s.pilot != nil {
		in = s.pilot.Intent(g, s)
	}

	step := g.TimeStep()
	if in.Left {
		s.angle = NormAngle(s.angle + s.hull.RotationSpeed*step)
	}
	if in.Right {
		s.angle = NormAngle(s.angle - s.hull.RotationSpeed*step)
	}
	if in.Thrust {
		s.vel = s.vel.Add(FromAngle(s.angle, s.hull.Acceleration*step))
		if spd := s.vel.Len(); s.hull.MaxSpeed > 0 && spd > s.hull.MaxSpeed {
			s.vel = s.vel.Scale(s.hull.MaxSpeed / spd)
		}
	}
	s.pos = s.pos.Add(s.vel.Scale(step))

	if s.ability != nil {
		s.ability.Update(in.Ability)
	}
	return nil
}

func (s *Ship) ShouldBeRemoved(_ *Game) bool {
	return s.life <= 0
}
