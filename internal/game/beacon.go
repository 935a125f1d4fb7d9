package game

import "context"

// BeaconHandler places the waypoint a mouse-controlled hero flies to.
// The beacon follows its target object while it has one.
type BeaconHandler struct {
	pos    Vec2
	active bool
	target Object
}

func NewBeaconHandler() *BeaconHandler {
	return &BeaconHandler{}
}

// Init puts the beacon at pos, dropping any target.
func (b *BeaconHandler) Init(pos Vec2) {
	b.pos = pos
	b.active = true
	b.target = nil
}

func (b *BeaconHandler) Position() Vec2 { return b.pos }
func (b *BeaconHandler) Active() bool   { return b.active }
func (b *BeaconHandler) Target() Object { return b.target }

// MoveTo sends the beacon to a fixed point.
func (b *BeaconHandler) MoveTo(pos Vec2) {
	b.pos = pos
	b.target = nil
	b.active = true
}

// Follow makes the beacon track o.
func (b *BeaconHandler) Follow(o Object) {
	b.target = o
	b.active = true
}

func (b *BeaconHandler) Update(_ context.Context, g *Game) error {
	if b.target == nil {
		return nil
	}
	if !g.Objects().Contains(b.target) {
		b.target = nil
		return nil
	}
	b.pos = b.target.Position()
	return nil
}
