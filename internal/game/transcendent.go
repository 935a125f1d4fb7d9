package game

import "context"

// TranscendentSpeed is how fast a ship travels between star systems.
const TranscendentSpeed = 20

// Transcendent is a ship in transit between star systems. It has no body
// and becomes a live ship on arrival.
type Transcendent struct {
	ship    *FarShip
	dest    Vec2
	arrived bool
}

func NewTranscendent(ship *FarShip, dest Vec2) *Transcendent {
	return &Transcendent{ship: ship, dest: dest}
}

func (t *Transcendent) Ship() *FarShip  { return t.ship }
func (t *Transcendent) Dest() Vec2      { return t.dest }
func (t *Transcendent) Position() Vec2  { return t.ship.Pos }
func (t *Transcendent) HasBody() bool   { return false }
func (t *Transcendent) Radius() float32 { return 0 }

func (t *Transcendent) Update(_ context.Context, g *Game) error {
	if t.arrived {
		return nil
	}
	toDest := t.dest.Sub(t.ship.Pos)
	dist := toDest.Len()
	step := TranscendentSpeed * g.TimeStep()
	if dist <= step {
		t.ship.Pos = t.dest
		t.arrived = true
		g.Objects().AddDelayed(t.ship.ToShip())
		return nil
	}
	t.ship.Angle = toDest.Angle()
	t.ship.Pos = t.ship.Pos.Add(toDest.Scale(step / dist))
	return nil
}

func (t *Transcendent) ShouldBeRemoved(_ *Game) bool {
	return t.arrived
}
