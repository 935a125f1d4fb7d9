package game

// Faction is the side a pilot fights for.
type Faction int

const (
	FactionLaani Faction = iota
	FactionEhar
)

func (f Faction) String() string {
	switch f {
	case FactionLaani:
		return "laani"
	case FactionEhar:
		return "ehar"
	default:
		return "unknown"
	}
}

// AIDetectDistance is how far AI pilots look for targets.
const AIDetectDistance = 9

// Intent is what a pilot wants its ship to do this frame.
type Intent struct {
	Thrust  bool
	Left    bool
	Right   bool
	Ability bool
}

// Pilot controls a ship.
type Pilot interface {
	IsPlayer() bool
	Faction() Faction
	Name() string
	Intent(g *Game, s *Ship) Intent
}

// Controls is the player's input state.
type Controls interface {
	Thrust() bool
	Left() bool
	Right() bool
	Ability() bool
}

// UIPilot flies the ship from player input.
type UIPilot struct {
	controls Controls
}

func NewUIPilot(c Controls) *UIPilot {
	return &UIPilot{controls: c}
}

func (p *UIPilot) IsPlayer() bool   { return true }
func (p *UIPilot) Faction() Faction { return FactionLaani }
func (p *UIPilot) Name() string     { return "you" }

func (p *UIPilot) Intent(_ *Game, _ *Ship) Intent {
	if p.controls == nil {
		return Intent{}
	}
	return Intent{
		Thrust:  p.controls.Thrust(),
		Left:    p.controls.Left(),
		Right:   p.controls.Right(),
		Ability: p.controls.Ability(),
	}
}

// DestProvider tells an AI pilot where to fly.
type DestProvider interface {
	Dest(g *Game) (Vec2, bool)
}

// AIPilot steers toward its destination.
type AIPilot struct {
	dest       DestProvider
	isPlayer   bool
	faction    Faction
	name       string
	detectDist float32
}

func NewAIPilot(dest DestProvider, isPlayer bool, faction Faction, name string, detectDist float32) *AIPilot {
	return &AIPilot{
		dest:       dest,
		isPlayer:   isPlayer,
		faction:    faction,
		name:       name,
		detectDist: detectDist,
	}
}

func (p *AIPilot) IsPlayer() bool          { return p.isPlayer }
func (p *AIPilot) Faction() Faction        { return p.faction }
func (p *AIPilot) Name() string            { return p.name }
func (p *AIPilot) DetectDistance() float32 { return p.detectDist }

// arriveDistance is how close counts as being at the destination.
const arriveDistance = 0.5

// turnTolerance is the heading error, in degrees, below which the pilot
// stops turning and thrusts.
const turnTolerance = 10

func (p *AIPilot) Intent(g *Game, s *Ship) Intent {
	dest, ok := p.dest.Dest(g)
	if !ok {
		return Intent{}
	}
	toDest := dest.Sub(s.Position())
	if toDest.Len() < arriveDistance {
		return Intent{}
	}

	diff := NormAngle(toDest.Angle() - s.Angle())
	switch {
	case diff > turnTolerance && diff <= 180:
		return Intent{Left: true}
	case diff > 180 && diff < 360-turnTolerance:
		return Intent{Right: true}
	default:
		return Intent{Thrust: true}
	}
}

// BeaconDestProvider leads a mouse-controlled hero to the beacon.
type BeaconDestProvider struct{}

func (BeaconDestProvider) Dest(g *Game) (Vec2, bool) {
	b := g.Beacon()
	if !b.Active() {
		return Vec2{}, false
	}
	return b.Position(), true
}
