package game

import "context"

// SunHotRadius is the distance from a star inside which nothing can spawn.
const SunHotRadius = 6

// spawnMargin keeps a spawning ship clear of the planet's atmosphere.
const spawnMargin = 2

// Planet orbits its system's star.
type Planet struct {
	Name         string
	Distance     float32
	Angle        float32
	Speed        float32
	GroundHeight float32
	AtmHeight    float32

	system *System
}

func (p *Planet) Position() Vec2 {
	return p.system.Pos.Add(FromAngle(p.Angle, p.Distance))
}

// FullHeight is the planet radius including its atmosphere.
func (p *Planet) FullHeight() float32 {
	return p.GroundHeight + p.AtmHeight
}

func (p *Planet) System() *System {
	return p.system
}

// System is a star with its planets.
type System struct {
	Name    string
	Pos     Vec2
	Planets []*Planet
}

// PlanetManager moves planets along their orbits.
type PlanetManager struct {
	systems []*System
}

func NewPlanetManager(systems ...*System) *PlanetManager {
	for _, s := range systems {
		for _, p := range s.Planets {
			p.system = s
		}
	}
	return &PlanetManager{systems: systems}
}

func (m *PlanetManager) Systems() []*System {
	return m.systems
}

func (m *PlanetManager) Update(_ context.Context, g *Game) error {
	step := g.TimeStep()
	for _, s := range m.systems {
		for _, p := range s.Planets {
			p.Angle = NormAngle(p.Angle + p.Speed*step)
		}
	}
	return nil
}

// NearestPlanet returns nil when there are no planets.
func (m *PlanetManager) NearestPlanet(pos Vec2) *Planet {
	var best *Planet
	var bestDst float32
	for _, s := range m.systems {
		for _, p := range s.Planets {
			if d := p.Position().Dst(pos); best == nil || d < bestDst {
				best, bestDst = p, d
			}
		}
	}
	return best
}

// NearestSystem returns nil when there are no systems.
func (m *PlanetManager) NearestSystem(pos Vec2) *System {
	var best *System
	var bestDst float32
	for _, s := range m.systems {
		if d := s.Pos.Dst(pos); best == nil || d < bestDst {
			best, bestDst = s, d
		}
	}
	return best
}

// SpawnPosition is just outside the atmosphere of the first planet, on the
// side facing away from its star, or the origin when there are no planets.
func (m *PlanetManager) SpawnPosition() Vec2 {
	for _, s := range m.systems {
		if len(s.Planets) == 0 {
			continue
		}
		p := s.Planets[0]
		return p.Position().Add(FromAngle(p.Angle, p.FullHeight()+spawnMargin))
	}
	return Vec2{}
}
