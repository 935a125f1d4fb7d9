package game

import "context"

// View is the part of the world being drawn.
type View struct {
	Center Vec2
	Zoom   float32
}

// HUD is the heads-up state shown over the world.
type HUD struct {
	Money    float32
	Life     float32
	MaxLife  float32
	Paused   bool
	Time     float32
	Tutorial string
	Target   string
}

// Drawer renders one frame. Begin and End bracket every frame.
type Drawer interface {
	Begin(v View)
	DrawPlanet(p *Planet)
	DrawObject(o Object)
	DrawHUD(h HUD)
	DrawGrid(size float32)
	DrawPoint(p Vec2, size float32)
	End() error
}

// DrawManager tracks what is in view.
type DrawManager struct {
	objects []Object
	planets []*Planet
}

func NewDrawManager() *DrawManager {
	return &DrawManager{}
}

func (m *DrawManager) Visible() []Object { return m.objects }

func (m *DrawManager) Update(_ context.Context, g *Game) error {
	cam := g.Camera()
	view := cam.ViewDistance()

	m.objects = m.objects[:0]
	for _, o := range g.Objects().Objects() {
		if o.Position().Dst(cam.Position())-o.Radius() <= view {
			m.objects = append(m.objects, o)
		}
	}

	m.planets = m.planets[:0]
	for _, s := range g.Planets().Systems() {
		for _, p := range s.Planets {
			if p.Position().Dst(cam.Position())-p.FullHeight() <= view {
				m.planets = append(m.planets, p)
			}
		}
	}
	return nil
}

func (m *DrawManager) draw(d Drawer) {
	for _, p := range m.planets {
		d.DrawPlanet(p)
	}
	for _, o := range m.objects {
		d.DrawObject(o)
	}
}

// MapDrawer animates the map icons.
type MapDrawer struct {
	phase float32
}

// iconAnimSpeed is map icon cycles per real second.
const iconAnimSpeed = 0.5

func NewMapDrawer() *MapDrawer {
	return &MapDrawer{}
}

// IconPhase is the icon animation position in [0, 1).
func (m *MapDrawer) IconPhase() float32 {
	return m.phase
}

func (m *MapDrawer) Update(_ context.Context, _ *Game) error {
	m.phase += iconAnimSpeed * RealTimeStep
	for m.phase >= 1 {
		m.phase--
	}
	return nil
}
