package game

import "context"

const (
	DefaultZoom = 1
	MapZoom     = 8

	// zoomSpeed is the zoom change per real second.
	zoomSpeed = 4
)

// Camera follows the hero.
type Camera struct {
	pos          Vec2
	zoom         float32
	mapOpen      bool
	zoomOverride float32
}

func NewCamera(zoomOverride float32) *Camera {
	c := &Camera{zoom: DefaultZoom, zoomOverride: zoomOverride}
	if zoomOverride != 0 {
		c.zoom = zoomOverride
	}
	return c
}

func (c *Camera) Position() Vec2 { return c.pos }
func (c *Camera) Zoom() float32  { return c.zoom }
func (c *Camera) MapOpen() bool  { return c.mapOpen }

func (c *Camera) SetPosition(p Vec2) {
	c.pos = p
}

// SetMapOpen switches the zoom target between the map and normal flight.
func (c *Camera) SetMapOpen(open bool) {
	c.mapOpen = open
}

// ViewDistance is how far from the center objects are still visible.
func (c *Camera) ViewDistance() float32 {
	return 10 * c.zoom
}

func (c *Camera) Update(_ context.Context, g *Game) error {
	if hero := g.Hero(); hero != nil {
		c.pos = hero.Position()
	} else if th := g.TranscendentHero(); th != nil {
		c.pos = th.Position()
	}
	c.updateZoom()
	return nil
}

// UpdateMap only moves the zoom. It runs while the game is paused.
func (c *Camera) UpdateMap(_ context.Context, _ *Game) error {
	c.updateZoom()
	return nil
}

func (c *Camera) updateZoom() {
	c.zoom = approach(c.zoom, c.targetZoom(), zoomSpeed*RealTimeStep)
}

func (c *Camera) targetZoom() float32 {
	switch {
	case c.mapOpen:
		return MapZoom
	case c.zoomOverride != 0:
		return c.zoomOverride
	default:
		return DefaultZoom
	}
}
