package game

import "context"

// MountDetector marks the closest other ship the hero could target.
type MountDetector struct {
	target *Ship
}

func NewMountDetector() *MountDetector {
	return &MountDetector{}
}

// Target returns nil when nothing is in range.
func (d *MountDetector) Target() *Ship {
	return d.target
}

func (d *MountDetector) Update(_ context.Context, g *Game) error {
	d.target = nil
	hero := g.Hero()
	if hero == nil {
		return nil
	}

	best := float32(AIDetectDistance)
	for _, o := range g.Objects().Objects() {
		s, ok := o.(*Ship)
		if !ok || s == hero {
			continue
		}
		if dst := s.Position().Dst(hero.Position()); dst < best {
			d.target, best = s, dst
		}
	}
	return nil
}
