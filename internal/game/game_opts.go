package game

import (
	"github.com/pixil98/go-sol/internal/debug"
	"github.com/pixil98/go-sol/internal/entity"
	"github.com/pixil98/go-sol/internal/item"
)

type Opt func(*Game)

// WithTutorial runs the game in tutorial mode with the default steps.
func WithTutorial() Opt {
	return WithTutorialSteps(DefaultTutorialSteps()...)
}

func WithTutorialSteps(steps ...TutorialStep) Opt {
	return func(g *Game) {
		g.tutorial = NewTutorialManager(steps...)
	}
}

// WithMouseControl gives the hero an AI pilot that flies to the beacon.
func WithMouseControl() Opt {
	return func(g *Game) {
		g.mouseControl = true
	}
}

func WithControls(c Controls) Opt {
	return func(g *Game) {
		g.controls = c
	}
}

func WithDrawer(d Drawer) Opt {
	return func(g *Game) {
		g.drawer = d
	}
}

func WithSystems(systems ...*System) Opt {
	return func(g *Game) {
		g.planets = NewPlanetManager(systems...)
	}
}

func WithDebug(o *debug.Options) Opt {
	return func(g *Game) {
		g.debug = o
	}
}

func WithRand(r item.Randomizer) Opt {
	return func(g *Game) {
		g.rng = r
	}
}

func WithEntities(m *entity.Manager) Opt {
	return func(g *Game) {
		g.entities = m
	}
}
