package command

import (
	"fmt"

	"github.com/pixil98/go-errors"

	"github.com/pixil98/go-sol/internal/game"
)

type PlanetConfig struct {
	Name         string  `json:"name"`
	Distance     float32 `json:"distance"`
	Angle        float32 `json:"angle"`
	Speed        float32 `json:"speed"`
	GroundHeight float32 `json:"ground_height"`
	AtmHeight    float32 `json:"atm_height"`
}

type SystemConfig struct {
	Name    string         `json:"name"`
	X       float32        `json:"x"`
	Y       float32        `json:"y"`
	Planets []PlanetConfig `json:"planets"`
}

func (s *SystemConfig) validate() error {
	el := errors.NewErrorList()

	if s.Name == "" {
		el.Add(fmt.Errorf("name is required"))
	}
	for i, p := range s.Planets {
		if p.Distance <= game.SunHotRadius {
			el.Add(fmt.Errorf("planet %d: distance must be greater than %d", i, game.SunHotRadius))
		}
		if p.GroundHeight <= 0 {
			el.Add(fmt.Errorf("planet %d: ground_height must be positive", i))
		}
	}

	return el.Err()
}

func (s *SystemConfig) build() *game.System {
	sys := &game.System{
		Name: s.Name,
		Pos:  game.Vec2{X: s.X, Y: s.Y},
	}
	for _, p := range s.Planets {
		sys.Planets = append(sys.Planets, &game.Planet{
			Name:         p.Name,
			Distance:     p.Distance,
			Angle:        p.Angle,
			Speed:        p.Speed,
			GroundHeight: p.GroundHeight,
			AtmHeight:    p.AtmHeight,
		})
	}
	return sys
}

// buildSystems builds every configured system for a single planet manager.
func buildSystems(cs []SystemConfig) []*game.System {
	systems := make([]*game.System, 0, len(cs))
	for i := range cs {
		systems = append(systems, cs[i].build())
	}
	return systems
}
