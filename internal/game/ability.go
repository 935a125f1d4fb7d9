package game

import "fmt"

const AbilitySloMo = "slo-mo"

// AbilityConfig is the hull's special ability.
type AbilityConfig struct {
	Kind string `json:"kind"`

	// Factor is the time scale applied while the ability is at full
	// strength. RecoverRate is how fast the scale returns to 1, per second.
	Factor      float32 `json:"factor"`
	RecoverRate float32 `json:"recover_rate"`
}

func (c *AbilityConfig) Validate() error {
	switch c.Kind {
	case AbilitySloMo:
		if c.Factor <= 0 || c.Factor > 1 {
			return fmt.Errorf("slo-mo factor must be in (0, 1]")
		}
		if c.RecoverRate <= 0 {
			return fmt.Errorf("slo-mo recover_rate must be positive")
		}
		return nil
	default:
		return fmt.Errorf("ability kind %q is invalid", c.Kind)
	}
}

// Ability is a ship's special action.
type Ability interface {
	// Update runs once per ship update. activate is true when the pilot
	// triggers the ability this frame.
	Update(activate bool)
}

// NewAbility returns nil for a nil config.
func NewAbility(cfg *AbilityConfig) Ability {
	if cfg == nil {
		return nil
	}
	switch cfg.Kind {
	case AbilitySloMo:
		return &SloMo{cfg: cfg, factor: 1}
	default:
		return nil
	}
}

// SloMo slows the whole simulation while the hero flies a ship with it.
// It recovers on real time so that its own slowdown does not stretch it.
type SloMo struct {
	cfg    *AbilityConfig
	factor float32
}

func (s *SloMo) Factor() float32 {
	return s.factor
}

func (s *SloMo) Update(activate bool) {
	if activate {
		s.factor = s.cfg.Factor
		return
	}
	s.factor = approach(s.factor, 1, s.cfg.RecoverRate*RealTimeStep)
}
