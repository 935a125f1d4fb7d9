package game

import "context"

// TutorialStep is one instruction, finished once Done holds.
type TutorialStep struct {
	Text string
	Done func(g *Game) bool
}

// TutorialManager walks the player through its steps in order.
type TutorialManager struct {
	steps []TutorialStep
	cur   int
}

func NewTutorialManager(steps ...TutorialStep) *TutorialManager {
	return &TutorialManager{steps: steps}
}

// DefaultTutorialSteps teaches flying and the ship ability.
func DefaultTutorialSteps() []TutorialStep {
	return []TutorialStep{
		{
			Text: "Hold thrust to fly forward",
			Done: func(g *Game) bool {
				h := g.Hero()
				return h != nil && h.Velocity().Len() > 0
			},
		},
		{
			Text: "Turn left or right",
			Done: func(g *Game) bool {
				h := g.Hero()
				return h != nil && h.Angle() != 0
			},
		},
		{
			Text: "Fly away from your spawn point",
			Done: func(g *Game) bool {
				h := g.Hero()
				return h != nil && h.Position().Dst(g.SpawnPosition()) > 10
			},
		},
	}
}

// Current returns the text of the active step, or "" when finished.
func (m *TutorialManager) Current() string {
	if m.Finished() {
		return ""
	}
	return m.steps[m.cur].Text
}

func (m *TutorialManager) Finished() bool {
	return m.cur >= len(m.steps)
}

func (m *TutorialManager) Update(_ context.Context, g *Game) error {
	if !m.Finished() && m.steps[m.cur].Done(g) {
		m.cur++
	}
	return nil
}
