package render

import (
	"context"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// DefaultHoldFrames is how long a key counts as held after its last
// repeat. Terminals report presses only, never releases.
const DefaultHoldFrames = 6

type control int

const (
	controlThrust control = iota
	controlLeft
	controlRight
	controlAbility
	controlCount
)

// Action is a key press that is handled outside ship controls.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionPause
	ActionMap
)

// Keys turns key presses into held controls. It satisfies game.Controls
// and is ticked by the driver once per frame.
type Keys struct {
	mu   sync.Mutex
	held [controlCount]int
	hold int
}

func NewKeys(holdFrames int) *Keys {
	if holdFrames <= 0 {
		holdFrames = DefaultHoldFrames
	}
	return &Keys{hold: holdFrames}
}

// HandleKey records a press and reports any action bound to it.
func (k *Keys) HandleKey(key tcell.Key, r rune) Action {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit
	case tcell.KeyUp:
		k.press(controlThrust)
	case tcell.KeyLeft:
		k.press(controlLeft)
	case tcell.KeyRight:
		k.press(controlRight)
	case tcell.KeyRune:
		switch r {
		case 'w':
			k.press(controlThrust)
		case 'a':
			k.press(controlLeft)
		case 'd':
			k.press(controlRight)
		case ' ':
			k.press(controlAbility)
		case 'p':
			return ActionPause
		case 'm':
			return ActionMap
		case 'q':
			return ActionQuit
		}
	}
	return ActionNone
}

func (k *Keys) press(c control) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.held[c] = k.hold
}

// Tick ages every held key by one frame.
func (k *Keys) Tick(_ context.Context) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	for i := range k.held {
		if k.held[i] > 0 {
			k.held[i]--
		}
	}
	return nil
}

func (k *Keys) isHeld(c control) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.held[c] > 0
}

func (k *Keys) Thrust() bool  { return k.isHeld(controlThrust) }
func (k *Keys) Left() bool    { return k.isHeld(controlLeft) }
func (k *Keys) Right() bool   { return k.isHeld(controlRight) }
func (k *Keys) Ability() bool { return k.isHeld(controlAbility) }
