package game

import (
	"context"
	"log/slog"
)

// SoundManager keeps track of looped sounds and the objects playing them.
type SoundManager struct {
	muted bool
	loops map[Object]string
}

func NewSoundManager(muted bool) *SoundManager {
	return &SoundManager{muted: muted, loops: map[Object]string{}}
}

// PlayLoop starts sound on source, replacing any loop it already plays.
func (m *SoundManager) PlayLoop(source Object, sound string) {
	if m.muted {
		return
	}
	m.loops[source] = sound
}

func (m *SoundManager) Loops() int {
	return len(m.loops)
}

// Update stops loops whose source is gone.
func (m *SoundManager) Update(_ context.Context, g *Game) error {
	for src, sound := range m.loops {
		if !g.Objects().Contains(src) {
			slog.Debug("stopping sound loop", "sound", sound)
			delete(m.loops, src)
		}
	}
	return nil
}
