package game

import (
	"context"
	"math"
)

// ChunkSize is the edge length of an environment chunk.
const ChunkSize = 20

// Chunk identifies a square of the world.
type Chunk struct {
	X, Y int
}

func chunkOf(p Vec2) Chunk {
	return Chunk{
		X: int(math.Floor(float64(p.X / ChunkSize))),
		Y: int(math.Floor(float64(p.Y / ChunkSize))),
	}
}

// ChunkManager keeps the chunks around the camera active.
type ChunkManager struct {
	center Chunk
	active []Chunk
}

func NewChunkManager() *ChunkManager {
	return &ChunkManager{}
}

func (m *ChunkManager) Center() Chunk   { return m.center }
func (m *ChunkManager) Active() []Chunk { return m.active }

func (m *ChunkManager) Update(_ context.Context, g *Game) error {
	c := chunkOf(g.Camera().Position())
	if c == m.center && m.active != nil {
		return nil
	}

	m.center = c
	m.active = m.active[:0]
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			m.active = append(m.active, Chunk{c.X + dx, c.Y + dy})
		}
	}
	return nil
}
