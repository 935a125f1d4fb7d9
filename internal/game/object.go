package game

import "context"

// Object is anything the object manager simulates.
type Object interface {
	Position() Vec2
	HasBody() bool
	Radius() float32
	Update(ctx context.Context, g *Game) error
	ShouldBeRemoved(g *Game) bool
}
