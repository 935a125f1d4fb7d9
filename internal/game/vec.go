package game

import "math"

// Vec2 is a position or direction in world units.
type Vec2 struct {
	X, Y float32
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

func (v Vec2) Len() float32 {
	return float32(math.Hypot(float64(v.X), float64(v.Y)))
}

// Dst is the distance between v and o.
func (v Vec2) Dst(o Vec2) float32 {
	return v.Sub(o).Len()
}

// Angle is the direction of v in degrees.
func (v Vec2) Angle() float32 {
	return float32(math.Atan2(float64(v.Y), float64(v.X)) * 180 / math.Pi)
}

// FromAngle returns a vector of length l pointing at deg degrees.
func FromAngle(deg, l float32) Vec2 {
	rad := float64(deg) * math.Pi / 180
	return Vec2{float32(math.Cos(rad)) * l, float32(math.Sin(rad)) * l}
}

// NormAngle maps deg into [0, 360).
func NormAngle(deg float32) float32 {
	deg = float32(math.Mod(float64(deg), 360))
	if deg < 0 {
		deg += 360
	}
	return deg
}

// approach moves v toward target by at most step.
func approach(v, target, step float32) float32 {
	if v < target {
		return min(v+step, target)
	}
	return max(v-step, target)
}
