package panzoom

import "math"

// Vec2 is a 2D vector used for positions, offsets, sizes, and directions
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Mul returns v scaled by s.
func (v Vec2) Mul(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Len returns the euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// IsZero reports whether both components are zero.
func (v Vec2) IsZero() bool { return v.X == 0 && v.Y == 0 }

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Size returns the rectangle's width and height as a vector.
func (r Rect) Size() Vec2 {
	return Vec2{r.Width, r.Height}
}

// Center returns the centre point of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.Width/2, r.Y + r.Height/2}
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Empty reports whether the rectangle has no area. An empty layout rectangle
// means the host has not measured the element yet.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Axis selects which pointer axis a gesture is measured along.
type Axis uint8

const (
	AxisHorizontal Axis = iota // direction and threshold use the X component
	AxisVertical               // direction and threshold use the Y component
)

// String returns the axis name used in configuration files.
func (a Axis) String() string {
	if a == AxisVertical {
		return "vertical"
	}
	return "horizontal"
}

// ParseAxis converts "horizontal" or "vertical" into an Axis. Unknown names
// report ok=false.
func ParseAxis(s string) (Axis, bool) {
	switch s {
	case "horizontal", "":
		return AxisHorizontal, true
	case "vertical":
		return AxisVertical, true
	}
	return AxisHorizontal, false
}

// component returns the component of v along the axis.
func (a Axis) component(v Vec2) float64 {
	if a == AxisVertical {
		return v.Y
	}
	return v.X
}

// Direction is the discrete sign of a gesture along its configured axis.
type Direction uint8

const (
	DirectionNone  Direction = iota // no movement along the axis
	DirectionLeft                   // negative X
	DirectionRight                  // positive X
	DirectionUp                     // negative Y
	DirectionDown                   // positive Y
)

var directionNames = [...]string{"none", "left", "right", "up", "down"}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return "unknown"
}

// directionOf maps a signed distance along an axis to a Direction.
func directionOf(axis Axis, distance Vec2) Direction {
	v := axis.component(distance)
	switch {
	case v == 0:
		return DirectionNone
	case v < 0:
		if axis == AxisVertical {
			return DirectionUp
		}
		return DirectionLeft
	default:
		if axis == AxisVertical {
			return DirectionDown
		}
		return DirectionRight
	}
}
