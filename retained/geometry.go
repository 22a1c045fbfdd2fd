// Package retained is the small retained-mode scene graph a scroll region is
// hosted in: nodes with preferred sizes, a layout/measurement provider,
// instantiation and resource lookup, pointer events, easing and the frame loop.
package retained

import "math"

// ============================================================================
// Geometry
// ============================================================================

// Vec2 is a 2D point or extent in local units.
type Vec2 struct {
	X, Y float32
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v * s.
func (v Vec2) Scale(s float32) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Len returns the Euclidean length.
func (v Vec2) Len() float32 {
	return float32(math.Hypot(float64(v.X), float64(v.Y)))
}

// Axis selects a component of a Vec2.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
)

// Get returns the component along axis.
func (v Vec2) Get(axis Axis) float32 {
	if axis == AxisY {
		return v.Y
	}
	return v.X
}

// With returns v with the component along axis replaced.
func (v Vec2) With(axis Axis, value float32) Vec2 {
	if axis == AxisY {
		v.Y = value
	} else {
		v.X = value
	}
	return v
}

// Rect is an axis-aligned box. Y grows downward, as on screen.
type Rect struct {
	X, Y          float32
	Width, Height float32
}

// RectFromMinMax builds a rect spanning min to max.
func RectFromMinMax(min, max Vec2) Rect {
	return Rect{X: min.X, Y: min.Y, Width: max.X - min.X, Height: max.Y - min.Y}
}

// Min returns the top-left corner.
func (r Rect) Min() Vec2 { return Vec2{r.X, r.Y} }

// Max returns the bottom-right corner.
func (r Rect) Max() Vec2 { return Vec2{r.X + r.Width, r.Y + r.Height} }

// Size returns the extent.
func (r Rect) Size() Vec2 { return Vec2{r.Width, r.Height} }

// Center returns the midpoint.
func (r Rect) Center() Vec2 { return Vec2{r.X + r.Width/2, r.Y + r.Height/2} }

// Empty reports whether the rect has no area.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Translate returns r moved by d.
func (r Rect) Translate(d Vec2) Rect {
	r.X += d.X
	r.Y += d.Y
	return r
}

// Contains reports whether p is inside r.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Intersects reports whether r and o overlap.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.Width && o.X < r.X+r.Width && r.Y < o.Y+o.Height && o.Y < r.Y+r.Height
}

// Union returns the smallest rect containing both.
func (r Rect) Union(o Rect) Rect {
	minX := min(r.X, o.X)
	minY := min(r.Y, o.Y)
	maxX := max(r.X+r.Width, o.X+o.Width)
	maxY := max(r.Y+r.Height, o.Y+o.Height)
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Span returns the [min, max] extent of r along axis.
func (r Rect) Span(axis Axis) (lo, hi float32) {
	if axis == AxisY {
		return r.Y, r.Y + r.Height
	}
	return r.X, r.X + r.Width
}

// Extent returns the size of r along axis.
func (r Rect) Extent(axis Axis) float32 {
	if axis == AxisY {
		return r.Height
	}
	return r.Width
}

// lerp performs linear interpolation between a and b.
func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// Lerp performs linear interpolation between a and b.
func Lerp(a, b, t float32) float32 { return lerp(a, b, t) }

// clamp restricts v to [lo, hi].
func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float32) float32 { return clamp(v, lo, hi) }
