// Package geometry provides the 2D primitives shared by the spatial grid,
// the physics line collider and the skeleton solver: points, vectors,
// line segments and axis-aligned rectangles, plus the handful of vector
// operations (dot, cross, rotate, length) the rest of the engine builds on.
package geometry

import "math"

// Point is a position in world space.
type Point struct {
	X, Y float64
}

// Vector is a displacement or velocity in world space.
type Vector struct {
	X, Y float64
}

// Zero is the origin.
var Zero = Point{}

// ZeroVector is the additive identity.
var ZeroVector = Vector{}

// Sub returns the vector from q to p (p - q).
func (p Point) Sub(q Point) Vector {
	return Vector{p.X - q.X, p.Y - q.Y}
}

// Translate returns p + v.
func (p Point) Translate(v Vector) Point {
	return Point{p.X + v.X, p.Y + v.Y}
}

// Scale scales p's coordinates as if it were a vector from the origin.
// Used by the grid to compute cell-relative world positions.
func (p Point) Scale(s float64) Point {
	return Point{p.X * s, p.Y * s}
}

// Add returns v + w.
func (v Vector) Add(w Vector) Vector {
	return Vector{v.X + w.X, v.Y + w.Y}
}

// Scale returns v scaled by s.
func (v Vector) Scale(s float64) Vector {
	return Vector{v.X * s, v.Y * s}
}

// Negate returns -v.
func (v Vector) Negate() Vector {
	return Vector{-v.X, -v.Y}
}

// Dot returns the dot product v·w.
func (v Vector) Dot(w Vector) float64 {
	return v.X*w.X + v.Y*w.Y
}

// Cross returns the scalar z-component of the 2D cross product v×w.
func (v Vector) Cross(w Vector) float64 {
	return v.X*w.Y - v.Y*w.X
}

// LengthSquared returns v·v.
func (v Vector) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Length returns |v|.
func (v Vector) Length() float64 {
	return math.Sqrt(v.LengthSquared())
}

// Unit returns v normalized to length 1. Callers must not invoke this on a
// zero-length vector; physics lines and bones are built with the guarantee
// that their defining points are distinct.
func (v Vector) Unit() Vector {
	return v.Scale(1.0 / v.Length())
}

// RotateCW rotates v 90 degrees clockwise.
func (v Vector) RotateCW() Vector {
	return Vector{v.Y, -v.X}
}

// RotateCCW rotates v 90 degrees counter-clockwise.
func (v Vector) RotateCCW() Vector {
	return Vector{-v.Y, v.X}
}

// Line is a directed segment from P0 to P1.
type Line struct {
	P0, P1 Point
}

// Vector returns P1 - P0.
func (l Line) Vector() Vector {
	return l.P1.Sub(l.P0)
}

// Length returns the segment's length.
func (l Line) Length() float64 {
	return l.Vector().Length()
}

// Rectangle is an axis-aligned rectangle described by two opposite corners.
// The corners are not required to be ordered; BottomLeft/TopRight are the
// caller's intended reading, not an enforced invariant.
type Rectangle struct {
	BottomLeft, TopRight Point
}
