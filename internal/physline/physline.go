// Package physline implements the precomputed static collision line used
// by the per-frame step: a PhysicsLine caches the geometry derived from a
// track line's endpoints and flags (normal, extension limits, acceleration)
// so that collision testing against a point never recomputes a square root
// or division on the hot path.
package physline

import (
	"math"

	"github.com/linerider/trackphysics/internal/geometry"
)

const (
	defaultHeight      = 10.0
	maxExtensionSize   = 0.25
	accelerationFactor = 0.1
)

// ColliderProps is the per-point, mostly-static data a PhysicsLine needs to
// decide whether a point can interact with it at all. Implemented by the
// entity package's point templates so physline never imports entity.
type ColliderProps interface {
	CanCollide() bool
	Friction() float64
}

// ColliderState is the per-point, per-frame data a PhysicsLine needs to
// test and resolve a collision. PreviousPosition is the verlet-integration
// "computed previous position", not necessarily position minus velocity:
// friction and line acceleration perturb it independently of the point's
// true prior position.
type ColliderState interface {
	Position() geometry.Point
	Velocity() geometry.Vector
	PreviousPosition() geometry.Point
}

// PhysicsLine is a track line's precomputed collision geometry. Endpoints
// and flags are mutable; every setter recomputes the derived fields so
// CheckInteraction never observes a stale cache.
type PhysicsLine struct {
	endpoints      geometry.Line
	flipped        bool
	leftExtension  bool
	rightExtension bool
	height         float64
	multiplier     float64

	inverseLengthSquared float64
	normalUnit           geometry.Vector
	leftLimit            float64
	rightLimit           float64
	accelerationVector   geometry.Vector
}

// New builds a PhysicsLine with the default height (10.0) and zero
// acceleration multiplier, then computes its derived geometry.
func New(endpoints geometry.Line, flipped, leftExtension, rightExtension bool) *PhysicsLine {
	l := &PhysicsLine{
		endpoints:      endpoints,
		flipped:        flipped,
		leftExtension:  leftExtension,
		rightExtension: rightExtension,
		height:         defaultHeight,
		multiplier:     0.0,
	}
	l.recomputeProps()
	return l
}

// Endpoints returns the line's current segment.
func (l *PhysicsLine) Endpoints() geometry.Line {
	return l.endpoints
}

// SetEndpoints updates the segment and recomputes derived geometry.
func (l *PhysicsLine) SetEndpoints(endpoints geometry.Line) {
	l.endpoints = endpoints
	l.recomputeProps()
}

// Flipped reports whether the line's collision normal points to the
// clockwise side of its direction vector rather than the counterclockwise
// side.
func (l *PhysicsLine) Flipped() bool {
	return l.flipped
}

// SetFlipped updates the flip flag and recomputes derived geometry.
func (l *PhysicsLine) SetFlipped(flipped bool) {
	l.flipped = flipped
	l.recomputeProps()
}

// LeftExtension reports whether the collidable region extends past the
// line's P0 end.
func (l *PhysicsLine) LeftExtension() bool {
	return l.leftExtension
}

// SetLeftExtension updates the left-extension flag and recomputes derived
// geometry.
func (l *PhysicsLine) SetLeftExtension(leftExtension bool) {
	l.leftExtension = leftExtension
	l.recomputeProps()
}

// RightExtension reports whether the collidable region extends past the
// line's P1 end.
func (l *PhysicsLine) RightExtension() bool {
	return l.rightExtension
}

// SetRightExtension updates the right-extension flag and recomputes
// derived geometry.
func (l *PhysicsLine) SetRightExtension(rightExtension bool) {
	l.rightExtension = rightExtension
	l.recomputeProps()
}

// Height returns the line's hitbox height.
func (l *PhysicsLine) Height() float64 {
	return l.height
}

// SetHeight updates the hitbox height and recomputes derived geometry.
func (l *PhysicsLine) SetHeight(height float64) {
	l.height = height
	l.recomputeProps()
}

// Multiplier returns the line's acceleration multiplier.
func (l *PhysicsLine) Multiplier() float64 {
	return l.multiplier
}

// SetAccelMultiplier updates the acceleration multiplier and recomputes
// derived geometry.
func (l *PhysicsLine) SetAccelMultiplier(multiplier float64) {
	l.multiplier = multiplier
	l.recomputeProps()
}

// CheckInteraction tests whether point is currently colliding with l and,
// if so, returns the corrected (position, previousPosition) pair the
// caller should write back onto the point's state. It returns ok=false
// when there is no collision, in which case the point's state must be
// left untouched.
func (l *PhysicsLine) CheckInteraction(point ColliderProps, state ColliderState) (newPosition, newPreviousPosition geometry.Point, ok bool) {
	if !point.CanCollide() {
		return geometry.Point{}, geometry.Point{}, false
	}

	offsetFromPoint := state.Position().Sub(l.endpoints.P0)
	movingIntoLine := l.normalUnit.Dot(state.Velocity()) > 0.0
	distanceFromLineTop := l.normalUnit.Dot(offsetFromPoint)
	positionBetweenEnds := l.endpoints.Vector().Dot(offsetFromPoint) * l.inverseLengthSquared

	if !(movingIntoLine &&
		0.0 < distanceFromLineTop && distanceFromLineTop < l.height &&
		l.leftLimit <= positionBetweenEnds && positionBetweenEnds <= l.rightLimit) {
		return geometry.Point{}, geometry.Point{}, false
	}

	newPosition = state.Position().Translate(l.normalUnit.Scale(-distanceFromLineTop))

	frictionXFlipped := 1.0
	if state.PreviousPosition().X >= newPosition.X {
		frictionXFlipped = -1.0
	}
	frictionYFlipped := 1.0
	if state.PreviousPosition().Y < newPosition.Y {
		frictionYFlipped = -1.0
	}

	initialFrictionVector := l.normalUnit.RotateCW().Scale(point.Friction() * distanceFromLineTop)
	frictionVector := geometry.Vector{
		X: frictionXFlipped * initialFrictionVector.X,
		Y: frictionYFlipped * initialFrictionVector.Y,
	}

	newPreviousPosition = state.PreviousPosition().
		Translate(frictionVector).
		Translate(l.accelerationVector.Negate())

	return newPosition, newPreviousPosition, true
}

func (l *PhysicsLine) recomputeProps() {
	vector := l.endpoints.Vector()
	length := vector.Length()
	l.inverseLengthSquared = 1.0 / vector.LengthSquared()
	unit := vector.Scale(1.0 / length)

	if l.flipped {
		l.normalUnit = unit.RotateCW()
	} else {
		l.normalUnit = unit.RotateCCW()
	}

	extensionRatio := math.Min(maxExtensionSize, l.height/length)

	if l.leftExtension {
		l.leftLimit = -extensionRatio
	} else {
		l.leftLimit = 0.0
	}

	if l.rightExtension {
		l.rightLimit = 1.0 + extensionRatio
	} else {
		l.rightLimit = 1.0
	}

	l.accelerationVector = unit.Scale(l.multiplier * accelerationFactor)
}
