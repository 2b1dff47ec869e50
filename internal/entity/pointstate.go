package entity

import "github.com/linerider/trackphysics/internal/geometry"

// PointState is the per-frame, per-point verlet state: the true position,
// its velocity (tracked for callers and for collision approach tests,
// though the integrator derives motion from position/previousPosition),
// and the computed previous position — an independently perturbable
// back-integration anchor, not simply the prior frame's true position.
// PointState implements physline.ColliderState.
type PointState struct {
	position         geometry.Point
	velocity         geometry.Vector
	previousPosition geometry.Point
}

// NewPointState returns the initial state for a point placed at position
// with no velocity and no prior displacement.
func NewPointState(position geometry.Point) PointState {
	return PointState{position: position, velocity: geometry.ZeroVector, previousPosition: position}
}

// Position implements physline.ColliderState.
func (s PointState) Position() geometry.Point { return s.position }

// Velocity implements physline.ColliderState.
func (s PointState) Velocity() geometry.Vector { return s.velocity }

// PreviousPosition implements physline.ColliderState.
func (s PointState) PreviousPosition() geometry.Point { return s.previousPosition }

// SetPosition overwrites the point's true position.
func (s *PointState) SetPosition(p geometry.Point) { s.position = p }

// SetVelocity overwrites the point's tracked velocity.
func (s *PointState) SetVelocity(v geometry.Vector) { s.velocity = v }

// SetPreviousPosition overwrites the point's computed previous position.
func (s *PointState) SetPreviousPosition(p geometry.Point) { s.previousPosition = p }
