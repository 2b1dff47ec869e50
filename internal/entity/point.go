package entity

import "github.com/linerider/trackphysics/internal/geometry"

// PointTemplate is the immutable description of one skeleton point: its
// rest position relative to the skeleton's origin, whether it participates
// in line collision, and its two independent friction coefficients.
// PointTemplate implements physline.ColliderProps so the physics line
// package never needs to import this one.
type PointTemplate struct {
	initialPosition geometry.Point
	isContact       bool
	contactFriction float64
	airFriction     float64
}

// InitialPosition returns the point's rest position before any instance
// offset is applied.
func (p PointTemplate) InitialPosition() geometry.Point {
	return p.initialPosition
}

// IsContact reports whether this point is tested against the line grid.
func (p PointTemplate) IsContact() bool {
	return p.isContact
}

// CanCollide implements physline.ColliderProps.
func (p PointTemplate) CanCollide() bool {
	return p.isContact
}

// Friction implements physline.ColliderProps.
func (p PointTemplate) Friction() float64 {
	return p.contactFriction
}

// AirFriction returns the fraction of momentum velocity lost every frame
// (applied regardless of collision).
func (p PointTemplate) AirFriction() float64 {
	return p.airFriction
}

// PointBuilder constructs a PointTemplate with the teacher's builder-method
// chaining style; unset fields keep their zero value (non-contact, no
// friction).
type PointBuilder struct {
	initialPosition geometry.Point
	isContact       bool
	contactFriction float64
	airFriction     float64
}

// NewPoint starts a PointBuilder at the given rest position.
func NewPoint(initialPosition geometry.Point) *PointBuilder {
	return &PointBuilder{initialPosition: initialPosition}
}

// IsContact marks the point as participating in line collision.
func (b *PointBuilder) IsContact(isContact bool) *PointBuilder {
	b.isContact = isContact
	return b
}

// ContactFriction sets the friction coefficient applied on line collision.
func (b *PointBuilder) ContactFriction(friction float64) *PointBuilder {
	b.contactFriction = friction
	return b
}

// AirFriction sets the fraction of velocity lost to drag every frame.
func (b *PointBuilder) AirFriction(friction float64) *PointBuilder {
	b.airFriction = friction
	return b
}

func (b *PointBuilder) build() PointTemplate {
	return PointTemplate{
		initialPosition: b.initialPosition,
		isContact:       b.isContact,
		contactFriction: b.contactFriction,
		airFriction:     b.airFriction,
	}
}
