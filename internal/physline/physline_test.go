package physline

import (
	"testing"

	"github.com/linerider/trackphysics/internal/geometry"
	"github.com/stretchr/testify/assert"
)

type fakeProps struct {
	canCollide bool
	friction   float64
}

func (p fakeProps) CanCollide() bool  { return p.canCollide }
func (p fakeProps) Friction() float64 { return p.friction }

type fakeState struct {
	position, previousPosition geometry.Point
	velocity                   geometry.Vector
}

func (s fakeState) Position() geometry.Point         { return s.position }
func (s fakeState) Velocity() geometry.Vector        { return s.velocity }
func (s fakeState) PreviousPosition() geometry.Point { return s.previousPosition }

func flatLine() *PhysicsLine {
	return New(geometry.Line{P0: geometry.Point{X: -10, Y: 0}, P1: geometry.Point{X: 10, Y: 0}}, false, false, false)
}

func TestCheckInteractionIgnoresNonColliders(t *testing.T) {
	t.Parallel()
	line := flatLine()
	props := fakeProps{canCollide: false, friction: 0}
	state := fakeState{position: geometry.Point{X: 0, Y: 1}, velocity: geometry.Vector{X: 0, Y: 1}}
	_, _, ok := line.CheckInteraction(props, state)
	assert.False(t, ok)
}

func TestCheckInteractionCatchesFallingPoint(t *testing.T) {
	t.Parallel()
	line := flatLine()
	props := fakeProps{canCollide: true, friction: 0}
	state := fakeState{
		position:         geometry.Point{X: 0, Y: 1},
		previousPosition: geometry.Point{X: 0, Y: 3},
		velocity:         geometry.Vector{X: 0, Y: 2},
	}
	pos, prevPos, ok := line.CheckInteraction(props, state)
	assert.True(t, ok)
	assert.InDelta(t, 0.0, pos.Y, 1e-9)
	assert.InDelta(t, 0.0, pos.X, 1e-9)
	_ = prevPos
}

func TestCheckInteractionMissesBeyondHeight(t *testing.T) {
	t.Parallel()
	line := flatLine()
	props := fakeProps{canCollide: true, friction: 0}
	state := fakeState{
		position: geometry.Point{X: 0, Y: 50},
		velocity: geometry.Vector{X: 0, Y: 1},
	}
	_, _, ok := line.CheckInteraction(props, state)
	assert.False(t, ok, "point far above the line's hitbox height should not collide")
}

func TestCheckInteractionMissesOutsideLimits(t *testing.T) {
	t.Parallel()
	line := flatLine()
	props := fakeProps{canCollide: true, friction: 0}
	state := fakeState{
		position: geometry.Point{X: 100, Y: 1},
		velocity: geometry.Vector{X: 0, Y: 1},
	}
	_, _, ok := line.CheckInteraction(props, state)
	assert.False(t, ok, "point past the right end with no extension should not collide")
}

func TestRightExtensionAllowsBeyondEndpoint(t *testing.T) {
	t.Parallel()
	line := New(geometry.Line{P0: geometry.Point{X: -10, Y: 0}, P1: geometry.Point{X: 10, Y: 0}}, false, false, true)
	props := fakeProps{canCollide: true, friction: 0}
	state := fakeState{
		position: geometry.Point{X: 10.5, Y: 1},
		velocity: geometry.Vector{X: 0, Y: 1},
	}
	_, _, ok := line.CheckInteraction(props, state)
	assert.True(t, ok)
}

func TestFrictionSignFlipsOnApproachDirection(t *testing.T) {
	t.Parallel()
	line := flatLine()
	props := fakeProps{canCollide: true, friction: 0.5}

	stateApproachingFromLeft := fakeState{
		position:         geometry.Point{X: 0, Y: 1},
		previousPosition: geometry.Point{X: -1, Y: 3},
		velocity:         geometry.Vector{X: 0, Y: 2},
	}
	_, prevLeft, ok := line.CheckInteraction(props, stateApproachingFromLeft)
	assert.True(t, ok)

	stateApproachingFromRight := fakeState{
		position:         geometry.Point{X: 0, Y: 1},
		previousPosition: geometry.Point{X: 1, Y: 3},
		velocity:         geometry.Vector{X: 0, Y: 2},
	}
	_, prevRight, ok := line.CheckInteraction(props, stateApproachingFromRight)
	assert.True(t, ok)

	assert.NotEqual(t, prevLeft.X, prevRight.X, "friction's x sign flip should depend on approach side")
}

func TestSetHeightUpdatesHeight(t *testing.T) {
	t.Parallel()
	line := flatLine()
	before := line.Height()
	line.SetHeight(20)
	assert.NotEqual(t, before, line.Height())
	assert.Equal(t, 20.0, line.Height())
}

func TestFlippedInvertsNormalDirection(t *testing.T) {
	t.Parallel()
	plain := flatLine()
	flipped := New(plain.Endpoints(), true, false, false)
	assert.NotEqual(t, plain.normalUnit, flipped.normalUnit)
	assert.InDelta(t, plain.normalUnit.X, -flipped.normalUnit.X, 1e-9)
	assert.InDelta(t, plain.normalUnit.Y, -flipped.normalUnit.Y, 1e-9)
}
