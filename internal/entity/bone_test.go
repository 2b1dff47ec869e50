package entity

import (
	"math"
	"testing"

	"github.com/linerider/trackphysics/internal/geometry"
	"github.com/stretchr/testify/assert"
)

func unbreakableBone(p0, p1 PointID, points map[PointID]PointTemplate) BoneTemplate {
	return NewBone(p0, p1).build(points)
}

func TestBoneAdjustedNoChangeAtRest(t *testing.T) {
	t.Parallel()
	points := map[PointID]PointTemplate{
		0: NewPoint(geometry.Point{X: 0, Y: 0}).build(),
		1: NewPoint(geometry.Point{X: 10, Y: 0}).build(),
	}
	bone := unbreakableBone(0, 1, points)

	_, _, changed := bone.Adjusted(geometry.Point{X: 0, Y: 0}, geometry.Point{X: 10, Y: 0}, false)
	assert.False(t, changed)
}

func TestBoneAdjustedPullsTogetherWhenStretched(t *testing.T) {
	t.Parallel()
	points := map[PointID]PointTemplate{
		0: NewPoint(geometry.Point{X: 0, Y: 0}).build(),
		1: NewPoint(geometry.Point{X: 10, Y: 0}).build(),
	}
	bone := unbreakableBone(0, 1, points)

	p0, p1, changed := bone.Adjusted(geometry.Point{X: 0, Y: 0}, geometry.Point{X: 20, Y: 0}, false)
	assert.True(t, changed)
	assert.InDelta(t, 5.0, p0.X, 1e-9)
	assert.InDelta(t, 15.0, p1.X, 1e-9)
}

func TestRepelBoneIgnoresStretch(t *testing.T) {
	t.Parallel()
	points := map[PointID]PointTemplate{
		0: NewPoint(geometry.Point{X: 0, Y: 0}).build(),
		1: NewPoint(geometry.Point{X: 10, Y: 0}).build(),
	}
	bone := NewBone(0, 1).Repel(true).build(points)

	_, _, changed := bone.Adjusted(geometry.Point{X: 0, Y: 0}, geometry.Point{X: 20, Y: 0}, false)
	assert.False(t, changed, "repel bone must not resist stretching past rest length")

	p0, p1, changed := bone.Adjusted(geometry.Point{X: 0, Y: 0}, geometry.Point{X: 5, Y: 0}, false)
	assert.True(t, changed, "repel bone must push apart when compressed")
	assert.True(t, p1.X > 5.0)
	_ = p0
}

func TestBoneDefaultIsUnbreakable(t *testing.T) {
	t.Parallel()
	points := map[PointID]PointTemplate{
		0: NewPoint(geometry.Point{X: 0, Y: 0}).build(),
		1: NewPoint(geometry.Point{X: 10, Y: 0}).build(),
	}
	bone := unbreakableBone(0, 1, points)
	assert.True(t, bone.isUnbreakable())
	assert.False(t, bone.IsBreakable())
	assert.True(t, bone.IsIntact(geometry.Point{X: 0, Y: 0}, geometry.Point{X: 1000, Y: 0}, false))
}

func TestBreakableBoneIntactWithinEndurance(t *testing.T) {
	t.Parallel()
	points := map[PointID]PointTemplate{
		0: NewPoint(geometry.Point{X: 0, Y: 0}).build(),
		1: NewPoint(geometry.Point{X: 10, Y: 0}).build(),
	}
	bone := NewBone(0, 1).Endurance(0.1).build(points)
	assert.True(t, bone.IsBreakable())

	assert.True(t, bone.IsIntact(geometry.Point{X: 0, Y: 0}, geometry.Point{X: 10.5, Y: 0}, false))
	assert.False(t, bone.IsIntact(geometry.Point{X: 0, Y: 0}, geometry.Point{X: 12, Y: 0}, false))
}

func TestBreakableBoneEnduranceScalesWhileRemounting(t *testing.T) {
	t.Parallel()
	points := map[PointID]PointTemplate{
		0: NewPoint(geometry.Point{X: 0, Y: 0}).build(),
		1: NewPoint(geometry.Point{X: 10, Y: 0}).build(),
	}
	bone := NewBone(0, 1).Endurance(0.1).EnduranceRemountFactor(2.0).build(points)

	stretched := geometry.Point{X: 11.5, Y: 0}
	assert.False(t, bone.IsIntact(geometry.Point{X: 0, Y: 0}, stretched, false))
	assert.True(t, bone.IsIntact(geometry.Point{X: 0, Y: 0}, stretched, true), "remount factor should widen tolerated stretch")
}

func TestBoneIsFlutterWhenEitherEndpointNonContact(t *testing.T) {
	t.Parallel()
	points := map[PointID]PointTemplate{
		0: NewPoint(geometry.Point{X: 0, Y: 0}).IsContact(true).build(),
		1: NewPoint(geometry.Point{X: 10, Y: 0}).build(),
	}
	bone := unbreakableBone(0, 1, points)
	assert.True(t, bone.IsFlutter())

	contactPoints := map[PointID]PointTemplate{
		0: NewPoint(geometry.Point{X: 0, Y: 0}).IsContact(true).build(),
		1: NewPoint(geometry.Point{X: 10, Y: 0}).IsContact(true).build(),
	}
	solid := unbreakableBone(0, 1, contactPoints)
	assert.False(t, solid.IsFlutter())
}

func TestJointShouldBreakSignMatchesCross(t *testing.T) {
	t.Parallel()
	// Two bones bent counterclockwise should not break.
	assert.False(t, ShouldBreak(
		geometry.Point{X: 0, Y: 0}, geometry.Point{X: 1, Y: 0},
		geometry.Point{X: 1, Y: 0}, geometry.Point{X: 1, Y: 1},
	))
	// Folded the other way (clockwise) should break.
	assert.True(t, ShouldBreak(
		geometry.Point{X: 0, Y: 0}, geometry.Point{X: 1, Y: 0},
		geometry.Point{X: 1, Y: 0}, geometry.Point{X: 1, Y: -1},
	))
}

func TestRemountVersionPredicatesAndString(t *testing.T) {
	t.Parallel()
	cases := []struct {
		v    RemountVersion
		name string
	}{
		{RemountNone, "None"},
		{RemountComV1, "ComV1"},
		{RemountComV2, "ComV2"},
		{RemountLRA, "LRA"},
	}
	for _, c := range cases {
		assert.Equal(t, c.name, c.v.String())
	}
	assert.True(t, RemountNone.IsNone())
	assert.True(t, RemountComV1.IsComV1())
	assert.True(t, RemountComV2.IsComV2())
	assert.True(t, RemountLRA.IsLRA())
}

func TestSaturatingSubNeverUnderflows(t *testing.T) {
	t.Parallel()
	assert.Equal(t, uint32(0), saturatingSub(0))
	assert.Equal(t, uint32(4), saturatingSub(5))
}

func TestBoneRestLengthUsesInitialLengthFactor(t *testing.T) {
	t.Parallel()
	points := map[PointID]PointTemplate{
		0: NewPoint(geometry.Point{X: 0, Y: 0}).build(),
		1: NewPoint(geometry.Point{X: 10, Y: 0}).build(),
	}
	bone := NewBone(0, 1).InitialLengthFactor(0.5).build(points)
	assert.InDelta(t, 5.0, bone.restLength(), 1e-9)
}

func TestBoneAdjustedHandlesVerticalStretch(t *testing.T) {
	t.Parallel()
	points := map[PointID]PointTemplate{
		0: NewPoint(geometry.Point{X: 0, Y: 0}).build(),
		1: NewPoint(geometry.Point{X: 0, Y: 10}).build(),
	}
	bone := unbreakableBone(0, 1, points)
	p0, p1, changed := bone.Adjusted(geometry.Point{X: 0, Y: 0}, geometry.Point{X: 0, Y: 20}, false)
	assert.True(t, changed)
	assert.InDelta(t, 5.0, p0.Y, 1e-9)
	assert.InDelta(t, 15.0, p1.Y, 1e-9)
	assert.False(t, math.IsNaN(p0.Y))
}
