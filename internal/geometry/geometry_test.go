package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPointSub(t *testing.T) {
	t.Parallel()
	p := Point{3, 5}
	q := Point{1, 2}
	assert.Equal(t, Vector{2, 3}, p.Sub(q))
}

func TestPointTranslate(t *testing.T) {
	t.Parallel()
	p := Point{1, 1}
	got := p.Translate(Vector{2, -3})
	assert.Equal(t, Point{3, -2}, got)
}

func TestVectorDotCross(t *testing.T) {
	t.Parallel()
	v := Vector{1, 0}
	w := Vector{0, 1}
	assert.Equal(t, 0.0, v.Dot(w))
	assert.Equal(t, 1.0, v.Cross(w))
	assert.Equal(t, -1.0, w.Cross(v))
}

func TestVectorLength(t *testing.T) {
	t.Parallel()
	v := Vector{3, 4}
	assert.Equal(t, 25.0, v.LengthSquared())
	assert.Equal(t, 5.0, v.Length())
}

func TestVectorUnit(t *testing.T) {
	t.Parallel()
	v := Vector{0, 5}
	u := v.Unit()
	assert.InDelta(t, 0.0, u.X, 1e-12)
	assert.InDelta(t, 1.0, u.Y, 1e-12)
}

func TestVectorRotate(t *testing.T) {
	t.Parallel()
	v := Vector{1, 0}
	cw := v.RotateCW()
	ccw := v.RotateCCW()
	assert.Equal(t, Vector{0, -1}, cw)
	assert.Equal(t, Vector{0, 1}, ccw)
	assert.InDelta(t, 0.0, cw.Add(ccw).Length(), 1e-12)
}

func TestLineVectorAndLength(t *testing.T) {
	t.Parallel()
	l := Line{P0: Point{0, 0}, P1: Point{3, 4}}
	assert.Equal(t, Vector{3, 4}, l.Vector())
	assert.Equal(t, 5.0, l.Length())
}

func TestVectorNegate(t *testing.T) {
	t.Parallel()
	v := Vector{2, -3}
	assert.Equal(t, Vector{-2, 3}, v.Negate())
}

func TestCrossUnchangedUnderDoubleNegation(t *testing.T) {
	t.Parallel()
	a := Vector{2, 1}
	b := Vector{-1, 3}
	assert.InDelta(t, a.Cross(b), a.Negate().Cross(b.Negate()), 1e-12)
}

func TestRotateIsQuarterTurn(t *testing.T) {
	t.Parallel()
	v := Vector{2, 3}
	full := v.RotateCW().RotateCW().RotateCW().RotateCW()
	assert.InDelta(t, v.X, full.X, 1e-9)
	assert.InDelta(t, v.Y, full.Y, 1e-9)
}

func TestLengthMatchesMath(t *testing.T) {
	t.Parallel()
	v := Vector{7, -2}
	assert.InDelta(t, math.Hypot(7, -2), v.Length(), 1e-12)
}
