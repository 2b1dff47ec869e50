package entity

import (
	"math"

	"github.com/linerider/trackphysics/internal/geometry"
)

// BoneTemplate is a distance constraint between two points. Unbreakable
// bones (repel-only or infinite endurance) are relaxed every constraint
// iteration unconditionally; breakable bones are relaxed only while the
// entity is mounted or remounting and dismount the rider once stretched
// past their endurance.
type BoneTemplate struct {
	pointIDs                        [2]PointID
	initialLength                   float64
	isFlutter                       bool
	bias                            float64
	initialLengthFactor             float64
	repelOnly                       bool
	endurance                       float64
	adjustmentStrength              float64
	enduranceRemountFactor          float64
	adjustmentStrengthRemountFactor float64
}

// PointIDs returns the two points this bone connects, in template order.
func (b BoneTemplate) PointIDs() (PointID, PointID) {
	return b.pointIDs[0], b.pointIDs[1]
}

// IsFlutter reports whether this bone connects a non-contact point and is
// therefore relaxed only in the flutter pass.
func (b BoneTemplate) IsFlutter() bool {
	return b.isFlutter
}

// IsRepelOnly reports whether this bone only pushes its endpoints apart
// (never pulls them together).
func (b BoneTemplate) IsRepelOnly() bool {
	return b.repelOnly
}

func (b BoneTemplate) isUnbreakable() bool {
	return b.repelOnly || math.IsInf(b.endurance, 1)
}

// IsBreakable reports whether stretching this bone beyond its endurance
// dismounts the rider.
func (b BoneTemplate) IsBreakable() bool {
	return !b.isUnbreakable()
}

func (b BoneTemplate) restLength() float64 {
	return b.initialLength * b.initialLengthFactor
}

// Adjusted computes the one-iteration distance-constraint correction for
// the bone's two endpoint positions. changed is false when the bone is
// already at rest length, or when it is repel-only and not compressed
// below rest — in both cases the caller must leave the points untouched.
func (b BoneTemplate) Adjusted(p0, p1 geometry.Point, isRemounting bool) (newP0, newP1 geometry.Point, changed bool) {
	v := p1.Sub(p0)
	length := v.Length()
	rest := b.restLength()

	if length == rest {
		return p0, p1, false
	}
	if b.repelOnly && length >= rest {
		return p0, p1, false
	}

	diff := (length - rest) / length
	strength := b.adjustmentStrength
	if isRemounting {
		strength *= b.adjustmentStrengthRemountFactor
	}

	newP0 = p0.Translate(v.Scale(diff * b.bias * strength))
	newP1 = p1.Translate(v.Scale(-diff * (1 - b.bias) * strength))
	return newP0, newP1, true
}

// IsIntact reports whether the bone's current stretch, expressed as a
// fraction of its rest length, stays within its endurance — scaled by
// enduranceRemountFactor while the skeleton is remounting. Unbreakable
// bones are always intact.
func (b BoneTemplate) IsIntact(p0, p1 geometry.Point, isRemounting bool) bool {
	if b.isUnbreakable() {
		return true
	}

	length := p1.Sub(p0).Length()
	rest := b.restLength()
	endurance := b.endurance
	if isRemounting {
		endurance *= b.enduranceRemountFactor
	}

	stretchRatio := math.Abs(length-rest) / rest
	return stretchRatio <= endurance
}

// BoneBuilder constructs a BoneTemplate. Defaults match the original
// skeleton format: bias 0.5, initial length factor 1.0, infinite
// endurance (unbreakable), adjustment strength 1.0, remount factors 1.0.
type BoneBuilder struct {
	pointIDs                        [2]PointID
	bias                            *float64
	initialLengthFactor             *float64
	repelOnly                       bool
	endurance                       *float64
	adjustmentStrength              *float64
	enduranceRemountFactor          *float64
	adjustmentStrengthRemountFactor *float64
}

// NewBone starts a BoneBuilder connecting p0 and p1.
func NewBone(p0, p1 PointID) *BoneBuilder {
	return &BoneBuilder{pointIDs: [2]PointID{p0, p1}}
}

// Bias sets how much of the constraint correction is applied to p0 versus
// p1 (0 moves only p1, 1 moves only p0).
func (b *BoneBuilder) Bias(bias float64) *BoneBuilder {
	b.bias = &bias
	return b
}

// InitialLengthFactor scales the bone's captured rest length.
func (b *BoneBuilder) InitialLengthFactor(factor float64) *BoneBuilder {
	b.initialLengthFactor = &factor
	return b
}

// Repel marks the bone as repel-only: it pushes its endpoints apart when
// compressed below rest length but never pulls them together.
func (b *BoneBuilder) Repel(repel bool) *BoneBuilder {
	b.repelOnly = repel
	return b
}

// Endurance sets the fractional stretch the bone tolerates before it
// breaks. Omitting this leaves the bone unbreakable.
func (b *BoneBuilder) Endurance(endurance float64) *BoneBuilder {
	b.endurance = &endurance
	return b
}

// AdjustmentStrength scales how much of the computed correction is
// actually applied per iteration.
func (b *BoneBuilder) AdjustmentStrength(strength float64) *BoneBuilder {
	b.adjustmentStrength = &strength
	return b
}

// EnduranceRemountFactor scales endurance while the skeleton is remounting.
func (b *BoneBuilder) EnduranceRemountFactor(factor float64) *BoneBuilder {
	b.enduranceRemountFactor = &factor
	return b
}

// AdjustmentStrengthRemountFactor scales adjustment strength while the
// skeleton is remounting.
func (b *BoneBuilder) AdjustmentStrengthRemountFactor(factor float64) *BoneBuilder {
	b.adjustmentStrengthRemountFactor = &factor
	return b
}

func (b *BoneBuilder) build(points map[PointID]PointTemplate) BoneTemplate {
	p0 := points[b.pointIDs[0]]
	p1 := points[b.pointIDs[1]]

	return BoneTemplate{
		pointIDs:                        b.pointIDs,
		initialLength:                   p1.InitialPosition().Sub(p0.InitialPosition()).Length(),
		isFlutter:                       !(p0.IsContact() && p1.IsContact()),
		bias:                            floatOr(b.bias, 0.5),
		initialLengthFactor:             floatOr(b.initialLengthFactor, 1.0),
		repelOnly:                       b.repelOnly,
		endurance:                       floatOr(b.endurance, math.Inf(1)),
		adjustmentStrength:              floatOr(b.adjustmentStrength, 1.0),
		enduranceRemountFactor:          floatOr(b.enduranceRemountFactor, 1.0),
		adjustmentStrengthRemountFactor: floatOr(b.adjustmentStrengthRemountFactor, 1.0),
	}
}

func floatOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}
