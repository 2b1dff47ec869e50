package entity

import "github.com/linerider/trackphysics/internal/geometry"

// JointTemplate links two adjacent bones sharing a point and tests whether
// they've folded past a straight line, which the skeleton treats as a
// structural failure distinct from a bone simply stretching too far.
// Mount joints gate whether the rider stays mounted; the remaining (sled)
// joints gate whether the sled itself stays intact.
type JointTemplate struct {
	boneIDs [2]BoneID
	isMount bool
}

// BoneIDs returns the two bones sharing this joint.
func (j JointTemplate) BoneIDs() (BoneID, BoneID) {
	return j.boneIDs[0], j.boneIDs[1]
}

// IsMount reports whether this joint's failure dismounts the rider (true)
// or breaks the sled (false).
func (j JointTemplate) IsMount() bool {
	return j.isMount
}

// ShouldBreak reports whether the two bones have folded such that their
// direction vectors turn clockwise rather than counterclockwise — the
// skeleton's definition of a joint giving way.
func ShouldBreak(bone0P0, bone0P1, bone1P0, bone1P1 geometry.Point) bool {
	v0 := bone0P1.Sub(bone0P0)
	v1 := bone1P1.Sub(bone1P0)
	return v0.Cross(v1) < 0
}

// JointBuilder constructs a JointTemplate.
type JointBuilder struct {
	boneIDs [2]BoneID
	isMount bool
}

// NewJoint starts a JointBuilder linking bone0 and bone1.
func NewJoint(bone0, bone1 BoneID) *JointBuilder {
	return &JointBuilder{boneIDs: [2]BoneID{bone0, bone1}}
}

// IsMount marks the joint as a mount joint: breaking it dismounts the
// rider rather than breaking the sled.
func (b *JointBuilder) IsMount(isMount bool) *JointBuilder {
	b.isMount = isMount
	return b
}

func (b *JointBuilder) build() JointTemplate {
	return JointTemplate{boneIDs: b.boneIDs, isMount: b.isMount}
}
