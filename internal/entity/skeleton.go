package entity

// SledPointIDs names the four points that make up the sled: swapping a
// sled on remount exchanges exactly these four points' per-frame state,
// regardless of how many other points the skeleton has.
type SledPointIDs struct {
	Peg    PointID
	Tail   PointID
	Nose   PointID
	String PointID
}

// points returns the four sled point ids in a fixed, deterministic order.
func (s SledPointIDs) points() [4]PointID {
	return [4]PointID{s.Peg, s.Tail, s.Nose, s.String}
}

// SkeletonTemplate is the immutable shape of an entity: its points, bones,
// and joints, each kept both as a lookup map and as an insertion-ordered
// slice since every solve pass must iterate in template order for
// frame-to-frame determinism.
type SkeletonTemplate struct {
	points     map[PointID]PointTemplate
	pointOrder []PointID

	bones     map[BoneID]BoneTemplate
	boneOrder []BoneID

	joints     map[JointID]JointTemplate
	jointOrder []JointID

	dismountedTimer uint32
	remountingTimer uint32
	mountedTimer    uint32
	remountVersion  RemountVersion
	sledPoints      SledPointIDs
}

// Points returns the point ids in template (insertion) order.
func (t *SkeletonTemplate) Points() []PointID {
	return append([]PointID(nil), t.pointOrder...)
}

// Point returns the template for the given point id.
func (t *SkeletonTemplate) Point(id PointID) PointTemplate {
	return t.points[id]
}

// Bones returns the bone ids in template (insertion) order.
func (t *SkeletonTemplate) Bones() []BoneID {
	return append([]BoneID(nil), t.boneOrder...)
}

// Bone returns the template for the given bone id.
func (t *SkeletonTemplate) Bone(id BoneID) BoneTemplate {
	return t.bones[id]
}

// Joints returns the joint ids in template (insertion) order.
func (t *SkeletonTemplate) Joints() []JointID {
	return append([]JointID(nil), t.jointOrder...)
}

// Joint returns the template for the given joint id.
func (t *SkeletonTemplate) Joint(id JointID) JointTemplate {
	return t.joints[id]
}

// RemountVersion returns the rule set this skeleton follows on dismount.
func (t *SkeletonTemplate) RemountVersion() RemountVersion {
	return t.remountVersion
}

// SledPoints returns the four points swapped on a sled remount.
func (t *SkeletonTemplate) SledPoints() SledPointIDs {
	return t.sledPoints
}

// SkeletonTemplateBuilder assembles a SkeletonTemplate, handing out dense
// ids for each point/bone/joint as it's added.
type SkeletonTemplateBuilder struct {
	points     map[PointID]PointTemplate
	pointOrder []PointID

	boneBuilders map[BoneID]*BoneBuilder
	boneOrder    []BoneID

	jointBuilders map[JointID]*JointBuilder
	jointOrder    []JointID

	dismountedTimer uint32
	remountingTimer uint32
	mountedTimer    uint32
	remountVersion  RemountVersion
	sledPoints      SledPointIDs
}

// NewSkeleton starts a SkeletonTemplateBuilder.
func NewSkeleton() *SkeletonTemplateBuilder {
	return &SkeletonTemplateBuilder{
		points:        make(map[PointID]PointTemplate),
		boneBuilders:  make(map[BoneID]*BoneBuilder),
		jointBuilders: make(map[JointID]*JointBuilder),
	}
}

// AddPoint builds and registers a point, returning its dense id.
func (b *SkeletonTemplateBuilder) AddPoint(point *PointBuilder) PointID {
	id := PointID(len(b.pointOrder))
	b.points[id] = point.build()
	b.pointOrder = append(b.pointOrder, id)
	return id
}

// AddBone registers a bone builder, returning its dense id. The bone
// template itself is built lazily in Build, once every point it
// references is known.
func (b *SkeletonTemplateBuilder) AddBone(bone *BoneBuilder) BoneID {
	id := BoneID(len(b.boneOrder))
	b.boneBuilders[id] = bone
	b.boneOrder = append(b.boneOrder, id)
	return id
}

// AddJoint registers a joint builder, returning its dense id.
func (b *SkeletonTemplateBuilder) AddJoint(joint *JointBuilder) JointID {
	id := JointID(len(b.jointOrder))
	b.jointBuilders[id] = joint
	b.jointOrder = append(b.jointOrder, id)
	return id
}

// DismountedTimer sets the frame count a Dismounting transition counts
// down to before becoming Dismounted.
func (b *SkeletonTemplateBuilder) DismountedTimer(frames uint32) *SkeletonTemplateBuilder {
	b.dismountedTimer = frames
	return b
}

// RemountingTimer sets the frame count a Dismounted transition counts
// down to before becoming Remounting.
func (b *SkeletonTemplateBuilder) RemountingTimer(frames uint32) *SkeletonTemplateBuilder {
	b.remountingTimer = frames
	return b
}

// MountedTimer sets the frame count a Remounting transition counts down
// to before becoming Mounted.
func (b *SkeletonTemplateBuilder) MountedTimer(frames uint32) *SkeletonTemplateBuilder {
	b.mountedTimer = frames
	return b
}

// RemountVersion sets the dismount/remount rule set this skeleton follows.
func (b *SkeletonTemplateBuilder) RemountVersion(version RemountVersion) *SkeletonTemplateBuilder {
	b.remountVersion = version
	return b
}

// SledPoints designates the four points swapped on a sled remount.
func (b *SkeletonTemplateBuilder) SledPoints(sled SledPointIDs) *SkeletonTemplateBuilder {
	b.sledPoints = sled
	return b
}

// Build finalizes the template, resolving each bone's rest length and
// flutter status against the now-complete point set.
func (b *SkeletonTemplateBuilder) Build() *SkeletonTemplate {
	bones := make(map[BoneID]BoneTemplate, len(b.boneBuilders))
	for id, bb := range b.boneBuilders {
		bones[id] = bb.build(b.points)
	}

	joints := make(map[JointID]JointTemplate, len(b.jointBuilders))
	for id, jb := range b.jointBuilders {
		joints[id] = jb.build()
	}

	return &SkeletonTemplate{
		points:          b.points,
		pointOrder:      b.pointOrder,
		bones:           bones,
		boneOrder:       b.boneOrder,
		joints:          joints,
		jointOrder:      b.jointOrder,
		dismountedTimer: b.dismountedTimer,
		remountingTimer: b.remountingTimer,
		mountedTimer:    b.mountedTimer,
		remountVersion:  b.remountVersion,
		sledPoints:      b.sledPoints,
	}
}
