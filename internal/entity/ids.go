package entity

// PointID, BoneID, and JointID are dense, per-template identifiers. Using
// small integer ids instead of pointers keeps skeleton templates and
// states trivially copyable and keeps iteration order explicit rather
// than incidental to a graph's memory layout.
type (
	PointID uint32
	BoneID  uint32
	JointID uint32
)

// TemplateID identifies a registered SkeletonTemplate.
type TemplateID uint32

// EntityID identifies a created entity within a Registry.
type EntityID uint32
