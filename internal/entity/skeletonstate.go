package entity

// SkeletonState is the small piece of entity state that outlives any
// single point: the rider's current attachment phase and whether its sled
// is still structurally intact.
type SkeletonState struct {
	mountPhase MountPhase
	sledIntact bool
}

// NewSkeletonState returns a fully mounted, sled-intact starting state.
func NewSkeletonState() SkeletonState {
	return SkeletonState{mountPhase: NewMounted(), sledIntact: true}
}

// MountPhase returns the current attachment phase.
func (s SkeletonState) MountPhase() MountPhase { return s.mountPhase }

// SetMountPhase overwrites the current attachment phase.
func (s *SkeletonState) SetMountPhase(phase MountPhase) { s.mountPhase = phase }

// SledIntact reports whether the sled is still structurally sound.
func (s SkeletonState) SledIntact() bool { return s.sledIntact }

// SetSledIntact overwrites the sled's structural state.
func (s *SkeletonState) SetSledIntact(intact bool) { s.sledIntact = intact }
