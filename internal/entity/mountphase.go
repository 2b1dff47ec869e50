package entity

// MountPhaseKind enumerates the stages of a rider's attachment to its
// sled. Mounted carries no timer; the other three each carry one,
// counting frames until the next transition.
type MountPhaseKind int

const (
	// Mounted is the rider's normal, attached state.
	Mounted MountPhaseKind = iota
	// Dismounting counts down the frames before the rider fully
	// separates from the sled.
	Dismounting
	// Dismounted counts down the frames before the rider becomes
	// eligible to remount.
	Dismounted
	// Remounting counts down the frames before the rider is considered
	// fully mounted again.
	Remounting
)

// MountPhase is the rider's current attachment state. Timer is unused when
// Kind is Mounted.
type MountPhase struct {
	Kind  MountPhaseKind
	Timer uint32
}

// NewMounted returns the Mounted phase.
func NewMounted() MountPhase {
	return MountPhase{Kind: Mounted}
}

// NewDismounting returns a Dismounting phase with the given frame count.
func NewDismounting(framesUntilDismounted uint32) MountPhase {
	return MountPhase{Kind: Dismounting, Timer: framesUntilDismounted}
}

// NewDismounted returns a Dismounted phase with the given frame count.
func NewDismounted(framesUntilRemounting uint32) MountPhase {
	return MountPhase{Kind: Dismounted, Timer: framesUntilRemounting}
}

// NewRemounting returns a Remounting phase with the given frame count.
func NewRemounting(framesUntilMounted uint32) MountPhase {
	return MountPhase{Kind: Remounting, Timer: framesUntilMounted}
}

// IsMounted reports whether the phase is Mounted.
func (m MountPhase) IsMounted() bool { return m.Kind == Mounted }

// IsDismounting reports whether the phase is Dismounting.
func (m MountPhase) IsDismounting() bool { return m.Kind == Dismounting }

// IsDismounted reports whether the phase is Dismounted.
func (m MountPhase) IsDismounted() bool { return m.Kind == Dismounted }

// IsRemounting reports whether the phase is Remounting.
func (m MountPhase) IsRemounting() bool { return m.Kind == Remounting }

func saturatingSub(v uint32) uint32 {
	if v == 0 {
		return 0
	}
	return v - 1
}
