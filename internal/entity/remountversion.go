package entity

// RemountVersion selects which dismount/remount rule set a skeleton
// follows. The versions were introduced incrementally, each changing how
// aggressively a broken mount or sled recovers.
type RemountVersion int

const (
	// RemountNone never lets a dismounted rider remount.
	RemountNone RemountVersion = iota
	// RemountComV1 allows remounting and restores sled points on a
	// successful swap, but never touches the sled_intact bit.
	RemountComV1
	// RemountComV2 allows remounting and restores sled point state
	// (position, velocity, previous position) and sled_intact together.
	RemountComV2
	// RemountLRA additionally latches the mount phase observed at the
	// start of a frame across the whole bone pass, and forces an
	// immediate dismount whenever the sled is no longer intact.
	RemountLRA
)

// IsNone reports whether remounting is disabled entirely.
func (v RemountVersion) IsNone() bool { return v == RemountNone }

// IsComV1 reports whether v is the first remounting rule set.
func (v RemountVersion) IsComV1() bool { return v == RemountComV1 }

// IsComV2 reports whether v is the second remounting rule set.
func (v RemountVersion) IsComV2() bool { return v == RemountComV2 }

// IsLRA reports whether v is the latched-phase remounting rule set.
func (v RemountVersion) IsLRA() bool { return v == RemountLRA }

func (v RemountVersion) String() string {
	switch v {
	case RemountNone:
		return "None"
	case RemountComV1:
		return "ComV1"
	case RemountComV2:
		return "ComV2"
	case RemountLRA:
		return "LRA"
	default:
		return "Unknown"
	}
}
