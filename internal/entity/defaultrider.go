package entity

import "github.com/linerider/trackphysics/internal/geometry"

const (
	repelLengthFactor      = 0.5
	scarfAirFriction       = 0.1
	mountEndurance         = 0.057
	remountEnduranceFactor = 2.0

	dismountedTimerFrames = 30
	remountingTimerFrames = 3
	mountedTimerFrames    = 3
)

func remountStrengthFactor(version RemountVersion) float64 {
	switch {
	case version.IsComV1(), version.IsComV2():
		return 0.1
	case version.IsLRA():
		return 0.5
	default:
		return 0.0
	}
}

func unbreakableRemountStrengthFactor(version RemountVersion) float64 {
	if version.IsLRA() {
		return 0.5
	}
	return 1.0
}

// BuildDefaultRider constructs the standard rider-and-sled skeleton: the
// four-point sled (peg, tail, nose, string), a torso with two arms and two
// legs mounted to the sled by eight breakable bones, and a seven-segment
// scarf that trails behind on flutter bones alone. The exact geometry,
// friction coefficients and bone endurance values reproduce the reference
// rider used by every grid/remount-version combination.
func BuildDefaultRider(version RemountVersion) *SkeletonTemplate {
	b := NewSkeleton()

	peg := b.AddPoint(NewPoint(geometry.Point{X: 0, Y: 0}).IsContact(true).ContactFriction(0.8))
	tail := b.AddPoint(NewPoint(geometry.Point{X: 0, Y: 5}).IsContact(true))
	nose := b.AddPoint(NewPoint(geometry.Point{X: 15, Y: 5}).IsContact(true))
	str := b.AddPoint(NewPoint(geometry.Point{X: 17.5, Y: 0}).IsContact(true))

	butt := b.AddPoint(NewPoint(geometry.Point{X: 5, Y: 0}).IsContact(true).ContactFriction(0.8))
	shoulder := b.AddPoint(NewPoint(geometry.Point{X: 5, Y: -5.5}).IsContact(true).ContactFriction(0.8))
	rightHand := b.AddPoint(NewPoint(geometry.Point{X: 11.5, Y: -5}).IsContact(true).ContactFriction(0.1))
	leftHand := b.AddPoint(NewPoint(geometry.Point{X: 11.5, Y: -5}).IsContact(true).ContactFriction(0.1))
	leftFoot := b.AddPoint(NewPoint(geometry.Point{X: 10, Y: 5}).IsContact(true))
	rightFoot := b.AddPoint(NewPoint(geometry.Point{X: 10, Y: 5}).IsContact(true))

	scarfX := []float64{3.0, 1.0, -1.0, -3.0, -5.0, -7.0, -9.0}
	scarf := make([]PointID, len(scarfX))
	for i, x := range scarfX {
		scarf[i] = b.AddPoint(NewPoint(geometry.Point{X: x, Y: -5.5}).AirFriction(scarfAirFriction))
	}

	unbreakableRemountFactor := unbreakableRemountStrengthFactor(version)
	mountRemountFactor := remountStrengthFactor(version)

	sledBack := b.AddBone(NewBone(peg, tail).AdjustmentStrengthRemountFactor(unbreakableRemountFactor))
	b.AddBone(NewBone(tail, nose).AdjustmentStrengthRemountFactor(unbreakableRemountFactor))
	b.AddBone(NewBone(nose, str).AdjustmentStrengthRemountFactor(unbreakableRemountFactor))
	sledFront := b.AddBone(NewBone(str, peg).AdjustmentStrengthRemountFactor(unbreakableRemountFactor))
	b.AddBone(NewBone(peg, nose).AdjustmentStrengthRemountFactor(unbreakableRemountFactor))
	b.AddBone(NewBone(str, tail).AdjustmentStrengthRemountFactor(unbreakableRemountFactor))

	b.AddBone(NewBone(peg, butt).
		Endurance(mountEndurance).
		EnduranceRemountFactor(remountEnduranceFactor).
		AdjustmentStrengthRemountFactor(mountRemountFactor))
	b.AddBone(NewBone(tail, butt).
		Endurance(mountEndurance).
		EnduranceRemountFactor(remountEnduranceFactor).
		AdjustmentStrengthRemountFactor(mountRemountFactor))
	b.AddBone(NewBone(nose, butt).
		Endurance(mountEndurance).
		EnduranceRemountFactor(remountEnduranceFactor).
		AdjustmentStrengthRemountFactor(mountRemountFactor))

	torso := b.AddBone(NewBone(shoulder, butt).AdjustmentStrengthRemountFactor(unbreakableRemountFactor))
	b.AddBone(NewBone(shoulder, leftHand).AdjustmentStrengthRemountFactor(unbreakableRemountFactor))
	b.AddBone(NewBone(shoulder, rightHand).AdjustmentStrengthRemountFactor(unbreakableRemountFactor))
	b.AddBone(NewBone(shoulder, rightHand).AdjustmentStrengthRemountFactor(unbreakableRemountFactor))
	b.AddBone(NewBone(butt, leftFoot).AdjustmentStrengthRemountFactor(unbreakableRemountFactor))
	b.AddBone(NewBone(butt, rightFoot).AdjustmentStrengthRemountFactor(unbreakableRemountFactor))

	b.AddBone(NewBone(shoulder, peg).
		Endurance(mountEndurance).
		EnduranceRemountFactor(remountEnduranceFactor).
		AdjustmentStrengthRemountFactor(mountRemountFactor))
	b.AddBone(NewBone(leftHand, str).
		Endurance(mountEndurance).
		EnduranceRemountFactor(remountEnduranceFactor).
		AdjustmentStrengthRemountFactor(mountRemountFactor))
	b.AddBone(NewBone(rightHand, str).
		Endurance(mountEndurance).
		EnduranceRemountFactor(remountEnduranceFactor).
		AdjustmentStrengthRemountFactor(mountRemountFactor))
	b.AddBone(NewBone(leftFoot, nose).
		Endurance(mountEndurance).
		EnduranceRemountFactor(remountEnduranceFactor).
		AdjustmentStrengthRemountFactor(mountRemountFactor))
	b.AddBone(NewBone(rightFoot, nose).
		Endurance(mountEndurance).
		EnduranceRemountFactor(remountEnduranceFactor).
		AdjustmentStrengthRemountFactor(mountRemountFactor))

	b.AddBone(NewBone(shoulder, leftFoot).Repel(true).InitialLengthFactor(repelLengthFactor))
	b.AddBone(NewBone(shoulder, rightFoot).Repel(true).InitialLengthFactor(repelLengthFactor))

	prev := shoulder
	for _, s := range scarf {
		b.AddBone(NewBone(prev, s).Bias(0.0))
		prev = s
	}

	b.AddJoint(NewJoint(sledBack, sledFront))
	b.AddJoint(NewJoint(torso, sledFront).IsMount(true))

	b.RemountVersion(version)
	b.SledPoints(SledPointIDs{Peg: peg, Tail: tail, Nose: nose, String: str})

	if !version.IsNone() {
		b.DismountedTimer(dismountedTimerFrames)
		b.RemountingTimer(remountingTimerFrames)
		b.MountedTimer(mountedTimerFrames)
	}

	return b.Build()
}
