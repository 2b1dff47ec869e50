package entity

import "github.com/linerider/trackphysics/internal/geometry"

// EntityState is one frame's worth of a skeleton instance: every point's
// verlet state plus the skeleton-level mount phase and sled integrity.
// dismountedThisFrame is a transient flag, reset at the start of every
// ProcessFrame call, that prevents a single tick from breaking more than
// one bone or joint's worth of mount-phase transitions.
type EntityState struct {
	skeleton            SkeletonState
	pointStates         map[PointID]PointState
	dismountedThisFrame bool
}

// NewEntityState builds the starting state for a skeleton instance placed
// at offset with initial velocity applied uniformly to every point.
func NewEntityState(template *SkeletonTemplate, offset geometry.Vector, velocity geometry.Vector) *EntityState {
	pointStates := make(map[PointID]PointState, len(template.pointOrder))
	for _, id := range template.pointOrder {
		pos := template.points[id].InitialPosition().Translate(offset)
		pointStates[id] = PointState{
			position:         pos,
			velocity:         velocity,
			previousPosition: pos.Translate(velocity.Negate()),
		}
	}

	return &EntityState{
		skeleton:    NewSkeletonState(),
		pointStates: pointStates,
	}
}

// Clone returns an independent deep copy of the state.
func (s *EntityState) Clone() *EntityState {
	pointStates := make(map[PointID]PointState, len(s.pointStates))
	for id, st := range s.pointStates {
		pointStates[id] = st
	}
	return &EntityState{
		skeleton:            s.skeleton,
		pointStates:         pointStates,
		dismountedThisFrame: s.dismountedThisFrame,
	}
}

// MountPhase returns the skeleton's current attachment phase.
func (s *EntityState) MountPhase() MountPhase { return s.skeleton.MountPhase() }

// SledIntact reports whether the sled is still structurally sound.
func (s *EntityState) SledIntact() bool { return s.skeleton.SledIntact() }

// PointState returns the per-frame state for the given point id.
func (s *EntityState) PointState(id PointID) PointState { return s.pointStates[id] }

// SetPointState overwrites the per-frame state for the given point id.
func (s *EntityState) SetPointState(id PointID, state PointState) { s.pointStates[id] = state }

// PointPositions returns every point's position ordered by ascending
// point id, which equals template (insertion) order since ids are
// assigned densely starting at zero.
func (s *EntityState) PointPositions() []geometry.Point {
	ids := s.sortedPointIDs()
	out := make([]geometry.Point, len(ids))
	for i, id := range ids {
		out[i] = s.pointStates[id].Position()
	}
	return out
}

// PointVelocities returns every point's velocity ordered by ascending
// point id.
func (s *EntityState) PointVelocities() []geometry.Vector {
	ids := s.sortedPointIDs()
	out := make([]geometry.Vector, len(ids))
	for i, id := range ids {
		out[i] = s.pointStates[id].Velocity()
	}
	return out
}

func (s *EntityState) sortedPointIDs() []PointID {
	ids := make([]PointID, 0, len(s.pointStates))
	for id := range s.pointStates {
		ids = append(ids, id)
	}
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j-1] > ids[j]; j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}
	return ids
}

// ProcessFrame advances the skeleton by one physics tick: momentum,
// constraint relaxation (with line collision folded into each iteration),
// the flutter pass, and the two joint-break passes. It does not advance
// the mount-phase timers themselves; callers invoke ProcessMountPhase
// separately once every entity's physics pass has run, so that a sled
// broken this tick is visible to every entity's mount-phase transition.
func (s *EntityState) ProcessFrame(template *SkeletonTemplate, lines LineLookup, gravity geometry.Vector, iterations int) {
	s.dismountedThisFrame = false

	for _, id := range template.pointOrder {
		pt := template.points[id]
		st := s.pointStates[id]

		computedVelocity := st.position.Sub(st.previousPosition)
		newVelocity := computedVelocity.Scale(1 - pt.AirFriction()).Add(gravity)
		newPosition := st.position.Translate(newVelocity)

		st.previousPosition = st.position
		st.position = newPosition
		st.velocity = newVelocity
		s.pointStates[id] = st
	}

	initialMountPhase := s.skeleton.MountPhase()

	for iter := 0; iter < iterations; iter++ {
		s.relaxBones(template, initialMountPhase)
		s.resolveLineCollisions(template, lines)
	}

	s.relaxFlutterBones(template)
	s.breakJointsForMount(template)
	s.breakJointsForSled(template)
}

func (s *EntityState) mountPhaseForBonePass(template *SkeletonTemplate, initialMountPhase MountPhase) MountPhase {
	if template.RemountVersion().IsLRA() {
		return initialMountPhase
	}
	return s.skeleton.MountPhase()
}

func (s *EntityState) relaxBones(template *SkeletonTemplate, initialMountPhase MountPhase) {
	mountPhase := s.mountPhaseForBonePass(template, initialMountPhase)
	isRemounting := mountPhase.IsRemounting()

	for _, boneID := range template.boneOrder {
		bone := template.bones[boneID]
		if bone.IsFlutter() {
			continue
		}

		p0id, p1id := bone.PointIDs()
		st0 := s.pointStates[p0id]
		st1 := s.pointStates[p1id]

		if bone.IsBreakable() {
			if !(mountPhase.IsMounted() || mountPhase.IsRemounting()) || s.dismountedThisFrame {
				continue
			}
			if !bone.IsIntact(st0.position, st1.position, isRemounting) {
				s.dismountedThisFrame = true
				s.transitionOnBreak(template)
				continue
			}
		}

		newP0, newP1, changed := bone.Adjusted(st0.position, st1.position, isRemounting)
		if !changed {
			continue
		}
		st0.position = newP0
		st1.position = newP1
		s.pointStates[p0id] = st0
		s.pointStates[p1id] = st1
	}
}

func (s *EntityState) relaxFlutterBones(template *SkeletonTemplate) {
	isRemounting := s.skeleton.MountPhase().IsRemounting()
	for _, boneID := range template.boneOrder {
		bone := template.bones[boneID]
		if !bone.IsFlutter() {
			continue
		}
		p0id, p1id := bone.PointIDs()
		st0 := s.pointStates[p0id]
		st1 := s.pointStates[p1id]
		newP0, newP1, changed := bone.Adjusted(st0.position, st1.position, isRemounting)
		if !changed {
			continue
		}
		st0.position = newP0
		st1.position = newP1
		s.pointStates[p0id] = st0
		s.pointStates[p1id] = st1
	}
}

func (s *EntityState) resolveLineCollisions(template *SkeletonTemplate, lines LineLookup) {
	for _, id := range template.pointOrder {
		pt := template.points[id]
		if !pt.IsContact() {
			continue
		}
		st := s.pointStates[id]
		for _, line := range lines.LinesNearPoint(st.position) {
			newPos, newPrevPos, ok := line.CheckInteraction(pt, st)
			if !ok {
				continue
			}
			st.position = newPos
			st.previousPosition = newPrevPos
			s.pointStates[id] = st
		}
	}
}

func (s *EntityState) boneEndpoints(template *SkeletonTemplate, boneID BoneID) (geometry.Point, geometry.Point) {
	bone := template.bones[boneID]
	p0id, p1id := bone.PointIDs()
	return s.pointStates[p0id].Position(), s.pointStates[p1id].Position()
}

func (s *EntityState) jointShouldBreak(template *SkeletonTemplate, joint JointTemplate) bool {
	bone0ID, bone1ID := joint.BoneIDs()
	bone0P0, bone0P1 := s.boneEndpoints(template, bone0ID)
	bone1P0, bone1P1 := s.boneEndpoints(template, bone1ID)
	return ShouldBreak(bone0P0, bone0P1, bone1P0, bone1P1)
}

func (s *EntityState) breakJointsForMount(template *SkeletonTemplate) {
	phase := s.skeleton.MountPhase()
	if !(phase.IsMounted() || phase.IsRemounting()) {
		return
	}

	for _, jointID := range template.jointOrder {
		joint := template.joints[jointID]
		if !joint.IsMount() {
			continue
		}
		if s.dismountedThisFrame {
			return
		}
		if !s.jointShouldBreak(template, joint) {
			continue
		}
		s.dismountedThisFrame = true
		s.transitionOnBreak(template)
		if template.RemountVersion().IsLRA() {
			s.skeleton.SetSledIntact(false)
		}
	}
}

func (s *EntityState) breakJointsForSled(template *SkeletonTemplate) {
	phase := s.skeleton.MountPhase()
	gateClosed := (template.RemountVersion().IsLRA() || template.RemountVersion().IsComV1()) &&
		!(phase.IsMounted() || phase.IsRemounting())
	if gateClosed {
		return
	}

	for _, jointID := range template.jointOrder {
		joint := template.joints[jointID]
		if joint.IsMount() {
			continue
		}
		if !s.skeleton.SledIntact() {
			return
		}
		if s.jointShouldBreak(template, joint) {
			s.skeleton.SetSledIntact(false)
		}
	}
}

func (s *EntityState) transitionOnBreak(template *SkeletonTemplate) {
	if template.RemountVersion().IsNone() {
		s.skeleton.SetMountPhase(NewDismounted(0))
		return
	}

	switch current := s.skeleton.MountPhase(); {
	case current.IsMounted():
		s.skeleton.SetMountPhase(NewDismounting(template.dismountedTimer))
	case current.IsRemounting():
		s.skeleton.SetMountPhase(NewDismounted(template.remountingTimer))
	}
}

// remountCandidate pairs another live entity's template and mutable state,
// offered to ProcessMountPhase as a partner a Dismounted skeleton may try
// to swap its sled with. The State pointer is the partner's own working
// state for this tick, so a swap that succeeds is immediately visible to
// every later candidate check within the same ComputeFrame call.
type remountCandidate struct {
	Template *SkeletonTemplate
	State    *EntityState
}

// ProcessMountPhase advances the mount-phase timer by one tick according
// to the skeleton's remount rule set. It must run after every entity's
// ProcessFrame has completed for the tick, and only when
// dismountedThisFrame is false: a bone or joint that just broke this
// frame has already set the correct phase directly and must not also be
// ticked. candidates lists every other live entity, in a fixed order, that
// this skeleton may attempt a sled swap with while Dismounted.
func (s *EntityState) ProcessMountPhase(template *SkeletonTemplate, candidates []remountCandidate) {
	switch {
	case template.RemountVersion().IsNone():
		return
	case template.RemountVersion().IsLRA():
		if !s.skeleton.SledIntact() {
			s.skeleton.SetMountPhase(NewDismounted(0))
			return
		}
		s.lraTransition(template, candidates)
	default:
		s.comTransition(template, candidates)
	}
}

// lraTransition advances the mount-phase timer for RemountVersion::LRA,
// which decrements lazily: each arm checks whether the *current* timer has
// already reached zero before transitioning, and otherwise decrements it by
// one, leaving the transition itself for the following tick. Mirrors
// entity_state.rs::process_mount_phase's LRA match arm exactly.
func (s *EntityState) lraTransition(template *SkeletonTemplate, candidates []remountCandidate) {
	switch phase := s.skeleton.MountPhase(); phase.Kind {
	case Dismounting:
		if phase.Timer == 0 {
			s.skeleton.SetMountPhase(NewDismounted(template.remountingTimer))
		} else {
			s.skeleton.SetMountPhase(NewDismounting(saturatingSub(phase.Timer)))
		}
	case Dismounted:
		if s.attemptSledSwap(template, candidates) {
			if phase.Timer == 0 {
				s.skeleton.SetMountPhase(NewRemounting(template.mountedTimer))
			} else {
				s.skeleton.SetMountPhase(NewDismounted(saturatingSub(phase.Timer)))
			}
		} else {
			s.skeleton.SetMountPhase(NewDismounted(template.remountingTimer))
		}
	case Remounting:
		if s.SkeletonCanEnterPhase(template, false) {
			if phase.Timer == 0 {
				s.skeleton.SetMountPhase(NewMounted())
			} else {
				s.skeleton.SetMountPhase(NewRemounting(saturatingSub(phase.Timer)))
			}
		} else {
			s.skeleton.SetMountPhase(NewRemounting(template.mountedTimer))
		}
	case Mounted:
	}
}

// comTransition advances the mount-phase timer for RemountVersion::ComV1
// and ComV2, which decrement eagerly: each arm always computes the next
// timer value first (saturating subtraction), then transitions as soon as
// that next value is zero. Mirrors entity_state.rs::process_mount_phase's
// ComV1/ComV2 match arm exactly.
func (s *EntityState) comTransition(template *SkeletonTemplate, candidates []remountCandidate) {
	switch phase := s.skeleton.MountPhase(); phase.Kind {
	case Dismounting:
		if newTimer := saturatingSub(phase.Timer); newTimer == 0 {
			s.skeleton.SetMountPhase(NewDismounted(template.remountingTimer))
		} else {
			s.skeleton.SetMountPhase(NewDismounting(newTimer))
		}
	case Dismounted:
		var newTimer uint32
		if s.attemptSledSwap(template, candidates) {
			newTimer = saturatingSub(phase.Timer)
		} else {
			newTimer = template.remountingTimer
		}
		if newTimer == 0 {
			s.skeleton.SetMountPhase(NewRemounting(template.mountedTimer))
		} else {
			s.skeleton.SetMountPhase(NewDismounted(newTimer))
		}
	case Remounting:
		var newTimer uint32
		if s.SkeletonCanEnterPhase(template, false) {
			newTimer = saturatingSub(phase.Timer)
		} else {
			newTimer = template.mountedTimer
		}
		if newTimer == 0 {
			s.skeleton.SetMountPhase(NewMounted())
		} else {
			s.skeleton.SetMountPhase(NewRemounting(newTimer))
		}
	case Mounted:
	}
}

// attemptSledSwap tries, in order, every candidate whose sled is intact
// and whose mount phase is Dismounted, swapping sleds with the first one
// for which the resulting skeleton can enter the remounting phase.
func (s *EntityState) attemptSledSwap(template *SkeletonTemplate, candidates []remountCandidate) bool {
	for _, c := range candidates {
		if !c.State.skeleton.SledIntact() || !c.State.skeleton.MountPhase().IsDismounted() {
			continue
		}
		if s.trySwapWith(template, c) {
			return true
		}
	}
	return false
}

// trySwapWith exchanges this skeleton's sled points (and, for ComV2/LRA,
// the sled_intact bit) with partner's, keeping the swap only if it leaves
// this skeleton able to enter the remounting phase; otherwise both sides
// are restored exactly as they were.
func (s *EntityState) trySwapWith(template *SkeletonTemplate, partner remountCandidate) bool {
	selfIDs := template.SledPoints().points()
	partnerIDs := partner.Template.SledPoints().points()

	selfSaved := s.snapshotSledPoints(template)
	partnerSaved := partner.State.snapshotSledPoints(partner.Template)
	selfIntactSaved := s.skeleton.SledIntact()
	partnerIntactSaved := partner.State.skeleton.SledIntact()

	for i := range selfIDs {
		s.pointStates[selfIDs[i]], partner.State.pointStates[partnerIDs[i]] =
			partner.State.pointStates[partnerIDs[i]], s.pointStates[selfIDs[i]]
	}
	if template.RemountVersion().IsComV2() || template.RemountVersion().IsLRA() {
		s.skeleton.SetSledIntact(partnerIntactSaved)
		partner.State.skeleton.SetSledIntact(selfIntactSaved)
	}

	if s.SkeletonCanEnterPhase(template, true) {
		return true
	}

	for i := range selfIDs {
		s.pointStates[selfIDs[i]] = selfSaved[selfIDs[i]]
		partner.State.pointStates[partnerIDs[i]] = partnerSaved[partnerIDs[i]]
	}
	s.skeleton.SetSledIntact(selfIntactSaved)
	partner.State.skeleton.SetSledIntact(partnerIntactSaved)
	return false
}

func (s *EntityState) snapshotSledPoints(template *SkeletonTemplate) map[PointID]PointState {
	ids := template.SledPoints().points()
	saved := make(map[PointID]PointState, len(ids))
	for _, id := range ids {
		saved[id] = s.pointStates[id]
	}
	return saved
}

// SkeletonCanEnterPhase reports whether every breakable bone is intact
// (evaluated as if the skeleton were remounting when targetRemounting is
// true) and, for the ComV1/ComV2 rule sets, every joint still holds.
func (s *EntityState) SkeletonCanEnterPhase(template *SkeletonTemplate, targetRemounting bool) bool {
	for _, boneID := range template.boneOrder {
		bone := template.bones[boneID]
		if !bone.IsBreakable() {
			continue
		}
		p0id, p1id := bone.PointIDs()
		st0 := s.pointStates[p0id]
		st1 := s.pointStates[p1id]
		if !bone.IsIntact(st0.position, st1.position, targetRemounting) {
			return false
		}
	}

	if template.RemountVersion().IsComV1() || template.RemountVersion().IsComV2() {
		for _, jointID := range template.jointOrder {
			joint := template.joints[jointID]
			if s.jointShouldBreak(template, joint) {
				return false
			}
		}
	}

	return true
}
