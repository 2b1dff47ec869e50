package entity

import "github.com/linerider/trackphysics/internal/geometry"

// Entity is a live skeleton instance: its template, its placement
// (initial offset and velocity), and a dense, frame-indexed cache of the
// states computed so far. The cache lets repeated queries for the same
// frame — or for any earlier frame — avoid resimulating from scratch.
type Entity struct {
	templateID      TemplateID
	initialOffset   geometry.Vector
	initialVelocity geometry.Vector
	initialState    *EntityState
	cachedStates    []*EntityState
}

// NewEntity creates an entity on the given template, placed at offset
// with the given initial velocity. Frame 0 is held as the initial state;
// the cache of later frames starts empty.
func NewEntity(templateID TemplateID, template *SkeletonTemplate, offset, velocity geometry.Vector) *Entity {
	e := &Entity{
		templateID:      templateID,
		initialOffset:   offset,
		initialVelocity: velocity,
	}
	e.regenerateInitialState(template)
	return e
}

// TemplateID returns the id of the skeleton template this entity was
// created from.
func (e *Entity) TemplateID() TemplateID { return e.templateID }

// InitialOffset returns the placement offset applied to the template's
// rest positions at frame 0.
func (e *Entity) InitialOffset() geometry.Vector { return e.initialOffset }

// InitialVelocity returns the velocity every point started frame 0 with.
func (e *Entity) InitialVelocity() geometry.Vector { return e.initialVelocity }

// SetInitialOffset changes the entity's frame-0 placement, regenerating
// its initial state and invalidating every cached frame.
func (e *Entity) SetInitialOffset(template *SkeletonTemplate, offset geometry.Vector) {
	e.initialOffset = offset
	e.regenerateInitialState(template)
}

// SetInitialVelocity changes the entity's frame-0 velocity, regenerating
// its initial state and invalidating every cached frame.
func (e *Entity) SetInitialVelocity(template *SkeletonTemplate, velocity geometry.Vector) {
	e.initialVelocity = velocity
	e.regenerateInitialState(template)
}

func (e *Entity) regenerateInitialState(template *SkeletonTemplate) {
	e.initialState = NewEntityState(template, e.initialOffset, e.initialVelocity)
	e.cachedStates = nil
}

// InitialState returns the entity's frame-0 state.
func (e *Entity) InitialState() *EntityState { return e.initialState }

// CachedStates returns the frames computed so far, indexed from frame 1
// (frame 0 is always InitialState and is not duplicated here).
func (e *Entity) CachedStates() []*EntityState { return e.cachedStates }

// CachedFrameCount reports how many frames past frame 0 are cached.
func (e *Entity) CachedFrameCount() int { return len(e.cachedStates) }

// PushToCache appends a newly computed state as the next frame.
func (e *Entity) PushToCache(state *EntityState) {
	e.cachedStates = append(e.cachedStates, state)
}

// TruncateCache discards every cached frame at or past frame, keeping
// frames [1, frame) (and always keeping frame 0's InitialState).
func (e *Entity) TruncateCache(frame int) {
	keep := frame - 1
	if keep < 0 {
		keep = 0
	}
	if keep >= len(e.cachedStates) {
		return
	}
	e.cachedStates = e.cachedStates[:keep]
}

// StateAtFrame returns the entity's state at frame (0 is InitialState),
// or nil if that frame hasn't been computed yet.
func (e *Entity) StateAtFrame(frame int) *EntityState {
	if frame == 0 {
		return e.initialState
	}
	idx := frame - 1
	if idx < 0 || idx >= len(e.cachedStates) {
		return nil
	}
	return e.cachedStates[idx]
}

// LatestCachedFrame returns the highest frame number this entity has
// computed state for.
func (e *Entity) LatestCachedFrame() int {
	return len(e.cachedStates)
}
