package entity

import (
	"fmt"

	"github.com/linerider/trackphysics/internal/geometry"
)

// ErrUnknownTemplate is returned when a caller references a TemplateID
// the registry never assigned.
var ErrUnknownTemplate = fmt.Errorf("entity: unknown template id")

// ErrUnknownEntity is returned when a caller references an EntityID the
// registry never assigned, or that has since been removed.
var ErrUnknownEntity = fmt.Errorf("entity: unknown entity id")

// Registry owns every skeleton template and every live entity built from
// one, and drives the per-tick simulation across all of them in a single
// deterministic pass ordered by entity id.
type Registry struct {
	templates   map[TemplateID]*SkeletonTemplate
	templateIDs []TemplateID

	entities   map[EntityID]*Entity
	entityIDs  []EntityID
	nextEntity EntityID

	frozen FrozenFunc
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		templates: make(map[TemplateID]*SkeletonTemplate),
		entities:  make(map[EntityID]*Entity),
	}
}

// AddTemplate registers a skeleton template and returns its dense id.
func (r *Registry) AddTemplate(template *SkeletonTemplate) TemplateID {
	id := TemplateID(len(r.templateIDs))
	r.templates[id] = template
	r.templateIDs = append(r.templateIDs, id)
	return id
}

// Template returns the registered template, or an error if templateID is
// unknown.
func (r *Registry) Template(templateID TemplateID) (*SkeletonTemplate, error) {
	t, ok := r.templates[templateID]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTemplate, templateID)
	}
	return t, nil
}

// CreateEntity instantiates templateID at offset with the given initial
// velocity, returning the new entity's id. Every simulated frame is
// invalidated for every existing entity, since the cache is keyed purely
// by frame number and adding an entity changes what ComputeFrame returns
// for every frame from 0 onward.
func (r *Registry) CreateEntity(templateID TemplateID, offset, velocity geometry.Vector) (EntityID, error) {
	template, err := r.Template(templateID)
	if err != nil {
		return 0, err
	}

	id := r.nextEntity
	r.nextEntity++
	r.entities[id] = NewEntity(templateID, template, offset, velocity)
	r.entityIDs = append(r.entityIDs, id)
	r.ClearCache()
	return id, nil
}

// RemoveEntity deletes an entity and invalidates every cache.
func (r *Registry) RemoveEntity(entityID EntityID) error {
	if _, ok := r.entities[entityID]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownEntity, entityID)
	}
	delete(r.entities, entityID)
	for i, id := range r.entityIDs {
		if id == entityID {
			r.entityIDs = append(r.entityIDs[:i], r.entityIDs[i+1:]...)
			break
		}
	}
	r.ClearCache()
	return nil
}

// Entity returns the entity's current wrapper, or an error if entityID is
// unknown.
func (r *Registry) Entity(entityID EntityID) (*Entity, error) {
	e, ok := r.entities[entityID]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownEntity, entityID)
	}
	return e, nil
}

// EntityIDs returns every live entity id in creation order.
func (r *Registry) EntityIDs() []EntityID {
	return append([]EntityID(nil), r.entityIDs...)
}

// SetInitialOffset updates an entity's frame-0 placement and clears every
// entity's cache.
func (r *Registry) SetInitialOffset(entityID EntityID, offset geometry.Vector) error {
	e, err := r.Entity(entityID)
	if err != nil {
		return err
	}
	template, err := r.Template(e.TemplateID())
	if err != nil {
		return err
	}
	e.SetInitialOffset(template, offset)
	r.ClearCache()
	return nil
}

// SetInitialVelocity updates an entity's frame-0 velocity and clears every
// entity's cache.
func (r *Registry) SetInitialVelocity(entityID EntityID, velocity geometry.Vector) error {
	e, err := r.Entity(entityID)
	if err != nil {
		return err
	}
	template, err := r.Template(e.TemplateID())
	if err != nil {
		return err
	}
	e.SetInitialVelocity(template, velocity)
	r.ClearCache()
	return nil
}

// ClearCache discards every entity's computed frames past frame 0. Called
// whenever a line or entity mutation invalidates the prior simulation.
func (r *Registry) ClearCache() {
	for _, e := range r.entities {
		e.TruncateCache(0)
	}
}

// GravityFunc computes the gravity vector applied during a given frame's
// momentum pass. Implementations are expected to be pure functions of
// frame so that replaying the same frame range always yields the same
// result.
type GravityFunc func(frame int) geometry.Vector

// ComputeFrame advances every entity from its latest cached frame up to
// frame, returning each entity's state at frame in entity-id order. Each
// tick runs in three passes across every entity, matching the original
// per-frame ordering: first every entity's physics pass, then every
// entity's mount-phase pass (gated on not having just dismounted this
// tick), then every entity's state is pushed to its cache. Running the
// mount-phase pass only after every entity's physics pass has completed
// means a sled broken by one entity this tick is visible to that same
// entity's own mount-phase transition within the same call.
func (r *Registry) ComputeFrame(frame int, lines LineLookup, gravity GravityFunc, iterations int) ([]*EntityState, error) {
	if frame < 0 {
		return nil, fmt.Errorf("entity: frame must be non-negative, got %d", frame)
	}

	latest := r.latestSyncedFrame()
	for tick := latest + 1; tick <= frame; tick++ {
		if err := r.tick(tick, lines, gravity(tick), iterations); err != nil {
			return nil, err
		}
	}

	out := make([]*EntityState, 0, len(r.entityIDs))
	for _, id := range r.entityIDs {
		out = append(out, r.entities[id].StateAtFrame(frame))
	}
	return out, nil
}

func (r *Registry) latestSyncedFrame() int {
	lowest := -1
	for i, id := range r.entityIDs {
		latest := r.entities[id].LatestCachedFrame()
		if i == 0 || latest < lowest {
			lowest = latest
		}
	}
	if lowest < 0 {
		return 0
	}
	return lowest
}

func (r *Registry) tick(frame int, lines LineLookup, gravity geometry.Vector, iterations int) error {
	working := make(map[EntityID]*EntityState, len(r.entityIDs))
	templatesByEntity := make(map[EntityID]*SkeletonTemplate, len(r.entityIDs))

	for _, id := range r.entityIDs {
		e := r.entities[id]
		template, err := r.Template(e.TemplateID())
		if err != nil {
			return err
		}
		templatesByEntity[id] = template

		current := e.StateAtFrame(e.LatestCachedFrame())
		next := current.Clone()
		if !r.isFrozen(id, frame) {
			next.ProcessFrame(template, lines, gravity, iterations)
		}
		working[id] = next
	}

	for _, id := range r.entityIDs {
		state := working[id]
		if state.dismountedThisFrame || r.isFrozen(id, frame) {
			continue
		}
		state.ProcessMountPhase(templatesByEntity[id], r.otherCandidates(id, working, templatesByEntity))
	}

	for _, id := range r.entityIDs {
		r.entities[id].PushToCache(working[id])
	}

	return nil
}

// otherCandidates returns every entity other than id as a remount
// candidate, in entity-id order, reading from the tick's in-progress
// working states so a swap made by one entity is visible to the next.
func (r *Registry) otherCandidates(id EntityID, working map[EntityID]*EntityState, templates map[EntityID]*SkeletonTemplate) []remountCandidate {
	candidates := make([]remountCandidate, 0, len(r.entityIDs)-1)
	for _, other := range r.entityIDs {
		if other == id {
			continue
		}
		candidates = append(candidates, remountCandidate{Template: templates[other], State: working[other]})
	}
	return candidates
}

func (r *Registry) isFrozen(id EntityID, frame int) bool {
	if r.frozen == nil {
		return false
	}
	return r.frozen(id, frame)
}

// FrozenFunc reports whether an entity should skip both the physics and
// mount-phase passes for a given frame, leaving its state unchanged (but
// still cached, so later frames resume from where it left off).
type FrozenFunc func(id EntityID, frame int) bool

// SetFrozenFunc installs the predicate used to decide whether an entity is
// paused for a given frame. Passing nil restores the default of never
// freezing any entity.
func (r *Registry) SetFrozenFunc(f FrozenFunc) {
	r.frozen = f
}
