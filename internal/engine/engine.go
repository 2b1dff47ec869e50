// Package engine assembles the spatial grid, the physics-line store and
// the entity registry into the single stateful object spec.md calls "the
// engine": the only thing an external caller needs to build a track,
// populate it with riders, and read back their state at any frame.
package engine

import (
	"fmt"

	"github.com/linerider/trackphysics/internal/config"
	"github.com/linerider/trackphysics/internal/entity"
	"github.com/linerider/trackphysics/internal/geometry"
	"github.com/linerider/trackphysics/internal/grid"
	"github.com/linerider/trackphysics/internal/monitoring"
	"github.com/linerider/trackphysics/internal/physline"
)

// Re-exported so callers of this package never need to import
// internal/entity directly for the handful of types that cross the
// engine's public boundary.
type (
	// EntityID identifies a live entity created with AddEntity.
	EntityID = entity.EntityID
	// TemplateID identifies a skeleton template registered with
	// RegisterEntityTemplate.
	TemplateID = entity.TemplateID
	// EntityState is one entity's state at a single frame.
	EntityState = entity.EntityState
	// GridVersion selects the spatial grid's line-traversal rule.
	GridVersion = grid.Version
	// RemountVersion selects a skeleton's dismount/remount rule set.
	RemountVersion = entity.RemountVersion
)

// Grid version and remount version constants, re-exported for callers
// that want to select a rule set without importing internal/grid or
// internal/entity.
const (
	GridV6_0 = grid.V6_0
	GridV6_1 = grid.V6_1
	GridV6_2 = grid.V6_2

	RemountNone  = entity.RemountNone
	RemountComV1 = entity.RemountComV1
	RemountComV2 = entity.RemountComV2
	RemountLRA   = entity.RemountLRA
)

// GravityFunc computes the gravity vector applied during a given frame's
// momentum pass. The default is a constant downward pull of GetGravityY
// world units per frame squared, matching spec.md's fixed (0, 0.175).
type GravityFunc func(frame int) geometry.Vector

// Engine is the top-level, single-threaded simulation object: it owns the
// line index, every skeleton template and entity, and the per-entity
// frame cache. Every line, grid-version and entity mutation invalidates
// the cache conservatively (gravity and freeze predicates do not), per
// spec.md §4.5 — a non-local line edit can affect arbitrarily early
// frames of any entity that eventually reaches the affected region.
type Engine struct {
	lines    *lineStore
	entities *entity.Registry

	cellSize   float64
	iterations int
	gravity    GravityFunc
}

// New creates an empty engine using the given grid traversal rule and the
// built-in tuning defaults.
func New(version GridVersion) *Engine {
	return NewWithConfig(version, config.DefaultEngineConfig())
}

// NewWithConfig creates an empty engine using the given grid traversal
// rule and an explicit tuning config (see internal/config.EngineConfig).
func NewWithConfig(version GridVersion, cfg *config.EngineConfig) *Engine {
	if cfg == nil {
		cfg = config.DefaultEngineConfig()
	}
	e := &Engine{
		lines:      newLineStore(version, cfg.GetCellSize()),
		entities:   entity.NewRegistry(),
		cellSize:   cfg.GetCellSize(),
		iterations: cfg.GetConstraintIterations(),
	}
	gravityY := cfg.GetGravityY()
	e.gravity = func(int) geometry.Vector { return geometry.Vector{Y: gravityY} }
	return e
}

// SetGravityFunc overrides the function the engine evaluates for every
// tick's momentum pass. Passing nil installs the constant built-in default
// (DefaultEngineConfig's gravity); a GravityY override given to
// NewWithConfig is not restored. Changing gravity does not by itself
// invalidate the cache: callers that change it mid-simulation and expect
// earlier frames to reflect the new rule must call ClearCache themselves.
func (e *Engine) SetGravityFunc(f GravityFunc) {
	if f == nil {
		gravityY := config.DefaultEngineConfig().GetGravityY()
		f = func(int) geometry.Vector { return geometry.Vector{Y: gravityY} }
	}
	e.gravity = f
}

// SetFrozenFunc installs the predicate deciding whether an entity is
// paused (skips both the physics and mount-phase passes) for a given
// frame. Passing nil unfreezes every entity.
func (e *Engine) SetFrozenFunc(f func(id EntityID, frame int) bool) {
	e.entities.SetFrozenFunc(entity.FrozenFunc(f))
}

// GridVersion reports the traversal rule the engine's spatial grid uses.
func (e *Engine) GridVersion() GridVersion {
	return e.lines.version()
}

// SetGridVersion rebuilds the spatial grid under a new traversal rule and
// invalidates every entity's cache, since changing how lines are indexed
// can change which lines any past frame's collision pass observed.
func (e *Engine) SetGridVersion(version GridVersion) {
	e.lines.rebuild(version, e.cellSize)
	e.entities.ClearCache()
	monitoring.Logf("engine: grid version set to %s, cache cleared", version)
}

// AddLine registers a physics line and returns its id.
func (e *Engine) AddLine(line *physline.PhysicsLine) LineID {
	id := e.lines.add(line)
	e.entities.ClearCache()
	return id
}

// GetLine returns the physics line registered under id.
func (e *Engine) GetLine(id LineID) (*physline.PhysicsLine, error) {
	return e.lines.get(id)
}

// ReplaceLine swaps the line registered under id for a new one, moving its
// grid registration from the old endpoints to the new, and invalidates the
// cache.
func (e *Engine) ReplaceLine(id LineID, line *physline.PhysicsLine) error {
	if err := e.lines.replace(id, line); err != nil {
		return err
	}
	e.entities.ClearCache()
	return nil
}

// RemoveLine unregisters a line and invalidates the cache.
func (e *Engine) RemoveLine(id LineID) error {
	if err := e.lines.remove(id); err != nil {
		return err
	}
	e.entities.ClearCache()
	return nil
}

// ClearCache discards every entity's computed frames past frame 0,
// forcing the next ViewFrame call to resimulate from the start. Exposed
// directly for callers that mutate state this package cannot observe
// (e.g. swapping gravity functions mid-run).
func (e *Engine) ClearCache() {
	e.entities.ClearCache()
}

// RegisterEntityTemplate registers a skeleton template and returns its id.
// Templates are never removed once registered: entities reference them by
// id for their entire lifetime, per spec.md §5's resource-ownership note.
func (e *Engine) RegisterEntityTemplate(template *entity.SkeletonTemplate) TemplateID {
	return e.entities.AddTemplate(template)
}

// AddEntity instantiates templateID at the world origin with zero initial
// velocity and returns its id. Use SetEntityInitialOffset and
// SetEntityInitialVelocity to place it.
func (e *Engine) AddEntity(templateID TemplateID) (EntityID, error) {
	id, err := e.entities.CreateEntity(templateID, geometry.ZeroVector, geometry.ZeroVector)
	return id, wrapEntityErr(err)
}

// RemoveEntity deletes an entity and invalidates every cache.
func (e *Engine) RemoveEntity(id EntityID) error {
	return wrapEntityErr(e.entities.RemoveEntity(id))
}

// SetEntityInitialOffset updates an entity's frame-0 placement and
// invalidates every entity's cache.
func (e *Engine) SetEntityInitialOffset(id EntityID, offset geometry.Vector) error {
	return wrapEntityErr(e.entities.SetInitialOffset(id, offset))
}

// SetEntityInitialVelocity updates an entity's frame-0 velocity and
// invalidates every entity's cache.
func (e *Engine) SetEntityInitialVelocity(id EntityID, velocity geometry.Vector) error {
	return wrapEntityErr(e.entities.SetInitialVelocity(id, velocity))
}

// ViewFrame advances every entity's cache from its latest synced frame up
// to frame and returns each entity's state at frame, in entity-creation
// order. Calling it repeatedly for non-decreasing frames reuses the
// cache; calling it for an earlier frame than previously requested is
// also cheap, since every frame up to the latest synced one is already
// cached.
func (e *Engine) ViewFrame(frame int) ([]*EntityState, error) {
	if frame < 0 {
		return nil, fmt.Errorf("engine: frame must be non-negative, got %d", frame)
	}
	return e.entities.ComputeFrame(frame, e.lines, entity.GravityFunc(e.gravity), e.iterations)
}
