package engine

import (
	"github.com/linerider/trackphysics/internal/entity"
	"github.com/linerider/trackphysics/internal/geometry"
	"github.com/linerider/trackphysics/internal/physline"
)

// TrackLine is the minimal shape a parsed track line must expose to become
// a physics line. Track file parsing itself (binary sol/trk, json) is an
// external collaborator per spec.md §1 — this struct is the seam a future
// decoder writes into, not a decoder.
type TrackLine struct {
	Endpoints      geometry.Line
	Flipped        bool
	LeftExtension  bool
	RightExtension bool
	Height         float64
	Multiplier     float64
}

// build converts a TrackLine into the precomputed *physline.PhysicsLine
// the engine's grid and collision pass operate on.
func (l TrackLine) build() *physline.PhysicsLine {
	pl := physline.New(l.Endpoints, l.Flipped, l.LeftExtension, l.RightExtension)
	if l.Height != 0 {
		pl.SetHeight(l.Height)
	}
	if l.Multiplier != 0 {
		pl.SetAccelMultiplier(l.Multiplier)
	}
	return pl
}

// TrackRider is a single rider placement: the skeleton's world-space
// offset and initial velocity at frame 0.
type TrackRider struct {
	Offset   geometry.Vector
	Velocity geometry.Vector
}

// Track is the narrow surface a parsed track must expose for
// Engine.FromTrack to populate an engine from it. A concrete binary
// sol/trk or json decoder — out of scope for this module per spec.md §1 —
// implements this interface against its own in-memory track
// representation; the engine never needs to know which format produced it.
type Track interface {
	// GridVersion reports which line-traversal rule this track was
	// authored against.
	GridVersion() GridVersion
	// RemountVersion reports which dismount/remount rule set this
	// track's riders use, absent an LRA override.
	RemountVersion() RemountVersion
	// StandardLines returns every static line in the track.
	StandardLines() []TrackLine
	// Riders returns every rider's initial placement. Each is built
	// from the canonical default-rider skeleton (internal/entity's
	// BuildDefaultRider) for the resolved remount version.
	Riders() []TrackRider
}

// FromTrack populates an empty engine's grid, lines and rider entities
// from track. When lraOverrideFlag is true, every rider is built under
// RemountLRA regardless of what track.RemountVersion reports — matching
// spec.md §6's Engine::from_track(track, lra_override_flag).
func FromTrack(track Track, lraOverrideFlag bool) *Engine {
	e := New(track.GridVersion())

	for _, line := range track.StandardLines() {
		e.AddLine(line.build())
	}

	remountVersion := track.RemountVersion()
	if lraOverrideFlag {
		remountVersion = RemountLRA
	}

	template := entity.BuildDefaultRider(remountVersion)
	templateID := e.RegisterEntityTemplate(template)

	for _, rider := range track.Riders() {
		id, err := e.AddEntity(templateID)
		if err != nil {
			// AddEntity can only fail on an unknown template id, and
			// templateID was just returned by this same engine's
			// RegisterEntityTemplate call above.
			panic("engine: FromTrack: impossible invalid template id")
		}
		if err := e.SetEntityInitialOffset(id, rider.Offset); err != nil {
			panic("engine: FromTrack: impossible invalid entity id")
		}
		if err := e.SetEntityInitialVelocity(id, rider.Velocity); err != nil {
			panic("engine: FromTrack: impossible invalid entity id")
		}
	}

	return e
}
