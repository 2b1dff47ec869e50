package entity

import (
	"github.com/linerider/trackphysics/internal/geometry"
	"github.com/linerider/trackphysics/internal/physline"
)

// CollisionLine is the subset of *physline.PhysicsLine's behavior the
// entity package depends on. A *physline.PhysicsLine already satisfies
// this interface, so callers never need an adapter; the interface exists
// so this package never imports the grid package directly.
type CollisionLine interface {
	CheckInteraction(point physline.ColliderProps, state physline.ColliderState) (geometry.Point, geometry.Point, bool)
}

// LineLookup answers spatial queries for contact-point collision testing.
// *grid.Grid paired with a line id-to-PhysicsLine registry satisfies this.
type LineLookup interface {
	LinesNearPoint(p geometry.Point) []CollisionLine
}
