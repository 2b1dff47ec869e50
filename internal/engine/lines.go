package engine

import (
	"github.com/linerider/trackphysics/internal/entity"
	"github.com/linerider/trackphysics/internal/geometry"
	"github.com/linerider/trackphysics/internal/grid"
	"github.com/linerider/trackphysics/internal/physline"
)

// LineID identifies a physics line the engine owns. It is just grid.LineID
// under a package-local name so callers of this package never need to
// import internal/grid themselves.
type LineID = grid.LineID

// lineStore owns every physics line the engine knows about, keeping the
// spatial grid's registrations in sync with each line's current endpoints.
type lineStore struct {
	grid    *grid.Grid
	lines   map[LineID]*physline.PhysicsLine
	nextID  LineID
	idOrder []LineID
}

func newLineStore(version grid.Version, cellSize float64) *lineStore {
	return &lineStore{
		grid:  grid.New(version, cellSize),
		lines: make(map[LineID]*physline.PhysicsLine),
	}
}

func (s *lineStore) add(line *physline.PhysicsLine) LineID {
	id := s.nextID
	s.nextID++
	s.lines[id] = line
	s.idOrder = append(s.idOrder, id)
	s.grid.AddLine(id, line.Endpoints())
	return id
}

func (s *lineStore) get(id LineID) (*physline.PhysicsLine, error) {
	l, ok := s.lines[id]
	if !ok {
		return nil, wrapLineErr(id)
	}
	return l, nil
}

func (s *lineStore) replace(id LineID, line *physline.PhysicsLine) error {
	existing, ok := s.lines[id]
	if !ok {
		return wrapLineErr(id)
	}
	s.grid.MoveLine(id, existing.Endpoints(), line.Endpoints())
	s.lines[id] = line
	return nil
}

func (s *lineStore) remove(id LineID) error {
	existing, ok := s.lines[id]
	if !ok {
		return wrapLineErr(id)
	}
	s.grid.RemoveLine(id, existing.Endpoints())
	delete(s.lines, id)
	for i, existingID := range s.idOrder {
		if existingID == id {
			s.idOrder = append(s.idOrder[:i], s.idOrder[i+1:]...)
			break
		}
	}
	return nil
}

// rebuild replaces the grid with a fresh one of the given version,
// re-registering every line's current endpoints. Used by SetGridVersion,
// since grid.Grid's traversal rule is fixed at construction.
func (s *lineStore) rebuild(version grid.Version, cellSize float64) {
	g := grid.New(version, cellSize)
	for _, id := range s.idOrder {
		g.AddLine(id, s.lines[id].Endpoints())
	}
	s.grid = g
}

func (s *lineStore) version() grid.Version {
	return s.grid.Version()
}

// LinesNearPoint implements entity.LineLookup by resolving grid line ids
// to their physics-line objects.
func (s *lineStore) LinesNearPoint(p geometry.Point) []entity.CollisionLine {
	ids := s.grid.LinesNearPoint(p)
	out := make([]entity.CollisionLine, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.lines[id])
	}
	return out
}
