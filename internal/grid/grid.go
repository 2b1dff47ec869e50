// Package grid implements the spatial hash used to find which lines lie
// near a point or rectangle without scanning every line in a track. Lines
// are registered into the cells their segment passes through; three
// historical rule versions disagree on exactly which cells that is, and the
// grid dispatches on the version it was built with.
package grid

import (
	"math"
	"sort"

	"github.com/linerider/trackphysics/internal/geometry"
)

// Version selects which cell-traversal rule a Grid uses when deciding which
// cells a line segment occupies. Later versions correct marching artifacts
// present in the earlier ones; all three are kept because existing tracks
// were authored against one of them and changing it changes collision
// behavior.
type Version int

const (
	// V6_0 tests every candidate cell in the line's bounding box against the
	// line's hitbox directly (a box-overlap test), rather than marching
	// along the line.
	V6_0 Version = iota
	// V6_1 marches cell-to-cell along the line using a slope/y-intercept
	// projection, with a diagonal tie-break when the two candidate steps are
	// equidistant.
	V6_1
	// V6_2 is V6_1 with a sign correction applied when the current cell's
	// integer coordinate is negative, fixing an asymmetry around the origin.
	V6_2
)

func (v Version) String() string {
	switch v {
	case V6_0:
		return "V6.0"
	case V6_1:
		return "V6.1"
	case V6_2:
		return "V6.2"
	default:
		return "unknown"
	}
}

// LineID identifies a line registered in a Grid. The grid itself assigns no
// meaning to the value beyond equality; callers own the id space.
type LineID uint32

// CellKey is the bijective integer key a cell's integer coordinates hash to.
type CellKey int64

type cellCoord struct {
	X, Y int
}

// key computes the Cantor-pairing-style signed bijection from an integer
// cell coordinate to a single CellKey, mirroring the reference grid's
// GridCell::get_key.
func (c cellCoord) key() CellKey {
	var xComp, yComp int64
	if c.X >= 0 {
		xComp = 2 * int64(c.X)
	} else {
		xComp = -2*int64(c.X) - 1
	}
	if c.Y >= 0 {
		yComp = 2 * int64(c.Y)
	} else {
		yComp = -2*int64(c.Y) - 1
	}

	var hash int64
	if xComp >= yComp {
		hash = xComp*xComp + xComp + yComp
	} else {
		hash = yComp*yComp + xComp
	}

	if hash%2 == 1 {
		return CellKey(-(hash-1)/2 - 1)
	}
	return CellKey(hash/2 + 1)
}

// cell is a world position resolved to the grid cell that contains it, plus
// the sub-cell remainder used by the marching rules.
type cell struct {
	position  cellCoord
	remainder geometry.Vector
}

func newCell(worldPosition geometry.Point, cellSize float64) cell {
	scaledX := worldPosition.X / cellSize
	scaledY := worldPosition.Y / cellSize
	posX := int(math.Floor(scaledX))
	posY := int(math.Floor(scaledY))
	origin := geometry.Point{X: float64(posX) * cellSize, Y: float64(posY) * cellSize}
	return cell{
		position:  cellCoord{X: posX, Y: posY},
		remainder: worldPosition.Sub(origin),
	}
}

type lineSet map[LineID]struct{}

// Grid is a spatial hash from cell key to the set of line ids occupying
// that cell. It holds no line geometry itself; callers pass a line's
// current endpoints on every add/remove/move call.
type Grid struct {
	version  Version
	cellSize float64
	cells    map[CellKey]lineSet
}

// New creates an empty grid using the given traversal rule version and
// cell size (the world-space width and height of one cell).
func New(version Version, cellSize float64) *Grid {
	return &Grid{
		version:  version,
		cellSize: cellSize,
		cells:    make(map[CellKey]lineSet),
	}
}

// Version reports the traversal rule this grid was built with.
func (g *Grid) Version() Version {
	return g.version
}

func (g *Grid) register(id LineID, c cell) {
	key := c.position.key()
	set, ok := g.cells[key]
	if !ok {
		set = make(lineSet)
		g.cells[key] = set
	}
	set[id] = struct{}{}
}

func (g *Grid) unregister(id LineID, c cell) {
	key := c.position.key()
	if set, ok := g.cells[key]; ok {
		delete(set, id)
	}
}

// AddLine registers id into every cell the segment occupies.
func (g *Grid) AddLine(id LineID, line geometry.Line) {
	for _, c := range g.cellPositionsAlong(line) {
		g.register(id, c)
	}
}

// RemoveLine removes id from every cell the segment occupies.
func (g *Grid) RemoveLine(id LineID, line geometry.Line) {
	for _, c := range g.cellPositionsAlong(line) {
		g.unregister(id, c)
	}
}

// MoveLine removes id from the cells its old endpoints occupied and
// registers it into the cells its new endpoints occupy.
func (g *Grid) MoveLine(id LineID, oldLine, newLine geometry.Line) {
	for _, c := range g.cellPositionsAlong(oldLine) {
		g.unregister(id, c)
	}
	for _, c := range g.cellPositionsAlong(newLine) {
		g.register(id, c)
	}
}

// nextPosition computes the next marching point along line starting from
// current, per the V6.1/V6.2 rule. V6_0 never calls this.
func (g *Grid) nextPosition(current geometry.Point, line geometry.Line) geometry.Point {
	currentCell := newCell(current, g.cellSize)
	ev := line.Vector()

	var deltaX float64
	if ev.X > 0 {
		deltaX = g.cellSize - currentCell.remainder.X
	} else {
		deltaX = -1.0 - currentCell.remainder.X
	}
	var deltaY float64
	if ev.Y > 0 {
		deltaY = g.cellSize - currentCell.remainder.Y
	} else {
		deltaY = -1.0 - currentCell.remainder.Y
	}

	if g.version == V6_2 {
		if currentCell.position.X < 0 {
			if ev.X > 0 {
				deltaX = g.cellSize + currentCell.remainder.X
			} else {
				deltaX = -(g.cellSize + currentCell.remainder.X)
			}
		}
		if currentCell.position.Y < 0 {
			if ev.Y > 0 {
				deltaY = g.cellSize + currentCell.remainder.Y
			} else {
				deltaY = -(g.cellSize + currentCell.remainder.Y)
			}
		}
	}

	switch {
	case ev.X == 0:
		return geometry.Point{X: current.X, Y: current.Y + deltaY}
	case ev.Y == 0:
		return geometry.Point{X: current.X + deltaX, Y: current.Y}
	case g.version == V6_1:
		slope := ev.Y / ev.X
		yIntercept := line.P0.Y - slope*line.P0.X
		nextX := math.Round((current.Y + deltaY - yIntercept) / slope)
		nextY := math.Round(slope*(current.X+deltaX) + yIntercept)
		switch {
		case math.Abs(nextY-current.Y) < math.Abs(deltaY):
			return geometry.Point{X: current.X + deltaX, Y: nextY}
		case math.Abs(nextY-current.Y) == math.Abs(deltaY):
			return geometry.Point{X: current.X + deltaX, Y: current.Y + deltaY}
		default:
			return geometry.Point{X: nextX, Y: current.Y + deltaY}
		}
	default:
		yBasedDeltaX := deltaY * (ev.X / ev.Y)
		xBasedDeltaY := deltaX * (ev.Y / ev.X)
		nextX := current.X + yBasedDeltaX
		nextY := current.Y + xBasedDeltaY
		switch {
		case math.Abs(xBasedDeltaY) < math.Abs(deltaY):
			return geometry.Point{X: current.X + deltaX, Y: nextY}
		case math.Abs(xBasedDeltaY) == math.Abs(deltaY):
			return geometry.Point{X: current.X + deltaX, Y: current.Y + deltaY}
		default:
			return geometry.Point{X: nextX, Y: current.Y + deltaY}
		}
	}
}

// cellPositionsAlong returns every cell the segment occupies, in traversal
// order for V6.1/V6.2, or bounding-box order for V6.0.
func (g *Grid) cellPositionsAlong(line geometry.Line) []cell {
	initial := newCell(line.P0, g.cellSize)
	final := newCell(line.P1, g.cellSize)

	if line.P0 == line.P1 || initial.position == final.position {
		return []cell{initial}
	}

	lowerX := min(initial.position.X, final.position.X)
	upperX := max(initial.position.X, final.position.X)
	lowerY := min(initial.position.Y, final.position.Y)
	upperY := max(initial.position.Y, final.position.Y)

	var cells []cell

	if g.version == V6_0 {
		lineVector := line.Vector()
		lineNormal := lineVector.RotateCCW().Scale(1.0 / lineVector.Length())
		lineHalfway := geometry.Vector{X: 0.5 * math.Abs(lineVector.X), Y: 0.5 * math.Abs(lineVector.Y)}
		lineMidpoint := line.P0.Translate(lineVector.Scale(0.5))
		absoluteNormal := geometry.Vector{X: math.Abs(lineNormal.X), Y: math.Abs(lineNormal.Y)}

		for cellX := lowerX; cellX <= upperX; cellX++ {
			for cellY := lowerY; cellY <= upperY; cellY++ {
				currentPositionInBox := geometry.Point{
					X: g.cellSize * (float64(cellX) + 0.5),
					Y: g.cellSize * (float64(cellY) + 0.5),
				}
				nextCellPosition := newCell(currentPositionInBox, g.cellSize)
				distanceBetweenCenters := lineMidpoint.Sub(currentPositionInBox)
				distanceFromCellCenter := absoluteNormal.Dot(nextCellPosition.remainder)
				cellOverlapIntoHitbox := distanceFromCellCenter * (absoluteNormal.X + absoluteNormal.Y)
				normalDistanceBetweenCenters := lineNormal.Dot(distanceBetweenCenters)
				distanceFromLine := math.Abs(normalDistanceBetweenCenters*lineNormal.X) +
					math.Abs(normalDistanceBetweenCenters*lineNormal.Y)

				if lineHalfway.X+nextCellPosition.remainder.X >= math.Abs(distanceBetweenCenters.X) &&
					lineHalfway.Y+nextCellPosition.remainder.Y >= math.Abs(distanceBetweenCenters.Y) &&
					cellOverlapIntoHitbox >= distanceFromLine {
					cells = append(cells, nextCellPosition)
				}
			}
		}
		return cells
	}

	currentPositionAlongLine := line.P0
	currentCell := initial
	for lowerX <= currentCell.position.X && currentCell.position.X <= upperX &&
		lowerY <= currentCell.position.Y && currentCell.position.Y <= upperY {
		currentPositionAlongLine = g.nextPosition(currentPositionAlongLine, line)
		nextCellPos := newCell(currentPositionAlongLine, g.cellSize)
		if nextCellPos.position == currentCell.position {
			break
		}
		cells = append(cells, currentCell)
		currentCell = nextCellPos
	}
	return cells
}

func (g *Grid) linesBetweenCells(c1, c2 cell) []LineID {
	lowerX := min(c1.position.X, c2.position.X)
	upperX := max(c1.position.X, c2.position.X)
	lowerY := min(c1.position.Y, c2.position.Y)
	upperY := max(c1.position.Y, c2.position.Y)

	found := make(map[LineID]struct{})
	for cx := lowerX; cx <= upperX; cx++ {
		for cy := lowerY; cy <= upperY; cy++ {
			key := cellCoord{X: cx, Y: cy}.key()
			if set, ok := g.cells[key]; ok {
				for id := range set {
					found[id] = struct{}{}
				}
			}
		}
	}

	ids := make([]LineID, 0, len(found))
	for id := range found {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// LinesNearRect returns, in ascending id order, every line id registered in
// any cell overlapping rect's bounding cells.
func (g *Grid) LinesNearRect(rect geometry.Rectangle) []LineID {
	lower := newCell(rect.BottomLeft, g.cellSize)
	upper := newCell(rect.TopRight, g.cellSize)
	return g.linesBetweenCells(lower, upper)
}

// LinesNearPoint returns, in ascending id order, every line id registered
// in the cell containing p.
func (g *Grid) LinesNearPoint(p geometry.Point) []LineID {
	return g.LinesNearRect(geometry.Rectangle{BottomLeft: p, TopRight: p})
}
