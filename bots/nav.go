package bots

import (
	"math"

	astar "github.com/beefsack/go-astar"

	cfg "github.com/automoto/arena-mp/config"
	"github.com/automoto/arena-mp/shared/gamemath"
	"github.com/automoto/arena-mp/shared/leveldata"
)

// NavGrid represents the open cells of an arena. Row 0 is the bottom row.
type NavGrid struct {
	Width, Height int
	CellSize      float64
	Nodes         [][]*NavNode // [row][column]
}

// NavNode represents a single cell in the navigation grid
// Implements astar.Pather interface
type NavNode struct {
	X, Y     int
	Walkable bool
	Grid     *NavGrid
}

// PathNeighbors returns adjacent open cells plus landing spots reachable by
// a jump (implements astar.Pather)
func (n *NavNode) PathNeighbors() []astar.Pather {
	var neighbors []astar.Pather

	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if nb := n.Grid.node(n.X+dx, n.Y+dy); nb != nil && nb.Walkable {
				neighbors = append(neighbors, nb)
			}
		}
	}
	return append(neighbors, n.jumpTargets()...)
}

// PathNeighborCost returns the movement cost between nodes (implements astar.Pather)
func (n *NavNode) PathNeighborCost(to astar.Pather) float64 {
	t := to.(*NavNode)
	dx := float64(t.X - n.X)
	dy := float64(t.Y - n.Y)
	cost := math.Hypot(dx, dy)
	// Going up means jumping
	if dy > 0 {
		cost *= 1.5
	}
	return cost
}

// PathEstimatedCost returns heuristic distance to target (implements astar.Pather)
func (n *NavNode) PathEstimatedCost(to astar.Pather) float64 {
	t := to.(*NavNode)
	return math.Hypot(float64(t.X-n.X), float64(t.Y-n.Y))
}

// jumpTargets lists open cells standing on ground within one jump.
func (n *NavNode) jumpTargets() []astar.Pather {
	var targets []astar.Pather
	for dy := -2; dy <= cfg.Bot.JumpCells; dy++ {
		for dx := -cfg.Bot.JumpSpan; dx <= cfg.Bot.JumpSpan; dx++ {
			if absInt(dx) <= 1 && absInt(dy) <= 1 {
				continue
			}
			t := n.Grid.node(n.X+dx, n.Y+dy)
			if t != nil && t.Walkable && n.Grid.hasGroundBelow(t.X, t.Y) {
				targets = append(targets, t)
			}
		}
	}
	return targets
}

// NewNavGrid marks every cell that a cell-sized box can occupy without
// touching solid tiles.
func NewNavGrid(level *leveldata.CollisionData, cellSize float64) *NavGrid {
	if cellSize <= 0 {
		cellSize = 32
	}
	gridW := int(float64(level.MapWidth) / cellSize)
	gridH := int(float64(level.MapHeight) / cellSize)
	solids := leveldata.NewSpawnGrid(level)

	grid := &NavGrid{
		Width:    gridW,
		Height:   gridH,
		CellSize: cellSize,
		Nodes:    make([][]*NavNode, gridH),
	}
	for y := 0; y < gridH; y++ {
		grid.Nodes[y] = make([]*NavNode, gridW)
		for x := 0; x < gridW; x++ {
			grid.Nodes[y][x] = &NavNode{
				X:        x,
				Y:        y,
				Walkable: !solids.Blocked(grid.CellCenter(x, y), cellSize, cellSize),
				Grid:     grid,
			}
		}
	}
	return grid
}

func (g *NavGrid) node(x, y int) *NavNode {
	if x < 0 || x >= g.Width || y < 0 || y >= g.Height {
		return nil
	}
	return g.Nodes[y][x]
}

// hasGroundBelow checks if the cell under x, y is solid. The bottom edge is
// not ground; arenas put death zones there.
func (g *NavGrid) hasGroundBelow(x, y int) bool {
	below := g.node(x, y-1)
	return below != nil && !below.Walkable
}

// Cell returns the grid cell holding p, clamped to the grid.
func (g *NavGrid) Cell(p gamemath.Vec) (int, int) {
	return clampInt(int(p.X/g.CellSize), 0, g.Width-1),
		clampInt(int(p.Y/g.CellSize), 0, g.Height-1)
}

// CellCenter converts grid coordinates to the world position of the cell's
// centre.
func (g *NavGrid) CellCenter(x, y int) gamemath.Vec {
	return gamemath.V(float64(x)*g.CellSize+g.CellSize/2, float64(y)*g.CellSize+g.CellSize/2)
}

// FindPath uses go-astar to find a path between world positions. The result
// runs from the start cell to the goal cell.
func (g *NavGrid) FindPath(from, to gamemath.Vec) []*NavNode {
	if g.Width == 0 || g.Height == 0 {
		return nil
	}
	start := g.node(g.Cell(from))
	goal := g.node(g.Cell(to))
	if !start.Walkable {
		start = g.findNearestWalkable(start.X, start.Y)
	}
	if !goal.Walkable {
		goal = g.findNearestWalkable(goal.X, goal.Y)
	}
	if start == nil || goal == nil {
		return nil
	}

	path, _, found := astar.Path(start, goal)
	if !found {
		return nil
	}
	result := make([]*NavNode, len(path))
	for i, p := range path {
		result[i] = p.(*NavNode)
	}
	if result[0] != start {
		for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
			result[i], result[j] = result[j], result[i]
		}
	}
	return result
}

// Waypoint is the next cell centre to head for on the way from one point to
// another. ok is false when no path exists.
func (g *NavGrid) Waypoint(from, to gamemath.Vec) (gamemath.Vec, bool) {
	path := g.FindPath(from, to)
	switch len(path) {
	case 0:
		return gamemath.Vec{}, false
	case 1:
		return to, true
	}
	next := path[1]
	return g.CellCenter(next.X, next.Y), true
}

// findNearestWalkable finds the nearest open cell in expanding squares.
func (g *NavGrid) findNearestWalkable(x, y int) *NavNode {
	for radius := 1; radius < 10; radius++ {
		for dy := -radius; dy <= radius; dy++ {
			for dx := -radius; dx <= radius; dx++ {
				if n := g.node(x+dx, y+dy); n != nil && n.Walkable {
					return n
				}
			}
		}
	}
	return nil
}

func clampInt(v, minVal, maxVal int) int {
	return max(minVal, min(maxVal, v))
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
