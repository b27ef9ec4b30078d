package search

import (
	"math"

	"github.com/mobility-stack/latticeplanner/gridmap"
	"github.com/mobility-stack/latticeplanner/motiontable"
)

// AStar2D is an A* search over a plain 2D grid, expanded with the Moore or
// Von-Neumann motion primitives (no heading). It owns its own node pool and
// motion table; spec.md's Design Notes direct against a shared global table,
// since two concurrent plans must not alias each other's primitive set.
type AStar2D struct {
	engine engine[*Node2D]
	pool   *Pool2D
	table  *motiontable.Table
	grid   *gridmap.Grid
}

// NewAStar2D constructs an uninitialized 2D search; call Initialize and
// CreateGraph before SetStart/SetGoal/CreatePath.
func NewAStar2D() *AStar2D {
	return &AStar2D{}
}

// Initialize configures the search-wide parameters shared by every plan run
// through this instance (spec.md §4.E.Initialize).
func (a *AStar2D) Initialize(travelCostScale float64, allowUnknown bool, maxIter, maxOnApproachIter int) error {
	return a.engine.initialize(travelCostScale, allowUnknown, maxIter, maxOnApproachIter)
}

// CreateGraph sizes the node pool and builds the motion table for model
// against a grid of costs row-major in (x, y).
func (a *AStar2D) CreateGraph(model motiontable.Model, grid *gridmap.Grid) error {
	if model.IsSE2() {
		return errWrongDimensionality(model)
	}
	table, err := motiontable.NewTable(model, grid.SizeX, 1, 0)
	if err != nil {
		return err
	}
	a.table = table
	a.grid = grid
	a.pool = NewPool2D(grid.SizeX, grid.SizeY)

	a.engine.successors = a.successors
	a.engine.heuristic = func(n *Node2D) float64 { return a.distance(n, a.engine.goal) }
	a.engine.distToGoal = a.engine.heuristic
	a.engine.sameCell = func(x, y *Node2D) bool { return x.X() == y.X() && x.Y() == y.Y() }
	a.engine.lookupFn = func(index int) *Node2D { return a.pool.GetOrCreate(index, a.grid.CostAt(index)) }
	return nil
}

// SetStart and SetGoal place the endpoints on the grid, in map cell
// coordinates.
func (a *AStar2D) SetStart(x, y int) {
	idx := a.pool.Index(x, y)
	a.engine.start = a.pool.GetOrCreate(idx, a.grid.CostAt(idx))
	a.engine.haveStart = true
}

func (a *AStar2D) SetGoal(x, y int) {
	idx := a.pool.Index(x, y)
	a.engine.goal = a.pool.GetOrCreate(idx, a.grid.CostAt(idx))
	a.engine.haveGoal = true
}

// CreatePath runs the search and returns the node sequence from start to
// goal. toleranceCells <= 0 disables tolerance-based termination and demands
// an exact match to the goal cell.
func (a *AStar2D) CreatePath(toleranceCells float64) ([]*Node2D, int, error) {
	return a.engine.run(toleranceCells)
}

// Reset restores the pool to its initial state for reuse by a subsequent
// plan on the same grid dimensions.
func (a *AStar2D) Reset() {
	a.pool.Reset()
	a.engine.start = nil
	a.engine.goal = nil
	a.engine.haveStart, a.engine.haveGoal = false, false
}

func (a *AStar2D) distance(n, goal *Node2D) float64 {
	dx := float64(n.X() - goal.X())
	dy := float64(n.Y() - goal.Y())
	return math.Hypot(dx, dy)
}

func (a *AStar2D) successors(current *Node2D) []successor[*Node2D] {
	out := make([]successor[*Node2D], 0, len(a.table.Projections))
	for _, prim := range a.table.Projections {
		nx := current.X() + int(math.Round(prim.DX))
		ny := current.Y() + int(math.Round(prim.DY))
		if !a.grid.InBounds(nx, ny) {
			continue
		}
		idx := a.pool.Index(nx, ny)
		n := a.pool.GetOrCreate(idx, a.grid.CostAt(idx))
		out = append(out, successor[*Node2D]{node: n, distance: math.Hypot(prim.DX, prim.DY)})
	}
	return out
}
