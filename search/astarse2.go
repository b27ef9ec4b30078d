package search

import (
	"math"

	"github.com/mobility-stack/latticeplanner/gridmap"
	"github.com/mobility-stack/latticeplanner/motiontable"
)

// AStarSE2 is an A* search over the (x, y, theta-bin) lattice, expanded with
// a kinematic motion table (Dubin, Reeds-Shepp, or Balkcom-Mason).
type AStarSE2 struct {
	engine     engine[*NodeSE2]
	pool       *PoolSE2
	table      *motiontable.Table
	grid       *gridmap.Grid
	binSize    float64
	numAngles  int
}

// NewAStarSE2 constructs an uninitialized SE(2) search; call Initialize and
// CreateGraph before SetStart/SetGoal/CreatePath.
func NewAStarSE2() *AStarSE2 {
	return &AStarSE2{}
}

func (a *AStarSE2) Initialize(travelCostScale float64, allowUnknown bool, maxIter, maxOnApproachIter int) error {
	return a.engine.initialize(travelCostScale, allowUnknown, maxIter, maxOnApproachIter)
}

// CreateGraph sizes the node pool and builds the motion table for model
// against grid, quantizing heading into numAngles evenly spaced bins.
func (a *AStarSE2) CreateGraph(model motiontable.Model, grid *gridmap.Grid, numAngles int, minTurningRadius float64) error {
	if !model.IsSE2() {
		return errWrongDimensionality(model)
	}
	table, err := motiontable.NewTable(model, grid.SizeX, numAngles, minTurningRadius)
	if err != nil {
		return err
	}
	a.table = table
	a.grid = grid
	a.numAngles = numAngles
	a.binSize = 2 * math.Pi / float64(numAngles)
	a.pool = NewPoolSE2(grid.SizeX, grid.SizeY, numAngles)

	a.engine.successors = a.successors
	a.engine.heuristic = func(n *NodeSE2) float64 { return a.distance(n, a.engine.goal) }
	a.engine.distToGoal = a.engine.heuristic
	a.engine.sameCell = func(x, y *NodeSE2) bool {
		return x.X() == y.X() && x.Y() == y.Y() && x.ThetaBin() == y.ThetaBin()
	}
	a.engine.lookupFn = func(index int) *NodeSE2 { return a.pool.GetOrCreate(index, a.grid.CostAt(index/a.numAngles)) }
	return nil
}

// SetStart and SetGoal place the endpoints on the lattice. thetaBin is an
// index in [0, numAngles); the continuous pose recorded on the node is in
// grid-cell coordinates (spec.md §3's Pose type), the same frame the motion
// table's primitives are defined in. World-meter conversion happens once,
// at the facade, after a path is reconstructed.
func (a *AStarSE2) SetStart(x, y, thetaBin int) {
	idx := a.pool.Index(x, y, thetaBin)
	n := a.pool.GetOrCreate(idx, a.grid.CostAtXY(x, y))
	n.SetPose(float64(x), float64(y), float64(thetaBin)*a.binSize)
	a.engine.start = n
	a.engine.haveStart = true
}

func (a *AStarSE2) SetGoal(x, y, thetaBin int) {
	idx := a.pool.Index(x, y, thetaBin)
	n := a.pool.GetOrCreate(idx, a.grid.CostAtXY(x, y))
	n.SetPose(float64(x), float64(y), float64(thetaBin)*a.binSize)
	a.engine.goal = n
	a.engine.haveGoal = true
}

func (a *AStarSE2) CreatePath(toleranceCells float64) ([]*NodeSE2, int, error) {
	return a.engine.run(toleranceCells)
}

func (a *AStarSE2) Reset() {
	a.pool.Reset()
	a.engine.start = nil
	a.engine.goal = nil
	a.engine.haveStart, a.engine.haveGoal = false, false
}

func (a *AStarSE2) distance(n, goal *NodeSE2) float64 {
	dx := float64(n.X() - goal.X())
	dy := float64(n.Y() - goal.Y())
	return math.Hypot(dx, dy)
}

// wrapBin normalizes a theta-bin index into [0, numAngles), since a
// primitive's DTheta may rotate past the wrap point in either direction.
func (a *AStarSE2) wrapBin(bin int) int {
	bin %= a.numAngles
	if bin < 0 {
		bin += a.numAngles
	}
	return bin
}

func (a *AStarSE2) successors(current *NodeSE2) []successor[*NodeSE2] {
	px, py, ptheta := current.Pose()
	out := make([]successor[*NodeSE2], 0, len(a.table.Projections))
	for i := range a.table.Projections {
		nx, ny, ntheta := a.table.Project(px, py, ptheta, i)
		mx, my := int(math.Round(nx)), int(math.Round(ny))
		if !a.grid.InBounds(mx, my) {
			continue
		}
		bin := a.wrapBin(int(math.Round(ntheta / a.binSize)))
		idx := a.pool.Index(mx, my, bin)
		n := a.pool.GetOrCreate(idx, a.grid.CostAtXY(mx, my))
		n.SetPose(nx, ny, ntheta)
		prim := a.table.Projections[i]
		out = append(out, successor[*NodeSE2]{node: n, distance: math.Hypot(prim.DX, prim.DY)})
	}
	return out
}
