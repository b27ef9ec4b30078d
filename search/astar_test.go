package search

import (
	"math"
	"testing"

	"go.viam.com/test"

	"github.com/mobility-stack/latticeplanner/gridmap"
	"github.com/mobility-stack/latticeplanner/motiontable"
)

func emptyGrid(size int) *gridmap.Grid {
	costs := make([]gridmap.CellCost, size*size)
	g, err := gridmap.New(size, size, 0, 0, 1.0, costs)
	if err != nil {
		panic(err)
	}
	return g
}

// TestMoorePathOnEmptyGridHasLengthEight matches spec.md §8's worked example:
// an empty 10x10 grid, Moore connectivity, start (0,0) goal (7,7) should
// reach the goal in 8 expansions (the diagonal chain).
func TestMoorePathOnEmptyGridHasLengthEight(t *testing.T) {
	grid := emptyGrid(10)
	a := NewAStar2D()
	test.That(t, a.Initialize(0.5, true, 0, 0), test.ShouldBeNil)
	test.That(t, a.CreateGraph(motiontable.Moore, grid), test.ShouldBeNil)
	a.SetStart(0, 0)
	a.SetGoal(7, 7)

	path, _, err := a.CreatePath(0)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(path), test.ShouldEqual, 8)
	test.That(t, path[0].X(), test.ShouldEqual, 0)
	test.That(t, path[0].Y(), test.ShouldEqual, 0)
	test.That(t, path[len(path)-1].X(), test.ShouldEqual, 7)
	test.That(t, path[len(path)-1].Y(), test.ShouldEqual, 7)
}

// TestVerticalWallForcesDetour checks a full-height wall with one gap is
// routed through the gap rather than straight across.
func TestVerticalWallForcesDetour(t *testing.T) {
	const size = 10
	costs := make([]gridmap.CellCost, size*size)
	wallX := 5
	gapY := 8
	for y := 0; y < size; y++ {
		if y == gapY {
			continue
		}
		costs[y*size+wallX] = gridmap.Occupied
	}
	grid, err := gridmap.New(size, size, 0, 0, 1.0, costs)
	test.That(t, err, test.ShouldBeNil)

	a := NewAStar2D()
	test.That(t, a.Initialize(0.5, true, 0, 0), test.ShouldBeNil)
	test.That(t, a.CreateGraph(motiontable.VonNeumann, grid), test.ShouldBeNil)
	a.SetStart(0, 0)
	a.SetGoal(9, 0)

	path, _, err := a.CreatePath(0)
	test.That(t, err, test.ShouldBeNil)
	crossedAtGap := false
	for _, n := range path {
		if n.X() == wallX {
			test.That(t, n.Y(), test.ShouldEqual, gapY)
			crossedAtGap = true
		}
	}
	test.That(t, crossedAtGap, test.ShouldBeTrue)
}

// TestUnknownCellDisallowedFailsSearch exercises allow_unknown=false against
// a start cell surrounded by unknown space, per spec.md §8.
func TestUnknownCellDisallowedFailsSearch(t *testing.T) {
	const size = 5
	costs := make([]gridmap.CellCost, size*size)
	for i := range costs {
		costs[i] = gridmap.Unknown
	}
	costs[0] = gridmap.Free
	grid, err := gridmap.New(size, size, 0, 0, 1.0, costs)
	test.That(t, err, test.ShouldBeNil)

	a := NewAStar2D()
	test.That(t, a.Initialize(0.5, false, 0, 0), test.ShouldBeNil)
	test.That(t, a.CreateGraph(motiontable.Moore, grid), test.ShouldBeNil)
	a.SetStart(0, 0)
	a.SetGoal(4, 4)

	_, _, err = a.CreatePath(0)
	test.That(t, err, test.ShouldNotBeNil)
}

// TestMaxIterationsExhaustsBeforeGoal confirms a tiny iteration budget on an
// otherwise-solvable problem fails with the exhaustion error, not errNoPath.
func TestMaxIterationsExhaustsBeforeGoal(t *testing.T) {
	grid := emptyGrid(20)
	a := NewAStar2D()
	test.That(t, a.Initialize(0.5, true, 3, 0), test.ShouldBeNil)
	test.That(t, a.CreateGraph(motiontable.Moore, grid), test.ShouldBeNil)
	a.SetStart(0, 0)
	a.SetGoal(19, 19)

	_, iterations, err := a.CreatePath(0)
	test.That(t, err, test.ShouldEqual, errIterationsExhausted)
	test.That(t, iterations, test.ShouldEqual, 3)
}

// TestSearchIsDeterministic confirms two runs over a fresh pool on identical
// inputs produce byte-identical paths (spec.md Testable Properties).
func TestSearchIsDeterministic(t *testing.T) {
	grid := emptyGrid(15)
	run := func() []int {
		a := NewAStar2D()
		test.That(t, a.Initialize(0.5, true, 0, 0), test.ShouldBeNil)
		test.That(t, a.CreateGraph(motiontable.Moore, grid), test.ShouldBeNil)
		a.SetStart(1, 1)
		a.SetGoal(13, 11)
		path, _, err := a.CreatePath(0)
		test.That(t, err, test.ShouldBeNil)
		indices := make([]int, len(path))
		for i, n := range path {
			indices[i] = n.Index()
		}
		return indices
	}
	first := run()
	second := run()
	test.That(t, len(first), test.ShouldEqual, len(second))
	for i := range first {
		test.That(t, first[i], test.ShouldEqual, second[i])
	}
}

// TestEveryPathCellIsTraversable is a property test: no returned path may
// pass through an occupied cell.
func TestEveryPathCellIsTraversable(t *testing.T) {
	const size = 12
	costs := make([]gridmap.CellCost, size*size)
	for y := 0; y < size; y++ {
		if y == 6 {
			continue
		}
		costs[y*size+6] = gridmap.Occupied
	}
	grid, err := gridmap.New(size, size, 0, 0, 1.0, costs)
	test.That(t, err, test.ShouldBeNil)

	a := NewAStar2D()
	test.That(t, a.Initialize(0.5, true, 0, 0), test.ShouldBeNil)
	test.That(t, a.CreateGraph(motiontable.Moore, grid), test.ShouldBeNil)
	a.SetStart(0, 0)
	a.SetGoal(11, 11)
	path, _, err := a.CreatePath(0)
	test.That(t, err, test.ShouldBeNil)
	for _, n := range path {
		test.That(t, n.IsValid(true), test.ShouldBeTrue)
	}
}

// TestReedsSheppUsesReversePrimitive checks that a goal directly behind the
// start (heading-wise) is reached using at least one negative-DX primitive,
// unlike Dubin which cannot reverse.
func TestReedsSheppUsesReversePrimitive(t *testing.T) {
	grid := emptyGrid(20)
	const numAngles = 36
	a := NewAStarSE2()
	test.That(t, a.Initialize(0.5, true, 0, 0), test.ShouldBeNil)
	test.That(t, a.CreateGraph(motiontable.ReedsShepp, grid, numAngles, 3.0), test.ShouldBeNil)
	a.SetStart(10, 10, 0)
	a.SetGoal(7, 10, 18) // three cells behind start, facing back toward it

	path, _, err := a.CreatePath(1.5)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(path), test.ShouldBeGreaterThan, 0)

	reverseSteps := 0
	for i := 1; i < len(path); i++ {
		px, py, ptheta := path[i-1].Pose()
		qx, qy, _ := path[i].Pose()
		if (qx-px)*math.Cos(ptheta)+(qy-py)*math.Sin(ptheta) < 0 {
			reverseSteps++
		}
	}
	test.That(t, reverseSteps, test.ShouldBeGreaterThan, 0)
}

// TestDubinCurvatureRespectsMinTurningRadius confirms every turning Dubin
// primitive in the table lies on an arc of at least the configured radius
// and turns by at least one angular bin (i.e. the table never emits a
// primitive tighter than the configured radius).
func TestDubinCurvatureRespectsMinTurningRadius(t *testing.T) {
	const numAngles = 72
	const minRadius = 5.0
	tbl, err := motiontable.NewTable(motiontable.Dubin, 50, numAngles, minRadius)
	test.That(t, err, test.ShouldBeNil)
	binSize := 2 * math.Pi / float64(numAngles)
	for _, p := range tbl.Projections {
		if p.DTheta == 0 {
			continue
		}
		chord := math.Hypot(p.DX, p.DY)
		impliedRadius := chord / (2 * math.Sin(math.Abs(p.DTheta)/2))
		test.That(t, impliedRadius, test.ShouldBeGreaterThanOrEqualTo, minRadius*(1-1e-6))
		test.That(t, math.Abs(p.DTheta), test.ShouldBeGreaterThanOrEqualTo, binSize*(1-1e-6))
	}
}
