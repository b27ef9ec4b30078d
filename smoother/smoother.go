// Package smoother turns a raw, axis-stepped waypoint polyline into a smooth
// one via nonlinear least-squares, the way the IK solver in the teacher
// package turns a joint seed into a pose-matching configuration: a scalar
// objective, a numerically differentiated gradient, and nlopt's LD_SLSQP.
package smoother

import (
	"math"

	"github.com/go-nlopt/nlopt"
	"github.com/golang/geo/r2"
	"go.uber.org/multierr"
	"gonum.org/v1/gonum/floats"

	"github.com/mobility-stack/latticeplanner/gridmap"
	"github.com/mobility-stack/latticeplanner/logging"
)

// Weights scale the residual terms of the smoothing objective (spec.md
// §4.F). Curvature and MaxCurvature are only active when both are nonzero.
type Weights struct {
	Smoothness   float64
	Costmap      float64
	Distance     float64
	Curvature    float64
	MaxCurvature float64
}

// SolverOptions bounds the nlopt run. Zero values fall back to defaults.
type SolverOptions struct {
	MaxIterations int
	Tolerance     float64
}

const (
	defaultMaxIterations = 200
	defaultTolerance     = 1e-4
	gradientJump         = 1e-6
)

func (o SolverOptions) withDefaults() SolverOptions {
	if o.MaxIterations <= 0 {
		o.MaxIterations = defaultMaxIterations
	}
	if o.Tolerance <= 0 {
		o.Tolerance = defaultTolerance
	}
	return o
}

// Smooth runs the §4.F objective over path's interior points, holding the
// first and last points fixed by excluding them from the decision vector
// entirely. On solver failure it returns (false, path unmodified).
func Smooth(logger logging.Logger, path []r2.Point, grid *gridmap.Grid, w Weights, opt SolverOptions) (bool, []r2.Point) {
	if len(path) < 3 {
		return true, path
	}
	fixed := make([]bool, len(path))
	fixed[0] = true
	fixed[len(path)-1] = true
	return optimize(logger, path, fixed, grid, w, opt.withDefaults())
}

// RemoveHook implements §4.F's end-overshoot correction: if the second-to-
// last point is farther from the endpoint than the midpoint of the
// third-to-last point and the endpoint, it is replaced by that midpoint.
// Applying it twice is idempotent — the second pass sees no overshoot.
func RemoveHook(path []r2.Point) []r2.Point {
	n := len(path)
	if n < 3 {
		return path
	}
	last := path[n-1]
	secondLast := path[n-2]
	thirdLast := path[n-3]

	overshoot := math.Hypot(secondLast.X-last.X, secondLast.Y-last.Y)
	mid := r2.Point{X: (thirdLast.X + last.X) / 2, Y: (thirdLast.Y + last.Y) / 2}
	toMid := math.Hypot(mid.X-last.X, mid.Y-last.Y)

	if overshoot <= toMid {
		return path
	}
	out := make([]r2.Point, n)
	copy(out, path)
	out[n-2] = mid
	return out
}

// optimize is the shared nlopt core for Smooth and Upsample: points at a
// true index in fixed stay put; every other point is a free variable.
func optimize(logger logging.Logger, points []r2.Point, fixed []bool, grid *gridmap.Grid, w Weights, opt SolverOptions) (bool, []r2.Point) {
	n := len(points)
	freeIdx := make([]int, 0, n)
	for i, f := range fixed {
		if !f {
			freeIdx = append(freeIdx, i)
		}
	}
	if len(freeIdx) == 0 {
		return true, points
	}

	spacing := meanSpacing(points)
	dim := 2 * len(freeIdx)
	x0 := make([]float64, dim)
	work := make([]r2.Point, n)
	copy(work, points)
	for k, i := range freeIdx {
		x0[2*k], x0[2*k+1] = points[i].X, points[i].Y
	}

	applyX := func(x []float64) {
		for k, i := range freeIdx {
			work[i] = r2.Point{X: x[2*k], Y: x[2*k+1]}
		}
	}

	objective := func(x, gradient []float64) float64 {
		applyX(x)
		val := residualSum(work, grid, w, spacing)
		for k := range gradient {
			orig := x[k]
			x[k] = orig + gradientJump
			applyX(x)
			perturbed := residualSum(work, grid, w, spacing)
			x[k] = orig
			gradient[k] = (perturbed - val) / gradientJump
		}
		applyX(x)
		return val
	}

	solver, err := nlopt.NewNLopt(nlopt.LD_SLSQP, uint(dim))
	if err != nil {
		logger.Warnw("smoother: nlopt creation failed, returning unmodified path", "error", err)
		return false, points
	}
	defer solver.Destroy()

	err = multierr.Combine(
		solver.SetMinObjective(objective),
		solver.SetFtolRel(opt.Tolerance),
		solver.SetXtolRel(opt.Tolerance),
		solver.SetMaxEval(opt.MaxIterations),
	)
	if err != nil {
		logger.Warnw("smoother: nlopt configuration failed, returning unmodified path", "error", err)
		return false, points
	}

	solution, _, err := solver.Optimize(x0)
	if err != nil {
		logger.Warnw("smoother: solve failed, returning unmodified path", "error", err)
		return false, points
	}

	applyX(solution)
	result := make([]r2.Point, n)
	copy(result, work)
	return true, result
}

// residualSum evaluates the full §4.F objective at the current state of
// points, summing the smoothness, costmap, distance, and optional curvature
// residuals over every interior point.
func residualSum(points []r2.Point, grid *gridmap.Grid, w Weights, meanSpacing float64) float64 {
	var total float64
	for i := 1; i < len(points)-1; i++ {
		prev, cur, next := points[i-1], points[i], points[i+1]

		lap := []float64{prev.X - 2*cur.X + next.X, prev.Y - 2*cur.Y + next.Y}
		lapNorm := floats.Norm(lap, 2)
		total += w.Smoothness * lapNorm * lapNorm

		total += w.Costmap * costPenalty(cellCostAt(grid, cur))

		seg := []float64{cur.X - prev.X, cur.Y - prev.Y}
		d := floats.Norm(seg, 2)
		total += w.Distance * (d - meanSpacing) * (d - meanSpacing)

		if w.Curvature > 0 && w.MaxCurvature > 0 {
			over := math.Max(0, curvature(prev, cur, next)-w.MaxCurvature)
			total += w.Curvature * over * over
		}
	}
	return total
}

// cellCostAt looks up the cost under p, treating points that fall outside
// the grid as free rather than rejecting the candidate outright — the
// smoother works in continuous space and may briefly step past the grid
// boundary mid-optimization.
func cellCostAt(grid *gridmap.Grid, p r2.Point) gridmap.CellCost {
	mx, my, ok := grid.WorldToMap(p.X, p.Y)
	if !ok {
		return gridmap.Free
	}
	return grid.CostAtXY(mx, my)
}

// costPenalty is monotone in cost up to Occupied, per spec.md §4.F.2.
func costPenalty(cost gridmap.CellCost) float64 {
	normalized := float64(cost) / float64(gridmap.Occupied)
	return normalized * normalized
}

// curvature is the discrete Menger curvature of the triangle (a, b, c): four
// times its area divided by the product of its side lengths.
func curvature(a, b, c r2.Point) float64 {
	ab := math.Hypot(b.X-a.X, b.Y-a.Y)
	bc := math.Hypot(c.X-b.X, c.Y-b.Y)
	ca := math.Hypot(a.X-c.X, a.Y-c.Y)
	if ab == 0 || bc == 0 || ca == 0 {
		return 0
	}
	area := 0.5 * math.Abs((b.X-a.X)*(c.Y-a.Y)-(c.X-a.X)*(b.Y-a.Y))
	return 4 * area / (ab * bc * ca)
}

func meanSpacing(points []r2.Point) float64 {
	if len(points) < 2 {
		return 0
	}
	var total float64
	for i := 1; i < len(points); i++ {
		total += math.Hypot(points[i].X-points[i-1].X, points[i].Y-points[i-1].Y)
	}
	return total / float64(len(points)-1)
}
