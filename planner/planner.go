// Package planner is the facade that orchestrates a costmap snapshot, the
// search graph, and the smoother into one create-path call, the way
// smac_planner's createPlan ties its own pieces together.
package planner

import (
	"context"
	"math"
	"time"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.viam.com/utils"

	"github.com/mobility-stack/latticeplanner/gridmap"
	"github.com/mobility-stack/latticeplanner/logging"
	"github.com/mobility-stack/latticeplanner/motiontable"
	"github.com/mobility-stack/latticeplanner/search"
	"github.com/mobility-stack/latticeplanner/smoother"
)

// Result is everything one create-path call hands back. RawPath and
// SmoothedPath are introspection fields carried over from the original's
// debug publishers (minus the transport) — Path is the one most callers
// want.
type Result struct {
	Path         []Pose
	RawPath      []Pose
	SmoothedPath []Pose
	Iterations   int
	Warnings     []string
}

// Planner is a configured, reusable facade. It is not safe for concurrent
// use by multiple goroutines on the same instance — spec.md §5 scopes the
// node pool and motion table to one plan at a time.
type Planner struct {
	cfg    Config
	model  motiontable.Model
	logger logging.Logger
}

// New validates cfg and constructs a Planner. TravelCostScale outside [0,1]
// and an unrecognized motion model are both fatal per spec.md §6 — Go
// convention returns that as an error rather than exiting the process; the
// caller decides whether to treat it as fatal.
func New(cfg Config, logger logging.Logger) (*Planner, error) {
	if cfg.TravelCostScale < 0 || cfg.TravelCostScale > 1 {
		return nil, errors.Errorf("planner: travel_cost_scale must be in [0,1], got %v", cfg.TravelCostScale)
	}
	model, err := motiontable.ParseModel(cfg.MotionModelForSearch)
	if err != nil {
		return nil, errors.Wrap(err, "planner: invalid motion_model_for_search")
	}
	return &Planner{cfg: cfg, model: model, logger: logger}, nil
}

type planOutcome struct {
	result Result
	err    error
}

// CreatePath runs one plan from start to goal against grid, per spec.md
// §4.H's pipeline: downsample, search, grid-to-world, smooth, upsample,
// hook removal. The search itself runs on a background goroutine so ctx
// cancellation is honored even mid-solve, mirroring the teacher's
// rrtConnectMotionPlanner.Plan.
func (p *Planner) CreatePath(ctx context.Context, start, goal Pose, grid *gridmap.Grid) (Result, error) {
	outcomeChan := make(chan planOutcome, 1)
	utils.PanicCapturingGo(func() {
		outcomeChan <- p.planSynchronously(start, goal, grid)
	})
	select {
	case <-ctx.Done():
		return Result{}, ctx.Err()
	case outcome := <-outcomeChan:
		return outcome.result, outcome.err
	}
}

func (p *Planner) planSynchronously(start, goal Pose, grid *gridmap.Grid) planOutcome {
	began := time.Now()
	var warnings []string

	workGrid := grid
	if p.cfg.DownsampleCostmap {
		workGrid = gridmap.Downsample(grid, p.cfg.DownsamplingFactor)
	}

	startMX, startMY, ok := workGrid.WorldToMap(start.X, start.Y)
	if !ok {
		p.logger.Warnw("planner: start pose lies outside the grid")
		return planOutcome{result: Result{Warnings: []string{"planner: start pose lies outside the grid"}}}
	}
	goalMX, goalMY, ok := workGrid.WorldToMap(goal.X, goal.Y)
	if !ok {
		p.logger.Warnw("planner: goal pose lies outside the grid")
		return planOutcome{result: Result{Warnings: []string{"planner: goal pose lies outside the grid"}}}
	}

	toleranceCells := p.cfg.Tolerance / workGrid.Resolution

	rawWorld, iterations, searchErr := p.search(start, goal, startMX, startMY, goalMX, goalMY, workGrid, toleranceCells)
	if searchErr != nil {
		p.logger.Warnw("planner: search did not produce a path", "error", searchErr)
		return planOutcome{result: Result{Warnings: []string{searchErr.Error()}}}
	}

	result := Result{
		RawPath:    toPoses(rawWorld),
		Iterations: iterations,
	}

	finalWorld := rawWorld
	if p.cfg.SmoothPath {
		finalWorld, warnings = p.smooth(rawWorld, workGrid, began, warnings, &result)
	}

	result.Path = toPoses(finalWorld)
	result.Warnings = warnings
	return planOutcome{result: result}
}

// search dispatches to the 2D or SE(2) A* engine depending on the
// configured motion model and returns the raw path in world coordinates.
func (p *Planner) search(start, goal Pose, startMX, startMY, goalMX, goalMY int, grid *gridmap.Grid, toleranceCells float64) ([]r2.Point, int, error) {
	if p.model.IsSE2() {
		numAngles := p.cfg.AngleQuantizationBins
		if numAngles < 1 {
			numAngles = 1
		}
		binSize := 2 * math.Pi / float64(numAngles)

		a := search.NewAStarSE2()
		if err := a.Initialize(p.cfg.TravelCostScale, p.cfg.AllowUnknown, p.cfg.MaxIterations, p.cfg.MaxOnApproachIterations); err != nil {
			return nil, 0, err
		}
		minTurningRadiusCells := turningRadiusCells(p.cfg.MinimumTurningRadius, grid.Resolution)
		if err := a.CreateGraph(p.model, grid, numAngles, minTurningRadiusCells); err != nil {
			return nil, 0, err
		}
		a.SetStart(startMX, startMY, wrapBin(int(math.Round(start.Theta/binSize)), numAngles))
		a.SetGoal(goalMX, goalMY, wrapBin(int(math.Round(goal.Theta/binSize)), numAngles))

		nodes, iterations, err := a.CreatePath(toleranceCells)
		if err != nil {
			return nil, iterations, err
		}
		path := make([]r2.Point, len(nodes))
		for i, n := range nodes {
			x, y, _ := n.Pose()
			wx, wy := grid.MapToWorld(x, y)
			path[i] = r2.Point{X: wx, Y: wy}
		}
		return path, iterations, nil
	}

	a := search.NewAStar2D()
	if err := a.Initialize(p.cfg.TravelCostScale, p.cfg.AllowUnknown, p.cfg.MaxIterations, p.cfg.MaxOnApproachIterations); err != nil {
		return nil, 0, err
	}
	if err := a.CreateGraph(p.model, grid); err != nil {
		return nil, 0, err
	}
	a.SetStart(startMX, startMY)
	a.SetGoal(goalMX, goalMY)

	nodes, iterations, err := a.CreatePath(toleranceCells)
	if err != nil {
		return nil, iterations, err
	}
	path := make([]r2.Point, len(nodes))
	for i, n := range nodes {
		wx, wy := grid.MapToWorld(float64(n.X()), float64(n.Y()))
		path[i] = r2.Point{X: wx, Y: wy}
	}
	return path, iterations, nil
}

// smooth runs the §4.F/G/F pipeline (downsample-for-slack, smooth, optional
// upsample, hook removal), honoring MaxPlanningTime between phases only.
func (p *Planner) smooth(rawWorld []r2.Point, grid *gridmap.Grid, began time.Time, warnings []string, result *Result) ([]r2.Point, []string) {
	if p.cfg.MaxPlanningTime > 0 && time.Since(began) >= p.cfg.MaxPlanningTime {
		return rawWorld, append(warnings, "planner: wall-clock budget exhausted before smoothing, returning raw path")
	}

	solverOpt := p.cfg.SolverOptions
	if p.cfg.MaxPlanningTime > 0 {
		remaining := p.cfg.MaxPlanningTime - time.Since(began)
		solverOpt = shrinkIterationBudget(solverOpt, remaining)
	}

	smoothInput := downsamplePath(rawWorld, 4)
	ok, smoothed := smoother.Smooth(p.logger, smoothInput, grid, p.cfg.SmootherWeights, solverOpt)
	if !ok {
		return rawWorld, append(warnings, "planner: smoother solver failed, returning unsmoothed path")
	}

	finalWorld := smoothed
	result.SmoothedPath = toPoses(smoothed)

	if p.cfg.UpsamplePath {
		upOK, upsampled := smoother.Upsample(p.logger, finalWorld, p.cfg.UpsamplingRatio, grid, p.cfg.SmootherWeights, solverOpt)
		if !upOK {
			warnings = append(warnings, "planner: upsampler solver failed, returning smoothed-but-not-upsampled path")
		} else {
			finalWorld = upsampled
		}
	}

	return smoother.RemoveHook(finalWorld), warnings
}

// shrinkIterationBudget drops opt's iteration cap to 1 once no wall-clock
// budget remains, rather than failing the plan outright; while any budget
// remains, opt is returned unchanged (the cap is not scaled to the time left).
func shrinkIterationBudget(opt smoother.SolverOptions, remaining time.Duration) smoother.SolverOptions {
	if remaining <= 0 {
		opt.MaxIterations = 1
	}
	return opt
}

// downsamplePath keeps every factor-th waypoint (always including the
// last) to give the smoother slack between fixed points, per spec.md
// §4.H's "downsample by a fixed factor of 4 before smoothing".
func downsamplePath(path []r2.Point, factor int) []r2.Point {
	if factor <= 1 || len(path) <= 2 {
		return path
	}
	out := make([]r2.Point, 0, len(path)/factor+2)
	for i := 0; i < len(path); i += factor {
		out = append(out, path[i])
	}
	if last := path[len(path)-1]; out[len(out)-1] != last {
		out = append(out, last)
	}
	return out
}

// turningRadiusCells converts Config.MinimumTurningRadius from meters
// (spec.md §6) to the grid cells motiontable.NewTable expects, the same
// unit boundary toleranceCells crosses a few lines above in search.
func turningRadiusCells(metersRadius, resolution float64) float64 {
	return metersRadius / resolution
}

func wrapBin(bin, numAngles int) int {
	bin %= numAngles
	if bin < 0 {
		bin += numAngles
	}
	return bin
}

func toPoses(points []r2.Point) []Pose {
	out := make([]Pose, len(points))
	for i, pt := range points {
		out[i] = Pose{X: pt.X, Y: pt.Y}
	}
	return out
}
