package smoother

import (
	"github.com/golang/geo/r2"

	"github.com/mobility-stack/latticeplanner/gridmap"
	"github.com/mobility-stack/latticeplanner/logging"
)

const defaultUpsampleRatio = 2

// Upsample implements spec.md §4.G: it linearly seeds ratio-1 points between
// every adjacent pair of path, then re-runs the §4.F optimization with every
// original waypoint (not just the endpoints) pinned, so only the newly
// inserted points move. An invalid ratio is coerced to 2 with a warning.
func Upsample(logger logging.Logger, path []r2.Point, ratio int, grid *gridmap.Grid, w Weights, opt SolverOptions) (bool, []r2.Point) {
	if ratio != 2 && ratio != 4 {
		logger.Warnw("smoother: invalid upsampling_ratio, coercing to 2", "requested", ratio)
		ratio = defaultUpsampleRatio
	}
	if len(path) < 2 {
		return true, path
	}

	expanded := make([]r2.Point, 0, (len(path)-1)*ratio+1)
	fixed := make([]bool, 0, cap(expanded))
	for i := 0; i < len(path)-1; i++ {
		a, b := path[i], path[i+1]
		expanded = append(expanded, a)
		fixed = append(fixed, true)
		for j := 1; j < ratio; j++ {
			t := float64(j) / float64(ratio)
			expanded = append(expanded, r2.Point{X: a.X + t*(b.X-a.X), Y: a.Y + t*(b.Y-a.Y)})
			fixed = append(fixed, false)
		}
	}
	expanded = append(expanded, path[len(path)-1])
	fixed = append(fixed, true)

	ok, result := optimize(logger, expanded, fixed, grid, w, opt.withDefaults())
	if !ok {
		return false, path
	}
	return true, result
}
