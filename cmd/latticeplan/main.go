// Command latticeplan reads a costmap and a start/goal pair from a JSON
// file and prints the resulting path, the way the teacher's cmd-plan
// reads a PlanRequest and prints the resulting trajectory.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/mobility-stack/latticeplanner/gridmap"
	"github.com/mobility-stack/latticeplanner/logging"
	"github.com/mobility-stack/latticeplanner/planner"
)

// PlanRequest is the on-disk shape this binary reads. Costs is a plain byte
// array; encoding/json marshals/unmarshals []byte as base64.
type PlanRequest struct {
	SizeX      int          `json:"size_x"`
	SizeY      int          `json:"size_y"`
	OriginX    float64      `json:"origin_x"`
	OriginY    float64      `json:"origin_y"`
	Resolution float64      `json:"resolution"`
	Costs      []byte       `json:"costs"`
	Start      planner.Pose `json:"start"`
	Goal       planner.Pose `json:"goal"`
}

func main() {
	if err := realMain(); err != nil {
		log.Fatal(err)
	}
}

func realMain() error {
	ctx := context.Background()
	logger := logging.NewLogger("latticeplan")

	motionModel := flag.String("motion-model", "MOORE", "MOORE, VON_NEUMANN, DUBIN, REEDS_SHEPP, or BALKCOM_MASON")
	travelCostScale := flag.Float64("travel-cost-scale", 0.8, "blend between traversal cost and distance, in [0,1]")
	tolerance := flag.Float64("tolerance", 0.125, "goal tolerance in meters")
	allowUnknown := flag.Bool("allow-unknown", true, "treat UNKNOWN cells as traversable")
	smooth := flag.Bool("smooth", true, "run the nonlinear smoother on the raw path")
	upsample := flag.Bool("upsample", false, "upsample the smoothed path")
	upsampleRatio := flag.Int("upsample-ratio", 2, "2 or 4")
	minTurningRadius := flag.Float64("min-turning-radius", 1.0, "meters, SE(2) models only")
	angleBins := flag.Int("angle-bins", 72, "heading quantization, SE(2) models only")
	verbose := flag.Bool("v", false, "verbose logging")

	flag.Parse()
	if len(flag.Args()) == 0 {
		return fmt.Errorf("need a json plan-request file")
	}

	if *verbose {
		logger.SetLevel(logging.DEBUG)
	}

	logger.Infof("reading plan request from %s", flag.Arg(0))
	content, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		return err
	}

	var req PlanRequest
	if err := json.Unmarshal(content, &req); err != nil {
		return err
	}

	grid, err := gridmap.New(req.SizeX, req.SizeY, req.OriginX, req.OriginY, req.Resolution, req.Costs)
	if err != nil {
		return err
	}

	cfg := planner.DefaultConfig()
	cfg.MotionModelForSearch = *motionModel
	cfg.TravelCostScale = *travelCostScale
	cfg.Tolerance = *tolerance
	cfg.AllowUnknown = *allowUnknown
	cfg.SmoothPath = *smooth
	cfg.UpsamplePath = *upsample
	cfg.UpsamplingRatio = *upsampleRatio
	cfg.MinimumTurningRadius = *minTurningRadius
	cfg.AngleQuantizationBins = *angleBins

	p, err := planner.New(cfg, logger)
	if err != nil {
		return err
	}

	began := time.Now()
	result, err := p.CreatePath(ctx, req.Start, req.Goal, grid)
	if err != nil {
		return err
	}
	logger.Infof("planning took %v, %d iterations", time.Since(began), result.Iterations)

	for _, w := range result.Warnings {
		logger.Warn(w)
	}

	mylog := log.New(os.Stdout, "", 0)
	mylog.Printf("waypoints: %d", len(result.Path))
	for i, wp := range result.Path {
		mylog.Printf("  %3d: (%.3f, %.3f)", i, wp.X, wp.Y)
	}

	return nil
}
