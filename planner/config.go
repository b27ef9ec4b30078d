package planner

import (
	"time"

	"github.com/mobility-stack/latticeplanner/motiontable"
	"github.com/mobility-stack/latticeplanner/smoother"
)

// Pose is a position and heading in world meters/radians.
type Pose struct {
	X, Y, Theta float64
}

// Config holds every planning knob from spec.md §6, with its stated
// defaults. Zero-value Config is not valid — use DefaultConfig as a base.
type Config struct {
	// Tolerance is the acceptable Euclidean distance, in meters, from the
	// goal at which a search may terminate early.
	Tolerance float64

	DownsampleCostmap   bool
	DownsamplingFactor  int

	// AngleQuantizationBins is the number of heading bins for SE(2) models.
	// Ignored for Moore/Von-Neumann.
	AngleQuantizationBins int

	AllowUnknown bool

	// MaxIterations <= 0 means unlimited.
	MaxIterations int
	// MaxOnApproachIterations <= 0 means unlimited.
	MaxOnApproachIterations int

	// TravelCostScale must be in [0, 1]; validated by New.
	TravelCostScale float64

	SmoothPath   bool
	UpsamplePath bool
	// UpsamplingRatio must be 2 or 4; an invalid value is coerced at
	// smoothing time with a warning, not rejected here.
	UpsamplingRatio int

	MinimumTurningRadius float64

	// MotionModelForSearch names one of MOORE, VON_NEUMANN, DUBIN,
	// REEDS_SHEPP, BALKCOM_MASON; validated by New.
	MotionModelForSearch string

	SmootherWeights Weights
	SolverOptions   smoother.SolverOptions

	// MaxPlanningTime is a wall-clock budget checked once, after A* and
	// before the smoother — never inside A*'s inner loop. If it is already
	// spent at that point, smoothing is skipped and the raw path is returned
	// with a warning. Zero means unbudgeted. This is not in spec.md's original
	// interface list; it is carried over from the source's planner-level
	// timeout handling.
	MaxPlanningTime time.Duration
}

// Weights is an alias so Config's field reads naturally; it is exactly
// smoother.Weights.
type Weights = smoother.Weights

// DefaultConfig returns the defaults enumerated in spec.md §6.
func DefaultConfig() Config {
	return Config{
		Tolerance:               0.125,
		DownsampleCostmap:       true,
		DownsamplingFactor:      1,
		AngleQuantizationBins:   1,
		AllowUnknown:            true,
		MaxIterations:           -1,
		MaxOnApproachIterations: -1,
		TravelCostScale:         0.8,
		SmoothPath:              true,
		UpsamplePath:            false,
		UpsamplingRatio:         2,
		MinimumTurningRadius:    1.0,
		MotionModelForSearch:    motiontable.Moore.String(),
		SmootherWeights:         Weights{Smoothness: 1.0, Costmap: 0.5, Distance: 0.1},
		SolverOptions:           smoother.SolverOptions{},
	}
}
