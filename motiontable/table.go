package motiontable

import "math"

// sqrt2 is the minimal planar chord length a primitive must have to
// guarantee it leaves the originating cell.
const sqrt2 = math.Sqrt2

// Primitive is a pose delta (dx, dy, dtheta) applied to a node to produce one
// successor, expressed in continuous grid-cell coordinates.
type Primitive struct {
	DX, DY, DTheta float64
}

// Table is the ordered set of primitives for one kinematic model, plus the
// scalar parameters needed to compute linear indices from a projected pose.
// A Table is owned by exactly one search.AStar2D or search.AStarSE2 instance for the lifetime of
// one plan; it is not shared process-global state (see DESIGN.md's Open
// Question decisions).
type Table struct {
	Model                Model
	Projections          []Primitive
	SizeX                int
	NumAngleQuantization int
}

// NewTable builds the primitive table for model, a grid of width sizeX,
// numAngles heading bins, and (for the SE(2) models) a minimum turning
// radius of minTurningRadius grid cells.
func NewTable(model Model, sizeX, numAngles int, minTurningRadius float64) (*Table, error) {
	t := &Table{Model: model, SizeX: sizeX, NumAngleQuantization: numAngles}
	switch model {
	case Dubin:
		t.Projections = NewDubin(numAngles, minTurningRadius)
	case ReedsShepp:
		t.Projections = NewReedsShepp(numAngles, minTurningRadius)
	case BalkcomMason:
		t.Projections = NewBalkcomMason(numAngles)
	case Moore:
		t.Projections = NewMoore()
	case VonNeumann:
		t.Projections = NewVonNeumann()
	default:
		return nil, errUnknownModel(model)
	}
	return t, nil
}

// turningAngle returns the minimum arc angle, on a circle of the given
// turning radius, whose chord is at least sqrt(2) grid cells, rounded up to
// the nearest multiple of the angular bin size. This is the derivation in
// node_se2.cpp's MotionTable::initDubin, reproduced verbatim:
//
//	chord = 2 * R * sin(angle / 2) >= sqrt(2)  =>  angle >= 2*asin(sqrt(2) / (2*R))
func turningAngle(numAngles int, minTurningRadius float64) float64 {
	angle := 2.0 * math.Asin(sqrt2/(2*minTurningRadius))
	binSize := 2.0 * math.Pi / float64(numAngles)
	if angle < binSize {
		return binSize
	}
	increments := math.Ceil(angle / binSize)
	return binSize * increments
}

// turningDeflection returns the (dx, dy) endpoint of an arc of the given
// angle on a circle of the given turning radius, relative to the arc's
// start, oriented along the start tangent.
func turningDeflection(angle, minTurningRadius float64) (dx, dy float64) {
	dx = minTurningRadius * math.Sin(angle)
	dy = minTurningRadius*math.Cos(angle) - minTurningRadius
	return dx, dy
}

// NewDubin builds the forward-only Ackermann primitive set: forward, and
// left/right minimum-radius turns.
func NewDubin(numAngles int, minTurningRadius float64) []Primitive {
	angle := turningAngle(numAngles, minTurningRadius)
	dx, dy := turningDeflection(angle, minTurningRadius)
	return []Primitive{
		{sqrt2, 0, 0},     // forward
		{dx, dy, angle},   // forward + left
		{dx, -dy, -angle}, // forward + right
	}
}

// NewReedsShepp builds NewDubin's primitives plus their negated-x (reverse)
// counterparts.
func NewReedsShepp(numAngles int, minTurningRadius float64) []Primitive {
	fwd := NewDubin(numAngles, minTurningRadius)
	prims := make([]Primitive, 0, 6)
	prims = append(prims, fwd...)
	for _, p := range fwd {
		prims = append(prims, Primitive{-p.DX, p.DY, p.DTheta})
	}
	return prims
}

// NewBalkcomMason builds the differential/omni-directional primitive set:
// straight forward/back, spin-in-place left/right, and the four combined
// spin-and-translate primitives.
func NewBalkcomMason(numAngles int) []Primitive {
	delta := 2.0 * math.Pi / float64(numAngles)
	return []Primitive{
		{sqrt2, 0, 0},       // forward
		{-sqrt2, 0, 0},      // backward
		{0, 0, delta},       // spin left
		{0, 0, -delta},      // spin right
		{sqrt2, 0, delta},   // spin left + forward
		{-sqrt2, 0, delta},  // spin left + backward
		{sqrt2, 0, -delta},  // spin right + forward
		{-sqrt2, 0, -delta}, // spin right + backward
	}
}

// NewMoore builds the 8-connected 2D grid neighborhood (no heading).
func NewMoore() []Primitive {
	return []Primitive{
		{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0},
		{1, 1, 0}, {1, -1, 0}, {-1, 1, 0}, {-1, -1, 0},
	}
}

// NewVonNeumann builds the 4-connected 2D grid neighborhood (no heading).
func NewVonNeumann() []Primitive {
	return []Primitive{
		{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0},
	}
}

// Project applies primitive i to pose, returning the projected pose.
// Primitives are defined in the node's own heading frame (forward is always
// +x), so (DX, DY) is rotated by the current heading before being added;
// DTheta is frame-independent and adds directly.
func (t *Table) Project(x, y, theta float64, i int) (px, py, ptheta float64) {
	p := t.Projections[i]
	cos, sin := math.Cos(theta), math.Sin(theta)
	px = x + p.DX*cos - p.DY*sin
	py = y + p.DX*sin + p.DY*cos
	ptheta = theta + p.DTheta
	return px, py, ptheta
}

func errUnknownModel(m Model) error {
	return &unknownModelError{m}
}

type unknownModelError struct{ model Model }

func (e *unknownModelError) Error() string {
	return "motiontable: unsupported model " + e.model.String()
}
