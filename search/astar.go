package search

import (
	"fmt"
	"math"
)

// successor is one candidate expansion of a node: the neighboring node and
// the Euclidean length of the primitive that reaches it (used both for the
// edge-cost blend and to confirm admissibility).
type successor[N Node] struct {
	node     N
	distance float64
}

// engine is the generic A* core shared by AStar2D and AStarSE2. It knows
// nothing about grid layout or motion primitives — those are supplied as
// closures by the wrapping type, per spec.md §9's guidance to prefer a
// capability abstraction over an inheritance hierarchy.
type engine[N Node] struct {
	travelCostScale   float64
	allowUnknown      bool
	maxIter           int
	maxOnApproachIter int

	start, goal N
	haveStart, haveGoal bool

	successors func(current N) []successor[N]
	heuristic  func(n N) float64 // Euclidean distance from n's (x,y) to goal's (x,y)
	sameCell   func(a, b N) bool // equals-goal: same (x, y), and for SE(2) the same heading bin
	distToGoal func(n N) float64 // Euclidean distance from n's (x,y) to goal's (x,y); same as heuristic, kept distinct for clarity at call sites
	lookupFn   func(index int) N
}

func (e *engine[N]) initialize(travelCostScale float64, allowUnknown bool, maxIter, maxOnApproachIter int) error {
	if travelCostScale < 0 || travelCostScale > 1 {
		return fmt.Errorf("search: travel_cost_scale must be in [0,1], got %v", travelCostScale)
	}
	e.travelCostScale = travelCostScale
	e.allowUnknown = allowUnknown
	e.maxIter = disabledAsInfinite(maxIter)
	e.maxOnApproachIter = disabledAsInfinite(maxOnApproachIter)
	return nil
}

// disabledAsInfinite maps a "<=0 means disabled" config value to +Inf's
// integer analog: math.MaxInt.
func disabledAsInfinite(v int) int {
	if v <= 0 {
		return math.MaxInt
	}
	return v
}

// errNoPath and errIterationsExhausted distinguish the two "returned false"
// reasons spec.md §7 calls out, so the facade can log the right warning.
var (
	errNoPath              = fmt.Errorf("no valid path found")
	errIterationsExhausted = fmt.Errorf("exceeded maximum iterations")
)

// errWrongDimensionality reports a model/graph mismatch: an SE(2) model
// handed to AStar2D, or a non-SE(2) model handed to AStarSE2.
func errWrongDimensionality(model fmt.Stringer) error {
	return fmt.Errorf("search: motion model %s is not compatible with this graph dimensionality", model)
}

// run executes the priority search described in spec.md §4.E and returns the
// reconstructed path (start to goal) plus the iteration count actually used.
func (e *engine[N]) run(toleranceCells float64) (path []N, iterations int, err error) {
	if !e.haveStart || !e.haveGoal {
		return nil, 0, fmt.Errorf("search: start or goal not set")
	}
	if !e.start.IsValid(e.allowUnknown) {
		return nil, 0, fmt.Errorf("search: start cell is non-traversable")
	}
	if !e.goal.IsValid(e.allowUnknown) {
		return nil, 0, fmt.Errorf("search: goal cell is non-traversable")
	}

	open := newOpenSet[N]()
	e.start.SetG(0)
	e.start.SetQueued(true)
	seq := 0
	open.push(e.start, e.heuristic(e.start), seq)
	seq++

	var bestApproach N
	haveApproach := false
	bestApproachDist := math.Inf(1)
	onApproachIter := 0

	for open.Len() > 0 {
		if iterations >= e.maxIter {
			return nil, iterations, errIterationsExhausted
		}

		item := open.pop()
		current := item.node

		// Stale entry: a better path to this node was already processed.
		if !current.Queued() {
			continue
		}
		current.SetQueued(false)

		if current.Visited() {
			continue
		}
		current.SetVisited(true)
		iterations++

		if e.sameCell(current, e.goal) {
			return e.reconstruct(current), iterations, nil
		}

		if toleranceCells > 0 {
			d := e.distToGoal(current)
			if d <= toleranceCells {
				if !haveApproach || d < bestApproachDist {
					bestApproach = current
					bestApproachDist = d
					haveApproach = true
				}
				onApproachIter++
				if onApproachIter >= e.maxOnApproachIter {
					return e.reconstruct(bestApproach), iterations, nil
				}
			}
		}

		for _, succ := range e.successors(current) {
			n := succ.node
			if n.Visited() {
				continue
			}
			edgeCost := e.travelCostScale*float64(n.Cost()) + (1-e.travelCostScale)*succ.distance
			tentativeG := current.G() + edgeCost
			if tentativeG < n.G() {
				n.SetG(tentativeG)
				n.SetParent(current.Index())
				n.SetQueued(true)
				open.push(n, tentativeG+e.heuristic(n), seq)
				seq++
			}
		}
	}

	if haveApproach {
		return e.reconstruct(bestApproach), iterations, nil
	}
	return nil, iterations, errNoPath
}

// reconstruct walks parent pointers from goalNode back to the start,
// prepending as it goes so the result is ordered start-to-goal. Caller
// supplies a lookup since parents are pool indices, not pointers.
func (e *engine[N]) reconstruct(goalNode N) []N {
	path := []N{goalNode}
	current := goalNode
	for current.Parent() != noParent {
		parent := e.lookup(current.Parent())
		path = append([]N{parent}, path...)
		current = parent
	}
	return path
}

// lookup is supplied by the wrapping type (AStar2D/AStarSE2), since only it
// knows how to turn a pool index back into a node reference.
func (e *engine[N]) setLookup(fn func(index int) N) { e.lookupFn = fn }

// lookupFn and lookup exist only to keep `run`/`reconstruct` free of a direct
// pool dependency; see setLookup.
func (e *engine[N]) lookup(index int) N { return e.lookupFn(index) }
