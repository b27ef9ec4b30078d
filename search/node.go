// Package search implements a generic A* over a dense, reusable node pool,
// specialized for either a 2D grid (Node2D) or an SE(2) lattice (NodeSE2).
package search

import (
	"math"

	"github.com/mobility-stack/latticeplanner/gridmap"
)

// noParent is the sentinel parent index meaning "no parent" — the root of a
// reconstructed path. Parents are represented as pool indices rather than
// pointers so the pool can be reused, plan to plan, without dangling
// references (see DESIGN.md's Open Question decisions).
const noParent = -1

// Node is the capability set the A* engine needs from a search vertex,
// satisfied by both Node2D and NodeSE2. It replaces an inheritance
// hierarchy with a small, explicit interface (spec.md §9 Design Notes).
type Node interface {
	Index() int
	Cost() gridmap.CellCost
	G() float64
	SetG(float64)
	Parent() int
	SetParent(int)
	Visited() bool
	SetVisited(bool)
	Queued() bool
	SetQueued(bool)
	IsValid(allowUnknown bool) bool

	// resetSearchState restores per-search fields (G, Parent, Visited,
	// Queued) without touching the node's fixed identity (index, x, y,
	// cost), so Pool.Reset can reuse the backing slice across plans. It is
	// unexported deliberately: Node is sealed to this package's two
	// implementations.
	resetSearchState()
}

// Node2D is a search vertex on the plain 2D grid (no heading).
type Node2D struct {
	x, y    int
	index   int
	cost    gridmap.CellCost
	g       float64
	parent  int
	visited bool
	queued  bool
}

func newNode2D(index, x, y int, cost gridmap.CellCost) *Node2D {
	n := &Node2D{}
	n.reset(index, x, y, cost)
	return n
}

func (n *Node2D) reset(index, x, y int, cost gridmap.CellCost) {
	n.index = index
	n.x, n.y = x, y
	n.cost = cost
	n.g = math.Inf(1)
	n.parent = noParent
	n.visited = false
	n.queued = false
}

func (n *Node2D) X() int                { return n.x }
func (n *Node2D) Y() int                { return n.y }
func (n *Node2D) Index() int            { return n.index }
func (n *Node2D) Cost() gridmap.CellCost { return n.cost }
func (n *Node2D) G() float64            { return n.g }
func (n *Node2D) SetG(g float64)        { n.g = g }
func (n *Node2D) Parent() int           { return n.parent }
func (n *Node2D) SetParent(p int)       { n.parent = p }
func (n *Node2D) Visited() bool         { return n.visited }
func (n *Node2D) SetVisited(v bool)     { n.visited = v }
func (n *Node2D) Queued() bool          { return n.queued }
func (n *Node2D) SetQueued(q bool)      { n.queued = q }

// IsValid reports whether the cell this node occupies may be entered.
// Wrap-around across grid edges is not checked here; successor generation
// already drops neighbors that fall outside the grid.
func (n *Node2D) IsValid(allowUnknown bool) bool {
	return gridmap.IsTraversable(n.cost, allowUnknown)
}

func (n *Node2D) resetSearchState() {
	n.g = math.Inf(1)
	n.parent = noParent
	n.visited = false
	n.queued = false
}

// NodeSE2 is a search vertex on the (x, y, theta-bin) lattice.
type NodeSE2 struct {
	x, y, thetaBin          int
	poseX, poseY, poseTheta float64
	index                   int
	cost                    gridmap.CellCost
	g                       float64
	parent                  int
	visited                 bool
	queued                  bool
}

func newNodeSE2(index, x, y, thetaBin int, cost gridmap.CellCost) *NodeSE2 {
	n := &NodeSE2{}
	n.reset(index, x, y, thetaBin, cost)
	return n
}

func (n *NodeSE2) reset(index, x, y, thetaBin int, cost gridmap.CellCost) {
	n.index = index
	n.x, n.y, n.thetaBin = x, y, thetaBin
	n.poseX, n.poseY, n.poseTheta = float64(x), float64(y), 0
	n.cost = cost
	n.g = math.Inf(1)
	n.parent = noParent
	n.visited = false
	n.queued = false
}

// SetPose records the continuous (sub-cell) pose this node was projected to;
// Node2D has no analog since it never carries heading or fractional position.
func (n *NodeSE2) SetPose(x, y, theta float64) {
	n.poseX, n.poseY, n.poseTheta = x, y, theta
}

func (n *NodeSE2) Pose() (x, y, theta float64)  { return n.poseX, n.poseY, n.poseTheta }
func (n *NodeSE2) X() int                       { return n.x }
func (n *NodeSE2) Y() int                       { return n.y }
func (n *NodeSE2) ThetaBin() int                { return n.thetaBin }
func (n *NodeSE2) Index() int                   { return n.index }
func (n *NodeSE2) Cost() gridmap.CellCost       { return n.cost }
func (n *NodeSE2) G() float64                   { return n.g }
func (n *NodeSE2) SetG(g float64)               { n.g = g }
func (n *NodeSE2) Parent() int                  { return n.parent }
func (n *NodeSE2) SetParent(p int)              { n.parent = p }
func (n *NodeSE2) Visited() bool                { return n.visited }
func (n *NodeSE2) SetVisited(v bool)            { n.visited = v }
func (n *NodeSE2) Queued() bool                 { return n.queued }
func (n *NodeSE2) SetQueued(q bool)             { n.queued = q }

// IsValid consults only the cell under (x, y): full SE(2) footprint
// collision checking is a documented TODO in the source this models, and
// remains a stub here (spec.md §9 Design Notes, DESIGN.md Open Questions).
func (n *NodeSE2) IsValid(allowUnknown bool) bool {
	return gridmap.IsTraversable(n.cost, allowUnknown)
}

func (n *NodeSE2) resetSearchState() {
	n.poseX, n.poseY, n.poseTheta = float64(n.x), float64(n.y), 0
	n.g = math.Inf(1)
	n.parent = noParent
	n.visited = false
	n.queued = false
}
