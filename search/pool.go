package search

import "github.com/mobility-stack/latticeplanner/gridmap"

// Pool is a dense, reusable node pool keyed by linear index, shared by
// Pool2D and PoolSE2. Nodes are materialized lazily via newNode on first
// access and never reallocated: Reset rewinds every materialized node's
// search state in place so the same backing slice serves plan after plan
// (spec.md §4.C/D's resource policy).
type Pool[N Node] struct {
	created []bool
	nodes   []N
	newNode func(index int, cost gridmap.CellCost) N
}

// NewPool allocates a pool of size slots. newNode materializes the node at
// a given index on first access; the caller's closure is the only place
// that knows how to turn a linear index back into a node's (x, y[, theta])
// identity.
func NewPool[N Node](size int, newNode func(index int, cost gridmap.CellCost) N) *Pool[N] {
	return &Pool[N]{
		created: make([]bool, size),
		nodes:   make([]N, size),
		newNode: newNode,
	}
}

// GetOrCreate returns a stable reference to the node at index, materializing
// it (with the given cost) on first access.
func (p *Pool[N]) GetOrCreate(index int, cost gridmap.CellCost) N {
	if p.created[index] {
		return p.nodes[index]
	}
	n := p.newNode(index, cost)
	p.nodes[index] = n
	p.created[index] = true
	return n
}

// Reset restores every materialized node's search state to its defaults,
// for reuse across plans within the same process lifetime.
func (p *Pool[N]) Reset() {
	for i, created := range p.created {
		if created {
			p.nodes[i].resetSearchState()
		}
	}
}

// Pool2D is the Pool[*Node2D] specialization, keyed by linear grid index
// (y*sizeX + x).
type Pool2D struct {
	pool         *Pool[*Node2D]
	sizeX, sizeY int
}

// NewPool2D allocates a pool sized to a sizeX x sizeY grid.
func NewPool2D(sizeX, sizeY int) *Pool2D {
	p := &Pool2D{sizeX: sizeX, sizeY: sizeY}
	p.pool = NewPool[*Node2D](sizeX*sizeY, func(index int, cost gridmap.CellCost) *Node2D {
		x, y := index%sizeX, index/sizeX
		return newNode2D(index, x, y, cost)
	})
	return p
}

// Index computes the linear pool index for grid cell (x, y).
func (p *Pool2D) Index(x, y int) int { return y*p.sizeX + x }

// GetOrCreate returns a stable reference to the node at index, materializing
// it (with the given cost) on first access.
func (p *Pool2D) GetOrCreate(index int, cost gridmap.CellCost) *Node2D {
	return p.pool.GetOrCreate(index, cost)
}

// Reset restores every materialized node to its defaults, for reuse across
// plans within the same process lifetime.
func (p *Pool2D) Reset() { p.pool.Reset() }

// PoolSE2 is the Pool[*NodeSE2] specialization, keyed by
// (y*sizeX+x)*numAngles + thetaBin.
type PoolSE2 struct {
	pool                    *Pool[*NodeSE2]
	sizeX, sizeY, numAngles int
}

// NewPoolSE2 allocates a pool sized to a sizeX x sizeY x numAngles lattice.
func NewPoolSE2(sizeX, sizeY, numAngles int) *PoolSE2 {
	p := &PoolSE2{sizeX: sizeX, sizeY: sizeY, numAngles: numAngles}
	p.pool = NewPool[*NodeSE2](sizeX*sizeY*numAngles, func(index int, cost gridmap.CellCost) *NodeSE2 {
		cellsPerLayer := sizeX * numAngles
		y := index / cellsPerLayer
		rem := index % cellsPerLayer
		x := rem / numAngles
		thetaBin := rem % numAngles
		return newNodeSE2(index, x, y, thetaBin, cost)
	})
	return p
}

// Index computes the linear pool index for lattice cell (x, y, thetaBin).
func (p *PoolSE2) Index(x, y, thetaBin int) int {
	return (y*p.sizeX+x)*p.numAngles + thetaBin
}

// GetOrCreate returns a stable reference to the node at index, materializing
// it (with the given cost) on first access.
func (p *PoolSE2) GetOrCreate(index int, cost gridmap.CellCost) *NodeSE2 {
	return p.pool.GetOrCreate(index, cost)
}

// Reset restores every materialized node to its defaults, for reuse across
// plans within the same process lifetime.
func (p *PoolSE2) Reset() { p.pool.Reset() }
