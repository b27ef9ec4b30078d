// Package gridmap is a read-only view over a 2D occupancy grid of per-cell
// traversal costs, plus the grid<->world coordinate conversions the planner
// needs. It owns no mutable state beyond what the caller hands it at
// construction.
package gridmap

import (
	"fmt"
	"math"
)

// CellCost is the traversal cost of a single grid cell.
type CellCost = byte

// Sentinel cost bands. Any cost strictly below Inscribed is traversable;
// Inscribed and Occupied never are; Unknown is traversable only when the
// caller opts into it.
const (
	Free      CellCost = 0
	Inscribed CellCost = 253
	Occupied  CellCost = 254
	Unknown   CellCost = 255
)

// IsTraversable reports whether a cell of the given cost can be entered.
func IsTraversable(cost CellCost, allowUnknown bool) bool {
	if cost == Occupied || cost == Inscribed {
		return false
	}
	if cost == Unknown && !allowUnknown {
		return false
	}
	return true
}

// Grid is a read-only row-major costmap snapshot.
type Grid struct {
	SizeX, SizeY         int
	OriginX, OriginY     float64
	Resolution           float64
	costs                []CellCost
}

// New constructs a Grid over costs, which must have length SizeX*SizeY and is
// not copied: the caller must not mutate it for the lifetime of the Grid.
func New(sizeX, sizeY int, originX, originY, resolution float64, costs []CellCost) (*Grid, error) {
	if len(costs) != sizeX*sizeY {
		return nil, fmt.Errorf("gridmap: costs has length %d, want %d (%dx%d)", len(costs), sizeX*sizeY, sizeX, sizeY)
	}
	if resolution <= 0 {
		return nil, fmt.Errorf("gridmap: resolution must be positive, got %v", resolution)
	}
	return &Grid{
		SizeX:      sizeX,
		SizeY:      sizeY,
		OriginX:    originX,
		OriginY:    originY,
		Resolution: resolution,
		costs:      costs,
	}, nil
}

// Index returns the linear index of the given map cell, or -1 if (x, y) is
// outside the grid.
func (g *Grid) Index(x, y int) int {
	if x < 0 || y < 0 || x >= g.SizeX || y >= g.SizeY {
		return -1
	}
	return y*g.SizeX + x
}

// InBounds reports whether (x, y) lies within the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.SizeX && y < g.SizeY
}

// CostAt returns the cost at a linear index.
func (g *Grid) CostAt(i int) CellCost {
	return g.costs[i]
}

// CostAtXY returns the cost at map cell (x, y). Callers must check InBounds
// first; this does not itself bounds-check (hot path, called once per A*
// successor).
func (g *Grid) CostAtXY(x, y int) CellCost {
	return g.costs[y*g.SizeX+x]
}

// WorldToMap converts world-space meters to map cell coordinates using the
// cell-center convention, truncating toward the containing cell. ok is false
// if the result falls outside the grid.
func (g *Grid) WorldToMap(wx, wy float64) (mx, my int, ok bool) {
	mx = int(math.Floor((wx - g.OriginX) / g.Resolution))
	my = int(math.Floor((wy - g.OriginY) / g.Resolution))
	return mx, my, g.InBounds(mx, my)
}

// MapToWorld converts map cell coordinates to the world-space meters of that
// cell's center.
func (g *Grid) MapToWorld(mx, my float64) (wx, wy float64) {
	wx = g.OriginX + (mx+0.5)*g.Resolution
	wy = g.OriginY + (my+0.5)*g.Resolution
	return wx, wy
}
