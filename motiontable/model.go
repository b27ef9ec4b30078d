// Package motiontable precomputes, for a chosen kinematic model and angular
// resolution, the set of pose-delta motion primitives expanded from any
// search node. Every primitive other than Balkcom-Mason's spin-in-place
// pair is guaranteed to escape its originating cell (see node_se2.cpp's
// derivation, reproduced in table.go); the spin primitives change only the
// heading.
package motiontable

import (
	"fmt"
	"strings"
)

// Model names a kinematic motion family used to generate search successors.
type Model int

const (
	// Moore is 2D 8-connected grid search (no heading).
	Moore Model = iota
	// VonNeumann is 2D 4-connected grid search (no heading).
	VonNeumann
	// Dubin is forward-only Ackermann (SE(2) lattice).
	Dubin
	// ReedsShepp is forward/reverse Ackermann (SE(2) lattice).
	ReedsShepp
	// BalkcomMason is differential/omni-directional drive (SE(2) lattice).
	BalkcomMason
)

// IsSE2 reports whether the model operates on the SE(2) (x, y, theta)
// lattice, as opposed to the plain 2D grid.
func (m Model) IsSE2() bool {
	return m == Dubin || m == ReedsShepp || m == BalkcomMason
}

func (m Model) String() string {
	switch m {
	case Moore:
		return "MOORE"
	case VonNeumann:
		return "VON_NEUMANN"
	case Dubin:
		return "DUBIN"
	case ReedsShepp:
		return "REEDS_SHEPP"
	case BalkcomMason:
		return "BALKCOM_MASON"
	default:
		return "UNKNOWN"
	}
}

// ParseModel parses one of MOORE, VON_NEUMANN, DUBIN, REEDS_SHEPP,
// BALKCOM_MASON (case-insensitive). An unrecognized name is returned as an
// error, not a fatal exit: the facade decides whether that is fatal.
func ParseModel(s string) (Model, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "MOORE":
		return Moore, nil
	case "VON_NEUMANN":
		return VonNeumann, nil
	case "DUBIN":
		return Dubin, nil
	case "REEDS_SHEPP":
		return ReedsShepp, nil
	case "BALKCOM_MASON":
		return BalkcomMason, nil
	default:
		return Moore, fmt.Errorf(
			"motiontable: unrecognized motion model %q, valid options are "+
				"MOORE, VON_NEUMANN, DUBIN, REEDS_SHEPP, BALKCOM_MASON", s)
	}
}
