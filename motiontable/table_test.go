package motiontable

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestParseModelRoundTrips(t *testing.T) {
	for _, m := range []Model{Moore, VonNeumann, Dubin, ReedsShepp, BalkcomMason} {
		parsed, err := ParseModel(m.String())
		test.That(t, err, test.ShouldBeNil)
		test.That(t, parsed, test.ShouldEqual, m)
	}
}

func TestParseModelRejectsUnknown(t *testing.T) {
	_, err := ParseModel("SPIRAL")
	test.That(t, err, test.ShouldNotBeNil)
}

// Every SE(2) primitive's chord must be at least sqrt(2) cells, except pure
// rotation primitives (Balkcom-Mason spin in place), whose DTheta != 0 and
// DX == DY == 0 (spec.md Testable Properties #2). The sqrt(2) floor is a
// curved-primitive property (it guarantees a turning arc escapes the
// originating cell); it does not apply to Moore/Von-Neumann's plain
// unit-length grid moves, which are covered by the test below instead.
func TestPrimitivesEscapeOriginatingCell(t *testing.T) {
	for _, m := range []Model{Dubin, ReedsShepp, BalkcomMason} {
		tbl, err := NewTable(m, 100, 72, 5.0)
		test.That(t, err, test.ShouldBeNil)
		for _, p := range tbl.Projections {
			chord := math.Hypot(p.DX, p.DY)
			isPureRotation := p.DX == 0 && p.DY == 0 && p.DTheta != 0
			if !isPureRotation {
				test.That(t, chord, test.ShouldBeGreaterThanOrEqualTo, sqrt2-1e-9)
			}
		}
	}
}

// Moore/Von-Neumann primitives are plain grid moves: every one must have a
// chord of at least one cell, but the diagonal sqrt(2) floor above doesn't
// apply to the cardinal moves.
func TestGridPrimitivesEscapeOriginatingCell(t *testing.T) {
	for _, m := range []Model{Moore, VonNeumann} {
		tbl, err := NewTable(m, 100, 72, 5.0)
		test.That(t, err, test.ShouldBeNil)
		for _, p := range tbl.Projections {
			chord := math.Hypot(p.DX, p.DY)
			test.That(t, chord, test.ShouldBeGreaterThanOrEqualTo, 1.0-1e-9)
		}
	}
}

// Every primitive's DTheta must be an integer multiple of the angular bin
// size (spec.md Testable Properties #3).
func TestPrimitiveAnglesAreBinAligned(t *testing.T) {
	const numAngles = 72
	bin := 2.0 * math.Pi / float64(numAngles)
	for _, m := range []Model{Dubin, ReedsShepp, BalkcomMason} {
		tbl, err := NewTable(m, 100, numAngles, 5.0)
		test.That(t, err, test.ShouldBeNil)
		for _, p := range tbl.Projections {
			ratio := p.DTheta / bin
			test.That(t, ratio, test.ShouldAlmostEqual, math.Round(ratio), 1e-6)
		}
	}
}

func TestDubinHasThreePrimitivesReedsSheppHasSix(t *testing.T) {
	dubin, err := NewTable(Dubin, 100, 72, 5.0)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(dubin.Projections), test.ShouldEqual, 3)

	rs, err := NewTable(ReedsShepp, 100, 72, 5.0)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(rs.Projections), test.ShouldEqual, 6)
}

func TestBalkcomMasonHasEightPrimitives(t *testing.T) {
	bm, err := NewTable(BalkcomMason, 100, 72, 5.0)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(bm.Projections), test.ShouldEqual, 8)
}

func TestTurningAngleRespectsBinSizeFloor(t *testing.T) {
	// With a very large turning radius, the chord-based angle would be tiny;
	// the bin size must win.
	const numAngles = 4 // bin = pi/2
	angle := turningAngle(numAngles, 1000.0)
	test.That(t, angle, test.ShouldAlmostEqual, 2.0*math.Pi/float64(numAngles))
}
