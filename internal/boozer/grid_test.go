package boozer

import (
	"math"
	"testing"
)

func TestGridShape(t *testing.T) {
	g := NewGrid(3, 2, 5)

	if g.NU != 14 || g.NV != 10 || g.NU2 != 8 || g.NU3 != 8 || g.NV2 != 6 {
		t.Fatalf("unexpected sizes: nu=%d nv=%d nu2=%d nu3=%d nv2=%d", g.NU, g.NV, g.NU2, g.NU3, g.NV2)
	}
	if g.NUNV != g.NU3*g.NV {
		t.Fatalf("nunv = %d, want %d", g.NUNV, g.NU3*g.NV)
	}
	if len(g.Theta) != g.NUNV || len(g.Zeta) != g.NUNV {
		t.Fatalf("coordinate arrays sized %d/%d, want %d", len(g.Theta), len(g.Zeta), g.NUNV)
	}
}

// TestGridLayout verifies the row-major theta-outer order and the angle
// spans: theta covers [0, pi] inclusive, zeta covers one field period with
// no duplicated wrap point.
func TestGridLayout(t *testing.T) {
	const nfp = 5
	g := NewGrid(3, 2, nfp)

	dth := math.Pi / float64(g.NU3-1)
	dzt := 2 * math.Pi / float64(g.NV*nfp)
	k := 0
	for lt := 0; lt < g.NU3; lt++ {
		for lz := 0; lz < g.NV; lz++ {
			wantTh := float64(lt) * dth
			wantZt := float64(lz) * dzt
			if math.Abs(g.Theta[k]-wantTh) > 1e-15 || math.Abs(g.Zeta[k]-wantZt) > 1e-15 {
				t.Fatalf("point %d: got (%g, %g), want (%g, %g)", k, g.Theta[k], g.Zeta[k], wantTh, wantZt)
			}
			k++
		}
	}

	if g.Theta[0] != 0 {
		t.Errorf("first theta = %g, want 0", g.Theta[0])
	}
	last := g.Theta[g.NUNV-1]
	if math.Abs(last-math.Pi) > 1e-15 {
		t.Errorf("last theta = %g, want pi", last)
	}
	maxZeta := g.Zeta[g.NV-1]
	period := 2 * math.Pi / float64(nfp)
	if maxZeta >= period {
		t.Errorf("zeta reaches %g, want < one period %g", maxZeta, period)
	}
}
