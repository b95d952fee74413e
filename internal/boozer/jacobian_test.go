package boozer

import (
	"math"
	"testing"
)

// TestStraightFieldLineUniform checks the closed-form limit: with no stream
// function and no covariant potential the angle corrections vanish and the
// Jacobian is identically one.
func TestStraightFieldLineUniform(t *testing.T) {
	st := newSurfaceState(16)
	if err := st.straightFieldLine(1.3, 0.2, 0.45); err != nil {
		t.Fatal(err)
	}
	if want := 1.3 + 0.45*0.2; math.Abs(st.jacFac-want) > 1e-15 {
		t.Fatalf("jacFac = %g, want %g", st.jacFac, want)
	}
	for k := range st.xjac {
		if st.uBoz[k] != 0 || st.vBoz[k] != 0 {
			t.Fatalf("point %d: nonzero angle correction (%g, %g)", k, st.uBoz[k], st.vBoz[k])
		}
		if math.Abs(st.xjac[k]-1) > 1e-15 {
			t.Fatalf("point %d: xjac = %g, want 1", k, st.xjac[k])
		}
	}
}

// TestStraightFieldLineSign verifies the single-sign Jacobian property for
// a smooth perturbed surface: small lambda and potential derivatives keep
// xjac near one everywhere.
func TestStraightFieldLineSign(t *testing.T) {
	const n = 64
	st := newSurfaceState(n)
	for k := 0; k < n; k++ {
		th := 2 * math.Pi * float64(k) / n
		st.lamT[k] = 0.2 * math.Cos(th)
		st.lamZ[k] = 0.1 * math.Sin(th)
		st.lam[k] = 0.05 * math.Sin(th)
		st.wT[k] = 0.03 * math.Cos(th)
		st.wZ[k] = 0.02 * math.Sin(th)
		st.w[k] = 0.01 * math.Sin(th)
	}
	if err := st.straightFieldLine(1.1, 0.3, 0.6); err != nil {
		t.Fatal(err)
	}
	for k, x := range st.xjac {
		if x <= 0 {
			t.Fatalf("point %d: xjac = %g, sign flipped", k, x)
		}
	}
}

func TestStraightFieldLineDegenerate(t *testing.T) {
	st := newSurfaceState(4)
	// g + iota*I == 0.
	if err := st.straightFieldLine(-0.5, 1.0, 0.5); err != ErrDegenerateJacobian {
		t.Fatalf("got %v, want ErrDegenerateJacobian", err)
	}
}

// TestHalfMesh checks the sqrt(s)-compensating combination of the parity
// split coordinates.
func TestHalfMesh(t *testing.T) {
	st := newSurfaceState(3)
	copy(st.r1, []float64{10, 11, 12})
	copy(st.rodd, []float64{1, 2, 3})
	copy(st.z1, []float64{0, -1, 1})
	copy(st.zodd, []float64{0.5, 0.5, 0.5})

	const hs = 0.25
	js := 3
	st.halfMesh(js, hs)

	shalf := math.Sqrt(hs * 2.5)
	for k := range st.r12 {
		wantR := st.r1[k] + shalf*st.rodd[k]
		wantZ := st.z1[k] + shalf*st.zodd[k]
		if math.Abs(st.r12[k]-wantR) > 1e-15 || math.Abs(st.z12[k]-wantZ) > 1e-15 {
			t.Errorf("point %d: got (%g, %g), want (%g, %g)", k, st.r12[k], st.z12[k], wantR, wantZ)
		}
	}
}

func TestTransPmn(t *testing.T) {
	xm := []int{0, 2, 0}
	xn := []int{0, 10, -5}
	bsubu := []float64{0.7, 0.4, 0.3}
	bsubv := []float64{1.9, 0.2, 0.1}

	pmns, gpsi, ipsi := transPmn(xm, xn, bsubu, bsubv)

	if gpsi != 1.9 || ipsi != 0.7 {
		t.Fatalf("flux functions: got (g=%g, I=%g), want (1.9, 0.7)", gpsi, ipsi)
	}
	want := []float64{0, 0.4 / 2, -0.1 / -5}
	for i := range want {
		if math.Abs(pmns[i]-want[i]) > 1e-15 {
			t.Errorf("pmns[%d] = %g, want %g", i, pmns[i], want[i])
		}
	}
}
