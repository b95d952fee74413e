package boozer

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// ErrInvalidSurface reports a surface index outside 1..ns-1. The axis
// (index 0) is never synthesized; its output rows stay zero by scope.
var ErrInvalidSurface = errors.New("boozer: surface index out of range")

// surfaceState is the transient per-surface workspace. It is owned by the
// surface iteration that allocated it and discarded afterwards; nothing in
// it is shared between surfaces.
type surfaceState struct {
	// Even- and odd-parity real-space coordinates, and their half-mesh
	// combination.
	r1, z1     []float64
	rodd, zodd []float64
	r12, z12   []float64

	// Stream function and its angle derivatives, accumulated across both
	// parity passes.
	lam, lamT, lamZ []float64

	// Covariant-potential angle derivatives, the potential itself, and |B|.
	w, wT, wZ []float64
	bmod      []float64

	// Straight-field-line solve outputs.
	uBoz, vBoz []float64
	xjac       []float64
	jacFac     float64

	// Scratch for the per-mode basis functions.
	cost, sint []float64
}

func newSurfaceState(n int) *surfaceState {
	return &surfaceState{
		r1: make([]float64, n), z1: make([]float64, n),
		rodd: make([]float64, n), zodd: make([]float64, n),
		r12: make([]float64, n), z12: make([]float64, n),
		lam: make([]float64, n), lamT: make([]float64, n), lamZ: make([]float64, n),
		w: make([]float64, n), wT: make([]float64, n), wZ: make([]float64, n),
		bmod: make([]float64, n),
		uBoz: make([]float64, n), vBoz: make([]float64, n),
		xjac: make([]float64, n),
		cost: make([]float64, n), sint: make([]float64, n),
	}
}

// transPmn converts the covariant-field Nyquist amplitudes of one surface
// into the amplitudes of the potential whose angle gradient closes the
// Boozer angle relation, and extracts the two flux-function constants from
// the (0,0) mode: g from bsubv and I from bsubu.
func transPmn(xmNyq, xnNyq []int, bsubu, bsubv []float64) (pmns []float64, gpsi, ipsi float64) {
	pmns = make([]float64, len(xmNyq))
	for mn := range xmNyq {
		switch {
		case xmNyq[mn] != 0:
			pmns[mn] = bsubu[mn] / float64(xmNyq[mn])
		case xnNyq[mn] != 0:
			pmns[mn] = -bsubv[mn] / float64(xnNyq[mn])
		default:
			gpsi = bsubv[mn]
			ipsi = bsubu[mn]
		}
	}
	return pmns, gpsi, ipsi
}

// synthRZLambda inverse-transforms the native R/Z/lambda amplitudes of
// surface js onto the grid for one poloidal parity class.
//
// Parity 0 fills st.r1/st.z1 and resets the lambda accumulators; parity 1
// fills st.rodd/st.zodd and continues accumulating lambda, so both passes
// together cover the full native mode set. Amplitudes are interpolated to
// the half mesh between js and js-1; odd modes carry 1/sqrt(s) weights
// because they vanish at the axis like sqrt(s).
func (t *Transform) synthRZLambda(js int, st *surfaceState, parity int) error {
	if js <= 0 || js >= t.eq.NS {
		return fmt.Errorf("%w: js=%d ns=%d", ErrInvalidSurface, js, t.eq.NS)
	}

	var r, z []float64
	var t1, t2 float64
	switch {
	case parity == 0:
		r, z = st.r1, st.z1
		t1, t2 = 1, 1
		zero(st.lam)
		zero(st.lamT)
		zero(st.lamZ)
	case js > 1:
		r, z = st.rodd, st.zodd
		t1 = 1 / t.sfull[js]
		t2 = 1 / t.sfull[js-1]
	default:
		// Second surface: the inner neighbor is the axis, whose m=1
		// amplitudes were extrapolated by the pre-loop axis correction.
		r, z = st.rodd, st.zodd
		t1 = 1 / t.sfull[1]
		t2 = 1
	}
	t1 /= 2
	t2 /= 2
	zero(r)
	zero(z)

	eq := t.eq
	for mn := range eq.XM {
		m := eq.XM[mn]
		if m%2 != parity {
			continue
		}
		t.trigEq.basis(m, eq.XN[mn], eq.NFP, st.cost, st.sint)

		rc := t1*eq.RmnC[js][mn] + t2*eq.RmnC[js-1][mn]
		zs := t1*eq.ZmnS[js][mn] + t2*eq.ZmnS[js-1][mn]
		floats.AddScaled(r, rc, st.cost)
		floats.AddScaled(z, zs, st.sint)

		l := eq.LmnS[js][mn]
		floats.AddScaled(st.lamT, l*float64(m), st.cost)
		floats.AddScaled(st.lamZ, -l*float64(eq.XN[mn]), st.cost)
		floats.AddScaled(st.lam, l, st.sint)
	}
	return nil
}

// synthW inverse-transforms the Nyquist-basis amplitudes of surface js:
// the covariant-potential angle derivatives (from pmns) and |B|. The
// Nyquist set is not parity split, so every mode contributes.
func (t *Transform) synthW(js int, pmns []float64, st *surfaceState) {
	zero(st.w)
	zero(st.wT)
	zero(st.wZ)
	zero(st.bmod)

	eq := t.eq
	for mn := range eq.XMNyq {
		t.trigNyq.basis(eq.XMNyq[mn], eq.XNNyq[mn], eq.NFP, st.cost, st.sint)

		p := pmns[mn]
		floats.AddScaled(st.w, p, st.sint)
		floats.AddScaled(st.wT, p*float64(eq.XMNyq[mn]), st.cost)
		floats.AddScaled(st.wZ, -p*float64(eq.XNNyq[mn]), st.cost)
		floats.AddScaled(st.bmod, eq.BmnC[js][mn], st.cost)
	}
}

func zero(s []float64) {
	for i := range s {
		s[i] = 0
	}
}
