package boozer

import (
	"errors"
	"math"
)

// ErrDegenerateJacobian reports a surface whose Jacobian factor
// g + iota*I evaluated to zero. The surface has no valid Boozer
// representation; its outputs are left zero and the loop continues.
var ErrDegenerateJacobian = errors.New("boozer: degenerate jacobian factor")

// straightFieldLine solves for the Boozer angle corrections and the
// pointwise transformation Jacobian on one surface.
//
// With jacfac = g + iota*I, the toroidal correction is
// vboz = (w - I*lambda)/jacfac and the poloidal one
// uboz = lambda + iota*vboz; the Jacobian of the angle map is
//
//	xjac = (1 + dlambda/dtheta)*(1 + psubv) + (iota - dlambda/dzeta)*psubu
//
// where psubu/psubv are the covariant-potential derivatives mapped through
// the same factor. For a physically valid surface xjac keeps one sign over
// the whole grid.
func (st *surfaceState) straightFieldLine(gpsi, ipsi, iota float64) error {
	st.jacFac = gpsi + iota*ipsi
	if st.jacFac == 0 {
		return ErrDegenerateJacobian
	}
	dem := 1 / st.jacFac
	ipsi1 := ipsi * dem

	for k := range st.xjac {
		st.vBoz[k] = dem*st.w[k] - ipsi1*st.lam[k]
		st.uBoz[k] = st.lam[k] + iota*st.vBoz[k]
		psubv := dem*st.wZ[k] - ipsi1*st.lamZ[k]
		psubu := dem*st.wT[k] - ipsi1*st.lamT[k]
		bsupv := 1 + st.lamT[k]
		bsupu := iota - st.lamZ[k]
		st.xjac[k] = bsupv*(1+psubv) + bsupu*psubu
	}
	return nil
}

// halfMesh combines the parity-split coordinates at the half-mesh location
// of surface js: even + sqrt(hs*(js-1/2)) * odd. The sqrt factor undoes the
// 1/sqrt(s) weighting applied to the odd modes during synthesis.
func (st *surfaceState) halfMesh(js int, hs float64) {
	shalf := math.Sqrt(hs * math.Abs(float64(js)-0.5))
	for k := range st.r12 {
		st.r12[k] = st.r1[k] + shalf*st.rodd[k]
		st.z12[k] = st.z1[k] + shalf*st.zodd[k]
	}
}
