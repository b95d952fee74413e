package boozer

import "gonum.org/v1/gonum/floats"

// synthesizeBoozer projects the surface onto the Boozer mode basis and
// writes column jrad of the five output tables. This is the forward Fourier
// transform: trig tables are rebuilt at the corrected angles
// (theta + uboz, zeta + vboz), each basis function is weighted by the
// pointwise Jacobian, and the quadrature is a plain sum over the grid with
// the theta boundary rows half-weighted.
func (t *Transform) synthesizeBoozer(jrad int, st *surfaceState) {
	n := t.grid.NUNV
	uang := make([]float64, n)
	vang := make([]float64, n)
	floats.AddTo(uang, t.grid.Theta, st.uBoz)
	floats.AddTo(vang, t.grid.Zeta, st.vBoz)

	bt := NewTrigTables(uang, vang, t.modes.MBoz, t.modes.NBoz, t.eq.NFP)
	halfWeightBoundary(bt, t.grid)

	// Metric normalization integrand, jacfac/B^2.
	bbjac := make([]float64, n)
	for k := range bbjac {
		bbjac[k] = st.jacFac / (st.bmod[k] * st.bmod[k])
	}

	cost := make([]float64, n)
	sint := make([]float64, n)
	for mn := range t.modes.XM {
		bt.basis(t.modes.XM[mn], t.modes.XN[mn], t.eq.NFP, cost, sint)
		floats.Mul(cost, st.xjac)
		floats.Mul(sint, st.xjac)

		scl := t.scl[mn]
		t.BmnC[mn][jrad] = scl * floats.Dot(st.bmod, cost)
		t.RmnC[mn][jrad] = scl * floats.Dot(st.r12, cost)
		t.ZmnS[mn][jrad] = scl * floats.Dot(st.z12, sint)
		t.PmnS[mn][jrad] = -scl * floats.Dot(st.vBoz, sint)
		t.GmnC[mn][jrad] = scl * floats.Dot(bbjac, cost)
	}
}

// halfWeightBoundary scales the poloidal tables by 1/2 on the theta=0 and
// theta=pi rows so the half-interval trapezoid quadrature does not double
// count them. The weight goes on the poloidal family only; the combined
// basis picks it up exactly once per product.
func halfWeightBoundary(bt *TrigTables, g *Grid) {
	lo := g.NV * (g.NU2 - 1)
	for m := range bt.CosM {
		for k := 0; k < g.NV; k++ {
			bt.CosM[m][k] *= 0.5
			bt.SinM[m][k] *= 0.5
			bt.CosM[m][lo+k] *= 0.5
			bt.SinM[m][lo+k] *= 0.5
		}
	}
}
