package boozer

// CornerSamples is the independent consistency check on a synthesized
// surface: the four canonical symmetry angles of the grid domain with the
// |B| Boozer series evaluated there, alongside the real-space |B| at the
// same grid corners. For a well-resolved surface the two agree to
// truncation error.
type CornerSamples struct {
	U, V      [4]float64 // Boozer angles at the corners
	Series    [4]float64 // Boozer-series |B| at (U, V)
	RealSpace [4]float64 // grid-synthesized |B| at the corner points
}

// cornerIndices are the grid points (0,0), (pi,0), (0,pi/nfp), (pi,pi/nfp)
// in the order the legacy diagnostic reports them: low-theta pair first.
func (g *Grid) cornerIndices() [4]int {
	piRow := g.NV * (g.NU2 - 1)
	return [4]int{0, piRow, g.NV2 - 1, g.NV2 - 1 + piRow}
}

// sampleCorners evaluates the surface's |B| series at the four corner
// Boozer angles via the degenerate (four-point) trig-table path.
func (t *Transform) sampleCorners(jrad int, st *surfaceState) CornerSamples {
	g := t.grid
	idx := g.cornerIndices()

	var cs CornerSamples
	for i, k := range idx {
		cs.U[i] = g.Theta[k] + st.uBoz[k]
		cs.V[i] = g.Zeta[k] + st.vBoz[k]
		cs.RealSpace[i] = st.bmod[k]
	}

	bmnc := make([]float64, t.modes.Len())
	for mn := range bmnc {
		bmnc[mn] = t.BmnC[mn][jrad]
	}
	cs.Series = EvalFieldStrength(t.modes, bmnc, cs.U, cs.V)
	return cs
}

// EvalFieldStrength evaluates a |B| Boozer series at four (u, v) angle
// pairs. The trig tables are the same recurrence builder the grid
// synthesis uses, applied to a four-element angle slice.
func EvalFieldStrength(ms *ModeSet, bmnc []float64, u, v [4]float64) [4]float64 {
	tt := NewTrigTables(u[:], v[:], ms.MBoz, ms.NBoz, ms.NFP)
	var cost, sint [4]float64
	var out [4]float64
	for mn := range ms.XM {
		tt.basis(ms.XM[mn], ms.XN[mn], ms.NFP, cost[:], sint[:])
		for i := range out {
			out[i] += bmnc[mn] * cost[i]
		}
	}
	return out
}
