package boozer

import "math"

// TrigTables holds cos(m*theta), sin(m*theta), cos(n*nfp*zeta) and
// sin(n*nfp*zeta) for every sample point, indexed [mode][point]. One builder
// serves every use: the native-mode and Nyquist-mode tables on the fixed
// grid, the per-surface tables at the corrected Boozer angles, and the
// four-point corner evaluation (a 4-element angle slice).
type TrigTables struct {
	CosM, SinM [][]float64 // [0..maxM][len(theta)]
	CosN, SinN [][]float64 // [0..maxN][len(zeta)]
}

// NewTrigTables evaluates the harmonics by the angle-addition recurrence
//
//	cos(m*t) = cos((m-1)*t)*cos(t) - sin((m-1)*t)*sin(t)
//
// from the directly evaluated first harmonic. The recurrence is exact to
// floating precision and avoids per-mode trig calls.
func NewTrigTables(theta, zeta []float64, maxM, maxN, nfp int) *TrigTables {
	np := len(theta)
	t := &TrigTables{
		CosM: alloc(maxM+1, np),
		SinM: alloc(maxM+1, np),
		CosN: alloc(maxN+1, np),
		SinN: alloc(maxN+1, np),
	}

	for k := range t.CosM[0] {
		t.CosM[0][k] = 1
	}
	if maxM >= 1 {
		for k, th := range theta {
			t.CosM[1][k] = math.Cos(th)
			t.SinM[1][k] = math.Sin(th)
		}
	}
	for m := 2; m <= maxM; m++ {
		recur(t.CosM[m], t.SinM[m], t.CosM[m-1], t.SinM[m-1], t.CosM[1], t.SinM[1])
	}

	for k := range t.CosN[0] {
		t.CosN[0][k] = 1
	}
	// booz_xform guards this with ntor > 1, leaving the n=1 harmonic
	// undefined when the bound is exactly 1; filled for any maxN >= 1 here.
	if maxN >= 1 {
		fp := float64(nfp)
		for k, zt := range zeta {
			t.CosN[1][k] = math.Cos(zt * fp)
			t.SinN[1][k] = math.Sin(zt * fp)
		}
	}
	for n := 2; n <= maxN; n++ {
		recur(t.CosN[n], t.SinN[n], t.CosN[n-1], t.SinN[n-1], t.CosN[1], t.SinN[1])
	}
	return t
}

func recur(cosDst, sinDst, cosPrev, sinPrev, cos1, sin1 []float64) {
	for k := range cosDst {
		cosDst[k] = cosPrev[k]*cos1[k] - sinPrev[k]*sin1[k]
		sinDst[k] = sinPrev[k]*cos1[k] + cosPrev[k]*sin1[k]
	}
}

func alloc(rows, cols int) [][]float64 {
	out := make([][]float64, rows)
	for i := range out {
		out[i] = make([]float64, cols)
	}
	return out
}

// basis writes the combined basis functions for one (m, n) mode into cost
// and sint:
//
//	cost = cos(m*theta)*cos(n*zeta) + sin(m*theta)*sin(n*zeta)  = cos(m*theta - n*zeta)
//	sint = sin(m*theta)*cos(n*zeta) - cos(m*theta)*sin(n*zeta)  = sin(m*theta - n*zeta)
//
// n is addressed by magnitude with the sign folded into the cross terms;
// sign(0) = 0, matching the convention of the source mode arrays.
func (t *TrigTables) basis(m, nSigned, nfp int, cost, sint []float64) {
	n := nSigned / nfp
	sgn := 1.0
	switch {
	case n < 0:
		n = -n
		sgn = -1
	case n == 0:
		sgn = 0
	}
	cm, sm := t.CosM[m], t.SinM[m]
	cn, sn := t.CosN[n], t.SinN[n]
	for k := range cost {
		cost[k] = cm[k]*cn[k] + sm[k]*sn[k]*sgn
		sint[k] = sm[k]*cn[k] - cm[k]*sn[k]*sgn
	}
}
