package boozer

import "math"

// Grid is the real-space evaluation grid for one field period: NU3 theta
// values spanning [0, pi] (the symmetric half period) crossed with NV zeta
// values spanning [0, 2*pi/nfp). Points are stored row-major with theta as
// the outer loop; every table indexed by grid point shares this order.
//
// The theta boundary rows (0 and pi) are kept rather than dropped: the
// forward quadrature half-weights them, giving a trapezoid-equivalent rule
// over the half interval that stellarator symmetry doubles to the full one.
type Grid struct {
	NU  int // full poloidal sample count, 2*(2*mboz+1)
	NV  int // toroidal samples per field period, 2*(2*nboz+1)
	NU2 int // samples covering [0, pi], NU/2 + 1
	NU3 int // theta rows actually gridded (== NU2 in the symmetric case)
	NV2 int // samples covering [0, pi/nfp], NV/2 + 1

	NUNV  int // NU3 * NV
	Theta []float64
	Zeta  []float64
}

// NewGrid sizes the grid from the target Boozer mode bounds so that every
// mode below the bound is resolved by the quadrature.
func NewGrid(mboz, nboz, nfp int) *Grid {
	g := &Grid{
		NU: 2 * (2*mboz + 1),
		NV: 2 * (2*nboz + 1),
	}
	g.NU2 = g.NU/2 + 1
	g.NU3 = g.NU2
	g.NV2 = g.NV/2 + 1
	g.NUNV = g.NU3 * g.NV

	dth := math.Pi / float64(g.NU3-1)
	dzt := 2 * math.Pi / float64(g.NV*nfp)
	g.Theta = make([]float64, g.NUNV)
	g.Zeta = make([]float64, g.NUNV)
	k := 0
	for lt := 0; lt < g.NU3; lt++ {
		for lz := 0; lz < g.NV; lz++ {
			g.Theta[k] = float64(lt) * dth
			g.Zeta[k] = float64(lz) * dzt
			k++
		}
	}
	return g
}
