// Package equilibrium holds the VMEC equilibrium description consumed by the
// Boozer transform: per-surface Fourier amplitude tables in the solver's
// native angle parameterization, the Nyquist-resolution field tables, and the
// scalar metadata carried through to the output file.
//
// Surfaces are indexed 0..NS-1 with surface 0 the magnetic axis. Mode-number
// arrays and amplitude tables share index order; XN and XNNyq carry the
// field-period factor, as in the wout file.
package equilibrium

import (
	"fmt"
	"math"
)

// Data is a read-only VMEC equilibrium. Amplitude tables are indexed
// [surface][mode].
type Data struct {
	NFP  int // field periods
	NS   int // flux surfaces, axis included
	MPol int // native poloidal mode bound (modes run 0..MPol-1)
	NTor int // native toroidal mode bound

	// Native mode set and amplitudes.
	XM   []int // poloidal mode numbers
	XN   []int // toroidal mode numbers, scaled by NFP
	RmnC [][]float64
	ZmnS [][]float64
	LmnS [][]float64

	// Nyquist mode set and amplitudes (|B| and covariant field components).
	XMNyq    []int
	XNNyq    []int
	BmnC     [][]float64
	BsubUmnC [][]float64
	BsubVmnC [][]float64

	// Per-surface profiles (half mesh where VMEC defines them there).
	Iota    []float64 // rotational transform
	Pres    []float64
	BetaVol []float64
	Phi     []float64 // toroidal flux
	Phips   []float64 // flux derivative
	Bvco    []float64 // net toroidal current flux function
	Buco    []float64 // net poloidal current flux function
	S       []float64 // normalized toroidal flux, S[0]=0, S[NS-1]=1

	// Scalar metadata mirrored into the output.
	Aspect   float64
	RMaxSurf float64
	RMinSurf float64
	ZMaxSurf float64
	BetaAxis float64
}

// Validate checks the structural invariants the transform relies on.
func (d *Data) Validate() error {
	if d.NFP < 1 {
		return fmt.Errorf("equilibrium: nfp = %d, want >= 1", d.NFP)
	}
	// The axis extrapolation reads surfaces 1 and 2.
	if d.NS < 3 {
		return fmt.Errorf("equilibrium: ns = %d, want >= 3", d.NS)
	}
	if len(d.XM) != len(d.XN) {
		return fmt.Errorf("equilibrium: mode arrays disagree: len(xm)=%d len(xn)=%d", len(d.XM), len(d.XN))
	}
	if len(d.XMNyq) != len(d.XNNyq) {
		return fmt.Errorf("equilibrium: nyquist mode arrays disagree: len(xm_nyq)=%d len(xn_nyq)=%d", len(d.XMNyq), len(d.XNNyq))
	}
	for name, tbl := range map[string][][]float64{
		"rmnc": d.RmnC, "zmns": d.ZmnS, "lmns": d.LmnS,
		"bmnc": d.BmnC, "bsubumnc": d.BsubUmnC, "bsubvmnc": d.BsubVmnC,
	} {
		if len(tbl) != d.NS {
			return fmt.Errorf("equilibrium: %s has %d surfaces, want %d", name, len(tbl), d.NS)
		}
	}
	for _, s := range d.S {
		if s < 0 {
			return fmt.Errorf("equilibrium: negative normalized flux %g", s)
		}
	}
	if len(d.Iota) != d.NS || len(d.S) != d.NS {
		return fmt.Errorf("equilibrium: profile length mismatch: iota=%d s=%d ns=%d", len(d.Iota), len(d.S), d.NS)
	}
	for mn, m := range d.XM {
		if m < 0 || m > d.MPol-1 {
			return fmt.Errorf("equilibrium: xm[%d] = %d outside 0..%d", mn, m, d.MPol-1)
		}
		n := d.XN[mn]
		if n%d.NFP != 0 {
			return fmt.Errorf("equilibrium: xn[%d] = %d not a multiple of nfp=%d", mn, n, d.NFP)
		}
		if n/d.NFP > d.NTor || n/d.NFP < -d.NTor {
			return fmt.Errorf("equilibrium: xn[%d] = %d outside toroidal bound %d", mn, n, d.NTor)
		}
	}
	for mn, n := range d.XNNyq {
		if n%d.NFP != 0 {
			return fmt.Errorf("equilibrium: xn_nyq[%d] = %d not a multiple of nfp=%d", mn, n, d.NFP)
		}
		if d.XMNyq[mn] < 0 {
			return fmt.Errorf("equilibrium: xm_nyq[%d] = %d negative", mn, d.XMNyq[mn])
		}
	}
	return nil
}

// MNMax is the native mode count.
func (d *Data) MNMax() int { return len(d.XM) }

// MNNyq is the Nyquist mode count.
func (d *Data) MNNyq() int { return len(d.XMNyq) }

// NyqBounds returns the largest poloidal mode number and largest
// field-period-reduced toroidal mode number in the Nyquist set.
func (d *Data) NyqBounds() (maxM, maxN int) {
	for i := range d.XMNyq {
		if d.XMNyq[i] > maxM {
			maxM = d.XMNyq[i]
		}
		n := d.XNNyq[i] / d.NFP
		if n < 0 {
			n = -n
		}
		if n > maxN {
			maxN = n
		}
	}
	return maxM, maxN
}

// SFull returns sqrt of the normalized flux per surface.
func (d *Data) SFull() []float64 {
	out := make([]float64, d.NS)
	for i, s := range d.S {
		out[i] = math.Sqrt(s)
	}
	return out
}

// CorrectAxis returns a copy of d with the m=1 axis amplitudes replaced by a
// one-sided extrapolation from the two innermost computed surfaces:
//
//	a[0] = 2*a[1]/sfull[1] - a[2]/sfull[2]
//
// Odd poloidal modes vanish at the axis like sqrt(s); the extrapolation
// supplies the missing inner neighbor the half-mesh interpolation of the
// second surface needs. Only the axis rows of RmnC and ZmnS differ from d;
// all other tables are shared.
func (d *Data) CorrectAxis() *Data {
	out := *d
	out.RmnC = append([][]float64(nil), d.RmnC...)
	out.ZmnS = append([][]float64(nil), d.ZmnS...)
	out.RmnC[0] = append([]float64(nil), d.RmnC[0]...)
	out.ZmnS[0] = append([]float64(nil), d.ZmnS[0]...)

	sfull := d.SFull()
	t1 := 2 / sfull[1]
	t2 := 1 / sfull[2]
	for mn, m := range d.XM {
		if m != 1 {
			continue
		}
		out.RmnC[0][mn] = t1*d.RmnC[1][mn] - t2*d.RmnC[2][mn]
		out.ZmnS[0][mn] = t1*d.ZmnS[1][mn] - t2*d.ZmnS[2][mn]
	}
	return &out
}
