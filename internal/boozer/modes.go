// Package boozer converts a VMEC equilibrium to Boozer coordinates: for each
// flux surface it synthesizes the geometry and field on a real-space angle
// grid, solves for the straight-field-line angle corrections and the
// transformation Jacobian, and projects the result back onto the Boozer mode
// basis by quadrature.
//
// The method follows the booz_xform algorithm (Sanchez et al., see the
// BOOZ_XFORM notes in the STELLOPT documentation): magnetic field lines are
// straight in the Boozer angles and the coordinate Jacobian is proportional
// to 1/B^2, which is what makes the basis useful for transport and
// neoclassical analysis.
package boozer

import (
	"errors"
	"fmt"
)

// ErrModeOverflow reports a mismatch between the declared Boozer mode count
// and the enumeration that fills it. It cannot occur for valid bounds and is
// fatal at construction.
var ErrModeOverflow = errors.New("boozer: mode enumeration exceeds declared capacity")

// ModeSet enumerates the target Boozer (m, n) pairs in canonical order. The
// linear index of a pair in XM/XN is the index used by every output table.
type ModeSet struct {
	MBoz int // poloidal modes run 0..MBoz-1
	NBoz int // toroidal modes run -NBoz..NBoz (0..NBoz when m=0)
	NFP  int

	XM []int // poloidal mode numbers, length MNBoz
	XN []int // toroidal mode numbers scaled by NFP, length MNBoz
}

// MNBoz is the size of the Boozer mode basis for the given bounds.
func MNBoz(mboz, nboz int) int {
	return nboz + 1 + (mboz-1)*(1+2*nboz)
}

// NewModeSet builds the canonical Boozer mode enumeration: m ascending from
// 0; for m=0 only n >= 0 (the n < 0 half is redundant by stellarator
// symmetry), otherwise n from -nboz to nboz.
func NewModeSet(mboz, nboz, nfp int) (*ModeSet, error) {
	if mboz < 1 || nboz < 0 || nfp < 1 {
		return nil, fmt.Errorf("boozer: invalid mode bounds mboz=%d nboz=%d nfp=%d", mboz, nboz, nfp)
	}
	mnboz := MNBoz(mboz, nboz)
	ms := &ModeSet{
		MBoz: mboz,
		NBoz: nboz,
		NFP:  nfp,
		XM:   make([]int, 0, mnboz),
		XN:   make([]int, 0, mnboz),
	}
	for m := 0; m < mboz; m++ {
		n1 := -nboz
		if m == 0 {
			n1 = 0
		}
		for n := n1; n <= nboz; n++ {
			if len(ms.XM) >= mnboz {
				return nil, fmt.Errorf("%w: mboz=%d nboz=%d mnboz=%d", ErrModeOverflow, mboz, nboz, mnboz)
			}
			ms.XM = append(ms.XM, m)
			ms.XN = append(ms.XN, n*nfp)
		}
	}
	if len(ms.XM) != mnboz {
		return nil, fmt.Errorf("%w: enumerated %d of %d", ErrModeOverflow, len(ms.XM), mnboz)
	}
	return ms, nil
}

// Len is the number of modes, MNBoz(MBoz, NBoz).
func (ms *ModeSet) Len() int { return len(ms.XM) }
