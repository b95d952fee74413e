package equilibrium

import (
	"math"
	"testing"
)

func validData() *Data {
	return &Data{
		NFP:  5,
		NS:   3,
		MPol: 2,
		NTor: 1,

		XM:    []int{0, 1, 1},
		XN:    []int{0, 0, 5},
		XMNyq: []int{0, 1, 1},
		XNNyq: []int{0, 0, 5},

		RmnC:     [][]float64{{10, 0, 0}, {10, 0.7, 0.05}, {10, 1.0, 0.08}},
		ZmnS:     [][]float64{{0, 0, 0}, {0, 0.8, 0.04}, {0, 1.1, 0.06}},
		LmnS:     [][]float64{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}},
		BmnC:     [][]float64{{0, 0, 0}, {2.5, 0.4, 0.1}, {2.5, 0.5, 0.12}},
		BsubUmnC: [][]float64{{0, 0, 0}, {0.2, 0, 0}, {0.25, 0, 0}},
		BsubVmnC: [][]float64{{0, 0, 0}, {1.3, 0, 0}, {1.4, 0, 0}},

		Iota:    []float64{0, 0.45, 0.5},
		Pres:    []float64{0, 1000, 800},
		BetaVol: []float64{0, 0.01, 0.008},
		Phi:     []float64{0, 0.5, 1.0},
		Phips:   []float64{0, 0.5, 0.5},
		Bvco:    []float64{0, 1.3, 1.4},
		Buco:    []float64{0, 0.2, 0.25},
		S:       []float64{0, 0.5, 1.0},
	}
}

func TestValidate(t *testing.T) {
	if err := validData().Validate(); err != nil {
		t.Fatalf("valid data rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Data)
	}{
		{"too few surfaces", func(d *Data) { d.NS = 2 }},
		{"bad nfp", func(d *Data) { d.NFP = 0 }},
		{"mode array mismatch", func(d *Data) { d.XN = d.XN[:2] }},
		{"nyquist mismatch", func(d *Data) { d.XNNyq = append(d.XNNyq, 10) }},
		{"table surface count", func(d *Data) { d.RmnC = d.RmnC[:2] }},
		{"negative flux", func(d *Data) { d.S[1] = -0.5 }},
		{"profile length", func(d *Data) { d.Iota = d.Iota[:2] }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validData()
			tt.mutate(d)
			if err := d.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestNyqBounds(t *testing.T) {
	d := validData()
	d.XMNyq = []int{0, 3, 2}
	d.XNNyq = []int{0, -15, 10}
	m, n := d.NyqBounds()
	if m != 3 || n != 3 {
		t.Fatalf("got (%d, %d), want (3, 3)", m, n)
	}
}

// TestCorrectAxis checks the m=1 extrapolation arithmetic and that only a
// copy of the axis rows is touched.
func TestCorrectAxis(t *testing.T) {
	d := validData()
	c := d.CorrectAxis()

	s1 := math.Sqrt(0.5)
	wantR := 2*0.7/s1 - 1.0
	wantZ := 2*0.8/s1 - 1.1
	if got := c.RmnC[0][1]; math.Abs(got-wantR) > 1e-15 {
		t.Errorf("corrected rmnc[0][1] = %g, want %g", got, wantR)
	}
	if got := c.ZmnS[0][1]; math.Abs(got-wantZ) > 1e-15 {
		t.Errorf("corrected zmns[0][1] = %g, want %g", got, wantZ)
	}

	// m=0 modes untouched, source untouched.
	if c.RmnC[0][0] != 10 {
		t.Errorf("m=0 axis amplitude changed to %g", c.RmnC[0][0])
	}
	if d.RmnC[0][1] != 0 || d.ZmnS[0][1] != 0 {
		t.Error("source data mutated")
	}
	// Non-axis rows shared, not copied.
	if &c.RmnC[1][0] != &d.RmnC[1][0] {
		t.Error("non-axis rows were needlessly copied")
	}
}

func TestSFull(t *testing.T) {
	d := validData()
	sf := d.SFull()
	want := []float64{0, math.Sqrt(0.5), 1}
	for i := range want {
		if math.Abs(sf[i]-want[i]) > 1e-15 {
			t.Errorf("sfull[%d] = %g, want %g", i, sf[i], want[i])
		}
	}
}
