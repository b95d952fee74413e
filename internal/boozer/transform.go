package boozer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/connoramoreno/pystell-uw/internal/equilibrium"
	"github.com/connoramoreno/pystell-uw/internal/metrics"
)

// Config controls a Transform.
type Config struct {
	MBoz    int // target poloidal mode bound
	NBoz    int // target toroidal mode bound
	Workers int // surface workers; <= 0 means GOMAXPROCS
}

// Transform drives the per-surface VMEC to Boozer conversion and owns the
// output mode-amplitude tables, shaped [mnboz][ns]. Column 0 (the magnetic
// axis) is never written; column j is written exactly once, while surface j
// is processed.
type Transform struct {
	eq     *equilibrium.Data
	cfg    Config
	logger *slog.Logger

	modes   *ModeSet
	grid    *Grid
	trigEq  *TrigTables // native mode resolution
	trigNyq *TrigTables // Nyquist mode resolution
	sfull   []float64   // sqrt normalized flux per surface
	scl     []float64   // per-mode quadrature normalization
	hs      float64     // uniform flux spacing between surfaces

	// Boozer-basis amplitudes: field strength, R, Z, angle-correction
	// potential, and metric normalization.
	BmnC [][]float64
	RmnC [][]float64
	ZmnS [][]float64
	PmnS [][]float64
	GmnC [][]float64

	// Corner diagnostics per surface; zero value for the axis and for
	// degenerate surfaces.
	Corners []CornerSamples

	// Degenerate lists surfaces skipped because jacfac vanished, ascending.
	Degenerate []int
}

// New validates the equilibrium, builds the mode set, grid and fixed trig
// tables, and allocates the output tables. No surface work happens yet.
func New(eq *equilibrium.Data, cfg Config, logger *slog.Logger) (*Transform, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := eq.Validate(); err != nil {
		return nil, err
	}
	modes, err := NewModeSet(cfg.MBoz, cfg.NBoz, eq.NFP)
	if err != nil {
		return nil, err
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}

	t := &Transform{
		eq:     eq,
		cfg:    cfg,
		logger: logger,
		modes:  modes,
		grid:   NewGrid(cfg.MBoz, cfg.NBoz, eq.NFP),
		sfull:  eq.SFull(),
		hs:     1 / float64(eq.NS-1),
	}

	// Fixed-grid tables at the two source resolutions.
	t.trigEq = NewTrigTables(t.grid.Theta, t.grid.Zeta, eq.MPol-1, eq.NTor, eq.NFP)
	nyqM, nyqN := eq.NyqBounds()
	t.trigNyq = NewTrigTables(t.grid.Theta, t.grid.Zeta, nyqM, nyqN, eq.NFP)

	// Quadrature normalization: the (0,0) mode takes half the common
	// factor so the half-interval rule does not double count it.
	fac := 2 / (float64(t.grid.NU2-1) * float64(t.grid.NV))
	t.scl = make([]float64, modes.Len())
	for i := range t.scl {
		t.scl[i] = fac
	}
	t.scl[0] = fac / 2

	mnboz := modes.Len()
	t.BmnC = alloc(mnboz, eq.NS)
	t.RmnC = alloc(mnboz, eq.NS)
	t.ZmnS = alloc(mnboz, eq.NS)
	t.PmnS = alloc(mnboz, eq.NS)
	t.GmnC = alloc(mnboz, eq.NS)
	t.Corners = make([]CornerSamples, eq.NS)

	logger.Debug("boozer transform ready",
		"mboz", cfg.MBoz, "nboz", cfg.NBoz, "mnboz", mnboz,
		"nu2", t.grid.NU2, "nv", t.grid.NV, "surfaces", eq.NS-1,
		"workers", cfg.Workers,
	)
	return t, nil
}

// Modes returns the target Boozer mode set.
func (t *Transform) Modes() *ModeSet { return t.modes }

// Equilibrium returns the (axis-corrected, once Run has started) input data.
func (t *Transform) Equilibrium() *equilibrium.Data { return t.eq }

// surfaceResult is the per-surface outcome collected from the pool.
type surfaceResult struct {
	jrad    int
	corners CornerSamples
	err     error
}

// Run processes surfaces 1..ns-1. The axis correction is applied first, as
// an explicit step on a copy of the input tables; after it, surfaces share
// no mutable state and write disjoint output columns, so they are fanned
// out to a bounded worker pool. Degenerate surfaces are recorded and
// skipped, not fatal.
func (t *Transform) Run(ctx context.Context) error {
	start := time.Now()

	// The odd-parity interpolation on the second surface reads the axis
	// m=1 amplitudes; extrapolate them before any surface runs.
	t.eq = t.eq.CorrectAxis()

	jobs := make(chan int, t.cfg.Workers*2)
	results := make(chan surfaceResult, t.cfg.Workers*2)

	var wg sync.WaitGroup
	for i := 0; i < t.cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for jrad := range jobs {
				corners, err := t.processSurface(jrad)
				select {
				case results <- surfaceResult{jrad: jrad, corners: corners, err: err}:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for jrad := 1; jrad < t.eq.NS; jrad++ {
			select {
			case jobs <- jrad:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var done int
	var runErr error
	for res := range results {
		switch {
		case res.err == nil:
			done++
			t.Corners[res.jrad] = res.corners
			metrics.SurfaceProcessed("ok")
		case errors.Is(res.err, ErrDegenerateJacobian):
			t.Degenerate = append(t.Degenerate, res.jrad)
			t.logger.Warn("skipping degenerate surface", "surface", res.jrad, "error", res.err)
			metrics.SurfaceProcessed("degenerate")
		default:
			metrics.SurfaceProcessed("error")
			if runErr == nil {
				runErr = fmt.Errorf("surface %d: %w", res.jrad, res.err)
			}
		}
	}
	if runErr != nil {
		return runErr
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	sort.Ints(t.Degenerate)

	t.logger.Info("boozer transform complete",
		"surfaces", done,
		"degenerate", len(t.Degenerate),
		"elapsed", time.Since(start),
	)
	return nil
}

// processSurface runs the full per-surface pipeline: inverse synthesis,
// straight-field-line solve, half-mesh interpolation, forward synthesis,
// and the corner consistency check.
func (t *Transform) processSurface(jrad int) (CornerSamples, error) {
	start := time.Now()
	st := newSurfaceState(t.grid.NUNV)

	pmns, gpsi, ipsi := transPmn(t.eq.XMNyq, t.eq.XNNyq, t.eq.BsubUmnC[jrad], t.eq.BsubVmnC[jrad])

	if err := t.synthRZLambda(jrad, st, 0); err != nil {
		return CornerSamples{}, err
	}
	if err := t.synthRZLambda(jrad, st, 1); err != nil {
		return CornerSamples{}, err
	}
	t.synthW(jrad, pmns, st)

	iota := t.eq.Iota[jrad]
	if err := st.straightFieldLine(gpsi, ipsi, iota); err != nil {
		return CornerSamples{}, fmt.Errorf("%w (g=%g iota=%g I=%g)", err, gpsi, iota, ipsi)
	}
	st.halfMesh(jrad, t.hs)
	t.synthesizeBoozer(jrad, st)

	cs := t.sampleCorners(jrad, st)
	t.logger.Debug("surface done",
		"surface", jrad,
		"jacfac", st.jacFac,
		"b_corner_series", cs.Series,
		"b_corner_grid", cs.RealSpace,
		"elapsed", time.Since(start),
	)
	metrics.ObserveSurfaceDuration(time.Since(start))
	return cs, nil
}
