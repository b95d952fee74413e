// Package boozout writes the transform results: the legacy boozmn NetCDF
// container consumed by downstream Boozer-coordinate tools, and a
// human-readable text report.
package boozout

import (
	"fmt"

	"github.com/batchatco/go-native-netcdf/netcdf/api"
	"github.com/batchatco/go-native-netcdf/netcdf/cdf"

	"github.com/connoramoreno/pystell-uw/internal/boozer"
	"github.com/connoramoreno/pystell-uw/internal/equilibrium"
)

// versionTag identifies the writer in the boozmn file.
const versionTag = "pystell 1.0"

// WriteBoozmn writes the boozmn NetCDF file for a completed transform.
//
// The layout reproduces the legacy format exactly, including its variable
// name quirks (the toroidal mode array is "inm_b", the metric table is
// "gmn_b"): dimension names, i4/f8 types, jlist in 1-based surface indices
// 2..ns, and the amplitude tables transposed with the axis row dropped.
// Downstream readers depend on all of it.
func WriteBoozmn(path string, eq *equilibrium.Data, tr *boozer.Transform) error {
	cw, err := cdf.OpenWriter(path)
	if err != nil {
		return fmt.Errorf("create boozmn %s: %w", path, err)
	}

	modes := tr.Modes()
	mnboz := modes.Len()

	scalarInts := []struct {
		name string
		v    int32
	}{
		{"nfp_b", int32(eq.NFP)},
		{"ns_b", int32(eq.NS)},
		{"mboz_b", int32(modes.MBoz)},
		{"nboz_b", int32(modes.NBoz)},
		{"lasym__logical__", 0}, // stellarator-symmetric only
	}
	scalarFloats := []struct {
		name string
		v    float64
	}{
		{"aspect_b", eq.Aspect},
		{"rmax_b", eq.RMaxSurf},
		{"rmin_b", eq.RMinSurf},
		{"zmax_b", eq.ZMaxSurf},
		{"betaxis_b", eq.BetaAxis},
	}
	radius := []struct {
		name string
		v    []float64
	}{
		{"iota_b", eq.Iota},
		{"pres_b", eq.Pres},
		{"beta_b", eq.BetaVol},
		{"phip_b", eq.Phips},
		{"phi_b", eq.Phi},
		{"bvco_b", eq.Bvco},
		{"buco_b", eq.Buco},
	}
	packed := []struct {
		name string
		v    [][]float64
	}{
		{"bmnc_b", packRad(tr.BmnC, eq.NS, mnboz)},
		{"rmnc_b", packRad(tr.RmnC, eq.NS, mnboz)},
		{"zmns_b", packRad(tr.ZmnS, eq.NS, mnboz)},
		{"pmns_b", packRad(tr.PmnS, eq.NS, mnboz)},
		{"gmn_b", packRad(tr.GmnC, eq.NS, mnboz)},
	}

	for _, s := range scalarInts {
		if err := addVar(cw, s.name, s.v, nil); err != nil {
			return err
		}
	}
	for _, s := range scalarFloats {
		if err := addVar(cw, s.name, s.v, nil); err != nil {
			return err
		}
	}
	if err := addVar(cw, "version", versionTag, nil); err != nil {
		return err
	}
	for _, r := range radius {
		if err := addVar(cw, r.name, r.v, []string{"radius"}); err != nil {
			return err
		}
	}

	// 1-based indices of the computed surfaces, 2..ns.
	jlist := make([]int32, eq.NS-1)
	for i := range jlist {
		jlist[i] = int32(i + 2)
	}
	if err := addVar(cw, "jlist", jlist, []string{"comput_surfs"}); err != nil {
		return err
	}

	if err := addVar(cw, "ixm_b", toInt32(modes.XM), []string{"mn_mode"}); err != nil {
		return err
	}
	if err := addVar(cw, "inm_b", toInt32(modes.XN), []string{"mn_mode"}); err != nil {
		return err
	}
	for _, p := range packed {
		if err := addVar(cw, p.name, p.v, []string{"pack_rad", "mn_mode"}); err != nil {
			return err
		}
	}

	if err := cw.Close(); err != nil {
		return fmt.Errorf("close boozmn %s: %w", path, err)
	}
	return nil
}

func addVar(cw api.Writer, name string, values any, dims []string) error {
	err := cw.AddVar(name, api.Variable{
		Values:     values,
		Dimensions: dims,
		Attributes: nil,
	})
	if err != nil {
		return fmt.Errorf("boozmn variable %s: %w", name, err)
	}
	return nil
}

// packRad transposes a [mnboz][ns] table to [ns-1][mnboz], dropping the
// never-written axis column.
func packRad(tbl [][]float64, ns, mnboz int) [][]float64 {
	out := make([][]float64, ns-1)
	for j := 1; j < ns; j++ {
		row := make([]float64, mnboz)
		for mn := 0; mn < mnboz; mn++ {
			row[mn] = tbl[mn][j]
		}
		out[j-1] = row
	}
	return out
}

func toInt32(s []int) []int32 {
	out := make([]int32, len(s))
	for i, v := range s {
		out[i] = int32(v)
	}
	return out
}
