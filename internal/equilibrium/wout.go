package equilibrium

import (
	"fmt"
	"math"

	"github.com/batchatco/go-native-netcdf/netcdf"
	"github.com/batchatco/go-native-netcdf/netcdf/api"
)

// ReadWout loads a VMEC wout NetCDF file.
//
// Only the variables the Boozer transform needs are read. wout files from
// different VMEC builds disagree on integer widths, so all numeric reads go
// through tolerant coercion helpers.
func ReadWout(path string) (*Data, error) {
	nc, err := netcdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open wout %s: %w", path, err)
	}
	defer nc.Close()

	d := &Data{}
	scalars := []struct {
		name string
		dst  *float64
	}{
		{"aspect", &d.Aspect},
		{"rmax_surf", &d.RMaxSurf},
		{"rmin_surf", &d.RMinSurf},
		{"zmax_surf", &d.ZMaxSurf},
		{"betaxis", &d.BetaAxis},
	}
	ints := []struct {
		name string
		dst  *int
	}{
		{"nfp", &d.NFP},
		{"ns", &d.NS},
		{"mpol", &d.MPol},
		{"ntor", &d.NTor},
	}
	for _, s := range ints {
		if *s.dst, err = readInt(nc, s.name); err != nil {
			return nil, err
		}
	}
	for _, s := range scalars {
		if *s.dst, err = readFloat(nc, s.name); err != nil {
			return nil, err
		}
	}

	if d.XM, err = readIntVector(nc, "xm"); err != nil {
		return nil, err
	}
	if d.XN, err = readIntVector(nc, "xn"); err != nil {
		return nil, err
	}
	if d.XMNyq, err = readIntVector(nc, "xm_nyq"); err != nil {
		return nil, err
	}
	if d.XNNyq, err = readIntVector(nc, "xn_nyq"); err != nil {
		return nil, err
	}

	tables := []struct {
		name string
		dst  *[][]float64
	}{
		{"rmnc", &d.RmnC},
		{"zmns", &d.ZmnS},
		{"lmns", &d.LmnS},
		{"bmnc", &d.BmnC},
		{"bsubumnc", &d.BsubUmnC},
		{"bsubvmnc", &d.BsubVmnC},
	}
	for _, t := range tables {
		if *t.dst, err = readMatrix(nc, t.name); err != nil {
			return nil, err
		}
	}

	profiles := []struct {
		name string
		dst  *[]float64
	}{
		{"iotas", &d.Iota},
		{"pres", &d.Pres},
		{"beta_vol", &d.BetaVol},
		{"phi", &d.Phi},
		{"phips", &d.Phips},
		{"bvco", &d.Bvco},
		{"buco", &d.Buco},
	}
	for _, p := range profiles {
		if *p.dst, err = readVector(nc, p.name); err != nil {
			return nil, err
		}
	}

	// Normalized toroidal flux from the phi profile.
	d.S = make([]float64, len(d.Phi))
	if n := len(d.Phi); n > 0 {
		edge := d.Phi[n-1]
		if edge == 0 {
			return nil, fmt.Errorf("wout %s: zero edge toroidal flux", path)
		}
		for i, p := range d.Phi {
			d.S[i] = p / edge
		}
	}

	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("wout %s: %w", path, err)
	}
	return d, nil
}

func getVar(nc api.Group, name string) (*api.Variable, error) {
	v, err := nc.GetVariable(name)
	if err != nil {
		return nil, fmt.Errorf("wout variable %s: %w", name, err)
	}
	return v, nil
}

func readInt(nc api.Group, name string) (int, error) {
	f, err := readFloat(nc, name)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

func readFloat(nc api.Group, name string) (float64, error) {
	v, err := getVar(nc, name)
	if err != nil {
		return 0, err
	}
	f, ok := coerceScalar(v.Values)
	if !ok {
		return 0, fmt.Errorf("wout variable %s: unexpected type %T", name, v.Values)
	}
	return f, nil
}

func readVector(nc api.Group, name string) ([]float64, error) {
	v, err := getVar(nc, name)
	if err != nil {
		return nil, err
	}
	out, ok := coerceVector(v.Values)
	if !ok {
		return nil, fmt.Errorf("wout variable %s: unexpected type %T", name, v.Values)
	}
	return out, nil
}

func readIntVector(nc api.Group, name string) ([]int, error) {
	fs, err := readVector(nc, name)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(fs))
	for i, f := range fs {
		out[i] = int(math.Round(f))
	}
	return out, nil
}

func readMatrix(nc api.Group, name string) ([][]float64, error) {
	v, err := getVar(nc, name)
	if err != nil {
		return nil, err
	}
	switch m := v.Values.(type) {
	case [][]float64:
		return m, nil
	case [][]float32:
		out := make([][]float64, len(m))
		for i, row := range m {
			out[i] = make([]float64, len(row))
			for j, f := range row {
				out[i][j] = float64(f)
			}
		}
		return out, nil
	}
	return nil, fmt.Errorf("wout variable %s: unexpected type %T", name, v.Values)
}

func coerceScalar(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case int16:
		return float64(x), true
	case int8:
		return float64(x), true
	// Some writers store scalars as length-1 vectors.
	case []float64:
		if len(x) == 1 {
			return x[0], true
		}
	case []int32:
		if len(x) == 1 {
			return float64(x[0]), true
		}
	}
	return 0, false
}

func coerceVector(v any) ([]float64, bool) {
	switch x := v.(type) {
	case []float64:
		return x, true
	case []float32:
		out := make([]float64, len(x))
		for i, f := range x {
			out[i] = float64(f)
		}
		return out, true
	case []int32:
		out := make([]float64, len(x))
		for i, f := range x {
			out[i] = float64(f)
		}
		return out, true
	case []int64:
		out := make([]float64, len(x))
		for i, f := range x {
			out[i] = float64(f)
		}
		return out, true
	}
	return nil, false
}
