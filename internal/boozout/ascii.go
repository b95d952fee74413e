package boozout

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/connoramoreno/pystell-uw/internal/boozer"
	"github.com/connoramoreno/pystell-uw/internal/equilibrium"
)

// WriteASCII writes the human-readable dump of a completed transform:
// header scalars, the Boozer mode-number arrays, and per-surface blocks for
// each of the five amplitude tables. The text form is a debugging aid, not
// an interchange format; boozmn is the authoritative output.
func WriteASCII(path string, eq *equilibrium.Data, tr *boozer.Transform) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	writeReport(w, eq, tr)
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}

func writeReport(w io.Writer, eq *equilibrium.Data, tr *boozer.Transform) {
	modes := tr.Modes()
	fmt.Fprintf(w, "mboz: %d\n", modes.MBoz)
	fmt.Fprintf(w, "nboz: %d\n", modes.NBoz)
	fmt.Fprintf(w, "mnboz: %d\n", modes.Len())
	writeInts(w, "xmb", modes.XM)
	writeInts(w, "xnb", modes.XN)
	fmt.Fprintf(w, "ns: %d\n", eq.NS)
	sfull := make([]float64, eq.NS)
	for i, s := range eq.S {
		sfull[i] = math.Sqrt(s)
	}
	writeFloats(w, "s", sfull)

	writeTable(w, "bmnc_b", tr.BmnC, eq.NS)
	writeTable(w, "rmnc_b", tr.RmnC, eq.NS)
	writeTable(w, "zmns_b", tr.ZmnS, eq.NS)
	writeTable(w, "pmns_b", tr.PmnS, eq.NS)
	writeTable(w, "gmnc_b", tr.GmnC, eq.NS)
}

func writeInts(w io.Writer, name string, vals []int) {
	fmt.Fprintf(w, "%s:", name)
	for _, v := range vals {
		fmt.Fprintf(w, " %d", v)
	}
	fmt.Fprintln(w)
}

func writeFloats(w io.Writer, name string, vals []float64) {
	fmt.Fprintf(w, "%s:", name)
	for _, v := range vals {
		fmt.Fprintf(w, " %.12g", v)
	}
	fmt.Fprintln(w)
}

// writeTable emits one amplitude table as per-surface blocks, axis
// excluded, mirroring the layout of the legacy text dump.
func writeTable(w io.Writer, title string, tbl [][]float64, ns int) {
	fmt.Fprintln(w, title)
	for j := 1; j < ns; j++ {
		fmt.Fprintf(w, "jindex: %d\n", j)
		for mn := range tbl {
			if mn > 0 {
				fmt.Fprint(w, " ")
			}
			fmt.Fprintf(w, "%.12g", tbl[mn][j])
		}
		fmt.Fprintln(w)
	}
}
