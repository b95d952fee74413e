// Command vmec2booz converts a VMEC wout file to Boozer coordinates and
// writes the legacy boozmn NetCDF container, plus an optional text report.
//
// Usage:
//
//	vmec2booz -wout wout_li383.nc -out boozmn_li383.nc -mboz 24 -nboz 12
//
// Operational knobs come from the environment: BOOZ_WORKERS bounds the
// surface worker pool and BOOZ_METRICS_ADDR, when set, serves Prometheus
// metrics for the duration of the run.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/connoramoreno/pystell-uw/internal/boozer"
	"github.com/connoramoreno/pystell-uw/internal/boozout"
	"github.com/connoramoreno/pystell-uw/internal/equilibrium"
	"github.com/connoramoreno/pystell-uw/internal/metrics"
)

func main() {
	woutPath := flag.String("wout", "", "input VMEC wout NetCDF file (required)")
	outPath := flag.String("out", "boozmn.nc", "output boozmn NetCDF file")
	asciiPath := flag.String("ascii", "", "optional text report path")
	mboz := flag.Int("mboz", 0, "poloidal Boozer mode bound (default 6*mpol)")
	nboz := flag.Int("nboz", -1, "toroidal Boozer mode bound (default 6*ntor)")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if *woutPath == "" {
		fmt.Fprintln(os.Stderr, "vmec2booz: -wout is required")
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if addr := os.Getenv("BOOZ_METRICS_ADDR"); addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		go func() {
			logger.Info("serving metrics", "addr", addr)
			if err := http.ListenAndServe(addr, mux); err != nil {
				logger.Warn("metrics listener failed", "error", err)
			}
		}()
	}

	eq, err := equilibrium.ReadWout(*woutPath)
	if err != nil {
		logger.Error("failed to read equilibrium", "error", err)
		os.Exit(1)
	}
	logger.Info("equilibrium loaded",
		"wout", *woutPath,
		"ns", eq.NS, "nfp", eq.NFP, "mpol", eq.MPol, "ntor", eq.NTor,
		"modes", eq.MNMax(), "nyquist_modes", eq.MNNyq(),
	)

	// Generous default resolution: six target harmonics per native one.
	if *mboz <= 0 {
		*mboz = 6 * eq.MPol
	}
	if *nboz < 0 {
		*nboz = 6 * eq.NTor
	}

	cfg := boozer.Config{
		MBoz:    *mboz,
		NBoz:    *nboz,
		Workers: loadWorkers(logger),
	}
	tr, err := boozer.New(eq, cfg, logger)
	if err != nil {
		logger.Error("invalid transform configuration", "error", err)
		os.Exit(1)
	}
	if err := tr.Run(ctx); err != nil {
		logger.Error("transform failed", "error", err)
		os.Exit(1)
	}
	if len(tr.Degenerate) > 0 {
		logger.Warn("some surfaces were degenerate and left zero", "surfaces", tr.Degenerate)
	}

	if err := boozout.WriteBoozmn(*outPath, tr.Equilibrium(), tr); err != nil {
		logger.Error("failed to write boozmn", "error", err)
		os.Exit(1)
	}
	logger.Info("wrote boozmn", "path", *outPath, "mnboz", tr.Modes().Len())

	if *asciiPath != "" {
		if err := boozout.WriteASCII(*asciiPath, tr.Equilibrium(), tr); err != nil {
			logger.Error("failed to write text report", "error", err)
			os.Exit(1)
		}
		logger.Info("wrote text report", "path", *asciiPath)
	}
}

// loadWorkers reads BOOZ_WORKERS, falling back to automatic sizing on
// absent or malformed values.
func loadWorkers(logger *slog.Logger) int {
	raw := os.Getenv("BOOZ_WORKERS")
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		logger.Warn("ignoring invalid BOOZ_WORKERS", "value", raw)
		return 0
	}
	return n
}
