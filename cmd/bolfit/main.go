// Command bolfit estimates the bolometric light curve of a transient
// from a CSV photometry file.
//
// Usage:
//
//	bolfit -input photometry.csv -mode magnitude -z 0.1 [flags]
//
// The input file holds one measurement per line:
//
//	time,label,value,error
//
// where label is a band name in magnitude and flux modes, or a
// frequency in Hz in flux_density mode. Lines starting with '#' are
// skipped.
//
// Examples:
//
//	bolfit -input sn.csv -mode magnitude -z 0.05
//	bolfit -input sn.csv -mode flux_density -z 0.1 -bin 2 -lambda-cut 3000
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-photometry/measure/blackbody"
	"github.com/cwbudde/algo-photometry/measure/bolometric"
	"github.com/cwbudde/algo-photometry/phot/series"
)

func main() {
	var (
		input         = flag.String("input", "", "CSV photometry file ('-' for stdin)")
		mode          = flag.String("mode", "magnitude", "data mode: flux_density, flux, or magnitude")
		redshift      = flag.Float64("z", 0, "source redshift (required)")
		distance      = flag.Float64("distance", 1e27, "luminosity distance in cm")
		binWidth      = flag.Float64("bin", 1.0, "epoch bin width in days")
		minFilters    = flag.Int("min-filters", 3, "minimum measurements per bin")
		lambdaCut     = flag.Float64("lambda-cut", 0, "boost cutoff wavelength in angstrom (0 disables)")
		extinction    = flag.Float64("ext", 0, "bolometric extinction in magnitudes")
		effWavelength = flag.Bool("eff-wavelength", false, "force the effective wavelength approximation")
		workers       = flag.Int("workers", 0, "concurrent epoch fits (0 uses all CPUs)")
		verbose       = flag.Bool("v", false, "verbose diagnostics")
	)

	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "bolfit: -input is required")
		flag.Usage()
		os.Exit(2)
	}

	dataMode, err := series.ParseDataMode(*mode)
	if err != nil {
		fatal(err)
	}

	ser, err := loadSeries(*input, dataMode, *redshift)
	if err != nil {
		fatal(err)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelInfo
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	bbOpts := []blackbody.Option{
		blackbody.WithDistance(*distance),
		blackbody.WithBinWidth(*binWidth),
		blackbody.WithMinFilters(*minFilters),
	}

	if *effWavelength {
		bbOpts = append(bbOpts, blackbody.WithEffectiveWavelength())
	}

	if *workers > 0 {
		bbOpts = append(bbOpts, blackbody.WithWorkers(*workers))
	}

	opts := []bolometric.Option{
		bolometric.WithLogger(logger),
		bolometric.WithBlackbody(bbOpts...),
		bolometric.WithExtinction(*extinction),
	}

	if *lambdaCut > 0 {
		opts = append(opts, bolometric.WithLambdaCut(*lambdaCut))
	}

	points, err := bolometric.Estimate(ser, opts...)
	if err != nil {
		fatal(err)
	}

	if len(points) == 0 {
		fmt.Fprintln(os.Stderr, "bolfit: no usable epochs; try wider bins or fewer filters")
		os.Exit(1)
	}

	printTable(points)
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "bolfit: %v\n", err)
	os.Exit(1)
}

// loadSeries reads time,label,value,error rows into a series.
func loadSeries(path string, mode series.DataMode, redshift float64) (*series.Series, error) {
	var src io.Reader

	if path == "-" {
		src = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		src = f
	}

	r := csv.NewReader(src)
	r.Comment = '#'
	r.TrimLeadingSpace = true

	ser := &series.Series{Redshift: redshift, Mode: mode}

	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, err
		}

		if len(record) != 4 {
			return nil, fmt.Errorf("expected 4 columns, got %d: %q", len(record), strings.Join(record, ","))
		}

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, fmt.Errorf("bad time %q: %w", record[0], err)
		}

		y, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, fmt.Errorf("bad value %q: %w", record[2], err)
		}

		yerr, err := strconv.ParseFloat(record[3], 64)
		if err != nil {
			return nil, fmt.Errorf("bad error %q: %w", record[3], err)
		}

		ser.Time = append(ser.Time, t)
		ser.Y = append(ser.Y, y)
		ser.YErr = append(ser.YErr, yerr)

		if mode == series.ModeFluxDensity {
			nu, err := strconv.ParseFloat(record[1], 64)
			if err != nil {
				return nil, fmt.Errorf("bad frequency %q: %w", record[1], err)
			}

			ser.FrequenciesHz = append(ser.FrequenciesHz, nu)
		} else {
			ser.Bands = append(ser.Bands, record[1])
		}
	}

	return ser, nil
}

func printTable(points []bolometric.Point) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)

	fmt.Fprintln(w, "t\tt_rest\tT[K]\tT_err\tR[cm]\tR_err\tL_bol[1e50]\tL_err\tL_bb\t")

	for _, p := range points {
		fmt.Fprintf(w, "%.3f\t%.3f\t%.0f\t%.0f\t%.3e\t%.3e\t%.4e\t%.4e\t%.4e\t\n",
			p.EpochTime, p.RestFrameTime,
			p.TemperatureK, p.TemperatureErr,
			p.RadiusCm, p.RadiusErr,
			p.LumBol, p.LumBolErr, p.LumBolBB)
	}

	w.Flush()
}
