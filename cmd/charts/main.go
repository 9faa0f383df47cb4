// Command charts renders the experiment's result CSVs as PDF figures.
//
// Usage:
//
//	go run ./cmd/charts -kind <kind> [flags]
//
// Kinds and their expected input columns:
//
//	runtime      Time, Runtime, Leafs        (inference runtime per step)
//	values       Time, Value, Location       (inferred values over time)
//	probability  t, probability              (collision run results)
//	frequencies  Location, Frequency         (KDE of observed frequencies)
//	simfreq      Time, <one column/source>   (simulated source frequencies)
//	simtime      Time, OriginalRuntime, AdaptedRuntime, AdaptedFullRuntime
//	simleafs     Time, Leafs                 (layer occupancy)
//	estimation   Measurement, Estimated, True, EstimatedCluster, TrueCluster, BinSize
//	speedup      -baseline Runtime,Size and -input BinSize, Location, Runtime, Size, Depth
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/banshee-data/closeness.report/internal/report"
)

func main() {
	kind := flag.String("kind", "", "Chart kind (see command doc)")
	input := flag.String("input", "", "Input CSV")
	baseline := flag.String("baseline", "", "Baseline CSV (speedup only)")
	outputDir := flag.String("output-dir", "output/plots", "Directory for rendered PDFs")
	totalSources := flag.Int("total-sources", 42, "Total source count (simleafs only)")
	flag.Parse()

	if *kind == "" || *input == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("create output dir: %v", err)
	}

	tbl, err := report.LoadTableFile(*input)
	if err != nil {
		log.Fatalf("load input: %v", err)
	}

	cfg := report.Config{Palette: report.DefaultPalette()}

	switch *kind {
	case "runtime":
		err = report.RuntimeChart(tbl, cfg, filepath.Join(*outputDir, "time_plot.pdf"))
	case "values":
		err = report.ValuesChart(tbl, cfg, filepath.Join(*outputDir, "value_plot.pdf"))
	case "probability":
		err = report.ProbabilityChart(tbl, cfg, filepath.Join(*outputDir, "probability_plot.pdf"))
	case "frequencies":
		err = report.FrequencyDensityChart(tbl, cfg, filepath.Join(*outputDir, "frequencies_plot.pdf"))
	case "simfreq":
		err = report.SimFrequencyChart(tbl, cfg, filepath.Join(*outputDir, "sim_freq_plot.pdf"))
	case "simtime":
		err = report.SimRuntimeCharts(tbl, cfg, *outputDir)
	case "simleafs":
		err = report.SimLeafCharts(tbl, cfg, *totalSources, *outputDir)
	case "estimation":
		err = report.EstimationCharts(tbl, cfg, *outputDir)
	case "speedup":
		if *baseline == "" {
			log.Fatalf("kind speedup needs -baseline")
		}
		var base *report.Table
		base, err = report.LoadTableFile(*baseline)
		if err != nil {
			log.Fatalf("load baseline: %v", err)
		}
		err = report.SpeedupCharts(base, tbl, cfg, *outputDir)
	default:
		log.Fatalf("unknown chart kind %q", *kind)
	}
	if err != nil {
		log.Fatalf("render %s: %v", *kind, err)
	}
	log.Printf("rendered %s charts to %s", *kind, *outputDir)
}
