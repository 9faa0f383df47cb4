package report

import (
	"fmt"
	"math"
	"path/filepath"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Config carries the explicit styling every chart builder takes. Nothing
// here is process-wide; callers pass the palette into each call.
type Config struct {
	Palette   Palette
	LineWidth vg.Length
}

func (c Config) lineWidth() vg.Length {
	if c.LineWidth > 0 {
		return c.LineWidth
	}
	return vg.Points(1)
}

// Standard figure size for the experiment's PDF output.
const (
	figWidth  = 6 * vg.Inch
	figHeight = 4 * vg.Inch
)

func newLinePlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Legend.Top = true
	return p
}

func addSeries(p *plot.Plot, name string, xs, ys []float64, cfg Config, idx int) error {
	pts := make(plotter.XYs, 0, len(xs))
	for i := range xs {
		pts = append(pts, plotter.XY{X: xs[i], Y: ys[i]})
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("series %s: %w", name, err)
	}
	line.Color = cfg.Palette.Color(idx)
	line.Width = cfg.lineWidth()
	p.Add(line)
	if name != "" {
		p.Legend.Add(name, line)
	}
	return nil
}

// groupedLineChart renders one line per distinct value of groupCol.
func groupedLineChart(tbl *Table, groupCol, xCol, yCol, xLabel, yLabel, path string, cfg Config) error {
	groups, err := tbl.Unique(groupCol)
	if err != nil {
		return err
	}

	p := newLinePlot("", xLabel, yLabel)
	for i, g := range groups {
		sub, err := tbl.FilterEq(groupCol, g)
		if err != nil {
			return err
		}
		xs, err := sub.Floats(xCol)
		if err != nil {
			return err
		}
		ys, err := sub.Floats(yCol)
		if err != nil {
			return err
		}
		if err := addSeries(p, g, xs, ys, cfg, i); err != nil {
			return err
		}
	}
	return p.Save(figWidth, figHeight, path)
}

// RuntimeChart plots inference runtime against inference step, one line
// per leaf count. Input columns: Time, Runtime, Leafs.
func RuntimeChart(tbl *Table, cfg Config, path string) error {
	return groupedLineChart(tbl, "Leafs", "Time", "Runtime", "Inference Step", "Time / s", path, cfg)
}

// ValuesChart plots the inferred value against time, one line per
// location. Input columns: Time, Value, Location.
func ValuesChart(tbl *Table, cfg Config, path string) error {
	return groupedLineChart(tbl, "Location", "Time", "Value", "Time", "Value", path, cfg)
}

// ProbabilityChart plots per-timestep collision probability from a
// collision run's results CSV (columns t, probability).
func ProbabilityChart(tbl *Table, cfg Config, path string) error {
	xs, err := tbl.Floats("t")
	if err != nil {
		return err
	}
	ys, err := tbl.Floats("probability")
	if err != nil {
		return err
	}

	p := newLinePlot("", "Time", "P(unsafe)")
	p.Y.Min = 0
	p.Y.Max = 1
	if err := addSeries(p, "", xs, ys, cfg, 0); err != nil {
		return err
	}
	return p.Save(figWidth, figHeight, path)
}

// FrequencyDensityChart plots a kernel density estimate of observed
// frequencies per location, clipped to [0, 1000] Hz. Input columns:
// Location, Frequency.
func FrequencyDensityChart(tbl *Table, cfg Config, path string) error {
	locations, err := tbl.Unique("Location")
	if err != nil {
		return err
	}

	p := newLinePlot("", "Frequency / Hz", "Density")
	for i, loc := range locations {
		sub, err := tbl.FilterEq("Location", loc)
		if err != nil {
			return err
		}
		samples, err := sub.Floats("Frequency")
		if err != nil {
			return err
		}
		xs, ys := kernelDensity(samples, 0, 1000, 256)
		if xs == nil {
			continue
		}
		if err := addSeries(p, loc, xs, ys, cfg, i); err != nil {
			return err
		}
	}
	return p.Save(figWidth, figHeight, path)
}

// SimFrequencyChart plots each simulated source's frequency against
// simulation time on a log scale. Every column other than Time is a
// source series; non-positive samples are dropped for the log axis.
func SimFrequencyChart(tbl *Table, cfg Config, path string) error {
	p := newLinePlot("", "Simulation Time / s", "Source Freq. / Hz")
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Legend.Top = false

	times, err := tbl.Floats("Time")
	if err != nil {
		return err
	}

	idx := 0
	for _, col := range tbl.Columns {
		if col == "Time" {
			continue
		}
		ys, err := tbl.Floats(col)
		if err != nil {
			return err
		}
		var xs, positive []float64
		for i, y := range ys {
			if y > 0 {
				xs = append(xs, times[i])
				positive = append(positive, y)
			}
		}
		if len(positive) == 0 {
			continue
		}
		if err := addSeries(p, "", xs, positive, cfg, idx); err != nil {
			return err
		}
		idx++
	}
	return p.Save(figWidth, figHeight, path)
}

// simWindowCharts renders the same multi-series line chart twice: once
// restricted to the first window seconds, once over the full run.
func simWindowCharts(tbl *Table, series map[string]string, order []string, yLabel string, logY bool, window float64, dir, prefix string, cfg Config) error {
	render := func(data *Table, path string) error {
		p := newLinePlot("", "Simulation Time / s", yLabel)
		if logY {
			p.Y.Scale = plot.LogScale{}
			p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
		}
		times, err := data.Floats("Time")
		if err != nil {
			return err
		}
		for i, name := range order {
			ys, err := data.Floats(series[name])
			if err != nil {
				return err
			}
			xs := times
			if logY {
				var fxs, fys []float64
				for j, y := range ys {
					if y > 0 {
						fxs = append(fxs, times[j])
						fys = append(fys, y)
					}
				}
				xs, ys = fxs, fys
			}
			if err := addSeries(p, name, xs, ys, cfg, i); err != nil {
				return err
			}
		}
		return p.Save(figWidth, figHeight, path)
	}

	short, err := tbl.FilterFloat("Time", func(v float64) bool { return v <= window })
	if err != nil {
		return err
	}
	if err := render(short, filepath.Join(dir, fmt.Sprintf("%s_%ds.pdf", prefix, int(window)))); err != nil {
		return err
	}
	return render(tbl, filepath.Join(dir, prefix+"_full.pdf"))
}

// SimRuntimeCharts plots flat, reactive, and adapted circuit runtimes
// against simulation time (log scale), as a 60 s window and a full-run
// PDF. Input columns: Time, OriginalRuntime, AdaptedRuntime,
// AdaptedFullRuntime.
func SimRuntimeCharts(tbl *Table, cfg Config, dir string) error {
	series := map[string]string{
		"Flat":     "OriginalRuntime",
		"Reactive": "AdaptedRuntime",
		"Adapted":  "AdaptedFullRuntime",
	}
	order := []string{"Flat", "Reactive", "Adapted"}
	return simWindowCharts(tbl, series, order, "Runtime / s", true, 60, dir, "sim_runtime", cfg)
}

// SimLeafCharts plots how many sources sit in each circuit layer over
// simulation time. Layer 2 holds whatever layer 1 does not, out of
// totalSources. Input columns: Time, Leafs.
func SimLeafCharts(tbl *Table, cfg Config, totalSources int, dir string) error {
	times, err := tbl.Floats("Time")
	if err != nil {
		return err
	}
	layer1, err := tbl.Floats("Leafs")
	if err != nil {
		return err
	}

	render := func(limit float64, path string) error {
		p := newLinePlot("", "Simulation Time / s", "#Sources")
		var xs, l1, l2 []float64
		for i, ti := range times {
			if limit > 0 && ti > limit {
				continue
			}
			xs = append(xs, ti)
			l1 = append(l1, layer1[i])
			l2 = append(l2, float64(totalSources)-layer1[i])
		}
		if err := addSeries(p, "Layer 1", xs, l1, cfg, 0); err != nil {
			return err
		}
		if err := addSeries(p, "Layer 2", xs, l2, cfg, 1); err != nil {
			return err
		}
		return p.Save(figWidth, figHeight, path)
	}

	if err := render(60, filepath.Join(dir, "sim_leafs_60s.pdf")); err != nil {
		return err
	}
	return render(0, filepath.Join(dir, "sim_leafs_full.pdf"))
}

// EstimationCharts renders the frequency-of-change estimation figures:
// estimated vs true tracking at bin size 1, and the per-partitioning
// mean absolute cluster error. Input columns: Measurement, Estimated,
// True, EstimatedCluster, TrueCluster, BinSize.
func EstimationCharts(tbl *Table, cfg Config, dir string) error {
	tracked, err := tbl.FilterEq("BinSize", "1")
	if err != nil {
		return err
	}
	xs, err := tracked.Floats("Measurement")
	if err != nil {
		return err
	}
	estimated, err := tracked.Floats("Estimated")
	if err != nil {
		return err
	}
	trueVals, err := tracked.Floats("True")
	if err != nil {
		return err
	}

	p := newLinePlot("", "#Measurements", "FoC Tracking")
	p.X.Min, p.X.Max = 0, 1200
	p.Y.Min, p.Y.Max = 0, 30
	if err := addSeries(p, "Estimated", xs, estimated, cfg, 0); err != nil {
		return err
	}
	if err := addSeries(p, "True", xs, trueVals, cfg, 1); err != nil {
		return err
	}
	if err := p.Save(figWidth, figHeight, filepath.Join(dir, "foc_tracking.pdf")); err != nil {
		return err
	}

	// Partition MAE bars, one bar per bin size.
	bins, err := tbl.Unique("BinSize")
	if err != nil {
		return err
	}
	values := make(plotter.Values, 0, len(bins))
	labels := make([]string, 0, len(bins))
	for _, bin := range bins {
		sub, err := tbl.FilterEq("BinSize", bin)
		if err != nil {
			return err
		}
		est, err := sub.Floats("EstimatedCluster")
		if err != nil {
			return err
		}
		truth, err := sub.Floats("TrueCluster")
		if err != nil {
			return err
		}
		errs := make([]float64, len(est))
		for i := range est {
			errs[i] = math.Abs(truth[i] - est[i])
		}
		values = append(values, stat.Mean(errs, nil))
		labels = append(labels, bin+"Hz")
	}

	bp := plot.New()
	bp.X.Label.Text = "Partitioning"
	bp.Y.Label.Text = "Partition MAE"
	bars, err := plotter.NewBarChart(values, vg.Points(12))
	if err != nil {
		return err
	}
	bars.Color = cfg.Palette.Color(2)
	bars.LineStyle.Width = 0
	bp.Add(bars)
	bp.NominalX(labels...)
	return bp.Save(figWidth, figHeight, filepath.Join(dir, "partition_mae.pdf"))
}

// SpeedupCharts compares the adapted circuit against the flat baseline:
// mean speedup, memory ratio, and circuit depth per bin size, grouped by
// location. Baseline columns: Runtime, Size. Adapted columns: BinSize,
// Location, Runtime, Size, Depth.
func SpeedupCharts(baseline, adapted *Table, cfg Config, dir string) error {
	baseRuntime, err := baseline.Floats("Runtime")
	if err != nil {
		return err
	}
	baseSize, err := baseline.Floats("Size")
	if err != nil {
		return err
	}
	meanRuntime := stat.Mean(baseRuntime, nil)
	meanSize := stat.Mean(baseSize, nil)

	charts := []struct {
		file   string
		yLabel string
		value  func(runtime, size, depth float64) float64
	}{
		{"speedup.pdf", "Speedup", func(runtime, _, _ float64) float64 { return meanRuntime / runtime }},
		{"mem_ratio.pdf", "Mem. Ratio", func(_, size, _ float64) float64 { return size / meanSize }},
		{"depth.pdf", "Depth", func(_, _, depth float64) float64 { return depth }},
	}

	bins, err := adapted.Unique("BinSize")
	if err != nil {
		return err
	}
	locations, err := adapted.Unique("Location")
	if err != nil {
		return err
	}

	for _, c := range charts {
		p := plot.New()
		p.X.Label.Text = "Partitioning"
		p.Y.Label.Text = c.yLabel
		p.Legend.Top = true

		barWidth := vg.Points(8)
		for li, loc := range locations {
			values := make(plotter.Values, 0, len(bins))
			for _, bin := range bins {
				sub, err := adapted.FilterEq("BinSize", bin)
				if err != nil {
					return err
				}
				sub, err = sub.FilterEq("Location", loc)
				if err != nil {
					return err
				}
				runtimes, err := sub.Floats("Runtime")
				if err != nil {
					return err
				}
				sizes, err := sub.Floats("Size")
				if err != nil {
					return err
				}
				depths, err := sub.Floats("Depth")
				if err != nil {
					return err
				}
				cell := make([]float64, len(runtimes))
				for i := range runtimes {
					cell[i] = c.value(runtimes[i], sizes[i], depths[i])
				}
				if len(cell) == 0 {
					values = append(values, 0)
					continue
				}
				values = append(values, stat.Mean(cell, nil))
			}

			bars, err := plotter.NewBarChart(values, barWidth)
			if err != nil {
				return err
			}
			bars.Color = cfg.Palette.Color(li)
			bars.LineStyle.Width = 0
			bars.Offset = vg.Length(float64(li)-float64(len(locations)-1)/2) * barWidth
			p.Add(bars)
			p.Legend.Add(loc, bars)
		}

		labels := make([]string, len(bins))
		for i, bin := range bins {
			labels[i] = bin + "Hz"
		}
		p.NominalX(labels...)

		if err := p.Save(figWidth, figHeight, filepath.Join(dir, c.file)); err != nil {
			return err
		}
	}
	return nil
}
