// Package chartserver is a local debugging viewer for collision run
// results: it renders the results CSV as interactive go-echarts line
// charts. HTML only, no auth, not a programmatic API.
package chartserver

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/closeness.report/internal/report"
)

// Server serves charts over a results CSV. The file is re-read on every
// request so a running collision evaluation can be watched as it writes.
type Server struct {
	resultsPath string
}

func New(resultsPath string) *Server {
	return &Server{resultsPath: resultsPath}
}

func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleHome)
	mux.HandleFunc("/probability", s.handleProbability)
	mux.HandleFunc("/runtime", s.handleRuntime)
	return mux
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, `<html><body>
<h1>Collision run results</h1>
<ul>
<li><a href="/probability">P(unsafe) per timestep</a></li>
<li><a href="/runtime">Evaluation runtime per timestep</a></li>
</ul>
</body></html>`)
}

func (s *Server) handleProbability(w http.ResponseWriter, r *http.Request) {
	s.renderLine(w, "P(unsafe) per timestep", "probability", "P(unsafe)")
}

func (s *Server) handleRuntime(w http.ResponseWriter, r *http.Request) {
	s.renderLine(w, "Evaluation runtime per timestep", "elapsed_seconds", "Runtime / s")
}

func (s *Server) renderLine(w http.ResponseWriter, title, column, yName string) {
	tbl, err := report.LoadTableFile(s.resultsPath)
	if err != nil {
		http.Error(w, fmt.Sprintf("load results: %v", err), http.StatusInternalServerError)
		return
	}

	timesteps, err := tbl.Strings("t")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	values, err := tbl.Floats(column)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	data := make([]opts.LineData, 0, len(values))
	for _, v := range values {
		data = append(data, opts.LineData{Value: v})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "1200px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: fmt.Sprintf("results=%s timesteps=%d", s.resultsPath, len(values))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "t"}),
		charts.WithYAxisOpts(opts.YAxis{Name: yName}),
	)
	line.SetXAxis(timesteps)
	line.AddSeries(yName, data)

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		http.Error(w, fmt.Sprintf("render chart: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}
