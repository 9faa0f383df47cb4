// Package closeness loads the pairwise-closeness tables produced by the
// tracking experiment: one row per object pair observed as possibly close
// at a given timestep.
package closeness

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// Observation is one row of the pairwise-closeness table. T is kept as
// its raw CSV string: timestep keys only need equality, not an ordering.
type Observation struct {
	T      string
	D1     string
	D2     string
	PClose float64
}

// Group holds all observations sharing one timestep key. Groups carry no
// state across each other; each is evaluated independently.
type Group struct {
	T    string
	Rows []Observation
}

// LoadCSV parses a closeness table with header columns t, d1, d2 and
// p_close (in any column order). Range validation of p_close happens at
// program construction so that a bad row fails its own timestep rather
// than the whole load.
func LoadCSV(r io.Reader) ([]Observation, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}
	for _, required := range []string{"t", "d1", "d2", "p_close"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing column %q in header %v", required, header)
		}
	}

	var obs []Observation
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		p, err := strconv.ParseFloat(record[cols["p_close"]], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: parse p_close: %w", line, err)
		}

		obs = append(obs, Observation{
			T:      record[cols["t"]],
			D1:     record[cols["d1"]],
			D2:     record[cols["d2"]],
			PClose: p,
		})
	}
	return obs, nil
}

// GroupByTimestep splits observations into per-timestep groups, ordered
// by first appearance of each timestep key in the input.
func GroupByTimestep(obs []Observation) []Group {
	index := make(map[string]int)
	var groups []Group
	for _, o := range obs {
		i, seen := index[o.T]
		if !seen {
			i = len(groups)
			index[o.T] = i
			groups = append(groups, Group{T: o.T})
		}
		groups[i].Rows = append(groups[i].Rows, o)
	}
	return groups
}
