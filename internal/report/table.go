// Package report renders the experiment's result CSVs as charts: PDF
// figures via gonum/plot and small table utilities to reshape the data
// first.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Table is a small column-oriented view over a CSV file. It carries just
// enough reshaping surface for the chart builders: column access, row
// filtering, and wide-to-long melting.
type Table struct {
	Columns []string
	rows    [][]string
	index   map[string]int
}

// LoadTable parses a headered CSV into a Table.
func LoadTable(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	t := &Table{
		Columns: header,
		index:   make(map[string]int, len(header)),
	}
	for i, name := range header {
		t.index[name] = i
	}

	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		t.rows = append(t.rows, record)
	}
	return t, nil
}

// LoadTableFile parses the CSV at path.
func LoadTableFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := LoadTable(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Len returns the row count.
func (t *Table) Len() int { return len(t.rows) }

// Has reports whether the table carries the named column.
func (t *Table) Has(col string) bool {
	_, ok := t.index[col]
	return ok
}

func (t *Table) col(name string) (int, error) {
	i, ok := t.index[name]
	if !ok {
		return 0, fmt.Errorf("no column %q (have %v)", name, t.Columns)
	}
	return i, nil
}

// Strings returns the named column as raw strings.
func (t *Table) Strings(col string) ([]string, error) {
	i, err := t.col(col)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(t.rows))
	for r, row := range t.rows {
		out[r] = row[i]
	}
	return out, nil
}

// Floats returns the named column parsed as float64.
func (t *Table) Floats(col string) ([]float64, error) {
	i, err := t.col(col)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(t.rows))
	for r, row := range t.rows {
		v, err := strconv.ParseFloat(row[i], 64)
		if err != nil {
			return nil, fmt.Errorf("column %q row %d: %w", col, r+1, err)
		}
		out[r] = v
	}
	return out, nil
}

// Unique returns the column's distinct values in first-appearance order;
// this is the grouping key order for multi-series charts.
func (t *Table) Unique(col string) ([]string, error) {
	values, err := t.Strings(col)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(values))
	var out []string
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out, nil
}

// FilterEq returns a new table containing the rows whose named column
// equals value. The result shares no row storage with the receiver.
func (t *Table) FilterEq(col, value string) (*Table, error) {
	i, err := t.col(col)
	if err != nil {
		return nil, err
	}
	out := &Table{Columns: t.Columns, index: t.index}
	for _, row := range t.rows {
		if row[i] == value {
			out.rows = append(out.rows, row)
		}
	}
	return out, nil
}

// FilterFloat keeps rows for which keep returns true on the named
// column's parsed value.
func (t *Table) FilterFloat(col string, keep func(float64) bool) (*Table, error) {
	i, err := t.col(col)
	if err != nil {
		return nil, err
	}
	out := &Table{Columns: t.Columns, index: t.index}
	for _, row := range t.rows {
		v, err := strconv.ParseFloat(row[i], 64)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", col, err)
		}
		if keep(v) {
			out.rows = append(out.rows, row)
		}
	}
	return out, nil
}

// Melt reshapes wide columns into long form: for each input row and each
// value column, one output row (id, variable, value). This mirrors the
// reshaping the experiment's figures apply before multi-series plots.
func (t *Table) Melt(id string, valueCols []string) (*Table, error) {
	idIdx, err := t.col(id)
	if err != nil {
		return nil, err
	}
	valueIdx := make([]int, len(valueCols))
	for i, c := range valueCols {
		valueIdx[i], err = t.col(c)
		if err != nil {
			return nil, err
		}
	}

	out := &Table{
		Columns: []string{id, "variable", "value"},
		index:   map[string]int{id: 0, "variable": 1, "value": 2},
	}
	for _, row := range t.rows {
		for i, c := range valueCols {
			out.rows = append(out.rows, []string{row[idIdx], c, row[valueIdx[i]]})
		}
	}
	return out, nil
}
