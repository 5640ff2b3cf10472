// Copyright © 2019 Shunsuke Tonogai

// Package tabular provides the rows x named-columns value that the
// dataset loader, artifact store and featurizers exchange. Cells are
// float64 with NaN standing for missing values, mirroring the element
// property tables shipped with the toolkit.
package tabular

import (
	"math"

	"github.com/tonogaishunsuke/xenonpy/pkg/errors"
)

// Table is a labelled numeric matrix. Row labels are unique, column
// names are positional. The zero value is not usable, build with New.
type Table struct {
	columns []string
	index   []string
	cells   [][]float64
	rowPos  map[string]int
}

// New creates an empty table with the given column names.
func New(columns ...string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{
		columns: cols,
		rowPos:  make(map[string]int),
	}
}

// AppendRow adds a labelled row. The number of values must match the
// number of columns and the label must not already be present.
func (t *Table) AppendRow(label string, values ...float64) error {
	if len(values) != len(t.columns) {
		return errors.Newf("row %q has %d values, table has %d columns", label, len(values), len(t.columns))
	}
	if _, ok := t.rowPos[label]; ok {
		return errors.Newf("duplicate row label %q", label)
	}
	row := make([]float64, len(values))
	copy(row, values)
	t.rowPos[label] = len(t.index)
	t.index = append(t.index, label)
	t.cells = append(t.cells, row)
	return nil
}

// Columns returns a copy of the column names.
func (t *Table) Columns() []string {
	cols := make([]string, len(t.columns))
	copy(cols, t.columns)
	return cols
}

// Index returns a copy of the row labels in order.
func (t *Table) Index() []string {
	idx := make([]string, len(t.index))
	copy(idx, t.index)
	return idx
}

// Rows returns the number of rows.
func (t *Table) Rows() int {
	return len(t.index)
}

// Cols returns the number of columns.
func (t *Table) Cols() int {
	return len(t.columns)
}

// Row returns the values for a row label.
func (t *Table) Row(label string) ([]float64, bool) {
	i, ok := t.rowPos[label]
	if !ok {
		return nil, false
	}
	row := make([]float64, len(t.cells[i]))
	copy(row, t.cells[i])
	return row, true
}

// At returns the cell at row i, column j.
func (t *Table) At(i, j int) float64 {
	return t.cells[i][j]
}

// Select returns a new table restricted to the given columns, in the
// given order.
func (t *Table) Select(columns ...string) (*Table, error) {
	pos := make([]int, 0, len(columns))
	for _, c := range columns {
		j := t.colPos(c)
		if j < 0 {
			return nil, errors.Newf("unknown column %q", c)
		}
		pos = append(pos, j)
	}
	out := New(columns...)
	for i, label := range t.index {
		row := make([]float64, len(pos))
		for k, j := range pos {
			row[k] = t.cells[i][j]
		}
		if err := out.AppendRow(label, row...); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Drop returns a new table without the given columns.
func (t *Table) Drop(columns ...string) (*Table, error) {
	dropped := make(map[string]bool, len(columns))
	for _, c := range columns {
		if t.colPos(c) < 0 {
			return nil, errors.Newf("unknown column %q", c)
		}
		dropped[c] = true
	}
	keep := make([]string, 0, len(t.columns))
	for _, c := range t.columns {
		if !dropped[c] {
			keep = append(keep, c)
		}
	}
	return t.Select(keep...)
}

// Equal reports structural equality. NaN cells compare equal to NaN.
func (t *Table) Equal(o *Table) bool {
	if o == nil || len(t.columns) != len(o.columns) || len(t.index) != len(o.index) {
		return false
	}
	for j := range t.columns {
		if t.columns[j] != o.columns[j] {
			return false
		}
	}
	for i := range t.index {
		if t.index[i] != o.index[i] {
			return false
		}
		for j := range t.columns {
			a, b := t.cells[i][j], o.cells[i][j]
			if a != b && !(math.IsNaN(a) && math.IsNaN(b)) {
				return false
			}
		}
	}
	return true
}

func (t *Table) colPos(name string) int {
	for j, c := range t.columns {
		if c == name {
			return j
		}
	}
	return -1
}
