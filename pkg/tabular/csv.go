// Copyright © 2019 Shunsuke Tonogai

package tabular

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"

	"github.com/tonogaishunsuke/xenonpy/pkg/errors"
)

// WriteCSV serializes the table. The first header cell is empty, the
// remaining header cells are column names. Each record starts with the
// row label. NaN cells are written as empty strings.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	header := append([]string{""}, t.columns...)
	if err := cw.Write(header); err != nil {
		return err
	}
	record := make([]string, len(t.columns)+1)
	for i, label := range t.index {
		record[0] = label
		for j, v := range t.cells[i] {
			if math.IsNaN(v) {
				record[j+1] = ""
			} else {
				record[j+1] = strconv.FormatFloat(v, 'g', -1, 64)
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV reconstructs a table written by WriteCSV.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, errors.New("reading tabular header").Wrap(err)
	}
	if len(header) < 1 || header[0] != "" {
		return nil, errors.New("malformed tabular header")
	}
	t := New(header[1:]...)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			return t, nil
		}
		if err != nil {
			return nil, errors.New("reading tabular record").Wrap(err)
		}
		values := make([]float64, len(record)-1)
		for j, cell := range record[1:] {
			if cell == "" {
				values[j] = math.NaN()
				continue
			}
			v, perr := strconv.ParseFloat(cell, 64)
			if perr != nil {
				return nil, errors.Newf("row %q: bad numeric cell %q", record[0], cell).Wrap(perr)
			}
			values[j] = v
		}
		if err := t.AppendRow(record[0], values...); err != nil {
			return nil, err
		}
	}
}
