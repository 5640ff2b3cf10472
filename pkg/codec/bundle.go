// Copyright © 2019 Shunsuke Tonogai

package codec

import (
	"os"

	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zlib"
	"go.uber.org/zap"

	"github.com/tonogaishunsuke/xenonpy/pkg/errors"
	"github.com/tonogaishunsuke/xenonpy/pkg/tabular"
)

// A bundle is one opaque blob holding a name -> value mapping, the
// format produced by ArtifactStore.Export. Values keep their kind
// through an explicit envelope since the single ExtOpaque extension
// cannot tag them individually.

const (
	envelopeTabular = "tabular"
	envelopeOpaque  = "opaque"
)

type envelope struct {
	Kind   string      `cbor:"kind"`
	Table  *tableWire  `cbor:"table,omitempty"`
	Opaque interface{} `cbor:"opaque,omitempty"`
}

type tableWire struct {
	Columns []string    `cbor:"columns"`
	Index   []string    `cbor:"index"`
	Cells   [][]float64 `cbor:"cells"`
}

func toWire(t *tabular.Table) *tableWire {
	w := &tableWire{
		Columns: t.Columns(),
		Index:   t.Index(),
		Cells:   make([][]float64, t.Rows()),
	}
	for i := 0; i < t.Rows(); i++ {
		row := make([]float64, t.Cols())
		for j := 0; j < t.Cols(); j++ {
			row[j] = t.At(i, j)
		}
		w.Cells[i] = row
	}
	return w
}

func fromWire(w *tableWire) (*tabular.Table, error) {
	t := tabular.New(w.Columns...)
	for i, label := range w.Index {
		if i >= len(w.Cells) {
			return nil, errors.New("table wire form has fewer rows than labels")
		}
		if err := t.AppendRow(label, w.Cells[i]...); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// EncodeBundle writes the mapping as a single opaque blob at target.
func (c *Codec) EncodeBundle(bundle map[string]Value, target string) error {
	wire := make(map[string]envelope, len(bundle))
	for name, v := range bundle {
		if v.IsTabular() {
			wire[name] = envelope{Kind: envelopeTabular, Table: toWire(v.Table())}
		} else {
			wire[name] = envelope{Kind: envelopeOpaque, Opaque: v.Opaque()}
		}
	}

	f, err := c.fs.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return errors.Newf("creating bundle %q", target).Wrap(err)
	}
	zw := zlib.NewWriter(f)
	if err := cbor.NewEncoder(zw).Encode(wire); err != nil {
		_ = f.Close()
		return errors.Newf("encoding bundle %q", target).Wrap(err)
	}
	if err := zw.Close(); err != nil {
		_ = f.Close()
		return errors.Newf("flushing bundle %q", target).Wrap(err)
	}
	c.l.Debug("bundle encoded", zap.String("path", target), zap.Int("entries", len(bundle)))
	return f.Close()
}

// DecodeBundle reads a mapping written by EncodeBundle.
func (c *Codec) DecodeBundle(path string) (map[string]Value, error) {
	f, err := c.fs.Open(path)
	if err != nil {
		return nil, errors.Newf("opening bundle %q", path).Wrap(err)
	}
	defer f.Close()
	zr, err := zlib.NewReader(f)
	if err != nil {
		return nil, errors.Newf("bundle %q", path).Wrap(ErrDecode)
	}
	defer zr.Close()

	var wire map[string]envelope
	if err := cbor.NewDecoder(zr).Decode(&wire); err != nil {
		return nil, errors.Newf("bundle %q", path).Wrap(ErrDecode)
	}

	bundle := make(map[string]Value, len(wire))
	for name, env := range wire {
		switch env.Kind {
		case envelopeTabular:
			if env.Table == nil {
				return nil, errors.Newf("bundle %q: entry %q has no table", path, name).Wrap(ErrDecode)
			}
			t, err := fromWire(env.Table)
			if err != nil {
				return nil, errors.Newf("bundle %q: entry %q", path, name).Wrap(ErrDecode)
			}
			bundle[name] = Tabular(t)
		case envelopeOpaque:
			bundle[name] = Opaque(env.Opaque)
		default:
			return nil, errors.Newf("bundle %q: entry %q has kind %q", path, name, env.Kind).Wrap(ErrDecode)
		}
	}
	return bundle, nil
}
