// Copyright © 2019 Shunsuke Tonogai

// Package codec reads and writes single artifact files. The file
// extension is the only type tag: tabular data is CSV under ExtTabular,
// everything else is zlib-compressed CBOR under ExtOpaque. No schema is
// recorded anywhere else.
package codec

import (
	"io"
	"os"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zlib"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/tonogaishunsuke/xenonpy/pkg/errors"
	"github.com/tonogaishunsuke/xenonpy/pkg/tabular"
)

const (
	// ExtTabular tags tabular artifacts.
	ExtTabular = ".pkl.pd_"
	// ExtOpaque tags opaque blob artifacts.
	ExtOpaque = ".pkl.z"
)

type errString string

func (e errString) Error() string { return string(e) }

// ErrDecode is returned when an artifact has an unrecognized suffix or
// corrupt content.
const ErrDecode errString = "unrecognized or corrupt artifact encoding"

// Codec encodes and decodes artifact files on a backing filesystem.
type Codec struct {
	fs afero.Fs
	l  *zap.Logger
}

// Option configures a Codec.
type Option func(*Codec)

// Logger sets a logger for this codec
func Logger(l *zap.Logger) Option {
	return func(c *Codec) {
		c.l = l
	}
}

// New creates a codec over the given filesystem. A nil fs means the OS
// filesystem.
func New(fs afero.Fs, opts ...Option) *Codec {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	c := &Codec{fs: fs, l: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Encode writes value to target, choosing the encoding from the
// value's kind. The target must carry the extension matching the kind;
// use Value.Ext when building the name.
func (c *Codec) Encode(v Value, target string) error {
	f, err := c.fs.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return errors.Newf("creating artifact %q", target).Wrap(err)
	}
	if err := encodeTo(v, f); err != nil {
		_ = f.Close()
		return errors.Newf("encoding artifact %q", target).Wrap(err)
	}
	c.l.Debug("artifact encoded", zap.String("path", target))
	return f.Close()
}

func encodeTo(v Value, w io.Writer) error {
	switch v.Kind() {
	case KindTabular:
		return v.Table().WriteCSV(w)
	default:
		zw := zlib.NewWriter(w)
		if err := cbor.NewEncoder(zw).Encode(v.Opaque()); err != nil {
			return err
		}
		return zw.Close()
	}
}

// Decode reads the artifact at path, dispatching on its extension.
func (c *Codec) Decode(path string) (Value, error) {
	switch {
	case strings.HasSuffix(path, ExtTabular):
		return c.decodeTabular(path)
	case strings.HasSuffix(path, ExtOpaque):
		return c.decodeOpaque(path)
	default:
		return Value{}, errors.Newf("artifact %q", path).Wrap(ErrDecode)
	}
}

func (c *Codec) decodeTabular(path string) (Value, error) {
	f, err := c.fs.Open(path)
	if err != nil {
		return Value{}, errors.Newf("opening artifact %q", path).Wrap(err)
	}
	defer f.Close()
	t, err := tabular.ReadCSV(f)
	if err != nil {
		return Value{}, errors.Newf("artifact %q", path).Wrap(ErrDecode)
	}
	return Tabular(t), nil
}

func (c *Codec) decodeOpaque(path string) (Value, error) {
	f, err := c.fs.Open(path)
	if err != nil {
		return Value{}, errors.Newf("opening artifact %q", path).Wrap(err)
	}
	defer f.Close()
	zr, err := zlib.NewReader(f)
	if err != nil {
		return Value{}, errors.Newf("artifact %q", path).Wrap(ErrDecode)
	}
	defer zr.Close()
	var out interface{}
	if err := cbor.NewDecoder(zr).Decode(&out); err != nil {
		return Value{}, errors.Newf("artifact %q", path).Wrap(ErrDecode)
	}
	return Opaque(out), nil
}
