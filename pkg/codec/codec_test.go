// Copyright © 2019 Shunsuke Tonogai

package codec

import (
	"math"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonogaishunsuke/xenonpy/pkg/errors"
	"github.com/tonogaishunsuke/xenonpy/pkg/tabular"
)

func testTable(t *testing.T) *tabular.Table {
	t.Helper()
	tbl := tabular.New("atomic_number", "density")
	require.NoError(t, tbl.AppendRow("H", 1, math.NaN()))
	require.NoError(t, tbl.AppendRow("Fe", 26, 7.874))
	return tbl
}

func TestTabularRoundTrip(t *testing.T) {
	c := New(afero.NewMemMapFs())

	path := "elements.@1" + ExtTabular
	require.NoError(t, c.Encode(Tabular(testTable(t)), path))

	v, err := c.Decode(path)
	require.NoError(t, err)
	require.True(t, v.IsTabular())
	assert.True(t, testTable(t).Equal(v.Table()))
}

func TestOpaqueRoundTrip(t *testing.T) {
	c := New(afero.NewMemMapFs())

	path := "unnamed.@1" + ExtOpaque
	require.NoError(t, c.Encode(Opaque([]float64{1, 2, 3}), path))

	v, err := c.Decode(path)
	require.NoError(t, err)
	assert.False(t, v.IsTabular())
	assert.Equal(t, []interface{}{1.0, 2.0, 3.0}, v.Opaque())
}

func TestDecodeUnknownSuffix(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "blob.bin", []byte("whatever"), 0600))

	c := New(fs)
	_, err := c.Decode("blob.bin")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDecode))
}

func TestDecodeCorrupt(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "bad"+ExtOpaque, []byte("not zlib at all"), 0600))
	require.NoError(t, afero.WriteFile(fs, "bad"+ExtTabular, []byte("a,b\n1,2\n"), 0600))

	c := New(fs)

	_, err := c.Decode("bad" + ExtOpaque)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDecode))

	_, err = c.Decode("bad" + ExtTabular)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDecode))
}

func TestDecodeMissingFile(t *testing.T) {
	c := New(afero.NewMemMapFs())
	_, err := c.Decode("gone" + ExtOpaque)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrDecode))
}

func TestBundleRoundTrip(t *testing.T) {
	c := New(afero.NewMemMapFs())

	bundle := map[string]Value{
		"a": Opaque([]float64{4, 5, 6}),
		"b": Tabular(testTable(t)),
	}
	require.NoError(t, c.EncodeBundle(bundle, "snap"+ExtOpaque))

	back, err := c.DecodeBundle("snap" + ExtOpaque)
	require.NoError(t, err)
	require.Len(t, back, 2)
	assert.Equal(t, []interface{}{4.0, 5.0, 6.0}, back["a"].Opaque())
	require.True(t, back["b"].IsTabular())
	assert.True(t, testTable(t).Equal(back["b"].Table()))
}

func TestDecodeBundleCorrupt(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "snap"+ExtOpaque, []byte("junk"), 0600))

	c := New(fs)
	_, err := c.DecodeBundle("snap" + ExtOpaque)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDecode))
}
