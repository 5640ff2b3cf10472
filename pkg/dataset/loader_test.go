// Copyright © 2019 Shunsuke Tonogai

package dataset

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonogaishunsuke/xenonpy/pkg/codec"
	"github.com/tonogaishunsuke/xenonpy/pkg/errors"
	"github.com/tonogaishunsuke/xenonpy/pkg/fetch"
	"github.com/tonogaishunsuke/xenonpy/pkg/tabular"
)

func elementsCSV(t *testing.T) []byte {
	t.Helper()
	tbl := tabular.New("atomic_number", "atomic_weight")
	require.NoError(t, tbl.AppendRow("H", 1, 1.008))
	require.NoError(t, tbl.AppendRow("He", 2, 4.003))
	var buf bytes.Buffer
	require.NoError(t, tbl.WriteCSV(&buf))
	return buf.Bytes()
}

func testConfig() Config {
	return Config{
		CacheRoot:    "cached",
		DatasetRoot:  "dataset",
		UserDataRoot: "userdata",
		BaseURL:      DefaultBaseURL,
	}
}

func catalogServer(t *testing.T, hits *int64) *httptest.Server {
	t.Helper()
	payload := elementsCSV(t)
	mux := http.NewServeMux()
	mux.HandleFunc("/dl/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(hits, 1)
		_, _ = w.Write(payload)
	})
	mux.HandleFunc("/blob/opaque.bin", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(hits, 1)
		_, _ = w.Write([]byte("opaque bytes"))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testLoader(t *testing.T, srv *httptest.Server) (*Loader, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("cached", 0700))
	l := NewLoader(testConfig(),
		FS(fs),
		WithURLResolver(func(name string) string {
			return srv.URL + "/dl/" + name + codec.ExtTabular
		}),
	)
	return l, fs
}

func TestResolvePreset(t *testing.T) {
	var hits int64
	srv := catalogServer(t, &hits)
	l, fs := testLoader(t, srv)

	res, err := l.Resolve(context.Background(), "elements")
	require.NoError(t, err)
	require.Equal(t, KindTable, res.Kind)
	require.NotNil(t, res.Table)
	assert.Equal(t, []string{"H", "He"}, res.Table.Index())
	assert.EqualValues(t, 1, hits)

	ok, err := afero.Exists(fs, "dataset/elements"+codec.ExtTabular)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestResolvePresetCacheHit(t *testing.T) {
	var hits int64
	srv := catalogServer(t, &hits)
	l, _ := testLoader(t, srv)

	first, err := l.Elements(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, hits)

	// unreachable network must not matter once cached
	srv.Close()

	second, err := l.Elements(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, hits)
	assert.True(t, first.Equal(second))
}

func TestResolveUserDataset(t *testing.T) {
	var hits int64
	srv := catalogServer(t, &hits)
	l, fs := testLoader(t, srv)

	_, err := l.Resolve(context.Background(), "mydata")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))

	require.NoError(t, fs.MkdirAll("userdata/mydata", 0700))
	res, err := l.Resolve(context.Background(), "mydata")
	require.NoError(t, err)
	require.Equal(t, KindStore, res.Kind)
	require.NotNil(t, res.Store)
	assert.Equal(t, "mydata", res.Store.Name())

	require.NoError(t, res.Store.AppendNamed("a", codec.Opaque([]float64{1})))
	assert.Equal(t, 1, res.Store.Len("a"))
}

func TestResolveURL(t *testing.T) {
	var hits int64
	srv := catalogServer(t, &hits)
	l, fs := testLoader(t, srv)

	res, err := l.Resolve(context.Background(), srv.URL+"/blob/opaque.bin")
	require.NoError(t, err)
	require.Equal(t, KindPath, res.Kind)
	assert.Equal(t, "cached/opaque.bin", res.Path)

	b, err := afero.ReadFile(fs, res.Path)
	require.NoError(t, err)
	assert.Equal(t, "opaque bytes", string(b))
}

func TestResolveRejectsScheme(t *testing.T) {
	var hits int64
	srv := catalogServer(t, &hits)
	l, _ := testLoader(t, srv)

	_, err := l.Resolve(context.Background(), "ftp://host/file")
	require.Error(t, err)
	assert.True(t, errors.Is(err, fetch.ErrUnsupportedScheme))
	assert.EqualValues(t, 0, hits)
}

func TestPresetUnknownName(t *testing.T) {
	var hits int64
	srv := catalogServer(t, &hits)
	l, _ := testLoader(t, srv)

	_, err := l.Preset(context.Background(), "not_a_preset")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}
