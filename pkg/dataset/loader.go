// Copyright © 2019 Shunsuke Tonogai

// Package dataset resolves dataset identifiers to data. An identifier
// is either a preset name (bundled dataset, fetched once from the
// remote catalog and cached forever), the name of a user-owned store
// directory, or a plain URL fetched into the cache.
package dataset

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/tonogaishunsuke/xenonpy/pkg/codec"
	"github.com/tonogaishunsuke/xenonpy/pkg/errors"
	"github.com/tonogaishunsuke/xenonpy/pkg/fetch"
	"github.com/tonogaishunsuke/xenonpy/pkg/store"
	"github.com/tonogaishunsuke/xenonpy/pkg/tabular"
)

// Presets are the bundled dataset names, auto-fetched on first use.
var Presets = []string{
	"elements",
	"elements_completed",
	"mp_inorganic",
	"electron_density",
	"sample_A",
	"mp_structure",
}

// IsPreset reports whether name is a bundled dataset.
func IsPreset(name string) bool {
	for _, p := range Presets {
		if p == name {
			return true
		}
	}
	return false
}

type errString string

func (e errString) Error() string { return string(e) }

// ErrNotFound is returned when a dataset is absent locally and not
// fetchable.
const ErrNotFound errString = "dataset not found"

// URLResolver maps a preset name to its canonical download URL. The
// resolution scheme is an external collaborator; the default points at
// the upstream release mirror.
type URLResolver func(name string) string

// Kind discriminates what Resolve returned.
type Kind int

const (
	// KindTable marks a decoded preset table.
	KindTable Kind = iota
	// KindStore marks a handle on a user-owned artifact store.
	KindStore
	// KindPath marks the local path of a fetched URL.
	KindPath
)

// Resolved is the outcome of resolving one dataset identifier. Exactly
// one of Table, Store or Path is set, per Kind.
type Resolved struct {
	Kind  Kind
	Table *tabular.Table
	Store *store.Store
	Path  string
}

// Loader resolves dataset identifiers against the local roots, with
// remote fetch as fallback for presets and URLs.
type Loader struct {
	cfg        Config
	fs         afero.Fs
	fetcher    *fetch.Fetcher
	codec      *codec.Codec
	resolveURL URLResolver
	chunkSize  int
	l          *zap.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// FS sets the filesystem the loader reads and caches on
func FS(fs afero.Fs) Option {
	return func(l *Loader) {
		l.fs = fs
	}
}

// Logger sets a logger for this loader
func Logger(lg *zap.Logger) Option {
	return func(l *Loader) {
		l.l = lg
	}
}

// ChunkSize sets the download streaming buffer size in bytes
func ChunkSize(sz int) Option {
	return func(l *Loader) {
		l.chunkSize = sz
	}
}

// WithURLResolver overrides the preset URL resolution
func WithURLResolver(r URLResolver) Option {
	return func(l *Loader) {
		l.resolveURL = r
	}
}

// NewLoader creates a loader over the given configuration.
func NewLoader(cfg Config, opts ...Option) *Loader {
	l := &Loader{
		cfg:       cfg,
		fs:        afero.NewOsFs(),
		chunkSize: fetch.DefaultChunkSize,
		l:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.resolveURL == nil {
		base := cfg.BaseURL
		l.resolveURL = func(name string) string {
			return base + "/" + name + codec.ExtTabular
		}
	}
	l.codec = codec.New(l.fs, codec.Logger(l.l))
	l.fetcher = fetch.New(cfg.CacheRoot,
		fetch.FS(l.fs),
		fetch.ChunkSize(l.chunkSize),
		fetch.Logger(l.l),
	)
	return l
}

// Resolve maps a dataset identifier to data.
//
// Preset names decode to a table, fetching into the dataset cache on
// first use and never refreshing afterwards. Names without a path
// separator open the user dataset store of that name, failing if the
// directory does not exist. Anything else is treated as a URL and
// fetched into the cache; the caller decodes the returned path.
func (l *Loader) Resolve(ctx context.Context, name string) (Resolved, error) {
	switch {
	case IsPreset(name):
		t, err := l.Preset(ctx, name)
		if err != nil {
			return Resolved{}, err
		}
		return Resolved{Kind: KindTable, Table: t}, nil

	case !strings.Contains(name, "/"):
		s, err := l.UserDataset(name)
		if err != nil {
			return Resolved{}, err
		}
		return Resolved{Kind: KindStore, Store: s}, nil

	default:
		if err := l.fs.MkdirAll(l.cfg.CacheRoot, 0700); err != nil {
			return Resolved{}, errors.Newf("creating cache root %q", l.cfg.CacheRoot).Wrap(err)
		}
		p, err := l.fetcher.Fetch(ctx, name, "")
		if err != nil {
			return Resolved{}, err
		}
		return Resolved{Kind: KindPath, Path: p}, nil
	}
}

// Preset returns a bundled dataset as a table, fetching it from the
// remote catalog if the local cache file is absent. Once cached, the
// file is reused without any freshness check.
func (l *Loader) Preset(ctx context.Context, name string) (*tabular.Table, error) {
	if !IsPreset(name) {
		return nil, errors.Newf("%q is not a preset dataset", name).Wrap(ErrNotFound)
	}
	target := filepath.Join(l.cfg.DatasetRoot, name+codec.ExtTabular)
	exists, err := afero.Exists(l.fs, target)
	if err != nil {
		return nil, errors.Newf("checking preset cache %q", target).Wrap(err)
	}
	if !exists {
		if err := l.fs.MkdirAll(l.cfg.DatasetRoot, 0700); err != nil {
			return nil, errors.Newf("creating dataset root %q", l.cfg.DatasetRoot).Wrap(err)
		}
		if _, err := l.fetcher.Fetch(ctx, l.resolveURL(name), target); err != nil {
			return nil, err
		}
	} else {
		l.l.Debug("preset cache hit", zap.String("dataset", name), zap.String("path", target))
	}
	v, err := l.codec.Decode(target)
	if err != nil {
		return nil, err
	}
	return v.Table(), nil
}

// UserDataset opens the artifact store for a user-owned dataset
// directory. The directory must already exist.
func (l *Loader) UserDataset(name string) (*store.Store, error) {
	dir := filepath.Join(l.cfg.UserDataRoot, name)
	isDir, err := afero.DirExists(l.fs, dir)
	if err != nil {
		return nil, errors.Newf("checking user dataset %q", dir).Wrap(err)
	}
	if !isDir {
		return nil, errors.Newf("no user dataset under %q", dir).Wrap(ErrNotFound)
	}
	return store.Open(name, l.cfg.UserDataRoot, store.FS(l.fs), store.Logger(l.l))
}

// Elements returns the element property table bundled with the
// toolkit.
func (l *Loader) Elements(ctx context.Context) (*tabular.Table, error) {
	return l.Preset(ctx, "elements")
}

// ElementsCompleted returns the imputed element property table, the
// default input of the compositional featurizers.
func (l *Loader) ElementsCompleted(ctx context.Context) (*tabular.Table, error) {
	return l.Preset(ctx, "elements_completed")
}
