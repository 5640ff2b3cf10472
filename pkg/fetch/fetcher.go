// Copyright © 2019 Shunsuke Tonogai

// Package fetch downloads remote dataset files over plain HTTP(S) into
// the local cache. There are no retries and no freshness checks: a
// fetch either succeeds and leaves the destination file in place, or
// fails and surfaces the error to the caller.
package fetch

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"path"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/tonogaishunsuke/xenonpy/pkg/errors"
)

// DefaultChunkSize is the copy buffer size for streaming downloads.
const DefaultChunkSize = 256 * 1024

type errString string

func (e errString) Error() string { return string(e) }

const (
	// ErrUnsupportedScheme is returned for any URL scheme outside http/https,
	// before any network call is made.
	ErrUnsupportedScheme errString = "unsupported url scheme"

	// ErrFetch is returned when the remote answers with a non-2xx status.
	ErrFetch errString = "remote fetch failed"
)

// Fetcher streams HTTP(S) responses to local files.
type Fetcher struct {
	client    *http.Client
	fs        afero.Fs
	cacheDir  string
	chunkSize int
	l         *zap.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// ChunkSize sets the streaming copy buffer size in bytes
func ChunkSize(sz int) Option {
	return func(f *Fetcher) {
		if sz > 0 {
			f.chunkSize = sz
		}
	}
}

// Client sets the HTTP client used for downloads
func Client(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// FS sets the filesystem downloads are written to
func FS(fs afero.Fs) Option {
	return func(f *Fetcher) {
		f.fs = fs
	}
}

// Logger sets a logger for this fetcher
func Logger(l *zap.Logger) Option {
	return func(f *Fetcher) {
		f.l = l
	}
}

// New creates a fetcher. Downloads without an explicit destination land
// in cacheDir, which must exist.
func New(cacheDir string, opts ...Option) *Fetcher {
	f := &Fetcher{
		client:    http.DefaultClient,
		fs:        afero.NewOsFs(),
		cacheDir:  cacheDir,
		chunkSize: DefaultChunkSize,
		l:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch downloads rawurl and returns the path of the saved file.
//
// With a non-empty saveTo the body is written there. Otherwise the file
// lands in the cache directory, named after the server's "filename"
// response header when present, else the last URL path segment. The
// body is streamed through a temp file in the destination directory and
// renamed into place on success, so a failed download never leaves a
// partial file at the destination.
func (f *Fetcher) Fetch(ctx context.Context, rawurl string, saveTo string) (string, error) {
	u, err := url.Parse(rawurl)
	if err != nil {
		return "", errors.Newf("parsing url %q", rawurl).Wrap(err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", errors.Newf("url %q has scheme %q, only http(s) is supported", rawurl, u.Scheme).Wrap(ErrUnsupportedScheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawurl, nil)
	if err != nil {
		return "", errors.Newf("building request for %q", rawurl).Wrap(err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return "", errors.Newf("fetching %q", rawurl).Wrap(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", errors.Newf("fetching %q: status %s", rawurl, resp.Status).Wrap(ErrFetch)
	}

	dest := saveTo
	if dest == "" {
		name := resp.Header.Get("filename")
		if name == "" {
			name = path.Base(u.Path)
		}
		dest = filepath.Join(f.cacheDir, name)
	}

	if err := f.stream(resp.Body, dest); err != nil {
		return "", errors.Newf("saving %q to %q", rawurl, dest).Wrap(err)
	}
	f.l.Info("fetched", zap.String("url", rawurl), zap.String("path", dest))
	return dest, nil
}

func (f *Fetcher) stream(body io.Reader, dest string) error {
	tmp, err := afero.TempFile(f.fs, filepath.Dir(dest), ".fetch-")
	if err != nil {
		return err
	}
	buf := make([]byte, f.chunkSize)
	if _, err := io.CopyBuffer(tmp, body, buf); err != nil {
		_ = tmp.Close()
		_ = f.fs.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = f.fs.Remove(tmp.Name())
		return err
	}
	return f.fs.Rename(tmp.Name(), dest)
}
