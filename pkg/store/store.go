// Copyright © 2019 Shunsuke Tonogai

// Package store implements the directory-backed, versioned artifact
// store behind each user dataset. One Store instance owns its root
// directory for its lifetime; nothing guards against concurrent
// writers on the same root, and a crash between a file write and the
// in-memory index update leaves the two desynchronized. Both
// limitations are inherited from the original design and documented
// rather than fixed here.
package store

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/tonogaishunsuke/xenonpy/pkg/codec"
	"github.com/tonogaishunsuke/xenonpy/pkg/errors"
	"github.com/tonogaishunsuke/xenonpy/pkg/index"
)

// Unnamed is the logical name used when the caller does not supply one.
const Unnamed = "unnamed"

type errString string

func (e errString) Error() string { return string(e) }

// ErrNotFound is returned when a logical name has no artifacts, or an
// index is out of a group's range.
const ErrNotFound errString = "not found"

// Store is a per-dataset artifact store. The on-disk layout is flat:
// one file per artifact, named <logical_name>.@<version>.<encoding-tag>.
type Store struct {
	fs       afero.Fs
	root     string
	name     string
	absolute bool
	codec    *codec.Codec
	groups   map[string][]index.Entry
	l        *zap.Logger
}

// Open resolves dataset to a root directory under userDataRoot (or
// takes dataset as the root itself with the Absolute option), creates
// the directory if absent and rebuilds the artifact index from a scan.
func Open(dataset string, userDataRoot string, opts ...Option) (*Store, error) {
	s := &Store{
		fs: afero.NewOsFs(),
		l:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.absolute {
		s.root = dataset
		base := filepath.Base(dataset)
		s.name = strings.TrimSuffix(base, filepath.Ext(base))
	} else {
		s.root = filepath.Join(userDataRoot, dataset)
		s.name = dataset
	}
	s.codec = codec.New(s.fs, codec.Logger(s.l))
	if err := s.fs.MkdirAll(s.root, 0700); err != nil {
		return nil, errors.Newf("creating store root %q", s.root).Wrap(err)
	}
	groups, err := index.Rebuild(s.fs, s.root)
	if err != nil {
		return nil, errors.Newf("indexing store root %q", s.root).Wrap(err)
	}
	s.groups = groups
	s.l.Debug("store opened", zap.String("root", s.root), zap.Int("names", len(groups)))
	return s, nil
}

// Name returns the dataset name backing this store.
func (s *Store) Name() string {
	return s.name
}

// Root returns the store root directory.
func (s *Store) Root() string {
	return s.root
}

// Names returns the known logical names, sorted.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.groups))
	for name, entries := range s.groups {
		if len(entries) > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Len returns the history length for a logical name.
func (s *Store) Len(name string) int {
	return len(s.groups[orUnnamed(name)])
}

// Entries returns a copy of the index entries for a logical name,
// oldest first.
func (s *Store) Entries(name string) []index.Entry {
	group := s.groups[orUnnamed(name)]
	out := make([]index.Entry, len(group))
	copy(out, group)
	return out
}

// AppendUnnamed stores values under the "unnamed" logical name, each
// getting the next sequential version number.
func (s *Store) AppendUnnamed(values ...codec.Value) error {
	return s.append(Unnamed, values...)
}

// AppendNamed stores values under a logical name. Each name's version
// counter is independent.
func (s *Store) AppendNamed(name string, values ...codec.Value) error {
	return s.append(orUnnamed(name), values...)
}

func (s *Store) append(name string, values ...codec.Value) error {
	// Clear may have removed the root; saves recreate it.
	if err := s.fs.MkdirAll(s.root, 0700); err != nil {
		return errors.Newf("creating store root %q", s.root).Wrap(err)
	}
	n := index.NextVersion(s.groups[name])
	for _, v := range values {
		n++
		target := filepath.Join(s.root, fmt.Sprintf("%s.@%d%s", name, n, v.Ext()))
		if err := s.codec.Encode(v, target); err != nil {
			// earlier values of this call stay on disk, no rollback
			return err
		}
		fi, err := s.fs.Stat(target)
		if err != nil {
			return errors.Newf("stating new artifact %q", target).Wrap(err)
		}
		s.groups[name] = append(s.groups[name], index.Entry{Path: target, ModTime: fi.ModTime()})
		s.l.Debug("artifact appended",
			zap.String("name", name),
			zap.Int("version", n),
			zap.String("path", target))
	}
	return nil
}

// Latest decodes the most recent artifact for a logical name.
func (s *Store) Latest(name string) (codec.Value, error) {
	name = orUnnamed(name)
	group := s.groups[name]
	if len(group) == 0 {
		return codec.Value{}, errors.Newf("dataset %q has no artifact named %q", s.name, name).Wrap(ErrNotFound)
	}
	return s.codec.Decode(group[len(group)-1].Path)
}

// Get decodes the artifact at position i in a name's history. Negative
// indices count from the end, -1 being the latest.
func (s *Store) Get(name string, i int) (codec.Value, error) {
	name = orUnnamed(name)
	pos, err := s.position(name, i)
	if err != nil {
		return codec.Value{}, err
	}
	return s.codec.Decode(s.groups[name][pos].Path)
}

// History decodes a name's full history, oldest first. An unknown name
// yields an empty history, not an error.
func (s *Store) History(name string) ([]codec.Value, error) {
	group := s.groups[orUnnamed(name)]
	out := make([]codec.Value, 0, len(group))
	for _, e := range group {
		v, err := s.codec.Decode(e.Path)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Range decodes positions [from, to) of a name's history, oldest
// first. Negative bounds count from the end; out-of-range bounds clamp
// instead of failing, so a full-history request is Range(name, 0,
// Len(name)).
func (s *Store) Range(name string, from, to int) ([]codec.Value, error) {
	name = orUnnamed(name)
	from, to = s.clamp(name, from, to)
	out := make([]codec.Value, 0, to-from)
	for _, e := range s.groups[name][from:to] {
		v, err := s.codec.Decode(e.Path)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// DeleteRange removes positions [from, to) of a name's history from
// disk and from the index, with the same bound handling as Range.
func (s *Store) DeleteRange(name string, from, to int) error {
	name = orUnnamed(name)
	from, to = s.clamp(name, from, to)
	group := s.groups[name]
	for _, e := range group[from:to] {
		if err := s.fs.Remove(e.Path); err != nil {
			return err
		}
	}
	s.groups[name] = append(group[:from], group[to:]...)
	return nil
}

func (s *Store) clamp(name string, from, to int) (int, int) {
	n := len(s.groups[name])
	if from < 0 {
		from += n
	}
	if to < 0 {
		to += n
	}
	if from < 0 {
		from = 0
	}
	if to > n {
		to = n
	}
	if from > to {
		from = to
	}
	return from, to
}

// Delete removes the artifact at position i in a name's history from
// disk and from the index. A file already missing on disk surfaces the
// OS error unmodified.
func (s *Store) Delete(name string, i int) error {
	name = orUnnamed(name)
	pos, err := s.position(name, i)
	if err != nil {
		return err
	}
	group := s.groups[name]
	if err := s.fs.Remove(group[pos].Path); err != nil {
		return err
	}
	s.groups[name] = append(group[:pos], group[pos+1:]...)
	return nil
}

// Clear removes every artifact under a logical name and forgets the
// name. With an empty name it deletes the whole store root and resets
// the index. Irreversible either way.
func (s *Store) Clear(name string) error {
	if name == "" {
		if err := s.fs.RemoveAll(s.root); err != nil {
			return errors.Newf("clearing store root %q", s.root).Wrap(err)
		}
		s.groups = make(map[string][]index.Entry)
		return nil
	}
	for _, e := range s.groups[name] {
		if err := s.fs.Remove(e.Path); err != nil {
			return err
		}
	}
	delete(s.groups, name)
	return nil
}

// Export decodes the latest artifact under every logical name, bundles
// them into one name -> value mapping and writes it as a single opaque
// blob under targetDir. With withTimestamp the filename carries a
// microsecond suffix for uniqueness. Returns the blob path.
func (s *Store) Export(targetDir string, rename string, withTimestamp bool) (string, error) {
	bundle := make(map[string]codec.Value, len(s.groups))
	for name, group := range s.groups {
		if len(group) == 0 {
			continue
		}
		v, err := s.codec.Decode(group[len(group)-1].Path)
		if err != nil {
			return "", err
		}
		bundle[name] = v
	}

	name := rename
	if name == "" {
		name = s.name
	}
	if withTimestamp {
		now := time.Now()
		name += now.Format("-2006-01-02_15-04-05") + fmt.Sprintf("_%06d", now.Nanosecond()/1000)
	}
	if err := s.fs.MkdirAll(targetDir, 0700); err != nil {
		return "", errors.Newf("creating export dir %q", targetDir).Wrap(err)
	}
	target := filepath.Join(targetDir, name+codec.ExtOpaque)
	if err := s.codec.EncodeBundle(bundle, target); err != nil {
		return "", err
	}
	s.l.Info("store exported", zap.String("path", target), zap.Int("names", len(bundle)))
	return target, nil
}

// String renders a summary of the store contents.
func (s *Store) String() string {
	lines := []string{fmt.Sprintf("%q include:", s.name)}
	for _, name := range s.Names() {
		lines = append(lines, fmt.Sprintf("%q: %d", name, len(s.groups[name])))
	}
	return strings.Join(lines, "\n")
}

func (s *Store) position(name string, i int) (int, error) {
	group := s.groups[name]
	pos := i
	if pos < 0 {
		pos += len(group)
	}
	if pos < 0 || pos >= len(group) {
		return 0, errors.Newf("dataset %q: index %d out of range for name %q (history length %d)",
			s.name, i, name, len(group)).Wrap(ErrNotFound)
	}
	return pos, nil
}

func orUnnamed(name string) string {
	if name == "" {
		return Unnamed
	}
	return name
}
