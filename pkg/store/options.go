// Copyright © 2019 Shunsuke Tonogai

package store

import (
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Option configures a Store at open time.
type Option func(*Store)

// Absolute treats the dataset argument of Open as an absolute root
// directory instead of a name under the user-data root.
func Absolute() Option {
	return func(s *Store) {
		s.absolute = true
	}
}

// FS sets the filesystem backing the store
func FS(fs afero.Fs) Option {
	return func(s *Store) {
		s.fs = fs
	}
}

// Logger sets a logger for this store
func Logger(l *zap.Logger) Option {
	return func(s *Store) {
		s.l = l
	}
}
