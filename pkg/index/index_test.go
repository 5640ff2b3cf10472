// Copyright © 2019 Shunsuke Tonogai

package index

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, fs afero.Fs, path string, mtime time.Time) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, path, []byte("x"), 0600))
	require.NoError(t, fs.Chtimes(path, mtime, mtime))
}

func TestRebuildGroupsAndOrders(t *testing.T) {
	fs := afero.NewMemMapFs()
	base := time.Date(2019, 6, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, fs.MkdirAll("store", 0700))
	// written out of lexical order to prove mtime wins
	touch(t, fs, "store/a.@2.pkl.z", base.Add(2*time.Second))
	touch(t, fs, "store/a.@1.pkl.z", base.Add(1*time.Second))
	touch(t, fs, "store/b.@1.pkl.pd_", base.Add(3*time.Second))
	touch(t, fs, "store/unnamed.@1.pkl.z", base)
	// non-artifact files are ignored
	touch(t, fs, "store/readme.txt", base)
	require.NoError(t, fs.MkdirAll("store/subdir.pkl.z", 0700))

	groups, err := Rebuild(fs, "store")
	require.NoError(t, err)
	require.Len(t, groups, 3)

	require.Len(t, groups["a"], 2)
	assert.Equal(t, "store/a.@1.pkl.z", groups["a"][0].Path)
	assert.Equal(t, "store/a.@2.pkl.z", groups["a"][1].Path)

	require.Len(t, groups["b"], 1)
	require.Len(t, groups["unnamed"], 1)
}

func TestRebuildMissingDir(t *testing.T) {
	groups, err := Rebuild(afero.NewMemMapFs(), "nowhere")
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestLogicalName(t *testing.T) {
	name, ok := LogicalName("a.@1.pkl.z")
	require.True(t, ok)
	assert.Equal(t, "a", name)

	name, ok = LogicalName("my.data.@12.pkl.pd_")
	require.True(t, ok)
	assert.Equal(t, "my.data", name)

	_, ok = LogicalName("short.pkl.z")
	assert.False(t, ok)

	_, ok = LogicalName(".@1.pkl.z")
	assert.False(t, ok)
}

func TestNextVersion(t *testing.T) {
	assert.Equal(t, 0, NextVersion(nil))

	group := []Entry{
		{Path: "store/a.@1.pkl.z"},
		{Path: "store/a.@7.pkl.z"},
	}
	assert.Equal(t, 7, NextVersion(group))

	// no version marker falls back to 0
	assert.Equal(t, 0, NextVersion([]Entry{{Path: "store/a.pkl.z"}}))
}
