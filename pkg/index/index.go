// Copyright © 2019 Shunsuke Tonogai

// Package index rebuilds the per-name artifact history of a store root
// from a directory scan. The index is a pure function of filesystem
// state: it keeps no state between rebuilds, and ordering within a
// group is by file modification time, not by the version number
// embedded in the filename.
package index

import (
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/afero"
)

// Entry is one artifact file in a group.
type Entry struct {
	Path    string
	ModTime time.Time
}

// artifact files look like <name>.@<version>.pkl.<tag>
const filePattern = "*.pkl.*"

var versionRe = regexp.MustCompile(`\.@(\d+)\.`)

// Rebuild scans the immediate children of dir and groups artifact files
// by logical name, each group sorted by modification time ascending.
// A missing or empty directory yields an empty map, not an error.
func Rebuild(fs afero.Fs, dir string) (map[string][]Entry, error) {
	groups := make(map[string][]Entry)

	infos, err := afero.ReadDir(fs, dir)
	if err != nil {
		if os.IsNotExist(err) {
			return groups, nil
		}
		return nil, err
	}

	for _, fi := range infos {
		if fi.IsDir() {
			continue
		}
		matched, err := path.Match(filePattern, fi.Name())
		if err != nil || !matched {
			continue
		}
		name, ok := LogicalName(fi.Name())
		if !ok {
			continue
		}
		groups[name] = append(groups[name], Entry{
			Path:    filepath.Join(dir, fi.Name()),
			ModTime: fi.ModTime(),
		})
	}

	for _, entries := range groups {
		es := entries
		sort.SliceStable(es, func(i, j int) bool {
			return es[i].ModTime.Before(es[j].ModTime)
		})
	}
	return groups, nil
}

// LogicalName derives the grouping key from an artifact file name by
// stripping the version tag and the two-part encoding tag. It reports
// false for names that do not carry all three trailing segments.
func LogicalName(filename string) (string, bool) {
	parts := strings.Split(filename, ".")
	if len(parts) < 4 {
		return "", false
	}
	name := strings.Join(parts[:len(parts)-3], ".")
	if name == "" {
		return "", false
	}
	return name, true
}

// NextVersion returns the version number embedded in the most recent
// entry of a group, or 0 for an empty group. The caller increments.
// The number is cosmetic; ordering authority stays with ModTime.
func NextVersion(group []Entry) int {
	if len(group) == 0 {
		return 0
	}
	last := group[len(group)-1].Path
	ms := versionRe.FindAllStringSubmatch(filepath.Base(last), -1)
	if len(ms) == 0 {
		return 0
	}
	n, err := strconv.Atoi(ms[len(ms)-1][1])
	if err != nil {
		return 0
	}
	return n
}
