// Package models defines the data model shared by the merge engine,
// the persistence layer, and the CLI.
package models

import (
	"fmt"
	"sort"
)

// Fingerprint is a 64-bit content hash used to group byte-identical files.
// Equal fingerprints are assumed to mean equal content; hash-collision risk
// is accepted, not mitigated.
type Fingerprint uint64

// String returns the fingerprint as fixed-width hex.
func (f Fingerprint) String() string {
	return fmt.Sprintf("%016x", uint64(f))
}

// FileGroup is an equivalence class of paths whose content was byte-identical
// at grouping time. Paths are kept sorted so the representative is stable.
type FileGroup struct {
	Fingerprint Fingerprint
	Paths       []string
}

// NewFileGroup creates a group over the given paths, sorted.
func NewFileGroup(fp Fingerprint, paths ...string) *FileGroup {
	g := &FileGroup{Fingerprint: fp, Paths: append([]string(nil), paths...)}
	sort.Strings(g.Paths)
	return g
}

// Representative returns the path whose content stands in for the group
// (the lexicographically smallest member).
func (g *FileGroup) Representative() string {
	if len(g.Paths) == 0 {
		return ""
	}
	return g.Paths[0]
}

// AddPath inserts a path keeping the set sorted and duplicate-free.
func (g *FileGroup) AddPath(path string) {
	i := sort.SearchStrings(g.Paths, path)
	if i < len(g.Paths) && g.Paths[i] == path {
		return
	}
	g.Paths = append(g.Paths, "")
	copy(g.Paths[i+1:], g.Paths[i:])
	g.Paths[i] = path
}

// RemovePath drops a path from the group if present.
func (g *FileGroup) RemovePath(path string) {
	i := sort.SearchStrings(g.Paths, path)
	if i < len(g.Paths) && g.Paths[i] == path {
		g.Paths = append(g.Paths[:i], g.Paths[i+1:]...)
	}
}

// Contains reports whether the group holds the given path.
func (g *FileGroup) Contains(path string) bool {
	i := sort.SearchStrings(g.Paths, path)
	return i < len(g.Paths) && g.Paths[i] == path
}
