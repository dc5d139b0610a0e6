package core

import (
	"fmt"
	"sort"

	"github.com/kilupskalvis/unify/internal/models"
)

// SkippedPath records a path excluded from grouping and why.
type SkippedPath struct {
	Path   string
	Reason error
}

// GroupFiles partitions paths into equivalence classes by content
// fingerprint. Each path is hashed exactly once; no pairwise comparison.
// Unreadable paths are skipped and reported, never fatal; the caller
// decides whether partial input is acceptable.
//
// Groups are returned sorted by representative path, and every group's
// path set is sorted, so the output is deterministic regardless of
// input order.
func GroupFiles(paths []string) ([]*models.FileGroup, []SkippedPath) {
	byFingerprint := make(map[models.Fingerprint]*models.FileGroup)
	var skipped []SkippedPath

	for _, path := range paths {
		fp, err := HashFile(path)
		if err != nil {
			skipped = append(skipped, SkippedPath{Path: path, Reason: err})
			continue
		}
		if g, ok := byFingerprint[fp]; ok {
			g.AddPath(path)
		} else {
			byFingerprint[fp] = models.NewFileGroup(fp, path)
		}
	}

	groups := make([]*models.FileGroup, 0, len(byFingerprint))
	for _, g := range byFingerprint {
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Representative() < groups[j].Representative()
	})

	return groups, skipped
}

// Regroup verifies that a path still matches its group's fingerprint.
// External mutation during a run makes a path stale.
func Regroup(g *models.FileGroup, path string) (bool, error) {
	fp, err := HashFile(path)
	if err != nil {
		return false, fmt.Errorf("failed to rehash %s: %w", path, err)
	}
	return fp == g.Fingerprint, nil
}
