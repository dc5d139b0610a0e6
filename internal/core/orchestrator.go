package core

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/kilupskalvis/unify/internal/models"
)

// SessionCallbacks are the seams to the UI/automation collaborator.
// Any field may be nil: Decide defaults to Union, Continue to always
// true, Status to a no-op.
type SessionCallbacks struct {
	// Decide resolves each non-equal diff block.
	Decide DecideFunc
	// Continue is polled between merge steps; false requests a
	// graceful stop with all prior operations retained.
	Continue func() bool
	// Status receives a snapshot after each pair selection.
	Status func(models.MergeSessionStatus)
}

// SessionOptions configures a merge session.
type SessionOptions struct {
	ContextSize int // Context lines per block shown to Decide
	Parallelism int // Workers for pairwise similarity; NumCPU if zero
}

// groupContent pairs a live group with its representative content for
// one selection round.
type groupContent struct {
	group *models.FileGroup
	raw   []byte
	lines []string
}

// RunSession repeatedly merges the two most similar remaining versions
// until one remains, writing each merge result back to every path that
// still carries the pre-merge content of either side.
//
// The run always terminates with a MergeCompletionResult; a non-nil
// error accompanies it only when propagation failed hard (a merge
// target disappeared mid-run). Cancellation via callbacks.Continue or
// ctx is cooperative, checked at step boundaries, and keeps every
// file already written.
func RunSession(ctx context.Context, groups []*models.FileGroup, callbacks SessionCallbacks, opts SessionOptions) (*models.MergeCompletionResult, error) {
	result := &models.MergeCompletionResult{InitialGroupCount: len(groups)}

	if callbacks.Decide == nil {
		callbacks.Decide = Union
	}

	remaining := append([]*models.FileGroup(nil), groups...)
	sortGroups(remaining)

	if len(remaining) < 2 {
		result.Success = true
		if len(remaining) == 1 {
			if raw, err := os.ReadFile(remaining[0].Representative()); err == nil {
				result.FinalLineCount = len(SplitLines(raw))
			}
		}
		return finalize(result), nil
	}

	iteration := 0
	finalLineCount := 0

	for len(remaining) > 1 {
		if sessionCancelled(ctx, callbacks) {
			result.Warnings = append(result.Warnings, "session cancelled, partial progress retained")
			return finalize(result), nil
		}
		iteration++

		// SelectingPair: read one representative per group; groups with
		// no readable path drop out of the run.
		contents := loadGroupContents(&remaining, result)
		if len(contents) < 2 {
			break
		}

		best, left, right := selectMostSimilar(contents, opts.Parallelism)

		if callbacks.Status != nil {
			callbacks.Status(models.MergeSessionStatus{
				Iteration:       iteration,
				RemainingGroups: len(remaining),
				MostSimilarPair: &best,
				CompletedMerges: len(result.Operations),
			})
		}

		if sessionCancelled(ctx, callbacks) {
			result.Warnings = append(result.Warnings, "session cancelled, partial progress retained")
			return finalize(result), nil
		}

		// Resolving
		merged := MergeLines(left.lines, right.lines, callbacks.Decide, MergeOptions{ContextSize: opts.ContextSize})
		result.Warnings = append(result.Warnings, merged.Warnings...)

		// Propagating
		mergedRaw := JoinLines(merged.MergedLines)
		written, err := propagate(left, right, mergedRaw, result)
		if err != nil {
			return finalize(result), err
		}

		newGroup := models.NewFileGroup(HashBytes(mergedRaw), written...)
		remaining = replaceGroups(remaining, left.group, right.group, newGroup)

		finalLineCount = len(merged.MergedLines)
		result.Operations = append(result.Operations, models.MergeOperationSummary{
			OperationNumber:   len(result.Operations) + 1,
			PathLeft:          left.group.Representative(),
			PathRight:         right.group.Representative(),
			SimilarityScore:   best.Score,
			FilesAffected:     len(written),
			ConflictsResolved: merged.ConflictsResolved,
			MergedLineCount:   len(merged.MergedLines),
		})
	}

	result.Success = true
	result.FinalLineCount = finalLineCount
	return finalize(result), nil
}

// finalize fills the derived counters; called on every exit path so
// partial progress is always reported.
func finalize(result *models.MergeCompletionResult) *models.MergeCompletionResult {
	result.TotalMergeOperations = len(result.Operations)
	total := 0
	for _, op := range result.Operations {
		total += op.FilesAffected
	}
	result.TotalFilesMerged = total
	return result
}

func sessionCancelled(ctx context.Context, callbacks SessionCallbacks) bool {
	if ctx.Err() != nil {
		return true
	}
	return callbacks.Continue != nil && !callbacks.Continue()
}

// loadGroupContents reads one representative's content per group.
// Unreadable paths are dropped from their group; a group left with no
// readable path is removed from the run entirely, with a warning.
func loadGroupContents(remaining *[]*models.FileGroup, result *models.MergeCompletionResult) []*groupContent {
	var contents []*groupContent
	var alive []*models.FileGroup

	for _, g := range *remaining {
		var content *groupContent
		for _, path := range append([]string(nil), g.Paths...) {
			raw, err := os.ReadFile(path)
			if err != nil {
				result.Warnings = append(result.Warnings, fmt.Sprintf("skipping unreadable %s: %v", path, err))
				g.RemovePath(path)
				continue
			}
			content = &groupContent{group: g, raw: raw, lines: SplitLines(raw)}
			break
		}
		if content == nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("group %s has no readable paths, excluded", g.Fingerprint))
			continue
		}
		alive = append(alive, g)
		contents = append(contents, content)
	}

	*remaining = alive
	return contents
}

// selectMostSimilar scores every unordered pair and picks the maximum.
// Groups are kept sorted by representative path and a later pair must
// strictly beat the running best, so equal scores resolve to the pair
// whose combined representative paths sort lexicographically smallest.
//
// Scoring only reads content already in memory, so pairs are scored in
// parallel; nothing is written until propagation.
func selectMostSimilar(contents []*groupContent, parallelism int) (models.FileSimilarity, *groupContent, *groupContent) {
	type pair struct{ i, j int }
	var pairs []pair
	for i := 0; i < len(contents); i++ {
		for j := i + 1; j < len(contents); j++ {
			pairs = append(pairs, pair{i, j})
		}
	}

	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}

	scores := make([]float64, len(pairs))
	var g errgroup.Group
	g.SetLimit(parallelism)
	for idx, p := range pairs {
		idx, p := idx, p
		g.Go(func() error {
			scores[idx] = Similarity(contents[p.i].lines, contents[p.j].lines)
			return nil
		})
	}
	g.Wait()

	bestIdx := 0
	for idx := 1; idx < len(pairs); idx++ {
		if scores[idx] > scores[bestIdx] {
			bestIdx = idx
		}
	}

	left := contents[pairs[bestIdx].i]
	right := contents[pairs[bestIdx].j]
	sim := models.FileSimilarity{
		PathLeft:  left.group.Representative(),
		PathRight: right.group.Representative(),
		Score:     scores[bestIdx],
	}
	return sim, left, right
}

// propagate writes the merged content to both representative paths and
// to every other path in either group whose content still equals the
// pre-merge content of its side. Stale paths (externally mutated) are
// dropped, failed writes to existing paths are skipped with a warning,
// and a target that has vanished aborts the run.
func propagate(left, right *groupContent, mergedRaw []byte, result *models.MergeCompletionResult) ([]string, error) {
	var written []string

	for _, side := range []*groupContent{left, right} {
		rep := side.group.Representative()
		for _, path := range side.group.Paths {
			if path != rep {
				current, err := os.ReadFile(path)
				if err != nil {
					result.Warnings = append(result.Warnings, fmt.Sprintf("skipping unreadable %s: %v", path, err))
					continue
				}
				if !bytes.Equal(current, side.raw) {
					result.Warnings = append(result.Warnings, fmt.Sprintf("dropping %s: content changed during the run", path))
					continue
				}
			}
			if err := os.WriteFile(path, mergedRaw, 0644); err != nil {
				if os.IsNotExist(err) {
					result.Success = false
					return nil, fmt.Errorf("merge target vanished: %w", err)
				}
				result.Warnings = append(result.Warnings, fmt.Sprintf("skipping unwritable %s: %v", path, err))
				continue
			}
			written = append(written, path)
		}
	}

	if len(written) == 0 {
		result.Success = false
		return nil, fmt.Errorf("merge of %s and %s could not be written anywhere",
			left.group.Representative(), right.group.Representative())
	}

	return written, nil
}

// replaceGroups removes the two merged groups and inserts their union,
// keeping the slice sorted by representative. The remaining count
// shrinks by exactly one per merge step.
func replaceGroups(groups []*models.FileGroup, a, b, merged *models.FileGroup) []*models.FileGroup {
	out := groups[:0]
	for _, g := range groups {
		if g != a && g != b {
			out = append(out, g)
		}
	}
	out = append(out, merged)
	sortGroups(out)
	return out
}

func sortGroups(groups []*models.FileGroup) {
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Representative() < groups[j].Representative()
	})
}
