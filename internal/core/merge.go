package core

import "github.com/kilupskalvis/unify/internal/models"

// DefaultContextSize is how many surrounding lines accompany a block
// shown to the decision collaborator.
const DefaultContextSize = 3

// MergeOptions configures a pairwise merge.
type MergeOptions struct {
	ContextSize int // Lines of context per side; DefaultContextSize if zero
}

// MergeLines combines two line sequences into one MergeResult: it diffs
// the inputs, then resolves every block in order through decide,
// concatenating the resolved output. Identical inputs produce a single
// Equal block and a result with zero conflicts.
func MergeLines(left, right []string, decide DecideFunc, opts MergeOptions) *models.MergeResult {
	ctxSize := opts.ContextSize
	if ctxSize == 0 {
		ctxSize = DefaultContextSize
	}
	if decide == nil {
		decide = Union
	}

	result := &models.MergeResult{}
	conflictIndex := 0

	for _, block := range ComputeDiff(left, right) {
		index := 0
		if block.IsConflict() {
			conflictIndex++
			index = conflictIndex
		}

		ctx := ExtractContext(left, right, block, ctxSize)
		lines, outcome := ResolveBlock(block, ctx, index, decide)

		if outcome.Marked {
			result.Conflicts = append(result.Conflicts, models.ConflictMarkerSpan{
				Start: len(result.MergedLines),
				End:   len(result.MergedLines) + len(lines),
			})
		}
		if outcome.ConflictResolved {
			result.ConflictsResolved++
		}
		if outcome.Warning != "" {
			result.Warnings = append(result.Warnings, outcome.Warning)
		}

		result.MergedLines = append(result.MergedLines, lines...)
	}

	return result
}
