package core

import "github.com/kilupskalvis/unify/internal/models"

// Similarity scores two line sequences in [0, 1]: 1 means identical.
//
// The score is 1 - changed/max(len(left), len(right), 1), where changed
// counts lines in non-equal blocks; a Replace block contributes the
// average of its two sides so the measure stays symmetric and an even
// line-for-line replacement of the whole file scores 0.
func Similarity(left, right []string) float64 {
	return SimilarityFromDiff(ComputeDiff(left, right), len(left), len(right))
}

// SimilarityFromDiff scores a precomputed diff, avoiding a second
// alignment pass when the caller already has the blocks.
func SimilarityFromDiff(blocks []models.DiffBlock, leftLen, rightLen int) float64 {
	var changed float64
	for _, b := range blocks {
		switch b.Kind {
		case models.BlockReplace:
			changed += float64(len(b.LinesLeft)+len(b.LinesRight)) / 2
		case models.BlockInsert:
			changed += float64(len(b.LinesRight))
		case models.BlockDelete:
			changed += float64(len(b.LinesLeft))
		}
	}

	total := leftLen
	if rightLen > total {
		total = rightLen
	}
	if total < 1 {
		total = 1
	}

	score := 1 - changed/float64(total)
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
