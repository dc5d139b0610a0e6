package core

import (
	"github.com/kilupskalvis/unify/internal/models"
)

// blockMatch is a run of identical lines: a[A:A+Size] == b[B:B+Size].
type blockMatch struct {
	A, B, Size int
}

// lineMatcher finds longest-common-subsequence alignments between two
// line slices, in the manner of difflib's SequenceMatcher.
type lineMatcher struct {
	a, b []string
	b2j  map[string][]int
}

func newLineMatcher(a, b []string) *lineMatcher {
	m := &lineMatcher{a: a, b: b, b2j: make(map[string][]int, len(b))}
	for j, line := range b {
		m.b2j[line] = append(m.b2j[line], j)
	}
	return m
}

// findLongestMatch locates the longest matching run within
// a[alo:ahi] and b[blo:bhi]. Among equally long runs the earliest in a,
// then earliest in b, wins, which keeps the diff deterministic.
func (m *lineMatcher) findLongestMatch(alo, ahi, blo, bhi int) blockMatch {
	bestI, bestJ, bestSize := alo, blo, 0
	j2len := make(map[int]int)
	for i := alo; i < ahi; i++ {
		newJ2len := make(map[int]int)
		for _, j := range m.b2j[m.a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := j2len[j-1] + 1
			newJ2len[j] = k
			if k > bestSize {
				bestI, bestJ, bestSize = i-k+1, j-k+1, k
			}
		}
		j2len = newJ2len
	}
	return blockMatch{A: bestI, B: bestJ, Size: bestSize}
}

// matchingBlocks returns all maximal matching runs in order, with
// adjacent runs merged, terminated by a zero-size sentinel at the ends.
func (m *lineMatcher) matchingBlocks() []blockMatch {
	type span struct{ alo, ahi, blo, bhi int }
	queue := []span{{0, len(m.a), 0, len(m.b)}}
	var matched []blockMatch

	for len(queue) > 0 {
		s := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		bm := m.findLongestMatch(s.alo, s.ahi, s.blo, s.bhi)
		if bm.Size == 0 {
			continue
		}
		matched = append(matched, bm)
		if s.alo < bm.A && s.blo < bm.B {
			queue = append(queue, span{s.alo, bm.A, s.blo, bm.B})
		}
		if bm.A+bm.Size < s.ahi && bm.B+bm.Size < s.bhi {
			queue = append(queue, span{bm.A + bm.Size, s.ahi, bm.B + bm.Size, s.bhi})
		}
	}

	sortMatches(matched)

	// Merge adjacent runs so each equal block is maximal.
	var merged []blockMatch
	for _, bm := range matched {
		n := len(merged)
		if n > 0 && merged[n-1].A+merged[n-1].Size == bm.A && merged[n-1].B+merged[n-1].Size == bm.B {
			merged[n-1].Size += bm.Size
			continue
		}
		merged = append(merged, bm)
	}

	return append(merged, blockMatch{A: len(m.a), B: len(m.b), Size: 0})
}

func sortMatches(matches []blockMatch) {
	// Insertion sort by (A, B); match counts are small in practice.
	for i := 1; i < len(matches); i++ {
		for j := i; j > 0 && less(matches[j], matches[j-1]); j-- {
			matches[j], matches[j-1] = matches[j-1], matches[j]
		}
	}
}

func less(x, y blockMatch) bool {
	if x.A != y.A {
		return x.A < y.A
	}
	return x.B < y.B
}

// ComputeDiff produces the ordered diff blocks between two line
// sequences. Concatenating LinesLeft over all blocks reconstructs left
// exactly, and likewise for right: every input line lands in exactly
// one block, in order. Contiguous non-equal runs collapse into a single
// Replace when both sides contribute, otherwise Insert or Delete.
func ComputeDiff(left, right []string) []models.DiffBlock {
	m := newLineMatcher(left, right)

	var blocks []models.DiffBlock
	ia, ib := 0, 0
	for _, bm := range m.matchingBlocks() {
		switch {
		case ia < bm.A && ib < bm.B:
			blocks = append(blocks, newBlock(models.BlockReplace, left, right, ia, bm.A, ib, bm.B))
		case ia < bm.A:
			blocks = append(blocks, newBlock(models.BlockDelete, left, right, ia, bm.A, ib, ib))
		case ib < bm.B:
			blocks = append(blocks, newBlock(models.BlockInsert, left, right, ia, ia, ib, bm.B))
		}
		if bm.Size > 0 {
			blocks = append(blocks, newBlock(models.BlockEqual, left, right, bm.A, bm.A+bm.Size, bm.B, bm.B+bm.Size))
		}
		ia, ib = bm.A+bm.Size, bm.B+bm.Size
	}

	return blocks
}

// newBlock builds a DiffBlock over left[i1:i2] and right[j1:j2] with
// 1-based line numbers; a side that contributes nothing gets empty
// line slices and empty numbers.
func newBlock(kind models.BlockKind, left, right []string, i1, i2, j1, j2 int) models.DiffBlock {
	b := models.DiffBlock{Kind: kind}
	if i2 > i1 {
		b.LinesLeft = append([]string(nil), left[i1:i2]...)
		b.NumbersLeft = lineNumbers(i1, i2)
	}
	if j2 > j1 {
		b.LinesRight = append([]string(nil), right[j1:j2]...)
		b.NumbersRight = lineNumbers(j1, j2)
	}
	return b
}

func lineNumbers(start, end int) []int {
	nums := make([]int, 0, end-start)
	for i := start; i < end; i++ {
		nums = append(nums, i+1)
	}
	return nums
}

// ExtractContext returns up to size lines immediately surrounding the
// block on each side, clamped to the file boundaries. A side the block
// does not touch gets no context. Display-only.
func ExtractContext(left, right []string, block models.DiffBlock, size int) models.BlockContext {
	var ctx models.BlockContext
	if size <= 0 {
		return ctx
	}
	if len(block.NumbersLeft) > 0 {
		first := block.NumbersLeft[0] - 1
		last := block.NumbersLeft[len(block.NumbersLeft)-1]
		ctx.BeforeLeft = clip(left, first-size, first)
		ctx.AfterLeft = clip(left, last, last+size)
	}
	if len(block.NumbersRight) > 0 {
		first := block.NumbersRight[0] - 1
		last := block.NumbersRight[len(block.NumbersRight)-1]
		ctx.BeforeRight = clip(right, first-size, first)
		ctx.AfterRight = clip(right, last, last+size)
	}
	return ctx
}

func clip(lines []string, lo, hi int) []string {
	if lo < 0 {
		lo = 0
	}
	if hi > len(lines) {
		hi = len(lines)
	}
	if lo >= hi {
		return nil
	}
	return append([]string(nil), lines[lo:hi]...)
}
