package core

import (
	"testing"

	"github.com/kilupskalvis/unify/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// reconstruct concatenates one side of every block.
func reconstruct(blocks []models.DiffBlock, left bool) []string {
	var out []string
	for _, b := range blocks {
		if left {
			out = append(out, b.LinesLeft...)
		} else {
			out = append(out, b.LinesRight...)
		}
	}
	return out
}

func TestComputeDiff_IdenticalInputs(t *testing.T) {
	lines := []string{"one", "two", "three"}
	blocks := ComputeDiff(lines, lines)

	require.Len(t, blocks, 1)
	assert.Equal(t, models.BlockEqual, blocks[0].Kind)
	assert.Equal(t, lines, blocks[0].LinesLeft)
	assert.Equal(t, []int{1, 2, 3}, blocks[0].NumbersLeft)
	assert.Equal(t, []int{1, 2, 3}, blocks[0].NumbersRight)
}

func TestComputeDiff_Replace(t *testing.T) {
	blocks := ComputeDiff(
		[]string{"L1", "L2", "L3"},
		[]string{"L1", "LX", "L3"},
	)

	require.Len(t, blocks, 3)
	assert.Equal(t, models.BlockEqual, blocks[0].Kind)

	assert.Equal(t, models.BlockReplace, blocks[1].Kind)
	assert.Equal(t, []string{"L2"}, blocks[1].LinesLeft)
	assert.Equal(t, []string{"LX"}, blocks[1].LinesRight)
	assert.Equal(t, []int{2}, blocks[1].NumbersLeft)
	assert.Equal(t, []int{2}, blocks[1].NumbersRight)

	assert.Equal(t, models.BlockEqual, blocks[2].Kind)
}

func TestComputeDiff_InsertAndDelete(t *testing.T) {
	// Insert: right gains a line, left number list stays empty.
	blocks := ComputeDiff(
		[]string{"one", "three"},
		[]string{"one", "two", "three"},
	)
	require.Len(t, blocks, 3)
	assert.Equal(t, models.BlockInsert, blocks[1].Kind)
	assert.Empty(t, blocks[1].LinesLeft)
	assert.Empty(t, blocks[1].NumbersLeft)
	assert.Equal(t, []string{"two"}, blocks[1].LinesRight)
	assert.Equal(t, []int{2}, blocks[1].NumbersRight)

	// Delete is the mirror image.
	blocks = ComputeDiff(
		[]string{"one", "two", "three"},
		[]string{"one", "three"},
	)
	require.Len(t, blocks, 3)
	assert.Equal(t, models.BlockDelete, blocks[1].Kind)
	assert.Equal(t, []string{"two"}, blocks[1].LinesLeft)
	assert.Equal(t, []int{2}, blocks[1].NumbersLeft)
	assert.Empty(t, blocks[1].NumbersRight)
}

func TestComputeDiff_CollapsesContiguousRuns(t *testing.T) {
	blocks := ComputeDiff(
		[]string{"keep", "a1", "a2", "keep2"},
		[]string{"keep", "b1", "b2", "b3", "keep2"},
	)

	require.Len(t, blocks, 3)
	assert.Equal(t, models.BlockReplace, blocks[1].Kind)
	assert.Equal(t, []string{"a1", "a2"}, blocks[1].LinesLeft)
	assert.Equal(t, []string{"b1", "b2", "b3"}, blocks[1].LinesRight)
}

func TestComputeDiff_EmptyInputs(t *testing.T) {
	assert.Empty(t, ComputeDiff(nil, nil))

	blocks := ComputeDiff(nil, []string{"only right"})
	require.Len(t, blocks, 1)
	assert.Equal(t, models.BlockInsert, blocks[0].Kind)

	blocks = ComputeDiff([]string{"only left"}, nil)
	require.Len(t, blocks, 1)
	assert.Equal(t, models.BlockDelete, blocks[0].Kind)
}

func TestComputeDiff_Completeness(t *testing.T) {
	cases := []struct {
		name        string
		left, right []string
	}{
		{"disjoint", []string{"a", "b"}, []string{"x", "y", "z"}},
		{"interleaved", []string{"1", "x", "2", "y", "3"}, []string{"1", "2", "q", "3"}},
		{"repeated lines", []string{"dup", "dup", "mid", "dup"}, []string{"dup", "mid", "dup", "dup"}},
		{"one empty", []string{"a"}, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			blocks := ComputeDiff(tc.left, tc.right)
			assert.Equal(t, tc.left, reconstruct(blocks, true))
			assert.Equal(t, tc.right, reconstruct(blocks, false))
		})
	}
}

func TestExtractContext_ClampsAtBoundaries(t *testing.T) {
	left := []string{"l1", "l2", "l3", "l4", "l5"}
	right := []string{"l1", "r2", "l3", "l4", "l5"}

	blocks := ComputeDiff(left, right)
	require.Len(t, blocks, 3)
	replace := blocks[1]

	ctx := ExtractContext(left, right, replace, 2)
	assert.Equal(t, []string{"l1"}, ctx.BeforeLeft) // clipped at start
	assert.Equal(t, []string{"l3", "l4"}, ctx.AfterLeft)
	assert.Equal(t, []string{"l1"}, ctx.BeforeRight)
	assert.Equal(t, []string{"l3", "l4"}, ctx.AfterRight)
}

func TestExtractContext_EmptySideGetsNoContext(t *testing.T) {
	left := []string{"one", "three"}
	right := []string{"one", "two", "three"}

	blocks := ComputeDiff(left, right)
	require.Len(t, blocks, 3)
	insert := blocks[1]

	ctx := ExtractContext(left, right, insert, 1)
	assert.Empty(t, ctx.BeforeLeft)
	assert.Empty(t, ctx.AfterLeft)
	assert.Equal(t, []string{"one"}, ctx.BeforeRight)
	assert.Equal(t, []string{"three"}, ctx.AfterRight)
}
