package core

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarity_Identity(t *testing.T) {
	lines := []string{"a", "b", "c"}
	assert.Equal(t, 1.0, Similarity(lines, lines))
	assert.Equal(t, 1.0, Similarity(nil, nil))
}

func TestSimilarity_ScenarioScores(t *testing.T) {
	a := []string{"L1", "L2", "L3"}
	b := []string{"L1", "LX", "L3"}
	c := []string{"L1", "L2", "LY"}

	// One replaced line out of three.
	assert.InDelta(t, 2.0/3.0, Similarity(a, b), 1e-9)
	assert.InDelta(t, 2.0/3.0, Similarity(a, c), 1e-9)
	// b and c share only L1.
	assert.InDelta(t, 1.0/3.0, Similarity(b, c), 1e-9)
}

func TestSimilarity_Bounds(t *testing.T) {
	cases := []struct {
		left, right []string
	}{
		{[]string{"a"}, []string{"b"}},
		{[]string{"a", "b", "c"}, nil},
		{nil, []string{"x"}},
		{[]string{"same"}, []string{"same", "extra", "extra2"}},
		{[]string{"a", "b"}, []string{"c", "d", "e", "f"}},
	}

	for i, tc := range cases {
		t.Run(fmt.Sprintf("case_%d", i), func(t *testing.T) {
			score := Similarity(tc.left, tc.right)
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 1.0)
		})
	}

	// Completely disjoint same-length content scores zero.
	assert.Equal(t, 0.0, Similarity([]string{"a", "b"}, []string{"x", "y"}))
}

func TestSimilarity_Symmetry(t *testing.T) {
	cases := []struct {
		left, right []string
	}{
		{[]string{"L1", "L2", "L3"}, []string{"L1", "LX", "L3"}},
		{[]string{"a", "b", "c", "d"}, []string{"a", "d"}},
		{[]string{"one"}, []string{"one", "two", "three"}},
		{nil, []string{"x", "y"}},
	}

	for i, tc := range cases {
		t.Run(fmt.Sprintf("case_%d", i), func(t *testing.T) {
			assert.InDelta(t, Similarity(tc.left, tc.right), Similarity(tc.right, tc.left), 1e-9)
		})
	}
}

func TestSimilarityFromDiff_ReusesBlocks(t *testing.T) {
	left := []string{"L1", "L2", "L3"}
	right := []string{"L1", "LX", "L3"}

	blocks := ComputeDiff(left, right)
	assert.InDelta(t, Similarity(left, right), SimilarityFromDiff(blocks, len(left), len(right)), 1e-9)
}
