package core

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupFiles_PartitionsByContent(t *testing.T) {
	dir := t.TempDir()
	a1 := writeTestFile(t, dir, "a1.txt", "same\n")
	a2 := writeTestFile(t, dir, "a2.txt", "same\n")
	b := writeTestFile(t, dir, "b.txt", "different\n")

	groups, skipped := GroupFiles([]string{b, a2, a1})
	require.Empty(t, skipped)
	require.Len(t, groups, 2)

	// Sorted by representative: a1 group first.
	assert.Equal(t, []string{a1, a2}, groups[0].Paths)
	assert.Equal(t, []string{b}, groups[1].Paths)

	// Grouping invariant: same fingerprint iff same group.
	fpA, err := HashFile(a1)
	require.NoError(t, err)
	fpB, err := HashFile(b)
	require.NoError(t, err)
	assert.Equal(t, fpA, groups[0].Fingerprint)
	assert.Equal(t, fpB, groups[1].Fingerprint)
	assert.NotEqual(t, groups[0].Fingerprint, groups[1].Fingerprint)
}

func TestGroupFiles_SkipsUnreadable(t *testing.T) {
	dir := t.TempDir()
	a := writeTestFile(t, dir, "a.txt", "content\n")
	missing := filepath.Join(dir, "missing.txt")

	groups, skipped := GroupFiles([]string{a, missing})
	require.Len(t, groups, 1)
	require.Len(t, skipped, 1)
	assert.Equal(t, missing, skipped[0].Path)
	assert.Error(t, skipped[0].Reason)
}

func TestGroupFiles_DeterministicAcrossInputOrder(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeTestFile(t, dir, "c.txt", "one\n"),
		writeTestFile(t, dir, "a.txt", "two\n"),
		writeTestFile(t, dir, "b.txt", "one\n"),
	}

	forward, _ := GroupFiles(paths)
	reversed, _ := GroupFiles([]string{paths[2], paths[1], paths[0]})

	require.Equal(t, len(forward), len(reversed))
	for i := range forward {
		assert.Equal(t, forward[i].Fingerprint, reversed[i].Fingerprint)
		assert.Equal(t, forward[i].Paths, reversed[i].Paths)
	}
}

func TestRegroup_DetectsStaleContent(t *testing.T) {
	dir := t.TempDir()
	a := writeTestFile(t, dir, "a.txt", "original\n")

	groups, _ := GroupFiles([]string{a})
	require.Len(t, groups, 1)

	ok, err := Regroup(groups[0], a)
	require.NoError(t, err)
	assert.True(t, ok)

	writeTestFile(t, dir, "a.txt", "mutated\n")
	ok, err = Regroup(groups[0], a)
	require.NoError(t, err)
	assert.False(t, ok)
}
