package core

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTestFile creates a file with the given content in a temp dir.
func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestHashFile_IdenticalContent(t *testing.T) {
	dir := t.TempDir()
	a := writeTestFile(t, dir, "a.txt", "line one\nline two\n")
	b := writeTestFile(t, dir, "b.txt", "line one\nline two\n")

	fpA, err := HashFile(a)
	require.NoError(t, err)
	fpB, err := HashFile(b)
	require.NoError(t, err)

	assert.Equal(t, fpA, fpB)
}

func TestHashFile_DifferentContent(t *testing.T) {
	dir := t.TempDir()
	a := writeTestFile(t, dir, "a.txt", "line one\n")
	b := writeTestFile(t, dir, "b.txt", "line two\n")

	fpA, err := HashFile(a)
	require.NoError(t, err)
	fpB, err := HashFile(b)
	require.NoError(t, err)

	assert.NotEqual(t, fpA, fpB)
}

func TestHashFile_MatchesHashBytes(t *testing.T) {
	dir := t.TempDir()
	content := "alpha\nbeta\ngamma\n"
	path := writeTestFile(t, dir, "a.txt", content)

	fp, err := HashFile(path)
	require.NoError(t, err)
	assert.Equal(t, HashBytes([]byte(content)), fp)
}

func TestHashFile_LargerThanChunk(t *testing.T) {
	dir := t.TempDir()
	content := bytes.Repeat([]byte("0123456789abcdef"), 3*hashChunkSize/16)
	path := filepath.Join(dir, "big.bin")
	require.NoError(t, os.WriteFile(path, content, 0644))

	fp, err := HashFile(path)
	require.NoError(t, err)
	assert.Equal(t, HashBytes(content), fp)
}

func TestHashFile_Missing(t *testing.T) {
	_, err := HashFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestSplitJoinLines_RoundTrip(t *testing.T) {
	cases := []struct {
		name    string
		content string
		lines   []string
	}{
		{"empty", "", nil},
		{"single line", "one\n", []string{"one"}},
		{"no trailing newline", "one\ntwo", []string{"one", "two"}},
		{"blank middle line", "one\n\ntwo\n", []string{"one", "", "two"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.lines, SplitLines([]byte(tc.content)))
		})
	}

	// JoinLines normalizes to a trailing newline.
	assert.Equal(t, []byte("one\ntwo\n"), JoinLines([]string{"one", "two"}))
	assert.Nil(t, JoinLines(nil))
	assert.Equal(t, []string{"a", "b"}, SplitLines(JoinLines([]string{"a", "b"})))
}
