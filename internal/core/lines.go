// Package core implements the merge engine: content hashing and grouping,
// line diff computation, similarity scoring, block conflict resolution,
// and the iterative merge session that drives repeated pairwise merges
// to convergence. The package performs no terminal I/O; interactive
// decisions arrive through caller-supplied callbacks.
package core

import "strings"

// SplitLines splits file content into lines on '\n'. A trailing newline
// does not produce a trailing empty line, so SplitLines(JoinLines(x)) == x.
func SplitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	s := string(content)
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}

// JoinLines is the inverse of SplitLines: lines joined with '\n' and a
// final newline appended for non-empty content.
func JoinLines(lines []string) []byte {
	if len(lines) == 0 {
		return nil
	}
	return []byte(strings.Join(lines, "\n") + "\n")
}
