// Package scan implements file discovery: walking directory trees and
// collecting the paths whose names match a pattern. It is the
// collaborator that feeds paths to the merge engine.
package scan

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
)

// FindFiles walks root recursively and returns every regular file whose
// base name matches pattern (filepath.Match syntax, e.g. "config.yaml"
// or "*.env"). Directories named in excludeDirs are not descended into.
// Results are sorted.
func FindFiles(root, pattern string, excludeDirs []string) ([]string, error) {
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	excluded := make(map[string]bool, len(excludeDirs))
	for _, d := range excludeDirs {
		excluded[d] = true
	}

	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable directory entries are skipped, not fatal.
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != root && excluded[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		matched, err := filepath.Match(pattern, d.Name())
		if err != nil {
			return err
		}
		if matched {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	sort.Strings(paths)
	return paths, nil
}
