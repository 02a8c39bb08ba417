package workflow

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// HashFiles computes the dependency cache key for a source tree: a sha256
// over the contents of every file matching one of the given patterns,
// in sorted path order. This mirrors the CI runner's hashFiles() function,
// so the same requirement files produce the same cache key locally and in CI.
//
// Patterns use filepath.Match syntax against the path relative to root.
// A leading "**/" matches at any directory depth, including the root itself.
// Typical usage: HashFiles(root, "**/requirements*.txt").
func HashFiles(root string, patterns ...string) (string, error) {
	if len(patterns) == 0 {
		return "", fmt.Errorf("at least one pattern is required")
	}

	var matched []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		for _, pattern := range patterns {
			ok, err := matchPattern(pattern, rel)
			if err != nil {
				return err
			}
			if ok {
				matched = append(matched, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to scan %s: %w", root, err)
	}

	if len(matched) == 0 {
		return "", nil
	}
	sort.Strings(matched)

	h := sha256.New()
	for _, path := range matched {
		f, err := os.Open(path)
		if err != nil {
			return "", fmt.Errorf("failed to open %s: %w", path, err)
		}
		if _, err := io.Copy(h, f); err != nil {
			f.Close()
			return "", fmt.Errorf("failed to hash %s: %w", path, err)
		}
		f.Close()
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// matchPattern matches a relative slash-separated path against a pattern.
// "**/" prefixed patterns match the remainder at any depth.
func matchPattern(pattern, rel string) (bool, error) {
	if rest, ok := strings.CutPrefix(pattern, "**/"); ok {
		// Match against the full path and against every suffix directory.
		if ok, err := filepath.Match(rest, rel); err != nil || ok {
			return ok, err
		}
		parts := strings.Split(rel, "/")
		for i := 1; i < len(parts); i++ {
			ok, err := filepath.Match(rest, strings.Join(parts[i:], "/"))
			if err != nil || ok {
				return ok, err
			}
		}
		return false, nil
	}
	return filepath.Match(pattern, rel)
}
