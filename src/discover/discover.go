// Package discover enumerates the Python source files a lint run operates on.
// It is the Go equivalent of `find <root> -name '*.py'` with the usual
// non-source directories excluded.
package discover

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultExcludes are directory names skipped during discovery. They never
// contain first-party Python sources worth linting.
var DefaultExcludes = []string{
	".git",
	".hg",
	".tox",
	".venv",
	"venv",
	"node_modules",
	"__pycache__",
	".mypy_cache",
	".pytest_cache",
}

// Options controls discovery behavior.
type Options struct {
	// Suffix selects files by name suffix. Defaults to ".py".
	Suffix string

	// Excludes are directory names to skip. Defaults to DefaultExcludes.
	// Matching is by base name at any depth.
	Excludes []string

	// FollowHidden includes hidden directories (dot-prefixed) in the walk.
	// Hidden files matching the suffix are always included.
	FollowHidden bool
}

// Files walks root and returns every matching file path in sorted order.
// Returned paths are relative to root. A missing root is an error; a root
// with no matching files returns an empty slice.
func Files(root string, opts Options) ([]string, error) {
	if opts.Suffix == "" {
		opts.Suffix = ".py"
	}
	if opts.Excludes == nil {
		opts.Excludes = DefaultExcludes
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("cannot discover files under %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("cannot discover files under %s: not a directory", root)
	}

	excluded := make(map[string]bool, len(opts.Excludes))
	for _, name := range opts.Excludes {
		excluded[name] = true
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		name := d.Name()
		if d.IsDir() {
			if path == root {
				return nil
			}
			if excluded[name] {
				return filepath.SkipDir
			}
			if !opts.FollowHidden && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasSuffix(name, opts.Suffix) {
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	sort.Strings(files)
	return files, nil
}
