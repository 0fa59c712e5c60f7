package filesystem

import (
	"errors"
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	bundlererrors "github.com/arthur-debert/macappbundler/pkg/errors"
)

// IsPattern reports whether path contains glob meta characters.
func IsPattern(path string) bool {
	return strings.ContainsAny(path, "*?[{")
}

// Glob expands a resource pattern on the OS filesystem. Patterns support '**'
// to match recursively and only file paths are returned. A plain path without
// meta characters is returned unchanged so the caller can check it through
// its own filesystem.
//
// A pattern that matches no file, or whose literal directory part does not
// exist, is a FILE_NOT_FOUND error.
func Glob(pattern string) ([]string, error) {
	if !IsPattern(pattern) {
		return []string{pattern}, nil
	}

	matches, err := doublestar.FilepathGlob(
		pattern,
		doublestar.WithFailOnIOErrors(),
		doublestar.WithFailOnPatternNotExist(),
		doublestar.WithFilesOnly(),
	)
	if err != nil {
		if errors.Is(err, doublestar.ErrPatternNotExist) {
			return nil, bundlererrors.Wrapf(os.ErrNotExist, bundlererrors.ErrFileNotFound,
				"pattern %s does not exist", pattern).WithDetail("pattern", pattern)
		}
		return nil, bundlererrors.Wrapf(err, bundlererrors.ErrFileAccess,
			"failed to expand %s", pattern).WithDetail("pattern", pattern)
	}

	if len(matches) == 0 {
		return nil, bundlererrors.Newf(bundlererrors.ErrFileNotFound,
			"pattern %s matched no files", pattern).WithDetail("pattern", pattern)
	}

	sort.Strings(matches)
	return matches, nil
}

// ExpandAll expands every pattern in order and concatenates the results.
func ExpandAll(patterns []string) ([]string, error) {
	var paths []string
	for _, p := range patterns {
		matches, err := Glob(p)
		if err != nil {
			return nil, err
		}
		paths = append(paths, matches...)
	}
	return paths, nil
}
