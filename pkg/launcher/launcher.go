// Package launcher finds the precompiled native launcher that is installed
// as the bundle executable.
package launcher

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/macappbundler/pkg/errors"
	"github.com/arthur-debert/macappbundler/pkg/logging"
	"github.com/arthur-debert/macappbundler/pkg/paths"
	"github.com/arthur-debert/macappbundler/pkg/types"
)

const (
	// FileName is the launcher binary name in search directories
	FileName = "JavaLauncher"

	// EnvLauncher points at a launcher binary, ahead of the XDG search
	EnvLauncher = "MACAPPBUNDLER_LAUNCHER"
)

// Locator searches for the launcher binary.
type Locator struct {
	FS types.FS
	// Getenv and Executable are replaced in tests
	Getenv     func(string) string
	Executable func() (string, error)
}

// NewLocator returns a Locator on fs using the process environment.
func NewLocator(fs types.FS) *Locator {
	return &Locator{
		FS:         fs,
		Getenv:     os.Getenv,
		Executable: os.Executable,
	}
}

// Candidates lists where the launcher is looked for, in order: the explicit
// path, $MACAPPBUNDLER_LAUNCHER, the XDG data dirs, next to this program.
func (l *Locator) Candidates(explicit string) []string {
	var candidates []string
	if explicit != "" {
		candidates = append(candidates, paths.ExpandHome(explicit))
	}
	if env := l.Getenv(EnvLauncher); env != "" {
		candidates = append(candidates, paths.ExpandHome(env))
	}
	candidates = append(candidates, paths.DataSearchPaths(FileName)...)
	if exe, err := l.Executable(); err == nil {
		candidates = append(candidates, filepath.Join(filepath.Dir(exe), FileName))
	}
	return candidates
}

// Locate returns the first candidate that is an existing regular file. An
// explicit path is never skipped: when it is missing the search stops there.
func (l *Locator) Locate(explicit string) (string, error) {
	logger := logging.GetLogger("launcher")

	if explicit != "" {
		path := paths.ExpandHome(explicit)
		info, err := l.FS.Stat(path)
		if err != nil || info.IsDir() {
			return "", errors.Newf(errors.ErrLauncherNotFound,
				"configured launcher %s not found", path).
				WithDetail("path", path)
		}
		logger.Debug().Str("path", path).Msg("Using configured launcher")
		return path, nil
	}

	candidates := l.Candidates(explicit)
	for _, candidate := range candidates {
		info, err := l.FS.Stat(candidate)
		if err != nil || info.IsDir() {
			logger.Trace().Str("path", candidate).Msg("Launcher candidate not usable")
			continue
		}
		logger.Debug().Str("path", candidate).Msg("Using launcher")
		return candidate, nil
	}

	return "", errors.Newf(errors.ErrLauncherNotFound,
		"native launcher %s not found, set launcher in the project file or %s", FileName, EnvLauncher).
		WithDetail("searched", candidates)
}
