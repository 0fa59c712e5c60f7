package diskimage

import (
	"context"

	"github.com/arthur-debert/macappbundler/pkg/commands/internal"
	"github.com/arthur-debert/macappbundler/pkg/config"
	"github.com/arthur-debert/macappbundler/pkg/diskimage"
	"github.com/arthur-debert/macappbundler/pkg/errors"
	"github.com/arthur-debert/macappbundler/pkg/logging"
	"github.com/arthur-debert/macappbundler/pkg/types"
)

// Options for the diskimage command
type Options struct {
	Config *config.Config
	// AppDir packages this bundle instead of the configured one
	AppDir string
	DryRun bool

	FS     types.FS
	Runner types.CommandRunner
}

// Package builds a disk image from an already assembled bundle. The
// dmg.generate switch is ignored, asking for the command is enough.
func Package(ctx context.Context, opts Options) (*diskimage.Result, error) {
	logger := logging.GetLogger("commands.diskimage")
	logger.Debug().Str("app_dir", opts.AppDir).Msg("Executing command")

	cfg := opts.Config
	if cfg == nil {
		return nil, errors.New(errors.ErrInvalidInput, "diskimage requires a configuration")
	}

	appName, appDir, err := internal.AppLocation(cfg)
	if opts.AppDir != "" {
		appDir = opts.AppDir
		appName, err = internal.AppNameFromDir(appDir)
	}
	if err != nil {
		return nil, err
	}

	env := internal.Env{FS: opts.FS, Runner: opts.Runner, DryRun: opts.DryRun}.WithDefaults()
	packager := diskimage.New(env.FS, env.Executor(), env.Runner)
	return packager.Package(ctx, internal.DiskImageRequest(cfg, appName, appDir))
}
