package bundle

import (
	"context"

	"github.com/arthur-debert/macappbundler/pkg/assembler"
	"github.com/arthur-debert/macappbundler/pkg/commands/internal"
	"github.com/arthur-debert/macappbundler/pkg/config"
	"github.com/arthur-debert/macappbundler/pkg/diskimage"
	"github.com/arthur-debert/macappbundler/pkg/errors"
	"github.com/arthur-debert/macappbundler/pkg/filesystem"
	"github.com/arthur-debert/macappbundler/pkg/launcher"
	"github.com/arthur-debert/macappbundler/pkg/logging"
	"github.com/arthur-debert/macappbundler/pkg/publish"
	"github.com/arthur-debert/macappbundler/pkg/types"
)

// Options for the bundle command
type Options struct {
	Config *config.Config
	DryRun bool

	// NoDiskImage and NoPublish skip the later stages regardless of config
	NoDiskImage bool
	NoPublish   bool

	FS       types.FS
	Runner   types.CommandRunner
	Locator  assembler.LauncherLocator
	Expand   assembler.Expander
	Uploader publish.Uploader
}

// Result of a bundle run. Stages that did not run are nil.
type Result struct {
	Bundle    *assembler.Result `json:"bundle" yaml:"bundle"`
	DiskImage *diskimage.Result `json:"disk_image,omitempty" yaml:"disk_image,omitempty"`
	Publish   *publish.Result   `json:"publish,omitempty" yaml:"publish,omitempty"`
	Warnings  []string          `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Run assembles the bundle. When configured it then packages the bundle into
// a disk image and publishes the image. A failed stage stops the run and the
// partial result is returned with the error.
func Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.GetLogger("commands.bundle")
	logger.Debug().Bool("dry_run", opts.DryRun).Msg("Executing command")

	cfg := opts.Config
	if cfg == nil {
		return nil, errors.New(errors.ErrInvalidInput, "bundle requires a configuration")
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	result := &Result{}
	for _, key := range config.ReservedOverrides(cfg) {
		logger.Warn().Str("key", key).Msg("Configured value is always replaced by the bundler")
		result.Warnings = append(result.Warnings, key+" is set by the bundler, the configured value is ignored")
	}

	env := internal.Env{FS: opts.FS, Runner: opts.Runner, DryRun: opts.DryRun}.WithDefaults()
	locator := opts.Locator
	if locator == nil {
		locator = launcher.NewLocator(env.FS)
	}
	expand := opts.Expand
	if expand == nil {
		expand = filesystem.ExpandAll
	}

	asm := assembler.New(env.FS, env.Executor(), locator, expand)
	bundle, err := asm.Assemble(internal.AssemblerOptions(cfg))
	result.Bundle = bundle
	if err != nil {
		return result, err
	}

	if !cfg.DMG.Generate || opts.NoDiskImage {
		logger.Debug().Msg("Disk image disabled")
		return result, nil
	}

	packager := diskimage.New(env.FS, env.Executor(), env.Runner)
	image, err := packager.Package(ctx, internal.DiskImageRequest(cfg, bundle.AppName, bundle.AppDir))
	result.DiskImage = image
	if err != nil {
		return result, err
	}

	if cfg.Publish.URL == "" || opts.NoPublish {
		return result, nil
	}

	uploader := opts.Uploader
	if uploader == nil && !opts.DryRun {
		client, err := publish.NewS3Client(ctx, logging.GetLogger("publish.s3"))
		if err != nil {
			return result, errors.Wrap(err, errors.ErrPublish, "failed to configure the S3 client")
		}
		uploader = client
	}
	published, err := publish.NewPublisher(uploader, opts.DryRun).Publish(ctx, cfg.Publish.URL, image.Path)
	result.Publish = published
	if err != nil {
		return result, err
	}

	logger.Info().Str("app", bundle.AppDir).Str("dmg", image.Path).Msg("Bundle command completed")
	return result, nil
}
