package diskimage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/macappbundler/pkg/errors"
	"github.com/arthur-debert/macappbundler/pkg/executor"
	"github.com/arthur-debert/macappbundler/pkg/filesystem"
	"github.com/arthur-debert/macappbundler/pkg/logging"
	"github.com/arthur-debert/macappbundler/pkg/paths"
	"github.com/arthur-debert/macappbundler/pkg/types"
)

// Defaults for the disk image tool invocation
const (
	DefaultTool   = "hdiutil"
	DefaultFormat = "UDZO"
)

// Symlink is a link placed next to the bundle in the disk image.
type Symlink struct {
	Name   string `koanf:"name" toml:"name" json:"name" yaml:"name"`
	Target string `koanf:"target" toml:"target" json:"target" yaml:"target"`
}

// Options configure disk image creation.
type Options struct {
	Generate bool `koanf:"generate" toml:"generate"`
	// FileName overrides the application name as the base of the .dmg name
	FileName      string `koanf:"file_name" toml:"file_name,omitempty"`
	AppendVersion bool   `koanf:"append_version" toml:"append_version"`
	// VolumeName defaults to the application name
	VolumeName string    `koanf:"volume_name" toml:"volume_name,omitempty"`
	Format     string    `koanf:"format" toml:"format,omitempty"`
	Tool       string    `koanf:"tool" toml:"tool,omitempty"`
	ExtraFiles []string  `koanf:"extra_files" toml:"extra_files,omitempty"`
	Symlinks   []Symlink `koanf:"symlinks" toml:"symlinks,omitempty"`
}

// FileName computes the disk image file name: the explicit name or the
// application name, then "_<version>" when requested, then ".dmg".
func FileName(appName, version string, opts Options) string {
	name := strings.TrimSuffix(opts.FileName, paths.DMGSuffix)
	if name == "" {
		name = appName
	}
	if opts.AppendVersion && version != "" {
		name += "_" + version
	}
	return name + paths.DMGSuffix
}

// Request describes one disk image to build.
type Request struct {
	AppDir     string
	StagingDir string
	// OutputDir receives the .dmg file
	OutputDir string
	AppName   string
	Version   string
	Options   Options
}

// Result describes a packaged disk image.
type Result struct {
	Path       string            `json:"path" yaml:"path"`
	StagingDir string            `json:"staging_dir" yaml:"staging_dir"`
	Command    types.Command     `json:"command" yaml:"command"`
	Output     string            `json:"output,omitempty" yaml:"output,omitempty"`
	Checksum   string            `json:"checksum,omitempty" yaml:"checksum,omitempty"`
	Operations []types.Operation `json:"operations" yaml:"operations"`
	DryRun     bool              `json:"dry_run" yaml:"dry_run"`
	Duration   time.Duration     `json:"duration" yaml:"duration"`
}

// Packager builds disk images
type Packager struct {
	fs     types.FS
	exec   *executor.Executor
	runner types.CommandRunner
	logger zerolog.Logger
}

// New creates a packager. Staging goes through exec, the image tool through
// runner.
func New(fs types.FS, exec *executor.Executor, runner types.CommandRunner) *Packager {
	return &Packager{
		fs:     fs,
		exec:   exec,
		runner: runner,
		logger: logging.GetLogger("diskimage"),
	}
}

// Package stages the bundle and runs the disk image tool.
func (p *Packager) Package(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	done := logging.LogOperationStart(p.logger, "diskimage")
	defer done()

	if err := p.validate(req); err != nil {
		return nil, err
	}

	dmgPath := filepath.Join(req.OutputDir, FileName(req.AppName, req.Version, req.Options))
	result := &Result{
		Path:       dmgPath,
		StagingDir: req.StagingDir,
		DryRun:     p.exec.DryRun(),
	}

	ops, err := p.stagingOperations(req)
	if err != nil {
		return nil, err
	}
	res, err := p.exec.Execute(ops)
	result.Operations = res.Completed
	if err != nil {
		result.Duration = time.Since(start)
		return result, err
	}

	result.Command = p.command(req, dmgPath)
	out, err := p.runner.Run(ctx, result.Command)
	result.Output = out.Output
	result.Duration = time.Since(start)
	if err != nil {
		if be, ok := err.(*errors.BundlerError); ok && be.Code == errors.ErrToolExecute {
			return result, be.WithDetail("dmg", dmgPath)
		}
		return result, errors.Wrapf(err, errors.ErrToolExecute, "%s failed: %s",
			result.Command.Name, strings.TrimSpace(out.Output)).
			WithDetail("output", out.Output).
			WithDetail("dmg", dmgPath)
	}

	if !result.DryRun {
		if sum, err := filesystem.Checksum(p.fs, dmgPath); err == nil {
			result.Checksum = sum
		} else {
			p.logger.Warn().Err(err).Str("dmg", dmgPath).Msg("Cannot checksum disk image")
		}
	}

	p.logger.Info().
		Str("dmg", dmgPath).
		Str("checksum", result.Checksum).
		Dur("duration", result.Duration).
		Bool("dry_run", result.DryRun).
		Msg("Disk image created")
	return result, nil
}

func (p *Packager) validate(req Request) error {
	if req.AppName == "" {
		return errors.New(errors.ErrConfigValid, "disk image requires an application name")
	}
	if req.StagingDir == "" || req.OutputDir == "" {
		return errors.New(errors.ErrConfigValid, "disk image requires staging and output directories")
	}
	if filepath.Clean(req.StagingDir) == filepath.Clean(req.OutputDir) {
		return errors.Newf(errors.ErrConfigValid, "staging directory must differ from the output directory: %s", req.StagingDir)
	}
	// the staging directory is emptied before the bundle is copied into it
	if isWithin(req.AppDir, req.StagingDir) {
		return errors.Newf(errors.ErrConfigValid,
			"application bundle %s is inside the staging directory %s", req.AppDir, req.StagingDir).
			WithDetail("app_dir", req.AppDir).
			WithDetail("staging_dir", req.StagingDir)
	}

	info, err := p.fs.Stat(req.AppDir)
	if err != nil && p.exec.DryRun() && os.IsNotExist(err) {
		// a dry run assembly never creates the bundle
		p.logger.Warn().Str("app_dir", req.AppDir).Msg("Bundle does not exist yet, continuing dry run")
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, errors.ErrBundleNotFound,
			"application bundle not found: %s", req.AppDir).WithDetail("app_dir", req.AppDir)
	}
	if !info.IsDir() {
		return errors.Newf(errors.ErrBundleNotFound,
			"application bundle is not a directory: %s", req.AppDir).WithDetail("app_dir", req.AppDir)
	}
	return nil
}

func (p *Packager) stagingOperations(req Request) ([]types.Operation, error) {
	staging := req.StagingDir
	ops := []types.Operation{
		{Type: types.OperationRemoveAll, Target: staging, Description: "Clean staging directory"},
		{Type: types.OperationCreateDir, Target: staging, Description: "Create staging directory"},
		{
			Type:        types.OperationCopyTree,
			Source:      req.AppDir,
			Target:      filepath.Join(staging, filepath.Base(req.AppDir)),
			Description: "Stage application bundle",
		},
	}

	for _, file := range req.Options.ExtraFiles {
		file = paths.ExpandHome(file)
		info, err := p.fs.Stat(file)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileNotFound, "disk image file not found: %s", file).
				WithDetail("source", file)
		}
		op := types.Operation{
			Type:        types.OperationCopyFile,
			Source:      file,
			Target:      filepath.Join(staging, filepath.Base(file)),
			Description: "Stage " + filepath.Base(file),
		}
		if info.IsDir() {
			op.Type = types.OperationCopyTree
		}
		ops = append(ops, op)
	}

	for _, link := range req.Options.Symlinks {
		if link.Name == "" || link.Target == "" || strings.ContainsRune(link.Name, filepath.Separator) {
			return nil, errors.Newf(errors.ErrConfigValid, "invalid disk image symlink %q -> %q", link.Name, link.Target)
		}
		ops = append(ops, types.Operation{
			Type:        types.OperationCreateSymlink,
			Source:      link.Target,
			Target:      filepath.Join(staging, link.Name),
			Description: "Link " + link.Name,
		})
	}
	return ops, nil
}

// command builds: hdiutil create -volname V -srcfolder S -ov -format F out.dmg
func (p *Packager) command(req Request, dmgPath string) types.Command {
	opts := req.Options
	tool := opts.Tool
	if tool == "" {
		tool = DefaultTool
	}
	format := opts.Format
	if format == "" {
		format = DefaultFormat
	}
	volume := opts.VolumeName
	if volume == "" {
		volume = req.AppName
	}

	return types.Command{
		Name: tool,
		Args: []string{
			"create",
			"-volname", volume,
			"-srcfolder", req.StagingDir,
			"-ov",
			"-format", format,
			dmgPath,
		},
	}
}

func isWithin(path, dir string) bool {
	rel, err := filepath.Rel(filepath.Clean(dir), filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
