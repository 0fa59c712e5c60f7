// Package internal holds what the commands share: collaborator defaults and
// the mapping from configuration to assembler and packager inputs.
package internal

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/macappbundler/pkg/assembler"
	"github.com/arthur-debert/macappbundler/pkg/config"
	"github.com/arthur-debert/macappbundler/pkg/diskimage"
	"github.com/arthur-debert/macappbundler/pkg/errors"
	"github.com/arthur-debert/macappbundler/pkg/executor"
	"github.com/arthur-debert/macappbundler/pkg/filesystem"
	"github.com/arthur-debert/macappbundler/pkg/paths"
	"github.com/arthur-debert/macappbundler/pkg/types"
	"github.com/arthur-debert/macappbundler/pkg/variables"
)

// Env is what a command runs with.
type Env struct {
	FS     types.FS
	Runner types.CommandRunner
	DryRun bool
}

// WithDefaults fills unset collaborators with the real implementations.
func (e Env) WithDefaults() Env {
	if e.FS == nil {
		e.FS = filesystem.NewOS()
	}
	if e.Runner == nil {
		e.Runner = executor.NewCommandRunner(e.DryRun)
	}
	return e
}

// Executor returns an executor bound to the environment.
func (e Env) Executor() *executor.Executor {
	return executor.New(executor.Options{FS: e.FS, DryRun: e.DryRun})
}

// Variables resolves the configured template variables against the
// project defaults.
func Variables(cfg *config.Config) variables.Mapping {
	return variables.Resolve(cfg.Variables(), variables.Defaults(cfg.Project))
}

// AppLocation returns the bundle name and directory the configuration
// describes.
func AppLocation(cfg *config.Config) (string, string, error) {
	if cfg.Bundle.AppDir != "" {
		name, err := AppNameFromDir(cfg.Bundle.AppDir)
		return name, cfg.Bundle.AppDir, err
	}

	name := variables.AppName(Variables(cfg), cfg.Project.FinalName)
	if name == "" {
		return "", "", errors.Newf(errors.ErrConfigValid,
			"cannot name the bundle, set %s or the project final name", variables.KeyBundleName)
	}
	return name, paths.AppDir(cfg.BuildDir(), name), nil
}

// AppNameFromDir returns the bundle name of a .app directory.
func AppNameFromDir(dir string) (string, error) {
	base := filepath.Base(dir)
	if filepath.Ext(base) != paths.AppSuffix || base == paths.AppSuffix {
		return "", errors.Newf(errors.ErrConfigValid, "bundle directory must end in %s: %s", paths.AppSuffix, dir).
			WithDetail("app_dir", dir)
	}
	return strings.TrimSuffix(base, paths.AppSuffix), nil
}

// AssemblerOptions maps the configuration onto one assembly.
func AssemblerOptions(cfg *config.Config) assembler.Options {
	return assembler.Options{
		Project:         cfg.Project,
		Variables:       cfg.Variables(),
		AppDir:          cfg.Bundle.AppDir,
		TemplatePath:    cfg.Bundle.Template,
		Launcher:        cfg.Bundle.Launcher,
		RuntimeDir:      cfg.Bundle.Runtime,
		Resources:       cfg.Bundle.Resources,
		NativeLibraries: cfg.Bundle.NativeLibraries,
		Clean:           cfg.Bundle.Clean,
	}
}

// DiskImageRequest describes packaging the bundle at appDir. The image is
// written to the build directory from a staging directory below it. The
// version suffix is the project version, not CFBundleShortVersionString.
func DiskImageRequest(cfg *config.Config, appName, appDir string) diskimage.Request {
	buildDir := cfg.BuildDir()
	return diskimage.Request{
		AppDir:     appDir,
		StagingDir: paths.StagingDir(buildDir),
		OutputDir:  buildDir,
		AppName:    appName,
		Version:    cfg.Project.Version,
		Options:    cfg.DMG,
	}
}
