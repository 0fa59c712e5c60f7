package assembler

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/macappbundler/pkg/errors"
	"github.com/arthur-debert/macappbundler/pkg/paths"
	"github.com/arthur-debert/macappbundler/pkg/plist"
	"github.com/arthur-debert/macappbundler/pkg/types"
	"github.com/arthur-debert/macappbundler/pkg/variables"
)

const executableMode = 0755

func (a *Assembler) cleanStep(s *assembly) ([]types.Operation, error) {
	if !s.opts.Clean {
		return nil, nil
	}
	if _, err := a.fs.Lstat(s.layout.AppDir()); err != nil {
		return nil, nil
	}
	return []types.Operation{{
		Type:        types.OperationRemoveAll,
		Target:      s.layout.AppDir(),
		Description: "Remove previous bundle",
	}}, nil
}

func (a *Assembler) skeletonStep(s *assembly) ([]types.Operation, error) {
	dirs := append(s.layout.Directories(), s.layout.ArtifactDir(s.mode))
	ops := make([]types.Operation, 0, len(dirs))
	for _, dir := range dirs {
		ops = append(ops, types.Operation{
			Type:        types.OperationCreateDir,
			Target:      dir,
			Description: "Create " + filepath.Base(dir),
		})
	}
	return ops, nil
}

func (a *Assembler) artifactsStep(s *assembly) ([]types.Operation, error) {
	artifacts := s.opts.Project.AllArtifacts()
	ops := make([]types.Operation, 0, len(artifacts))
	seen := make(map[string]string, len(artifacts))

	for _, artifact := range artifacts {
		if artifact.Path == "" {
			return nil, errors.Newf(errors.ErrConfigValid, "artifact %s has no path", artifact.Coordinates()).
				WithDetail("artifact", artifact.Coordinates())
		}
		if err := a.requireFile(artifact.Path); err != nil {
			if be, ok := err.(*errors.BundlerError); ok {
				return nil, be.WithDetail("artifact", artifact.Coordinates())
			}
			return nil, err
		}

		target := s.layout.ArtifactPath(s.mode, artifact)
		if previous, ok := seen[target]; ok {
			// Only possible in module mode, the later artifact wins
			a.logger.Debug().
				Str("target", target).
				Str("previous", previous).
				Str("artifact", artifact.Coordinates()).
				Msg("Module file name collision, overwriting")
		}
		seen[target] = artifact.Coordinates()

		ops = append(ops, types.Operation{
			Type:        types.OperationCopyFile,
			Source:      artifact.Path,
			Target:      target,
			Description: "Copy artifact " + artifact.Coordinates(),
		})
	}
	return ops, nil
}

func (a *Assembler) launcherStep(s *assembly) ([]types.Operation, error) {
	source, err := a.launcher.Locate(s.opts.Launcher)
	if err != nil {
		return nil, err
	}
	target := s.layout.Executable(s.mapping.Get(variables.KeyBundleExecutable))

	return []types.Operation{
		{
			Type:        types.OperationCopyFile,
			Source:      source,
			Target:      target,
			Mode:        types.FileMode(executableMode),
			Description: "Install launcher",
		},
		{
			Type:        types.OperationChmod,
			Target:      target,
			Mode:        types.FileMode(executableMode),
			Description: "Make launcher executable",
		},
	}, nil
}

func (a *Assembler) runtimeStep(s *assembly) ([]types.Operation, error) {
	runtimeDir := s.opts.RuntimeDir
	if runtimeDir == "" {
		return nil, nil
	}
	runtimeDir = paths.ExpandHome(runtimeDir)

	info, err := a.fs.Stat(runtimeDir)
	if err != nil || !info.IsDir() {
		if err == nil {
			err = os.ErrNotExist
		}
		return nil, errors.Wrapf(err, errors.ErrRuntimeNotFound,
			"runtime directory not found: %s", runtimeDir).WithDetail("runtime", runtimeDir)
	}

	return []types.Operation{{
		Type:        types.OperationCopyTree,
		Source:      runtimeDir,
		Target:      s.layout.RuntimeContents(),
		Description: "Embed runtime",
	}}, nil
}

func (a *Assembler) resourcesStep(s *assembly) ([]types.Operation, error) {
	var ops []types.Operation

	groups := []struct {
		entries []string
		dir     string
		what    string
	}{
		{s.opts.Resources, s.layout.Resources(), "resource"},
		{s.opts.NativeLibraries, s.layout.Lib(), "native library"},
	}

	for _, group := range groups {
		if len(group.entries) == 0 {
			continue
		}
		files, err := a.expand(group.entries)
		if err != nil {
			return nil, err
		}
		for _, file := range files {
			file = paths.ExpandHome(file)
			if err := a.requireFile(file); err != nil {
				return nil, err
			}
			ops = append(ops, types.Operation{
				Type:        types.OperationCopyFile,
				Source:      file,
				Target:      filepath.Join(group.dir, filepath.Base(file)),
				Description: "Copy " + group.what + " " + filepath.Base(file),
			})
		}
	}
	return ops, nil
}

func (a *Assembler) iconStep(s *assembly) ([]types.Operation, error) {
	icon := s.mapping.Get(variables.KeyBundleIconFile)
	if icon == "" {
		return nil, nil
	}

	source := paths.ExpandHome(icon)
	if !filepath.IsAbs(source) {
		source = paths.IconPath(s.opts.Project.BaseDir, icon)
	}
	if err := a.requireFile(source); err != nil {
		return nil, err
	}

	name := filepath.Base(source)
	s.mapping.Set(variables.KeyBundleIconFile, name)

	return []types.Operation{{
		Type:        types.OperationCopyFile,
		Source:      source,
		Target:      filepath.Join(s.layout.Resources(), name),
		Description: "Copy icon " + name,
	}}, nil
}

func (a *Assembler) plistStep(s *assembly) ([]types.Operation, error) {
	content, err := plist.RenderFile(a.fs, s.template, s.mapping)
	if err != nil {
		return nil, err
	}
	return []types.Operation{{
		Type:        types.OperationWriteFile,
		Target:      s.layout.InfoPlist(),
		Content:     content,
		Mode:        types.FileMode(0644),
		Description: "Write Info.plist",
	}}, nil
}

// requireFile checks that path is an existing regular file.
func (a *Assembler) requireFile(path string) error {
	info, err := a.fs.Stat(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileNotFound, "file not found: %s", path).WithDetail("source", path)
	}
	if info.IsDir() {
		return errors.Newf(errors.ErrFileNotFound, "expected a file, found a directory: %s", path).WithDetail("source", path)
	}
	return nil
}
